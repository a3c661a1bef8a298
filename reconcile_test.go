package goldfees

import (
	"strings"
	"testing"

	"github.com/etnz/goldfees/date"
)

// refsFromCSV is a test helper building a reference table from CSV literals.
func refsFromCSV(t *testing.T, rows ...string) []GrossProceeds {
	t.Helper()
	in := "date,ounces_per_share,per_share_ounces_sold_to_cover_expenses,proceeds_per_share\n" +
		strings.Join(rows, "\n")
	refs, err := ReadGrossProceeds(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadGrossProceeds: %v", err)
	}
	return refs
}

func txsFromCSV(t *testing.T, rows ...string) []Transaction {
	t.Helper()
	in := "date,instruction,quantity,price\n" + strings.Join(rows, "\n")
	txs, err := ReadTransactions(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadTransactions: %v", err)
	}
	return txs
}

func TestReconcile_expenseEvent(t *testing.T) {
	// One buy, then one expense event two weeks later.
	txs := txsFromCSV(t, "2020-01-02,BUY,10,150.00")
	refs := refsFromCSV(t, "2020-01-15,0.1,0.001,0.15")

	rows := Reconcile(txs, refs)
	if len(rows) != 2 {
		t.Fatalf("got %d merged rows, want 2", len(rows))
	}

	report := Report(rows)
	if len(report) != 1 {
		t.Fatalf("got %d reportable rows, want 1", len(report))
	}
	row := report[0]

	if got := row.Date.String(); got != "2020-01-15" {
		t.Errorf("Date = %s, want 2020-01-15", got)
	}
	if !row.Position.Quantity.Equal(Q(10)) {
		t.Errorf("running quantity = %s, want 10", row.Position.Quantity)
	}
	if !row.Position.Basis.Equal(M(1500.0)) {
		t.Errorf("running basis = %s, want 1500", row.Position.Basis)
	}
	if !row.Oz.Equal(Q(1.0)) {
		t.Errorf("oz = %s, want 1", row.Oz)
	}
	if got := row.OzSold.String(); got != "0.01" {
		t.Errorf("oz sold = %s, want 0.01", got)
	}
	if got := row.CostSold.Cents(); got != "15.00" {
		t.Errorf("cost sold = %s, want 15.00", got)
	}
	if row.Expense == nil || row.Expense.Cents() != "1.50" {
		t.Errorf("expense = %v, want 1.50", row.Expense)
	}
}

func TestReconcile_buyOnlyRunningQuantity(t *testing.T) {
	txs := txsFromCSV(t,
		"2020-01-02,BUY,10,150.00",
		"2020-02-02,BUY,2.5,151.00",
		"2020-03-02,BUY,7,149.00",
	)
	rows := Reconcile(txs, nil)

	// With only buys, the running quantity is the plain sum of quantities.
	last := rows[len(rows)-1]
	if got := last.Position.Quantity.String(); got != "19.5" {
		t.Errorf("running quantity = %s, want 19.5", got)
	}
	// And the basis is the sum of quantity*price contributions.
	want := M(0).Add(M(150.0).Mul(Q(10))).Add(M(151.0).Mul(Q(2.5))).Add(M(149.0).Mul(Q(7)))
	if !last.Position.Basis.Equal(want) {
		t.Errorf("running basis = %s, want %s", last.Position.Basis, want)
	}
}

func TestReconcile_sellReducesPosition(t *testing.T) {
	txs := txsFromCSV(t,
		"2020-01-02,BUY,10,150.00",
		"2020-02-02,SELL,4,160.00",
	)
	rows := Reconcile(txs, nil)
	last := rows[len(rows)-1]

	if !last.Position.Quantity.Equal(Q(6)) {
		t.Errorf("running quantity = %s, want 6", last.Position.Quantity)
	}
	// 1500 - 640: the fold subtracts the signed quantity*price, it does not
	// track lots.
	if !last.Position.Basis.Equal(M(860.0)) {
		t.Errorf("running basis = %s, want 860", last.Position.Basis)
	}
}

func TestReconcile_negativePositionGuard(t *testing.T) {
	// Selling more than held drives the position negative. The formulas still
	// apply, but the division guard zeroes cost_sold since oz <= 0.
	txs := txsFromCSV(t, "2020-01-02,SELL,10,150.00")
	refs := refsFromCSV(t, "2020-01-15,0.1,0.001,0.15")

	report := Report(Reconcile(txs, refs))
	if len(report) != 1 {
		t.Fatalf("got %d reportable rows, want 1", len(report))
	}
	row := report[0]

	if !row.Position.Quantity.Equal(Q(-10)) {
		t.Errorf("running quantity = %s, want -10", row.Position.Quantity)
	}
	if !row.Oz.Equal(Q(-1.0)) {
		t.Errorf("oz = %s, want -1", row.Oz)
	}
	if !row.CostSold.IsZero() {
		t.Errorf("cost sold = %s, want 0 (division guard)", row.CostSold)
	}
	if row.Expense == nil || row.Expense.Cents() != "-1.50" {
		t.Errorf("expense = %v, want -1.50", row.Expense)
	}
}

func TestReconcile_absentOuncesPerShare(t *testing.T) {
	// No backing ratio published: oz = 0 and cost_sold = 0, whatever else the
	// row carries.
	txs := txsFromCSV(t, "2020-01-02,BUY,10,150.00")
	refs := refsFromCSV(t, "2020-01-15,,0.001,0.15")

	report := Report(Reconcile(txs, refs))
	if len(report) != 1 {
		t.Fatalf("got %d reportable rows, want 1", len(report))
	}
	row := report[0]
	if !row.Oz.IsZero() {
		t.Errorf("oz = %s, want 0", row.Oz)
	}
	if !row.CostSold.IsZero() {
		t.Errorf("cost sold = %s, want 0", row.CostSold)
	}
	if row.Expense == nil || row.Expense.Cents() != "1.50" {
		t.Errorf("expense = %v, want 1.50", row.Expense)
	}
}

func TestReconcile_referenceOnlyRowsAreFoldedNotEmitted(t *testing.T) {
	// The January 31 row publishes only a backing ratio: it must be visited
	// by the fold (it is part of the timeline) but never emitted.
	txs := txsFromCSV(t, "2020-01-02,BUY,10,150.00")
	refs := refsFromCSV(t,
		"2020-01-31,0.0946,,",
		"2020-02-14,0.0945,0.001,0.15",
	)

	rows := Reconcile(txs, refs)
	if len(rows) != 3 {
		t.Fatalf("the fold visited %d rows, want all 3", len(rows))
	}
	// The pass-through row leaves the state unchanged.
	if !rows[1].Position.Quantity.Equal(Q(10)) || !rows[1].Position.Basis.Equal(M(1500.0)) {
		t.Errorf("reference-only row changed the running state: %+v", rows[1].Position)
	}

	report := Report(rows)
	if len(report) != 1 {
		t.Fatalf("got %d reportable rows, want 1", len(report))
	}
	if got := report[0].Date.String(); got != "2020-02-14" {
		t.Errorf("reported date = %s, want 2020-02-14", got)
	}
}

func TestReconcile_sameDateTransactionsAndExpense(t *testing.T) {
	// Two trades and an expense event share a date: every delta applies
	// first, the event computes once from the final position of the day.
	txs := txsFromCSV(t,
		"2020-01-15,BUY,10,150.00",
		"2020-01-15,BUY,5,100.00",
	)
	refs := refsFromCSV(t, "2020-01-15,0.1,0.001,0.15")

	rows := Reconcile(txs, refs)
	if len(rows) != 2 {
		t.Fatalf("got %d merged rows, want one per transaction", len(rows))
	}
	// First row: own delta only, no reference computation.
	if !rows[0].Position.Quantity.Equal(Q(10)) || rows[0].Reference != nil {
		t.Errorf("first same-date row = %+v, want plain delta with no reference", rows[0])
	}

	report := Report(rows)
	if len(report) != 1 {
		t.Fatalf("got %d reportable rows, want 1", len(report))
	}
	row := report[0]
	if !row.Position.Quantity.Equal(Q(15)) {
		t.Errorf("running quantity = %s, want 15", row.Position.Quantity)
	}
	if !row.Position.Basis.Equal(M(2000.0)) {
		t.Errorf("running basis = %s, want 2000", row.Position.Basis)
	}
	// oz = 1.5, oz_sold = 0.015, cost_sold = 0.015/1.5*2000 = 20.00
	if got := row.CostSold.Cents(); got != "20.00" {
		t.Errorf("cost sold = %s, want 20.00", got)
	}
	if row.Expense == nil || row.Expense.Cents() != "2.25" {
		t.Errorf("expense = %v, want 2.25", row.Expense)
	}
}

func TestReconcile_sameDateBasisIsOrderIndependent(t *testing.T) {
	a := txsFromCSV(t,
		"2020-01-15,BUY,10,150.00",
		"2020-01-15,SELL,5,100.00",
	)
	b := txsFromCSV(t,
		"2020-01-15,SELL,5,100.00",
		"2020-01-15,BUY,10,150.00",
	)

	lastA := Reconcile(a, nil)[1].Position
	lastB := Reconcile(b, nil)[1].Position
	if !lastA.Quantity.Equal(lastB.Quantity) || !lastA.Basis.Equal(lastB.Basis) {
		t.Errorf("cumulative state after a date depends on intra-date order: %+v vs %+v", lastA, lastB)
	}
}

func TestReconcile_costSoldNeverExceedsBasis(t *testing.T) {
	txs := txsFromCSV(t, "2020-01-02,BUY,10,150.00")
	refs := refsFromCSV(t,
		"2020-01-15,0.1,0.001,0.15",
		"2020-02-15,0.1,0.099,14.85",
		"2020-03-15,0.1,0.1,15.00", // the whole backing sold
	)

	for _, row := range Report(Reconcile(txs, refs)) {
		if row.CostSold.IsNegative() {
			t.Errorf("%s: cost sold %s is negative", row.Date, row.CostSold)
		}
		if !row.CostSold.LessThanOrEqual(row.Position.Basis) {
			t.Errorf("%s: cost sold %s exceeds running basis %s", row.Date, row.CostSold, row.Position.Basis)
		}
	}
}

func TestReconcile_proceedsWithoutOuncesSoldIsNotEmitted(t *testing.T) {
	// Proceeds published with an absent ounces-sold cell: no ounces were
	// deemed sold for the holder, so nothing is taxable that date, however
	// non-zero the would-be expense.
	txs := txsFromCSV(t, "2020-01-02,BUY,10,150.00")
	refs := refsFromCSV(t, "2020-01-15,0.1,,0.15")

	rows := Reconcile(txs, refs)
	if report := Report(rows); len(report) != 0 {
		t.Errorf("got %d reportable rows, want none for an absent ounces sold", len(report))
	}
	// The row is still folded: the running state threads through it.
	if !rows[1].Position.Quantity.Equal(Q(10)) {
		t.Errorf("proceeds-only row broke the fold: %+v", rows[1].Position)
	}

	// A transaction on the same date makes the row eligible again.
	txs = txsFromCSV(t,
		"2020-01-02,BUY,10,150.00",
		"2020-01-15,BUY,1,151.00",
	)
	report := Report(Reconcile(txs, refs))
	if len(report) != 1 {
		t.Fatalf("got %d reportable rows, want the transaction-carrying one", len(report))
	}
	if report[0].Expense == nil || report[0].Expense.Cents() != "1.65" {
		t.Errorf("expense = %v, want 1.65 for 11 shares", report[0].Expense)
	}
}

func TestReconcile_zeroOuncesSoldIsNotAnEvent(t *testing.T) {
	// A published zero is present for the emission filter of the original
	// table, but carries no expense, so nothing survives the final filter.
	txs := txsFromCSV(t, "2020-01-02,BUY,10,150.00")
	refs := refsFromCSV(t, "2020-01-15,0.1,0,0")

	if report := Report(Reconcile(txs, refs)); len(report) != 0 {
		t.Errorf("got %d reportable rows, want none for a zero event", len(report))
	}
}

func TestReconcile_emptyInputs(t *testing.T) {
	if rows := Reconcile(nil, nil); len(rows) != 0 {
		t.Errorf("Reconcile(nil, nil) = %d rows, want none", len(rows))
	}
	refs := refsFromCSV(t, "2020-01-15,0.1,0.001,0.15")
	rows := Reconcile(nil, refs)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want the reference-only row", len(rows))
	}
	// No position: the event exists but consumes and recognizes nothing.
	if len(Report(rows)) != 0 {
		t.Errorf("a reference row with no position should not be reportable")
	}
}

func TestReconcile_datesAreTotallyOrdered(t *testing.T) {
	txs := txsFromCSV(t,
		"2020-01-02,BUY,10,150.00",
		"2020-03-02,BUY,1,149.00",
	)
	refs := refsFromCSV(t, "2020-02-14,0.1,0.001,0.15")

	rows := Reconcile(txs, refs)
	for i := 1; i < len(rows); i++ {
		if rows[i].Date.Before(rows[i-1].Date) {
			t.Fatalf("rows out of order: %s before %s", rows[i].Date, rows[i-1].Date)
		}
	}
	if !rows[2].Position.Quantity.Equal(Q(11)) {
		t.Errorf("final running quantity = %s, want 11", rows[2].Position.Quantity)
	}
}

func TestReconcile_interleavedSellChangesAllocation(t *testing.T) {
	// A sell between two expense events shrinks both the position and the
	// basis, so the second event consumes proportionally less.
	txs := txsFromCSV(t,
		"2020-01-02,BUY,10,150.00",
		"2020-02-01,SELL,5,150.00",
	)
	refs := refsFromCSV(t,
		"2020-01-15,0.1,0.001,0.15",
		"2020-02-15,0.1,0.001,0.15",
	)

	report := Report(Reconcile(txs, refs))
	if len(report) != 2 {
		t.Fatalf("got %d reportable rows, want 2", len(report))
	}
	if got := report[0].CostSold.Cents(); got != "15.00" {
		t.Errorf("first cost sold = %s, want 15.00", got)
	}
	// 5 shares, basis 750: oz=0.5, oz_sold=0.005, cost = 0.005/0.5*750
	if got := report[1].CostSold.Cents(); got != "7.50" {
		t.Errorf("second cost sold = %s, want 7.50", got)
	}
	if report[1].Expense == nil || report[1].Expense.Cents() != "0.75" {
		t.Errorf("second expense = %v, want 0.75", report[1].Expense)
	}
}

func TestRowHasExpense(t *testing.T) {
	zero := M(0)
	some := M(1.5)
	negative := some.Neg()
	testCases := []struct {
		name string
		row  Row
		want bool
	}{
		{"nothing", Row{}, false},
		{"zero expense only", Row{Expense: &zero}, false},
		{"non-zero expense", Row{Expense: &some}, true},
		{"non-zero cost sold", Row{CostSold: M(15.0)}, true},
		{"negative expense", Row{Expense: &negative}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.row.HasExpense(); got != tc.want {
				t.Errorf("HasExpense() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestReconcileKeepsTransactionIdentity(t *testing.T) {
	txs := txsFromCSV(t, "2020-01-02,BUY,10,150.00")
	rows := Reconcile(txs, nil)
	if rows[0].Transaction == nil || rows[0].Transaction.Date != date.MustParse("2020-01-02") {
		t.Errorf("row does not carry its transaction: %+v", rows[0])
	}
}
