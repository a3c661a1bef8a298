package goldfees

import (
	"github.com/etnz/goldfees/date"
)

// Position is the running state of the reconciliation fold: the net signed
// share count and the dollar cost basis of the open position as of a row.
type Position struct {
	Quantity Quantity
	Basis    Money
}

// Row is one row of the reconciled timeline: the outer join of a transaction
// and the gross proceeds reference record for one date, threaded with the
// running position.
//
// Transaction is nil on reference-only dates. Reference is nil when the
// sponsor published nothing for the date; when several transactions share a
// date it is attached only to the date's last row, after all of the date's
// deltas have entered the running position.
type Row struct {
	Date        date.Date
	Transaction *Transaction
	Reference   *GrossProceeds

	Position Position // running state, including this row's own transaction

	Oz       Quantity // ounces backing the position: Position.Quantity * ounces_per_share
	OzSold   Quantity // ounces deemed sold for this position on an expense event
	CostSold Money    // basis fraction consumed by the event, rounded to cents
	Expense  *Money   // proceeds recognized by the event, rounded to cents; nil when none published
}

// HasExpense reports whether the row recognizes anything taxable: a non-zero
// expense or a non-zero consumed cost. Only such rows belong in the report.
func (r Row) HasExpense() bool {
	return (r.Expense != nil && !r.Expense.IsZero()) || !r.CostSold.IsZero()
}

// carriesEvent reports whether the row is eligible for emission at all: it
// must carry a transaction instruction or a published (non-absent) ounces
// sold value. A row publishing only proceeds is informational, no ounces
// were deemed sold for the holder that date.
func (r Row) carriesEvent() bool {
	return r.Transaction != nil ||
		(r.Reference != nil && r.Reference.OuncesSoldToCoverExpenses != nil)
}

// Reconcile outer-joins the transaction history with the sponsor's reference
// table on date and folds the running position over the merged timeline.
//
// It returns every merged row, reportable or not: a row carrying only an
// ounces_per_share value never reaches the report, but it must still be
// visited so the date's backing ratio meets the running position built from
// earlier rows. Use [Report] to keep only the rows worth emitting.
//
// Both inputs must be date-ascending, as the loaders produce them. Each
// transaction yields its own row so same-date trades each contribute their
// own delta in input order.
func Reconcile(txs []Transaction, refs []GrossProceeds) []Row {
	rows := merge(txs, refs)

	// The fold: each row's position depends only on the previous row's
	// position and the row's own transaction. Reference-only rows pass the
	// state through unchanged.
	var pos Position
	for k := range rows {
		row := &rows[k]
		if row.Transaction != nil {
			pos.Quantity = pos.Quantity.Add(row.Transaction.SignedQuantity())
			pos.Basis = pos.Basis.Add(row.Transaction.Cost())
		}
		row.Position = pos
		derive(row)
	}
	return rows
}

// merge builds the joined timeline. Dates from both sources form one total
// order; within a date, transactions keep their input order and the reference
// record lands on the last of them.
func merge(txs []Transaction, refs []GrossProceeds) []Row {
	rows := make([]Row, 0, len(txs)+len(refs))
	i, j := 0, 0
	for i < len(txs) || j < len(refs) {
		switch {
		case j == len(refs) || (i < len(txs) && txs[i].Date.Before(refs[j].Date)):
			rows = append(rows, Row{Date: txs[i].Date, Transaction: &txs[i]})
			i++
		case i == len(txs) || refs[j].Date.Before(txs[i].Date):
			rows = append(rows, Row{Date: refs[j].Date, Reference: &refs[j]})
			j++
		default:
			// Same date on both sides: every transaction of the date gets its
			// own row, the reference record rides on the last one.
			on := txs[i].Date
			for i < len(txs) && txs[i].Date == on {
				rows = append(rows, Row{Date: on, Transaction: &txs[i]})
				i++
			}
			rows[len(rows)-1].Reference = &refs[j]
			j++
		}
	}
	return rows
}

// derive computes the per-row ounce and expense fields from the row's own
// running position and reference record.
func derive(row *Row) {
	ref := row.Reference

	var perShare Quantity
	if ref != nil && ref.OuncesPerShare != nil {
		perShare = *ref.OuncesPerShare
	}
	row.Oz = row.Position.Quantity.Mul(perShare)

	if ref != nil && ref.OuncesSoldToCoverExpenses != nil && !ref.OuncesSoldToCoverExpenses.IsZero() {
		row.OzSold = row.Position.Quantity.Mul(*ref.OuncesSoldToCoverExpenses)
		// Never divide by a non-positive Oz: a missing backing ratio or a
		// short position yields a zero cost instead.
		if row.Oz.IsPositive() {
			row.CostSold = row.Position.Basis.Mul(row.OzSold).Div(row.Oz).Round()
		}
	}

	if ref != nil && ref.ProceedsPerShare != nil && !ref.ProceedsPerShare.IsZero() {
		expense := ref.ProceedsPerShare.Mul(row.Position.Quantity).Round()
		row.Expense = &expense
	}
}

// Report keeps only the rows eligible for emission (a transaction or a
// published ounces-sold value) that recognize a taxable expense. Filtering
// happens strictly after the fold, so dropped rows still fed the running
// position of every row after them.
func Report(rows []Row) []Row {
	report := make([]Row, 0, len(rows))
	for _, row := range rows {
		if row.carriesEvent() && row.HasExpense() {
			report = append(report, row)
		}
	}
	return report
}
