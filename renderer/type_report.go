package renderer

import (
	"github.com/etnz/goldfees"
)

// ExpenseReport is the view model of the expense report template: one line
// per expense event, every number preformatted.
type ExpenseReport struct {
	Symbol       string
	Rows         []ExpenseRow
	TotalCost    string // total cost basis consumed, as display USD
	TotalExpense string // total expense recognized, as display USD
}

// ExpenseRow is one rendered expense event.
type ExpenseRow struct {
	Date            string
	RunningQuantity string
	RunningBasis    string
	Oz              string
	OzSold          string
	CostSold        string
	Expense         string
}

// NewExpenseReport builds the view model from reconciled rows, keeping only
// the reportable ones.
func NewExpenseReport(symbol string, rows []goldfees.Row) *ExpenseReport {
	r := &ExpenseReport{Symbol: symbol}
	for _, row := range goldfees.Report(rows) {
		er := ExpenseRow{
			Date:            row.Date.String(),
			RunningQuantity: row.Position.Quantity.String(),
			RunningBasis:    row.Position.Basis.Cents(),
			Oz:              row.Oz.String(),
			OzSold:          row.OzSold.String(),
			CostSold:        row.CostSold.Cents(),
		}
		if row.Expense != nil {
			er.Expense = row.Expense.Cents()
		}
		r.Rows = append(r.Rows, er)
	}
	costSold, expense := goldfees.Totals(rows)
	r.TotalCost = costSold.Display()
	r.TotalExpense = expense.Display()
	return r
}

// TransactionLog is the view model of the transaction history template.
type TransactionLog struct {
	Rows []TransactionRow
}

// TransactionRow is one rendered transaction with the position it leaves.
type TransactionRow struct {
	Date            string
	Instruction     string
	Quantity        string
	Price           string
	RunningQuantity string
	RunningBasis    string
}

// NewTransactionLog builds the view model from reconciled rows, keeping only
// the ones that carry a transaction.
func NewTransactionLog(rows []goldfees.Row) *TransactionLog {
	l := &TransactionLog{}
	for _, row := range rows {
		if row.Transaction == nil {
			continue
		}
		tx := row.Transaction
		l.Rows = append(l.Rows, TransactionRow{
			Date:            row.Date.String(),
			Instruction:     string(tx.Instruction),
			Quantity:        tx.Quantity.String(),
			Price:           tx.Price.Cents(),
			RunningQuantity: row.Position.Quantity.String(),
			RunningBasis:    row.Position.Basis.Cents(),
		})
	}
	return l
}
