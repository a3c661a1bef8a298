package goldfees

import (
	"encoding/csv"
	"fmt"
	"io"
)

// reportHeader lists the output columns. The symbol comes first so a report
// can be concatenated with reports for other symbols and stay self-describing.
var reportHeader = []string{
	"symbol",
	"date",
	"ounces_per_share",
	"per_share_ounces_sold_to_cover_expenses",
	"proceeds_per_share",
	"running_quantity",
	"running_basis",
	"oz",
	"oz_sold",
	"cost_sold",
	"expense",
}

// WriteCSV writes the reportable rows as CSV. Absent reference values are
// written as empty cells, the two rounded monetary columns with two decimal
// places, and everything else as exact decimals.
func WriteCSV(w io.Writer, symbol string, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return fmt.Errorf("writing report header: %w", err)
	}
	for _, row := range Report(rows) {
		// A reportable row always carries a reference record: both CostSold
		// and Expense require one to be non-zero.
		record := []string{
			symbol,
			row.Date.String(),
			quantityCell(row.Reference.OuncesPerShare),
			quantityCell(row.Reference.OuncesSoldToCoverExpenses),
			moneyCell(row.Reference.ProceedsPerShare),
			row.Position.Quantity.String(),
			row.Position.Basis.String(),
			row.Oz.String(),
			row.OzSold.String(),
			row.CostSold.Cents(),
			expenseCell(row.Expense),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing report row for %s: %w", row.Date, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Totals sums the two reported monetary columns over the reportable rows.
// These are the two numbers that end up on the tax form.
func Totals(rows []Row) (costSold, expense Money) {
	for _, row := range Report(rows) {
		costSold = costSold.Add(row.CostSold)
		if row.Expense != nil {
			expense = expense.Add(*row.Expense)
		}
	}
	return costSold, expense
}

func quantityCell(q *Quantity) string {
	if q == nil {
		return ""
	}
	return q.String()
}

func moneyCell(m *Money) string {
	if m == nil {
		return ""
	}
	return m.String()
}

func expenseCell(m *Money) string {
	if m == nil {
		return ""
	}
	return m.Cents()
}
