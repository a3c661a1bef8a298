package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/goldfees"
	"github.com/etnz/goldfees/date"
	"github.com/etnz/goldfees/renderer"
	"github.com/google/subcommands"
)

// expensesCmd holds the flags for the 'expenses' subcommand.
type expensesCmd struct {
	split   string
	taxYear int
	format  string
}

func (*expensesCmd) Name() string { return "expenses" }
func (*expensesCmd) Synopsis() string {
	return "compute the shareholder investment expenses for a symbol"
}
func (*expensesCmd) Usage() string {
	return `goldfees expenses [-split <ratio>] [-tax-year <year>] [-format csv|markdown] <symbol> <transactions.csv>

  Reconciles the transaction history against the sponsor's gross proceeds
  dataset for the symbol and tax year, and prints one row per expense event:
  the cost basis consumed and the dollar expense recognized. CSV goes to
  standard output.
`
}

func (c *expensesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.split, "split", "", "Split ratio adjustment for quantity and price, e.g. 2 after a 2-for-1 split.")
	f.StringVar(&c.split, "s", "", "Alias for -split.")
	f.IntVar(&c.taxYear, "tax-year", date.Today().Year(), "Tax year selecting the gross proceeds dataset.")
	f.IntVar(&c.taxYear, "y", date.Today().Year(), "Alias for -tax-year.")
	f.StringVar(&c.format, "format", "csv", "Output format (csv, markdown).")
}

func (c *expensesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "want exactly a <symbol> and a <transactions.csv> argument")
		return subcommands.ExitUsageError
	}
	symbol, transactionsFile := f.Arg(0), f.Arg(1)

	var split *goldfees.Quantity
	if c.split != "" {
		ratio, err := goldfees.ParseQuantity(c.split)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing split ratio %q: %v\n", c.split, err)
			return subcommands.ExitUsageError
		}
		split = &ratio
	}

	txs, err := goldfees.LoadTransactions(transactionsFile, split)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	refs, err := goldfees.LoadGrossProceeds(*grossProceedsDir, symbol, c.taxYear)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	rows := goldfees.Reconcile(txs, refs)

	switch c.format {
	case "csv":
		if err := goldfees.WriteCSV(os.Stdout, symbol, rows); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
			return subcommands.ExitFailure
		}
		costSold, expense := goldfees.Totals(rows)
		fmt.Fprintf(os.Stderr, "%s %d: cost basis consumed %s, expenses recognized %s\n",
			symbol, c.taxYear, costSold.Display(), expense.Display())
	case "markdown":
		printMarkdown(renderer.Expenses(renderer.NewExpenseReport(symbol, rows)))
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q, want csv or markdown\n", c.format)
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}
