package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/goldfees"
	"github.com/etnz/goldfees/renderer"
	"github.com/google/subcommands"
)

// txCmd holds the flags for the 'tx' subcommand.
type txCmd struct {
	split string
}

func (*txCmd) Name() string { return "tx" }
func (*txCmd) Synopsis() string {
	return "display the normalized transaction history and its running position"
}
func (*txCmd) Usage() string {
	return `goldfees tx [-split <ratio>] <transactions.csv>

  Parses, sorts and (optionally) split-adjusts the transaction history, and
  displays it with the running share count and cost basis after each
  transaction. Useful to audit the loader's view of a history before
  trusting the expenses report.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.split, "split", "", "Split ratio adjustment for quantity and price.")
	f.StringVar(&c.split, "s", "", "Alias for -split.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "want exactly a <transactions.csv> argument")
		return subcommands.ExitUsageError
	}

	var split *goldfees.Quantity
	if c.split != "" {
		ratio, err := goldfees.ParseQuantity(c.split)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing split ratio %q: %v\n", c.split, err)
			return subcommands.ExitUsageError
		}
		split = &ratio
	}

	txs, err := goldfees.LoadTransactions(f.Arg(0), split)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	// Reconcile against an empty reference table: the fold still threads the
	// running position through every transaction.
	rows := goldfees.Reconcile(txs, nil)
	printMarkdown(renderer.Transactions(renderer.NewTransactionLog(rows)))
	return subcommands.ExitSuccess
}
