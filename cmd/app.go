// Package cmd implements the CLI application computing shareholder
// investment expenses.
package cmd

import (
	"flag"

	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&expensesCmd{}, "reports")
	c.Register(&txCmd{}, "reports")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var grossProceedsDir = flag.String("gross-proceeds-dir", "gross_proceeds", "Path to the folder holding the sponsor gross proceeds datasets")
