package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/goldfees/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	cmd.Register(commander)
	commander.Register(commander.HelpCommand(), "documentation")
	commander.Register(commander.FlagsCommand(), "documentation")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
