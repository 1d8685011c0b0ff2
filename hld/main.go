// Command hld tracks equity holdings and their unrealized profit.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/holdings/cmd"
	"github.com/google/subcommands"
)

func main() {
	// answers shell completion requests (COMP_LINE) and exits.
	cmd.Completion().Complete("hld")

	commander := subcommands.NewCommander(flag.CommandLine, "hld")
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
