package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/holdings/renderer"
	"github.com/google/subcommands"
)

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "display holdings and their profit" }
func (*listCmd) Usage() string {
	return `hld list

  Displays every holding with its profit in base and display currency, whether
  it is worth selling, and the portfolio total.
`
}

func (*listCmd) SetFlags(f *flag.FlagSet) {}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tracker, closeStore, err := OpenTracker(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error opening holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	printMarkdown(renderer.HoldingsMarkdown(tracker.Snapshot()))
	return subcommands.ExitSuccess
}
