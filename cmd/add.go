package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/holdings/renderer"
	"github.com/google/subcommands"
)

type addCmd struct{}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a holding, fetching its current price" }
func (*addCmd) Usage() string {
	return `hld add <ticker> <buy-price> <amount>

  Adds a holding of <amount> units of <ticker> bought at <buy-price> per unit.
  The current price is fetched from the quote service; if it is unavailable
  nothing is added.

Usage Examples:
$ hld add AAPL 150 10
`
}

func (*addCmd) SetFlags(f *flag.FlagSet) {}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprintln(stderr, "Error: add requires <ticker> <buy-price> <amount>.")
		f.Usage()
		return subcommands.ExitUsageError
	}

	tracker, closeStore, err := OpenTracker(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error opening holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	if err := tracker.AddHolding(ctx, f.Arg(0), f.Arg(1), f.Arg(2)); err != nil {
		return exitStatus(err)
	}
	s := tracker.Snapshot()
	added := s.Lines[len(s.Lines)-1]
	fmt.Fprintf(stderr, "✅ Added %d %s at %s (current price %s).\n", added.Amount, added.Ticker, added.BuyPrice, added.CurrentPrice)
	printMarkdown(renderer.HoldingsMarkdown(s))
	return subcommands.ExitSuccess
}
