package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/etnz/holdings/renderer"
	"github.com/google/subcommands"
)

type deleteCmd struct{}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a holding by its number" }
func (*deleteCmd) Usage() string {
	return `hld delete <number>

  Deletes the holding displayed with <number> (starting at 1) by 'hld list'.
  The following holdings move up by one.
`
}

func (*deleteCmd) SetFlags(f *flag.FlagSet) {}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: delete requires exactly one holding number.")
		f.Usage()
		return subcommands.ExitUsageError
	}
	n, err := strconv.Atoi(f.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %q is not a holding number.\n", f.Arg(0))
		return subcommands.ExitUsageError
	}

	tracker, closeStore, err := OpenTracker(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error opening holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	if err := tracker.DeleteHolding(ctx, n-1); err != nil {
		return exitStatus(err)
	}
	printMarkdown(renderer.HoldingsMarkdown(tracker.Snapshot()))
	return subcommands.ExitSuccess
}
