package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type clearCmd struct{}

func (*clearCmd) Name() string     { return "clear" }
func (*clearCmd) Synopsis() string { return "delete all holdings" }
func (*clearCmd) Usage() string {
	return `hld clear

  Deletes every holding.
`
}

func (*clearCmd) SetFlags(f *flag.FlagSet) {}

func (c *clearCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tracker, closeStore, err := OpenTracker(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error opening holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeStore()

	if err := tracker.ClearAll(ctx); err != nil {
		return exitStatus(err)
	}
	fmt.Fprintln(stderr, "✅ All holdings deleted.")
	return subcommands.ExitSuccess
}
