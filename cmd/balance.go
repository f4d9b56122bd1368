package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/costbasis"
	"github.com/google/subcommands"
)

type balanceCmd struct {
	settingsFlags
	asset  string
	expect string
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "reconciles the computed balance of an asset" }
func (*balanceCmd) Usage() string {
	return `cbt balance -asset <asset> -expect <amount> [<history.jsonl>...]

  Replays the histories and compares the amount of asset left in open lots
  with the amount actually held. Exits with a failure when they differ.
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {
	c.settingsFlags.SetFlags(f)
	f.StringVar(&c.asset, "asset", "", "Asset to reconcile")
	f.StringVar(&c.expect, "expect", "", "Amount actually held")
}

func (c *balanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.expect == "" {
		fmt.Fprintln(os.Stderr, "-asset and -expect are required")
		return subcommands.ExitUsageError
	}
	expected, err := costbasis.ParseQuantity(c.expect)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing expected amount: %v\n", err)
		return subcommands.ExitUsageError
	}
	settings, err := c.Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in settings: %v\n", err)
		return subcommands.ExitUsageError
	}
	acc, _, err := process(settings, f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error processing histories: %v\n", err)
		return subcommands.ExitFailure
	}

	asset := costbasis.Asset(strings.ToUpper(c.asset))
	computed, _ := acc.Calculator().CalculatedAssetAmount(asset)
	if !computed.Equal(expected) {
		fmt.Fprintf(stdout, "%s: computed %s, expected %s, difference %s\n", asset, computed, expected, expected.Sub(computed))
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "%s: %s\n", asset, computed)
	return subcommands.ExitSuccess
}
