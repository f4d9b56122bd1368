package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/costbasis"
	"github.com/etnz/costbasis/renderer"
	"github.com/google/subcommands"
)

type lotsCmd struct {
	settingsFlags
	asset string
	used  bool
}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "lists the acquisition lots left after all disposals" }
func (*lotsCmd) Usage() string {
	return `cbt lots [-asset <asset>] [-used] [<history.jsonl>...]

  Replays the histories and lists the open acquisition lots of every asset,
  in the order the next disposals will consume them.
`
}

func (c *lotsCmd) SetFlags(f *flag.FlagSet) {
	c.settingsFlags.SetFlags(f)
	f.StringVar(&c.asset, "asset", "", "Only list lots of this asset")
	f.BoolVar(&c.used, "used", false, "Also list fully consumed lots")
}

func (c *lotsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	calc := acc.Calculator()
	assets := calc.Assets()
	if c.asset != "" {
		assets = []costbasis.Asset{costbasis.Asset(strings.ToUpper(c.asset)).CostBasisAsset()}
	}

	var b strings.Builder
	for _, asset := range assets {
		renderer.ConditionalBlock(&b, func(w io.Writer) bool {
			return lotsTable(w, fmt.Sprintf("%s open lots", asset), calc.Acquisitions(asset))
		})
		if c.used {
			renderer.ConditionalBlock(&b, func(w io.Writer) bool {
				return lotsTable(w, fmt.Sprintf("%s used lots", asset), calc.UsedAcquisitions(asset))
			})
		}
	}
	if b.Len() == 0 {
		fmt.Fprintln(os.Stderr, "no lots")
		return subcommands.ExitSuccess
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

// lotsTable prints lots as a markdown table, and reports whether there was any.
func lotsTable(w io.Writer, title string, lots []*costbasis.AcquisitionEvent) bool {
	fmt.Fprintf(w, "## %s\n\n", title)
	fmt.Fprintln(w, "| # | Date | Location | Amount | Remaining | Rate | Fee Rate |")
	fmt.Fprintln(w, "|---:|:---|:---|---:|---:|---:|---:|")
	for _, lot := range lots {
		fmt.Fprintf(w, "| %d | %s | %s | %s | %s | %s | %s |\n",
			lot.Index, lot.Timestamp, lot.Location, lot.Amount, lot.RemainingAmount, lot.Rate.Exact(), lot.FeeRate.Exact())
	}
	fmt.Fprintln(w)
	return len(lots) > 0
}
