package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/costbasis/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	settingsFlags
	format string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "profit and loss report of all disposals" }
func (*reportCmd) Usage() string {
	return `cbt report [-c <currency>] [-period <seconds>] [-method <method>] [-format <format>] [<history.jsonl>...]

  Replays the histories and reports, for every disposal, the lots it consumed,
  its cost basis and its profit and loss, with yearly totals.
  Without arguments, every .jsonl file under the current directory is used.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.settingsFlags.SetFlags(f)
	f.StringVar(&c.format, "format", "markdown", "Output format (markdown, html, json)")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	settings, err := c.Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in settings: %v\n", err)
		return subcommands.ExitUsageError
	}

	_, report, err := process(settings, f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error processing histories: %v\n", err)
		return subcommands.ExitFailure
	}

	switch c.format {
	case "markdown":
		printMarkdown(renderer.Markdown(report))
	case "html":
		html, err := renderer.HTML(renderer.Markdown(report))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering report: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprint(stdout, html)
	case "json":
		data, err := report.MarshalJSON()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintln(stdout, string(data))
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}
