package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/costbasis"
	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats history files into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `cbt fmt [<history.jsonl>...]

  Validates and formats history files. This command reads all actions,
  validates them, sorts them by timestamp, and writes them back in a
  canonical JSONL format. Without arguments, every .jsonl file under the
  current directory is formatted in-place.
`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	paths := f.Args()
	if len(paths) == 0 {
		var err error
		if paths, err = costbasis.FindHistories("."); err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not find histories: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "Warning: no histories found to format.\n")
		return subcommands.ExitSuccess
	}

	status := subcommands.ExitSuccess
	for _, path := range paths {
		history, err := costbasis.LoadHistory(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			status = subcommands.ExitFailure
			continue
		}
		if err := costbasis.SaveHistory(path, history); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving formatted history %q: %v\n", path, err)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Fprintf(os.Stderr, "Formatted %q.\n", path)
	}
	return status
}
