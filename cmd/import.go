package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/costbasis"
	"github.com/google/subcommands"
)

type importCmd struct {
	mapping string
	output  string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "converts a JSON export into a history" }
func (*importCmd) Usage() string {
	return `cbt import -mapping <name> [-o <history.jsonl>] <export.json>

  Converts a JSON export into history actions, using the [import.<name>]
  mapping of the settings file. Actions are printed in JSONL format, or
  appended to the -o history file.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.mapping, "mapping", "", "Name of the import mapping")
	f.StringVar(&c.output, "o", "", "History file to append actions to")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || c.mapping == "" {
		fmt.Fprintln(os.Stderr, "a -mapping and exactly one export file are required")
		return subcommands.ExitUsageError
	}
	settings, err := LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}
	mapping, ok := settings.Mappings[c.mapping]
	if !ok {
		fmt.Fprintf(os.Stderr, "no mapping [import.%s] in %s\n", c.mapping, *configFile)
		return subcommands.ExitUsageError
	}

	in, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening export: %v\n", err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	imported, err := mapping.Import(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}

	if c.output == "" {
		if err := costbasis.EncodeHistory(stdout, imported); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing actions: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	history := costbasis.NewHistory(c.output)
	if _, err := os.Stat(c.output); err == nil {
		if history, err = costbasis.LoadHistory(c.output); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
	}
	for _, a := range imported.Actions() {
		history.Append(a)
	}
	if err := costbasis.SaveHistory(c.output, history); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Imported %d actions into %s\n", imported.Len(), c.output)
	return subcommands.ExitSuccess
}
