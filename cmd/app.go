// Package cmd implements the cbt command line application.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/costbasis"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, "accounting")
	}
	c.Register(&importCmd{}, "histories")
	c.Register(&fmtCmd{}, "histories")
	c.Register(&topicCmd{}, "help")
}

// Commands computing on histories.
var Commands = []subcommands.Command{
	&reportCmd{},
	&lotsCmd{},
	&balanceCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "cbt.ini", "Path to the settings file (INI format)")

// stdout receives the command results.
var stdout io.Writer = os.Stdout

// settingsFlags are the flags overriding the settings file.
type settingsFlags struct {
	currency string
	period   string
	method   string
}

func (s *settingsFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&s.currency, "c", "", "Reference currency. Overrides the settings file.")
	f.StringVar(&s.period, "period", "", "Tax-free holding period in seconds, \"year\" or \"never\". Overrides the settings file.")
	f.StringVar(&s.method, "method", "", "Cost basis method (fifo, lifo, hifo, average). Overrides the settings file.")
}

// Settings loads the settings file and applies the flags on top of it.
func (s *settingsFlags) Settings() (costbasis.Settings, error) {
	settings, err := LoadSettings()
	if err != nil {
		return settings, err
	}
	if s.currency != "" {
		settings.ReferenceCurrency = costbasis.Asset(s.currency)
	}
	if s.method != "" {
		if settings.Method, err = costbasis.ParseCostBasisMethod(s.method); err != nil {
			return settings, err
		}
	}
	switch s.period {
	case "":
	case "never":
		settings.TaxFreeAfterPeriod = nil
	case "year":
		p := costbasis.YearInSeconds
		settings.TaxFreeAfterPeriod = &p
	default:
		p, err := strconv.ParseInt(s.period, 10, 64)
		if err != nil {
			return settings, fmt.Errorf("%w: %q is not a number of seconds", costbasis.ErrInvalidTaxFreePeriod, s.period)
		}
		settings.TaxFreeAfterPeriod = &p
	}
	return settings, settings.Validate()
}

// LoadSettings reads the app settings file, or returns default settings if there is none.
func LoadSettings() (costbasis.Settings, error) {
	if _, err := os.Stat(*configFile); errors.Is(err, fs.ErrNotExist) {
		return costbasis.DefaultSettings(), nil
	}
	return costbasis.LoadSettings(*configFile)
}

// process loads histories and runs them through an accountant.
func process(settings costbasis.Settings, paths []string) (*costbasis.Accountant, *costbasis.Report, error) {
	if len(paths) == 0 {
		found, err := costbasis.FindHistories(".")
		if err != nil {
			return nil, nil, err
		}
		paths = found
	}
	history, err := costbasis.LoadHistories(paths...)
	if err != nil {
		return nil, nil, err
	}
	acc, err := costbasis.NewAccountant(settings)
	if err != nil {
		return nil, nil, err
	}
	report, err := acc.Process(history)
	if err != nil {
		return nil, nil, err
	}
	return acc, report, nil
}

// printMarkdown renders md for the terminal, or prints it raw if it cannot.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	log.Printf("warning, cannot render markdown: %v", err)
	fmt.Fprint(stdout, md)
}
