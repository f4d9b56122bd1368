package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/costbasis/cmd"
	"github.com/etnz/costbasis/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// predictors of flag values, by flag name. Other flags accept anything.
var predictors = map[string]complete.Predictor{
	"config":  predict.Files("*.ini"),
	"format":  predict.Set{"markdown", "html", "json"},
	"method":  predict.Set{"fifo", "lifo", "hifo", "average"},
	"period":  predict.Set{"year", "never"},
	"o":       predict.Files("*.jsonl"),
	"c":       predict.Set{"EUR", "USD", "GBP", "CHF"},
	"used":    predict.Nothing,
	"mapping": predict.Something,
}

// completion describes the commands and their flags for shell completion.
func completion(commander *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: make(map[string]complete.Predictor),
	}
	commander.VisitAll(func(f *flag.Flag) { root.Flags[f.Name] = predictorOf(f.Name) })
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{
			Flags: make(map[string]complete.Predictor),
			Args:  predict.Files("*.jsonl"),
		}
		switch c.Name() {
		case "import":
			sub.Args = predict.Files("*.json")
		case "topic":
			topics, _ := docs.GetAllTopics()
			sub.Args = predict.Set(topics)
		}
		fs.VisitAll(func(f *flag.Flag) { sub.Flags[f.Name] = predictorOf(f.Name) })
		root.Sub[c.Name()] = sub
	})
	return root
}

func predictorOf(name string) complete.Predictor {
	if p, ok := predictors[name]; ok {
		return p
	}
	return predict.Something
}

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// exits when invoked by the shell for completion.
	completion(commander).Complete("cbt")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
