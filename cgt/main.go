package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/ukcgt/cgtcalc/cmd"
)

func main() {
	// Shell completion: this returns immediately unless the shell is
	// asking for completions.
	completion().Complete("cgt")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	ledgerFlags := map[string]complete.Predictor{
		"csv":    predict.Files("*.csv"),
		"symbol": predict.Something,
		"date":   predict.Something,
	}
	saleFlags := map[string]complete.Predictor{
		"csv":      predict.Files("*.csv"),
		"symbol":   predict.Something,
		"date":     predict.Something,
		"shares":   predict.Something,
		"currency": predict.Set{"GBP", "EUR", "USD"},
		"native":   predict.Set{"USD", "GBP", "EUR"},
	}
	calcFlags := map[string]complete.Predictor{
		"status":      predict.Set{"basic", "higher"},
		"price":       predict.Something,
		"allowance":   predict.Something,
		"basic-rate":  predict.Something,
		"higher-rate": predict.Something,
	}
	for k, v := range saleFlags {
		calcFlags[k] = v
	}

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"calc":     {Flags: calcFlags},
			"lots":     {Flags: saleFlags},
			"holdings": {Flags: ledgerFlags},
			"topic":    {Args: predict.Set{"readme", "matching", "rates"}},
		},
	}
}
