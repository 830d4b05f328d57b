// Package cmd implements the CLI application computing UK CGT on equity
// award sales.
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/ukcgt/cgtcalc"
	"github.com/ukcgt/cgtcalc/schwab"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&calcCmd{}, "tax")
	c.Register(&lotsCmd{}, "tax")
	c.Register(&holdingsCmd{}, "holdings")
	c.Register(&topicCmd{}, "documentation")
}

// loadLedger parses a Schwab export and builds the ledger for one symbol.
func loadLedger(csvPath, symbol, native string) (*cgtcalc.Ledger, error) {
	if csvPath == "" {
		return nil, fmt.Errorf("missing -csv: path to the EquityAwardsCenter_EquityDetails export")
	}
	if symbol == "" {
		return nil, fmt.Errorf("missing -symbol")
	}
	txs, err := schwab.ParseFile(csvPath, native)
	if err != nil {
		return nil, err
	}
	return cgtcalc.NewLedger(symbol, txs...)
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the renderer cannot run (e.g. no usable terminal profile).
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Println(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Println(out)
}

// fail prints an error and returns the failure exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
