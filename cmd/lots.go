package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/ukcgt/cgtcalc"
	"github.com/ukcgt/cgtcalc/renderer"
)

// lotsCmd holds the flags for the 'lots' subcommand.
type lotsCmd struct {
	csvFile string
	symbol  string
	date    string
	shares  float64
	home    string
	native  string
}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "show which lots a sale would consume" }
func (*lotsCmd) Usage() string {
	return `cgt lots -csv <export.csv> -symbol <ticker> -date <date> -shares <n>

  Dry-runs the share matching for a sale: which acquisitions would be
  consumed, under which rule, at what cost. No tax is computed.
`
}

func (c *lotsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.csvFile, "csv", "", "Path to the EquityAwardsCenter_EquityDetails CSV export")
	f.StringVar(&c.symbol, "symbol", "", "Stock symbol to sell")
	f.StringVar(&c.date, "date", cgtcalc.Today().String(), "Sell date (YYYY-MM-DD)")
	f.Float64Var(&c.shares, "shares", 0, "Number of shares to sell")
	f.StringVar(&c.home, "currency", "GBP", "Home currency of the cost conversion")
	f.StringVar(&c.native, "native", "USD", "Currency of the export's prices")
}

func (c *lotsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sellDate, err := cgtcalc.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing sell date: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.shares <= 0 {
		fmt.Fprintln(os.Stderr, "-shares must be a positive number")
		return subcommands.ExitUsageError
	}

	ledger, err := loadLedger(c.csvFile, c.symbol, c.native)
	if err != nil {
		return fail(err)
	}

	quantity := cgtcalc.Q(c.shares)
	if err := cgtcalc.ValidateSufficiency(ledger, sellDate, quantity); err != nil {
		return fail(err)
	}

	conv := cgtcalc.NewConverter(c.home, cgtcalc.NewYahooRates(c.home))
	lots, err := cgtcalc.Match(ledger, conv, sellDate, quantity)
	if err != nil {
		return fail(err)
	}

	md := fmt.Sprintf("# Selling %s × %s on %s\n\n", quantity, ledger.Security(), sellDate)
	printMarkdown(md + renderer.MatchedLotsMarkdown(lots))
	return subcommands.ExitSuccess
}
