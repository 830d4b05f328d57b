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

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	csvFile string
	symbol  string
	date    string
	native  string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "list acquisitions and the total held on a date" }
func (*holdingsCmd) Usage() string {
	return `cgt holdings -csv <export.csv> -symbol <ticker> [-date <date>]

  Lists the acquisition history of a symbol and the quantity held as of a
  date.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.csvFile, "csv", "", "Path to the EquityAwardsCenter_EquityDetails CSV export")
	f.StringVar(&c.symbol, "symbol", "", "Stock symbol")
	f.StringVar(&c.date, "date", cgtcalc.Today().String(), "Reference date (YYYY-MM-DD)")
	f.StringVar(&c.native, "native", "USD", "Currency of the export's prices")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := cgtcalc.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := loadLedger(c.csvFile, c.symbol, c.native)
	if err != nil {
		return fail(err)
	}

	printMarkdown(renderer.HoldingsMarkdown(ledger, on))
	return subcommands.ExitSuccess
}
