package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/ukcgt/cgtcalc"
	"github.com/ukcgt/cgtcalc/renderer"
)

// calcCmd holds the flags for the 'calc' subcommand.
type calcCmd struct {
	csvFile    string
	symbol     string
	date       string
	shares     float64
	price      float64
	status     string
	home       string
	native     string
	allowance  float64
	basicRate  float64
	higherRate float64
}

func (*calcCmd) Name() string     { return "calc" }
func (*calcCmd) Synopsis() string { return "compute the CGT due on a share sale" }
func (*calcCmd) Usage() string {
	return `cgt calc -csv <export.csv> -symbol <ticker> -date <date> -shares <n> [-status basic|higher]

  Computes the UK Capital Gains Tax due on selling shares on a given date,
  matching the sale against the acquisition history with the HMRC rules
  (Bed & Breakfast, then Section 104 pooling).
`
}

func (c *calcCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.csvFile, "csv", "", "Path to the EquityAwardsCenter_EquityDetails CSV export")
	f.StringVar(&c.symbol, "symbol", "", "Stock symbol to sell")
	f.StringVar(&c.date, "date", cgtcalc.Today().String(), "Sell date (YYYY-MM-DD)")
	f.Float64Var(&c.shares, "shares", 0, "Number of shares to sell")
	f.Float64Var(&c.price, "price", 0, "Sale price per share in the native currency. Fetched from Yahoo Finance when omitted.")
	f.StringVar(&c.status, "status", "higher", "Taxpayer status (basic or higher)")
	f.StringVar(&c.home, "currency", "GBP", "Home currency of the tax computation")
	f.StringVar(&c.native, "native", "USD", "Currency of the export's prices")
	f.Float64Var(&c.allowance, "allowance", 12300, "Annual exempt amount, in the home currency")
	f.Float64Var(&c.basicRate, "basic-rate", 0.10, "CGT rate for basic rate taxpayers, as a fraction")
	f.Float64Var(&c.higherRate, "higher-rate", 0.20, "CGT rate for higher rate taxpayers, as a fraction")
}

func (c *calcCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sellDate, err := cgtcalc.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing sell date: %v\n", err)
		return subcommands.ExitUsageError
	}
	status, err := cgtcalc.ParseTaxpayerStatus(c.status)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing taxpayer status: %v\n", err)
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

	cfg := cgtcalc.Config{
		HomeCurrency:    c.home,
		AnnualAllowance: cgtcalc.M(c.allowance, c.home),
		BasicRate:       decimal.NewFromFloat(c.basicRate),
		HigherRate:      decimal.NewFromFloat(c.higherRate),
	}
	calc := cgtcalc.NewCalculator(cfg, cgtcalc.NewYahooRates(c.home))
	calc.Prices = cgtcalc.NewYahooPrices()

	var report *cgtcalc.GainReport
	if c.price > 0 {
		report, err = calc.Calculate(ledger, sellDate, cgtcalc.Q(c.shares), cgtcalc.M(c.price, c.native), status)
	} else {
		report, err = calc.CalculateAtMarket(ledger, sellDate, cgtcalc.Q(c.shares), status)
	}
	if err != nil {
		return fail(err)
	}

	printMarkdown(renderer.GainReportMarkdown(report))
	return subcommands.ExitSuccess
}
