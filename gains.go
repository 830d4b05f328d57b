package cgtcalc

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxpayerStatus is the UK income-tax band of the taxpayer, which selects
// the applicable CGT rate.
type TaxpayerStatus int

const (
	// Basic rate taxpayer.
	Basic TaxpayerStatus = iota
	// Higher rate taxpayer.
	Higher
)

func (s TaxpayerStatus) String() string {
	switch s {
	case Basic:
		return "basic"
	case Higher:
		return "higher"
	default:
		return "unknown"
	}
}

// ParseTaxpayerStatus parses a string into a TaxpayerStatus.
func ParseTaxpayerStatus(s string) (TaxpayerStatus, error) {
	switch s {
	case "basic":
		return Basic, nil
	case "higher":
		return Higher, nil
	default:
		return 0, fmt.Errorf("unknown taxpayer status: %q", s)
	}
}

// Config bundles the tax parameters of one calculation. Rates are
// fractions, not percentages.
type Config struct {
	HomeCurrency    string
	AnnualAllowance Money
	BasicRate       decimal.Decimal
	HigherRate      decimal.Decimal
}

// DefaultConfig returns the parameters for the 2022/23 tax year: a £12,300
// annual exempt amount and the 10%/20% shares rates.
func DefaultConfig() Config {
	return Config{
		HomeCurrency:    "GBP",
		AnnualAllowance: M(12300, "GBP"),
		BasicRate:       decimal.NewFromFloat(0.10),
		HigherRate:      decimal.NewFromFloat(0.20),
	}
}

// Rate returns the CGT rate for the given taxpayer status, failing with
// *InvalidRateError when the configured fraction is out of (0, 1].
func (c Config) Rate(status TaxpayerStatus) (decimal.Decimal, error) {
	rate := c.BasicRate
	if status == Higher {
		rate = c.HigherRate
	}
	if !rate.IsPositive() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Decimal{}, &InvalidRateError{Rate: rate}
	}
	return rate, nil
}

// GainReport is the terminal output of a calculation. All amounts are in
// the home currency.
type GainReport struct {
	Security string
	SellDate Date
	Quantity Quantity
	Status   TaxpayerStatus

	Proceeds            Money
	Cost                Money
	BedAndBreakfastCost Money
	Section104Cost      Money
	NetGain             Money // may be negative; a loss never refunds tax
	TaxableAmount       Money // net gain after the annual allowance, floored at zero
	Rate                Percent
	TaxDue              Money // rounded to the currency's fraction, half-up

	Lots []MatchedLot
}

// NetProceeds returns what the seller keeps: proceeds minus the tax due.
func (r *GainReport) NetProceeds() Money { return r.Proceeds.Sub(r.TaxDue) }

// Compute aggregates matched lots and sale terms into a GainReport.
//
// Proceeds are the full disposal quantity at the sale unit price, converted
// at the sell date. Each matched lot is also priced here (its share of the
// proceeds), so the matching engine stays independent of the sale price.
func (c Config) Compute(conv *Converter, lots []MatchedLot, quantity Quantity, salePrice Money, sellDate Date, status TaxpayerStatus) (*GainReport, error) {
	rate, err := c.Rate(status)
	if err != nil {
		return nil, err
	}

	unitProceeds, err := conv.Convert(salePrice, sellDate)
	if err != nil {
		return nil, err
	}

	report := &GainReport{
		SellDate: sellDate,
		Quantity: quantity,
		Status:   status,
		Proceeds: unitProceeds.Mul(quantity),
		Rate:     Percent(rate.InexactFloat64() * 100),
	}

	zero := M(0, c.HomeCurrency)
	report.Cost = zero
	report.BedAndBreakfastCost = zero
	report.Section104Cost = zero

	for i := range lots {
		lots[i].Proceeds = unitProceeds.Mul(lots[i].Quantity)
		report.Cost = report.Cost.Add(lots[i].Cost)
		switch lots[i].Rule {
		case BedAndBreakfast:
			report.BedAndBreakfastCost = report.BedAndBreakfastCost.Add(lots[i].Cost)
		case Section104:
			report.Section104Cost = report.Section104Cost.Add(lots[i].Cost)
		}
	}
	report.Lots = lots

	report.NetGain = report.Proceeds.Sub(report.Cost)

	taxable := report.NetGain.Sub(c.AnnualAllowance)
	if taxable.IsNegative() {
		taxable = zero
	}
	report.TaxableAmount = taxable
	report.TaxDue = taxable.Scale(rate).Round()

	return report, nil
}
