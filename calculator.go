package cgtcalc

import "fmt"

// PriceSource provides the closing price of a security for an exact date,
// in its native currency. It returns ErrRateNotFound (possibly wrapped)
// when it holds no price for that day.
type PriceSource interface {
	PriceFor(security string, on Date) (Money, error)
}

// Calculator is the top-level entry point: it wires the ledger, the rate
// source and the tax configuration into the full pipeline
// (validate, match, compute).
type Calculator struct {
	Config Config
	Rates  RateSource
	Prices PriceSource // optional; required only by CalculateAtMarket
}

// NewCalculator creates a calculator with the given configuration and rate
// source.
func NewCalculator(cfg Config, rates RateSource) *Calculator {
	return &Calculator{Config: cfg, Rates: rates}
}

// Calculate computes the CGT due on selling the given quantity at the given
// unit price on the sell date.
//
// Every error from the pipeline surfaces unchanged: *InsufficientSharesError
// when the holding is too small, *RateUnavailableError when a conversion
// rate is missing, *InvalidRateError on bad configuration, and the
// internal-consistency faults *MatchingExhaustedError and
// *OverConsumedLotError.
func (c *Calculator) Calculate(ledger *Ledger, sellDate Date, quantity Quantity, salePrice Money, status TaxpayerStatus) (*GainReport, error) {
	conv := NewConverter(c.Config.HomeCurrency, c.Rates)

	if err := ValidateSufficiency(ledger, sellDate, quantity); err != nil {
		return nil, err
	}

	lots, err := Match(ledger, conv, sellDate, quantity)
	if err != nil {
		return nil, err
	}

	report, err := c.Config.Compute(conv, lots, quantity, salePrice, sellDate, status)
	if err != nil {
		return nil, err
	}
	report.Security = ledger.Security()
	return report, nil
}

// CalculateAtMarket is Calculate with the sale price looked up from the
// calculator's price source at the sell date.
func (c *Calculator) CalculateAtMarket(ledger *Ledger, sellDate Date, quantity Quantity, status TaxpayerStatus) (*GainReport, error) {
	if c.Prices == nil {
		return nil, fmt.Errorf("no price source configured for %s", ledger.Security())
	}
	price, err := c.Prices.PriceFor(ledger.Security(), sellDate)
	if err != nil {
		return nil, fmt.Errorf("sale price for %s on %s: %w", ledger.Security(), sellDate, err)
	}
	return c.Calculate(ledger, sellDate, quantity, price, status)
}
