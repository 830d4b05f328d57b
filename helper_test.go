package cgtcalc

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var decimalOne = decimal.NewFromInt(1)

// GBP is a helper for tests to create pound money from const
func GBP(v float64) Money { return M(v, "GBP") }

// USD is a helper for tests to create dollar money from const
func USD(v float64) Money { return M(v, "USD") }

// acq is a helper for tests to create a GOOG acquisition from consts.
func acq(date string, quantity, unitPrice float64) Transaction {
	return NewAcquisition(MustParseDate(date), "GOOG", Q(quantity), USD(unitPrice))
}

// disp is a helper for tests to create a GOOG disposal from consts.
func disp(date string, quantity, unitPrice float64) Transaction {
	return NewDisposal(MustParseDate(date), "GOOG", Q(quantity), USD(unitPrice))
}

// staticRates is a RateSource returning the same rate for every currency
// and date.
type staticRates struct{ rate decimal.Decimal }

func fixedRate(v float64) staticRates { return staticRates{rate: decimal.NewFromFloat(v)} }

func (s staticRates) RateFor(currency string, on Date) (decimal.Decimal, error) {
	return s.rate, nil
}

// tableRates is a RateSource with explicit per-date rates; any other date
// is not found.
type tableRates map[Date]decimal.Decimal

func (t tableRates) RateFor(currency string, on Date) (decimal.Decimal, error) {
	rate, ok := t[on]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%s on %s: %w", currency, on, ErrRateNotFound)
	}
	return rate, nil
}

// staticPrices is a PriceSource returning the same price for every date.
type staticPrices struct{ price Money }

func (s staticPrices) PriceFor(security string, on Date) (Money, error) {
	return s.price, nil
}

// mustLedger builds a GOOG ledger from transactions, panicking on error.
func mustLedger(txs ...Transaction) *Ledger {
	l, err := NewLedger("GOOG", txs...)
	if err != nil {
		panic(err)
	}
	return l
}
