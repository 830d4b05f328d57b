package cgtcalc

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// RateSource provides exchange rates from a currency to the home currency,
// for an exact date. It returns ErrRateNotFound (possibly wrapped) when it
// holds no rate for that day.
//
// A RateSource must be safe for concurrent reads; the engine never mutates
// it during a calculation.
type RateSource interface {
	RateFor(currency string, on Date) (decimal.Decimal, error)
}

// Converter normalizes native-currency amounts into the home currency at
// the rate effective on a transaction's date.
type Converter struct {
	home  string
	rates RateSource
}

// NewConverter creates a converter into the given home currency.
func NewConverter(home string, rates RateSource) *Converter {
	return &Converter{home: home, rates: rates}
}

// Home returns the home currency code.
func (c *Converter) Home() string { return c.home }

// Convert returns the amount expressed in the home currency at the rate of
// the given date. Amounts already in the home currency pass through
// unchanged. A missing rate fails with *RateUnavailableError; there is no
// interpolation across dates.
func (c *Converter) Convert(amount Money, on Date) (Money, error) {
	if amount.Currency() == c.home || amount.Currency() == "" {
		return M(amount.value, c.home), nil
	}
	rate, err := c.rates.RateFor(amount.Currency(), on)
	if err != nil {
		if errors.Is(err, ErrRateNotFound) {
			return Money{}, &RateUnavailableError{Currency: amount.Currency(), On: on, Err: err}
		}
		return Money{}, fmt.Errorf("rate lookup %s on %s: %w", amount.Currency(), on, err)
	}
	return M(amount.value.Mul(rate), c.home), nil
}
