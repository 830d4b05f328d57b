package cgtcalc

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrRateNotFound is the sentinel a RateSource returns (possibly wrapped)
// when it holds no rate for the requested currency and date.
var ErrRateNotFound = errors.New("rate not found")

// UnknownSymbolError reports a ledger built from transactions that contain
// no entry for the requested security.
type UnknownSymbolError struct {
	Symbol string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown symbol %q: no transactions for it", e.Symbol)
}

// RateUnavailableError reports a missing exchange rate for an exact date.
// The engine never interpolates or falls back to a neighbouring day.
type RateUnavailableError struct {
	Currency string
	On       Date
	Err      error
}

func (e *RateUnavailableError) Error() string {
	return fmt.Sprintf("no %s exchange rate for %s", e.Currency, e.On)
}

func (e *RateUnavailableError) Unwrap() error { return e.Err }

// InsufficientSharesError reports a disposal of more shares than the ledger
// holds as of the sell date.
type InsufficientSharesError struct {
	Held      Quantity
	Requested Quantity
}

func (e *InsufficientSharesError) Error() string {
	return fmt.Sprintf("insufficient shares: held %s, requested %s", e.Held, e.Requested)
}

// MatchingExhaustedError reports that both identification rules together
// matched fewer shares than requested. It is an internal-consistency fault:
// it cannot occur when ValidateSufficiency ran before matching.
type MatchingExhaustedError struct {
	Requested Quantity
	Matched   Quantity
}

func (e *MatchingExhaustedError) Error() string {
	return fmt.Sprintf("matching exhausted: matched %s of %s requested", e.Matched, e.Requested)
}

// OverConsumedLotError reports an attempt to consume more shares from a lot
// than it has remaining. It is an internal-consistency fault.
type OverConsumedLotError struct {
	Acquired  Date
	Remaining Quantity
	Take      Quantity
}

func (e *OverConsumedLotError) Error() string {
	return fmt.Sprintf("lot acquired %s over-consumed: %s remaining, %s taken", e.Acquired, e.Remaining, e.Take)
}

// InvalidRateError reports a misconfigured CGT rate. Rates are fractions:
// valid values are in (0, 1].
type InvalidRateError struct {
	Rate decimal.Decimal
}

func (e *InvalidRateError) Error() string {
	return fmt.Sprintf("invalid CGT rate %s: want a fraction in (0, 1]", e.Rate)
}
