package cgtcalc

import (
	"errors"
	"fmt"
)

// Kind is a typed string identifying the direction of a transaction.
type Kind string

const (
	// Acquisition records shares entering the holding (vest, purchase).
	Acquisition Kind = "acquire"
	// Disposal records shares leaving the holding (sale).
	Disposal Kind = "dispose"
)

// Transaction is a single acquisition or disposal event for one security.
//
// It is immutable once ingested: matching never mutates a Transaction, it
// tracks consumption in a separate lot arena.
type Transaction struct {
	Kind      Kind
	Date      Date
	Security  string
	Quantity  Quantity
	UnitPrice Money // price per share in its native currency
}

// NewAcquisition creates an acquisition transaction.
func NewAcquisition(on Date, security string, quantity Quantity, unitPrice Money) Transaction {
	return Transaction{Kind: Acquisition, Date: on, Security: security, Quantity: quantity, UnitPrice: unitPrice}
}

// NewDisposal creates a disposal transaction.
func NewDisposal(on Date, security string, quantity Quantity, unitPrice Money) Transaction {
	return Transaction{Kind: Disposal, Date: on, Security: security, Quantity: quantity, UnitPrice: unitPrice}
}

// Validate checks the transaction invariants.
func (t Transaction) Validate() error {
	if t.Kind != Acquisition && t.Kind != Disposal {
		return fmt.Errorf("unknown transaction kind %q", t.Kind)
	}
	if t.Security == "" {
		return errors.New("security ticker is missing")
	}
	if t.Date.IsZero() {
		return errors.New("transaction date is missing")
	}
	if !t.Quantity.IsPositive() {
		return fmt.Errorf("transaction quantity %s: must be positive", t.Quantity)
	}
	if t.UnitPrice.IsNegative() {
		return fmt.Errorf("transaction unit price %s: must not be negative", t.UnitPrice)
	}
	return nil
}

// Cost returns the transaction's total amount in its native currency.
func (t Transaction) Cost() Money { return t.UnitPrice.Mul(t.Quantity) }
