package cgtcalc

import (
	"fmt"
	"sort"
)

// Ledger holds the transaction history of a single security.
//
// In a Ledger transactions are always in chronological order; transactions
// on the same day keep their ingestion order.
type Ledger struct {
	security     string
	transactions []Transaction
}

// NewLedger builds a ledger for the given security from a transaction set.
//
// Transactions for other securities are ignored (a broker export typically
// mixes several symbols). It returns an *UnknownSymbolError when no
// transaction matches the security, and fails on the first invalid
// transaction.
func NewLedger(security string, txs ...Transaction) (*Ledger, error) {
	l := &Ledger{security: security}
	for _, tx := range txs {
		if tx.Security != security {
			continue
		}
		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("invalid transaction on %s: %w", tx.Date, err)
		}
		l.transactions = append(l.transactions, tx)
	}
	if len(l.transactions) == 0 {
		return nil, &UnknownSymbolError{Symbol: security}
	}
	l.stableSort()
	return l, nil
}

// stableSort sorts the ledger by transaction date. The sort is stable, meaning
// transactions on the same day maintain their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Date.Before(l.transactions[j].Date)
	})
}

// Security returns the ticker this ledger was built for.
func (l *Ledger) Security() string { return l.security }

// Transactions returns all transactions in chronological order.
func (l *Ledger) Transactions() []Transaction { return l.transactions }

// Acquisitions returns all acquisition transactions in chronological order.
func (l *Ledger) Acquisitions() []Transaction {
	var acqs []Transaction
	for _, tx := range l.transactions {
		if tx.Kind == Acquisition {
			acqs = append(acqs, tx)
		}
	}
	return acqs
}

// Disposals returns all disposal transactions in chronological order.
func (l *Ledger) Disposals() []Transaction {
	var disps []Transaction
	for _, tx := range l.transactions {
		if tx.Kind == Disposal {
			disps = append(disps, tx)
		}
	}
	return disps
}

// AcquisitionsBefore returns the acquisitions dated on or before the given
// date, ascending. These are the Section 104 pool candidates.
func (l *Ledger) AcquisitionsBefore(on Date) []Transaction {
	var acqs []Transaction
	for _, tx := range l.transactions {
		if tx.Kind == Acquisition && !tx.Date.After(on) {
			acqs = append(acqs, tx)
		}
	}
	return acqs
}

// AcquisitionsWithin returns the acquisitions dated strictly after the given
// date and within the following number of calendar days, ascending. This is
// the Bed & Breakfast lookahead window.
func (l *Ledger) AcquisitionsWithin(after Date, days int) []Transaction {
	limit := after.Add(days)
	var acqs []Transaction
	for _, tx := range l.transactions {
		if tx.Kind != Acquisition {
			continue
		}
		if tx.Date.After(after) && !tx.Date.After(limit) {
			acqs = append(acqs, tx)
		}
	}
	return acqs
}

// TotalHeldBefore returns the quantity of shares held as of the given date:
// all acquisitions dated on or before it, minus all disposals dated strictly
// before it (shares sold earlier are no longer held).
func (l *Ledger) TotalHeldBefore(on Date) Quantity {
	held := Q(0)
	for _, tx := range l.transactions {
		switch {
		case tx.Kind == Acquisition && !tx.Date.After(on):
			held = held.Add(tx.Quantity)
		case tx.Kind == Disposal && tx.Date.Before(on):
			held = held.Sub(tx.Quantity)
		}
	}
	return held
}

// OldestTransactionDate returns the date of the earliest transaction.
func (l *Ledger) OldestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[0].Date
}

// NewestTransactionDate returns the date of the latest transaction.
func (l *Ledger) NewestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[len(l.transactions)-1].Date
}
