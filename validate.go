package cgtcalc

// ValidateSufficiency checks that the ledger holds enough unsold shares as
// of the sell date to satisfy the requested disposal.
//
// It must run before matching: the matching engine treats a shortfall as an
// internal fault, not a user error.
func ValidateSufficiency(ledger *Ledger, sellDate Date, requested Quantity) error {
	held := ledger.TotalHeldBefore(sellDate)
	if requested.GreaterThan(held) {
		return &InsufficientSharesError{Held: held, Requested: requested}
	}
	return nil
}
