package cgtcalc

// MatchRule identifies which HMRC identification rule produced a match.
type MatchRule string

const (
	// BedAndBreakfast matches a disposal against acquisitions within 30
	// days after the disposal date.
	BedAndBreakfast MatchRule = "bed-and-breakfast"
	// Section104 matches a disposal against the pooled weighted-average
	// cost of all earlier unmatched acquisitions.
	Section104 MatchRule = "section-104"
)

// MatchedLot is the result of matching part of a disposal against one lot
// (Bed & Breakfast) or against a pool slice (Section 104). It is produced
// by the matching engine, priced by the gain calculator, then discarded.
type MatchedLot struct {
	Quantity Quantity
	Cost     Money // in the home currency
	Proceeds Money // in the home currency, attached by the gain calculator
	Rule     MatchRule
	Acquired Date // source acquisition date; zero for a pool slice
}

// lot tracks how much of one acquisition transaction is still available for
// matching. Lots are indexed parallel to the chronological acquisition list
// (an arena), not linked to each other.
type lot struct {
	tx        Transaction
	remaining Quantity
	unitCost  Money // per-share cost in home currency, converted once
	converted bool
}

// consume removes a quantity from the lot. Taking more than the remaining
// quantity is a defect, reported as *OverConsumedLotError.
func (l *lot) consume(take Quantity) error {
	if take.GreaterThan(l.remaining) {
		return &OverConsumedLotError{Acquired: l.tx.Date, Remaining: l.remaining, Take: take}
	}
	l.remaining = l.remaining.Sub(take)
	return nil
}

// unitCostHome returns the lot's per-share cost in the home currency,
// converting at the acquisition date on first use and caching the result so
// repeated matching against the same lot cannot double-convert.
func (l *lot) unitCostHome(conv *Converter) (Money, error) {
	if l.converted {
		return l.unitCost, nil
	}
	cost, err := conv.Convert(l.tx.UnitPrice, l.tx.Date)
	if err != nil {
		return Money{}, err
	}
	l.unitCost = cost
	l.converted = true
	return cost, nil
}

// Section104Pool aggregates all acquisitions not otherwise matched into a
// single weighted-average holding.
//
// Quantity and Cost always move together: adding shares adds their own
// cost, removing N shares removes N times the average cost at that moment,
// so Cost/Quantity is the pool's average cost per share at all times.
type Section104Pool struct {
	quantity Quantity
	cost     Money // in the home currency
}

// Quantity returns the number of shares in the pool.
func (p *Section104Pool) Quantity() Quantity { return p.quantity }

// Cost returns the total pooled cost in the home currency.
func (p *Section104Pool) Cost() Money { return p.cost }

// AverageCost returns the pool's current cost per share.
func (p *Section104Pool) AverageCost() Money {
	if p.quantity.IsZero() {
		return Money{}
	}
	return p.cost.Div(p.quantity)
}

// Add pools shares at their own cost.
func (p *Section104Pool) Add(quantity Quantity, cost Money) {
	p.quantity = p.quantity.Add(quantity)
	p.cost = p.cost.Add(cost)
}

// Remove takes shares out of the pool and returns the cost removed with
// them: quantity times the average cost at the moment of removal.
func (p *Section104Pool) Remove(quantity Quantity) (Money, error) {
	if quantity.GreaterThan(p.quantity) {
		return Money{}, &MatchingExhaustedError{Requested: quantity, Matched: p.quantity}
	}
	removed := p.AverageCost().Mul(quantity)
	p.quantity = p.quantity.Sub(quantity)
	p.cost = p.cost.Sub(removed)
	return removed, nil
}
