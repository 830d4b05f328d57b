package cgtcalc

import "fmt"

// BedAndBreakfastDays is the length in calendar days of the HMRC
// Bed & Breakfast lookahead window after a disposal.
const BedAndBreakfastDays = 30

// Match partitions a disposal of the given quantity at the given date into
// matched lots, applying the HMRC identification rules in their fixed
// priority order:
//
//  1. Bed & Breakfast: acquisitions strictly after the sell date and within
//     30 calendar days of it, earliest first, at each acquisition's own cost
//     converted at the acquisition date.
//  2. Section 104: the remainder against the pool of all unmatched
//     acquisitions dated on or before the sell date, at the pool's running
//     weighted-average cost.
//
// Disposals already recorded in the ledger before the sell date are first
// replayed through the same rules, so shares they consumed are not matched
// twice. Same-day disposals receive no special treatment and fall through
// to the pool.
//
// Match assumes ValidateSufficiency has passed; a shortfall here surfaces
// as *MatchingExhaustedError.
func Match(ledger *Ledger, conv *Converter, sellDate Date, quantity Quantity) ([]MatchedLot, error) {
	m := newMatcher(ledger, conv)
	for _, d := range ledger.Disposals() {
		if !d.Date.Before(sellDate) {
			break
		}
		if _, err := m.match(d.Date, d.Quantity); err != nil {
			return nil, fmt.Errorf("replaying disposal of %s on %s: %w", d.Quantity, d.Date, err)
		}
	}
	return m.match(sellDate, quantity)
}

// matcher holds the mutable state of one matching run: an arena of lots
// indexed in acquisition order, and the Section 104 pool they migrate into.
type matcher struct {
	conv *Converter
	lots []*lot
	pool Section104Pool
	next int // index of the first lot not yet absorbed into the pool
}

func newMatcher(ledger *Ledger, conv *Converter) *matcher {
	m := &matcher{conv: conv}
	for _, tx := range ledger.Acquisitions() {
		m.lots = append(m.lots, &lot{tx: tx, remaining: tx.Quantity})
	}
	return m
}

// absorb migrates into the pool every lot dated on or before the given
// date, at the lot's own cost. Lots are absorbed exactly once; what a
// Bed & Breakfast match consumed beforehand never reaches the pool.
func (m *matcher) absorb(on Date) error {
	for m.next < len(m.lots) {
		lt := m.lots[m.next]
		if lt.tx.Date.After(on) {
			return nil
		}
		unit, err := lt.unitCostHome(m.conv)
		if err != nil {
			return err
		}
		m.pool.Add(lt.remaining, unit.Mul(lt.remaining))
		lt.remaining = Q(0)
		m.next++
	}
	return nil
}

// match runs both identification rules for one disposal and returns the
// matched lots, consuming arena and pool state as it goes.
func (m *matcher) match(on Date, quantity Quantity) ([]MatchedLot, error) {
	// Acquisitions up to the disposal date enter the pool first, so that
	// same-day acquisitions are pooled, not specially matched.
	if err := m.absorb(on); err != nil {
		return nil, err
	}

	var matched []MatchedLot
	remainder := quantity

	// Rule 1: Bed & Breakfast, earliest acquisition after the sale first.
	window := on.Add(BedAndBreakfastDays)
	for _, lt := range m.lots {
		if remainder.IsZero() {
			break
		}
		if !lt.tx.Date.After(on) {
			continue
		}
		if lt.tx.Date.After(window) {
			break
		}
		take := lt.remaining.Min(remainder)
		if !take.IsPositive() {
			continue
		}
		unit, err := lt.unitCostHome(m.conv)
		if err != nil {
			return nil, err
		}
		if err := lt.consume(take); err != nil {
			return nil, err
		}
		matched = append(matched, MatchedLot{
			Quantity: take,
			Cost:     unit.Mul(take),
			Rule:     BedAndBreakfast,
			Acquired: lt.tx.Date,
		})
		remainder = remainder.Sub(take)
	}

	// Rule 2: the remainder comes out of the Section 104 pool.
	if remainder.IsPositive() {
		if remainder.GreaterThan(m.pool.Quantity()) {
			return nil, &MatchingExhaustedError{
				Requested: quantity,
				Matched:   quantity.Sub(remainder).Add(m.pool.Quantity()),
			}
		}
		cost, err := m.pool.Remove(remainder)
		if err != nil {
			return nil, err
		}
		matched = append(matched, MatchedLot{Quantity: remainder, Cost: cost, Rule: Section104})
	}

	return matched, nil
}
