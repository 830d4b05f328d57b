package cgtcalc

import (
	"errors"
	"testing"
)

func sumQuantity(lots []MatchedLot) Quantity {
	total := Q(0)
	for _, l := range lots {
		total = total.Add(l.Quantity)
	}
	return total
}

func sumCost(lots []MatchedLot) Money {
	total := Money{}
	for _, l := range lots {
		total = total.Add(l.Cost)
	}
	return total
}

func TestMatchPoolOnly(t *testing.T) {
	ledger := mustLedger(acq("2021-01-01", 100, 50))
	conv := NewConverter("GBP", fixedRate(1.0))

	lots, err := Match(ledger, conv, MustParseDate("2021-06-01"), Q(50))
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if len(lots) != 1 {
		t.Fatalf("Match() returned %d lots, want 1", len(lots))
	}
	if lots[0].Rule != Section104 {
		t.Errorf("rule = %s, want section-104", lots[0].Rule)
	}
	if !lots[0].Quantity.Equal(Q(50)) {
		t.Errorf("quantity = %s, want 50", lots[0].Quantity)
	}
	if !lots[0].Cost.Equal(GBP(2500)) {
		t.Errorf("cost = %s, want £2,500.00", lots[0].Cost)
	}
}

func TestMatchBedAndBreakfastBeforePool(t *testing.T) {
	// 30 shares acquired within 30 days after the sale match first at
	// their own cost; the remaining 20 come from the pool.
	ledger := mustLedger(
		acq("2021-01-01", 100, 50),
		acq("2021-06-10", 30, 60),
	)
	conv := NewConverter("GBP", fixedRate(1.0))

	lots, err := Match(ledger, conv, MustParseDate("2021-06-01"), Q(50))
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if len(lots) != 2 {
		t.Fatalf("Match() returned %d lots, want 2", len(lots))
	}

	if lots[0].Rule != BedAndBreakfast {
		t.Fatalf("first lot rule = %s, want bed-and-breakfast", lots[0].Rule)
	}
	if !lots[0].Quantity.Equal(Q(30)) || !lots[0].Cost.Equal(GBP(1800)) {
		t.Errorf("B&B lot = %s for %s, want 30 for £1,800.00", lots[0].Quantity, lots[0].Cost)
	}
	if lots[0].Acquired != MustParseDate("2021-06-10") {
		t.Errorf("B&B lot acquired = %s, want 2021-06-10", lots[0].Acquired)
	}

	if lots[1].Rule != Section104 {
		t.Fatalf("second lot rule = %s, want section-104", lots[1].Rule)
	}
	if !lots[1].Quantity.Equal(Q(20)) || !lots[1].Cost.Equal(GBP(1000)) {
		t.Errorf("pool lot = %s for %s, want 20 for £1,000.00", lots[1].Quantity, lots[1].Cost)
	}

	if !sumCost(lots).Equal(GBP(2800)) {
		t.Errorf("total cost = %s, want £2,800.00", sumCost(lots))
	}
}

func TestMatchBedAndBreakfastAscendingDates(t *testing.T) {
	// within the window, the earliest acquisition after the sale is
	// consumed first, and the window is exhausted before any pool match
	ledger := mustLedger(
		acq("2021-01-01", 100, 10),
		acq("2021-06-20", 10, 30),
		acq("2021-06-05", 10, 20),
	)
	conv := NewConverter("GBP", fixedRate(1.0))

	lots, err := Match(ledger, conv, MustParseDate("2021-06-01"), Q(25))
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if len(lots) != 3 {
		t.Fatalf("Match() returned %d lots, want 3", len(lots))
	}
	if lots[0].Acquired != MustParseDate("2021-06-05") || !lots[0].Quantity.Equal(Q(10)) {
		t.Errorf("first B&B lot = %s on %s, want 10 on 2021-06-05", lots[0].Quantity, lots[0].Acquired)
	}
	if lots[1].Acquired != MustParseDate("2021-06-20") || !lots[1].Quantity.Equal(Q(10)) {
		t.Errorf("second B&B lot = %s on %s, want 10 on 2021-06-20", lots[1].Quantity, lots[1].Acquired)
	}
	if lots[2].Rule != Section104 || !lots[2].Quantity.Equal(Q(5)) {
		t.Errorf("last lot = %s under %s, want 5 under section-104", lots[2].Quantity, lots[2].Rule)
	}
}

func TestMatchWindowIs30Days(t *testing.T) {
	// an acquisition 31 days after the sale is not bed & breakfast
	ledger := mustLedger(
		acq("2021-01-01", 100, 50),
		acq("2021-07-02", 30, 60), // sale + 31 days
	)
	conv := NewConverter("GBP", fixedRate(1.0))

	lots, err := Match(ledger, conv, MustParseDate("2021-06-01"), Q(50))
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if len(lots) != 1 || lots[0].Rule != Section104 {
		t.Fatalf("acquisition outside the window matched: %v", lots)
	}
}

func TestMatchPartitionsExactly(t *testing.T) {
	// the matched quantities always sum to the requested quantity
	ledger := mustLedger(
		acq("2020-01-01", 17, 10),
		acq("2020-06-01", 23.5, 20),
		acq("2021-06-03", 4.25, 30),
		acq("2021-06-29", 8, 40),
	)
	conv := NewConverter("GBP", fixedRate(1.0))

	for _, quantity := range []Quantity{Q(1), Q(12.25), Q(40.5), Q(52.75)} {
		lots, err := Match(ledger, conv, MustParseDate("2021-06-01"), quantity)
		if err != nil {
			t.Fatalf("Match(%s) error = %v", quantity, err)
		}
		if got := sumQuantity(lots); !got.Equal(quantity) {
			t.Errorf("Match(%s) matched %s in total", quantity, got)
		}
	}
}

func TestMatchSplitOrderInvariant(t *testing.T) {
	// matching 40 in one disposal costs the same as 20 now and 20 later
	// recorded as a prior disposal, within the pool's average-cost model
	base := []Transaction{
		acq("2020-01-01", 100, 10),
		acq("2020-06-01", 100, 30),
	}
	conv := NewConverter("GBP", fixedRate(1.0))

	oneCall, err := Match(mustLedger(base...), conv, MustParseDate("2021-06-01"), Q(40))
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}

	split := append(append([]Transaction{}, base...), disp("2021-05-01", 20, 35))
	secondHalf, err := Match(mustLedger(split...), NewConverter("GBP", fixedRate(1.0)), MustParseDate("2021-06-01"), Q(20))
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}

	firstHalfCost := GBP(20 * 20) // 20 shares at the £20 pool average
	total := firstHalfCost.Add(sumCost(secondHalf))
	if !total.Equal(sumCost(oneCall)) {
		t.Errorf("split matching cost = %s, single call = %s", total, sumCost(oneCall))
	}
}

func TestMatchReplaysPriorDisposals(t *testing.T) {
	// a prior disposal consumed part of the pool at the average cost of
	// its own day
	ledger := mustLedger(
		acq("2021-01-01", 100, 50),
		disp("2021-03-01", 60, 55),
	)
	conv := NewConverter("GBP", fixedRate(1.0))

	lots, err := Match(ledger, conv, MustParseDate("2021-06-01"), Q(40))
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if !sumQuantity(lots).Equal(Q(40)) {
		t.Fatalf("matched %s, want 40", sumQuantity(lots))
	}
	if !sumCost(lots).Equal(GBP(2000)) {
		t.Errorf("cost = %s, want £2,000.00 (40 shares at £50 average)", sumCost(lots))
	}
}

func TestMatchPriorDisposalBedAndBreakfastStealsLot(t *testing.T) {
	// the prior disposal's own 30-day window consumes the 2021-02-10
	// acquisition, so the later sale cannot pool it
	ledger := mustLedger(
		acq("2021-01-01", 100, 50),
		disp("2021-02-01", 20, 55),
		acq("2021-02-10", 20, 60),
	)
	conv := NewConverter("GBP", fixedRate(1.0))

	lots, err := Match(ledger, conv, MustParseDate("2021-06-01"), Q(100))
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	// all 100 remaining shares come from the original pool at 50
	if !sumCost(lots).Equal(GBP(5000)) {
		t.Errorf("cost = %s, want £5,000.00", sumCost(lots))
	}
}

func TestMatchSameDayFallsThroughToPool(t *testing.T) {
	// same-day acquisitions are pooled, not matched as bed & breakfast
	ledger := mustLedger(
		acq("2021-01-01", 100, 50),
		acq("2021-06-01", 10, 80),
	)
	conv := NewConverter("GBP", fixedRate(1.0))

	lots, err := Match(ledger, conv, MustParseDate("2021-06-01"), Q(110))
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if len(lots) != 1 || lots[0].Rule != Section104 {
		t.Fatalf("same-day acquisition did not pool: %v", lots)
	}
	if !lots[0].Cost.Equal(GBP(5800)) {
		t.Errorf("cost = %s, want £5,800.00", lots[0].Cost)
	}
}

func TestMatchExhausted(t *testing.T) {
	// matching more than exists is an internal fault when validation was
	// skipped
	ledger := mustLedger(acq("2021-01-01", 100, 50))
	conv := NewConverter("GBP", fixedRate(1.0))

	_, err := Match(ledger, conv, MustParseDate("2021-06-01"), Q(150))
	var exhausted *MatchingExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("Match() error = %v, want *MatchingExhaustedError", err)
	}
	if !exhausted.Requested.Equal(Q(150)) || !exhausted.Matched.Equal(Q(100)) {
		t.Errorf("MatchingExhaustedError = %+v, want requested 150 matched 100", exhausted)
	}
}

func TestMatchMissingAcquisitionRate(t *testing.T) {
	// the acquisition's own date has no rate: the cost cannot be computed
	ledger := mustLedger(acq("2021-01-01", 100, 50))
	conv := NewConverter("GBP", tableRates{MustParseDate("2021-06-01"): decimalOne})

	_, err := Match(ledger, conv, MustParseDate("2021-06-01"), Q(50))
	var unavailable *RateUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("Match() error = %v, want *RateUnavailableError", err)
	}
	if unavailable.On != MustParseDate("2021-01-01") {
		t.Errorf("rate missing on %s, want the acquisition date 2021-01-01", unavailable.On)
	}
}
