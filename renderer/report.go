// Package renderer turns calculation results into markdown reports.
package renderer

import (
	"fmt"
	"strings"

	"github.com/ukcgt/cgtcalc"
)

// GainReportMarkdown renders a gain report with the tax due and the
// itemized breakdown of proceeds, costs, taxable amount and rate.
func GainReportMarkdown(r *cgtcalc.GainReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# CGT due: %s\n\n", r.TaxDue)
	fmt.Fprintf(&b, "Selling %s × %s on %s (%s rate taxpayer)\n\n", r.Quantity, r.Security, r.SellDate, r.Status)

	fmt.Fprint(&b, "## Breakdown\n\n")
	fmt.Fprintf(&b, "* Proceeds: %s\n", r.Proceeds)
	fmt.Fprintf(&b, "* Cost: %s\n", r.Cost)
	if !r.BedAndBreakfastCost.IsZero() {
		fmt.Fprintf(&b, "  * Bed & Breakfast: %s\n", r.BedAndBreakfastCost)
	}
	if !r.Section104Cost.IsZero() {
		fmt.Fprintf(&b, "  * Section 104 pool: %s\n", r.Section104Cost)
	}
	fmt.Fprintf(&b, "* Net proceeds: %s\n", r.Proceeds.Sub(r.Cost))
	fmt.Fprintf(&b, "* Amount subject to CGT: %s\n", r.TaxableAmount)
	fmt.Fprintf(&b, "* CGT Rate: %s\n", r.Rate)
	fmt.Fprintf(&b, "* Net proceeds after tax: %s\n\n", r.NetProceeds())

	b.WriteString(MatchedLotsMarkdown(r.Lots))
	return b.String()
}

// MatchedLotsMarkdown renders the matched lots as a table, one row per lot
// in matching order.
func MatchedLotsMarkdown(lots []cgtcalc.MatchedLot) string {
	var b strings.Builder

	fmt.Fprint(&b, "## Matched lots\n\n")
	fmt.Fprintln(&b, "| Rule | Acquired | Quantity | Cost |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|")
	for _, lot := range lots {
		acquired := "(pooled)"
		if !lot.Acquired.IsZero() {
			acquired = lot.Acquired.String()
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", lot.Rule, acquired, lot.Quantity, lot.Cost)
	}
	return b.String()
}

// HoldingsMarkdown renders the acquisition history and the quantity held as
// of a date.
func HoldingsMarkdown(ledger *cgtcalc.Ledger, on cgtcalc.Date) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s holdings as of %s\n\n", ledger.Security(), on)

	fmt.Fprintln(&b, "| Acquired | Quantity | Unit price |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	for _, tx := range ledger.AcquisitionsBefore(on) {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", tx.Date, tx.Quantity, tx.UnitPrice)
	}

	fmt.Fprintf(&b, "\nTotal held: %s\n", ledger.TotalHeldBefore(on))
	return b.String()
}
