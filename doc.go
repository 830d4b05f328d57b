// Package cgtcalc computes UK Capital Gains Tax on the disposal of shares
// acquired through equity awards.
//
// The package ingests a history of acquisitions and disposals for a single
// security, applies the HMRC share identification rules to a prospective
// sale (Bed & Breakfast matching against acquisitions within 30 days after
// the sale, then Section 104 pooling at weighted-average cost), converts
// every amount to the home currency at the rate of the relevant day, and
// produces a [GainReport] with the tax due.
//
// The engine is deliberately single-shot: a [Ledger], its lots and its pool
// live for one calculation and nothing is persisted.
package cgtcalc
