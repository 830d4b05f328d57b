// Package schwab parses Charles Schwab "Equity Awards Center" CSV exports.
//
// The export (EquityAwardsCenter_EquityDetails_*.csv, downloaded from the
// Schwab equity awards page) is not a plain CSV: it mixes several sections
// with varying column counts. This package scans for the equity award
// shares section and turns each award row into an acquisition transaction.
package schwab

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"encoding/csv"

	"github.com/shopspring/decimal"
	"github.com/ukcgt/cgtcalc"
)

const (
	sectionStart = "*** EQUITY AWARD SHARES ***"
	sectionEnd   = "Totals"
	dateLayout   = "01-02-2006" // Schwab exports dates as MM-DD-YYYY
)

// header is the expected column layout of the award shares section. A
// mismatch means Schwab changed the export format and the column indices
// below can no longer be trusted.
var header = []string{
	"Award Date",
	"Symbol",
	"Award ID",
	"Share Type",
	"Market Value",
	"Date Holding Period Met",
	"Deposit Date",
	"Date Acquired",
	"Acquisition Price",
	"Shares",
	"Available to Sell",
}

// ParseFile parses an equity award export file. Prices in the export carry
// no currency code, so the caller names it (Schwab exports are in USD).
func ParseFile(path string, currency string) ([]cgtcalc.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()
	txs, err := Parse(f, currency)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	return txs, nil
}

// Parse reads an equity award export and returns the acquisition
// transactions of its award shares section, in file order.
func Parse(r io.Reader, currency string) ([]cgtcalc.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // sections have different column counts

	var txs []cgtcalc.Transaction
	inAwardShares := false

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) == 0 {
			continue
		}

		if record[0] == sectionStart {
			inAwardShares = true
			continue
		}
		if !inAwardShares {
			continue
		}
		if record[0] == sectionEnd {
			inAwardShares = false
			continue
		}
		if record[0] == header[0] {
			if !slices.Equal(record, header) {
				return nil, fmt.Errorf("unexpected award shares columns: %v", record)
			}
			continue
		}

		// Award rows are the ones whose first column is a date; summary
		// and blank rows in the section are skipped.
		if _, err := time.Parse(dateLayout, record[0]); err != nil {
			continue
		}
		if len(record) < len(header) {
			return nil, fmt.Errorf("short award row: %v", record)
		}

		tx, err := parseAward(record, currency)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}

	return txs, nil
}

// parseAward turns one award row into an acquisition transaction.
func parseAward(record []string, currency string) (cgtcalc.Transaction, error) {
	symbol := record[1]

	acquired, err := time.Parse(dateLayout, record[7])
	if err != nil {
		return cgtcalc.Transaction{}, fmt.Errorf("award %s: bad date acquired %q: %w", symbol, record[7], err)
	}

	price, err := parseAmount(record[8])
	if err != nil {
		return cgtcalc.Transaction{}, fmt.Errorf("award %s: bad acquisition price %q: %w", symbol, record[8], err)
	}

	available, err := parseAmount(record[10])
	if err != nil {
		return cgtcalc.Transaction{}, fmt.Errorf("award %s: bad available to sell %q: %w", symbol, record[10], err)
	}

	return cgtcalc.NewAcquisition(
		cgtcalc.NewDate(acquired.Date()),
		symbol,
		cgtcalc.Q(available),
		cgtcalc.M(price, currency),
	), nil
}

// parseAmount parses a Schwab numeric field, tolerating the "$" prefix and
// thousands separators.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	return decimal.NewFromString(s)
}
