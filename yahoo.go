package cgtcalc

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// Yahoo Finance chart API, one sample per day over the full history.
const yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart/%s?period1=0&period2=9999999999&interval=1d"

// chartSeries is the daily close history of one Yahoo symbol.
type chartSeries struct {
	currency string
	closes   map[Date]decimal.Decimal
}

// fetchChart downloads and parses the daily close series for a symbol.
func fetchChart(client *http.Client, symbol string) (*chartSeries, error) {
	addr := fmt.Sprintf(yahooChartURL, url.QueryEscape(symbol))
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("fetching %q: %w", symbol, err)
	}
	series, err := parseChart(jobj)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", symbol, err)
	}
	return series, nil
}

// parseChart extracts the timestamp and close arrays from a chart response.
func parseChart(jobj any) (*chartSeries, error) {
	jts, err := jsonpath.Get("$.chart.result[0].timestamp", jobj)
	if err != nil {
		return nil, fmt.Errorf("no timestamps: %w", err)
	}
	jcl, err := jsonpath.Get("$.chart.result[0].indicators.quote[0].close", jobj)
	if err != nil {
		return nil, fmt.Errorf("no closes: %w", err)
	}
	timestamps, ok := jts.([]any)
	if !ok {
		return nil, fmt.Errorf("timestamps are not a list: %v", jts)
	}
	closes, ok := jcl.([]any)
	if !ok {
		return nil, fmt.Errorf("closes are not a list: %v", jcl)
	}
	if len(timestamps) != len(closes) {
		return nil, fmt.Errorf("mismatched series: %d timestamps, %d closes", len(timestamps), len(closes))
	}

	series := &chartSeries{closes: make(map[Date]decimal.Decimal, len(timestamps))}

	// The currency is optional metadata; a missing one only matters for
	// price lookups, where Money with an empty currency would be useless.
	if jcur, err := jsonpath.Get("$.chart.result[0].meta.currency", jobj); err == nil {
		if cur, ok := jcur.(string); ok {
			series.currency = cur
		}
	}

	for i, jt := range timestamps {
		ts, ok := jt.(float64)
		if !ok {
			return nil, fmt.Errorf("timestamp is not a number: %v", jt)
		}
		// Days with no trade come back as null closes, skip them.
		cl, ok := closes[i].(float64)
		if !ok {
			continue
		}
		on := NewDate(time.Unix(int64(ts), 0).UTC().Date())
		series.closes[on] = decimal.NewFromFloat(cl)
	}
	return series, nil
}

// YahooRates is a RateSource backed by Yahoo Finance daily closes of
// currency pairs (e.g. "USDGBP=X"). Each pair is fetched once per instance
// and memoized; lookups are exact-date only.
type YahooRates struct {
	home   string
	client *http.Client
	series map[string]*chartSeries
}

// NewYahooRates creates a rate source converting into the given home
// currency, behind a daily-expiring disk cache.
func NewYahooRates(home string) *YahooRates {
	return &YahooRates{home: home, client: daily(), series: make(map[string]*chartSeries)}
}

// RateFor returns the closing rate from the given currency to the home
// currency on the exact date, or ErrRateNotFound (wrapped) when the market
// was closed that day.
func (y *YahooRates) RateFor(currency string, on Date) (decimal.Decimal, error) {
	series, ok := y.series[currency]
	if !ok {
		var err error
		series, err = fetchChart(y.client, currency+y.home+"=X")
		if err != nil {
			return decimal.Decimal{}, err
		}
		y.series[currency] = series
	}
	rate, ok := series.closes[on]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%s/%s on %s: %w", currency, y.home, on, ErrRateNotFound)
	}
	return rate, nil
}

// YahooPrices is a PriceSource backed by Yahoo Finance daily closes,
// memoized per security, exact-date only.
type YahooPrices struct {
	client *http.Client
	series map[string]*chartSeries
}

// NewYahooPrices creates a price source behind a daily-expiring disk cache.
func NewYahooPrices() *YahooPrices {
	return &YahooPrices{client: daily(), series: make(map[string]*chartSeries)}
}

// PriceFor returns the closing price of the security on the exact date in
// its native currency, or ErrRateNotFound (wrapped) when the market was
// closed that day.
func (y *YahooPrices) PriceFor(security string, on Date) (Money, error) {
	series, ok := y.series[security]
	if !ok {
		var err error
		series, err = fetchChart(y.client, security)
		if err != nil {
			return Money{}, err
		}
		y.series[security] = series
	}
	price, ok := series.closes[on]
	if !ok {
		return Money{}, fmt.Errorf("%s on %s: %w", security, on, ErrRateNotFound)
	}
	return M(price, series.currency), nil
}
