package cgtcalc

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

// chartJSON is a trimmed Yahoo v8 chart response: three trading days with a
// null close on the middle one.
const chartJSON = `{
  "chart": {
    "result": [
      {
        "meta": {"currency": "USD", "symbol": "GOOG"},
        "timestamp": [1622505600, 1622592000, 1622678400],
        "indicators": {
          "quote": [
            {"close": [2429.12, null, 2447.0]}
          ]
        }
      }
    ],
    "error": null
  }
}`

func parseJSON(t *testing.T, src string) any {
	t.Helper()
	var jobj any
	if err := json.Unmarshal([]byte(src), &jobj); err != nil {
		t.Fatal(err)
	}
	return jobj
}

func TestParseChart(t *testing.T) {
	series, err := parseChart(parseJSON(t, chartJSON))
	if err != nil {
		t.Fatalf("parseChart() error = %v", err)
	}
	if series.currency != "USD" {
		t.Errorf("currency = %q, want USD", series.currency)
	}
	// the null close on 2021-06-02 is skipped
	if len(series.closes) != 2 {
		t.Fatalf("parsed %d closes, want 2", len(series.closes))
	}
	got, ok := series.closes[MustParseDate("2021-06-01")]
	if !ok {
		t.Fatal("no close for 2021-06-01")
	}
	if !got.Equal(decimal.NewFromFloat(2429.12)) {
		t.Errorf("close on 2021-06-01 = %s, want 2429.12", got)
	}
	if _, ok := series.closes[MustParseDate("2021-06-02")]; ok {
		t.Error("null close was not skipped")
	}
}

func TestParseChartNoCurrency(t *testing.T) {
	const src = `{"chart":{"result":[{
		"timestamp":[1622505600],
		"indicators":{"quote":[{"close":[2429.12]}]}
	}]}}`
	series, err := parseChart(parseJSON(t, src))
	if err != nil {
		t.Fatalf("parseChart() error = %v", err)
	}
	if series.currency != "" {
		t.Errorf("currency = %q, want empty", series.currency)
	}
}

func TestParseChartMismatchedSeries(t *testing.T) {
	const src = `{"chart":{"result":[{
		"timestamp":[1622505600, 1622592000],
		"indicators":{"quote":[{"close":[2429.12]}]}
	}]}}`
	if _, err := parseChart(parseJSON(t, src)); err == nil {
		t.Error("mismatched series did not fail")
	}
}

func TestParseChartMissingResult(t *testing.T) {
	const src = `{"chart":{"result":[],"error":{"code":"Not Found"}}}`
	if _, err := parseChart(parseJSON(t, src)); err == nil {
		t.Error("empty result did not fail")
	}
}
