package cgtcalc

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2021-06-01")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if d != NewDate(2021, time.June, 1) {
		t.Errorf("ParseDate() = %s, want 2021-06-01", d)
	}

	// permissive single-digit form
	d, err = ParseDate("2021-6-1")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if d != NewDate(2021, time.June, 1) {
		t.Errorf("ParseDate() = %s, want 2021-06-01", d)
	}

	if _, err := ParseDate("01-06-2021"); err == nil {
		t.Error("ParseDate() accepted a non ISO date")
	}
}

func TestDateAdd(t *testing.T) {
	d := NewDate(2021, time.June, 1)
	if got, want := d.Add(30), NewDate(2021, time.July, 1); got != want {
		t.Errorf("Add(30) = %s, want %s", got, want)
	}
	// normalization across month and year boundaries
	if got, want := NewDate(2021, time.December, 20).Add(20), NewDate(2022, time.January, 9); got != want {
		t.Errorf("Add(20) = %s, want %s", got, want)
	}
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2021, time.June, 1)
	b := NewDate(2021, time.June, 2)
	if !a.Before(b) || b.Before(a) {
		t.Error("Before() is wrong")
	}
	if !b.After(a) || a.After(b) {
		t.Error("After() is wrong")
	}
	if a.Before(a) || a.After(a) {
		t.Error("a date compares before or after itself")
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2021, time.June, 1)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2021-06-01"` {
		t.Errorf("MarshalJSON() = %s, want \"2021-06-01\"", data)
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("round trip = %s, want %s", back, d)
	}
}
