package render

import (
	"math"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestNumber(t *testing.T) {
	tests := []struct {
		v      float64
		places int32
		want   string
	}{
		{0, 0, "0"},
		{999, 0, "999"},
		{1000, 0, "1,000"},
		{1967296, 0, "1,967,296"},
		{-1234567.891, 2, "-1,234,567.89"},
		{2.5, 0, "3"},
		{-2.5, 0, "-3"},
		{-0.4, 0, "0"},
		{math.NaN(), 0, Null},
	}
	for _, tt := range tests {
		if got := Number(tt.v, tt.places); got != tt.want {
			t.Errorf("Number(%v, %d) = %q, want %q", tt.v, tt.places, got, tt.want)
		}
	}
}

func TestCurrency(t *testing.T) {
	if got := Currency(254773.83, 0); got != "$254,774" {
		t.Errorf("Currency = %q, want $254,774", got)
	}
	if got := Currency(-1500, 0); got != "-$1,500" {
		t.Errorf("Currency = %q, want -$1,500", got)
	}
}

func TestAccounting(t *testing.T) {
	if got := Accounting(-94436.3266); got != "($94,436.33)" {
		t.Errorf("Accounting = %q, want ($94,436.33)", got)
	}
	if got := Accounting(472181.633); got != "$472,181.63" {
		t.Errorf("Accounting = %q, want $472,181.63", got)
	}
}

func TestNullableCells(t *testing.T) {
	if Price(nil) != Null || Qty(nil) != Null {
		t.Error("nil cells should print as -")
	}
	if got := Qty(ptr(2360.908)); got != "2360.9" {
		t.Errorf("Qty = %q, want 2360.9", got)
	}
	if got := Price(ptr(6000)); got != "$6,000" {
		t.Errorf("Price = %q, want $6,000", got)
	}
}

func TestUnitsAndRatios(t *testing.T) {
	if Units("") != "" {
		t.Error("empty unit should print nothing")
	}
	if got := Units("acre"); got != " / acre" {
		t.Errorf("Units = %q", got)
	}
	if got := Ratio(math.Inf(1)); got != "Infinity" {
		t.Errorf("Ratio(+Inf) = %q", got)
	}
	if got := Ratio(1.35212); got != "1.35" {
		t.Errorf("Ratio = %q, want 1.35", got)
	}
	if got := Percent(12.3456, 2); got != "12.35%" {
		t.Errorf("Percent = %q, want 12.35%%", got)
	}
}
