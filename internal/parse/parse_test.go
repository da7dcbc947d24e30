package parse

import (
	"math"
	"testing"
	"time"
)

func TestDate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantOK   bool
		expected string
	}{
		{name: "iso form", raw: "2023-05-01", wantOK: true, expected: "2023-05-01"},
		{name: "iso with surrounding space", raw: "  2023-12-31 ", wantOK: true, expected: "2023-12-31"},
		{name: "slash form", raw: "5/1/2023", wantOK: true, expected: "2023-05-01"},
		{name: "slash form zero padded", raw: "05/01/2023", wantOK: true, expected: "2023-05-01"},
		{name: "long month fallback", raw: "January 2, 2006", wantOK: true, expected: "2006-01-02"},
		{name: "empty", raw: "", wantOK: false},
		{name: "whitespace only", raw: "   ", wantOK: false},
		{name: "garbage", raw: "not a date", wantOK: false},
		{name: "iso with bad month", raw: "2023-13-45", wantOK: false},
		{name: "slash with garbage part", raw: "aa/bb/cccc", wantOK: false},
		{name: "slash out of range", raw: "13/45/2023", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := Date(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("Date(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if ok && d.Format("2006-01-02") != tt.expected {
				t.Errorf("Date(%q) = %s, want %s", tt.raw, d.Format("2006-01-02"), tt.expected)
			}
		})
	}
}

func TestDateLocalMidnight(t *testing.T) {
	d, ok := Date("2023-05-01")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if d.Hour() != 0 || d.Minute() != 0 {
		t.Errorf("expected local midnight, got %v", d)
	}
	if d.Location() != time.Local {
		t.Errorf("expected local time, got %v", d.Location())
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected float64
		wantNaN  bool
	}{
		{name: "plain", raw: "25.00", expected: 25},
		{name: "dollar sign", raw: "$1,234.50", expected: 1234.5},
		{name: "arbitrary symbol", raw: "GBP 99", expected: 99},
		{name: "negative", raw: "-42", expected: -42},
		{name: "empty", raw: "", wantNaN: true},
		{name: "whitespace", raw: "   ", wantNaN: true},
		{name: "no digits", raw: "n/a", wantNaN: true},
		// Known limitation carried forward: a dash separator corrupts
		// the value rather than failing cleanly.
		{name: "dash separator", raw: "1-000", wantNaN: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Number(tt.raw)
			if tt.wantNaN {
				if !math.IsNaN(n) {
					t.Errorf("Number(%q) = %v, want NaN", tt.raw, n)
				}
				return
			}
			if n != tt.expected {
				t.Errorf("Number(%q) = %v, want %v", tt.raw, n, tt.expected)
			}
		})
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "plain value", raw: "1234.5", expected: "$1,234.50"},
		{name: "already symbolized", raw: "$25", expected: "$25.00"},
		{name: "empty stays empty", raw: "", expected: ""},
		{name: "unparseable passes through", raw: "priceless", expected: "priceless"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Currency(tt.raw)
			if got != tt.expected {
				t.Errorf("Currency(%q) = %q, want %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestCurrencyValueNaN(t *testing.T) {
	if got := CurrencyValue(math.NaN()); got != "" {
		t.Errorf("CurrencyValue(NaN) = %q, want empty", got)
	}
}

// Totality: no input may panic any parser.
func TestParsersNeverPanic(t *testing.T) {
	inputs := []string{"", " ", "\x00", "////", "---", "2023-", "99999999999999999999", "∞", "née Müller"}
	for _, in := range inputs {
		Date(in)
		Number(in)
		Currency(in)
	}
}
