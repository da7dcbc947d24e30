// Package parse normalizes the loosely-typed strings stored in catalog
// files (free-form dates, currency values with symbols and grouping)
// into comparable values. Every function here is total: bad input comes
// back as an absent sentinel, never an error.
package parse

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	isoDateRe  = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	numericRe  = regexp.MustCompile(`[^0-9.-]+`)
	currencyPr = message.NewPrinter(language.AmericanEnglish)
)

// Fallback layouts tried after the two primary grammars, roughly what a
// browser's Date() constructor would accept for this data.
var fallbackLayouts = []string{
	"2006-01-02T15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006/01/02",
	time.RFC3339,
}

// Date parses an acquisition date. Accepted forms, in order: ISO
// YYYY-MM-DD (zero-padded, local midnight), M/D/YYYY (lenient on
// zero-padding), then a small set of generic layouts. ok is false for
// empty or unparseable input; such a value compares as neither before
// nor after any real date and only a blank filter can match it.
func Date(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err == nil {
			return t, true
		}
		return time.Time{}, false
	}

	if parts := strings.Split(s, "/"); len(parts) == 3 {
		mm, errM := strconv.Atoi(strings.TrimSpace(parts[0]))
		dd, errD := strconv.Atoi(strings.TrimSpace(parts[1]))
		yyyy, errY := strconv.Atoi(strings.TrimSpace(parts[2]))
		if errM == nil && errD == nil && errY == nil {
			padded := fmt.Sprintf("%04d-%02d-%02d", yyyy, mm, dd)
			t, err := time.ParseInLocation("2006-01-02", padded, time.Local)
			if err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Number extracts a float from a currency-like string by stripping every
// rune that is not a digit, '.', or '-'. "$1,234.50" parses as 1234.5.
// Empty or unparseable input returns NaN, including values with an
// embedded '-' separator, which survives the strip and breaks the parse.
func Number(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return math.NaN()
	}
	stripped := numericRe.ReplaceAllString(s, "")
	n, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return math.NaN()
	}
	return n
}

// Currency renders a raw value as a US-dollar string for display and
// footer totals. Empty input yields ""; a value that does not parse as
// a number is passed through untouched.
func Currency(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	n := Number(raw)
	if math.IsNaN(n) {
		return raw
	}
	return CurrencyValue(n)
}

// CurrencyValue formats an already-parsed amount.
func CurrencyValue(n float64) string {
	if math.IsNaN(n) {
		return ""
	}
	s, err := formatUSD(n)
	if err != nil {
		return "$" + strconv.FormatFloat(n, 'f', 2, 64)
	}
	return s
}

func formatUSD(n float64) (s string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("currency format: %v", r)
		}
	}()
	s = "$" + currencyPr.Sprint(number.Decimal(n, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	return s, nil
}
