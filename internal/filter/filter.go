// Package filter evaluates per-column filter expressions against catalog
// records. All active expressions are AND-ed; an empty expression is the
// identity filter. Evaluation is synchronous and order-preserving, so the
// same records and spec always produce the same output.
package filter

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/georgiajedi/catalog/internal/models"
	"github.com/georgiajedi/catalog/internal/parse"
)

// Sentinel values used by the numeric and date selectors.
const (
	SelectBlank  = "__blank__"
	SelectRange  = "__range__"
	SelectCustom = "__custom__"
	PresetPrefix = "preset:"
	YearPrefix   = "year:"
)

var comparatorRe = regexp.MustCompile(`^(<=|>=|=|<|>)?\s*([\d,.]+)$`)

// NumericRange is the custom min/max form for a currency column. Min and
// Max may each be a comparator expression or a bare inclusive bound.
// BlankOnly short-circuits both bounds and matches only unparseable
// values.
type NumericRange struct {
	Min       string
	Max       string
	BlankOnly bool
}

func (r NumericRange) empty() bool {
	return r.Min == "" && r.Max == "" && !r.BlankOnly
}

// DateRange is the custom range form for the acquired column. Either
// bound may be open; both empty means no constraint.
type DateRange struct {
	Start string
	End   string
}

// Spec is the complete set of active filter expressions for one view.
// The zero value matches every record.
type Spec struct {
	// Columns maps a column key to its filter-row expression: substring
	// text for free-text columns, an exact value for enumerated columns,
	// and a comparator string for the currency columns.
	Columns map[string]string

	// Acquired holds the date selector value: "", SelectBlank,
	// "year:YYYY", or SelectRange (with AcquiredRange populated).
	Acquired      string
	AcquiredRange DateRange

	// OriginalSelect / CurrentSelect hold the currency selector value:
	// "", SelectBlank, "preset:under:N", "preset:over:N", or
	// SelectCustom (with the matching range populated).
	OriginalSelect string
	OriginalRange  NumericRange
	CurrentSelect  string
	CurrentRange   NumericRange
}

// Enumerated columns match exactly; everything else in Columns is
// substring or comparator matched.
var selectColumns = map[string]bool{
	models.ColFranchise: true,
	models.ColSizeModel: true,
	models.ColSource:    true,
}

var currencyColumns = map[string]bool{
	models.ColOriginalCost: true,
	models.ColCurrentValue: true,
}

// Active reports whether any expression constrains the result set.
func (s Spec) Active() bool {
	for _, v := range s.Columns {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return s.Acquired != "" || s.OriginalSelect != "" || s.CurrentSelect != "" ||
		!s.OriginalRange.empty() || !s.CurrentRange.empty() ||
		s.AcquiredRange != (DateRange{})
}

// Apply returns the records matching every active expression, in their
// original relative order. The result is always a subset of records and
// the operation is idempotent.
func Apply(records []models.Record, spec Spec) []models.Record {
	if !spec.Active() {
		return records
	}
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if Matches(r, spec) {
			out = append(out, r)
		}
	}
	return out
}

// Matches evaluates one record against the full spec.
func Matches(r models.Record, spec Spec) bool {
	if !matchDateSelect(r.Acquired, spec.Acquired, spec.AcquiredRange) {
		return false
	}
	if !matchNumericSelect(r.OriginalCost.String(), spec.OriginalSelect, spec.OriginalRange) {
		return false
	}
	if !matchNumericSelect(r.CurrentValue.String(), spec.CurrentSelect, spec.CurrentRange) {
		return false
	}
	for col, expr := range spec.Columns {
		expr = strings.TrimSpace(expr)
		if expr == "" {
			continue
		}
		value := r.Field(col)
		switch {
		case currencyColumns[col]:
			if !MatchComparator(value, expr) {
				return false
			}
		case selectColumns[col]:
			if value != expr {
				return false
			}
		default:
			if !strings.Contains(strings.ToLower(value), strings.ToLower(expr)) {
				return false
			}
		}
	}
	return true
}

// MatchComparator evaluates a "<= 100"-style expression against a raw
// currency value. A malformed expression imposes no constraint; a record
// whose value does not parse never matches.
func MatchComparator(value, expr string) bool {
	m := comparatorRe.FindStringSubmatch(strings.TrimSpace(expr))
	if m == nil {
		return true
	}
	op := m[1]
	if op == "" {
		op = "="
	}
	bound, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", ""), 64)
	if err != nil {
		return true
	}
	v := parse.Number(value)
	if math.IsNaN(v) {
		return false
	}
	switch op {
	case "<":
		return v < bound
	case "<=":
		return v <= bound
	case ">=":
		return v >= bound
	case ">":
		return v > bound
	default:
		return v == bound
	}
}

func matchNumericSelect(value, sel string, rng NumericRange) bool {
	switch {
	case sel == SelectBlank:
		return math.IsNaN(parse.Number(value))
	case strings.HasPrefix(sel, PresetPrefix):
		return matchPreset(value, sel)
	case sel == SelectCustom:
		return matchNumericRange(value, rng)
	}
	return true
}

// matchPreset evaluates the named shortcut buckets. "under" is inclusive
// of the bound while "over" is strictly greater than it.
func matchPreset(value, sel string) bool {
	parts := strings.Split(sel, ":")
	if len(parts) != 3 {
		return true
	}
	bound, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return true
	}
	v := parse.Number(value)
	switch parts[1] {
	case "under":
		return !math.IsNaN(v) && v <= bound
	case "over":
		return !math.IsNaN(v) && v > bound
	}
	return true
}

func matchNumericRange(value string, rng NumericRange) bool {
	v := parse.Number(value)
	blank := math.IsNaN(v)
	if rng.BlankOnly {
		return blank
	}
	if blank {
		return false
	}
	if min := strings.TrimSpace(rng.Min); min != "" {
		if hasComparatorPrefix(min) {
			if !MatchComparator(value, min) {
				return false
			}
		} else if mn := parse.Number(min); !math.IsNaN(mn) && v < mn {
			return false
		}
	}
	if max := strings.TrimSpace(rng.Max); max != "" {
		if hasComparatorPrefix(max) {
			if !MatchComparator(value, max) {
				return false
			}
		} else if mx := parse.Number(max); !math.IsNaN(mx) && v > mx {
			return false
		}
	}
	return true
}

func hasComparatorPrefix(s string) bool {
	for _, op := range []string{"<=", ">=", "=", "<", ">"} {
		if strings.HasPrefix(s, op) {
			return true
		}
	}
	return false
}

func matchDateSelect(value, sel string, rng DateRange) bool {
	switch {
	case sel == SelectBlank:
		_, ok := parse.Date(value)
		return !ok
	case strings.HasPrefix(sel, YearPrefix):
		year, err := strconv.Atoi(strings.TrimPrefix(sel, YearPrefix))
		if err != nil {
			return true
		}
		d, ok := parse.Date(value)
		return ok && d.Year() == year
	case sel == SelectRange:
		// Only bounds that parse constrain anything, so a garbage bound
		// is the same as no bound.
		start, startOK := parse.Date(rng.Start)
		end, endOK := parse.Date(rng.End)
		if !startOK && !endOK {
			return true
		}
		d, ok := parse.Date(value)
		if !ok {
			return false
		}
		if startOK && d.Before(start) {
			return false
		}
		if endOK && d.After(end) {
			return false
		}
		return true
	}
	return true
}

// Years enumerates the distinct acquisition years present in records,
// newest first, for the acquired selector's options.
func Years(records []models.Record) []int {
	seen := map[int]bool{}
	for _, r := range records {
		if d, ok := parse.Date(r.Acquired); ok {
			seen[d.Year()] = true
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// Distinct enumerates the non-empty values of an enumerated column,
// sorted case-insensitively, for its select options.
func Distinct(records []models.Record, col string) []string {
	seen := map[string]bool{}
	for _, r := range records {
		if v := r.Field(col); v != "" {
			seen[v] = true
		}
	}
	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool {
		return strings.ToLower(values[i]) < strings.ToLower(values[j])
	})
	return values
}
