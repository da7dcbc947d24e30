// Package tableview is the server-side stand-in for the table widget:
// free-text search, column sorting, and pagination over an
// already-filtered record list, plus the footer aggregates.
package tableview

import (
	"math"
	"sort"
	"strings"

	"github.com/georgiajedi/catalog/internal/filter"
	"github.com/georgiajedi/catalog/internal/models"
	"github.com/georgiajedi/catalog/internal/parse"
	"github.com/georgiajedi/catalog/internal/tablestate"
)

// PageSizes is the page-size list offered by the table.
var PageSizes = []int{5, 10, 25, 50, 100}

var searchColumns = []string{
	models.ColNameBrand, models.ColFranchise, models.ColDescription,
	models.ColSizeModel, models.ColSource, models.ColSerialNumber,
	models.ColOriginalCost, models.ColCurrentValue, models.ColIsVerified,
	models.ColAcquired,
}

// Page is one rendered view of the table.
type Page struct {
	Records    []models.Record
	PageNumber int
	PageSize   int
	TotalRows  int
	TotalPages int
	Totals     Totals
}

// Totals carries the footer aggregates for the current filtered set.
type Totals struct {
	OriginalCost string `json:"original_cost"`
	CurrentValue string `json:"current_value"`
	ImageCount   int    `json:"image_count"`
}

// ApplyState runs a decoded table state against the full record list:
// filters first, then search, then sort, then page clamp and slice.
// Filtering must precede the page restore since it changes the page
// count.
func ApplyState(records []models.Record, state tablestate.State) Page {
	state.Normalize()
	spec := filter.SpecFromValues(state.Filters)
	rows := filter.Apply(records, spec)
	rows = Search(rows, state.SearchText)
	rows = Sort(rows, state.SortName, state.SortOrder)
	return Paginate(rows, state.PageNumber, state.PageSize)
}

// Search keeps records with any column containing text,
// case-insensitively. Empty text keeps everything.
func Search(records []models.Record, text string) []models.Record {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return records
	}
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.ID.String()), needle) {
			out = append(out, r)
			continue
		}
		for _, col := range searchColumns {
			if strings.Contains(strings.ToLower(r.Field(col)), needle) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// Sort orders records by the named column. Date columns compare parsed
// dates and currency columns compare numerically; in both cases records
// whose value does not parse sink to the end regardless of direction,
// so blanks never lead a sorted view. Everything else compares
// case-insensitively. The sort is stable and an empty column name
// leaves the input order untouched.
func Sort(records []models.Record, name, order string) []models.Record {
	if name == "" {
		return records
	}
	desc := strings.EqualFold(order, "desc")
	out := make([]models.Record, len(records))
	copy(out, records)

	switch {
	case name == models.ColAcquired:
		sortByKey(out, desc, func(r models.Record) (float64, bool) {
			d, ok := parse.Date(r.Acquired)
			return float64(d.Unix()), ok
		})
	case name == models.ColOriginalCost || name == models.ColCurrentValue:
		sortByKey(out, desc, func(r models.Record) (float64, bool) {
			n := parse.Number(r.Field(name))
			return n, !math.IsNaN(n)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			a := strings.ToLower(out[i].Field(name))
			b := strings.ToLower(out[j].Field(name))
			if desc {
				return a > b
			}
			return a < b
		})
	}
	return out
}

// sortByKey orders records by a numeric sort key. The absent check runs
// before the direction flip, which is what keeps keyless records at the
// end for both asc and desc.
func sortByKey(records []models.Record, desc bool, key func(models.Record) (float64, bool)) {
	sort.SliceStable(records, func(i, j int) bool {
		va, aok := key(records[i])
		vb, bok := key(records[j])
		if aok != bok {
			return aok
		}
		if !aok {
			return false
		}
		if desc {
			return va > vb
		}
		return va < vb
	})
}

// Paginate slices out one page, clamping an out-of-range page number
// against the actual page count.
func Paginate(records []models.Record, pageNumber, pageSize int) Page {
	if pageSize < 1 {
		pageSize = tablestate.DefaultPageSize
	}
	total := len(records)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageNumber > totalPages {
		pageNumber = totalPages
	}
	start := (pageNumber - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return Page{
		Records:    records[start:end],
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalRows:  total,
		TotalPages: totalPages,
		Totals:     Aggregate(records),
	}
}

// Aggregate computes the footer totals over the filtered set: currency
// sums (unparseable values count as zero) and the real-image count.
func Aggregate(records []models.Record) Totals {
	var orig, curr float64
	images := 0
	for _, r := range records {
		if n := parse.Number(r.OriginalCost.String()); !math.IsNaN(n) {
			orig += n
		}
		if n := parse.Number(r.CurrentValue.String()); !math.IsNaN(n) {
			curr += n
		}
		if r.HasImage() {
			images++
		}
	}
	return Totals{
		OriginalCost: parse.CurrencyValue(orig),
		CurrentValue: parse.CurrencyValue(curr),
		ImageCount:   images,
	}
}
