package tableview

import (
	"reflect"
	"testing"

	"github.com/georgiajedi/catalog/internal/models"
	"github.com/georgiajedi/catalog/internal/tablestate"
)

func sampleRecords() []models.Record {
	return []models.Record{
		{ID: "1", Acquired: "2023-05-01", NameBrand: "Mark Hamill Photo", Franchise: "Star Wars", OriginalCost: "25.00", CurrentValue: "150", Image: "OPIX_Hamill"},
		{ID: "2", Acquired: "", NameBrand: "Mystery Item", Franchise: "Star Trek", OriginalCost: "", CurrentValue: "n/a", Image: "100.png"},
		{ID: "3", Acquired: "2022-01-15", NameBrand: "Carrie Fisher Card", Franchise: "Star Wars", OriginalCost: "$99.99", CurrentValue: "240", Image: "OPIX_Fisher"},
		{ID: "4", Acquired: "2023-12-31", NameBrand: "Patrick Stewart Plaque", Franchise: "Star Trek", OriginalCost: "1,200", CurrentValue: "900"},
	}
}

func ids(records []models.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID.String())
	}
	return out
}

func TestSortDates(t *testing.T) {
	records := sampleRecords()

	asc := Sort(records, models.ColAcquired, "asc")
	if got, want := ids(asc), []string{"3", "1", "4", "2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("asc date sort = %v, want %v (blanks sink)", got, want)
	}

	desc := Sort(records, models.ColAcquired, "desc")
	if got, want := ids(desc), []string{"4", "1", "3", "2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("desc date sort = %v, want %v (blanks sink)", got, want)
	}
}

func TestSortCurrency(t *testing.T) {
	records := sampleRecords()
	asc := Sort(records, models.ColOriginalCost, "asc")
	if got, want := ids(asc), []string{"1", "3", "4", "2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("asc cost sort = %v, want %v (unparseable sinks)", got, want)
	}

	desc := Sort(records, models.ColOriginalCost, "desc")
	if got, want := ids(desc), []string{"4", "3", "1", "2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("desc cost sort = %v, want %v (unparseable sinks)", got, want)
	}
}

func TestSortUnknownColumnKeepsOrder(t *testing.T) {
	records := sampleRecords()
	got := Sort(records, "", "asc")
	if !reflect.DeepEqual(ids(got), []string{"1", "2", "3", "4"}) {
		t.Errorf("empty sort column changed order: %v", ids(got))
	}
}

func TestSearch(t *testing.T) {
	records := sampleRecords()
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{name: "empty matches all", text: "", expected: []string{"1", "2", "3", "4"}},
		{name: "title substring", text: "hamill", expected: []string{"1"}},
		{name: "franchise substring", text: "trek", expected: []string{"2", "4"}},
		{name: "title word", text: "mystery", expected: []string{"2"}},
		{name: "no match", text: "zzz", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Search(records, tt.text))
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Search(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestPaginateClampsPageNumber(t *testing.T) {
	records := sampleRecords()

	page := Paginate(records, 99, 2)
	if page.PageNumber != 2 {
		t.Errorf("expected page clamped to 2, got %d", page.PageNumber)
	}
	if page.TotalPages != 2 || page.TotalRows != 4 {
		t.Errorf("unexpected page math: pages=%d rows=%d", page.TotalPages, page.TotalRows)
	}
	if got := ids(page.Records); !reflect.DeepEqual(got, []string{"3", "4"}) {
		t.Errorf("clamped page records = %v", got)
	}

	empty := Paginate(nil, 5, 10)
	if empty.PageNumber != 1 || empty.TotalPages != 1 || len(empty.Records) != 0 {
		t.Errorf("empty set paging wrong: %+v", empty)
	}
}

func TestAggregate(t *testing.T) {
	totals := Aggregate(sampleRecords())
	if totals.OriginalCost != "$1,324.99" {
		t.Errorf("original cost total = %q", totals.OriginalCost)
	}
	if totals.CurrentValue != "$1,290.00" {
		t.Errorf("current value total = %q", totals.CurrentValue)
	}
	// The placeholder image and the missing image don't count.
	if totals.ImageCount != 2 {
		t.Errorf("image count = %d, want 2", totals.ImageCount)
	}
}

// Filters run before the page restore so a stale page number clamps
// against the filtered page count.
func TestApplyStateFiltersBeforePaging(t *testing.T) {
	records := sampleRecords()
	state := tablestate.State{
		PageNumber: 2,
		PageSize:   5,
		Filters:    map[string]string{models.ColFranchise: "Star Wars"},
	}

	page := ApplyState(records, state)
	if page.PageNumber != 1 {
		t.Errorf("expected page clamped to 1 after filtering, got %d", page.PageNumber)
	}
	if got := ids(page.Records); !reflect.DeepEqual(got, []string{"1", "3"}) {
		t.Errorf("filtered page = %v", got)
	}
}

func TestApplyStateSortAndSearch(t *testing.T) {
	records := sampleRecords()
	state := tablestate.State{
		PageNumber: 1,
		PageSize:   10,
		SortName:   models.ColAcquired,
		SortOrder:  "desc",
		SearchText: "star",
	}

	page := ApplyState(records, state)
	if got := ids(page.Records); !reflect.DeepEqual(got, []string{"4", "1", "3", "2"}) {
		t.Errorf("sorted search result = %v", got)
	}
	if page.Totals.ImageCount != 2 {
		t.Errorf("totals should cover the filtered set, got %d images", page.Totals.ImageCount)
	}
}
