// Package export turns a row selection into downloadable files. The row
// selection policy (all / filtered / page / selected) is the interesting
// part; the format writers are thin encoders over one mapped row shape.
package export

import (
	"math"

	"github.com/georgiajedi/catalog/internal/models"
	"github.com/georgiajedi/catalog/internal/parse"
	"github.com/georgiajedi/catalog/internal/tablestate"
	"github.com/georgiajedi/catalog/internal/tableview"
)

// Mode picks which rows an export covers.
type Mode string

const (
	ModeAll      Mode = "all"
	ModeFiltered Mode = "filtered"
	ModePage     Mode = "page"
	ModeSelected Mode = "selected"
)

// ParseMode validates a mode string, defaulting to all.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeFiltered, ModePage, ModeSelected:
		return Mode(s)
	}
	return ModeAll
}

// Row is the cleaned export shape shared by every format. Currency
// columns are numeric, with unparseable values exported as zero.
type Row struct {
	ID           string  `json:"ID" parquet:"id"`
	Acquired     string  `json:"Acquired" parquet:"acquired"`
	Title        string  `json:"Title" parquet:"title"`
	Franchise    string  `json:"Franchise" parquet:"franchise"`
	Description  string  `json:"Description" parquet:"description"`
	Source       string  `json:"Source" parquet:"source"`
	OriginalCost float64 `json:"OriginalCost" parquet:"original_cost"`
	CurrentValue float64 `json:"CurrentValue" parquet:"current_value"`
	IsVerified   string  `json:"IsVerified" parquet:"is_verified"`
}

// Headers is the column order used by the tabular formats.
var Headers = []string{
	"ID", "Acquired", "Title", "Franchise", "Description",
	"Source", "OriginalCost", "CurrentValue", "IsVerified",
}

// Select resolves an export mode to the concrete record list. state
// supplies the filters, sort, and current page; selectedIDs only matters
// for ModeSelected.
func Select(records []models.Record, state tablestate.State, mode Mode, selectedIDs []string) []models.Record {
	switch mode {
	case ModeFiltered:
		page := tableview.ApplyState(records, withAllRows(state))
		return page.Records
	case ModePage:
		page := tableview.ApplyState(records, state)
		return page.Records
	case ModeSelected:
		wanted := map[string]bool{}
		for _, id := range selectedIDs {
			wanted[id] = true
		}
		out := make([]models.Record, 0, len(selectedIDs))
		for _, r := range records {
			if wanted[r.ID.String()] {
				out = append(out, r)
			}
		}
		return out
	default:
		return records
	}
}

// withAllRows keeps the state's filters and sort but spans every row.
func withAllRows(state tablestate.State) tablestate.State {
	state.Normalize()
	state.PageNumber = 1
	state.PageSize = math.MaxInt32
	return state
}

// MapRows converts records to the export shape.
func MapRows(records []models.Record) []Row {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, Row{
			ID:           r.ID.String(),
			Acquired:     r.Acquired,
			Title:        r.DisplayTitle(),
			Franchise:    r.Franchise,
			Description:  r.Description,
			Source:       r.Source,
			OriginalCost: zeroNaN(parse.Number(r.OriginalCost.String())),
			CurrentValue: zeroNaN(parse.Number(r.CurrentValue.String())),
			IsVerified:   r.IsVerified.String(),
		})
	}
	return rows
}

func zeroNaN(n float64) float64 {
	if math.IsNaN(n) {
		return 0
	}
	return n
}
