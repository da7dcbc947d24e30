package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/georgiajedi/catalog/internal/filter"
	"github.com/georgiajedi/catalog/internal/models"
	"github.com/georgiajedi/catalog/internal/parse"
	"github.com/georgiajedi/catalog/internal/tablestate"
	"github.com/georgiajedi/catalog/internal/tableview"
)

// RecordView is one row as the table consumes it: the raw record plus
// display formatting and the detail links carrying the encoded view
// state.
type RecordView struct {
	models.Record
	TitleDisplay    string `json:"title_display"`
	AcquiredDisplay string `json:"acquired_display"`
	OriginalDisplay string `json:"original_cost_display"`
	CurrentDisplay  string `json:"current_value_display"`
	VerifiedRow     bool   `json:"verified_row"`
	HasImage        bool   `json:"has_image"`
	ThumbURL        string `json:"thumb_url,omitempty"`
	ImageViewURL    string `json:"image_view_url,omitempty"`
	EditURL         string `json:"edit_url"`
}

// RecordsResponse is the full table page payload.
type RecordsResponse struct {
	Collection string           `json:"collection"`
	Records    []RecordView     `json:"records"`
	PageNumber int              `json:"page_number"`
	PageSize   int              `json:"page_size"`
	PageSizes  []int            `json:"page_sizes"`
	TotalRows  int              `json:"total_rows"`
	TotalPages int              `json:"total_pages"`
	Totals     tableview.Totals `json:"totals"`
	State      string           `json:"state"`

	// Select-control options derived from the full collection.
	Years      []int    `json:"years"`
	Franchises []string `json:"franchises"`
	Sizes      []string `json:"sizes"`
	Sources    []string `json:"sources"`
}

func (h *Handler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listRecords(w, r)
	case http.MethodPost:
		h.upsertRecord(w, r)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	collection := collectionParam(r)
	records, err := h.store.Records(collection)
	if err != nil {
		h.writeError(w, "Unknown collection: "+collection, http.StatusNotFound)
		return
	}

	state := stateFromRequest(r)
	page := tableview.ApplyState(records, state)

	// Re-encode after normalization so the links round-trip the view
	// exactly as rendered.
	encoded := tablestate.Encode(state)

	views := make([]RecordView, 0, len(page.Records))
	for _, rec := range page.Records {
		views = append(views, h.recordView(rec, collection, encoded))
	}

	h.writeJSON(w, RecordsResponse{
		Collection: collection,
		Records:    views,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
		PageSizes:  tableview.PageSizes,
		TotalRows:  page.TotalRows,
		TotalPages: page.TotalPages,
		Totals:     page.Totals,
		State:      encoded,
		Years:      filter.Years(records),
		Franchises: filter.Distinct(records, models.ColFranchise),
		Sizes:      filter.Distinct(records, models.ColSizeModel),
		Sources:    filter.Distinct(records, models.ColSource),
	})
}

func (h *Handler) recordView(rec models.Record, collection, encodedState string) RecordView {
	v := RecordView{
		Record:          rec,
		TitleDisplay:    rec.DisplayTitle(),
		AcquiredDisplay: formatDate(rec.Acquired),
		OriginalDisplay: parse.Currency(rec.OriginalCost.String()),
		CurrentDisplay:  parse.Currency(rec.CurrentValue.String()),
		VerifiedRow:     rec.Verified(),
		HasImage:        rec.HasImage(),
		EditURL: "update-item.html?id=" + url.QueryEscape(rec.ID.String()) +
			"&itemType=" + url.QueryEscape(collection),
	}
	if v.HasImage {
		v.ThumbURL = "/api/image?image=" + url.QueryEscape(rec.Image) + "&mode=thumb"
		v.ImageViewURL = "imageview.html?image=" + url.QueryEscape(rec.Image) +
			"&sender=" + url.QueryEscape(collection) + "&s=" + encodedState
	}
	return v
}

func formatDate(raw string) string {
	if d, ok := parse.Date(raw); ok {
		return d.Format("2006-01-02")
	}
	return ""
}

// stateFromRequest rebuilds the view state from the compact s parameter
// when present, otherwise from the individual query parameters the old
// links carried (pg, pageSize, sort, order, search, f_<column>).
func stateFromRequest(r *http.Request) tablestate.State {
	q := r.URL.Query()
	if raw := q.Get("s"); raw != "" {
		if state := tablestate.Decode(raw); state != nil {
			return *state
		}
	}

	state := tablestate.New()
	if n, err := strconv.Atoi(q.Get("pg")); err == nil {
		state.PageNumber = n
	}
	if n, err := strconv.Atoi(q.Get("pageSize")); err == nil {
		state.PageSize = n
	}
	state.SortName = q.Get("sort")
	state.SortOrder = q.Get("order")
	state.SearchText = q.Get("search")
	for key, values := range q {
		if field, ok := strings.CutPrefix(key, "f_"); ok && len(values) > 0 && values[0] != "" {
			state.Filters[field] = values[0]
		}
	}
	state.Normalize()
	return state
}

func (h *Handler) upsertRecord(w http.ResponseWriter, r *http.Request) {
	if !h.isAdmin(r) {
		h.writeError(w, "Admin session required", http.StatusForbidden)
		return
	}

	collection := collectionParam(r)
	var rec models.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	saved, err := h.store.Upsert(collection, rec)
	if err != nil {
		h.writeError(w, "Failed to save record: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, saved)
}
