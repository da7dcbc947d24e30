package handlers

import (
	"net/http"
	"strings"

	"github.com/georgiajedi/catalog/internal/export"
)

// HandleExport streams the current row selection in the requested
// format. mode follows the table's export menu: all, filtered, page, or
// selected (with ids). The table state rides in via the same s parameter
// the detail links use.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	collection := collectionParam(r)
	records, err := h.store.Records(collection)
	if err != nil {
		h.writeError(w, "Unknown collection: "+collection, http.StatusNotFound)
		return
	}

	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	mode := export.ParseMode(r.URL.Query().Get("mode"))

	var ids []string
	if raw := r.URL.Query().Get("ids"); raw != "" {
		ids = strings.Split(raw, ",")
	}

	state := stateFromRequest(r)
	rows := export.MapRows(export.Select(records, state, mode, ids))
	if len(rows) == 0 {
		h.writeError(w, "No rows available to export", http.StatusBadRequest)
		return
	}

	filename := r.URL.Query().Get("filename")
	if filename == "" {
		filename = collection + "-export"
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+"."+string(format)+`"`)
	if err := export.Write(w, format, rows, filename); err != nil {
		// Headers may already be gone; just log through writeError's slog.
		h.writeError(w, "Export failed: "+err.Error(), http.StatusInternalServerError)
	}
}
