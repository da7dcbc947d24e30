package handlers

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/georgiajedi/catalog/internal/watermark"
)

const dataURLPrefix = "data:image/jpeg;base64,"

// HandleImage serves the watermarked rendition of a catalog image.
// format=dataurl returns the cached data URL as JSON (what the detail
// page's <img> consumes); the default streams the JPEG bytes.
func (h *Handler) HandleImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ref := r.URL.Query().Get("image")
	if ref == "" {
		h.writeError(w, "image parameter is required", http.StatusBadRequest)
		return
	}
	mode := watermark.ParseMode(r.URL.Query().Get("mode"))

	dataURL, err := h.compositor.Get(r.Context(), ref, mode)
	if err != nil {
		// Client went away while waiting; nothing to send.
		return
	}
	if dataURL == "" {
		// Soft failure: the caller falls back to a placeholder.
		h.writeError(w, "Image unavailable: "+ref, http.StatusNotFound)
		return
	}

	if r.URL.Query().Get("format") == "dataurl" {
		h.writeJSON(w, map[string]string{"image": ref, "mode": string(mode), "data_url": dataURL})
		return
	}

	raw, decodeErr := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, dataURLPrefix))
	if decodeErr != nil {
		h.writeError(w, "Corrupt cached render", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	if _, err := w.Write(raw); err != nil {
		return
	}
}
