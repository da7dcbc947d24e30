package handlers

import (
	"net/http"
	"path"
	"strings"
)

// HandleStatic serves the site's pages and assets from the static
// directory. The raw images directory is excluded; image bytes only
// leave through the watermarking endpoint.
func (h *Handler) HandleStatic(w http.ResponseWriter, r *http.Request) {
	filepath := strings.TrimPrefix(r.URL.Path, "/")
	if filepath == "" {
		filepath = "index.html"
	}

	// Prevent directory traversal attacks
	if strings.Contains(filepath, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	if strings.HasPrefix(filepath, "images/") {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	switch {
	case strings.HasSuffix(filepath, ".css"):
		w.Header().Set("Content-Type", "text/css")
	case strings.HasSuffix(filepath, ".js"):
		w.Header().Set("Content-Type", "application/javascript")
	case strings.HasSuffix(filepath, ".html"):
		w.Header().Set("Content-Type", "text/html")
	}

	http.ServeFile(w, r, path.Join(h.cfg.StaticDir, filepath))
}
