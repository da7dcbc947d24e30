package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/georgiajedi/catalog/internal/admin"
	"github.com/georgiajedi/catalog/internal/catalog"
	"github.com/georgiajedi/catalog/internal/config"
	"github.com/georgiajedi/catalog/internal/watermark"
)

// DefaultCollection is used when a request names no collection.
const DefaultCollection = "autographs"

const adminCookie = "catalog_admin"

type Handler struct {
	store      *catalog.Store
	compositor *watermark.Compositor
	admins     *admin.Manager
	cfg        config.Config
}

func New(cfg config.Config) *Handler {
	return &Handler{
		store: catalog.NewStore(cfg.DataDir),
		compositor: watermark.New(watermark.Options{
			BaseDir:     cfg.SiteDir,
			Text:        cfg.WatermarkText,
			FontPath:    cfg.FontPath,
			Concurrency: cfg.RenderWorkers,
		}),
		admins: admin.NewManager(cfg.AdminPassword),
		cfg:    cfg,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// collectionParam resolves the collection name from the query, honoring
// the legacy sender/itemType parameter names from the old page links.
func collectionParam(r *http.Request) string {
	for _, key := range []string{"collection", "sender", "itemType"} {
		if v := r.URL.Query().Get(key); v != "" {
			return v
		}
	}
	return DefaultCollection
}

// isAdmin checks the session cookie set by HandleAdmin.
func (h *Handler) isAdmin(r *http.Request) bool {
	c, err := r.Cookie(adminCookie)
	if err != nil {
		return false
	}
	return h.admins.Valid(c.Value)
}
