package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/tacto/internal/httpserver/deps"
)

const pingTimeout = 2 * time.Second

type componentStatus struct {
	OK         bool   `json:"ok"`
	Loaded     *int   `json:"loaded,omitempty"`
	Bytes      *int64 `json:"bytes,omitempty"`
	LastReload string `json:"last_reload,omitempty"`
	Mode       string `json:"mode,omitempty"`
	Impact     string `json:"impact,omitempty"`
	Error      string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra describes every subsystem the launcher depends on.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"catalog":   catalogStatus(d),
			"bookmarks": bookmarkStatus(d),
			"store":     checkStore(r.Context(), d),
			"clipboard": clipboardStatus(d),
			"search": {
				OK:   d.SearchBackend != "",
				Mode: d.SearchBackend,
			},
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	if s, ok := components["store"]; ok && !s.OK {
		return "degraded" // nothing persists until the store is back
	}
	if s, ok := components["search"]; ok && !s.OK {
		return "degraded"
	}
	return "ok"
}

func formatReload(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format("2006-01-02 15:04:05")
}

func catalogStatus(d deps.Deps) componentStatus {
	if d.Catalog == nil {
		return componentStatus{OK: false, Error: "catalog not initialized"}
	}
	n := d.Catalog.Count()
	return componentStatus{
		OK:         true,
		Loaded:     &n,
		LastReload: formatReload(d.Catalog.GetLastReload()),
	}
}

func bookmarkStatus(d deps.Deps) componentStatus {
	if d.BookmarkReloadTrigger == nil || d.Catalog == nil {
		return componentStatus{OK: true, Mode: "disabled"}
	}
	n := d.Catalog.BookmarkCount()
	return componentStatus{
		OK:         true,
		Loaded:     &n,
		LastReload: formatReload(d.Catalog.GetLastBookmarkReload()),
		Mode:       "file",
	}
}

func clipboardStatus(d deps.Deps) componentStatus {
	if d.Clipboard == nil {
		return componentStatus{OK: true, Mode: "disabled"}
	}
	n, size := d.Clipboard.Stats()
	return componentStatus{OK: true, Loaded: &n, Bytes: &size, Mode: "polling"}
}

func checkStore(ctx context.Context, d deps.Deps) componentStatus {
	if d.StorePing == nil {
		return componentStatus{OK: true, Mode: d.StoreBackend}
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := d.StorePing(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   d.StoreBackend,
			Impact: "history-not-persisted",
			Error:  err.Error(),
		}
	}
	return componentStatus{OK: true, Mode: d.StoreBackend}
}
