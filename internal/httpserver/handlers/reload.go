package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/tacto/internal/httpserver/deps"
	"github.com/MrSnakeDoc/tacto/internal/logger"
)

type reloadResponse struct {
	Catalog   bool `json:"catalog"`
	Bookmarks bool `json:"bookmarks"`
}

// Reload asks the catalog and bookmark reloaders for an immediate pass. A
// trigger that is still pending from an earlier call counts as busy.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp reloadResponse
		resp.Catalog = trigger(d, d.CatalogReloadTrigger, "catalog", r)
		if d.BookmarkReloadTrigger != nil {
			resp.Bookmarks = trigger(d, d.BookmarkReloadTrigger, "bookmarks", r)
		}

		if resp.Catalog || resp.Bookmarks {
			writeJSON(w, http.StatusAccepted, resp)
			return
		}
		writeJSON(w, http.StatusTooManyRequests, resp)
	}
}

func trigger(d deps.Deps, ch chan struct{}, name string, r *http.Request) bool {
	if ch == nil {
		return false
	}
	select {
	case ch <- struct{}{}:
		d.Logger.Info("manual reload triggered",
			logger.String("target", name),
			logger.String("remote_ip", r.RemoteAddr))
		return true
	default:
		d.Logger.Warn("reload already pending",
			logger.String("target", name),
			logger.String("remote_ip", r.RemoteAddr))
		return false
	}
}
