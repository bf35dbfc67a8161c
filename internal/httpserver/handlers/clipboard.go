package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrSnakeDoc/tacto/internal/clipboard"
	"github.com/MrSnakeDoc/tacto/internal/httpserver/deps"
	"github.com/MrSnakeDoc/tacto/internal/logger"
)

// clipboardItem is an entry as listed to the panel. Image bytes stay server side.
type clipboardItem struct {
	ID        uuid.UUID          `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Type      clipboard.KindType `json:"type"`
	Display   string             `json:"display"`
	Text      string             `json:"text,omitempty"`
	Width     int                `json:"width,omitempty"`
	Height    int                `json:"height,omitempty"`
	FilePaths []string           `json:"filePaths,omitempty"`
}

type clipboardResponse struct {
	Items []clipboardItem `json:"items"`
	Total int             `json:"total"`
	Bytes int64           `json:"bytes"`
}

func toItem(e clipboard.Entry) clipboardItem {
	return clipboardItem{
		ID:        e.ID,
		Timestamp: e.Timestamp,
		Type:      e.Kind.Type,
		Display:   e.Kind.DisplayText(),
		Text:      e.Kind.Text,
		Width:     e.Kind.Width,
		Height:    e.Kind.Height,
		FilePaths: e.Kind.FilePaths,
	}
}

func clipboardEnabled(d deps.Deps, w http.ResponseWriter) bool {
	if d.Clipboard == nil {
		writeError(w, http.StatusNotFound, "clipboard history is disabled")
		return false
	}
	return true
}

// entryFromURL resolves the {id} route parameter. It writes the error response
// itself and reports false when the entry cannot be used.
func entryFromURL(d deps.Deps, w http.ResponseWriter, r *http.Request) (clipboard.Entry, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry id")
		return clipboard.Entry{}, false
	}
	e, ok := d.Clipboard.Find(id)
	if !ok {
		writeError(w, http.StatusNotFound, "entry not found")
		return clipboard.Entry{}, false
	}
	return e, true
}

// ClipboardList returns the history, newest first, narrowed by ?q=.
func ClipboardList(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !clipboardEnabled(d, w) {
			return
		}
		entries := d.Clipboard.Filter(r.URL.Query().Get("q"))
		items := make([]clipboardItem, 0, len(entries))
		for _, e := range entries {
			items = append(items, toItem(e))
		}
		total, size := d.Clipboard.Stats()
		writeJSON(w, http.StatusOK, clipboardResponse{Items: items, Total: total, Bytes: size})
	}
}

func ClipboardCopy(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !clipboardEnabled(d, w) {
			return
		}
		e, ok := entryFromURL(d, w, r)
		if !ok {
			return
		}
		if err := d.Clipboard.SetClipboard(e); err != nil {
			d.Logger.Warn("clipboard copy failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ClipboardPaste writes the entry and sends the paste keystroke to whichever
// application is frontmost once the paste delay has passed.
func ClipboardPaste(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !clipboardEnabled(d, w) {
			return
		}
		e, ok := entryFromURL(d, w, r)
		if !ok {
			return
		}
		if err := d.Clipboard.PasteIntoFrontmostApp(e); err != nil {
			d.Logger.Warn("clipboard paste failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

func ClipboardDelete(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !clipboardEnabled(d, w) {
			return
		}
		e, ok := entryFromURL(d, w, r)
		if !ok {
			return
		}
		d.Clipboard.Remove(e.ID)
		w.WriteHeader(http.StatusNoContent)
	}
}

func ClipboardClear(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !clipboardEnabled(d, w) {
			return
		}
		d.Clipboard.Clear()
		d.Logger.Info("clipboard history cleared")
		w.WriteHeader(http.StatusNoContent)
	}
}
