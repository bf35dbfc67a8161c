package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/tacto/internal/httpserver/deps"
)

// View returns the last window the launcher asked the shell to present.
func View(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.View.Get())
	}
}
