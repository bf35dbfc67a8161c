package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/tacto/internal/httpserver/deps"
	"github.com/MrSnakeDoc/tacto/internal/httpserver/handlers"
)

func init() { Register(registerClipboard) }

func registerClipboard(r chi.Router, d deps.Deps) {
	r.With(guard(d)...).Route("/api/clipboard", func(r chi.Router) {
		r.Get("/", handlers.ClipboardList(d))
		r.Delete("/", handlers.ClipboardClear(d))
		r.Post("/{id}/copy", handlers.ClipboardCopy(d))
		r.With(throttle(d)).Post("/{id}/paste", handlers.ClipboardPaste(d))
		r.Delete("/{id}", handlers.ClipboardDelete(d))
	})
}
