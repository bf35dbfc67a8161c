package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/tacto/internal/httpserver/deps"
	"github.com/MrSnakeDoc/tacto/internal/httpserver/handlers"
)

func init() { Register(registerHealth) }

func registerHealth(r chi.Router, d deps.Deps) {
	g := r.With(guard(d)...)
	g.Get("/healthz", handlers.Healthz(d))
	g.Get("/readyz", handlers.Readyz(d))
	g.Get("/infra", handlers.Infra(d))
}
