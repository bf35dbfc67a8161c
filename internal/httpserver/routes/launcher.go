package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/tacto/internal/httpserver/deps"
	"github.com/MrSnakeDoc/tacto/internal/httpserver/handlers"
)

func init() { Register(registerLauncher) }

func registerLauncher(r chi.Router, d deps.Deps) {
	r.With(guard(d)...).Route("/api/launcher", func(r chi.Router) {
		r.Get("/", handlers.LauncherState(d))
		r.Post("/query", handlers.LauncherQuery(d))
		r.Post("/move", handlers.LauncherMove(d))
		r.Post("/submit", handlers.LauncherSubmit(d))
		r.Post("/show", handlers.LauncherShow(d))
		r.Post("/hide", handlers.LauncherHide(d))
	})
	r.With(guard(d)...).Get("/api/view", handlers.View(d))
}
