package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/tacto/internal/httpserver/deps"
	"github.com/MrSnakeDoc/tacto/internal/httpserver/handlers"
)

func init() { Register(registerPomodoro) }

func registerPomodoro(r chi.Router, d deps.Deps) {
	r.With(guard(d)...).Route("/api/pomodoro", func(r chi.Router) {
		r.Get("/", handlers.PomodoroState(d))
		r.Post("/start", handlers.PomodoroStart(d))
		r.Post("/stop", handlers.PomodoroStop(d))
		r.Delete("/stats", handlers.PomodoroClearStats(d))
	})
}
