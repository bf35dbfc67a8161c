package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/tacto/internal/httpserver/deps"
	"github.com/MrSnakeDoc/tacto/internal/httpserver/handlers"
)

func init() { Register(registerTasks) }

func registerTasks(r chi.Router, d deps.Deps) {
	r.With(guard(d)...).Route("/api/tasks", func(r chi.Router) {
		r.Get("/", handlers.TaskList(d))
		r.Post("/", handlers.TaskCreate(d))
		r.Get("/{id}", handlers.TaskGet(d))
		r.Put("/{id}", handlers.TaskUpdate(d))
		r.Delete("/{id}", handlers.TaskDelete(d))
	})
}
