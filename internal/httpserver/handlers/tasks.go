package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrSnakeDoc/tacto/internal/httpserver/deps"
	"github.com/MrSnakeDoc/tacto/internal/logger"
	"github.com/MrSnakeDoc/tacto/internal/tasks"
)

type tasksResponse struct {
	Tasks []tasks.Task `json:"tasks"`
}

// writeTaskError maps store errors onto status codes.
func writeTaskError(d deps.Deps, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tasks.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, tasks.ErrInvalidTask):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		d.Logger.Error("task store failure", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "task store failure")
	}
}

func taskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return uuid.Nil, false
	}
	return id, true
}

// TaskList accepts ?status= and ?tag= filters.
func TaskList(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := tasks.Filter{
			Status: tasks.Status(r.URL.Query().Get("status")),
			Tag:    r.URL.Query().Get("tag"),
		}
		if f.Status != "" && !f.Status.Valid() {
			writeError(w, http.StatusBadRequest, "unknown status")
			return
		}
		list, err := d.Tasks.List(r.Context(), f)
		if err != nil {
			writeTaskError(d, w, err)
			return
		}
		writeJSON(w, http.StatusOK, tasksResponse{Tasks: list})
	}
}

func TaskCreate(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var t tasks.Task
		if err := decodeJSON(r, &t); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		created, err := d.Tasks.Create(r.Context(), t)
		if err != nil {
			writeTaskError(d, w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func TaskGet(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := taskID(w, r)
		if !ok {
			return
		}
		t, err := d.Tasks.Get(r.Context(), id)
		if err != nil {
			writeTaskError(d, w, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

// TaskUpdate replaces the task; the id in the path wins over any id in the body.
func TaskUpdate(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := taskID(w, r)
		if !ok {
			return
		}
		var t tasks.Task
		if err := decodeJSON(r, &t); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		t.ID = id
		updated, err := d.Tasks.Update(r.Context(), t)
		if err != nil {
			writeTaskError(d, w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func TaskDelete(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := taskID(w, r)
		if !ok {
			return
		}
		if err := d.Tasks.Delete(r.Context(), id); err != nil {
			writeTaskError(d, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
