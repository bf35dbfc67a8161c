package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/tacto/internal/httpserver/deps"
	"github.com/MrSnakeDoc/tacto/internal/pomodoro"
)

type summaryResponse struct {
	TotalSeconds float64 `json:"totalSeconds"`
	Count        int     `json:"count"`
	Completed    int     `json:"completed"`
	StoppedEarly int     `json:"stoppedEarly"`
}

type pomodoroResponse struct {
	Timer    pomodoro.State  `json:"timer"`
	Last24h  summaryResponse `json:"last24h"`
	LastWeek summaryResponse `json:"lastWeek"`
}

type startRequest struct {
	Minutes int `json:"minutes"`
}

type stopResponse struct {
	Stopped bool `json:"stopped"`
}

func toSummary(s pomodoro.Summary) summaryResponse {
	return summaryResponse{
		TotalSeconds: s.Total.Seconds(),
		Count:        s.Count,
		Completed:    s.Completed,
		StoppedEarly: s.StoppedEarly,
	}
}

func PomodoroState(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, pomodoroResponse{
			Timer:    d.Pomodoro.State(),
			Last24h:  toSummary(d.Sessions.Last24Hours()),
			LastWeek: toSummary(d.Sessions.LastWeek()),
		})
	}
}

// PomodoroStart begins a run. Zero or missing minutes use the configured default.
func PomodoroStart(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req startRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := d.Pomodoro.Start(req.Minutes); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, d.Pomodoro.State())
	}
}

func PomodoroStop(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, stopResponse{Stopped: d.Pomodoro.Stop()})
	}
}

func PomodoroClearStats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Sessions.Clear(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}
}
