package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/tacto/internal/httpserver/deps"
	"github.com/MrSnakeDoc/tacto/internal/launcher"
)

type launcherResponse struct {
	Visible bool           `json:"visible"`
	State   launcher.State `json:"state"`
}

type queryRequest struct {
	Text string `json:"text"`
}

// moveRequest either shifts the cursor by Delta or, when Index is set, puts it
// on that row.
type moveRequest struct {
	Delta int  `json:"delta"`
	Index *int `json:"index,omitempty"`
}

type submitResponse struct {
	Submitted launcher.Suggestion `json:"submitted"`
}

func LauncherState(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, launcherResponse{
			Visible: d.Panel.Visible(),
			State:   d.Pipeline.State(),
		})
	}
}

// LauncherQuery feeds the query text. Results arrive asynchronously; clients
// poll LauncherState and compare generations.
func LauncherQuery(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req queryRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		d.Pipeline.SetQuery(req.Text)
		w.WriteHeader(http.StatusAccepted)
	}
}

func LauncherMove(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req moveRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Index != nil {
			if !d.Pipeline.Select(*req.Index) {
				writeError(w, http.StatusBadRequest, "no such row")
				return
			}
		} else {
			d.Pipeline.MoveSelection(req.Delta)
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

func LauncherSubmit(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := d.Panel.Submit()
		if !ok {
			writeError(w, http.StatusConflict, "nothing selected")
			return
		}
		writeJSON(w, http.StatusOK, submitResponse{Submitted: s})
	}
}

func LauncherShow(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Panel.Show()
		w.WriteHeader(http.StatusNoContent)
	}
}

func LauncherHide(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Panel.Cancel()
		w.WriteHeader(http.StatusNoContent)
	}
}
