package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/pingmigrate/internal/core"
)

// statusResponse is the JSON shape of /status.
type statusResponse struct {
	RunID    string           `json:"run_id"`
	Running  bool             `json:"running"`
	Started  *time.Time       `json:"started,omitempty"`
	Finished *time.Time       `json:"finished,omitempty"`
	Inserted int              `json:"inserted"`
	Failed   int              `json:"failed_entities"`
	Entities []entityResponse `json:"entities"`
}

type entityResponse struct {
	Entity     string `json:"entity"`
	Label      string `json:"label"`
	Table      string `json:"table"`
	File       string `json:"file"`
	Phase      string `json:"phase"`
	Rows       int    `json:"rows"`
	Inserted   int    `json:"inserted"`
	Batches    int    `json:"batches"`
	DurationMs int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
	Code       string `json:"code,omitempty"`
	Action     string `json:"action,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, newStatusResponse(s.status.Status()))
}

func (s *Server) handleEntityStatus(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "entity")
	for _, res := range s.status.Status().Results {
		if res.Entity == key {
			writeJSON(w, r, http.StatusOK, newEntityResponse(res))
			return
		}
	}
	writeError(w, r, http.StatusNotFound, "unknown entity: "+key)
}

func newStatusResponse(rep core.Report) statusResponse {
	resp := statusResponse{
		RunID:    rep.RunID,
		Running:  !rep.Started.IsZero() && rep.Finished.IsZero(),
		Inserted: rep.Inserted(),
		Failed:   len(rep.Failed()),
		Entities: make([]entityResponse, 0, len(rep.Results)),
	}
	if !rep.Started.IsZero() {
		started := rep.Started
		resp.Started = &started
	}
	if !rep.Finished.IsZero() {
		finished := rep.Finished
		resp.Finished = &finished
	}
	for _, res := range rep.Results {
		resp.Entities = append(resp.Entities, newEntityResponse(res))
	}
	return resp
}

func newEntityResponse(res core.EntityResult) entityResponse {
	out := entityResponse{
		Entity:     res.Entity,
		Label:      res.Label,
		Table:      res.Table,
		File:       res.File,
		Phase:      string(res.Phase),
		Rows:       res.Rows,
		Inserted:   res.Inserted,
		Batches:    res.Batches,
		DurationMs: res.Duration.Milliseconds(),
		Error:      res.Error,
	}
	if res.Err != nil {
		msg := core.MapError(res.Err)
		out.Code = msg.Code
		out.Action = msg.Action
	}
	return out
}
