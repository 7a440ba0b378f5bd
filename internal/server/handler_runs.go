package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/me/taskplan/internal/engine"
	"github.com/me/taskplan/internal/metrics"
	"github.com/me/taskplan/internal/parser"
	"github.com/me/taskplan/internal/policy"
	"github.com/me/taskplan/pkg/model"
)

// runRequest is the payload for POST /runs. Tasks use the same shape as
// task-set files (durations as Go duration strings).
type runRequest struct {
	Name      string            `json:"name,omitempty"`
	Algorithm string            `json:"algorithm"`
	Tasks     []parser.TaskSpec `json:"tasks"`
}

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("invalid JSON body: %v", err))
		return
	}
	if req.Algorithm == "" {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("algorithm is required"))
		return
	}

	pol, err := s.registry.Get(req.Algorithm)
	if err != nil {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("%v", err))
		return
	}

	run, apiErr := s.scheduleRun(req.Name, req.Tasks, pol)
	if apiErr != nil {
		status := http.StatusBadRequest
		if apiErr.Code == model.ErrInternal {
			status = http.StatusInternalServerError
		}
		respondError(w, reqID, status, apiErr)
		return
	}

	if err := s.store.CreateRun(r.Context(), run); err != nil {
		s.logger.Error("persist run", "run_id", run.ID, "error", err)
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError("persist run: %v", err))
		return
	}

	respondCreated(w, reqID, run)
}

// scheduleRun converts the specs, runs the engine, and computes metrics.
// Construction-time failures come back as validation errors; a deadlock is
// an engine bug and maps to an internal error.
func (s *Server) scheduleRun(name string, specs []parser.TaskSpec, pol policy.Policy) (*model.Run, *model.APIError) {
	if len(specs) == 0 {
		return nil, model.NewValidationError("tasks must not be empty")
	}

	ts := parser.TaskSet{Tasks: specs}
	tasks, err := ts.Model()
	if err != nil {
		return nil, model.NewValidationError("%v", err)
	}

	sched, err := engine.Run(tasks, pol, s.logger)
	if err != nil {
		var deadlock *model.DeadlockError
		if errors.As(err, &deadlock) {
			return nil, model.NewInternalError("%v", err)
		}
		return nil, model.NewValidationError("%v", err)
	}

	report, err := metrics.Compute(tasks, sched)
	if err != nil {
		return nil, model.NewInternalError("compute metrics: %v", err)
	}

	return &model.Run{
		ID:        "run_" + uuid.New().String()[:8],
		Name:      name,
		Algorithm: pol.Name(),
		Tasks:     tasks,
		Entries:   sched.Entries,
		Report:    report,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	run, err := s.store.GetRun(r.Context(), id)
	if err != nil {
		s.logger.Error("get run", "run_id", id, "error", err)
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError("get run: %v", err))
		return
	}
	if run == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("run %s not found", id))
		return
	}
	respondOK(w, reqID, run)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	opts := model.DefaultListOptions()
	if v := r.URL.Query().Get("limit"); v != "" {
		opts.Limit, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		opts.Offset, _ = strconv.Atoi(v)
	}
	opts.Algorithm = r.URL.Query().Get("algorithm")
	opts.Clamp()

	runs, total, err := s.store.ListRuns(r.Context(), opts)
	if err != nil {
		s.logger.Error("list runs", "error", err)
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError("list runs: %v", err))
		return
	}

	if runs == nil {
		runs = []*model.Run{}
	}
	respondList(w, reqID, runs, &model.Pagination{
		Total:   total,
		Limit:   opts.Limit,
		Offset:  opts.Offset,
		HasMore: opts.Offset+len(runs) < total,
	})
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	err := s.store.DeleteRun(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("run %s not found", id))
		return
	}
	if err != nil {
		s.logger.Error("delete run", "run_id", id, "error", err)
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError("delete run: %v", err))
		return
	}
	respondOK(w, reqID, map[string]string{"deleted": id})
}
