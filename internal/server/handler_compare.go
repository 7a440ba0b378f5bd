package server

import (
	"encoding/json"
	"net/http"

	"github.com/me/taskplan/internal/parser"
	"github.com/me/taskplan/internal/policy"
	"github.com/me/taskplan/pkg/model"
)

// compareRequest is the payload for POST /compare. When Algorithms is empty
// every registered policy is compared.
type compareRequest struct {
	Name       string            `json:"name,omitempty"`
	Algorithms []string          `json:"algorithms,omitempty"`
	Tasks      []parser.TaskSpec `json:"tasks"`
}

// compareResult pairs one algorithm with its persisted run.
type compareResult struct {
	Algorithm string     `json:"algorithm"`
	Run       *model.Run `json:"run"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("invalid JSON body: %v", err))
		return
	}

	names := req.Algorithms
	if len(names) == 0 {
		names = s.registry.Names()
	}

	// Resolve all policies up front so one bad name fails the whole request
	// before anything is persisted.
	policies := make([]policy.Policy, 0, len(names))
	for _, name := range names {
		pol, err := s.registry.Get(name)
		if err != nil {
			respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("%v", err))
			return
		}
		policies = append(policies, pol)
	}

	results := make([]compareResult, 0, len(names))
	for i, name := range names {
		run, apiErr := s.scheduleRun(req.Name, req.Tasks, policies[i])
		if apiErr != nil {
			status := http.StatusBadRequest
			if apiErr.Code == model.ErrInternal {
				status = http.StatusInternalServerError
			}
			respondError(w, reqID, status, apiErr)
			return
		}

		if err := s.store.CreateRun(r.Context(), run); err != nil {
			s.logger.Error("persist compare run", "run_id", run.ID, "algorithm", name, "error", err)
			respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError("persist run: %v", err))
			return
		}
		results = append(results, compareResult{Algorithm: name, Run: run})
	}

	respondOK(w, reqID, results)
}
