// Package engine drives the scheduling simulation: it polls the resolver for
// eligible tasks, lets the active policy pick one, advances the virtual clock
// by the task's duration, and commits schedule entries until every task has
// run. The model is single-resource: exactly one task executes at a time.
package engine

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/me/taskplan/internal/policy"
	"github.com/me/taskplan/internal/resolver"
	"github.com/me/taskplan/pkg/model"
)

// Run schedules tasks under pol and returns the completed schedule.
//
// Validation failures (*model.InvalidTaskError, *model.UnknownDependencyError,
// *model.CyclicDependencyError) surface before the run starts. A run either
// completes fully or returns an error; no partial schedule is ever returned.
func Run(tasks []*model.Task, pol policy.Policy, logger *slog.Logger) (*model.Schedule, error) {
	res, err := resolver.New(tasks)
	if err != nil {
		return nil, err
	}
	return RunResolved(res, pol, logger)
}

// RunAlgorithm is a convenience wrapper running one of the built-in
// algorithms.
func RunAlgorithm(tasks []*model.Task, alg model.Algorithm, logger *slog.Logger) (*model.Schedule, error) {
	pol, err := policy.ForAlgorithm(alg)
	if err != nil {
		return nil, err
	}
	return Run(tasks, pol, logger)
}

// RunResolved schedules the tasks of an already-validated resolver. Callers
// comparing algorithms over one task collection build the resolver once and
// call this per policy; the resolver is read-only, so concurrent calls over
// the same resolver are safe.
func RunResolved(res *resolver.Resolver, pol policy.Policy, logger *slog.Logger) (*model.Schedule, error) {
	log := logger.With("component", "engine", "policy", pol.Name())

	state := model.RunStateIdle
	if !state.CanTransitionTo(model.RunStateRunning) {
		return nil, fmt.Errorf("run cannot start from state %s", state)
	}
	state = model.RunStateRunning

	var (
		now       time.Duration
		completed = make(map[string]bool, res.Len())
		readyAt   = make(map[string]time.Duration, res.Len())
		entries   = make([]model.Entry, 0, res.Len())
	)

	for len(completed) < res.Len() {
		eligible := res.Eligible(completed)
		if len(eligible) == 0 {
			// Unreachable on a validated acyclic graph; a bug, not user error.
			var remaining []string
			for _, t := range res.Tasks() {
				if !completed[t.ID] {
					remaining = append(remaining, t.ID)
				}
			}
			sort.Strings(remaining)
			return nil, &model.DeadlockError{Remaining: remaining}
		}

		cands := make([]policy.Candidate, len(eligible))
		for i, t := range eligible {
			if _, seen := readyAt[t.ID]; !seen {
				readyAt[t.ID] = now
			}
			cands[i] = policy.Candidate{Task: t, ReadyAt: readyAt[t.ID]}
		}

		picked, err := pol.Select(cands, now)
		if err != nil {
			return nil, fmt.Errorf("policy %s: %w", pol.Name(), err)
		}

		entry := model.Entry{
			TaskID: picked.Task.ID,
			Start:  now,
			Finish: now + picked.Task.Duration,
		}
		entries = append(entries, entry)
		completed[picked.Task.ID] = true
		now = entry.Finish

		log.Debug("task committed",
			"task_id", entry.TaskID,
			"start", entry.Start,
			"finish", entry.Finish,
			"remaining", res.Len()-len(completed),
		)
	}

	if !state.CanTransitionTo(model.RunStateCompleted) {
		return nil, fmt.Errorf("run cannot complete from state %s", state)
	}

	sched := &model.Schedule{
		ID:        "sch_" + uuid.New().String()[:8],
		Algorithm: pol.Name(),
		Entries:   entries,
		CreatedAt: time.Now().UTC(),
	}
	log.Info("run completed", "schedule_id", sched.ID, "tasks", len(entries), "span", now)
	return sched, nil
}
