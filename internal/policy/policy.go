// Package policy defines the scheduling algorithm contract and its built-in
// implementations. A policy picks exactly one task from a non-empty eligible
// set at a given virtual time; it keeps no per-call state, so policies can be
// swapped between runs over the same task collection.
package policy

import (
	"time"

	"github.com/me/taskplan/pkg/model"
)

// Candidate is one eligible task together with the virtual time at which it
// first became eligible. ReadyAt is what FCFS orders by; the other policies
// ignore it.
type Candidate struct {
	Task    *model.Task
	ReadyAt time.Duration
}

// Policy decides which eligible task runs next.
type Policy interface {
	// Name returns the policy name used in schedules, the registry, and the API.
	Name() string

	// Select picks one candidate from a non-empty eligible set at virtual
	// time now. The engine guarantees eligible is never empty. The built-in
	// policies never return an error; only expression-backed policies can.
	Select(eligible []Candidate, now time.Duration) (Candidate, error)
}

// ForAlgorithm returns the built-in policy for a core algorithm.
func ForAlgorithm(a model.Algorithm) (Policy, error) {
	switch a {
	case model.AlgorithmPriority:
		return PriorityPolicy{}, nil
	case model.AlgorithmEDF:
		return EDFPolicy{}, nil
	case model.AlgorithmFCFS:
		return FCFSPolicy{}, nil
	}
	_, err := model.ParseAlgorithm(string(a))
	return nil, err
}

// pick scans the eligible set and returns the best candidate under cmp.
// cmp returns a negative value when a is strictly preferred over b, positive
// when b is preferred, and 0 on a tie. Ties always break to the lowest task
// ID so the result does not depend on iteration order.
func pick(eligible []Candidate, cmp func(a, b Candidate) int) Candidate {
	best := eligible[0]
	for _, c := range eligible[1:] {
		switch d := cmp(c, best); {
		case d < 0:
			best = c
		case d == 0 && c.Task.ID < best.Task.ID:
			best = c
		}
	}
	return best
}
