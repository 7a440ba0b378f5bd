package policy

import (
	"time"

	"github.com/me/taskplan/pkg/model"
)

// PriorityPolicy runs the highest-priority eligible task first.
type PriorityPolicy struct{}

// Name implements Policy.
func (PriorityPolicy) Name() string {
	return model.AlgorithmPriority.String()
}

// Select implements Policy.
func (PriorityPolicy) Select(eligible []Candidate, now time.Duration) (Candidate, error) {
	return pick(eligible, func(a, b Candidate) int {
		return b.Task.Priority - a.Task.Priority
	}), nil
}
