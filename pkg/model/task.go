package model

import (
	"math"
	"time"
)

// Priority bounds for tasks. Higher values run first under the priority policy.
const (
	MinPriority = 1
	MaxPriority = 10
)

// Task is one immutable unit of work to be placed on the timeline.
//
// All times are offsets on the virtual timeline of a scheduling run, which
// starts at 0. Deadline is an offset on that same timeline; nil means the
// task has no deadline. Tasks carry no scheduling state, so the same set can
// be scheduled under several algorithms without copying.
type Task struct {
	ID        string         `json:"id"`
	Duration  time.Duration  `json:"duration"`
	Priority  int            `json:"priority"`
	Deadline  *time.Duration `json:"deadline,omitempty"`
	DependsOn []string       `json:"depends_on,omitempty"`
}

// Validate checks the construction invariants of a single task.
// Cross-task invariants (unknown or cyclic dependencies) are checked by the
// dependency resolver, which sees the whole collection.
func (t *Task) Validate() error {
	if t.ID == "" {
		return &InvalidTaskError{TaskID: t.ID, Reason: "id must not be empty"}
	}
	if t.Duration <= 0 {
		return &InvalidTaskError{TaskID: t.ID, Reason: "duration must be positive"}
	}
	if t.Priority < MinPriority || t.Priority > MaxPriority {
		return &InvalidTaskError{TaskID: t.ID, Reason: "priority must be between 1 and 10"}
	}
	if t.Deadline != nil && *t.Deadline <= 0 {
		return &InvalidTaskError{TaskID: t.ID, Reason: "deadline must be positive"}
	}
	seen := make(map[string]bool, len(t.DependsOn))
	for _, dep := range t.DependsOn {
		if dep == t.ID {
			return &InvalidTaskError{TaskID: t.ID, Reason: "task depends on itself"}
		}
		if seen[dep] {
			return &InvalidTaskError{TaskID: t.ID, Reason: "duplicate dependency " + dep}
		}
		seen[dep] = true
	}
	return nil
}

// HasDeadline reports whether the task carries a deadline.
func (t *Task) HasDeadline() bool {
	return t.Deadline != nil
}

// EffectiveDeadline returns the deadline offset, or the maximum duration when
// the task has none. EDF uses this so deadline-free tasks sort last.
func (t *Task) EffectiveDeadline() time.Duration {
	if t.Deadline == nil {
		return time.Duration(math.MaxInt64)
	}
	return *t.Deadline
}
