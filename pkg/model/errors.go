package model

import (
	"fmt"
	"strings"
)

// InvalidTaskError reports a task that violates a construction invariant.
type InvalidTaskError struct {
	TaskID string
	Reason string
}

func (e *InvalidTaskError) Error() string {
	return fmt.Sprintf("invalid task %q: %s", e.TaskID, e.Reason)
}

// CyclicDependencyError reports a dependency cycle in a task collection.
// Path holds the task IDs along the cycle in dependency order; the first
// element closes the cycle with the last.
type CyclicDependencyError struct {
	Path []string
}

func (e *CyclicDependencyError) Error() string {
	return "dependency cycle: " + strings.Join(e.Path, " -> ")
}

// UnknownDependencyError reports a dependency on a task ID that is not part
// of the collection.
type UnknownDependencyError struct {
	TaskID       string
	DependencyID string
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("task %q depends on unknown task %q", e.TaskID, e.DependencyID)
}

// DeadlockError reports that no task was eligible while the schedule was
// still incomplete. Unreachable on a validated acyclic graph; always a bug,
// never retried.
type DeadlockError struct {
	Remaining []string
}

func (e *DeadlockError) Error() string {
	return fmt.Sprintf("scheduling deadlock: no eligible task among %d remaining (%s)",
		len(e.Remaining), strings.Join(e.Remaining, ", "))
}

// IncompleteScheduleError reports a schedule that does not cover a task
// collection exactly.
type IncompleteScheduleError struct {
	Missing []string // tasks without a schedule entry
	Extra   []string // entries without a task, including duplicates
}

func (e *IncompleteScheduleError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing entries for "+strings.Join(e.Missing, ", "))
	}
	if len(e.Extra) > 0 {
		parts = append(parts, "unexpected entries for "+strings.Join(e.Extra, ", "))
	}
	if len(parts) == 0 {
		return "incomplete schedule"
	}
	return "incomplete schedule: " + strings.Join(parts, "; ")
}
