package model

import "time"

// Entry records the placement of one task on the virtual timeline.
// Finish is always Start + the task's duration.
type Entry struct {
	TaskID string        `json:"task_id"`
	Start  time.Duration `json:"start"`
	Finish time.Duration `json:"finish"`
}

// Schedule is the completed output of one scheduling run. Entries appear in
// commit order, i.e. the order in which the orchestration loop ran the tasks.
type Schedule struct {
	ID        string    `json:"id"`
	Algorithm string    `json:"algorithm"`
	Entries   []Entry   `json:"entries"`
	CreatedAt time.Time `json:"created_at"`
}

// ByTask indexes the entries by task ID.
func (s *Schedule) ByTask() map[string]Entry {
	m := make(map[string]Entry, len(s.Entries))
	for _, e := range s.Entries {
		m[e.TaskID] = e
	}
	return m
}

// Order returns the task IDs in commit order.
func (s *Schedule) Order() []string {
	ids := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		ids[i] = e.TaskID
	}
	return ids
}
