package model

import "time"

// Run is a persisted scheduling run: the input tasks, the schedule the
// engine produced, and the metrics computed over it. The engine itself never
// sees this type; it exists for the store and the API.
type Run struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Algorithm string    `json:"algorithm"`
	Tasks     []*Task   `json:"tasks"`
	Entries   []Entry   `json:"entries"`
	Report    *Report   `json:"report"`
	CreatedAt time.Time `json:"created_at"`
}
