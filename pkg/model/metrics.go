package model

import "time"

// Report is the read-only metrics snapshot computed over a completed
// schedule. It is never mutated after creation.
//
// Makespan is max finish minus min start. TotalCompletion is the sum of
// finish offsets across all entries, the standard scheduling-theory "sum of
// completion times". AvgTardiness averages max(0, finish-deadline) over
// deadline-bearing tasks only and is 0 when no task has a deadline.
// OnTimePct is 100 when no task has a deadline (vacuously on time).
type Report struct {
	TaskCount       int           `json:"task_count"`
	DeadlineCount   int           `json:"deadline_count"`
	OnTimeCount     int           `json:"on_time_count"`
	Makespan        time.Duration `json:"makespan"`
	TotalCompletion time.Duration `json:"total_completion"`
	AvgTardiness    time.Duration `json:"avg_tardiness"`
	OnTimePct       float64       `json:"on_time_pct"`
}
