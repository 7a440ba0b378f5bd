// Package metrics computes aggregate performance figures over a completed
// schedule. Compute is a pure function: same inputs, same report, every time.
package metrics

import (
	"sort"
	"time"

	"github.com/me/taskplan/pkg/model"
)

// Compute derives the metrics report for a schedule of the given tasks.
//
// The schedule must cover the task collection exactly: one entry per task,
// no duplicates, no entries for unknown tasks. Anything else returns
// *model.IncompleteScheduleError.
func Compute(tasks []*model.Task, schedule *model.Schedule) (*model.Report, error) {
	byID := make(map[string]*model.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	entries := make(map[string]model.Entry, len(schedule.Entries))
	var extra []string
	for _, e := range schedule.Entries {
		if _, dup := entries[e.TaskID]; dup {
			extra = append(extra, e.TaskID)
			continue
		}
		if _, known := byID[e.TaskID]; !known {
			extra = append(extra, e.TaskID)
			continue
		}
		entries[e.TaskID] = e
	}

	var missing []string
	for id := range byID {
		if _, ok := entries[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		sort.Strings(missing)
		sort.Strings(extra)
		return nil, &model.IncompleteScheduleError{Missing: missing, Extra: extra}
	}

	report := &model.Report{
		TaskCount: len(tasks),
		OnTimePct: 100, // vacuously on time when no task has a deadline
	}
	if len(tasks) == 0 {
		return report, nil
	}

	var (
		minStart       = schedule.Entries[0].Start
		maxFinish      = schedule.Entries[0].Finish
		totalTardiness int64
	)
	for _, e := range schedule.Entries {
		if e.Start < minStart {
			minStart = e.Start
		}
		if e.Finish > maxFinish {
			maxFinish = e.Finish
		}
		report.TotalCompletion += e.Finish

		task := byID[e.TaskID]
		if !task.HasDeadline() {
			continue
		}
		report.DeadlineCount++
		if e.Finish <= *task.Deadline {
			report.OnTimeCount++
		} else {
			totalTardiness += int64(e.Finish - *task.Deadline)
		}
	}
	report.Makespan = maxFinish - minStart

	if report.DeadlineCount > 0 {
		report.AvgTardiness = time.Duration(totalTardiness / int64(report.DeadlineCount))
		report.OnTimePct = 100 * float64(report.OnTimeCount) / float64(report.DeadlineCount)
	}
	return report, nil
}
