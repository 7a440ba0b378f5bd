package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/me/taskplan/pkg/model"
)

// Sprint color functions for building styled strings.
var (
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

// fmtOffset renders a virtual-time offset compactly: "0s", "30m", "2h30m".
func fmtOffset(d time.Duration) string {
	s := d.String()
	if strings.HasSuffix(s, "m0s") {
		s = strings.TrimSuffix(s, "0s")
	}
	if strings.HasSuffix(s, "h0m") {
		s = strings.TrimSuffix(s, "0m")
	}
	return s
}

// printSchedule renders the committed schedule as a table. Offsets are
// virtual time from schedule start at 0.
func printSchedule(tasks []*model.Task, sched *model.Schedule) {
	byID := make(map[string]*model.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	fmt.Printf("\n%s  %s\n", bold("SCHEDULE"), dim("algorithm="+sched.Algorithm))
	fmt.Printf("%-12s  %10s  %10s  %10s  %s\n", "TASK", "START", "FINISH", "DURATION", "DEADLINE")
	fmt.Printf("%-12s  %10s  %10s  %10s  %s\n", "----", "-----", "------", "--------", "--------")

	for _, e := range sched.Entries {
		deadline := dim("-")
		if t := byID[e.TaskID]; t != nil && t.HasDeadline() {
			d := fmtOffset(*t.Deadline)
			if e.Finish > *t.Deadline {
				deadline = red(d + " (missed)")
			} else {
				deadline = green(d)
			}
		}
		fmt.Printf("%-12s  %10s  %10s  %10s  %s\n",
			cyan(e.TaskID), fmtOffset(e.Start), fmtOffset(e.Finish), fmtOffset(e.Finish-e.Start), deadline)
	}
}

// printReport renders the metrics block under a schedule.
func printReport(rep *model.Report) {
	fmt.Printf("\n%s\n", bold("METRICS"))
	fmt.Printf("  Makespan:         %s\n", fmtOffset(rep.Makespan))
	fmt.Printf("  Total completion: %s\n", fmtOffset(rep.TotalCompletion))
	fmt.Printf("  Avg tardiness:    %s\n", tardinessString(rep.AvgTardiness))
	fmt.Printf("  On time:          %s\n", onTimeString(rep))
}

func tardinessString(d time.Duration) string {
	if d == 0 {
		return green("0s")
	}
	return yellow(fmtOffset(d))
}

func onTimeString(rep *model.Report) string {
	if rep.DeadlineCount == 0 {
		return dim("no deadlines")
	}
	s := fmt.Sprintf("%.1f%% (%d/%d)", rep.OnTimePct, rep.OnTimeCount, rep.DeadlineCount)
	if rep.OnTimeCount == rep.DeadlineCount {
		return green(s)
	}
	return yellow(s)
}
