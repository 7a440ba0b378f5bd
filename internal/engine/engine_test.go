package engine

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/me/taskplan/internal/policy"
	"github.com/me/taskplan/internal/resolver"
	"github.com/me/taskplan/pkg/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

func dur(d time.Duration) *time.Duration { return &d }

func mustRun(t *testing.T, tasks []*model.Task, alg model.Algorithm) *model.Schedule {
	t.Helper()
	sched, err := RunAlgorithm(tasks, alg, testLogger())
	if err != nil {
		t.Fatalf("RunAlgorithm(%s): %v", alg, err)
	}
	return sched
}

func TestRun_PriorityOrdering(t *testing.T) {
	// Spec example: B (priority 5) runs before A (priority 1).
	tasks := []*model.Task{
		{ID: "A", Duration: 5 * time.Minute, Priority: 1, Deadline: dur(10 * time.Minute)},
		{ID: "B", Duration: 3 * time.Minute, Priority: 5, Deadline: dur(4 * time.Minute)},
	}
	sched := mustRun(t, tasks, model.AlgorithmPriority)
	if got := strings.Join(sched.Order(), ","); got != "B,A" {
		t.Fatalf("order = %s, want B,A", got)
	}
	byTask := sched.ByTask()
	if b := byTask["B"]; b.Start != 0 || b.Finish != 3*time.Minute {
		t.Errorf("B = (%v,%v), want (0,3m)", b.Start, b.Finish)
	}
	if a := byTask["A"]; a.Start != 3*time.Minute || a.Finish != 8*time.Minute {
		t.Errorf("A = (%v,%v), want (3m,8m)", a.Start, a.Finish)
	}
}

func TestRun_EDFOrdering(t *testing.T) {
	tasks := []*model.Task{
		{ID: "A", Duration: 5 * time.Minute, Priority: 1, Deadline: dur(10 * time.Minute)},
		{ID: "B", Duration: 3 * time.Minute, Priority: 5, Deadline: dur(4 * time.Minute)},
	}
	sched := mustRun(t, tasks, model.AlgorithmEDF)
	if got := strings.Join(sched.Order(), ","); got != "B,A" {
		t.Fatalf("order = %s, want B,A", got)
	}
}

func TestRun_EDFNeverSchedulesLaterDeadlineFirst(t *testing.T) {
	tasks := []*model.Task{
		{ID: "a", Duration: time.Minute, Priority: 5, Deadline: dur(30 * time.Minute)},
		{ID: "b", Duration: time.Minute, Priority: 5, Deadline: dur(10 * time.Minute)},
		{ID: "c", Duration: time.Minute, Priority: 5, Deadline: dur(20 * time.Minute)},
		{ID: "d", Duration: time.Minute, Priority: 5},
	}
	sched := mustRun(t, tasks, model.AlgorithmEDF)
	if got := strings.Join(sched.Order(), ","); got != "b,c,a,d" {
		t.Errorf("order = %s, want b,c,a,d", got)
	}
}

func TestRun_FCFSOrdersByUnlockTime(t *testing.T) {
	// z and a are eligible at 0; c unlocks when z finishes. With FCFS the
	// longer-waiting root tasks run before later-unlocked dependents, with
	// the 0-tie between z and a broken by ID.
	tasks := []*model.Task{
		{ID: "z", Duration: 2 * time.Minute, Priority: 5},
		{ID: "a", Duration: 4 * time.Minute, Priority: 5},
		{ID: "c", Duration: time.Minute, Priority: 9, DependsOn: []string{"z"}},
	}
	sched := mustRun(t, tasks, model.AlgorithmFCFS)
	if got := strings.Join(sched.Order(), ","); got != "a,z,c" {
		t.Errorf("order = %s, want a,z,c", got)
	}
}

func TestRun_DependencyOrderingHolds(t *testing.T) {
	tasks := []*model.Task{
		{ID: "fetch", Duration: 10 * time.Minute, Priority: 2},
		{ID: "build", Duration: 30 * time.Minute, Priority: 9, DependsOn: []string{"fetch"}},
		{ID: "test", Duration: 20 * time.Minute, Priority: 10, DependsOn: []string{"build"}},
		{ID: "docs", Duration: 5 * time.Minute, Priority: 1},
		{ID: "ship", Duration: 2 * time.Minute, Priority: 10, DependsOn: []string{"test", "docs"}},
	}
	for _, alg := range model.Algorithms() {
		t.Run(alg.String(), func(t *testing.T) {
			sched := mustRun(t, tasks, alg)
			if len(sched.Entries) != len(tasks) {
				t.Fatalf("got %d entries, want %d", len(sched.Entries), len(tasks))
			}
			byTask := sched.ByTask()
			seen := make(map[string]bool)
			for _, e := range sched.Entries {
				if seen[e.TaskID] {
					t.Fatalf("duplicate entry for %s", e.TaskID)
				}
				seen[e.TaskID] = true
				if e.Finish != e.Start+byTaskDuration(tasks, e.TaskID) {
					t.Errorf("%s: finish != start + duration", e.TaskID)
				}
			}
			for _, task := range tasks {
				for _, dep := range task.DependsOn {
					if byTask[task.ID].Start < byTask[dep].Finish {
						t.Errorf("%s starts at %v before dependency %s finishes at %v",
							task.ID, byTask[task.ID].Start, dep, byTask[dep].Finish)
					}
				}
			}
		})
	}
}

func byTaskDuration(tasks []*model.Task, id string) time.Duration {
	for _, t := range tasks {
		if t.ID == id {
			return t.Duration
		}
	}
	return 0
}

func TestRun_CycleFailsForEveryAlgorithm(t *testing.T) {
	tasks := []*model.Task{
		{ID: "a", Duration: time.Minute, Priority: 5, DependsOn: []string{"b"}},
		{ID: "b", Duration: time.Minute, Priority: 5, DependsOn: []string{"a"}},
	}
	for _, alg := range model.Algorithms() {
		t.Run(alg.String(), func(t *testing.T) {
			_, err := RunAlgorithm(tasks, alg, testLogger())
			var cde *model.CyclicDependencyError
			if !errors.As(err, &cde) {
				t.Errorf("RunAlgorithm = %v, want *CyclicDependencyError", err)
			}
		})
	}
}

func TestRun_UnknownDependencyFailsBeforeScheduling(t *testing.T) {
	tasks := []*model.Task{
		{ID: "a", Duration: time.Minute, Priority: 5, DependsOn: []string{"ghost"}},
	}
	_, err := RunAlgorithm(tasks, model.AlgorithmPriority, testLogger())
	var ude *model.UnknownDependencyError
	if !errors.As(err, &ude) {
		t.Fatalf("RunAlgorithm = %v, want *UnknownDependencyError", err)
	}
}

func TestRun_EmptyTaskSet(t *testing.T) {
	sched := mustRun(t, nil, model.AlgorithmPriority)
	if len(sched.Entries) != 0 {
		t.Errorf("entries = %d, want 0", len(sched.Entries))
	}
}

func TestRun_Deterministic(t *testing.T) {
	tasks := []*model.Task{
		{ID: "a", Duration: 3 * time.Minute, Priority: 5},
		{ID: "b", Duration: 3 * time.Minute, Priority: 5},
		{ID: "c", Duration: 3 * time.Minute, Priority: 5},
	}
	first := mustRun(t, tasks, model.AlgorithmPriority)
	for i := 0; i < 10; i++ {
		again := mustRun(t, tasks, model.AlgorithmPriority)
		if strings.Join(again.Order(), ",") != strings.Join(first.Order(), ",") {
			t.Fatalf("run %d produced different order %v", i, again.Order())
		}
	}
}

// failingPolicy returns an error on Select, like an expression policy with a
// broken score expression.
type failingPolicy struct{}

func (failingPolicy) Name() string { return "failing" }
func (failingPolicy) Select(eligible []policy.Candidate, now time.Duration) (policy.Candidate, error) {
	return policy.Candidate{}, fmt.Errorf("boom")
}

func TestRun_PolicyErrorPropagates(t *testing.T) {
	tasks := []*model.Task{{ID: "a", Duration: time.Minute, Priority: 5}}
	_, err := Run(tasks, failingPolicy{}, testLogger())
	if err == nil || !strings.Contains(err.Error(), "policy failing") {
		t.Errorf("Run = %v, want wrapped policy error", err)
	}
}

func TestRunResolved_SharedResolverAcrossPolicies(t *testing.T) {
	tasks := []*model.Task{
		{ID: "a", Duration: 2 * time.Minute, Priority: 1, Deadline: dur(3 * time.Minute)},
		{ID: "b", Duration: 2 * time.Minute, Priority: 9},
	}
	res, err := resolver.New(tasks)
	if err != nil {
		t.Fatalf("resolver.New: %v", err)
	}

	prio, err := RunResolved(res, policy.PriorityPolicy{}, testLogger())
	if err != nil {
		t.Fatalf("RunResolved(priority): %v", err)
	}
	edf, err := RunResolved(res, policy.EDFPolicy{}, testLogger())
	if err != nil {
		t.Fatalf("RunResolved(edf): %v", err)
	}

	if got := strings.Join(prio.Order(), ","); got != "b,a" {
		t.Errorf("priority order = %s, want b,a", got)
	}
	if got := strings.Join(edf.Order(), ","); got != "a,b" {
		t.Errorf("edf order = %s, want a,b", got)
	}
}
