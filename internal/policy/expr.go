package policy

import (
	"fmt"
	"time"

	"github.com/dop251/goja"
)

// ExprPolicy scores candidates with a user-supplied JavaScript expression
// and runs the highest-scoring one. It lets callers plug a custom selection
// rule into the engine without touching any other component.
//
// The expression sees two bindings:
//
//	task    {id, priority, duration_min, deadline_min (or null), ready_at_min}
//	now_min current virtual time in minutes
//
// and must evaluate to a number. Example: "task.priority * 10 - task.duration_min".
// A fresh VM is built per evaluation so Select stays a pure function of its
// arguments.
type ExprPolicy struct {
	name string
	src  string
	prog *goja.Program
}

// NewExprPolicy compiles source into a scoring policy registered under name.
func NewExprPolicy(name, source string) (*ExprPolicy, error) {
	prog, err := goja.Compile(name, source, true)
	if err != nil {
		return nil, fmt.Errorf("compile score expression: %w", err)
	}
	return &ExprPolicy{name: name, src: source, prog: prog}, nil
}

// Name implements Policy.
func (p *ExprPolicy) Name() string {
	return p.name
}

// Source returns the original expression text.
func (p *ExprPolicy) Source() string {
	return p.src
}

// Select implements Policy. The highest score wins; ties break to the
// lowest task ID.
func (p *ExprPolicy) Select(eligible []Candidate, now time.Duration) (Candidate, error) {
	best := eligible[0]
	bestScore, err := p.score(best, now)
	if err != nil {
		return Candidate{}, err
	}
	for _, c := range eligible[1:] {
		score, err := p.score(c, now)
		if err != nil {
			return Candidate{}, err
		}
		if score > bestScore || (score == bestScore && c.Task.ID < best.Task.ID) {
			best, bestScore = c, score
		}
	}
	return best, nil
}

func (p *ExprPolicy) score(c Candidate, now time.Duration) (float64, error) {
	vm := goja.New()

	var deadline any
	if c.Task.Deadline != nil {
		deadline = c.Task.Deadline.Minutes()
	}
	taskObj := map[string]any{
		"id":           c.Task.ID,
		"priority":     c.Task.Priority,
		"duration_min": c.Task.Duration.Minutes(),
		"deadline_min": deadline,
		"ready_at_min": c.ReadyAt.Minutes(),
	}
	if err := vm.Set("task", taskObj); err != nil {
		return 0, fmt.Errorf("set task: %w", err)
	}
	if err := vm.Set("now_min", now.Minutes()); err != nil {
		return 0, fmt.Errorf("set now_min: %w", err)
	}

	v, err := vm.RunProgram(p.prog)
	if err != nil {
		return 0, fmt.Errorf("score task %s: %w", c.Task.ID, err)
	}
	return v.ToFloat(), nil
}
