// Package parser reads task-set documents. Parsing is a collaborator layer
// around the engine: it converts the external YAML/JSON representation into
// model tasks and leaves semantic validation (cycles, unknown dependencies)
// to the resolver.
package parser

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/me/taskplan/pkg/model"
)

// TaskSet is a named collection of task specs as found in a task-set file.
type TaskSet struct {
	Name  string     `yaml:"name,omitempty" json:"name,omitempty"`
	Tasks []TaskSpec `yaml:"tasks" json:"tasks"`
}

// TaskSpec is the external form of one task. Durations and deadlines are
// Go duration strings ("30m", "1h30m"); the deadline is an offset on the
// virtual timeline and may be omitted. Priority defaults to 1.
type TaskSpec struct {
	ID        string   `yaml:"id" json:"id"`
	Duration  string   `yaml:"duration" json:"duration"`
	Priority  int      `yaml:"priority,omitempty" json:"priority,omitempty"`
	Deadline  string   `yaml:"deadline,omitempty" json:"deadline,omitempty"`
	DependsOn []string `yaml:"depends_on,omitempty" json:"depends_on,omitempty"`
}

// Parse decodes a YAML task-set document.
func Parse(data []byte) (*TaskSet, error) {
	var ts TaskSet
	if err := yaml.Unmarshal(data, &ts); err != nil {
		return nil, fmt.Errorf("parse task set: %w", err)
	}
	if len(ts.Tasks) == 0 {
		return nil, fmt.Errorf("parse task set: no tasks defined")
	}
	return &ts, nil
}

// ParseFile reads and decodes a task-set file.
func ParseFile(path string) (*TaskSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read task set: %w", err)
	}
	return Parse(data)
}

// Model converts the specs to model tasks. Malformed durations are reported
// with the task's position and ID; invariant checks beyond shape are the
// resolver's job.
func (ts *TaskSet) Model() ([]*model.Task, error) {
	tasks := make([]*model.Task, 0, len(ts.Tasks))
	for i, spec := range ts.Tasks {
		task, err := spec.Model()
		if err != nil {
			return nil, fmt.Errorf("task %d (%s): %w", i, spec.ID, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// Model converts one spec to a model task.
func (s *TaskSpec) Model() (*model.Task, error) {
	duration, err := time.ParseDuration(s.Duration)
	if err != nil {
		return nil, fmt.Errorf("duration %q: %w", s.Duration, err)
	}

	task := &model.Task{
		ID:        s.ID,
		Duration:  duration,
		Priority:  s.Priority,
		DependsOn: s.DependsOn,
	}
	if task.Priority == 0 {
		task.Priority = model.MinPriority
	}

	if s.Deadline != "" {
		deadline, err := time.ParseDuration(s.Deadline)
		if err != nil {
			return nil, fmt.Errorf("deadline %q: %w", s.Deadline, err)
		}
		task.Deadline = &deadline
	}
	return task, nil
}

// Spec converts a model task back to its external file form.
func Spec(t *model.Task) TaskSpec {
	s := TaskSpec{
		ID:        t.ID,
		Duration:  t.Duration.String(),
		Priority:  t.Priority,
		DependsOn: t.DependsOn,
	}
	if t.Deadline != nil {
		s.Deadline = t.Deadline.String()
	}
	return s
}
