package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleYAML = `
name: release pipeline
tasks:
  - id: vendor
    duration: 10m
    priority: 3
  - id: build
    duration: 30m
    priority: 8
    deadline: 2h
    depends_on: [vendor]
  - id: docs
    duration: 5m
`

func TestParse(t *testing.T) {
	ts, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if ts.Name != "release pipeline" {
		t.Errorf("Name = %q", ts.Name)
	}
	if len(ts.Tasks) != 3 {
		t.Fatalf("len(Tasks) = %d, want 3", len(ts.Tasks))
	}

	tasks, err := ts.Model()
	if err != nil {
		t.Fatalf("Model: %v", err)
	}
	build := tasks[1]
	if build.ID != "build" || build.Duration != 30*time.Minute || build.Priority != 8 {
		t.Errorf("build = %+v", build)
	}
	if build.Deadline == nil || *build.Deadline != 2*time.Hour {
		t.Errorf("build.Deadline = %v, want 2h", build.Deadline)
	}
	if len(build.DependsOn) != 1 || build.DependsOn[0] != "vendor" {
		t.Errorf("build.DependsOn = %v", build.DependsOn)
	}

	docs := tasks[2]
	if docs.Priority != 1 {
		t.Errorf("omitted priority = %d, want default 1", docs.Priority)
	}
	if docs.Deadline != nil {
		t.Errorf("omitted deadline should stay nil, got %v", docs.Deadline)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"not yaml", "{{nope", "parse task set"},
		{"no tasks", "name: empty\n", "no tasks defined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestModel_BadDurations(t *testing.T) {
	tests := []struct {
		name string
		spec TaskSpec
		want string
	}{
		{"bad duration", TaskSpec{ID: "a", Duration: "soon"}, `duration "soon"`},
		{"bad deadline", TaskSpec{ID: "a", Duration: "5m", Deadline: "tuesday"}, `deadline "tuesday"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := &TaskSet{Tasks: []TaskSpec{tt.spec}}
			_, err := ts.Model()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Model = %v, want %q", err, tt.want)
			}
			if err != nil && !strings.Contains(err.Error(), "task 0 (a)") {
				t.Errorf("Model = %v, want task position in message", err)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	ts, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(ts.Tasks) != 3 {
		t.Errorf("len(Tasks) = %d, want 3", len(ts.Tasks))
	}

	if _, err := ParseFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("ParseFile on missing file should fail")
	}
}

func TestSpec_RoundTrip(t *testing.T) {
	ts, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tasks, err := ts.Model()
	if err != nil {
		t.Fatalf("Model: %v", err)
	}
	spec := Spec(tasks[1])
	if spec.Duration != "30m0s" || spec.Deadline != "2h0m0s" {
		t.Errorf("Spec = %+v", spec)
	}
	back, err := spec.Model()
	if err != nil {
		t.Fatalf("Model(Spec): %v", err)
	}
	if back.Duration != tasks[1].Duration || *back.Deadline != *tasks[1].Deadline {
		t.Errorf("round trip changed values: %+v", back)
	}
}
