package model

import (
	"strings"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"invalid task", &InvalidTaskError{TaskID: "a", Reason: "duration must be positive"}, `invalid task "a": duration must be positive`},
		{"cycle", &CyclicDependencyError{Path: []string{"a", "b", "a"}}, "dependency cycle: a -> b -> a"},
		{"unknown dep", &UnknownDependencyError{TaskID: "a", DependencyID: "ghost"}, `task "a" depends on unknown task "ghost"`},
		{"deadlock", &DeadlockError{Remaining: []string{"a", "b"}}, "scheduling deadlock: no eligible task among 2 remaining (a, b)"},
		{"incomplete missing", &IncompleteScheduleError{Missing: []string{"a"}}, "incomplete schedule: missing entries for a"},
		{"incomplete extra", &IncompleteScheduleError{Extra: []string{"x"}}, "incomplete schedule: unexpected entries for x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIncompleteScheduleError_Both(t *testing.T) {
	err := &IncompleteScheduleError{Missing: []string{"a"}, Extra: []string{"x"}}
	msg := err.Error()
	if !strings.Contains(msg, "missing entries for a") || !strings.Contains(msg, "unexpected entries for x") {
		t.Errorf("Error() = %q, want both clauses", msg)
	}
}
