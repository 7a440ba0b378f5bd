package model

// RunState represents the lifecycle state of a scheduling run.
type RunState string

const (
	RunStateIdle      RunState = "IDLE"
	RunStateRunning   RunState = "RUNNING"
	RunStateCompleted RunState = "COMPLETED"
)

// String returns the string representation of the run state.
func (s RunState) String() string {
	return string(s)
}

// IsTerminal returns true if the run is in a final state.
func (s RunState) IsTerminal() bool {
	return s == RunStateCompleted
}

// ValidRunTransitions defines the allowed state transitions for runs.
// A run either completes or fails with an error before leaving RUNNING;
// there is no failed state because no partial schedule is ever produced.
var ValidRunTransitions = map[RunState][]RunState{
	RunStateIdle:    {RunStateRunning},
	RunStateRunning: {RunStateCompleted},
}

// CanTransitionTo returns true if moving from the current state to next is valid.
func (s RunState) CanTransitionTo(next RunState) bool {
	for _, allowed := range ValidRunTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
