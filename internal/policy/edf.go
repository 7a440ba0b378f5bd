package policy

import (
	"time"

	"github.com/me/taskplan/pkg/model"
)

// EDFPolicy (earliest deadline first) runs the eligible task with the
// smallest deadline. Tasks without a deadline sort as +infinity, so they run
// only when no deadline-bearing task is eligible.
type EDFPolicy struct{}

// Name implements Policy.
func (EDFPolicy) Name() string {
	return model.AlgorithmEDF.String()
}

// Select implements Policy.
func (EDFPolicy) Select(eligible []Candidate, now time.Duration) (Candidate, error) {
	return pick(eligible, func(a, b Candidate) int {
		da, db := a.Task.EffectiveDeadline(), b.Task.EffectiveDeadline()
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	}), nil
}
