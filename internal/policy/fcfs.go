package policy

import (
	"time"

	"github.com/me/taskplan/pkg/model"
)

// FCFSPolicy (first come, first served) runs the task that became eligible
// at the earliest virtual time. Tasks unlocked at the same instant break the
// tie by ID like every other policy.
type FCFSPolicy struct{}

// Name implements Policy.
func (FCFSPolicy) Name() string {
	return model.AlgorithmFCFS.String()
}

// Select implements Policy.
func (FCFSPolicy) Select(eligible []Candidate, now time.Duration) (Candidate, error) {
	return pick(eligible, func(a, b Candidate) int {
		switch {
		case a.ReadyAt < b.ReadyAt:
			return -1
		case a.ReadyAt > b.ReadyAt:
			return 1
		}
		return 0
	}), nil
}
