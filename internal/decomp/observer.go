package decomp

import "time"

// Branch names the two kinds of child search an iteration can spawn.
type Branch int

const (
	// BranchUndecided searches inside the forward set, among states not yet
	// proven to cycle back to the pivot.
	BranchUndecided Branch = iota
	// BranchUnrelated searches among states that cannot reach the forward set.
	BranchUnrelated
)

func (b Branch) String() string {
	switch b {
	case BranchUndecided:
		return "undecided"
	case BranchUnrelated:
		return "unrelated"
	default:
		return "unknown"
	}
}

// IterationStats describes one processed frame.
type IterationStats struct {
	Depth    int
	Universe int
	Pivot    int
	Forward  int
	Backward int
	Elapsed  time.Duration
}

// Observer receives progress events from a run.
type Observer interface {
	OnIteration(stats IterationStats)
	OnComponent(states int, volume float64)
	OnBranch(b Branch)
}

type nopObserver struct{}

func (nopObserver) OnIteration(IterationStats) {}
func (nopObserver) OnComponent(int, float64)   {}
func (nopObserver) OnBranch(Branch)            {}
