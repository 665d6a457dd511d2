// Package trial tracks a game's trial budget as a two-state machine:
// Ended, or Playing with a count and an optional maximum.
package trial

import "fmt"

// #region budget
// Budget is an optional maximum number of trials.
type Budget struct {
	max     int
	bounded bool
}

// Unbounded allows any number of trials.
func Unbounded() Budget {
	return Budget{}
}

// Bounded allows at most n trials. Negative n is treated as zero.
func Bounded(n int) Budget {
	if n < 0 {
		n = 0
	}
	return Budget{max: n, bounded: true}
}

// Max returns the limit and whether one is set.
func (b Budget) Max() (int, bool) {
	return b.max, b.bounded
}

func (b Budget) String() string {
	if !b.bounded {
		return "unbounded"
	}
	return fmt.Sprintf("max=%d", b.max)
}
// #endregion budget

// #region state
// State is Ended (the zero value) or Playing. States are values; transitions
// return a new State.
type State struct {
	playing bool
	count   int
	budget  Budget
}

// Ended returns the terminal state.
func Ended() State {
	return State{}
}

// Start begins a game under b. A zero budget is over before it starts.
func Start(b Budget) State {
	if b.bounded && b.max == 0 {
		return Ended()
	}
	return State{playing: true, budget: b}
}
// #endregion state

// #region advance
// Advance records one trial. Under a budget of m the m-th call returns Ended.
// Advancing an Ended state is a caller bug and panics.
func (s State) Advance() State {
	if !s.playing {
		panic("trial: Advance called on Ended state")
	}
	next := s.count + 1
	if s.budget.bounded && next >= s.budget.max {
		return Ended()
	}
	return State{playing: true, count: next, budget: s.budget}
}
// #endregion advance

// Playing reports whether trials may still be made.
func (s State) Playing() bool {
	return s.playing
}

// Count is the number of trials made in the current game. Zero when Ended.
func (s State) Count() int {
	return s.count
}

// Max returns the game's limit, if any. Ended states carry no limit.
func (s State) Max() (int, bool) {
	return s.budget.Max()
}

func (s State) String() string {
	if !s.playing {
		return "Ended"
	}
	return fmt.Sprintf("Playing{count=%d, %s}", s.count, s.budget)
}
