// Package policy implements arm-selection strategies. A policy sees only the
// indices it chose and the rewards they paid.
package policy

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrConfiguration reports invalid policy parameters.
var ErrConfiguration = errors.New("invalid policy configuration")

// #region policy
// Policy proposes the next arm and learns from the reward it paid.
type Policy interface {
	// Select returns an arm index in [0, arms).
	Select() int
	// Obtain records the reward paid by arm idx. Only successful plays are
	// passed here.
	Obtain(reward float64, idx int)
}
// #endregion policy

// #region history
// history is the per-arm record shared by the learning policies.
type history [][]float64

func newHistory(arms int) history {
	return make(history, arms)
}

func (h history) obtain(reward float64, idx int) {
	if idx < 0 || idx >= len(h) {
		return
	}
	h[idx] = append(h[idx], reward)
}

// successes is the reward sum; failures is the count minus that sum.
func (h history) counts(idx int) (successes, failures float64) {
	for _, r := range h[idx] {
		successes += r
	}
	return successes, float64(len(h[idx])) - successes
}

func (h history) mean(idx int, fallback float64) float64 {
	if len(h[idx]) == 0 {
		return fallback
	}
	s, _ := h.counts(idx)
	return s / float64(len(h[idx]))
}

func (h history) arm(idx int) []float64 {
	out := make([]float64, len(h[idx]))
	copy(out, h[idx])
	return out
}
// #endregion history

// argmax returns the leftmost index of the largest value.
func argmax(values []float64) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}

func checkArms(arms int) error {
	if arms <= 0 {
		return fmt.Errorf("%w: need at least one arm, got %d", ErrConfiguration, arms)
	}
	return nil
}

// #region random
// Random picks uniformly and ignores rewards.
type Random struct {
	arms int
	rng  *rand.Rand
}

// NewRandom builds a uniform policy over arms.
func NewRandom(arms int, rng *rand.Rand) (*Random, error) {
	if err := checkArms(arms); err != nil {
		return nil, err
	}
	return &Random{arms: arms, rng: rng}, nil
}

// Select returns a uniform index.
func (p *Random) Select() int {
	return p.rng.IntN(p.arms)
}

// Obtain does nothing.
func (p *Random) Obtain(float64, int) {}
// #endregion random
