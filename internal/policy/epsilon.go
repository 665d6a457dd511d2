package policy

import (
	"fmt"
	"math/rand/v2"
)

// unseenMean is the optimistic estimate for an arm with no rewards yet, so
// every arm is tried before exploitation narrows.
const unseenMean = 1.0

// #region epsilon-greedy
// EpsilonGreedy explores uniformly with probability epsilon and otherwise
// exploits the arm with the highest observed mean.
type EpsilonGreedy struct {
	epsilon float64
	rng     *rand.Rand
	history history
}

// NewEpsilonGreedy fails with ErrConfiguration unless 0 <= epsilon <= 1.
func NewEpsilonGreedy(arms int, epsilon float64, rng *rand.Rand) (*EpsilonGreedy, error) {
	if err := checkArms(arms); err != nil {
		return nil, err
	}
	if !(epsilon >= 0 && epsilon <= 1) {
		return nil, fmt.Errorf("%w: epsilon %v outside [0,1]", ErrConfiguration, epsilon)
	}
	return &EpsilonGreedy{epsilon: epsilon, rng: rng, history: newHistory(arms)}, nil
}

// Select explores or exploits.
func (p *EpsilonGreedy) Select() int {
	if p.rng.Float64() < p.epsilon {
		return p.rng.IntN(len(p.history))
	}
	return argmax(p.Means())
}

// Obtain appends reward to arm idx's history.
func (p *EpsilonGreedy) Obtain(reward float64, idx int) {
	p.history.obtain(reward, idx)
}
// #endregion epsilon-greedy

// Means is the current estimate per arm.
func (p *EpsilonGreedy) Means() []float64 {
	means := make([]float64, len(p.history))
	for i := range means {
		means[i] = p.history.mean(i, unseenMean)
	}
	return means
}

// History returns the rewards observed for arm idx.
func (p *EpsilonGreedy) History(idx int) []float64 {
	return p.history.arm(idx)
}
