package policy

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// #region thompson
// ThompsonSampling keeps a Beta-Bernoulli posterior per arm and plays the arm
// whose posterior draw is largest.
type ThompsonSampling struct {
	alpha, beta float64
	rng         *rand.Rand
	history     history
}

// NewThompsonSampling fails with ErrConfiguration unless alpha and beta are
// strictly positive and finite.
func NewThompsonSampling(arms int, alpha, beta float64, rng *rand.Rand) (*ThompsonSampling, error) {
	if err := checkArms(arms); err != nil {
		return nil, err
	}
	if !(alpha > 0) || !(beta > 0) || math.IsInf(alpha, 0) || math.IsInf(beta, 0) {
		return nil, fmt.Errorf("%w: alpha %v and beta %v must be positive and finite", ErrConfiguration, alpha, beta)
	}
	return &ThompsonSampling{alpha: alpha, beta: beta, rng: rng, history: newHistory(arms)}, nil
}

// Select draws once from every arm's posterior and returns the leftmost max.
func (p *ThompsonSampling) Select() int {
	draws := make([]float64, len(p.history))
	for i := range draws {
		draws[i] = p.Posterior(i).Rand()
	}
	return argmax(draws)
}

// Obtain appends reward to arm idx's history.
func (p *ThompsonSampling) Obtain(reward float64, idx int) {
	p.history.obtain(reward, idx)
}
// #endregion thompson

// Posterior is arm idx's current Beta(alpha+successes, beta+failures).
func (p *ThompsonSampling) Posterior(idx int) distuv.Beta {
	s, f := p.history.counts(idx)
	return distuv.Beta{Alpha: p.alpha + s, Beta: p.beta + f, Src: p.rng}
}

// History returns the rewards observed for arm idx.
func (p *ThompsonSampling) History(idx int) []float64 {
	return p.history.arm(idx)
}
