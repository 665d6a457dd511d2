package policy

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Kind names a policy family.
type Kind string

const (
	KindRandom        Kind = "random"
	KindEpsilonGreedy Kind = "epsilon-greedy"
	KindThompson      Kind = "thompson"
)

// #region spec
// Spec declares a policy and its parameters, as read from fixtures and flags.
type Spec struct {
	Kind    Kind    `json:"kind" yaml:"kind"`
	Epsilon float64 `json:"epsilon,omitempty" yaml:"epsilon,omitempty"`
	Alpha   float64 `json:"alpha,omitempty" yaml:"alpha,omitempty"`
	Beta    float64 `json:"beta,omitempty" yaml:"beta,omitempty"`
	Seed    uint64  `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// New builds the policy described by spec over arms. Seed 0 is used as is,
// so runs are reproducible unless the caller picks a seed.
func New(spec Spec, arms int) (Policy, error) {
	rng := rand.New(rand.NewPCG(spec.Seed, spec.Seed^0xda3e39cb94b95bdb))
	switch Kind(strings.ToLower(string(spec.Kind))) {
	case KindRandom:
		return NewRandom(arms, rng)
	case KindEpsilonGreedy, "epsilon", "egreedy":
		return NewEpsilonGreedy(arms, spec.Epsilon, rng)
	case KindThompson, "thompson-sampling", "ts":
		return NewThompsonSampling(arms, spec.Alpha, spec.Beta, rng)
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrConfiguration, spec.Kind)
	}
}
// #endregion spec

func (s Spec) String() string {
	switch s.Kind {
	case KindEpsilonGreedy:
		return fmt.Sprintf("%s(epsilon=%g)", s.Kind, s.Epsilon)
	case KindThompson:
		return fmt.Sprintf("%s(alpha=%g, beta=%g)", s.Kind, s.Alpha, s.Beta)
	default:
		return string(s.Kind)
	}
}
