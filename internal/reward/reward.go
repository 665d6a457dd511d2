package reward

import "math/rand/v2"

// streamSalt is the second PCG word; the first is the configured seed.
const streamSalt = 0x9e3779b97f4a7c15

// #region source
// Source is a Bernoulli reward generator. Two sources built from the same
// Config produce the same reward sequence.
type Source struct {
	cfg Config
	rng *rand.Rand
}

// NewSource builds a source positioned at the start of its seeded stream.
func NewSource(cfg Config) *Source {
	s := &Source{cfg: cfg}
	s.Reset()
	return s
}
// #endregion source

// #region sample
// Sample consumes one uniform draw and returns 1 if it falls below the
// configured probability, 0 otherwise.
func (s *Source) Sample() float64 {
	if s.rng.Float64() < s.cfg.Probability {
		return 1.0
	}
	return 0.0
}
// #endregion sample

// #region reset
// Reset rewinds the random stream to its seed. The probability is unchanged.
func (s *Source) Reset() {
	s.rng = rand.New(rand.NewPCG(s.cfg.Seed, streamSalt))
}
// #endregion reset

// Profile returns the hidden success probability.
func (s *Source) Profile() float64 {
	return s.cfg.Probability
}

// Config returns a copy of the source configuration.
func (s *Source) Config() Config {
	return s.cfg
}

// #region draw
// Draw samples a fresh configuration: probability uniform on [0,1) and a
// uniform 64-bit seed.
func Draw(rng *rand.Rand) Config {
	return Config{
		Probability: rng.Float64(),
		Seed:        rng.Uint64(),
	}
}
// #endregion draw
