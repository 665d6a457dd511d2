// Package server binds one casino to the network. A Session serialises
// every call into the casino; the gin router and the gRPC service in
// internal/rpc share the same Session.
package server

import (
	"sync"

	"github.com/danielpatrickdp/slot-bandit/internal/casino"
	"github.com/danielpatrickdp/slot-bandit/internal/trial"
)

// Summary is the score report for the current casino.
type Summary struct {
	Score     float64  `json:"score"`
	PlayCount int      `json:"play_count"`
	Mean      *float64 `json:"mean,omitempty"`
}

// Session owns one casino behind a mutex.
type Session struct {
	mu     sync.Mutex
	casino *casino.Casino
}

// NewSession wraps c. The caller must not touch c afterwards.
func NewSession(c *casino.Casino) *Session {
	return &Session{casino: c}
}

// Start begins a new game under b.
func (s *Session) Start(b trial.Budget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.casino.Start(b)
}

// Play pulls arm idx.
func (s *Session) Play(idx int) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.casino.Play(idx)
}

// Score reports the running total, the play count and, once anything has
// been played, the mean reward.
func (s *Session) Score() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := Summary{Score: s.casino.Score(), PlayCount: s.casino.PlayCount()}
	if mean, err := s.casino.MeanScore(); err == nil {
		sum.Mean = &mean
	}
	return sum
}

// MeanScore is the mean reward per play.
func (s *Session) MeanScore() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.casino.MeanScore()
}

// Profiles returns every machine's hidden probability.
func (s *Session) Profiles() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.casino.Profiles()
}

// Reset rewinds every machine to its seeded reward stream.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.casino.ResetSources()
}

// Describe reports the static shape of the casino.
func (s *Session) Describe() Description {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Description{
		ID:       s.casino.ID().String(),
		Arms:     s.casino.Arms(),
		TrialCap: s.casino.TrialCap(),
		State:    s.casino.State().String(),
	}
}

// Description is the GET /game body.
type Description struct {
	ID       string `json:"id"`
	Arms     int    `json:"arms"`
	TrialCap int    `json:"trial_cap"`
	State    string `json:"state"`
}
