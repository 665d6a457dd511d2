package slot

import (
	"fmt"

	"github.com/danielpatrickdp/slot-bandit/internal/reward"
)

// #region machine
// Machine binds one reward source and records every reward played through it.
// Swapping or resetting the source never touches the history.
type Machine struct {
	source  *reward.Source
	history []float64
	repo    Repository
}

// NewMachine binds a machine to a configuration freshly generated by repo.
func NewMachine(repo Repository) (*Machine, error) {
	cfg, err := repo.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate source: %w", err)
	}
	return &Machine{source: reward.NewSource(cfg), repo: repo}, nil
}
// #endregion machine

// #region play
// Play samples the active source and appends the reward to the history.
func (m *Machine) Play() float64 {
	r := m.source.Sample()
	m.history = append(m.history, r)
	return r
}
// #endregion play

// #region swap
// SwapSource replaces the active source with one built from cfg.
func (m *Machine) SwapSource(cfg reward.Config) {
	m.source = reward.NewSource(cfg)
}

// SwapToRepositoryIndex replays the catalogued configuration at index. On
// failure the active source is left as it was.
func (m *Machine) SwapToRepositoryIndex(index int) error {
	cfg, err := m.repo.Lookup(index)
	if err != nil {
		return fmt.Errorf("swap source: %w", err)
	}
	m.SwapSource(cfg)
	return nil
}
// #endregion swap

// ResetSource rewinds the active source to its seeded state.
func (m *Machine) ResetSource() {
	m.source.Reset()
}

// Profile returns the active source's hidden probability.
func (m *Machine) Profile() float64 {
	return m.source.Profile()
}

// Source returns a copy of the active configuration.
func (m *Machine) Source() reward.Config {
	return m.source.Config()
}

// History returns a copy of every reward played through the machine.
func (m *Machine) History() []float64 {
	out := make([]float64, len(m.history))
	copy(out, m.history)
	return out
}
