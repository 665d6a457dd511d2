package slot

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/danielpatrickdp/slot-bandit/internal/reward"
)

// ErrIndexOutOfRange reports a catalogue or arm index past the end.
var ErrIndexOutOfRange = errors.New("index out of range")

// #region repository
// Repository is an append-only catalogue of reward configurations. Index i
// resolves to the same configuration for the repository's lifetime.
type Repository interface {
	// Generate appends a freshly drawn configuration and returns a copy of it.
	Generate() (reward.Config, error)
	// Lookup returns the configuration stored at index.
	Lookup(index int) (reward.Config, error)
	// Len is the number of catalogued configurations.
	Len() int
}
// #endregion repository

// #region memory-repository
// MemoryRepository keeps the catalogue in a slice. It is not safe for
// concurrent use.
type MemoryRepository struct {
	rng     *rand.Rand
	entries []reward.Config
}

// NewMemoryRepository creates an empty catalogue whose draws are determined by seed.
func NewMemoryRepository(seed uint64) *MemoryRepository {
	return &MemoryRepository{rng: rand.New(rand.NewPCG(seed, seed>>1))}
}

// Generate draws, stores and returns a new configuration. It never fails.
func (r *MemoryRepository) Generate() (reward.Config, error) {
	cfg := reward.Draw(r.rng)
	r.entries = append(r.entries, cfg)
	return cfg, nil
}

// Insert appends an explicit configuration and returns its index.
func (r *MemoryRepository) Insert(cfg reward.Config) int {
	r.entries = append(r.entries, cfg)
	return len(r.entries) - 1
}

// Lookup returns the configuration at index.
func (r *MemoryRepository) Lookup(index int) (reward.Config, error) {
	if index < 0 || index >= len(r.entries) {
		return reward.Config{}, fmt.Errorf("lookup %d of %d: %w", index, len(r.entries), ErrIndexOutOfRange)
	}
	return r.entries[index], nil
}

// Len returns the catalogue size.
func (r *MemoryRepository) Len() int {
	return len(r.entries)
}
// #endregion memory-repository
