package slot

import (
	"testing"

	"github.com/danielpatrickdp/slot-bandit/internal/reward"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_LookupReturnsGenerated(t *testing.T) {
	for _, n := range []int{0, 1, 5, 64} {
		repo := NewMemoryRepository(uint64(n) + 1)
		generated := make([]reward.Config, n)
		for i := range generated {
			cfg, err := repo.Generate()
			require.NoError(t, err)
			generated[i] = cfg
		}

		require.Equal(t, n, repo.Len())
		for i, want := range generated {
			got, err := repo.Lookup(i)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}

		_, err := repo.Lookup(n)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	}
}

func TestMemoryRepository_NegativeIndex(t *testing.T) {
	repo := NewMemoryRepository(1)
	repo.Generate()
	_, err := repo.Lookup(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestMemoryRepository_GenerateReturnsCopy(t *testing.T) {
	repo := NewMemoryRepository(9)
	cfg, _ := repo.Generate()
	cfg.Probability = 2
	cfg.Seed++

	stored, err := repo.Lookup(0)
	require.NoError(t, err)
	assert.NotEqual(t, cfg, stored)
}

func TestMemoryRepository_DeterministicForSeed(t *testing.T) {
	a, b := NewMemoryRepository(77), NewMemoryRepository(77)
	for i := 0; i < 10; i++ {
		ca, _ := a.Generate()
		cb, _ := b.Generate()
		assert.Equal(t, ca, cb)
	}
}

func TestMemoryRepository_Insert(t *testing.T) {
	repo := NewMemoryRepository(1)
	repo.Generate()
	idx := repo.Insert(reward.Config{Probability: 0.25, Seed: 3})
	assert.Equal(t, 1, idx)

	got, err := repo.Lookup(idx)
	require.NoError(t, err)
	assert.Equal(t, reward.Config{Probability: 0.25, Seed: 3}, got)
}
