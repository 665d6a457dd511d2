package trial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroValueIsEnded(t *testing.T) {
	var s State
	assert.False(t, s.Playing())
	assert.Equal(t, Ended(), s)
	assert.Equal(t, "Ended", s.String())
}

func TestStart_ZeroBudgetEnds(t *testing.T) {
	assert.False(t, Start(Bounded(0)).Playing())
	assert.False(t, Start(Bounded(-3)).Playing())
}

func TestStart_Playing(t *testing.T) {
	s := Start(Bounded(3))
	require.True(t, s.Playing())
	assert.Equal(t, 0, s.Count())
	m, ok := s.Max()
	assert.True(t, ok)
	assert.Equal(t, 3, m)

	_, ok = Start(Unbounded()).Max()
	assert.False(t, ok)
}

func TestAdvance_EndsOnMthCall(t *testing.T) {
	for _, m := range []int{1, 2, 5, 40} {
		s := Start(Bounded(m))
		for i := 1; i < m; i++ {
			s = s.Advance()
			require.True(t, s.Playing(), "m=%d ended early at call %d", m, i)
			require.Equal(t, i, s.Count())
			max, _ := s.Max()
			require.LessOrEqual(t, s.Count(), max)
		}
		s = s.Advance()
		assert.False(t, s.Playing(), "m=%d should end on call %d", m, m)
	}
}

func TestAdvance_Unbounded(t *testing.T) {
	s := Start(Unbounded())
	for i := 1; i <= 1000; i++ {
		s = s.Advance()
	}
	assert.True(t, s.Playing())
	assert.Equal(t, 1000, s.Count())
}

func TestAdvance_EndedPanics(t *testing.T) {
	assert.Panics(t, func() { Ended().Advance() })
	assert.Panics(t, func() { Start(Bounded(1)).Advance().Advance() })
}

func TestRestartLeavesEnded(t *testing.T) {
	s := Start(Bounded(1)).Advance()
	require.False(t, s.Playing())
	s = Start(Unbounded())
	assert.True(t, s.Playing())
	assert.Equal(t, 0, s.Count())
}

func TestString(t *testing.T) {
	assert.Equal(t, "Playing{count=0, max=2}", Start(Bounded(2)).String())
	assert.Equal(t, "Playing{count=1, unbounded}", Start(Unbounded()).Advance().String())
}
