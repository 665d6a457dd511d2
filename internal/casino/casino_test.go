package casino

import (
	"testing"

	"github.com/danielpatrickdp/slot-bandit/internal/reward"
	"github.com/danielpatrickdp/slot-bandit/internal/slot"
	"github.com/danielpatrickdp/slot-bandit/internal/trial"
	"github.com/stretchr/testify/assert"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

// fixedRepo returns a repository pre-loaded with probs; machines take the
// entries in order because Generate is only called by New.
type fixedRepo struct {
	*slot.MemoryRepository
	next  int
	probs []float64
}

func (r *fixedRepo) Generate() (reward.Config, error) {
	cfg := reward.Config{Probability: r.probs[r.next], Seed: uint64(r.next + 1)}
	r.next++
	r.Insert(cfg)
	return cfg, nil
}

func newFixed(t *testing.T, probs []float64, opts ...Option) *Casino {
	t.Helper()
	repo := &fixedRepo{MemoryRepository: slot.NewMemoryRepository(1), probs: probs}
	c, err := New(len(probs), append([]Option{WithRepository(repo)}, opts...)...)
	require.NoError(t, err)
	return c
}

func TestNew_Validation(t *testing.T) {
	_, err := New(0)
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = New(3, WithTrialCap(-1))
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = New(3, WithRepository(nil))
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestNew_DefaultRepository(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Arms())
	assert.Equal(t, 4, c.Repository().Len())
	assert.Len(t, c.Profiles(), 4)
	assert.False(t, c.State().Playing())
}

func TestPlay_BeforeStart(t *testing.T) {
	c, err := New(3)
	require.NoError(t, err)

	_, err = c.Play(0)
	assert.ErrorIs(t, err, ErrNotStarted)
	assert.Equal(t, 0, c.PlayCount())
}

func TestPlay_IndexOutOfRangeDoesNotMutate(t *testing.T) {
	c, err := New(3)
	require.NoError(t, err)
	c.Start(trial.Unbounded())
	_, err = c.Play(1)
	require.NoError(t, err)
	score := c.Score()

	for _, idx := range []int{3, 4, 100, -1} {
		_, err := c.Play(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	}
	assert.Equal(t, 1, c.PlayCount())
	assert.Equal(t, score, c.Score())
	assert.Equal(t, 1, c.State().Count())
}

func TestPlay_NotStartedCheckedBeforeIndex(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)
	_, err = c.Play(99)
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestPlay_TrialCapEndToEnd(t *testing.T) {
	c, err := New(3, WithTrialCap(5))
	require.NoError(t, err)
	c.Start(trial.Unbounded())

	sum := 0.0
	for i := 0; i < 5; i++ {
		r, err := c.Play(0)
		require.NoError(t, err, "play %d", i)
		sum += r
	}

	_, err = c.Play(0)
	assert.ErrorIs(t, err, ErrTrialLimit)
	assert.Equal(t, sum, c.Score())
	assert.Equal(t, 5, c.PlayCount())
}

func TestPlay_IndexCheckedBeforeTrialLimit(t *testing.T) {
	c, err := New(2, WithTrialCap(1))
	require.NoError(t, err)
	c.Start(trial.Unbounded())
	_, err = c.Play(0)
	require.NoError(t, err)

	_, err = c.Play(7)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = c.Play(1)
	assert.ErrorIs(t, err, ErrTrialLimit)
}

func TestPlay_CapSurvivesRestart(t *testing.T) {
	c, err := New(2, WithTrialCap(3))
	require.NoError(t, err)
	c.Start(trial.Unbounded())
	for i := 0; i < 3; i++ {
		_, err := c.Play(1)
		require.NoError(t, err)
	}

	c.Start(trial.Unbounded())
	_, err = c.Play(1)
	assert.ErrorIs(t, err, ErrTrialLimit)
}

func TestPlay_GameBudgetEndsGame(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)
	c.Start(trial.Bounded(3))

	for i := 0; i < 3; i++ {
		_, err := c.Play(0)
		require.NoError(t, err, "play %d", i)
	}
	assert.False(t, c.State().Playing())

	_, err = c.Play(0)
	assert.ErrorIs(t, err, ErrNotStarted)
	assert.Equal(t, 3, c.PlayCount())
}

func TestStart_ZeroBudget(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)
	c.Start(trial.Bounded(0))
	_, err = c.Play(0)
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestStart_KeepsHistory(t *testing.T) {
	c := newFixed(t, []float64{1, 0})
	c.Start(trial.Unbounded())
	for i := 0; i < 4; i++ {
		_, err := c.Play(0)
		require.NoError(t, err)
	}

	c.Start(trial.Bounded(2))
	_, err := c.Play(0)
	require.NoError(t, err)

	assert.Equal(t, 5, c.PlayCount())
	assert.Equal(t, 5.0, c.Score())
	h, err := c.History(0)
	require.NoError(t, err)
	assert.Len(t, h, 5)
}

func TestScoreAndLog(t *testing.T) {
	c := newFixed(t, []float64{1, 0, 1})
	c.Start(trial.Unbounded())
	for _, arm := range []int{0, 1, 2, 1} {
		_, err := c.Play(arm)
		require.NoError(t, err)
	}

	assert.Equal(t, 2.0, c.Score())
	assert.Equal(t, []Play{{0, 1}, {1, 0}, {2, 1}, {1, 0}}, c.Log())
	mean, err := c.MeanScore()
	require.NoError(t, err)
	assert.Equal(t, 0.5, mean)
	assert.Equal(t, []float64{1, 0, 1}, c.Profiles())
}

func TestMeanScore_NoPlays(t *testing.T) {
	c, err := New(1)
	require.NoError(t, err)
	_, err = c.MeanScore()
	assert.ErrorIs(t, err, ErrNoPlays)
}

func TestResetSources_ReplaysSequence(t *testing.T) {
	c := newFixed(t, []float64{0.5, 0.5})
	c.Start(trial.Unbounded())

	var first, second []float64
	for i := 0; i < 30; i++ {
		r, err := c.Play(1)
		require.NoError(t, err)
		first = append(first, r)
	}
	c.ResetSources()
	for i := 0; i < 30; i++ {
		r, err := c.Play(1)
		require.NoError(t, err)
		second = append(second, r)
	}
	assert.Equal(t, first, second)
	assert.Equal(t, 60, c.PlayCount())
}

func TestSwapArm(t *testing.T) {
	c := newFixed(t, []float64{0, 1})
	require.NoError(t, c.SwapArm(0, 1))
	assert.Equal(t, []float64{1, 1}, c.Profiles())

	assert.ErrorIs(t, c.SwapArm(0, 9), ErrIndexOutOfRange)
	assert.ErrorIs(t, c.SwapArm(5, 0), ErrIndexOutOfRange)
	assert.Equal(t, []float64{1, 1}, c.Profiles())
}

func TestOutcome(t *testing.T) {
	c, err := New(1, WithTrialCap(1))
	require.NoError(t, err)
	_, err = c.Play(0)
	assert.Equal(t, "not_started", Outcome(err))
	c.Start(trial.Unbounded())
	_, err = c.Play(2)
	assert.Equal(t, "index_out_of_range", Outcome(err))
	_, err = c.Play(0)
	assert.Equal(t, "ok", Outcome(err))
	_, err = c.Play(0)
	assert.Equal(t, "trial_limit", Outcome(err))
	assert.Equal(t, "error", Outcome(assert.AnError))
}

func TestPlay_LogSequence(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	c := newFixed(t, []float64{1, 1}, WithTrialCap(2), WithLogger(log))
	c.Start(trial.Unbounded())

	_, err := c.Play(0)
	require.NoError(t, err)
	_, err = c.Play(1)
	require.NoError(t, err)
	_, err = c.Play(0)
	require.ErrorIs(t, err, ErrTrialLimit)

	var seqs []int
	for _, e := range hook.AllEntries() {
		if seq, ok := e.Data["seq"].(int); ok {
			seqs = append(seqs, seq)
		}
	}
	assert.Equal(t, []int{0, 1, 2}, seqs)
	assert.Equal(t, "play rejected", hook.LastEntry().Message)
}
