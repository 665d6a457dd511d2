package policy

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 1))
}

func TestConstructors_RejectBadArms(t *testing.T) {
	_, err := NewRandom(0, testRNG(1))
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = NewEpsilonGreedy(-1, 0.1, testRNG(1))
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = NewThompsonSampling(0, 1, 1, testRNG(1))
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestEpsilonGreedy_Validation(t *testing.T) {
	for _, eps := range []float64{-0.01, 1.01, math.NaN(), math.Inf(1)} {
		_, err := NewEpsilonGreedy(3, eps, testRNG(1))
		assert.ErrorIs(t, err, ErrConfiguration, "epsilon %v", eps)
	}
	for _, eps := range []float64{0, 0.5, 1} {
		_, err := NewEpsilonGreedy(3, eps, testRNG(1))
		assert.NoError(t, err, "epsilon %v", eps)
	}
}

func TestThompson_Validation(t *testing.T) {
	cases := []struct{ alpha, beta float64 }{
		{0, 1}, {1, 0}, {-1, 1}, {1, -2}, {math.NaN(), 1},
		{math.Inf(1), 1}, {1, math.Inf(1)},
	}
	for _, tc := range cases {
		_, err := NewThompsonSampling(3, tc.alpha, tc.beta, testRNG(1))
		assert.ErrorIs(t, err, ErrConfiguration, "alpha=%v beta=%v", tc.alpha, tc.beta)
	}
	_, err := NewThompsonSampling(3, 0.5, 2, testRNG(1))
	assert.NoError(t, err)
}

func TestEpsilonGreedy_ZeroEpsilonExploitsBestMean(t *testing.T) {
	p, err := NewEpsilonGreedy(4, 0, testRNG(3))
	require.NoError(t, err)
	obs := map[int][]float64{
		0: {1, 0, 0, 0},
		1: {0, 1, 0},
		2: {1, 1, 1, 0},
		3: {0, 0},
	}
	for arm, rs := range obs {
		for _, r := range rs {
			p.Obtain(r, arm)
		}
	}
	for i := 0; i < 500; i++ {
		require.Equal(t, 2, p.Select())
	}
}

func TestEpsilonGreedy_UnseenArmsAreOptimistic(t *testing.T) {
	p, err := NewEpsilonGreedy(3, 0, testRNG(1))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1}, p.Means())
	assert.Equal(t, 0, p.Select(), "tie resolves leftmost")

	p.Obtain(0, 0)
	assert.Equal(t, 1, p.Select())
	p.Obtain(0.5, 1)
	assert.Equal(t, 2, p.Select())
	p.Obtain(0.25, 2)
	assert.Equal(t, 1, p.Select())
}

func TestEpsilonGreedy_ObtainOutOfRangeIgnored(t *testing.T) {
	p, err := NewEpsilonGreedy(2, 0, testRNG(1))
	require.NoError(t, err)
	p.Obtain(1, 5)
	p.Obtain(1, -1)
	assert.Empty(t, p.History(0))
	assert.Empty(t, p.History(1))
}

func TestEpsilonGreedy_FullExplorationIsUniform(t *testing.T) {
	const arms, plays = 4, 1000
	p, err := NewEpsilonGreedy(arms, 1, testRNG(17))
	require.NoError(t, err)
	p.Obtain(1, 0)

	counts := make([]float64, arms)
	for i := 0; i < plays; i++ {
		counts[p.Select()]++
	}
	expected := make([]float64, arms)
	for i := range expected {
		expected[i] = plays / arms
	}
	chi2 := stat.ChiSquare(counts, expected)
	pValue := distuv.ChiSquared{K: arms - 1}.Survival(chi2)
	assert.Greater(t, pValue, 0.001, "counts %v chi2 %.3f", counts, chi2)
}

func TestRandom_CoversAllArms(t *testing.T) {
	p, err := NewRandom(5, testRNG(2))
	require.NoError(t, err)
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		idx := p.Select()
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, 5)
		seen[idx] = true
	}
	assert.Len(t, seen, 5)
}

func TestThompson_PosteriorCounts(t *testing.T) {
	p, err := NewThompsonSampling(2, 1, 1, testRNG(4))
	require.NoError(t, err)
	for _, r := range []float64{1, 1, 0, 1} {
		p.Obtain(r, 1)
	}
	post := p.Posterior(1)
	assert.Equal(t, 4.0, post.Alpha)
	assert.Equal(t, 2.0, post.Beta)
	assert.Equal(t, []float64{1, 1, 0, 1}, p.History(1))

	prior := p.Posterior(0)
	assert.Equal(t, 1.0, prior.Alpha)
	assert.Equal(t, 1.0, prior.Beta)
}

func TestThompson_PrefersStrongerArm(t *testing.T) {
	p, err := NewThompsonSampling(3, 1, 1, testRNG(8))
	require.NoError(t, err)
	for i := 0; i < 60; i++ {
		p.Obtain(0, 0)
		p.Obtain(1, 1)
		p.Obtain(0, 2)
	}
	picks := 0
	for i := 0; i < 200; i++ {
		if p.Select() == 1 {
			picks++
		}
	}
	assert.Equal(t, 200, picks)
}

func TestArgmax_Leftmost(t *testing.T) {
	assert.Equal(t, 0, argmax([]float64{1}))
	assert.Equal(t, 1, argmax([]float64{0, 3, 3, 1}))
	assert.Equal(t, 0, argmax([]float64{2, 2, 2}))
}

func TestNew_FromSpec(t *testing.T) {
	p, err := New(Spec{Kind: KindRandom}, 3)
	require.NoError(t, err)
	assert.IsType(t, &Random{}, p)

	p, err = New(Spec{Kind: "Epsilon-Greedy", Epsilon: 0.2}, 3)
	require.NoError(t, err)
	assert.IsType(t, &EpsilonGreedy{}, p)

	p, err = New(Spec{Kind: KindThompson, Alpha: 1, Beta: 1}, 3)
	require.NoError(t, err)
	assert.IsType(t, &ThompsonSampling{}, p)

	_, err = New(Spec{Kind: KindThompson}, 3)
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = New(Spec{Kind: "ucb"}, 3)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestNew_SameSeedSameChoices(t *testing.T) {
	spec := Spec{Kind: KindEpsilonGreedy, Epsilon: 0.5, Seed: 99}
	a, err := New(spec, 5)
	require.NoError(t, err)
	b, err := New(spec, 5)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Select(), b.Select())
	}
}

func TestSpec_String(t *testing.T) {
	assert.Equal(t, "epsilon-greedy(epsilon=0.1)", Spec{Kind: KindEpsilonGreedy, Epsilon: 0.1}.String())
	assert.Equal(t, "thompson(alpha=1, beta=2)", Spec{Kind: KindThompson, Alpha: 1, Beta: 2}.String())
	assert.Equal(t, "random", Spec{Kind: KindRandom}.String())
}
