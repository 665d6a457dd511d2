// Package eval scores bandit runs against the arms' hidden probabilities.
package eval

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// #region eval-harness
// EvalHarness evaluates finished runs.
type EvalHarness struct {
	config EvalConfig
}

// NewEvalHarness creates a harness with the given thresholds.
func NewEvalHarness(config EvalConfig) *EvalHarness {
	return &EvalHarness{config: config}
}

// Run computes regret and pull statistics for steps played against profiles.
// Steps naming an arm outside profiles are counted as plays with zero
// expected reward.
func (h *EvalHarness) Run(profiles []float64, steps []Step) EvalResult {
	res := EvalResult{
		Plays: len(steps),
		Pulls: make([]int, len(profiles)),
	}
	if len(profiles) > 0 {
		res.BestArm = floats.MaxIdx(profiles)
	}

	best := 0.0
	if len(profiles) > 0 {
		best = profiles[res.BestArm]
	}
	for _, s := range steps {
		res.TotalReward += s.Reward
		if s.Arm >= 0 && s.Arm < len(profiles) {
			res.ExpectedReward += profiles[s.Arm]
			res.Pulls[s.Arm]++
		}
	}
	res.OptimalReward = best * float64(len(steps))
	res.Regret = res.OptimalReward - res.ExpectedReward

	var failReasons []string
	res.Passed = true

	regretRate := 0.0
	if len(steps) > 0 {
		regretRate = res.Regret / float64(len(steps))
	}
	if len(steps) > 0 && len(profiles) > 0 {
		res.BestArmRate = float64(res.Pulls[res.BestArm]) / float64(len(steps))
	}

	regretPass := regretRate <= h.config.MaxRegretPerPlay
	res.Metrics = append(res.Metrics, EvalMetric{Name: "regret_per_play", Value: regretRate, Pass: regretPass})
	if !regretPass {
		failReasons = append(failReasons, fmt.Sprintf("regret per play %.4f exceeds %.4f", regretRate, h.config.MaxRegretPerPlay))
	}

	bestPass := res.BestArmRate >= h.config.MinBestArmRate
	res.Metrics = append(res.Metrics, EvalMetric{Name: "best_arm_rate", Value: res.BestArmRate, Pass: bestPass})
	if !bestPass {
		failReasons = append(failReasons, fmt.Sprintf("best arm rate %.4f below %.4f", res.BestArmRate, h.config.MinBestArmRate))
	}

	// Informational only: a learning policy is expected to be non-uniform.
	if len(profiles) > 1 && len(steps) > 0 {
		_, p := UniformityTest(res.Pulls)
		res.Metrics = append(res.Metrics, EvalMetric{Name: "uniformity_p", Value: p, Pass: p >= h.config.MinUniformityP})
	}

	res.Reason = "all checks passed"
	if len(failReasons) > 0 {
		res.Passed = false
		res.Reason = fmt.Sprintf("eval failed: %s", failReasons[0])
		if len(failReasons) > 1 {
			res.Reason = fmt.Sprintf("eval failed: %d checks: %s", len(failReasons), failReasons[0])
		}
	}
	return res
}
// #endregion eval-harness

// #region uniformity
// UniformityTest runs a chi-square goodness-of-fit test of counts against the
// uniform distribution and returns the statistic and its p-value.
func UniformityTest(counts []int) (chi2, pValue float64) {
	if len(counts) < 2 {
		return 0, 1
	}
	obs := make([]float64, len(counts))
	total := 0.0
	for i, c := range counts {
		obs[i] = float64(c)
		total += obs[i]
	}
	if total == 0 {
		return 0, 1
	}
	exp := make([]float64, len(counts))
	for i := range exp {
		exp[i] = total / float64(len(counts))
	}
	chi2 = stat.ChiSquare(obs, exp)
	pValue = distuv.ChiSquared{K: float64(len(counts) - 1)}.Survival(chi2)
	return chi2, pValue
}
// #endregion uniformity
