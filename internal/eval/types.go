package eval

// #region eval-config
// EvalConfig holds thresholds for judging a finished run.
type EvalConfig struct {
	MaxRegretPerPlay float64 // fail if regret / plays exceeds this
	MinBestArmRate   float64 // fail if the best arm was pulled less often than this
	MinUniformityP   float64 // uniformity check passes when the p-value is at least this
}

// DefaultEvalConfig is lenient: it only fails runs that do worse than
// uniform play on a typical catalogue.
func DefaultEvalConfig() EvalConfig {
	return EvalConfig{
		MaxRegretPerPlay: 0.5,
		MinBestArmRate:   0.0,
		MinUniformityP:   0.001,
	}
}
// #endregion eval-config

// #region step
// Step is one play as seen by the evaluator.
type Step struct {
	Arm    int
	Reward float64
}
// #endregion step

// #region eval-metric
// EvalMetric captures a single check.
type EvalMetric struct {
	Name  string
	Value float64
	Pass  bool
}
// #endregion eval-metric

// #region eval-result
// EvalResult is the evaluation of one run against the arms' true profiles.
type EvalResult struct {
	Passed bool
	Reason string

	Plays          int
	TotalReward    float64
	ExpectedReward float64 // sum of the chosen arms' probabilities
	OptimalReward  float64 // plays * best probability
	Regret         float64 // OptimalReward - ExpectedReward
	BestArm        int
	BestArmRate    float64
	Pulls          []int

	Metrics []EvalMetric
}
// #endregion eval-result
