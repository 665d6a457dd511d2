package replay

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/danielpatrickdp/slot-bandit/internal/casino"
	"github.com/danielpatrickdp/slot-bandit/internal/eval"
	"github.com/danielpatrickdp/slot-bandit/internal/policy"
	"github.com/danielpatrickdp/slot-bandit/internal/reward"
	"github.com/danielpatrickdp/slot-bandit/internal/slot"
	"github.com/danielpatrickdp/slot-bandit/internal/trial"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// #region fixture-types
// Fixture describes a reproducible experiment.
type Fixture struct {
	Description string         `json:"description" yaml:"description"`
	Casino      FixtureCasino  `json:"casino" yaml:"casino"`
	Policy      policy.Spec    `json:"policy" yaml:"policy"`
	Steps       int            `json:"steps" yaml:"steps"`
	Expected    *FixtureExpect `json:"expected,omitempty" yaml:"expected,omitempty"`
	Eval        *FixtureEval   `json:"eval,omitempty" yaml:"eval,omitempty"`
}

// FixtureCasino configures the casino. Arms lists explicit configurations;
// when empty, Generate arms are drawn from RepositorySeed.
type FixtureCasino struct {
	Arms           []reward.Config `json:"arms,omitempty" yaml:"arms,omitempty"`
	Generate       int             `json:"generate,omitempty" yaml:"generate,omitempty"`
	RepositorySeed uint64          `json:"repository_seed" yaml:"repository_seed"`
	TrialCap       int             `json:"trial_cap,omitempty" yaml:"trial_cap,omitempty"`
	MaxTrials      *int            `json:"max_trials,omitempty" yaml:"max_trials,omitempty"`
}

// FixtureExpect holds the reference outcome of the run. Unset fields are not
// compared.
type FixtureExpect struct {
	Plays   int      `json:"plays" yaml:"plays"`
	Score   *float64 `json:"score,omitempty" yaml:"score,omitempty"`
	StopErr string   `json:"stop_error,omitempty" yaml:"stop_error,omitempty"`
	Indices []int    `json:"indices,omitempty" yaml:"indices,omitempty"`
}

// FixtureEval mirrors eval.EvalConfig.
type FixtureEval struct {
	MaxRegretPerPlay float64 `json:"max_regret_per_play" yaml:"max_regret_per_play"`
	MinBestArmRate   float64 `json:"min_best_arm_rate" yaml:"min_best_arm_rate"`
	MinUniformityP   float64 `json:"min_uniformity_p" yaml:"min_uniformity_p"`
}
// #endregion fixture-types

// #region fixture-loader
// LoadFixture reads a JSON or YAML fixture, chosen by file extension.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	default:
		err = json.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// Budget converts MaxTrials to a game budget.
func (fc *FixtureCasino) Budget() trial.Budget {
	if fc.MaxTrials == nil {
		return trial.Unbounded()
	}
	return trial.Bounded(*fc.MaxTrials)
}

// Build constructs and starts the casino the fixture describes.
func (fc *FixtureCasino) Build(log logrus.FieldLogger) (*casino.Casino, error) {
	repo := slot.NewMemoryRepository(fc.RepositorySeed)
	arms := fc.Generate
	if len(fc.Arms) > 0 {
		arms = len(fc.Arms)
	}
	c, err := casino.New(arms,
		casino.WithRepository(&presetRepository{MemoryRepository: repo, preset: fc.Arms}),
		casino.WithTrialCap(fc.TrialCap),
		casino.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("build casino: %w", err)
	}
	c.Start(fc.Budget())
	return c, nil
}

// ToEvalConfig converts FixtureEval, falling back to the defaults.
func (f *Fixture) ToEvalConfig() eval.EvalConfig {
	if f.Eval == nil {
		return eval.DefaultEvalConfig()
	}
	return eval.EvalConfig{
		MaxRegretPerPlay: f.Eval.MaxRegretPerPlay,
		MinBestArmRate:   f.Eval.MinBestArmRate,
		MinUniformityP:   f.Eval.MinUniformityP,
	}
}
// #endregion fixture-loader

// #region preset-repository
// presetRepository hands out the fixture's explicit arms first, then draws.
type presetRepository struct {
	*slot.MemoryRepository
	preset []reward.Config
}

func (r *presetRepository) Generate() (reward.Config, error) {
	if n := r.Len(); n < len(r.preset) {
		r.Insert(r.preset[n])
		return r.preset[n], nil
	}
	return r.MemoryRepository.Generate()
}
// #endregion preset-repository

// #region run-fixture
// Summary is the result of replaying a fixture.
type Summary struct {
	RunID    uuid.UUID
	Run      Run
	Profiles []float64
	Eval     eval.EvalResult
}

// RunFixture builds the fixture's casino and policy, drives them and
// evaluates the run.
func RunFixture(ctx context.Context, f *Fixture, log logrus.FieldLogger) (Summary, error) {
	runID := uuid.New()
	log = log.WithField("run_id", runID.String())

	c, err := f.Casino.Build(log)
	if err != nil {
		return Summary{}, err
	}
	pol, err := policy.New(f.Policy, c.Arms())
	if err != nil {
		return Summary{}, fmt.Errorf("build policy: %w", err)
	}

	run := Drive(ctx, c, pol, f.Steps)
	profiles := c.Profiles()
	res := eval.NewEvalHarness(f.ToEvalConfig()).Run(profiles, run.EvalSteps())

	log.WithFields(logrus.Fields{
		"policy": f.Policy.String(),
		"plays":  len(run.Steps),
		"score":  run.Score(),
		"regret": res.Regret,
	}).Info("fixture replayed")

	return Summary{RunID: runID, Run: run, Profiles: profiles, Eval: res}, nil
}
// #endregion run-fixture

// #region compare
// Mismatch is one difference between a fixture's expectation and its replay.
type Mismatch struct {
	Field    string
	Expected string
	Replayed string
}

// Compare checks a summary against the fixture's expectation. A fixture with
// no expectation never mismatches.
func Compare(f *Fixture, s Summary) []Mismatch {
	if f.Expected == nil {
		return nil
	}
	var out []Mismatch
	exp := f.Expected
	if exp.Plays != len(s.Run.Steps) {
		out = append(out, Mismatch{"plays", fmt.Sprint(exp.Plays), fmt.Sprint(len(s.Run.Steps))})
	}
	if exp.Score != nil && *exp.Score != s.Run.Score() {
		out = append(out, Mismatch{"score", fmt.Sprint(*exp.Score), fmt.Sprint(s.Run.Score())})
	}
	if exp.StopErr != "" {
		got := ""
		if s.Run.Err != nil {
			got = casino.Outcome(s.Run.Err)
		}
		if got != exp.StopErr {
			out = append(out, Mismatch{"stop_error", exp.StopErr, got})
		}
	}
	for i, want := range exp.Indices {
		got := -1
		if i < len(s.Run.Steps) {
			got = s.Run.Steps[i].Index
		}
		if got != want {
			out = append(out, Mismatch{fmt.Sprintf("index[%d]", i), fmt.Sprint(want), fmt.Sprint(got)})
		}
	}
	return out
}
// #endregion compare
