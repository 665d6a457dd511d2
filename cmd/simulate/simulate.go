package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/danielpatrickdp/slot-bandit/internal/casino"
	"github.com/danielpatrickdp/slot-bandit/internal/catalog"
	"github.com/danielpatrickdp/slot-bandit/internal/eval"
	"github.com/danielpatrickdp/slot-bandit/internal/logging"
	"github.com/danielpatrickdp/slot-bandit/internal/policy"
	"github.com/danielpatrickdp/slot-bandit/internal/random"
	"github.com/danielpatrickdp/slot-bandit/internal/replay"
	"github.com/danielpatrickdp/slot-bandit/internal/rpc"
	"github.com/danielpatrickdp/slot-bandit/internal/trial"
	"github.com/sirupsen/logrus"
)

// #region options
type options struct {
	Arms       int
	TrialCap   int
	MaxTrials  int
	Plays      int
	Policy     policy.Spec
	Seed       uint64
	CatalogDSN string
	Remote     string
	LogLevel   string
}

func defaultOptions() *options {
	return &options{
		Arms:       10,
		MaxTrials:  -1,
		Plays:      1000,
		Policy:     policy.Spec{Kind: policy.KindThompson, Epsilon: 0.1, Alpha: 1, Beta: 1},
		CatalogDSN: catalog.MemoryDSN,
		LogLevel:   "warn",
	}
}

func (o *options) budget() trial.Budget {
	if o.MaxTrials < 0 {
		return trial.Unbounded()
	}
	return trial.Bounded(o.MaxTrials)
}

func (o *options) validate() error {
	if o.Plays < 0 {
		return fmt.Errorf("--plays must not be negative")
	}
	if o.Plays == 0 && o.MaxTrials < 0 && (o.Remote != "" || o.TrialCap == 0) {
		return fmt.Errorf("--plays 0 needs --max-trials or --cap to end the run")
	}
	return nil
}
// #endregion options

// #region simulate
func simulate(ctx context.Context, o *options, out io.Writer) error {
	if err := o.validate(); err != nil {
		return err
	}
	log, err := logging.New(o.LogLevel, "text")
	if err != nil {
		return err
	}
	seed, err := random.SeedOr(o.Seed)
	if err != nil {
		return err
	}
	o.Policy.Seed = seed

	var (
		player   replay.Player
		profiles func() ([]float64, error)
		arms     int
	)
	if o.Remote != "" {
		client, err := rpc.NewClient(o.Remote)
		if err != nil {
			return err
		}
		defer client.Close()

		if err := client.Start(ctx, o.budget()); err != nil {
			return err
		}
		ps, err := client.Profiles(ctx)
		if err != nil {
			return err
		}
		arms = len(ps)
		player = replay.PlayerFunc(func(idx int) (float64, error) { return client.Play(ctx, idx) })
		profiles = func() ([]float64, error) { return client.Profiles(ctx) }
	} else {
		cat, err := catalog.Open(o.CatalogDSN, seed)
		if err != nil {
			return err
		}
		defer cat.Close()

		c, err := casino.New(o.Arms,
			casino.WithRepository(cat),
			casino.WithTrialCap(o.TrialCap),
			casino.WithLogger(log),
		)
		if err != nil {
			return err
		}
		c.Start(o.budget())
		arms = c.Arms()
		player = c
		profiles = func() ([]float64, error) { return c.Profiles(), nil }
	}

	pol, err := policy.New(o.Policy, arms)
	if err != nil {
		return err
	}
	run := replay.Drive(ctx, player, pol, o.Plays)
	if run.Cancelled() {
		return run.Err
	}
	ps, err := profiles()
	if err != nil {
		return err
	}
	res := eval.NewEvalHarness(eval.DefaultEvalConfig()).Run(ps, run.EvalSteps())

	log.WithFields(logrus.Fields{
		"policy": o.Policy.String(),
		"plays":  len(run.Steps),
		"regret": res.Regret,
	}).Info("simulation finished")

	printReport(out, o, run, ps, res)
	return nil
}
// #endregion simulate

// #region report
func printReport(out io.Writer, o *options, run replay.Run, profiles []float64, res eval.EvalResult) {
	fmt.Fprintf(out, "policy:  %s (seed %d)\n", o.Policy, o.Policy.Seed)
	fmt.Fprintf(out, "plays:   %d\n", len(run.Steps))
	fmt.Fprintf(out, "score:   %g\n", run.Score())
	if run.Err != nil {
		fmt.Fprintf(out, "stopped: %s (%v)\n", stopReason(run.Err), run.Err)
	}

	fmt.Fprintf(out, "\n%-5s| %-11s| %s\n", "Arm", "Probability", "Pulls")
	fmt.Fprintf(out, "%-5s+%-12s+%s\n", "-----", "------------", "------")
	for i, p := range profiles {
		pulls := 0
		if i < len(res.Pulls) {
			pulls = res.Pulls[i]
		}
		marker := ""
		if i == res.BestArm {
			marker = " *"
		}
		fmt.Fprintf(out, "%-5d| %-11.4f| %d%s\n", i, p, pulls, marker)
	}

	fmt.Fprintf(out, "\nregret:        %.4f\n", res.Regret)
	fmt.Fprintf(out, "best arm rate: %.3f\n", res.BestArmRate)
	for _, m := range res.Metrics {
		fmt.Fprintf(out, "  %-22s %10.4f  %s\n", m.Name, m.Value, passFail(m.Pass))
	}
	fmt.Fprintf(out, "eval: %s", passFail(res.Passed))
	if res.Reason != "" {
		fmt.Fprintf(out, " (%s)", res.Reason)
	}
	fmt.Fprintln(out)
}

func stopReason(err error) string {
	if errors.Is(err, casino.ErrNotStarted) {
		return "game ended"
	}
	return casino.Outcome(err)
}

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}
// #endregion report
