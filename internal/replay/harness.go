package replay

import (
	"context"
	"errors"

	"github.com/danielpatrickdp/slot-bandit/internal/eval"
	"github.com/danielpatrickdp/slot-bandit/internal/policy"
)

// #region types
// Player serves plays. *casino.Casino satisfies it; remote clients adapt
// through PlayerFunc.
type Player interface {
	Play(idx int) (float64, error)
}

// PlayerFunc adapts a function to Player.
type PlayerFunc func(idx int) (float64, error)

// Play calls f.
func (f PlayerFunc) Play(idx int) (float64, error) {
	return f(idx)
}

// Step is one successful select → play → obtain round.
type Step struct {
	Index  int     `json:"index"`
	Reward float64 `json:"reward"`
}

// Run is the outcome of driving a policy. Err is the play error that stopped
// the run, or nil when it stopped on its step limit.
type Run struct {
	Steps []Step
	Err   error
}

// Score sums the run's rewards.
func (r Run) Score() float64 {
	var s float64
	for _, st := range r.Steps {
		s += st.Reward
	}
	return s
}

// EvalSteps converts the run for the evaluator.
func (r Run) EvalSteps() []eval.Step {
	out := make([]eval.Step, len(r.Steps))
	for i, st := range r.Steps {
		out[i] = eval.Step{Arm: st.Index, Reward: st.Reward}
	}
	return out
}
// #endregion types

// #region drive
// Drive runs the selection protocol: idx := pol.Select(); reward, err :=
// p.Play(idx); on success pol.Obtain(reward, idx). It stops at the first play
// error (which is never passed to Obtain), when ctx is done, or after
// maxSteps successful rounds. maxSteps <= 0 runs until a play fails.
func Drive(ctx context.Context, p Player, pol policy.Policy, maxSteps int) Run {
	var run Run
	for maxSteps <= 0 || len(run.Steps) < maxSteps {
		if err := ctx.Err(); err != nil {
			run.Err = err
			return run
		}
		idx := pol.Select()
		reward, err := p.Play(idx)
		if err != nil {
			run.Err = err
			return run
		}
		pol.Obtain(reward, idx)
		run.Steps = append(run.Steps, Step{Index: idx, Reward: reward})
	}
	return run
}
// #endregion drive

// Cancelled reports whether the run stopped because its context ended.
func (r Run) Cancelled() bool {
	return errors.Is(r.Err, context.Canceled) || errors.Is(r.Err, context.DeadlineExceeded)
}
