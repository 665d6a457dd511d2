// Package casino hosts a fixed roster of slot machines behind a trial budget
// and keeps the append-only log of every play it served.
//
// A Casino is not safe for concurrent use; callers that share one across
// goroutines serialise access themselves (see internal/server).
package casino

import (
	"fmt"

	"github.com/danielpatrickdp/slot-bandit/internal/logging"
	"github.com/danielpatrickdp/slot-bandit/internal/random"
	"github.com/danielpatrickdp/slot-bandit/internal/slot"
	"github.com/danielpatrickdp/slot-bandit/internal/trial"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// #region types
// Play is one served pull: the arm chosen and the reward it paid.
type Play struct {
	Arm    int     `json:"arm"`
	Reward float64 `json:"reward"`
}

// Casino owns the machines, the current game's trial state, the lifetime
// play cap and the play log.
type Casino struct {
	id       uuid.UUID
	machines []*slot.Machine
	repo     slot.Repository
	state    trial.State
	log      []Play
	trialCap int // 0 means uncapped
	logger   logrus.FieldLogger
}

// Option configures a Casino at construction.
type Option func(*Casino) error
// #endregion types

// #region options
// WithTrialCap limits the total plays the casino will ever serve. Zero means
// no cap.
func WithTrialCap(n int) Option {
	return func(c *Casino) error {
		if n < 0 {
			return fmt.Errorf("%w: trial cap %d is negative", ErrConfiguration, n)
		}
		c.trialCap = n
		return nil
	}
}

// WithRepository draws the machines' sources from repo instead of a fresh
// in-memory catalogue.
func WithRepository(repo slot.Repository) Option {
	return func(c *Casino) error {
		if repo == nil {
			return fmt.Errorf("%w: nil repository", ErrConfiguration)
		}
		c.repo = repo
		return nil
	}
}

// WithLogger routes play and lifecycle logs to log.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Casino) error {
		c.logger = log
		return nil
	}
}
// #endregion options

// #region constructor
// New builds a casino with arms machines. The game starts Ended; call Start
// before playing.
func New(arms int, opts ...Option) (*Casino, error) {
	if arms <= 0 {
		return nil, fmt.Errorf("%w: need at least one arm, got %d", ErrConfiguration, arms)
	}
	c := &Casino{id: uuid.New(), state: trial.Ended()}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}
	if c.repo == nil {
		seed, err := random.NewSeed()
		if err != nil {
			return nil, fmt.Errorf("seed repository: %w", err)
		}
		c.repo = slot.NewMemoryRepository(seed)
	}
	c.logger = c.logger.WithField("casino_id", c.id.String())

	c.machines = make([]*slot.Machine, arms)
	for i := range c.machines {
		m, err := slot.NewMachine(c.repo)
		if err != nil {
			return nil, fmt.Errorf("machine %d: %w", i, err)
		}
		c.machines[i] = m
	}
	c.logger.WithFields(logrus.Fields{"arms": arms, "trial_cap": c.trialCap}).Info("casino ready")
	return c, nil
}
// #endregion constructor

// #region start
// Start begins a new game under b. The play log and machine histories carry
// over from earlier games.
func (c *Casino) Start(b trial.Budget) {
	c.state = trial.Start(b)
	kind := "unbounded"
	if _, ok := b.Max(); ok {
		kind = "bounded"
	}
	gamesStarted.WithLabelValues(kind).Inc()
	c.logger.WithFields(logrus.Fields{"budget": b.String(), "state": c.state.String()}).Info("game started")
}
// #endregion start

// #region play
// Play pulls arm. Checks run in order: game in progress, arm in range,
// lifetime cap not yet served.
func (c *Casino) Play(arm int) (float64, error) {
	seq := len(c.log)
	r, err := c.play(arm)
	outcome := Outcome(err)
	playsTotal.WithLabelValues(outcome).Inc()

	entry := logging.PlayEntry{
		CasinoID: c.id.String(),
		Seq:      seq,
		Arm:      arm,
		Reward:   r,
		Outcome:  outcome,
	}
	if err != nil {
		entry.Reason = err.Error()
	} else {
		rewardTotal.Add(r)
	}
	logging.LogPlay(c.logger, entry)
	return r, err
}

func (c *Casino) play(arm int) (float64, error) {
	if !c.state.Playing() {
		return 0, ErrNotStarted
	}
	if arm < 0 || arm >= len(c.machines) {
		return 0, fmt.Errorf("arm %d of %d: %w", arm, len(c.machines), ErrIndexOutOfRange)
	}
	if c.trialCap > 0 && len(c.log) >= c.trialCap {
		return 0, fmt.Errorf("%d of %d plays served: %w", len(c.log), c.trialCap, ErrTrialLimit)
	}

	c.state = c.state.Advance()
	r := c.machines[arm].Play()
	c.log = append(c.log, Play{Arm: arm, Reward: r})
	return r, nil
}
// #endregion play

// #region scoring
// Score is the sum of every logged reward.
func (c *Casino) Score() float64 {
	var s float64
	for _, p := range c.log {
		s += p.Reward
	}
	return s
}

// PlayCount is the number of plays served.
func (c *Casino) PlayCount() int {
	return len(c.log)
}

// MeanScore is Score divided by PlayCount, or ErrNoPlays when nothing has
// been played.
func (c *Casino) MeanScore() (float64, error) {
	if len(c.log) == 0 {
		return 0, ErrNoPlays
	}
	return c.Score() / float64(len(c.log)), nil
}

// Profiles exposes each machine's hidden probability, for offline evaluation.
func (c *Casino) Profiles() []float64 {
	out := make([]float64, len(c.machines))
	for i, m := range c.machines {
		out[i] = m.Profile()
	}
	return out
}

// Log returns a copy of the play log.
func (c *Casino) Log() []Play {
	out := make([]Play, len(c.log))
	copy(out, c.log)
	return out
}
// #endregion scoring

// #region machines
// ResetSources rewinds every machine's source to its seeded state. Histories
// and the play log are kept.
func (c *Casino) ResetSources() {
	for _, m := range c.machines {
		m.ResetSource()
	}
	c.logger.Info("sources reset")
}

// SwapArm rebinds arm to the catalogued configuration at catalogIndex.
func (c *Casino) SwapArm(arm, catalogIndex int) error {
	if arm < 0 || arm >= len(c.machines) {
		return fmt.Errorf("arm %d of %d: %w", arm, len(c.machines), ErrIndexOutOfRange)
	}
	if err := c.machines[arm].SwapToRepositoryIndex(catalogIndex); err != nil {
		return fmt.Errorf("arm %d: %w", arm, err)
	}
	return nil
}

// History returns the rewards played through arm.
func (c *Casino) History(arm int) ([]float64, error) {
	if arm < 0 || arm >= len(c.machines) {
		return nil, fmt.Errorf("arm %d of %d: %w", arm, len(c.machines), ErrIndexOutOfRange)
	}
	return c.machines[arm].History(), nil
}
// #endregion machines

// ID identifies the casino in logs.
func (c *Casino) ID() uuid.UUID {
	return c.id
}

// Arms is the number of machines.
func (c *Casino) Arms() int {
	return len(c.machines)
}

// State is the current game's trial state.
func (c *Casino) State() trial.State {
	return c.state
}

// TrialCap is the lifetime play cap, zero when uncapped.
func (c *Casino) TrialCap() int {
	return c.trialCap
}

// Repository is the catalogue the machines draw from.
func (c *Casino) Repository() slot.Repository {
	return c.repo
}
