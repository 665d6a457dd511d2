package casino

import (
	"errors"

	"github.com/danielpatrickdp/slot-bandit/internal/slot"
)

var (
	// ErrNotStarted is returned by Play while no game is in progress.
	ErrNotStarted = errors.New("game not started")
	// ErrTrialLimit is returned once the casino's lifetime play cap is served.
	ErrTrialLimit = errors.New("trial limit reached")
	// ErrIndexOutOfRange is returned for an arm or catalogue index past the end.
	ErrIndexOutOfRange = slot.ErrIndexOutOfRange
	// ErrNoPlays is returned by MeanScore before any play has been served.
	ErrNoPlays = errors.New("no plays recorded")
	// ErrConfiguration reports invalid construction parameters.
	ErrConfiguration = errors.New("invalid casino configuration")
)

// Outcome labels a play result for metrics and logs.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotStarted):
		return "not_started"
	case errors.Is(err, ErrIndexOutOfRange):
		return "index_out_of_range"
	case errors.Is(err, ErrTrialLimit):
		return "trial_limit"
	default:
		return "error"
	}
}
