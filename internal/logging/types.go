package logging

import "time"

// #region play-entry
// PlayEntry is the structured record of one play served by a casino.
type PlayEntry struct {
	CasinoID  string
	Seq       int
	Arm       int
	Reward    float64
	Outcome   string // "ok" | "not_started" | "index_out_of_range" | "trial_limit"
	Reason    string
	CreatedAt time.Time
}
// #endregion play-entry
