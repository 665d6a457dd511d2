package reward

// #region config
// Config is the full, copyable description of one arm: its hidden success
// probability and the seed of its random stream.
type Config struct {
	Probability float64 `json:"probability" yaml:"probability"`
	Seed        uint64  `json:"seed" yaml:"seed"`
}
// #endregion config
