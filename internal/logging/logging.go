// Package logging configures logrus loggers and emits structured play records.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// #region new
// New builds a logger writing to stderr at level, formatted as "text" or "json".
func New(level, format string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return logger, nil
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
// #endregion new

// #region log-play
// LogPlay writes entry at debug level when the play succeeded and at warn
// level when it was rejected.
func LogPlay(log logrus.FieldLogger, entry PlayEntry) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	fields := logrus.Fields{
		"casino_id": entry.CasinoID,
		"seq":       entry.Seq,
		"arm":       entry.Arm,
		"outcome":   entry.Outcome,
		"at":        entry.CreatedAt.Format(time.RFC3339Nano),
	}
	if entry.Outcome == "ok" {
		fields["reward"] = entry.Reward
		log.WithFields(fields).Debug("play")
		return
	}
	fields["reason"] = entry.Reason
	log.WithFields(fields).Warn("play rejected")
}
// #endregion log-play
