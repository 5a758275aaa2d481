// Package logging builds the structured logger used by linediff.
//
// Logging is off unless the LINEDIFF_LOG_FILE environment variable names a file. Entries are appended to that file as JSON lines. If the variable is
// unset/empty or the path can't be opened as a file, New returns a no-op logger.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvLogFile is the environment variable naming the log file.
const EnvLogFile = "LINEDIFF_LOG_FILE"

// New returns a logger writing to $LINEDIFF_LOG_FILE, or a no-op logger. If verbose, debug entries are included.
func New(verbose bool) *zap.Logger {
	path := os.Getenv(EnvLogFile)
	if path == "" {
		return zap.NewNop()
	}
	if fi, err := os.Stat(path); err == nil && !fi.Mode().IsRegular() {
		return zap.NewNop()
	}

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Sampling = nil
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
