// Package logging builds the process logger. The TUI owns the terminal, so
// log output goes to a file under ~/.devhive/logs; stdout and stderr are
// never written to while the interface is running.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Dir returns the directory log files are written to.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".devhive", "logs"), nil
}

// New creates the file-backed logger. verbose lowers the level to debug.
// If the log directory cannot be created the logger degrades to a no-op
// rather than failing startup.
func New(verbose bool) (*zap.Logger, error) {
	dir, err := Dir()
	if err != nil {
		return zap.NewNop(), nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zap.NewNop(), nil
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(dir, "devhive.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}
