// Package logger builds the client's zap logger. The TUI owns stdout and
// stderr, so logs go to a file; with no file configured, logging is a
// no-op.
package logger

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/investipet/investipet/internal/store"
)

// New opens a JSON file logger at path. An empty path returns a nop logger.
func New(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	if err := store.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve log path: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{abs}
	cfg.ErrorOutputPaths = []string{abs}
	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}
