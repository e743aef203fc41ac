// Package logging builds the zap logger shared by the engine, the bot and the UI.
package logging

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Hopman/rothello/config"
)

var logFile = "rothello/debug.log"

// Path returns the log file for cfg: the configured file, or the XDG state file.
func Path(cfg config.LogConfig) (string, error) {
	if cfg.File != "" {
		return filepath.Clean(cfg.File), nil
	}
	return xdg.StateFile(logFile)
}

// New returns a sugared logger writing JSON lines to the log file.
// The terminal belongs to the UI, so nothing is written to stdout or stderr.
func New(cfg config.LogConfig) (*zap.SugaredLogger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	path, err := Path(cfg)
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.Sampling = nil
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
