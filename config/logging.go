package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Build constructs the zap logger described by the section
// With no file and console disabled the logger is a nop
func (c LoggingConfig) Build() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("config: logging level %q: %w", c.Level, err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = nil
	if c.File != "" {
		zc.OutputPaths = append(zc.OutputPaths, c.File)
	}
	if c.Console {
		zc.OutputPaths = append(zc.OutputPaths, "stderr")
	}
	if len(zc.OutputPaths) == 0 {
		return zap.NewNop(), nil
	}
	zc.ErrorOutputPaths = zc.OutputPaths

	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("config: build logger: %w", err)
	}
	return log, nil
}
