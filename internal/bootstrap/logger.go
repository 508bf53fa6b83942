package bootstrap

import (
	"fmt"

	"locator-inspector/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger writes to stderr so stdout stays reserved for locator output.
func newLogger(config *config.Config) (*zap.Logger, error) {
	var zapConfig zap.Config

	if config.AppConfig.Debug {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	zapConfig.DisableStacktrace = true
	zapConfig.OutputPaths = []string{"stderr"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}

	if config.AppConfig.LogLevel != "" {
		level, err := zapcore.ParseLevel(config.AppConfig.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}

		zapConfig.Level = zap.NewAtomicLevelAt(level)
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	return logger.Named(serviceName), nil
}
