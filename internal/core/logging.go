package core

import (
	"os"

	"github.com/rs/zerolog"
)

// NewLogger builds a component-tagged logger honoring the configured
// level and format.
func NewLogger(component string, cfg LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "json" {
		logger = zerolog.New(os.Stderr)
	} else {
		logger = zerolog.New(zerolog.NewConsoleWriter())
	}
	return logger.Level(level).With().Timestamp().Str("component", component).Logger()
}
