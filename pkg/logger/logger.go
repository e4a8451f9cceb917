package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logger configuration
type Config struct {
	Level      string
	Format     string // "console" or "json"
	TimeFormat string
	Output     io.Writer
}

// Setup configures the global zerolog logger and returns it.
func Setup(cfg Config) zerolog.Logger {
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = time.RFC3339
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	out := cfg.Output
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        cfg.Output,
			TimeFormat: cfg.TimeFormat,
		}
	}

	zerolog.TimeFieldFormat = cfg.TimeFormat
	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()

	log.Logger = logger
	return logger
}
