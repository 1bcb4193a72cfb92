package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type Config struct {
	Level       string `default:"info" validate:"oneof=debug info warn error"`
	Format      string `default:"json" validate:"oneof=json console"`
	ServiceName string `split_words:"true" default:"sulu"`
	WithCaller  bool   `split_words:"true"`
}

// New builds the application logger. Output goes to out, or stderr when out is nil.
func New(cfg Config, env string, out io.Writer) (logger zerolog.Logger, err error) {
	if err = validator.New().Struct(cfg); err != nil {
		return logger, fmt.Errorf("logger config validation error: %w", err)
	}
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return logger, err
	}
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out}
	}

	logger = zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("env", env).
		Logger()
	if cfg.WithCaller {
		logger = logger.With().Caller().Logger()
	}
	return logger, nil
}
