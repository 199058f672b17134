package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config is read from the environment; flags override it.
type Config struct {
	Schema    string `env:"QSTATE_SCHEMA"`
	Strategy  string `env:"QSTATE_STRATEGY"`
	Addr      string `env:"QSTATE_ADDR" envDefault:":8080"`
	LogLevel  string `env:"QSTATE_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"QSTATE_LOG_FORMAT" envDefault:"text"`
	Lang      string `env:"QSTATE_LANG" envDefault:"en"`
}

// LoadConfig parses the QSTATE_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	hopts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, hopts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, hopts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q (want text or json)", format)
	}
}
