// Package logging configures structured logging with slog.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level is an alias for slog.Level.
type Level = slog.Level

// Log levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Format selects the handler.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// Config holds logger settings.
type Config struct {
	Level     Level
	Format    Format
	Output    io.Writer // defaults to os.Stderr
	Component string
}

// New builds a logger from cfg.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var h slog.Handler
	switch cfg.Format {
	case FormatJSON:
		h = slog.NewJSONHandler(out, opts)
	default:
		h = slog.NewTextHandler(out, opts)
	}

	l := slog.New(h)
	if cfg.Component != "" {
		l = l.With("component", cfg.Component)
	}
	return l
}

// Setup builds a logger from string settings and installs it as the default.
func Setup(level, format, component string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	l := New(Config{Level: lvl, Format: f, Component: component})
	slog.SetDefault(l)
	return l, nil
}

// ParseLevel parses a level name. The empty string means info.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("logging: unknown level %q", s)
	}
}

// ParseFormat parses "text" or "json". The empty string means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("logging: unknown format %q", s)
	}
}
