// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ParseLevel accepts the slog level names, case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level string) (*slog.Logger, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

// Setup installs a logger for level as the slog default.
func Setup(w io.Writer, level string) error {
	l, err := New(w, level)
	if err != nil {
		return err
	}
	slog.SetDefault(l)
	return nil
}

// For returns the default logger tagged with a component name. It reads the
// default on every call so that Setup takes effect everywhere.
func For(component string) *slog.Logger {
	return slog.Default().With("component", component)
}
