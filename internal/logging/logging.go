// Package logging configures the process-wide charmbracelet logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// New builds a logger writing to w at the named level ("debug", "info",
// "warn", "error").
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "particlefield",
	}), nil
}

// Setup installs a stderr logger as the package default and returns it.
func Setup(level string) (*log.Logger, error) {
	l, err := New(os.Stderr, level)
	if err != nil {
		return nil, err
	}
	log.SetDefault(l)
	return l, nil
}

// Discard returns a logger that drops everything, for hosts that own the
// terminal.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
