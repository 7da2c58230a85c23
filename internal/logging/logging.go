// Package logging configures the process-wide zerolog logger.
//
// Packages that run outside a request ask for a named child logger with
// Component. Servers and the TUI take a zerolog.Logger in their constructors
// instead, so tests can pass zerolog.Nop().
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/froggen/ascii-frog/internal/config"
	"github.com/rs/zerolog"
)

var (
	mu   sync.RWMutex
	base = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

// New builds a logger from cfg writing to w. Console format is human readable;
// json writes one object per line.
func New(cfg config.LogConfig, w io.Writer) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Nop(), err
		}
		level = parsed
	}

	out := w
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: !isTerminal(w)}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

// Init replaces the base logger used by Component.
func Init(cfg config.LogConfig, w io.Writer) (zerolog.Logger, error) {
	logger, err := New(cfg, w)
	if err != nil {
		return logger, err
	}

	mu.Lock()
	base = logger
	mu.Unlock()

	return logger, nil
}

// Component returns a child of the base logger tagged with the component name.
func Component(name string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.With().Str("component", name).Logger()
}
