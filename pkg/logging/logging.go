// Package logging sets up zerolog for the binaries. The client draws on
// the terminal, so its logs go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Init opens dest for appending and returns a logger writing JSON lines
// to it, tagged with component.
func Init(dest, component string, level zerolog.Level) (zerolog.Logger, io.Closer, error) {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("opening log file: %w", err)
	}
	return New(f, component, level), f, nil
}

func New(w io.Writer, component string, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}

// Console returns a human readable logger on stderr.
func Console(component string, level zerolog.Level) zerolog.Logger {
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return New(w, component, level)
}

// ParseLevel is zerolog.ParseLevel with info as the fallback for an empty
// string.
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(s)
}
