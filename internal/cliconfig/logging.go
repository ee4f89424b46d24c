package cliconfig

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger returns a console logger on stderr at the given level.
func Logger(level zerolog.Level) zerolog.Logger {
	return NewLogger(os.Stderr, level)
}

// NewLogger returns a console logger writing to w.
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
