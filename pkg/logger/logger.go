package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

func New(env string) zerolog.Logger {
	var w io.Writer = os.Stdout
	if env == "dev" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}
	return NewWithWriter(env, w)
}

// NewWithWriter logs JSON lines to w; debug level in dev, info otherwise.
func NewWithWriter(env string, w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	l := zerolog.New(w).With().Timestamp().Str("service", "bug-tracker").Logger()
	if env == "dev" {
		l = l.Level(zerolog.DebugLevel)
	} else {
		l = l.Level(zerolog.InfoLevel)
	}
	return l
}
