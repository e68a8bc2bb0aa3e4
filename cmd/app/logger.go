package main

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// GetLogger writes to w (stderr in main) so that command output on stdout stays
// machine readable. Debug mode forces the console format and debug level.
func GetLogger(w io.Writer, cfg LogConfig, debug bool) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	if debug {
		level = zerolog.DebugLevel
	}

	if debug || strings.ToLower(cfg.Format) == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
