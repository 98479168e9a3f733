// Package obslog configures the structured logger shared by the
// annealing driver and MMC engine.
//
// Grounded in joeycumines-go-utilpkg/logiface-zerolog, which adapts
// github.com/rs/zerolog for leveled structured logging; this package
// uses zerolog directly rather than the logiface abstraction, since
// the simulation has a single well-known sink (the console) and no
// need for logiface's backend-swapping.
package obslog

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New configures a console-writer zerolog.Logger at Info level, or
// Debug when verbose is set (enabling the MMC engine's per-iteration
// accept/reject events).
func New(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(writer).With().Timestamp().Logger().Level(level)
}
