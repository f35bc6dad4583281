// Package logging defines the narrow logging contract used across the
// instantiation pipeline: a single Printf method so any of log.Logger,
// zap's SugaredLogger, or a test recorder can satisfy it without an adapter
// package.
package logging

import (
	"log"
	"os"
)

// Logger is the minimal logging contract the engine depends on.
type Logger interface {
	Printf(format string, v ...any)
}

// stdLogger adapts the standard library logger to Logger.
type stdLogger struct {
	l *log.Logger
}

func (s *stdLogger) Printf(format string, v ...any) {
	s.l.Printf(format, v...)
}

// Default returns a Logger backed by log.Logger writing to stderr, used
// whenever the caller does not supply one of their own via engine.WithLogger.
func Default() Logger {
	return &stdLogger{l: log.New(os.Stderr, "components: ", log.LstdFlags)}
}

// Discard is a Logger that drops everything, useful in tests that want to
// assert on behavior without stderr noise.
type discard struct{}

func (discard) Printf(string, ...any) {}

// Discard returns a Logger that silently drops all messages.
func Discard() Logger {
	return discard{}
}
