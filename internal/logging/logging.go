// Package logging builds the diagnostic logger shared by all commands.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// EnvLevel names the environment variable that can force debug output.
const EnvLevel = "COMPACT_LOG"

const prefix = "compact"

// New returns a logger writing to w. Warnings and errors are always shown;
// debug records only when verbose is set.
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: prefix,
		Level:  level,
	})
}

// Verbose reports whether the environment value requests debug output.
func Verbose(envValue string) bool {
	switch strings.ToLower(strings.TrimSpace(envValue)) {
	case "debug", "1", "true":
		return true
	default:
		return false
	}
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// OrDiscard returns l, or a discard logger when l is nil.
func OrDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
