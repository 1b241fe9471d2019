package logger

import (
	"io"
	"os"
)

// Log levels accepted by --log-level.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// DefaultLevel keeps ordinary runs quiet; stdout carries the real output.
const DefaultLevel = WarnLevel

// New returns a logger writing to w at the given level. A nil w means stderr.
func New(level string, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return newZapLogger(level, w)
}

// Nop returns a logger that discards everything; handy in tests.
func Nop() *Logger {
	return New(ErrorLevel, io.Discard)
}
