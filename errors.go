// Package gvtools holds the error taxonomy shared by the log viewer and the
// notifier.
package gvtools

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord marks a log line that does not match the record layout.
// Readers skip such lines; it never reaches the user.
var ErrMalformedRecord = errors.New("malformed log record")

// ConfigError is a bad configuration value. It is fatal and is raised before
// any log file is read.
type ConfigError struct {
	Key   string // e.g. "AA:BB:CC:DD:EE:FF.max_temperature"
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Key == "":
		return fmt.Sprintf("invalid configuration: %v", e.Err)
	case e.Value == "":
		return fmt.Sprintf("invalid configuration for %s: %v", e.Key, e.Err)
	default:
		return fmt.Sprintf("invalid configuration for %s (%q): %v", e.Key, e.Value, e.Err)
	}
}

func (e *ConfigError) Unwrap() error { return e.Err }

// DirectoryAccessError is returned when the log directory cannot be read.
type DirectoryAccessError struct {
	Path string
	Err  error
}

func (e *DirectoryAccessError) Error() string {
	return fmt.Sprintf("cannot read log directory %q: %v", e.Path, e.Err)
}

func (e *DirectoryAccessError) Unwrap() error { return e.Err }

// NoLogsFoundError is returned when a directory holds no log files, or none
// for the requested period.
type NoLogsFoundError struct {
	Dir    string
	Period string // "YYYY-MM"; empty means any period
}

func (e *NoLogsFoundError) Error() string {
	if e.Period == "" {
		return fmt.Sprintf("No log files found in %s", e.Dir)
	}
	return fmt.Sprintf("No log files found in %s for %s.", e.Dir, e.Period)
}

// CommandError carries the exit status of a notification command that did
// not succeed. The notifier exits with the same status.
type CommandError struct {
	Command  string
	ExitCode int
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("notification command %q exited with status %d", e.Command, e.ExitCode)
}
