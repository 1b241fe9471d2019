package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gvtools"
	"gvtools/internal/logger"
	"gvtools/internal/models"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Command selects which flag set Parse builds.
type Command int

const (
	Viewer Command = iota + 1
	Notifier
)

func (c Command) String() string {
	if c == Notifier {
		return "gv-notify"
	}
	return "gv-view-log"
}

// Option keys. They double as flag names; the environment form is
// GVTOOLS_<KEY> with dashes as underscores.
const (
	optConfig       = "config"
	optLogDirectory = "log-directory"
	optLogLevel     = "log-level"
	optUTC          = "utc"
	optDate         = "date"
	optUnits        = "units"
	optHeader       = "header"
	optWindow       = "window"
	optDryRun       = "dry-run"

	envPrefix = "GVTOOLS"
)

// DefaultWindow is how far back the notifier looks when nothing is configured.
const DefaultWindow = time.Hour

// DefaultConfigPath is used when --config is not given.
func DefaultConfigPath() string {
	return expandHome("~/.config/gv-tools/gv-tools.rc")
}

// Settings is the fully merged configuration for one run. Precedence is flag,
// then environment, then config file, then built-in default.
type Settings struct {
	File *File

	LogDirectory string
	LogLevel     string
	UTC          bool

	// Viewer
	Period models.YearMonth // zero means the current month
	Units  models.Unit
	Header bool
	Query  string

	// Notifier
	Window        time.Duration
	DryRun        bool
	NotifyCommand string
}

// Location is where timestamps are shown.
func (s *Settings) Location() *time.Location {
	if s.UTC {
		return time.UTC
	}
	return time.Local
}

// NewFlagSet returns the flags for cmd.
func NewFlagSet(cmd Command) *pflag.FlagSet {
	fs := pflag.NewFlagSet(cmd.String(), pflag.ContinueOnError)
	fs.SortFlags = false
	fs.String(optConfig, "", "path to the configuration file; may be a gvh-titlemap.txt file (default "+DefaultConfigPath()+")")
	fs.String(optLogDirectory, "", "directory containing the logger's gvh-*.txt files")
	fs.String(optLogLevel, logger.DefaultLevel, "diagnostic log level: debug, info, warn or error")
	fs.Bool(optUTC, false, "show times as UTC instead of local time")

	switch cmd {
	case Viewer:
		fs.String(optDate, "", "the YEAR-MONTH to print logs for (UTC); defaults to the current month")
		fs.String(optUnits, "c", "temperature units to show: c, celsius, f or fahrenheit")
		fs.Bool(optHeader, true, "print the device name and column headings")
	case Notifier:
		fs.String(optWindow, "", "how far back to check, e.g. 90m or 2h (default "+DefaultWindow.String()+")")
		fs.Bool(optDryRun, false, "print the notification instead of running the notify command")
	}
	return fs
}

// UsageError is a command line pflag could not parse. pflag has already
// printed it along with the usage, so callers should not report it again.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// Parse parses args for cmd, reads the configuration file and merges all
// layers. It returns pflag.ErrHelp when help was requested.
func Parse(cmd Command, args []string, afs afero.Fs) (*Settings, error) {
	fs := NewFlagSet(cmd)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, err
		}
		return nil, &UsageError{Err: err}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	configPath := v.GetString(optConfig)
	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigPath()
	}
	file, err := LoadFile(afs, expandHome(configPath), explicit)
	if err != nil {
		return nil, err
	}

	// The file sits between the environment and the defaults.
	fileLayer := map[string]any{}
	if file.LogDirectory != "" {
		fileLayer[optLogDirectory] = file.LogDirectory
	}
	if file.Window != "" {
		fileLayer[optWindow] = file.Window
	}
	if err := v.MergeConfigMap(fileLayer); err != nil {
		return nil, err
	}

	s := &Settings{
		File:          file,
		LogDirectory:  expandHome(v.GetString(optLogDirectory)),
		LogLevel:      v.GetString(optLogLevel),
		UTC:           v.GetBool(optUTC),
		NotifyCommand: file.NotifyCommand,
	}
	if s.LogDirectory == "" {
		if s.LogDirectory, err = os.Getwd(); err != nil {
			return nil, err
		}
	}

	switch cmd {
	case Viewer:
		if err := s.parseViewer(v, fs.Args()); err != nil {
			return nil, err
		}
	case Notifier:
		if err := s.parseNotifier(v, fs.Args()); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Settings) parseViewer(v *viper.Viper, args []string) error {
	if len(args) > 1 {
		return &gvtools.ConfigError{Key: argsKey, Value: strings.Join(args, " "), Err: fmt.Errorf("expected at most one device name, got %d", len(args))}
	}
	if len(args) == 1 {
		s.Query = args[0]
	}

	if date := v.GetString(optDate); date != "" {
		ym, err := models.ParseYearMonth(date)
		if err != nil {
			return &gvtools.ConfigError{Key: optDate, Value: date, Err: err}
		}
		s.Period = ym
	}

	u, err := models.ParseUnit(v.GetString(optUnits))
	if err != nil {
		return &gvtools.ConfigError{Key: optUnits, Value: v.GetString(optUnits), Err: err}
	}
	s.Units = u
	s.Header = v.GetBool(optHeader)
	return nil
}

// argsKey names positional arguments in a ConfigError.
const argsKey = "arguments"

var (
	errNonPositiveWindow = errors.New("window must be positive")
	errUnexpectedArgs    = errors.New("unexpected arguments")
)

func (s *Settings) parseNotifier(v *viper.Viper, args []string) error {
	if len(args) > 0 {
		return &gvtools.ConfigError{Key: argsKey, Value: strings.Join(args, " "), Err: errUnexpectedArgs}
	}

	s.Window = DefaultWindow
	if raw := strings.TrimSpace(v.GetString(optWindow)); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return &gvtools.ConfigError{Key: SectionNotify + "." + KeyWindow, Value: raw, Err: err}
		}
		if d <= 0 {
			return &gvtools.ConfigError{Key: SectionNotify + "." + KeyWindow, Value: raw, Err: errNonPositiveWindow}
		}
		s.Window = d
	}
	s.DryRun = v.GetBool(optDryRun)
	return nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
