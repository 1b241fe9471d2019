// Command gv-notify checks recent readings of every thermometer against the
// configured ranges and sends one notification when any is out of range.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gvtools"
	"gvtools/internal/config"
	"gvtools/internal/handlers"
	"gvtools/internal/logger"
	"gvtools/internal/repository"
	"gvtools/internal/repository/logdir"
	"gvtools/internal/service"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := afero.NewOsFs()

	settings, err := config.Parse(config.Notifier, args, fs)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	// pflag already printed the problem and the usage.
	var usage *config.UsageError
	if errors.As(err, &usage) {
		return 2
	}
	log := logger.New(logger.DefaultLevel, os.Stderr)
	if settings != nil {
		log = logger.New(settings.LogLevel, os.Stderr)
	}
	if err != nil {
		log.Errorw("invalid configuration", "err", err)
		return 1
	}

	// All configuration is checked before any log is read.
	resolver, err := service.NewResolver(settings.File)
	if err != nil {
		log.Errorw("invalid configuration", "err", err)
		return 1
	}
	dispatch, err := handlers.NewCommandDispatcher(settings.NotifyCommand, settings.DryRun, os.Stdout, os.Stderr)
	if err != nil {
		log.Errorw("invalid configuration", "err", err)
		return 1
	}

	dir, err := logdir.Open(fs, settings.LogDirectory)
	if err != nil {
		log.Errorw("cannot open log directory", "err", err)
		return 1
	}

	// wire dependencies
	repos := repository.NewRepository(dir)
	services := service.NewService(repos, resolver)
	h := handlers.NewHandler(services, log)
	h.Dispatch = dispatch

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = h.Notify(ctx, handlers.NotifyRequest{
		Now:      time.Now(),
		Window:   settings.Window,
		Location: settings.Location(),
	})
	if err == nil {
		return 0
	}

	var ce *gvtools.CommandError
	if errors.As(err, &ce) {
		log.Warnw("notification command failed", "command", ce.Command, "status", ce.ExitCode)
		if ce.ExitCode > 0 {
			return ce.ExitCode
		}
		return 1
	}
	log.Errorw("notify failed", "err", err)
	return 1
}
