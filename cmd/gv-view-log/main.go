// Command gv-view-log pages one thermometer's monthly log.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

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

	// load flags, environment and config file
	settings, err := config.Parse(config.Viewer, args, fs)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	// pflag already printed the problem and the usage.
	var usage *config.UsageError
	if errors.As(err, &usage) {
		return 2
	}
	log := logger.New(levelOf(settings), os.Stderr)
	if err != nil {
		return fail(log, "invalid configuration", err)
	}

	resolver, err := service.NewResolver(settings.File)
	if err != nil {
		return fail(log, "invalid configuration", err)
	}

	dir, err := logdir.Open(fs, settings.LogDirectory)
	if err != nil {
		return fail(log, "cannot open log directory", err)
	}

	// wire dependencies
	repos := repository.NewRepository(dir)
	services := service.NewService(repos, resolver)
	h := handlers.NewHandler(services, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = h.ViewLog(ctx, handlers.ViewRequest{
		Period:   settings.Period,
		Query:    settings.Query,
		Units:    settings.Units,
		Location: settings.Location(),
		Header:   settings.Header,
	})
	switch {
	case err == nil:
		return 0
	case errors.Is(err, handlers.ErrCancelled):
		return 1
	default:
		return fail(log, "view failed", err)
	}
}

func levelOf(s *config.Settings) string {
	if s == nil {
		return logger.DefaultLevel
	}
	return s.LogLevel
}

func fail(log *logger.Logger, msg string, err error) int {
	log.Errorw(msg, "err", err)
	return 1
}
