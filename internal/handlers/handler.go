package handlers

import (
	"context"
	"io"
	"os"

	"gvtools/internal/logger"
	"gvtools/internal/service"
)

// Prompter asks the user to pick one of choices. ok is false when the user
// cancelled.
type Prompter interface {
	Choose(preamble string, choices []string) (index int, ok bool, err error)
}

// Pager receives the viewer's output. Close waits for the pager to exit.
type Pager interface {
	Open() (io.WriteCloser, error)
	// IsTerminal reports whether output ends up on a terminal, where
	// highlighting makes sense.
	IsTerminal() bool
}

// Dispatcher delivers a notification message.
type Dispatcher interface {
	Dispatch(ctx context.Context, message string) error
}

// Handler drives the two commands on top of the services. The collaborators
// default to the process's terminal and can be replaced before use.
type Handler struct {
	services *service.Service
	log      *logger.Logger

	Prompt   Prompter
	Pager    Pager
	Dispatch Dispatcher
}

// NewHandler constructs a handler with terminal collaborators. Dispatch is
// left to the caller since it depends on configuration.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		services: services,
		log:      log,
		Prompt:   &NumberedPrompt{In: os.Stdin, Out: os.Stderr},
		Pager:    NewTerminalPager(os.Stdout),
	}
}
