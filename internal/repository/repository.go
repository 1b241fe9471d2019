package repository

import (
	"context"
	"time"

	"gvtools/internal/models"
	"gvtools/internal/repository/logdir"
)

// LookupRepo indexes the log directory by period and device.
type LookupRepo interface {
	Build(ctx context.Context) (models.LogLookupTable, error)
	// Root is the directory being indexed, for error messages.
	Root() string
}

// EventRepo streams parsed events out of log files.
type EventRepo interface {
	Open(ctx context.Context, paths []string, after time.Time) *EventScanner
}

type Repository struct {
	Lookup LookupRepo
	Events EventRepo
}

func NewRepository(dir *logdir.Dir) *Repository {
	return &Repository{
		Lookup: NewLookupDir(dir),
		Events: NewEventDir(dir),
	}
}
