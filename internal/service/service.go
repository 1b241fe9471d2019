package service

import (
	"context"
	"iter"
	"time"

	"gvtools/internal/models"
	"gvtools/internal/repository"
)

// Devices finds the thermometers that have logs for a month.
type Devices interface {
	Find(ctx context.Context, period models.YearMonth, query string) ([]Candidate, error)
}

// Viewer renders one device's monthly log for display.
type Viewer interface {
	Lines(ctx context.Context, c Candidate, p ViewParams) (iter.Seq[string], func() error)
}

// Notifier checks recent readings against the effective ranges.
type Notifier interface {
	Check(ctx context.Context, p CheckParams) ([]DeviceCheck, error)
	Message(checks []DeviceCheck) string
}

type Service struct {
	Devices
	Viewer
	Notifier
}

// ViewParams control how the viewer renders records.
type ViewParams struct {
	Units    models.Unit
	Location *time.Location
	Header   bool
	// Highlight marks cells outside the device's ranges.
	Highlight bool
}

// CheckParams bound the notifier's window to [Now-Window, Now], both ends included.
type CheckParams struct {
	Now      time.Time
	Window   time.Duration
	Location *time.Location
}

func NewService(repos *repository.Repository, resolver *Resolver) *Service {
	return &Service{
		Devices:  NewDeviceService(repos.Lookup, resolver),
		Viewer:   NewViewerService(repos.Events),
		Notifier: NewNotifierService(repos.Lookup, repos.Events, resolver),
	}
}
