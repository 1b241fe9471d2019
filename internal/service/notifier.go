package service

import (
	"context"
	"errors"
	"iter"
	"strings"
	"time"

	"gvtools/internal/models"
	"gvtools/internal/repository"
)

var errNonPositiveWindow = errors.New("window must be positive")

// DeviceCheck is the outcome for one device. HasData is false when the window
// held no readings; Report is empty when nothing was out of range.
type DeviceCheck struct {
	Device  models.DeviceConfig
	Stats   Stats
	HasData bool
	Report  string
	Skipped int
}

type NotifierService struct {
	lookup   repository.LookupRepo
	events   repository.EventRepo
	resolver *Resolver
}

func NewNotifierService(lookup repository.LookupRepo, events repository.EventRepo, resolver *Resolver) *NotifierService {
	return &NotifierService{lookup: lookup, events: events, resolver: resolver}
}

// window returns the UTC bounds of the check. Both ends are included.
func window(p CheckParams) (after, now time.Time, err error) {
	if p.Window <= 0 {
		return time.Time{}, time.Time{}, errNonPositiveWindow
	}
	now = p.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	return now.Add(-p.Window), now, nil
}

// Check aggregates the window for every device that has logs in it. Devices
// are returned configured first, then by address.
func (s *NotifierService) Check(ctx context.Context, p CheckParams) ([]DeviceCheck, error) {
	after, now, err := window(p)
	if err != nil {
		return nil, err
	}
	table, err := s.lookup.Build(ctx)
	if err != nil {
		return nil, err
	}
	f := Formatter{Location: p.Location}

	var checks []DeviceCheck
	for _, d := range s.resolver.Devices(table.AllAddresses()) {
		paths := table.PathsBetween(d.Address, after, now)
		if len(paths) == 0 {
			continue
		}
		check, err := s.checkDevice(ctx, d, paths, after, now, f)
		if err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}
	return checks, nil
}

func (s *NotifierService) checkDevice(ctx context.Context, d models.DeviceConfig, paths []string, after, now time.Time, f Formatter) (DeviceCheck, error) {
	sc := s.events.Open(ctx, paths, after)
	defer sc.Close()

	stats, ok := Aggregate(until(sc.Events(), now), after)
	if err := sc.Err(); err != nil {
		return DeviceCheck{}, err
	}
	check := DeviceCheck{Device: d, Stats: stats, HasData: ok, Skipped: sc.Skipped()}
	if ok {
		check.Report = f.DeviceReport(d, stats)
	}
	return check, nil
}

// until drops records stamped after now.
func until(events iter.Seq[models.LogEvent], now time.Time) iter.Seq[models.LogEvent] {
	return func(yield func(models.LogEvent) bool) {
		for ev := range events {
			if ev.Timestamp.After(now) {
				continue
			}
			if !yield(ev) {
				return
			}
		}
	}
}

// Message joins the device reports with blank lines. It is empty when no
// device is out of range.
func (s *NotifierService) Message(checks []DeviceCheck) string {
	var blocks []string
	for _, c := range checks {
		if c.Report != "" {
			blocks = append(blocks, c.Report)
		}
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}
