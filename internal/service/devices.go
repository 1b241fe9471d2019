package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"gvtools"
	"gvtools/internal/models"
	"gvtools/internal/repository"
)

// Candidate is a device with a log file for the requested month.
type Candidate struct {
	Device models.DeviceConfig
	Path   string
}

// NoMatchesError means no device with logs matched the query.
type NoMatchesError struct {
	Query string
}

func (e *NoMatchesError) Error() string {
	return fmt.Sprintf("No matches to %q found.", e.Query)
}

type DeviceService struct {
	lookup   repository.LookupRepo
	resolver *Resolver
}

func NewDeviceService(lookup repository.LookupRepo, resolver *Resolver) *DeviceService {
	return &DeviceService{lookup: lookup, resolver: resolver}
}

// Find returns configured devices first, in file order, then unconfigured
// addresses, keeping those whose "Name (ADDRESS)" contains query regardless
// of case. An empty query matches everything.
func (s *DeviceService) Find(ctx context.Context, period models.YearMonth, query string) ([]Candidate, error) {
	table, err := s.lookup.Build(ctx)
	if err != nil {
		return nil, err
	}
	addresses := table.Addresses(period)
	if len(addresses) == 0 {
		return nil, &gvtools.NoLogsFoundError{Dir: s.lookup.Root(), Period: period.String()}
	}

	q := strings.ToLower(query)
	var found []Candidate
	for _, d := range s.resolver.Devices(addresses) {
		// Configured devices without logs this month are not offered.
		if !slices.Contains(addresses, d.Address) {
			continue
		}
		if !strings.Contains(strings.ToLower(d.String()), q) {
			continue
		}
		path, _ := table.Path(period, d.Address)
		found = append(found, Candidate{Device: d, Path: path})
	}
	if len(found) == 0 {
		return nil, &NoMatchesError{Query: query}
	}
	return found, nil
}
