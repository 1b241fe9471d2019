package service

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"gvtools/internal/models"
	"gvtools/internal/repository"

	"github.com/charmbracelet/lipgloss"
)

const viewTimeLayout = "2006-01-02 15:04:05-07:00"

const columnSep = "  "

var outOfRange = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

type ViewerService struct {
	events repository.EventRepo
}

func NewViewerService(events repository.EventRepo) *ViewerService {
	return &ViewerService{events: events}
}

// Lines yields the display lines of c's log file, one per record. The header,
// when requested, comes right before the first record, so an empty log
// produces nothing. The returned func reports a read error once the sequence
// is exhausted.
func (s *ViewerService) Lines(ctx context.Context, c Candidate, p ViewParams) (iter.Seq[string], func() error) {
	sc := s.events.Open(ctx, []string{c.Path}, time.Time{})
	loc := p.Location
	if loc == nil {
		loc = time.Local
	}

	seq := func(yield func(string) bool) {
		defer sc.Close()
		first := true
		for ev := range sc.Events() {
			if first && p.Header {
				if !yield(c.Device.String()) || !yield(headerLine(len(ev.Temperatures))) {
					return
				}
			}
			first = false
			if !yield(formatRecord(ev, c.Device, p, loc)) {
				return
			}
		}
	}
	return seq, sc.Err
}

func headerLine(probes int) string {
	cols := []string{"Date                     "}
	for range probes {
		cols = append(cols, "  Temp.")
	}
	cols = append(cols, "   RH ", "Battery")
	return strings.Join(cols, columnSep)
}

func formatRecord(ev models.LogEvent, d models.DeviceConfig, p ViewParams, loc *time.Location) string {
	cols := make([]string, 0, len(ev.Temperatures)+3)
	cols = append(cols, ev.Timestamp.In(loc).Format(viewTimeLayout))
	for _, t := range ev.Temperatures {
		cell := fmt.Sprintf("%6.2f%s", t.In(p.Units), p.Units.Symbol())
		cols = append(cols, mark(cell, p.Highlight && !d.Temperature.Contains(t)))
	}
	cols = append(cols,
		mark(fmt.Sprintf("%5.1f%%", float64(ev.Humidity)), p.Highlight && !d.Humidity.Contains(ev.Humidity)),
		mark(fmt.Sprintf("[%3d%%]", int(ev.Battery)), p.Highlight && d.Battery.Below(ev.Battery)),
	)
	return strings.Join(cols, columnSep)
}

// mark styles the cell text, leaving its padding alone so columns still line
// up.
func mark(cell string, on bool) string {
	if !on {
		return cell
	}
	text := strings.TrimLeft(cell, " ")
	return cell[:len(cell)-len(text)] + outOfRange.Render(text)
}
