package handlers

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"time"

	"gvtools/internal/models"
	"gvtools/internal/service"
)

// ErrCancelled is returned when the user backs out of the device prompt. It
// is not reported as a failure.
var ErrCancelled = errors.New("cancelled")

// ViewRequest is what the viewer was asked to show.
type ViewRequest struct {
	Period   models.YearMonth // zero means the current month (UTC)
	Query    string
	Units    models.Unit
	Location *time.Location
	Header   bool
}

// ViewLog selects a device with logs for the period and pages its records.
func (h *Handler) ViewLog(ctx context.Context, req ViewRequest) error {
	period := req.Period
	if period == (models.YearMonth{}) {
		period = models.YearMonthOf(time.Now())
	}

	candidates, err := h.services.Devices.Find(ctx, period, req.Query)
	if err != nil {
		return err
	}

	choice := 0
	if len(candidates) > 1 {
		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = c.Device.String()
		}
		idx, ok, err := h.Prompt.Choose(fmt.Sprintf("Govee thermometers found for %s:", period), names)
		if err != nil {
			return err
		}
		if !ok {
			return ErrCancelled
		}
		choice = idx
	}
	c := candidates[choice]
	h.log.Debugw("device_selected", "device", c.Device.String(), "path", c.Path)

	out, err := h.Pager.Open()
	if err != nil {
		return err
	}
	lines, readErr := h.services.Viewer.Lines(ctx, c, service.ViewParams{
		Units:     req.Units,
		Location:  req.Location,
		Header:    req.Header,
		Highlight: h.Pager.IsTerminal(),
	})

	var writeErr error
	for line := range lines {
		if _, writeErr = fmt.Fprintln(out, line); writeErr != nil {
			break
		}
	}
	closeErr := out.Close()

	// The reader quitting the pager early is not an error.
	if writeErr != nil && !errors.Is(writeErr, syscall.EPIPE) {
		return writeErr
	}
	if err := readErr(); err != nil {
		return err
	}
	if closeErr != nil && !errors.Is(closeErr, syscall.EPIPE) {
		return closeErr
	}
	return nil
}
