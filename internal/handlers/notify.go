package handlers

import (
	"context"
	"time"

	"gvtools/internal/service"

	"github.com/google/uuid"
)

// NotifyRequest bounds the check to [Now-Window, Now], both ends included.
type NotifyRequest struct {
	Now      time.Time
	Window   time.Duration
	Location *time.Location
}

// Notify checks every device and dispatches one message when any is out of
// range. A command failure comes back as *gvtools.CommandError.
func (h *Handler) Notify(ctx context.Context, req NotifyRequest) error {
	log := h.log.With("run", uuid.NewString())
	log.Infow("notify_started", "window", req.Window.String())

	checks, err := h.services.Notifier.Check(ctx, service.CheckParams{
		Now:      req.Now,
		Window:   req.Window,
		Location: req.Location,
	})
	if err != nil {
		return err
	}

	violations := 0
	for _, c := range checks {
		if c.Skipped > 0 {
			log.Debugw("malformed_lines_skipped", "device", c.Device.Address, "count", c.Skipped)
		}
		if !c.HasData {
			log.Infow("no_recent_data", "device", c.Device.String())
			continue
		}
		log.Debugw("device_checked", "device", c.Device.String(), "events", c.Stats.Count, "violation", c.Report != "")
		if c.Report != "" {
			violations++
		}
	}

	msg := h.services.Notifier.Message(checks)
	if msg == "" {
		log.Infow("all_in_range", "devices", len(checks))
		return nil
	}
	log.Infow("dispatching", "devices_out_of_range", violations)
	return h.Dispatch.Dispatch(ctx, msg)
}
