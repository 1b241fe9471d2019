package repository

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"iter"
	"time"

	"gvtools/internal/models"
)

const maxLineBytes = 1 << 20

// source yields one reader of log lines. closer may be nil.
type source struct {
	name string
	open func() (io.Reader, io.Closer, error)
}

// EventScanner is a single forward pass over one or more log sources. It
// yields events lazily, skipping malformed lines and records before the
// cut-off. Use it like bufio.Scanner:
//
//	for sc.Scan() {
//		ev := sc.Event()
//	}
//	if err := sc.Err(); err != nil { ... }
type EventScanner struct {
	ctx     context.Context
	after   time.Time
	sources []source

	cur     *bufio.Scanner
	curName string
	closer  io.Closer

	ev      models.LogEvent
	err     error
	skipped int
}

// NewEventScanner scans r, dropping records before after. When after is set
// and r can seek, the scan starts from a binary search instead of the top.
func NewEventScanner(r io.Reader, after time.Time) *EventScanner {
	return newEventScanner(context.Background(), after, []source{{
		name: "input",
		open: func() (io.Reader, io.Closer, error) { return r, nil, nil },
	}})
}

func newEventScanner(ctx context.Context, after time.Time, sources []source) *EventScanner {
	return &EventScanner{ctx: ctx, after: after, sources: sources}
}

// Scan advances to the next event. It returns false at the end of the last
// source or on error.
func (s *EventScanner) Scan() bool {
	for s.err == nil {
		if s.cur == nil && !s.openNext() {
			return false
		}
		for s.cur.Scan() {
			ev, err := ParseLine(s.cur.Text())
			if err != nil {
				s.skipped++
				continue
			}
			if ev.Timestamp.Before(s.after) {
				continue
			}
			s.ev = ev
			return true
		}
		if err := s.cur.Err(); err != nil {
			s.err = fmt.Errorf("read %s: %w", s.curName, err)
		}
		s.closeCurrent()
	}
	return false
}

// Event returns the most recent event produced by Scan.
func (s *EventScanner) Event() models.LogEvent { return s.ev }

// Err returns the first non-EOF error encountered.
func (s *EventScanner) Err() error { return s.err }

// Skipped counts lines dropped as malformed so far.
func (s *EventScanner) Skipped() int { return s.skipped }

// Events adapts the scanner to a range-over-func sequence. Check Err after
// the loop.
func (s *EventScanner) Events() iter.Seq[models.LogEvent] {
	return func(yield func(models.LogEvent) bool) {
		for s.Scan() {
			if !yield(s.Event()) {
				return
			}
		}
	}
}

// Close releases the current source, if any.
func (s *EventScanner) Close() error {
	s.closeCurrent()
	s.sources = nil
	return nil
}

func (s *EventScanner) openNext() bool {
	if len(s.sources) == 0 {
		return false
	}
	if err := s.ctx.Err(); err != nil {
		s.err = err
		return false
	}
	src := s.sources[0]
	s.sources = s.sources[1:]

	r, c, err := src.open()
	if err != nil {
		s.err = fmt.Errorf("open %s: %w", src.name, err)
		return false
	}
	if rs, ok := r.(io.ReadSeeker); ok && !s.after.IsZero() {
		if err := SeekToTime(rs, s.after); err != nil {
			if c != nil {
				_ = c.Close()
			}
			s.err = fmt.Errorf("seek %s: %w", src.name, err)
			return false
		}
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)
	s.cur, s.curName, s.closer = sc, src.name, c
	return true
}

func (s *EventScanner) closeCurrent() {
	if s.closer != nil {
		_ = s.closer.Close()
	}
	s.cur, s.curName, s.closer = nil, "", nil
}
