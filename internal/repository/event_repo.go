package repository

import (
	"context"
	"io"
	"time"

	"gvtools/internal/repository/logdir"
)

type EventDir struct {
	dir *logdir.Dir
}

func NewEventDir(dir *logdir.Dir) *EventDir { return &EventDir{dir: dir} }

// Open returns a scanner over paths in order. Files are opened one at a time
// as the scan reaches them, so a month that is never reached is never read.
func (r *EventDir) Open(ctx context.Context, paths []string, after time.Time) *EventScanner {
	sources := make([]source, 0, len(paths))
	for _, p := range paths {
		sources = append(sources, source{
			name: p,
			open: func() (io.Reader, io.Closer, error) {
				f, err := r.dir.Fs.Open(p)
				if err != nil {
					return nil, nil, err
				}
				return f, f, nil
			},
		})
	}
	return newEventScanner(ctx, after, sources)
}
