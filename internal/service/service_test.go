package service

import (
	"context"
	"testing"
	"time"

	"gvtools/internal/config"
	"gvtools/internal/repository"
	"gvtools/internal/repository/logdir"

	"github.com/spf13/afero"
)

const (
	addrFreezer = "A4:C1:38:00:00:01"
	addrFridge  = "A4:C1:38:00:00:02"
	addrGarage  = "A4:C1:38:00:00:03"
)

func testCtx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

// logRepos writes files into /logs on an in-memory filesystem and wires the
// real repositories on top of it.
func logRepos(t *testing.T, files map[string]string) *repository.Repository {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/logs", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for name, body := range files {
		if err := afero.WriteFile(fs, "/logs/"+name, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	dir, err := logdir.Open(fs, "/logs")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return repository.NewRepository(dir)
}

func set(v string) config.Setting { return config.Setting{Value: v, Set: true} }

func mustResolver(t *testing.T, f *config.File) *Resolver {
	t.Helper()
	r, err := NewResolver(f)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	return r
}

func at(s string) time.Time {
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return ts
}
