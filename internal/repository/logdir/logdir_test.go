package logdir

import (
	"errors"
	"testing"

	"gvtools"

	"github.com/spf13/afero"
)

func TestOpen(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/var/log/govee", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := afero.WriteFile(fs, "/var/log/govee/notes.txt", []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cases := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "directory", path: "/var/log/govee/"},
		{name: "missing", path: "/nope", wantErr: true},
		{name: "regular file", path: "/var/log/govee/notes.txt", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			d, err := Open(fs, tc.path)
			if !tc.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if d.Path != "/var/log/govee" {
					t.Errorf("path not cleaned: %q", d.Path)
				}
				if d.Join("a.txt") != "/var/log/govee/a.txt" {
					t.Errorf("unexpected join %q", d.Join("a.txt"))
				}
				return
			}
			var dae *gvtools.DirectoryAccessError
			if !errors.As(err, &dae) {
				t.Fatalf("want DirectoryAccessError, got %v", err)
			}
		})
	}
}
