package repository

import (
	"context"
	"regexp"
	"strconv"
	"time"

	"gvtools"
	"gvtools/internal/models"
	"gvtools/internal/repository/logdir"

	"github.com/spf13/afero"
)

// Log files are named gvh-<ADDRESS>-<YYYY>-<MM>.txt; older logger releases
// wrote gvh507x_<ADDRESS>-<YYYY>-<MM>.txt.
var logFileRe = regexp.MustCompile(`^gvh(?:-|507x_)([0-9A-Fa-f]{12})-(\d{4})-(\d{2})\.txt$`)

type LookupDir struct {
	dir *logdir.Dir
}

func NewLookupDir(dir *logdir.Dir) *LookupDir { return &LookupDir{dir: dir} }

func (r *LookupDir) Root() string { return r.dir.Path }

// Build scans the directory once. Files that do not follow the naming scheme
// are ignored. Finding none at all is a NoLogsFoundError.
func (r *LookupDir) Build(ctx context.Context) (models.LogLookupTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	infos, err := afero.ReadDir(r.dir.Fs, r.dir.Path)
	if err != nil {
		return nil, &gvtools.DirectoryAccessError{Path: r.dir.Path, Err: err}
	}

	table := make(models.LogLookupTable)
	for _, fi := range infos {
		if fi.IsDir() {
			continue
		}
		ym, address, ok := parseLogFileName(fi.Name())
		if !ok {
			continue
		}
		table.Add(ym, address, r.dir.Join(fi.Name()))
	}
	if len(table) == 0 {
		return nil, &gvtools.NoLogsFoundError{Dir: r.dir.Path}
	}
	return table, nil
}

func parseLogFileName(name string) (models.YearMonth, string, bool) {
	m := logFileRe.FindStringSubmatch(name)
	if m == nil {
		return models.YearMonth{}, "", false
	}
	year, _ := strconv.Atoi(m[2])
	month, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 {
		return models.YearMonth{}, "", false
	}
	return models.YearMonth{Year: year, Month: time.Month(month)}, models.ChunkAddress(m[1]), true
}
