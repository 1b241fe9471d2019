package repository

import (
	"bufio"
	"io"
	"time"
)

// SeekToTime positions rs at the start of the first line whose record is not
// before t, assuming records are sorted by time. Lines that fail to parse are
// stepped over. If every record is before t, rs is left at the end.
func SeekToTime(rs io.ReadSeeker, t time.Time) error {
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}

	lo, hi := int64(0), size
	for lo < hi {
		mid := lo + (hi-lo)/2
		start, ts, found, err := firstRecordFrom(rs, mid)
		if err != nil {
			return err
		}
		if !found || !ts.Before(t) {
			hi = mid
		} else {
			// Every record starting at or before start is older than t.
			lo = start + 1
		}
	}

	pos, _, err := lineStartFrom(rs, lo)
	if err != nil {
		return err
	}
	_, err = rs.Seek(pos, io.SeekStart)
	return err
}

// lineStartFrom returns the offset of the first line beginning at or after
// off, and a reader positioned there.
func lineStartFrom(rs io.ReadSeeker, off int64) (int64, *bufio.Reader, error) {
	if off <= 0 {
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return 0, nil, err
		}
		return 0, bufio.NewReader(rs), nil
	}

	// Reading from off-1 through the next newline lands exactly on off when
	// off already starts a line.
	if _, err := rs.Seek(off-1, io.SeekStart); err != nil {
		return 0, nil, err
	}
	br := bufio.NewReader(rs)
	partial, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return 0, nil, err
	}
	return off - 1 + int64(len(partial)), br, nil
}

// firstRecordFrom finds the first parseable record on a line beginning at or
// after off.
func firstRecordFrom(rs io.ReadSeeker, off int64) (start int64, ts time.Time, found bool, err error) {
	pos, br, err := lineStartFrom(rs, off)
	if err != nil {
		return 0, time.Time{}, false, err
	}
	for {
		line, rerr := br.ReadString('\n')
		if len(line) > 0 {
			if ev, perr := ParseLine(line); perr == nil {
				return pos, ev.Timestamp, true, nil
			}
			pos += int64(len(line))
		}
		if rerr == io.EOF {
			return pos, time.Time{}, false, nil
		}
		if rerr != nil {
			return 0, time.Time{}, false, rerr
		}
	}
}
