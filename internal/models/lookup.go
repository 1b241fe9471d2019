package models

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"time"
)

// YearMonth names one monthly log file period. Log periods are UTC.
type YearMonth struct {
	Year  int
	Month time.Month
}

// YearMonthOf returns the UTC period containing t.
func YearMonthOf(t time.Time) YearMonth {
	t = t.UTC()
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

var yearMonthRe = regexp.MustCompile(`^(\d+)-(\d+)$`)

// ParseYearMonth parses "YYYY-MM".
func ParseYearMonth(s string) (YearMonth, error) {
	m := yearMonthRe.FindStringSubmatch(s)
	if m == nil {
		return YearMonth{}, fmt.Errorf("invalid date %q: must be in the form YYYY-MM", s)
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return YearMonth{}, fmt.Errorf("invalid date %q: month out of range", s)
	}
	return YearMonth{Year: year, Month: time.Month(month)}, nil
}

func (ym YearMonth) String() string { return fmt.Sprintf("%d-%02d", ym.Year, int(ym.Month)) }

// Next returns the following month.
func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{Year: ym.Year + 1, Month: time.January}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

func (ym YearMonth) Compare(o YearMonth) int {
	if ym.Year != o.Year {
		return ym.Year - o.Year
	}
	return int(ym.Month) - int(o.Month)
}

// LogLookupTable maps a period to the log file path of every device that has
// one. It is a snapshot of the directory at scan time.
type LogLookupTable map[YearMonth]map[string]string

// Add records path as the log of address for period ym. An existing entry is
// kept.
func (t LogLookupTable) Add(ym YearMonth, address, path string) {
	byAddr, ok := t[ym]
	if !ok {
		byAddr = make(map[string]string)
		t[ym] = byAddr
	}
	if _, dup := byAddr[address]; !dup {
		byAddr[address] = path
	}
}

// Path returns the log file for address in period ym.
func (t LogLookupTable) Path(ym YearMonth, address string) (string, bool) {
	p, ok := t[ym][address]
	return p, ok
}

// Addresses returns the sorted addresses with a log for ym.
func (t LogLookupTable) Addresses(ym YearMonth) []string {
	out := make([]string, 0, len(t[ym]))
	for addr := range t[ym] {
		out = append(out, addr)
	}
	slices.Sort(out)
	return out
}

// AllAddresses returns every address in the table, sorted and deduplicated.
func (t LogLookupTable) AllAddresses() []string {
	seen := make(map[string]struct{})
	for _, byAddr := range t {
		for addr := range byAddr {
			seen[addr] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for addr := range seen {
		out = append(out, addr)
	}
	slices.Sort(out)
	return out
}

// PathsBetween returns, oldest first, the log files of address for every
// period from the one containing from through the one containing to.
func (t LogLookupTable) PathsBetween(address string, from, to time.Time) []string {
	var out []string
	last := YearMonthOf(to)
	for ym := YearMonthOf(from); ym.Compare(last) <= 0; ym = ym.Next() {
		if p, ok := t.Path(ym, address); ok {
			out = append(out, p)
		}
	}
	return out
}
