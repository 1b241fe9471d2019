package service

import (
	"fmt"
	"strings"
	"time"

	"gvtools/internal/models"
)

const reportTimeLayout = "2006-01-02 15:04:05 MST"

// Formatter renders violation reports. Timestamps are shown in Location,
// or UTC when it is nil.
type Formatter struct {
	Location *time.Location
}

// Violation returns the report block for one quantity, or nil when the
// statistics stay inside r. format renders a canonical value (Celsius for
// temperatures).
func Violation[T models.Measure[T]](label string, s EventStats[T], r models.Range[T], format func(float64) string, loc *time.Location) []string {
	if s.Count == 0 {
		return nil
	}
	below := r.Below(s.MinValue)
	above := r.Above(s.MaxValue)

	var title string
	switch {
	case below && above:
		title = fmt.Sprintf("%s below %v and above %v", label, *r.Lower, *r.Upper)
	case below:
		title = fmt.Sprintf("%s below %v", label, *r.Lower)
	case above:
		title = fmt.Sprintf("%s above %v", label, *r.Upper)
	default:
		return nil
	}
	return []string{
		title,
		fmt.Sprintf("  Minimum: %s at %s", format(s.MinValue.Float()), stamp(s.Min.Timestamp, loc)),
		fmt.Sprintf("  Maximum: %s at %s", format(s.MaxValue.Float()), stamp(s.Max.Timestamp, loc)),
		fmt.Sprintf("  Average: %s", format(s.Average)),
	}
}

// Report lists every violation in st for device d. It is empty when
// everything is within range.
func (f Formatter) Report(d models.DeviceConfig, st Stats) []string {
	var lines []string
	for i, ts := range st.Temperatures {
		label := "Temperature"
		if i > 0 {
			label = fmt.Sprintf("Temperature %d", i+1)
		}
		lines = append(lines, Violation(label, ts, d.Temperature, TemperatureFormat(d.Temperature), f.Location)...)
	}
	lines = append(lines, Violation("Humidity", st.Humidity, d.Humidity, formatPercent, f.Location)...)

	// Only the lowest charge matters for the battery.
	if st.Battery.Count > 0 && d.Battery.Below(st.Battery.MinValue) {
		lines = append(lines,
			fmt.Sprintf("Battery below %v", *d.Battery.Lower),
			fmt.Sprintf("  Minimum: %v at %s", st.Battery.MinValue, stamp(st.Battery.Min.Timestamp, f.Location)),
		)
	}
	return lines
}

// DeviceReport is Report headed by the device, as one text block.
func (f Formatter) DeviceReport(d models.DeviceConfig, st Stats) string {
	lines := f.Report(d, st)
	if len(lines) == 0 {
		return ""
	}
	return d.String() + "\n" + strings.Join(lines, "\n")
}

// TemperatureFormat picks the display unit from the range. With both bounds
// set, values below the midpoint use the lower bound's unit and the rest use
// the upper bound's.
func TemperatureFormat(r models.Range[models.Temperature]) func(float64) string {
	return func(c float64) string {
		u := models.Celsius
		switch {
		case r.Lower != nil && r.Upper != nil:
			mid := (r.Lower.Celsius() + r.Upper.Celsius()) / 2
			if c < mid {
				u = r.Lower.Unit()
			} else {
				u = r.Upper.Unit()
			}
		case r.Lower != nil:
			u = r.Lower.Unit()
		case r.Upper != nil:
			u = r.Upper.Unit()
		}
		return models.CelsiusTemperature(c).Format(u, 2)
	}
}

func formatPercent(v float64) string { return fmt.Sprintf("%.1f%%", v) }

func stamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(reportTimeLayout)
}
