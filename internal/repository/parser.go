package repository

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"gvtools"
	"gvtools/internal/models"
)

// Record layout, whitespace separated:
//
//	2022-06-20 15:42:48  -15.49  86.3  35  [MODEL TEMP2 [TEMP3 [TEMP4]]]
//
// The date and time may also be joined by 'T'. Timestamps carry no zone and
// are UTC.
var recordRe = regexp.MustCompile(`^` +
	`(\d{4}-\d{2}-\d{2})(?:T|\s+)(\d{2}:\d{2}:\d{2})` +
	`\s+(` + models.DecimalPattern + `)` + // primary temperature
	`\s+(\d+(?:\.\d*)?)` + // humidity
	`\s+(\d+)` + // battery
	`(?:\s+(\S+)\s+(` + models.DecimalPattern + `)(?:\s+(` + models.DecimalPattern + `))?(?:\s+(` + models.DecimalPattern + `))?)?` + // model, extra temperatures
	`\s*$`)

const recordTimeLayout = "2006-01-02 15:04:05"

// ParseLine parses one log record. Any line that does not match the layout
// returns an error wrapping gvtools.ErrMalformedRecord.
func ParseLine(line string) (models.LogEvent, error) {
	m := recordRe.FindStringSubmatch(line)
	if m == nil {
		return models.LogEvent{}, gvtools.ErrMalformedRecord
	}

	ts, err := time.ParseInLocation(recordTimeLayout, m[1]+" "+m[2], time.UTC)
	if err != nil {
		return models.LogEvent{}, fmt.Errorf("%w: timestamp: %v", gvtools.ErrMalformedRecord, err)
	}

	temps := make([]models.Temperature, 0, models.MaxTemperatures)
	for _, s := range []string{m[3], m[7], m[8], m[9]} {
		if s == "" {
			continue
		}
		c, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return models.LogEvent{}, fmt.Errorf("%w: temperature %q", gvtools.ErrMalformedRecord, s)
		}
		temps = append(temps, models.CelsiusTemperature(c))
	}

	humidity, err := strconv.ParseFloat(m[4], 64)
	if err != nil {
		return models.LogEvent{}, fmt.Errorf("%w: humidity %q", gvtools.ErrMalformedRecord, m[4])
	}
	battery, err := strconv.Atoi(m[5])
	if err != nil || battery > 100 {
		return models.LogEvent{}, fmt.Errorf("%w: battery %q", gvtools.ErrMalformedRecord, m[5])
	}

	return models.LogEvent{
		Timestamp:    ts,
		Temperatures: temps,
		Humidity:     models.Percent(humidity),
		Battery:      models.Battery(battery),
		Model:        m[6],
	}, nil
}
