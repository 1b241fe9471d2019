package models

import "time"

// MaxTemperatures is the most probes a single record may report.
const MaxTemperatures = 4

// LogEvent is one parsed log record. Temperatures[0] is the primary probe.
type LogEvent struct {
	Timestamp    time.Time
	Temperatures []Temperature
	Humidity     Percent
	Battery      Battery
	Model        string // set only on multi-probe records
}

// Temperature returns the reading from probe slot i, if the record has one.
func (e LogEvent) Temperature(i int) (Temperature, bool) {
	if i < 0 || i >= len(e.Temperatures) {
		return Temperature{}, false
	}
	return e.Temperatures[i], true
}
