package service

import (
	"iter"
	"time"

	"gvtools/internal/models"
)

// EventStats summarizes one quantity over a window. Min and Max are the
// events that carried MinValue and MaxValue.
type EventStats[T models.Measure[T]] struct {
	Min      models.LogEvent
	Max      models.LogEvent
	MinValue T
	MaxValue T
	Average  float64
	Count    int
}

// Stats is the result of one aggregation. Temperatures is indexed by probe
// slot; a slot only some records report is summarized over those records.
type Stats struct {
	Temperatures []EventStats[models.Temperature]
	Humidity     EventStats[models.Percent]
	Battery      EventStats[models.Battery]
	Count        int
	First, Last  time.Time
}

// accumulator folds samples of one quantity. Ties keep the earlier event.
type accumulator[T models.Measure[T]] struct {
	stats EventStats[T]

	prev     time.Time
	weighted float64
	weight   float64
	plainSum float64
}

func (a *accumulator[T]) add(ev models.LogEvent, v T, after time.Time) {
	s := &a.stats
	if s.Count == 0 || v.Compare(s.MinValue) < 0 {
		s.Min, s.MinValue = ev, v
	}
	if s.Count == 0 || v.Compare(s.MaxValue) > 0 {
		s.Max, s.MaxValue = ev, v
	}
	s.Count++

	start := a.prev
	if start.IsZero() {
		start = after
	}
	var w float64
	if !start.IsZero() && ev.Timestamp.After(start) {
		w = ev.Timestamp.Sub(start).Seconds()
	}
	a.weighted += w * v.Float()
	a.weight += w
	a.plainSum += v.Float()
	a.prev = ev.Timestamp
}

func (a *accumulator[T]) result() EventStats[T] {
	s := a.stats
	switch {
	case s.Count == 0:
	case a.weight > 0:
		s.Average = a.weighted / a.weight
	default:
		s.Average = a.plainSum / float64(s.Count)
	}
	// Rounding may nudge the mean just past the extremes.
	if s.Count > 0 {
		s.Average = min(max(s.Average, s.MinValue.Float()), s.MaxValue.Float())
	}
	return s
}

// Aggregate folds a chronological event sequence into Stats. Each sample is
// weighted by the time since the previous sample of the same quantity; the
// first one by the time since after. It reports false when events is empty.
func Aggregate(events iter.Seq[models.LogEvent], after time.Time) (Stats, bool) {
	var (
		temps    []*accumulator[models.Temperature]
		humidity accumulator[models.Percent]
		battery  accumulator[models.Battery]
		out      Stats
	)
	for ev := range events {
		if out.Count == 0 {
			out.First = ev.Timestamp
		}
		out.Last = ev.Timestamp
		out.Count++

		for i, t := range ev.Temperatures {
			for len(temps) <= i {
				temps = append(temps, &accumulator[models.Temperature]{})
			}
			temps[i].add(ev, t, after)
		}
		humidity.add(ev, ev.Humidity, after)
		battery.add(ev, ev.Battery, after)
	}
	if out.Count == 0 {
		return Stats{}, false
	}

	out.Temperatures = make([]EventStats[models.Temperature], len(temps))
	for i, a := range temps {
		out.Temperatures[i] = a.result()
	}
	out.Humidity = humidity.result()
	out.Battery = battery.result()
	return out, true
}
