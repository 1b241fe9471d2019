package models

import (
	"cmp"
	"fmt"
)

// Ordered is satisfied by measurement types that can be ranked.
type Ordered[T any] interface {
	Compare(other T) int
}

// Measure is an Ordered value that can also be averaged.
type Measure[T any] interface {
	Ordered[T]
	Float() float64
}

// Percent is a relative humidity reading.
type Percent float64

func (p Percent) Compare(o Percent) int { return cmp.Compare(p, o) }
func (p Percent) Float() float64        { return float64(p) }
func (p Percent) String() string        { return fmt.Sprintf("%.1f%%", float64(p)) }

// Battery is a battery charge level, 0-100.
type Battery int

func (b Battery) Compare(o Battery) int { return cmp.Compare(b, o) }
func (b Battery) Float() float64        { return float64(b) }
func (b Battery) String() string        { return fmt.Sprintf("%d%%", int(b)) }

// Range is an optional lower and upper bound. A nil bound is absent. Bounds are
// inclusive: a value equal to a bound is inside the range.
type Range[T Ordered[T]] struct {
	Lower *T
	Upper *T
}

// Bound returns a pointer to v for use as a Range bound.
func Bound[T any](v T) *T { return &v }

// IsUnbounded reports whether neither bound is set.
func (r Range[T]) IsUnbounded() bool { return r.Lower == nil && r.Upper == nil }

// IsInverted reports whether both bounds are set and lower > upper.
func (r Range[T]) IsInverted() bool {
	return r.Lower != nil && r.Upper != nil && (*r.Lower).Compare(*r.Upper) > 0
}

// Below reports whether v is strictly under the lower bound.
func (r Range[T]) Below(v T) bool { return r.Lower != nil && v.Compare(*r.Lower) < 0 }

// Above reports whether v is strictly over the upper bound.
func (r Range[T]) Above(v T) bool { return r.Upper != nil && v.Compare(*r.Upper) > 0 }

func (r Range[T]) Contains(v T) bool { return !r.Below(v) && !r.Above(v) }
