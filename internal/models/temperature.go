package models

import (
	"cmp"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Unit is a temperature scale used for input and display.
type Unit int

const (
	Celsius Unit = iota
	Fahrenheit
)

// Symbol returns the single-letter suffix used in logs and config ("C" or "F").
func (u Unit) Symbol() string {
	if u == Fahrenheit {
		return "F"
	}
	return "C"
}

func (u Unit) String() string {
	if u == Fahrenheit {
		return "fahrenheit"
	}
	return "celsius"
}

var errUnknownUnit = errors.New("unknown temperature unit")

// ParseUnit accepts c, centigrade, celsius, f and fahrenheit in any case.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "centigrade", "celsius":
		return Celsius, nil
	case "f", "fahrenheit":
		return Fahrenheit, nil
	default:
		return Celsius, fmt.Errorf("%w: %q", errUnknownUnit, s)
	}
}

// Temperature is stored in degrees Celsius. The preferred unit only affects
// display; comparisons always use the Celsius value.
type Temperature struct {
	celsius float64
	unit    Unit
}

// NewTemperature builds a Temperature from a value expressed in unit u and
// remembers u as the preferred display unit.
func NewTemperature(value float64, u Unit) Temperature {
	if u == Fahrenheit {
		return Temperature{celsius: celsiusFromFahrenheit(value), unit: Fahrenheit}
	}
	return Temperature{celsius: value, unit: Celsius}
}

// CelsiusTemperature is shorthand for NewTemperature(c, Celsius).
func CelsiusTemperature(c float64) Temperature {
	return Temperature{celsius: c}
}

// ParseTemperature parses "<number><unit>", e.g. "-20C" or "68.5f".
func ParseTemperature(s string) (Temperature, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Temperature{}, errors.New("empty temperature")
	}
	u, err := ParseUnit(s[len(s)-1:])
	if err != nil {
		return Temperature{}, fmt.Errorf("temperature %q must end with C or F", s)
	}
	v, err := ParseDecimal(s[:len(s)-1])
	if err != nil {
		return Temperature{}, fmt.Errorf("temperature %q: invalid number", s)
	}
	return NewTemperature(v, u), nil
}

// DecimalPattern is a plain decimal number: no exponent, hex, NaN or Inf.
const DecimalPattern = `[-+]?(?:\d+(?:\.\d*)?|\.\d+)`

var decimalRe = regexp.MustCompile(`^` + DecimalPattern + `$`)

var errNotDecimal = errors.New("not a decimal number")

// ParseDecimal parses s as a plain decimal number, so the result is always
// finite.
func ParseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !decimalRe.MatchString(s) {
		return 0, fmt.Errorf("%w: %q", errNotDecimal, s)
	}
	return strconv.ParseFloat(s, 64)
}

func (t Temperature) Celsius() float64    { return t.celsius }
func (t Temperature) Fahrenheit() float64 { return fahrenheitFromCelsius(t.celsius) }
func (t Temperature) Unit() Unit          { return t.unit }

// Float returns the canonical Celsius value.
func (t Temperature) Float() float64 { return t.celsius }

// In returns the value expressed in unit u.
func (t Temperature) In(u Unit) float64 {
	if u == Fahrenheit {
		return t.Fahrenheit()
	}
	return t.celsius
}

// WithUnit returns a copy with a different preferred unit.
func (t Temperature) WithUnit(u Unit) Temperature {
	t.unit = u
	return t
}

func (t Temperature) Compare(o Temperature) int { return cmp.Compare(t.celsius, o.celsius) }
func (t Temperature) Equal(o Temperature) bool  { return t.celsius == o.celsius }

// Format renders the value in unit u with prec decimals, followed by the
// unit symbol: Format(Celsius, 2) == "-15.49C".
func (t Temperature) Format(u Unit, prec int) string {
	return strconv.FormatFloat(t.In(u), 'f', prec, 64) + u.Symbol()
}

// String renders in the preferred unit with one decimal.
func (t Temperature) String() string { return t.Format(t.unit, 1) }

func fahrenheitFromCelsius(c float64) float64 { return c*9/5 + 32 }
func celsiusFromFahrenheit(f float64) float64 { return (f - 32) * 5 / 9 }
