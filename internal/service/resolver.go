package service

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gvtools"
	"gvtools/internal/config"
	"gvtools/internal/models"
)

var (
	errInvertedRange  = errors.New("minimum is greater than maximum")
	errBatteryRange   = errors.New("battery level must be between 0 and 100")
	errInvalidPercent = errors.New("invalid percentage")
	errInvalidBattery = errors.New("invalid battery level")
)

// Resolver merges per-device sections with the [common] defaults. A key set
// in a device section replaces the default outright; an empty value clears
// it. Keys missing from both leave the bound absent.
type Resolver struct {
	file     *config.File
	resolved map[string]models.DeviceConfig
	order    []string
}

// NewResolver validates every configured device and the defaults up front so
// that configuration mistakes surface before any log is read.
func NewResolver(f *config.File) (*Resolver, error) {
	if f == nil {
		f = &config.File{}
	}
	r := &Resolver{file: f, resolved: make(map[string]models.DeviceConfig)}

	// Defaults alone must be valid, since unconfigured devices use them as is.
	if _, err := resolve(config.SectionCommon, "", f.Defaults, config.Thresholds{}); err != nil {
		return nil, err
	}
	for _, sec := range f.Devices {
		if _, dup := r.resolved[sec.Address]; dup {
			continue
		}
		d, err := resolve(sec.Address, sec.Address, f.Defaults, sec.Thresholds)
		if err != nil {
			return nil, err
		}
		d.Name = sec.Name
		r.resolved[sec.Address] = d
		r.order = append(r.order, sec.Address)
	}
	return r, nil
}

// Device returns the effective configuration of address.
func (r *Resolver) Device(address string) models.DeviceConfig {
	address = models.CanonicalAddress(address)
	if d, ok := r.resolved[address]; ok {
		return d
	}
	// Defaults were validated in NewResolver.
	d, _ := resolve(config.SectionCommon, address, r.file.Defaults, config.Thresholds{})
	return d
}

// Devices returns configured devices in file order followed by the remaining
// addresses, sorted. Each address appears once.
func (r *Resolver) Devices(addresses []string) []models.DeviceConfig {
	out := make([]models.DeviceConfig, 0, len(r.order)+len(addresses))
	seen := make(map[string]bool, len(r.order)+len(addresses))
	for _, addr := range r.order {
		out = append(out, r.resolved[addr])
		seen[addr] = true
	}
	extra := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		addr = models.CanonicalAddress(addr)
		if !seen[addr] {
			seen[addr] = true
			extra = append(extra, addr)
		}
	}
	slices.Sort(extra)
	for _, addr := range extra {
		out = append(out, r.Device(addr))
	}
	return out
}

// pick applies the override policy to one key and reports which section the
// winning value came from.
func pick(section string, def, override config.Setting) (value, from string) {
	if override.Set {
		return override.Value, section
	}
	if def.Set {
		return def.Value, config.SectionCommon
	}
	return "", ""
}

func resolve(section, address string, def, override config.Thresholds) (models.DeviceConfig, error) {
	d := models.DeviceConfig{Address: address}
	var err error

	if d.Temperature.Lower, err = parseBound(section, config.KeyMinTemperature, def.MinTemperature, override.MinTemperature, models.ParseTemperature); err != nil {
		return d, err
	}
	if d.Temperature.Upper, err = parseBound(section, config.KeyMaxTemperature, def.MaxTemperature, override.MaxTemperature, models.ParseTemperature); err != nil {
		return d, err
	}
	if d.Humidity.Lower, err = parseBound(section, config.KeyMinHumidity, def.MinHumidity, override.MinHumidity, parsePercent); err != nil {
		return d, err
	}
	if d.Humidity.Upper, err = parseBound(section, config.KeyMaxHumidity, def.MaxHumidity, override.MaxHumidity, parsePercent); err != nil {
		return d, err
	}
	if d.Battery.Lower, err = parseBound(section, config.KeyMinBattery, def.MinBattery, override.MinBattery, parseBattery); err != nil {
		return d, err
	}

	if d.Temperature.IsInverted() {
		return d, invertedError(section, config.KeyMinTemperature, *d.Temperature.Lower, *d.Temperature.Upper)
	}
	if d.Humidity.IsInverted() {
		return d, invertedError(section, config.KeyMinHumidity, *d.Humidity.Lower, *d.Humidity.Upper)
	}
	return d, nil
}

func parseBound[T any](section, key string, def, override config.Setting, parse func(string) (T, error)) (*T, error) {
	raw, from := pick(section, def, override)
	if raw == "" {
		return nil, nil
	}
	v, err := parse(raw)
	if err != nil {
		return nil, &gvtools.ConfigError{Key: from + "." + key, Value: raw, Err: err}
	}
	return &v, nil
}

func invertedError(section, key string, lower, upper fmt.Stringer) error {
	return &gvtools.ConfigError{
		Key: section + "." + key,
		Err: fmt.Errorf("%w (%s > %s)", errInvertedRange, lower, upper),
	}
}

func parsePercent(s string) (models.Percent, error) {
	v, err := models.ParseDecimal(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil {
		return 0, errInvalidPercent
	}
	return models.Percent(v), nil
}

func parseBattery(s string) (models.Battery, error) {
	v, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(s, "%")))
	if err != nil {
		return 0, errInvalidBattery
	}
	if v < 0 || v > 100 {
		return 0, errBatteryRange
	}
	return models.Battery(v), nil
}
