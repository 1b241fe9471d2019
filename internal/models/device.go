package models

import (
	"regexp"
	"strings"
)

// AddressPattern matches a Bluetooth address with colon separators.
const AddressPattern = `(?:[A-Fa-f0-9]{2}:){5}[A-Fa-f0-9]{2}`

var addressRe = regexp.MustCompile(`^` + AddressPattern + `$`)

// IsAddress reports whether s is a colon-separated Bluetooth address.
func IsAddress(s string) bool { return addressRe.MatchString(s) }

// CanonicalAddress upper-cases a colon-separated address.
func CanonicalAddress(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

// ChunkAddress inserts colons into a 12-digit address: "A4C138000001" becomes
// "A4:C1:38:00:00:01". The input must be 12 characters.
func ChunkAddress(short string) string {
	parts := make([]string, 0, 6)
	for i := 0; i+2 <= len(short); i += 2 {
		parts = append(parts, short[i:i+2])
	}
	return CanonicalAddress(strings.Join(parts, ":"))
}

// DeviceConfig is the effective configuration of one thermometer: overrides
// from its own section merged with the [common] defaults. It is read-only
// after resolution.
type DeviceConfig struct {
	Address     string
	Name        string
	Temperature Range[Temperature]
	Humidity    Range[Percent]
	// Battery only ever has a lower bound: the minimum acceptable charge.
	Battery Range[Battery]
}

func (d DeviceConfig) String() string {
	if d.Name != "" {
		return d.Name + " (" + d.Address + ")"
	}
	return d.Address
}

// ShortAddress drops the colons from the address.
func (d DeviceConfig) ShortAddress() string {
	return strings.ReplaceAll(d.Address, ":", "")
}
