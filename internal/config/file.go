package config

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"gvtools"
	"gvtools/internal/models"

	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
)

// Section and key names of the configuration file.
const (
	SectionCommon = "common"
	SectionNotify = "notify"

	KeyLogDirectory   = "log_directory"
	KeyMapFile        = "map_file"
	KeyName           = "name"
	KeyCommand        = "command"
	KeyWindow         = "window"
	KeyMinTemperature = "min_temperature"
	KeyMaxTemperature = "max_temperature"
	KeyMinHumidity    = "min_humidity"
	KeyMaxHumidity    = "max_humidity"
	KeyMinBattery     = "min_battery"
)

// Setting is a raw key from the file. Set distinguishes "key = " (an explicit
// clear) from a key that is not there at all.
type Setting struct {
	Value string
	Set   bool
}

// Thresholds are the raw range keys of one section.
type Thresholds struct {
	MinTemperature Setting
	MaxTemperature Setting
	MinHumidity    Setting
	MaxHumidity    Setting
	MinBattery     Setting
}

// DeviceSection is one [AA:BB:CC:DD:EE:FF] section.
type DeviceSection struct {
	Address    string
	Name       string
	Thresholds Thresholds
}

// File is the parsed configuration file. An absent file yields a zero File.
type File struct {
	Path          string
	LogDirectory  string
	NotifyCommand string
	Window        string
	Defaults      Thresholds
	// Devices keeps file order.
	Devices []DeviceSection
}

// Device returns the section for address, if there is one.
func (f *File) Device(address string) (DeviceSection, bool) {
	address = models.CanonicalAddress(address)
	for _, d := range f.Devices {
		if d.Address == address {
			return d, true
		}
	}
	return DeviceSection{}, false
}

// LoadFile reads the configuration at path. The file may be either the INI
// format or the external logger's gvh-titlemap.txt. A missing file is only an
// error when the path was given explicitly.
func LoadFile(afs afero.Fs, path string, explicit bool) (*File, error) {
	data, err := afero.ReadFile(afs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return &File{}, nil
		}
		return nil, &gvtools.ConfigError{Key: "config", Value: path, Err: err}
	}

	if names, ok := parseTitleMap(data); ok {
		return &File{Path: path, Devices: names}, nil
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveSections: true,
		InsensitiveKeys:     true,
		IgnoreInlineComment: true,
	}, data)
	if err != nil {
		return nil, &gvtools.ConfigError{Key: "config", Value: path, Err: err}
	}

	f := &File{Path: path}
	common := cfg.Section(SectionCommon)
	f.LogDirectory = expandHome(common.Key(KeyLogDirectory).String())
	f.Defaults = readThresholds(common)

	notify := cfg.Section(SectionNotify)
	f.NotifyCommand = notify.Key(KeyCommand).String()
	f.Window = notify.Key(KeyWindow).String()

	for _, sec := range cfg.Sections() {
		if !models.IsAddress(sec.Name()) {
			continue
		}
		f.Devices = append(f.Devices, DeviceSection{
			Address:    models.CanonicalAddress(sec.Name()),
			Name:       sec.Key(KeyName).String(),
			Thresholds: readThresholds(sec),
		})
	}

	if mapFile := common.Key(KeyMapFile).String(); mapFile != "" {
		if err := f.mergeMapFile(afs, mapFile); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// mergeMapFile applies names from a titlemap file. They take precedence over
// names given in device sections.
func (f *File) mergeMapFile(afs afero.Fs, mapFile string) error {
	mapFile = expandHome(mapFile)
	if !filepath.IsAbs(mapFile) && f.Path != "" {
		mapFile = filepath.Join(filepath.Dir(f.Path), mapFile)
	}
	data, err := afero.ReadFile(afs, mapFile)
	if err != nil {
		return &gvtools.ConfigError{Key: SectionCommon + "." + KeyMapFile, Value: mapFile, Err: err}
	}
	names, ok := parseTitleMap(data)
	if !ok {
		return &gvtools.ConfigError{Key: SectionCommon + "." + KeyMapFile, Value: mapFile, Err: errors.New("not a titlemap file")}
	}
	for _, n := range names {
		merged := false
		for i := range f.Devices {
			if f.Devices[i].Address == n.Address {
				f.Devices[i].Name = n.Name
				merged = true
				break
			}
		}
		if !merged {
			f.Devices = append(f.Devices, n)
		}
	}
	return nil
}

func readThresholds(sec *ini.Section) Thresholds {
	get := func(key string) Setting {
		if !sec.HasKey(key) {
			return Setting{}
		}
		return Setting{Value: strings.TrimSpace(sec.Key(key).String()), Set: true}
	}
	return Thresholds{
		MinTemperature: get(KeyMinTemperature),
		MaxTemperature: get(KeyMaxTemperature),
		MinHumidity:    get(KeyMinHumidity),
		MaxHumidity:    get(KeyMaxHumidity),
		MinBattery:     get(KeyMinBattery),
	}
}

var titleMapLineRe = regexp.MustCompile(`^(` + models.AddressPattern + `)(?:\s+(.*?))?\s*$`)

// parseTitleMap reads lines of "ADDRESS<whitespace>NAME". Blank lines are
// allowed; any other line means the data is not a titlemap.
func parseTitleMap(data []byte) ([]DeviceSection, bool) {
	var out []DeviceSection
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := titleMapLineRe.FindStringSubmatch(line)
		if m == nil {
			return nil, false
		}
		if m[2] != "" {
			out = append(out, DeviceSection{Address: models.CanonicalAddress(m[1]), Name: m[2]})
		}
	}
	return out, sc.Err() == nil
}
