package config

import (
	"errors"
	"testing"

	"gvtools"

	"github.com/spf13/afero"
)

const sampleConfig = `
[common]
log_directory = /var/log/goveebttemplogger
min_temperature = -25C
max_temperature = -10C
min_humidity = 10
min_battery = 20

[notify]
command = mail -s "Thermometer alert; check #1" me@example.com
window = 2h

[a4:c1:38:00:00:01]
name = Freezer
max_temperature =

[A4:C1:38:00:00:02]
name = Fridge
Min_Temperature = 34F
max_temperature = 40F

[not-a-device]
name = ignored
`

func memFile(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, body := range files {
		if err := afero.WriteFile(fs, name, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return fs
}

func TestLoadFile_INI(t *testing.T) {
	t.Parallel()

	fs := memFile(t, map[string]string{"/etc/gv-tools.rc": sampleConfig})
	f, err := LoadFile(fs, "/etc/gv-tools.rc", true)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if f.LogDirectory != "/var/log/goveebttemplogger" {
		t.Errorf("log directory: %q", f.LogDirectory)
	}
	if f.NotifyCommand != `mail -s "Thermometer alert; check #1" me@example.com` {
		t.Errorf("inline comment characters must be kept: %q", f.NotifyCommand)
	}
	if f.Window != "2h" {
		t.Errorf("window: %q", f.Window)
	}
	if !f.Defaults.MinTemperature.Set || f.Defaults.MinTemperature.Value != "-25C" {
		t.Errorf("default min temperature: %+v", f.Defaults.MinTemperature)
	}
	if f.Defaults.MaxHumidity.Set {
		t.Errorf("max humidity was never configured: %+v", f.Defaults.MaxHumidity)
	}
	if len(f.Devices) != 2 {
		t.Fatalf("want 2 devices, got %+v", f.Devices)
	}

	freezer, ok := f.Device("A4:C1:38:00:00:01")
	if !ok || freezer.Name != "Freezer" {
		t.Fatalf("freezer section: %+v %v", freezer, ok)
	}
	if !freezer.Thresholds.MaxTemperature.Set || freezer.Thresholds.MaxTemperature.Value != "" {
		t.Errorf("explicit empty override must be Set with empty value: %+v", freezer.Thresholds.MaxTemperature)
	}
	if freezer.Thresholds.MinTemperature.Set {
		t.Errorf("freezer never overrides min temperature")
	}

	fridge, _ := f.Device("a4:c1:38:00:00:02")
	if fridge.Thresholds.MinTemperature.Value != "34F" {
		t.Errorf("keys are case-insensitive: %+v", fridge.Thresholds)
	}
}

func TestLoadFile_TitleMap(t *testing.T) {
	t.Parallel()

	fs := memFile(t, map[string]string{
		"/home/u/gvh-titlemap.txt": "A4:C1:38:00:00:01\tChest freezer\n\na4:c1:38:00:00:02 Kitchen fridge  \nA4:C1:38:00:00:03\n",
	})
	f, err := LoadFile(fs, "/home/u/gvh-titlemap.txt", true)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(f.Devices) != 2 {
		t.Fatalf("unnamed entries are dropped; got %+v", f.Devices)
	}
	if f.Devices[1].Address != "A4:C1:38:00:00:02" || f.Devices[1].Name != "Kitchen fridge" {
		t.Errorf("unexpected entry %+v", f.Devices[1])
	}
}

func TestLoadFile_MapFileNamesTakePrecedence(t *testing.T) {
	t.Parallel()

	fs := memFile(t, map[string]string{
		"/etc/gv/gv-tools.rc": "[common]\nmap_file = gvh-titlemap.txt\n[A4:C1:38:00:00:01]\nname = Old name\nmin_battery = 30\n",
		"/etc/gv/gvh-titlemap.txt": "A4:C1:38:00:00:01 New name\nA4:C1:38:00:00:09 Garage\n",
	})
	f, err := LoadFile(fs, "/etc/gv/gv-tools.rc", true)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	d, _ := f.Device("A4:C1:38:00:00:01")
	if d.Name != "New name" || d.Thresholds.MinBattery.Value != "30" {
		t.Errorf("unexpected merged device %+v", d)
	}
	if g, ok := f.Device("A4:C1:38:00:00:09"); !ok || g.Name != "Garage" {
		t.Errorf("map-only device missing: %+v", g)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	f, err := LoadFile(fs, "/nope.rc", false)
	if err != nil || len(f.Devices) != 0 {
		t.Fatalf("missing default file should be empty config, got %+v, %v", f, err)
	}

	_, err = LoadFile(fs, "/nope.rc", true)
	var ce *gvtools.ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("missing explicit file: want ConfigError, got %v", err)
	}
}

func TestLoadFile_BadMapFile(t *testing.T) {
	t.Parallel()

	fs := memFile(t, map[string]string{
		"/c.rc":  "[common]\nmap_file = /map.txt\n",
		"/map.txt": "this is not a map\n",
	})
	_, err := LoadFile(fs, "/c.rc", true)
	var ce *gvtools.ConfigError
	if !errors.As(err, &ce) || ce.Key != "common.map_file" {
		t.Fatalf("want ConfigError for map_file, got %v", err)
	}
}
