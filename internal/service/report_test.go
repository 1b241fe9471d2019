package service

import (
	"slices"
	"strings"
	"testing"
	"time"

	"gvtools/internal/config"
	"gvtools/internal/models"
	"gvtools/internal/repository"
)

func parseAll(t *testing.T, lines ...string) []models.LogEvent {
	t.Helper()
	var out []models.LogEvent
	for _, l := range lines {
		ev, err := repository.ParseLine(l)
		if err != nil {
			t.Fatalf("ParseLine(%q): %v", l, err)
		}
		out = append(out, ev)
	}
	return out
}

func freezerWith(t *testing.T, th config.Thresholds) models.DeviceConfig {
	t.Helper()
	r := mustResolver(t, &config.File{Devices: []config.DeviceSection{
		{Address: addrFreezer, Name: "Freezer", Thresholds: th},
	}})
	return r.Device(addrFreezer)
}

func TestFormatter_EndToEnd(t *testing.T) {
	t.Parallel()

	events := parseAll(t,
		"2022-06-20T15:40:48 -16.29 86.0 35",
		"2022-06-20T15:42:48 -15.49 86.3 35",
	)
	st, ok := Aggregate(slices.Values(events), at("2022-06-20T15:38:48Z"))
	if !ok {
		t.Fatal("expected data")
	}
	f := Formatter{Location: time.UTC}

	within := freezerWith(t, config.Thresholds{MinTemperature: set("-20C"), MaxTemperature: set("-10C")})
	if lines := f.Report(within, st); len(lines) != 0 {
		t.Errorf("expected no violation, got %q", lines)
	}
	if got := f.DeviceReport(within, st); got != "" {
		t.Errorf("DeviceReport = %q, want empty", got)
	}

	above := freezerWith(t, config.Thresholds{MaxTemperature: set("-20C")})
	want := []string{
		"Temperature above -20.0C",
		"  Minimum: -16.29C at 2022-06-20 15:40:48 UTC",
		"  Maximum: -15.49C at 2022-06-20 15:42:48 UTC",
		"  Average: -15.89C",
	}
	if got := f.Report(above, st); !slices.Equal(got, want) {
		t.Errorf("Report =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
	if got := f.DeviceReport(above, st); !strings.HasPrefix(got, "Freezer (A4:C1:38:00:00:01)\nTemperature above -20.0C\n") {
		t.Errorf("DeviceReport = %q", got)
	}
}

func TestFormatter_Titles(t *testing.T) {
	t.Parallel()

	events := []models.LogEvent{
		event("2022-06-20T15:00:00Z", 20, 15, 1),
		event("2022-06-20T15:10:00Z", 80, 30, 9),
	}
	st, _ := Aggregate(slices.Values(events), time.Time{})
	f := Formatter{}

	cases := []struct {
		name  string
		th    config.Thresholds
		title []string
	}{
		{"unbounded", config.Thresholds{}, nil},
		{"below", config.Thresholds{MinTemperature: set("2C")}, []string{"Temperature below 2.0C"}},
		{"both", config.Thresholds{MinTemperature: set("2C"), MaxTemperature: set("8C")}, []string{"Temperature below 2.0C and above 8.0C"}},
		{"boundary is inclusive", config.Thresholds{MinTemperature: set("1C"), MaxTemperature: set("9C")}, nil},
		{"bounds at the extremes", config.Thresholds{MinHumidity: set("20"), MaxHumidity: set("80%")}, nil},
		{"humidity", config.Thresholds{MaxHumidity: set("60")}, []string{"Humidity above 60.0%"}},
		{"battery", config.Thresholds{MinBattery: set("20")}, []string{"Battery below 20%"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var titles []string
			for _, l := range f.Report(freezerWith(t, tc.th), st) {
				if !strings.HasPrefix(l, " ") {
					titles = append(titles, l)
				}
			}
			if !slices.Equal(titles, tc.title) {
				t.Errorf("titles = %q, want %q", titles, tc.title)
			}
		})
	}
}

func TestFormatter_BatteryAndSecondProbe(t *testing.T) {
	t.Parallel()

	events := []models.LogEvent{
		event("2022-06-20T15:00:00Z", 50, 15, 1, 30),
	}
	st, _ := Aggregate(slices.Values(events), time.Time{})
	d := freezerWith(t, config.Thresholds{MaxTemperature: set("20C"), MinBattery: set("20%")})

	want := []string{
		"Temperature 2 above 20.0C",
		"  Minimum: 30.00C at 2022-06-20 15:00:00 UTC",
		"  Maximum: 30.00C at 2022-06-20 15:00:00 UTC",
		"  Average: 30.00C",
		"Battery below 20%",
		"  Minimum: 15% at 2022-06-20 15:00:00 UTC",
	}
	if got := (Formatter{}).Report(d, st); !slices.Equal(got, want) {
		t.Errorf("Report =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestTemperatureFormat(t *testing.T) {
	t.Parallel()

	lo, _ := models.ParseTemperature("32F")
	hi, _ := models.ParseTemperature("10C")

	cases := []struct {
		name string
		r    models.Range[models.Temperature]
		c    float64
		want string
	}{
		{"below midpoint uses lower unit", models.Range[models.Temperature]{Lower: &lo, Upper: &hi}, 2, "35.60F"},
		{"at midpoint uses upper unit", models.Range[models.Temperature]{Lower: &lo, Upper: &hi}, 5, "5.00C"},
		{"above midpoint uses upper unit", models.Range[models.Temperature]{Lower: &lo, Upper: &hi}, 12, "12.00C"},
		{"lower only", models.Range[models.Temperature]{Lower: &lo}, 20, "68.00F"},
		{"upper only", models.Range[models.Temperature]{Upper: &hi}, -1, "-1.00C"},
		{"unbounded", models.Range[models.Temperature]{}, 3.5, "3.50C"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := TemperatureFormat(tc.r)(tc.c); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}
