package repository

import (
	"errors"
	"math"
	"testing"
	"time"

	"gvtools"
)

func TestParseLine(t *testing.T) {
	t.Parallel()

	type want struct {
		ts       time.Time
		temps    []float64
		humidity float64
		battery  int
		model    string
	}

	cases := []struct {
		name    string
		line    string
		want    want
		wantErr bool
	}{
		{
			name: "T separator",
			line: "2022-06-20T15:42:48 -15.49 86.3 35",
			want: want{ts: time.Date(2022, 6, 20, 15, 42, 48, 0, time.UTC), temps: []float64{-15.49}, humidity: 86.3, battery: 35},
		},
		{
			name: "tab separated with trailing newline",
			line: "2022-06-20\t15:42:48\t21.5\t45\t100\n",
			want: want{ts: time.Date(2022, 6, 20, 15, 42, 48, 0, time.UTC), temps: []float64{21.5}, humidity: 45, battery: 100},
		},
		{
			name: "multi-probe record",
			line: "2023-01-02 03:04:05\t-18.2\t0\t87\t(GVH5183)\t-17.9\t-18.4\t-19.0",
			want: want{ts: time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC), temps: []float64{-18.2, -17.9, -18.4, -19.0}, humidity: 0, battery: 87, model: "(GVH5183)"},
		},
		{
			name: "one extra probe",
			line: "2023-01-02 03:04:05 4.5 50.0 60 GVH5055 5.5",
			want: want{ts: time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC), temps: []float64{4.5, 5.5}, humidity: 50, battery: 60, model: "GVH5055"},
		},
		{name: "blank", line: "", wantErr: true},
		{name: "header", line: "Date\tTemp\tHumidity\tBattery", wantErr: true},
		{name: "torn after temperature", line: "2022-06-20T15:42:48 -15.4", wantErr: true},
		{name: "torn inside model block", line: "2022-06-20 15:42:48 -15.49 86.3 35 GVH51", wantErr: true},
		{name: "non-numeric temperature", line: "2022-06-20 15:42:48 warm 86.3 35", wantErr: true},
		{name: "non-numeric extra probe", line: "2022-06-20 15:42:48 1 86.3 35 M x", wantErr: true},
		{name: "impossible date", line: "2022-02-30 15:42:48 1 86.3 35", wantErr: true},
		{name: "NaN temperature", line: "2022-06-20T15:42:48 NaN 86.3 35", wantErr: true},
		{name: "infinite temperature", line: "2022-06-20T15:42:48 -Inf 86.3 35", wantErr: true},
		{name: "hex temperature", line: "2022-06-20T15:42:48 0x1p-2 86.3 35", wantErr: true},
		{name: "NaN extra probe", line: "2022-06-20 15:42:48 1 86.3 35 M 2 nan", wantErr: true},
		{name: "battery over 100", line: "2022-06-20 15:42:48 1 86.3 135", wantErr: true},
		{name: "too many probes", line: "2022-06-20 15:42:48 1 2 3 M 4 5 6 7", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ev, err := ParseLine(tc.line)
			if tc.wantErr {
				if !errors.Is(err, gvtools.ErrMalformedRecord) {
					t.Fatalf("want ErrMalformedRecord, got %v (%+v)", err, ev)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !ev.Timestamp.Equal(tc.want.ts) || ev.Timestamp.Location() != time.UTC {
				t.Errorf("timestamp: want %v, got %v", tc.want.ts, ev.Timestamp)
			}
			if len(ev.Temperatures) != len(tc.want.temps) {
				t.Fatalf("temperatures: want %v, got %d readings", tc.want.temps, len(ev.Temperatures))
			}
			for i, c := range tc.want.temps {
				if math.Abs(ev.Temperatures[i].Celsius()-c) > 1e-9 {
					t.Errorf("temperature %d: want %v, got %v", i, c, ev.Temperatures[i].Celsius())
				}
			}
			if float64(ev.Humidity) != tc.want.humidity {
				t.Errorf("humidity: want %v, got %v", tc.want.humidity, ev.Humidity)
			}
			if int(ev.Battery) != tc.want.battery {
				t.Errorf("battery: want %v, got %v", tc.want.battery, ev.Battery)
			}
			if ev.Model != tc.want.model {
				t.Errorf("model: want %q, got %q", tc.want.model, ev.Model)
			}
		})
	}
}
