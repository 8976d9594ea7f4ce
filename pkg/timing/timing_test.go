//nolint:funlen,lll // ok for tests
package timing

import (
	"testing"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/stretchr/testify/assert"

	"github.com/mpapenbr/skirace-standings-go/pkg/model"
)

func ms(v int64) time.Duration { return time.Duration(v) * time.Millisecond }

func TestParseTime(t *testing.T) {
	tests := []struct {
		token  string
		want   time.Duration
		wantOk bool
	}{
		{"45.23", ms(45230), true},
		{"1:02.35", ms(62350), true},
		{"1:01:02.5", ms(3662500), true},
		{" 59 ", ms(59000), true},
		{"12.3456", ms(12346), true},
		{"12.3454", ms(12345), true},
		{"", 0, false},
		{"abc", 0, false},
		{"1:2:3:4", 0, false},
		{"-3.2", 0, false},
		{"DNF", 0, false},
		{"1e2", 0, false},
		{"1:75.00", 0, false},
		{"1:60:00.00", 0, false},
		{"75.00", ms(75000), true},
		{"90:00.00", ms(5400000), true},
		{"1.5:02.00", 0, false},
		{"1..2", 0, false},
		{"+3.2", 0, false},
		{"1: 02.00", 0, false},
		{"24:00:00.00", 24 * time.Hour, true},
		{"24:00:00.01", 0, false},
		{"9999999:00:00.00", 0, false},
		{"99999999999999999999999.0", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := ParseTime(tt.token)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarker(t *testing.T) {
	for token, want := range map[string]model.Status{
		"DNF": model.StatusDNF, "dns": model.StatusDNF,
		"DSQ": model.StatusDSQ, " dq ": model.StatusDSQ,
	} {
		got, ok := Marker(token)
		assert.True(t, ok, token)
		assert.Equal(t, want, got, token)
	}
	_, ok := Marker("45.2")
	assert.False(t, ok)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		entries  []Entry
		raceType model.RaceType
		want     Result
	}{
		{
			name:     "single course two runs",
			entries:  []Entry{{Result: "30.00"}, {Result: "31.50"}},
			raceType: model.RaceTypeSingleCourse,
			want: Result{
				Run1: null.From(ms(30000)), Run2: null.From(ms(31500)),
				TotalTime: null.From(ms(61500)), Status: model.StatusOK,
			},
		},
		{
			name:     "dual course by course number",
			entries:  []Entry{{Course: 1, Result: "31.50"}, {Course: 0, Result: "30.00"}},
			raceType: model.RaceTypeDualCourse,
			want: Result{
				Run1: null.From(ms(30000)), Run2: null.From(ms(31500)),
				TotalTime: null.From(ms(61500)), Status: model.StatusOK,
			},
		},
		{
			name:     "one run only",
			entries:  []Entry{{Result: "30.00"}},
			raceType: model.RaceTypeSingleCourse,
			want: Result{
				Run1: null.From(ms(30000)), TotalTime: null.From(ms(30000)), Status: model.StatusOK,
			},
		},
		{
			name:     "corrupt tokens give no time",
			entries:  []Entry{{Result: "9999999:00:00.00"}, {Result: "1e2"}},
			raceType: model.RaceTypeSingleCourse,
			want:     Result{Status: model.StatusOK},
		},
		{
			name:     "dnf marker in second run",
			entries:  []Entry{{Result: "30.00"}, {Result: "DNF"}},
			raceType: model.RaceTypeSingleCourse,
			want: Result{
				Run1: null.From(ms(30000)), TotalTime: null.From(ms(30000)),
				DNF: true, Status: model.StatusDNF,
			},
		},
		{
			name:     "status code takes precedence but keeps the time",
			entries:  []Entry{{Result: "30.00"}, {Result: "31.00", Status: StatusCodeDSQ}},
			raceType: model.RaceTypeSingleCourse,
			want: Result{
				Run1: null.From(ms(30000)), Run2: null.From(ms(31000)),
				DSQ: true, Status: model.StatusDSQ,
			},
		},
		{
			name:     "status code dnf",
			entries:  []Entry{{Result: "30.00", Status: StatusCodeDNF}},
			raceType: model.RaceTypeSingleCourse,
			want: Result{
				Run1: null.From(ms(30000)), TotalTime: null.From(ms(30000)),
				DNF: true, Status: model.StatusDNF,
			},
		},
		{
			name:     "missing first run",
			entries:  []Entry{{Course: 1, Result: "31.00"}},
			raceType: model.RaceTypeDualCourse,
			want:     Result{Run2: null.From(ms(31000)), Status: model.StatusOK},
		},
		{
			name:     "unparsable",
			entries:  []Entry{{Result: "??"}},
			raceType: model.RaceTypeSingleCourse,
			want:     Result{Status: model.StatusOK},
		},
		{
			name:     "dsq marker",
			entries:  []Entry{{Result: "DQ"}},
			raceType: model.RaceTypeSingleCourse,
			want:     Result{DSQ: true, Status: model.StatusDSQ},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.entries, tt.raceType)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "45.23", Format(ms(45230)))
	assert.Equal(t, "1:02.35", Format(ms(62350)))
	assert.Equal(t, "1:01:02.50", Format(ms(3662500)))
	assert.Equal(t, "0.00", Format(0))
	assert.Equal(t, "", FormatVal(null.Val[time.Duration]{}))
}
