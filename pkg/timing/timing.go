// Package timing converts raw time tokens of timing software exports into
// run times and finish status.
package timing

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/shopspring/decimal"

	"github.com/mpapenbr/skirace-standings-go/pkg/model"
)

// status codes delivered by the timing software
const (
	StatusCodeDNF = 2
	StatusCodeDSQ = 3
)

var (
	dnfMarkers = []string{"DNF", "DNS"}
	dsqMarkers = []string{"DSQ", "DQ"}

	thousand = decimal.NewFromInt(1000)
	sixty    = decimal.NewFromInt(60)

	// only the last component may carry a fraction
	wholePart    = regexp.MustCompile(`^[0-9]+$`)
	fractionPart = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)
)

// MaxTime is the largest accepted time, longer tokens are treated as invalid
const MaxTime = 24 * time.Hour

// Entry is a single time element of a racer
type Entry struct {
	Course int    // course number, used by dual course races
	Result string // raw time token or marker
	Status int    // optional status code, 0 if absent
}

// Result holds the normalized timing values of a racer
type Result struct {
	Run1      null.Val[time.Duration]
	Run2      null.Val[time.Duration]
	TotalTime null.Val[time.Duration]
	DNF       bool
	DSQ       bool
	Status    model.Status
}

// ParseTime parses SS.ss, MM:SS.ss or HH:MM:SS.ss and rounds to milliseconds.
// Components after the leading one must be below 60.
// The second return value is false if token is not a valid time.
func ParseTime(token string) (time.Duration, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, false
	}
	parts := strings.Split(token, ":")
	if len(parts) > 3 {
		return 0, false
	}
	total := decimal.Zero
	for i, p := range parts {
		last := i == len(parts)-1
		if (last && !fractionPart.MatchString(p)) || (!last && !wholePart.MatchString(p)) {
			return 0, false
		}
		v, err := decimal.NewFromString(p)
		if err != nil || (i > 0 && v.GreaterThanOrEqual(sixty)) {
			return 0, false
		}
		total = total.Mul(sixty).Add(v)
	}
	if total.GreaterThan(decimal.NewFromInt(int64(MaxTime / time.Second))) {
		return 0, false
	}
	ms := total.Mul(thousand).Round(0).IntPart()
	return time.Duration(ms) * time.Millisecond, true
}

// Marker returns DNF or DSQ if token is one of the non-finish markers
func Marker(token string) (model.Status, bool) {
	t := strings.ToUpper(strings.TrimSpace(token))
	for _, m := range dnfMarkers {
		if t == m {
			return model.StatusDNF, true
		}
	}
	for _, m := range dsqMarkers {
		if t == m {
			return model.StatusDSQ, true
		}
	}
	return "", false
}

// Normalize resolves the entries of one racer into runs and total time.
// Dual course races map course 0 to run1 and course 1 to run2, single
// course races use the order of the entries.
func Normalize(entries []Entry, raceType model.RaceType) Result {
	var ret Result
	for i, e := range entries {
		run := i
		if raceType == model.RaceTypeDualCourse {
			run = e.Course
		}
		if run != 0 && run != 1 {
			continue
		}
		switch e.Status {
		case StatusCodeDNF:
			ret.DNF = true
		case StatusCodeDSQ:
			ret.DSQ = true
		}
		if m, ok := Marker(e.Result); ok {
			if m == model.StatusDNF {
				ret.DNF = true
			} else {
				ret.DSQ = true
			}
			continue
		}
		d, ok := ParseTime(e.Result)
		if !ok {
			continue
		}
		if run == 0 {
			ret.Run1 = null.From(d)
		} else {
			ret.Run2 = null.From(d)
		}
	}
	ret.TotalTime = total(ret)
	ret.Status = status(ret)
	return ret
}

func total(r Result) null.Val[time.Duration] {
	r1, ok1 := r.Run1.Get()
	r2, ok2 := r.Run2.Get()
	switch {
	case ok1 && ok2 && !r.DNF && !r.DSQ:
		return null.From(r1 + r2)
	case ok1 && !ok2:
		return null.From(r1)
	}
	return null.Val[time.Duration]{}
}

func status(r Result) model.Status {
	switch {
	case r.DSQ:
		return model.StatusDSQ
	case r.DNF:
		return model.StatusDNF
	}
	return model.StatusOK
}

// ApplyTo copies the timing values onto the racer
func (r Result) ApplyTo(racer *model.Racer) {
	racer.Run1 = r.Run1
	racer.Run2 = r.Run2
	racer.TotalTime = r.TotalTime
	racer.DNF = r.DNF
	racer.DSQ = r.DSQ
	racer.Status = r.Status
}

// Format renders d as SS.ss, M:SS.ss or H:MM:SS.ss
func Format(d time.Duration) string {
	cs := d.Round(10*time.Millisecond).Milliseconds() / 10
	h := cs / 360000
	m := (cs / 6000) % 60
	s := (cs / 100) % 60
	frac := cs % 100
	switch {
	case h > 0:
		return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, frac)
	case m > 0:
		return fmt.Sprintf("%d:%02d.%02d", m, s, frac)
	}
	return fmt.Sprintf("%d.%02d", s, frac)
}

// FormatVal renders a nullable time, the empty string is returned for null
func FormatVal(v null.Val[time.Duration]) string {
	if d, ok := v.Get(); ok {
		return Format(d)
	}
	return ""
}
