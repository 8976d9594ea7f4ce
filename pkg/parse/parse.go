// Package parse reads race files exported by the timing software.
package parse

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/mpapenbr/skirace-standings-go/pkg/model"
	"github.com/mpapenbr/skirace-standings-go/pkg/timing"
)

var ErrNoCompetitors = errors.New("no competitors found")

// day 25569 of the serial date format is 1970-01-01
const serialEpochOffset = 25569

type xmlTime struct {
	Course string `xml:"Course"`
	Result string `xml:"Result"`
	Status string `xml:"Status"`
}

type xmlComp struct {
	Bib       string    `xml:"Bib"`
	FirstName string    `xml:"FirstName"`
	LastName  string    `xml:"LastName"`
	Class     string    `xml:"Class"`
	Team      string    `xml:"Team"`
	Gender    string    `xml:"Gender"`
	Times     []xmlTime `xml:"Time"`
}

// header elements, the first one of each group that has a value wins
var headerFields = map[string]string{
	"Header1":       "name",
	"Name":          "name2",
	"DateI":         "date",
	"Date":          "date2",
	"RTResort":      "location",
	"Location":      "location2",
	"USCSARaceType": "discipline",
	"Discipline":    "discipline2",
	"RaceType":      "raceType",
	"Course1":       "course1",
	"Course2":       "course2",
}

// ParseRace reads a single race file
//
//nolint:funlen,cyclop // readability
func ParseRace(r io.Reader) (*model.Race, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	dec.CharsetReader = charset.NewReaderLabel
	header := map[string]string{}
	comps := make([]xmlComp, 0)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading xml: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local == "Comp" {
			var c xmlComp
			if err := dec.DecodeElement(&c, &se); err != nil {
				return nil, fmt.Errorf("decoding competitor: %w", err)
			}
			comps = append(comps, c)
			continue
		}
		key, ok := headerFields[se.Name.Local]
		if !ok {
			continue
		}
		var v string
		if err := dec.DecodeElement(&v, &se); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", se.Name.Local, err)
		}
		if _, seen := header[key]; !seen && strings.TrimSpace(v) != "" {
			header[key] = strings.TrimSpace(v)
		}
	}
	if len(comps) == 0 {
		return nil, ErrNoCompetitors
	}

	race := &model.Race{Header: buildHeader(header)}
	race.Racers = make([]model.Racer, 0, len(comps))
	for i := range comps {
		race.Racers = append(race.Racers, buildRacer(&comps[i], &race.Header))
	}
	return race, nil
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func buildHeader(h map[string]string) model.RaceHeader {
	ret := model.RaceHeader{
		Name:       first(h["name"], h["name2"]),
		Location:   first(h["location"], h["location2"]),
		Discipline: first(h["discipline"], h["discipline2"]),
		Date:       model.UnknownDate,
	}
	if d, ok := SerialDate(h["date"]); ok {
		ret.Date = d
	} else {
		for _, v := range []string{h["date2"], h["date"]} {
			if d, ok := ParseDate(v); ok {
				ret.Date = d
				break
			}
		}
	}
	if v, err := strconv.Atoi(h["raceType"]); err == nil && v == int(model.RaceTypeDualCourse) {
		ret.RaceType = model.RaceTypeDualCourse
	}
	for _, c := range []string{h["course1"], h["course2"]} {
		if c != "" {
			ret.Courses = append(ret.Courses, c)
		}
	}
	return ret
}

func buildRacer(c *xmlComp, h *model.RaceHeader) model.Racer {
	ret := model.Racer{
		Bib:       strings.TrimSpace(c.Bib),
		FirstName: strings.TrimSpace(c.FirstName),
		LastName:  strings.TrimSpace(c.LastName),
		Class:     strings.TrimSpace(c.Class),
		Team:      strings.TrimSpace(c.Team),
	}
	ret.Gender = resolveGender(c.Gender, ret.Class, h.Name)

	entries := make([]timing.Entry, 0, len(c.Times))
	for _, t := range c.Times {
		e := timing.Entry{Result: strings.TrimSpace(t.Result)}
		e.Course, _ = strconv.Atoi(strings.TrimSpace(t.Course))
		e.Status, _ = strconv.Atoi(strings.TrimSpace(t.Status))
		entries = append(entries, e)
	}
	timing.Normalize(entries, h.RaceType).ApplyTo(&ret)
	return ret
}

// resolveGender uses the explicit value, then the class code, then the race name
func resolveGender(gender, class, raceName string) model.Gender {
	if g := model.ParseGender(gender); g != "" {
		return g
	}
	switch strings.ToUpper(strings.TrimSpace(class)) {
	case "VM", "JVM":
		return model.GenderMale
	case "VF", "JVF":
		return model.GenderFemale
	}
	name := strings.ToLower(raceName)
	switch {
	case strings.Contains(name, "boys"):
		return model.GenderMale
	case strings.Contains(name, "girls"):
		return model.GenderFemale
	}
	return ""
}

// SerialDate converts a serial day count (days since 1899-12-30) to YYYY-MM-DD
func SerialDate(s string) (string, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return "", false
	}
	days := int64(math.Floor(v)) - serialEpochOffset
	t := time.Unix(days*24*60*60, 0).UTC()
	return t.Format(time.DateOnly), true
}

var dateLayouts = []string{time.DateOnly, "01/02/2006", "1/2/2006", "2006/01/02"}

// ParseDate normalizes the supported date formats to YYYY-MM-DD
func ParseDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(time.DateOnly), true
		}
	}
	return "", false
}
