// Package events groups races of the same date into events
package events

import (
	"regexp"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/mpapenbr/skirace-standings-go/pkg/model"
)

var genderPrefix = regexp.MustCompile(`(?i)^\s*(boys|girls|men'?s|women'?s)\b[\s\-:/,]*`)

// StripGenderPrefix removes a leading gender word like "Boys" from a race name
func StripGenderPrefix(name string) string {
	return strings.TrimSpace(genderPrefix.ReplaceAllString(name, ""))
}

// Group groups races by date. Events are ordered by date, events with
// unknown date come last. Races keep their input order within an event.
func Group(races []*model.Race) []*model.Event {
	byDate := lo.GroupBy(races, func(r *model.Race) string {
		if r.Header.Date == "" {
			return model.UnknownDate
		}
		return r.Header.Date
	})
	ret := make([]*model.Event, 0, len(byDate))
	for date, group := range byDate {
		ret = append(ret, newEvent(date, group))
	}
	slices.SortFunc(ret, func(a, b *model.Event) int {
		switch {
		case a.Date == b.Date:
			return 0
		case a.Date == model.UnknownDate:
			return 1
		case b.Date == model.UnknownDate:
			return -1
		}
		return strings.Compare(a.Date, b.Date)
	})
	return ret
}

func newEvent(date string, races []*model.Race) *model.Event {
	ret := &model.Event{Date: date, Races: races}
	for _, r := range races {
		if name := StripGenderPrefix(r.Header.Name); len(name) > len(ret.Name) {
			ret.Name = name
		}
		if ret.Location == "" {
			ret.Location = strings.TrimSpace(r.Header.Location)
		}
		if ret.Discipline == "" {
			ret.Discipline = strings.TrimSpace(r.Header.Discipline)
		}
	}
	return ret
}
