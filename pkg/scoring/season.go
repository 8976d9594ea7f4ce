package scoring

import (
	"cmp"
	"slices"
	"strings"

	"github.com/aarondl/opt/null"

	"github.com/mpapenbr/skirace-standings-go/log"
	"github.com/mpapenbr/skirace-standings-go/pkg/model"
)

type EventResult struct {
	EventName string        `json:"eventName"`
	EventDate string        `json:"eventDate"`
	Points    int           `json:"points"`
	Place     null.Val[int] `json:"place"`
}

// SeasonEntry accumulates the event results of a team or an athlete.
// Results are kept in season order.
type SeasonEntry struct {
	Results     []EventResult `json:"results"`
	Dropped     *EventResult  `json:"droppedResult,omitempty"`
	TotalPoints int           `json:"totalPoints"`
	EventCount  int           `json:"eventCount"`
	Place       int           `json:"place"`
}

type TeamSeason struct {
	Name string `json:"name"`
	SeasonEntry
}

type AthleteSeason struct {
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	Team      string       `json:"team"`
	Gender    model.Gender `json:"gender"`
	Class     string       `json:"class"`
	SeasonEntry
}

type SeasonStandings struct {
	Teams       []TeamSeason    `json:"teams"`
	Individuals []AthleteSeason `json:"individuals"`
	EventCount  int             `json:"eventCount"`
	// number of events counting towards the total when the worst is dropped
	CountedEvents int `json:"countedEvents"`
}

type athleteKey struct {
	first, last, team string
}

// Season combines the results of the ordered events.
// Team points use classFilter, or the configured season team class if
// classFilter is empty. Each entity with a result in every event of a
// multi-event season has its lowest scoring result dropped. Equal totals
// share a place.
//
//nolint:funlen // readability
func (e *Engine) Season(
	events []*model.Event, gender model.Gender, classFilter string,
) *SeasonStandings {
	teamClass := classFilter
	if teamClass == "" {
		teamClass = e.seasonTeamClass
	}

	teams := make([]*TeamSeason, 0)
	teamLookup := make(map[string]*TeamSeason)
	athletes := make([]*AthleteSeason, 0)
	athleteLookup := make(map[athleteKey]*AthleteSeason)

	for _, ev := range events {
		racers := ev.Racers()
		for _, r := range e.Individual(racers, gender, classFilter) {
			if r.Points == 0 {
				continue
			}
			key := athleteKey{
				first: strings.TrimSpace(r.Racer.FirstName),
				last:  strings.TrimSpace(r.Racer.LastName),
				team:  strings.TrimSpace(r.Racer.Team),
			}
			a, ok := athleteLookup[key]
			if !ok {
				a = &AthleteSeason{
					FirstName: key.first,
					LastName:  key.last,
					Team:      key.team,
					Gender:    r.Racer.Gender,
					Class:     r.Racer.Class,
				}
				athleteLookup[key] = a
				athletes = append(athletes, a)
			}
			a.Results = append(a.Results, EventResult{
				EventName: ev.Name, EventDate: ev.Date,
				Points: r.Points, Place: r.Place,
			})
		}

		for _, t := range e.TeamStandings(racers, gender, teamClass, 0) {
			ts, ok := teamLookup[t.Name]
			if !ok {
				ts = &TeamSeason{Name: t.Name}
				teamLookup[t.Name] = ts
				teams = append(teams, ts)
			}
			ts.Results = append(ts.Results, EventResult{
				EventName: ev.Name, EventDate: ev.Date,
				Points: t.TotalPoints, Place: null.From(t.Place),
			})
		}
	}

	eventCount := len(events)
	ret := &SeasonStandings{
		Teams:         make([]TeamSeason, 0, len(teams)),
		Individuals:   make([]AthleteSeason, 0, len(athletes)),
		EventCount:    eventCount,
		CountedEvents: eventCount,
	}
	if eventCount > 1 {
		ret.CountedEvents = eventCount - 1
	}

	for _, t := range teams {
		t.applyDrop(eventCount)
	}
	for _, item := range RankDescending(teams, func(t *TeamSeason) int { return t.TotalPoints }) {
		item.Item.Place = item.Rank
		ret.Teams = append(ret.Teams, *item.Item)
	}
	for _, a := range athletes {
		a.applyDrop(eventCount)
	}
	for _, item := range RankDescending(athletes, func(a *AthleteSeason) int { return a.TotalPoints }) {
		item.Item.Place = item.Rank
		ret.Individuals = append(ret.Individuals, *item.Item)
	}
	e.l.Debug("season standings computed",
		log.String("gender", string(gender)),
		log.String("class", classFilter),
		log.Int("events", eventCount),
		log.Int("teams", len(ret.Teams)),
		log.Int("athletes", len(ret.Individuals)))
	return ret
}

// applyDrop computes the total. The lowest result is dropped if the entry
// has a result for every event of a season with more than one event. Among
// equal lowest results the last one in season order is dropped.
func (s *SeasonEntry) applyDrop(seasonEvents int) {
	s.EventCount = len(s.Results)
	s.Dropped = nil
	s.TotalPoints = 0
	for _, r := range s.Results {
		s.TotalPoints += r.Points
	}
	if seasonEvents <= 1 || len(s.Results) < seasonEvents {
		return
	}
	sorted := slices.Clone(s.Results)
	slices.SortStableFunc(sorted, func(a, b EventResult) int {
		return cmp.Compare(b.Points, a.Points)
	})
	dropped := sorted[len(sorted)-1]
	s.Dropped = &dropped
	s.TotalPoints -= dropped.Points
}
