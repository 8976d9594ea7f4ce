package api

import (
	"time"

	"github.com/aarondl/opt/null"

	"github.com/mpapenbr/skirace-standings-go/pkg/model"
	"github.com/mpapenbr/skirace-standings-go/pkg/scoring"
	"github.com/mpapenbr/skirace-standings-go/pkg/timing"
)

type (
	TimeValue struct {
		Text string `json:"text"`
		Ms   int64  `json:"ms"`
	}
	RacerRow struct {
		Bib       string       `json:"bib"`
		FirstName string       `json:"firstName"`
		LastName  string       `json:"lastName"`
		Team      string       `json:"team"`
		Gender    model.Gender `json:"gender"`
		Class     string       `json:"class"`
		Category  string       `json:"category,omitempty"`
		Run1      *TimeValue   `json:"run1"`
		Run2      *TimeValue   `json:"run2"`
		Total     *TimeValue   `json:"total"`
		Status    model.Status `json:"status"`
	}
	IndividualRow struct {
		RacerRow
		Run1Rank  *int `json:"run1Rank"`
		Run2Rank  *int `json:"run2Rank"`
		Place     *int `json:"place"`
		Points    int  `json:"points"`
		FieldSize int  `json:"fieldSize"`
		Run1Count int  `json:"run1Count"`
		Run2Count int  `json:"run2Count"`
		Eligible  bool `json:"eligible"`
	}
	TeamMemberRow struct {
		RacerRow
		TeamPlace     *int `json:"teamPlace"`
		TeamPoints    int  `json:"teamPoints"`
		TeamFieldSize int  `json:"teamFieldSize"`
		IsScoring     bool `json:"isScoring"`
	}
	TeamRow struct {
		Place       int             `json:"place"`
		Name        string          `json:"name"`
		TotalPoints int             `json:"totalPoints"`
		Members     []TeamMemberRow `json:"members"`
	}
	EventSummary struct {
		Date       string `json:"date"`
		Name       string `json:"name"`
		Location   string `json:"location"`
		Discipline string `json:"discipline"`
		Races      int    `json:"races"`
		Racers     int    `json:"racers"`
	}
)

func ptr[T any](v null.Val[T]) *T {
	if x, ok := v.Get(); ok {
		return &x
	}
	return nil
}

func timeValue(v null.Val[time.Duration]) *TimeValue {
	if d, ok := v.Get(); ok {
		return &TimeValue{Text: timing.Format(d), Ms: d.Milliseconds()}
	}
	return nil
}

func toRacerRow(r *model.Racer) RacerRow {
	return RacerRow{
		Bib:       r.Bib,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Team:      r.Team,
		Gender:    r.Gender,
		Class:     r.Class,
		Category:  scoring.ClassCategory(r.Class),
		Run1:      timeValue(r.Run1),
		Run2:      timeValue(r.Run2),
		Total:     timeValue(r.TotalTime),
		Status:    r.Status,
	}
}

func toIndividualRow(r *scoring.IndividualResult) IndividualRow {
	return IndividualRow{
		RacerRow:  toRacerRow(&r.Racer),
		Run1Rank:  ptr(r.Run1Rank),
		Run2Rank:  ptr(r.Run2Rank),
		Place:     ptr(r.Place),
		Points:    r.Points,
		FieldSize: r.FieldSize,
		Run1Count: r.Run1Count,
		Run2Count: r.Run2Count,
		Eligible:  r.Eligible,
	}
}

func toTeamRow(t *scoring.TeamStanding) TeamRow {
	ret := TeamRow{
		Place:       t.Place,
		Name:        t.Name,
		TotalPoints: t.TotalPoints,
		Members:     make([]TeamMemberRow, 0, len(t.Members)),
	}
	for i := range t.Members {
		m := &t.Members[i]
		ret.Members = append(ret.Members, TeamMemberRow{
			RacerRow:      toRacerRow(&m.Racer),
			TeamPlace:     ptr(m.TeamPlace),
			TeamPoints:    m.TeamPoints,
			TeamFieldSize: m.TeamFieldSize,
			IsScoring:     m.IsScoring,
		})
	}
	return ret
}

func toEventSummary(e *model.Event) EventSummary {
	n := 0
	for _, r := range e.Races {
		n += len(r.Racers)
	}
	return EventSummary{
		Date:       e.Date,
		Name:       e.Name,
		Location:   e.Location,
		Discipline: e.Discipline,
		Races:      len(e.Races),
		Racers:     n,
	}
}
