package standings

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/aarondl/opt/null"
	"github.com/samber/lo"

	"github.com/mpapenbr/skirace-standings-go/pkg/scoring"
	"github.com/mpapenbr/skirace-standings-go/pkg/timing"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func intVal(v null.Val[int]) string {
	if x, ok := v.Get(); ok {
		return strconv.Itoa(x)
	}
	return "-"
}

func printIndividual(w io.Writer, results []scoring.IndividualResult) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "Place\tBib\tName\tTeam\tClass\tRun1\tR1\tRun2\tR2\tTotal\tStatus\tPoints")
	for i := range results {
		r := &results[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			intVal(r.Place),
			r.Racer.Bib,
			r.Racer.FullName(),
			r.Racer.Team,
			r.Racer.Class,
			timing.FormatVal(r.Racer.Run1),
			intVal(r.Run1Rank),
			timing.FormatVal(r.Racer.Run2),
			intVal(r.Run2Rank),
			timing.FormatVal(r.Racer.TotalTime),
			r.Racer.Status,
			r.Points)
	}
	return tw.Flush()
}

func printTeams(w io.Writer, teams []scoring.TeamStanding) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "Place\tTeam\tPoints\tScoring")
	for i := range teams {
		t := &teams[i]
		scorers := lo.Map(t.Scoring, func(m scoring.TeamMember, _ int) string {
			return fmt.Sprintf("%s (%d)", m.Racer.FullName(), m.TeamPoints)
		})
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n",
			t.Place, t.Name, t.TotalPoints, strings.Join(scorers, ", "))
	}
	return tw.Flush()
}

func seasonResults(e *scoring.SeasonEntry) string {
	return strings.Join(lo.Map(e.Results, func(r scoring.EventResult, _ int) string {
		if e.Dropped != nil && e.Dropped.EventDate == r.EventDate &&
			e.Dropped.EventName == r.EventName {
			return fmt.Sprintf("(%d)", r.Points)
		}
		return strconv.Itoa(r.Points)
	}), " ")
}

func printSeason(w io.Writer, s *scoring.SeasonStandings) error {
	fmt.Fprintf(w, "Season over %d events, %d counted\n\nTeams\n",
		s.EventCount, s.CountedEvents)
	tw := newTable(w)
	fmt.Fprintln(tw, "Place\tTeam\tPoints\tEvents")
	for i := range s.Teams {
		t := &s.Teams[i]
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n",
			t.Place, t.Name, t.TotalPoints, seasonResults(&t.SeasonEntry))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprint(w, "\nIndividuals\n")
	tw = newTable(w)
	fmt.Fprintln(tw, "Place\tName\tTeam\tClass\tPoints\tEvents")
	for i := range s.Individuals {
		a := &s.Individuals[i]
		fmt.Fprintf(tw, "%d\t%s %s\t%s\t%s\t%d\t%s\n",
			a.Place, a.FirstName, a.LastName, a.Team, a.Class, a.TotalPoints,
			seasonResults(&a.SeasonEntry))
	}
	return tw.Flush()
}
