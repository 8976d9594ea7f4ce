package scoring

import (
	"time"

	"github.com/aarondl/opt/null"

	"github.com/mpapenbr/skirace-standings-go/pkg/model"
)

type racerOption func(r *model.Racer)

func withStatus(s model.Status) racerOption {
	return func(r *model.Racer) {
		r.Status = s
		r.DNF = s == model.StatusDNF
		r.DSQ = s == model.StatusDSQ
	}
}

func withRuns(run1, run2 int64) racerOption {
	return func(r *model.Racer) {
		r.Run1 = null.From(time.Duration(run1) * time.Millisecond)
		r.Run2 = null.From(time.Duration(run2) * time.Millisecond)
	}
}

func withoutTime() racerOption {
	return func(r *model.Racer) {
		r.TotalTime = null.Val[time.Duration]{}
	}
}

// racer creates a finished racer with given total time in milliseconds
func racer(
	name, team string, gender model.Gender, class string, totalMs int64,
	opts ...racerOption,
) model.Racer {
	r := model.Racer{
		FirstName: name,
		LastName:  "Test",
		Bib:       name,
		Team:      team,
		Gender:    gender,
		Class:     class,
		TotalTime: null.From(time.Duration(totalMs) * time.Millisecond),
		Status:    model.StatusOK,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func places(results []IndividualResult) []null.Val[int] {
	ret := make([]null.Val[int], len(results))
	for i := range results {
		ret[i] = results[i].Place
	}
	return ret
}

func points(results []IndividualResult) []int {
	ret := make([]int, len(results))
	for i := range results {
		ret[i] = results[i].Points
	}
	return ret
}

func names(results []IndividualResult) []string {
	ret := make([]string, len(results))
	for i := range results {
		ret[i] = results[i].Racer.FirstName
	}
	return ret
}

func testEngine(opts ...Option) *Engine {
	return NewEngine(append([]Option{WithScoringTeams("Alpha", "Beta")}, opts...)...)
}
