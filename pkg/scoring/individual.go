package scoring

import (
	"time"

	"github.com/aarondl/opt/null"

	"github.com/mpapenbr/skirace-standings-go/log"
	"github.com/mpapenbr/skirace-standings-go/pkg/model"
)

// IndividualResult is the outcome of individual scoring for one racer
type IndividualResult struct {
	Racer     model.Racer   `json:"racer"`
	Run1Rank  null.Val[int] `json:"run1Rank"`
	Run2Rank  null.Val[int] `json:"run2Rank"`
	Place     null.Val[int] `json:"place"`
	Points    int           `json:"points"`
	FieldSize int           `json:"fieldSize"`
	Run1Count int           `json:"run1Count"`
	Run2Count int           `json:"run2Count"`
	// team is on the scoring allow-list
	Eligible bool `json:"eligible"`
}

// Individual computes the individual results of gender.
// Only racers of allow-listed teams define the field size and receive
// places and points, all racers of the gender are returned.
// Ordering: placed finishers, eligible non-finishers, non-eligible racers.
// classFilter (may be empty) only restricts the returned list.
//
//nolint:funlen // readability
func (e *Engine) Individual(
	racers []model.Racer, gender model.Gender, classFilter string,
) []IndividualResult {
	all := make([]*IndividualResult, 0, len(racers))
	for i := range racers {
		if racers[i].Gender != gender {
			continue
		}
		all = append(all, &IndividualResult{Racer: racers[i]})
	}

	run1Count := assignRunRanks(all,
		func(r *IndividualResult) null.Val[time.Duration] { return r.Racer.Run1 },
		func(r *IndividualResult, rank int) { r.Run1Rank = null.From(rank) })
	run2Count := assignRunRanks(all,
		func(r *IndividualResult) null.Val[time.Duration] { return r.Racer.Run2 },
		func(r *IndividualResult, rank int) { r.Run2Rank = null.From(rank) })

	var eligible, finishers, nonFinishers, others []*IndividualResult
	for _, r := range all {
		if e.policy.Matches(r.Racer.Team) {
			r.Eligible = true
			eligible = append(eligible, r)
			if r.Racer.Finished() {
				finishers = append(finishers, r)
			} else {
				nonFinishers = append(nonFinishers, r)
			}
		} else {
			others = append(others, r)
		}
	}
	fieldSize := len(eligible)
	for _, r := range all {
		r.FieldSize = fieldSize
		r.Run1Count = run1Count
		r.Run2Count = run2Count
	}

	ranked := RankAscending(finishers, func(r *IndividualResult) time.Duration {
		return r.Racer.TotalTime.GetOr(0)
	})

	ret := make([]IndividualResult, 0, len(all))
	for _, item := range ranked {
		item.Item.Place = null.From(item.Rank)
		item.Item.Points = PointsForPlace(item.Rank, fieldSize)
		ret = appendFiltered(ret, item.Item, classFilter)
	}
	for _, r := range nonFinishers {
		ret = appendFiltered(ret, r, classFilter)
	}
	for _, r := range others {
		ret = appendFiltered(ret, r, classFilter)
	}
	e.l.Debug("individual results computed",
		log.String("gender", string(gender)),
		log.String("class", classFilter),
		log.Int("racers", len(all)),
		log.Int("fieldSize", fieldSize),
		log.Int("finishers", len(finishers)))
	return ret
}

func appendFiltered(
	list []IndividualResult, r *IndividualResult, classFilter string,
) []IndividualResult {
	if classFilter != "" && !ClassMatches(r.Racer.Class, classFilter) {
		return list
	}
	return append(list, *r)
}

// assignRunRanks ranks all items with a run time and returns their count
func assignRunRanks[T any](
	items []T,
	run func(T) null.Val[time.Duration],
	set func(T, int),
) int {
	withTime := make([]T, 0, len(items))
	for _, item := range items {
		if run(item).IsSet() {
			withTime = append(withTime, item)
		}
	}
	for _, r := range RankAscending(withTime, func(item T) time.Duration {
		return run(item).GetOr(0)
	}) {
		set(r.Item, r.Rank)
	}
	return len(withTime)
}
