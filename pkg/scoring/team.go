package scoring

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/aarondl/opt/null"

	"github.com/mpapenbr/skirace-standings-go/log"
	"github.com/mpapenbr/skirace-standings-go/pkg/model"
)

// TeamMember is a racer scored within its gender and class
type TeamMember struct {
	Racer         model.Racer   `json:"racer"`
	TeamPlace     null.Val[int] `json:"teamPlace"`
	TeamPoints    int           `json:"teamPoints"`
	TeamFieldSize int           `json:"teamFieldSize"`
	IsScoring     bool          `json:"isScoring"`
}

type TeamStanding struct {
	Name        string       `json:"name"`
	Members     []TeamMember `json:"members"` // descending by team points
	Scoring     []TeamMember `json:"scoring"` // up to topN members with points
	TotalPoints int          `json:"totalPoints"`
	Place       int          `json:"place"`
}

// TeamStandings computes the team standings of gender and class.
// Team points are scored within the gender/class pool regardless of the
// individual allow-list. A team scores the sum of its best topN members,
// topN <= 0 uses the engine default.
// Teams with equal totals share a place (1,1,3); the tie-break only orders them.
//
//nolint:funlen // readability
func (e *Engine) TeamStandings(
	racers []model.Racer, gender model.Gender, class string, topN int,
) []TeamStanding {
	if topN <= 0 {
		topN = e.topN
	}
	pool := make([]*TeamMember, 0, len(racers))
	finishers := make([]*TeamMember, 0, len(racers))
	for i := range racers {
		r := &racers[i]
		if r.Gender != gender || !ClassMatches(r.Class, class) {
			continue
		}
		m := &TeamMember{Racer: *r}
		pool = append(pool, m)
		if r.Finished() {
			finishers = append(finishers, m)
		}
	}
	fieldSize := len(pool)
	for _, m := range pool {
		m.TeamFieldSize = fieldSize
	}
	for _, item := range RankAscending(finishers, func(m *TeamMember) time.Duration {
		return m.Racer.TotalTime.GetOr(0)
	}) {
		item.Item.TeamPlace = null.From(item.Rank)
		item.Item.TeamPoints = PointsForPlace(item.Rank, fieldSize)
	}

	teams := make([]*TeamStanding, 0)
	lookup := make(map[string]*TeamStanding)
	for _, m := range pool {
		name := strings.TrimSpace(m.Racer.Team)
		if name == "" {
			continue
		}
		t, ok := lookup[name]
		if !ok {
			t = &TeamStanding{Name: name}
			lookup[name] = t
			teams = append(teams, t)
		}
		t.Members = append(t.Members, *m)
	}

	for _, t := range teams {
		slices.SortStableFunc(t.Members, func(a, b TeamMember) int {
			return cmp.Compare(b.TeamPoints, a.TeamPoints)
		})
		for i := range t.Members {
			if len(t.Scoring) == topN || t.Members[i].TeamPoints <= 0 {
				break
			}
			t.Members[i].IsScoring = true
			t.Scoring = append(t.Scoring, t.Members[i])
			t.TotalPoints += t.Members[i].TeamPoints
		}
	}

	if e.tieBreak == TieBreakAlphabetical {
		slices.SortStableFunc(teams, func(a, b *TeamStanding) int {
			return strings.Compare(a.Name, b.Name)
		})
	}
	ranked := RankDescending(teams, func(t *TeamStanding) int { return t.TotalPoints })
	ret := make([]TeamStanding, 0, len(ranked))
	for _, item := range ranked {
		item.Item.Place = item.Rank
		ret = append(ret, *item.Item)
	}
	e.l.Debug("team standings computed",
		log.String("gender", string(gender)),
		log.String("class", class),
		log.Int("fieldSize", fieldSize),
		log.Int("teams", len(ret)))
	return ret
}
