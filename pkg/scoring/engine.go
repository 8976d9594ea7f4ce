// Package scoring computes individual, team and season standings of alpine
// ski races. All functions work on copies of the supplied racers and return
// freshly computed values.
package scoring

import (
	"fmt"

	"github.com/mpapenbr/skirace-standings-go/log"
	"github.com/mpapenbr/skirace-standings-go/pkg/model"
)

const DefaultTopN = 4

// TieBreak controls the order of teams with equal points.
// Tied teams always share the same place.
type TieBreak int

const (
	TieBreakEncounter    TieBreak = iota // order of first appearance
	TieBreakAlphabetical                 // by team name
)

func ParseTieBreak(s string) (TieBreak, error) {
	switch s {
	case "", "encounter":
		return TieBreakEncounter, nil
	case "alphabetical":
		return TieBreakAlphabetical, nil
	}
	return TieBreakEncounter, fmt.Errorf("unknown tie break %q", s)
}

type Engine struct {
	policy          TeamPolicy
	topN            int
	seasonTeamClass string
	tieBreak        TieBreak
	l               *log.Logger
}

type Option func(e *Engine)

func WithTeamPolicy(p TeamPolicy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}

// WithScoringTeams uses a substring allow-list of the given team names
func WithScoringTeams(teams ...string) Option {
	return func(e *Engine) {
		e.policy = NewAllowList(teams...)
	}
}

func WithTopN(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.topN = n
		}
	}
}

// WithSeasonTeamClass sets the class used for season team points when the
// season is computed without class filter.
func WithSeasonTeamClass(class string) Option {
	return func(e *Engine) {
		if class != "" {
			e.seasonTeamClass = class
		}
	}
}

func WithTieBreak(tb TieBreak) Option {
	return func(e *Engine) {
		e.tieBreak = tb
	}
}

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.l = l
	}
}

func NewEngine(opts ...Option) *Engine {
	ret := &Engine{
		policy:          NewAllowList(DefaultScoringTeams...),
		topN:            DefaultTopN,
		seasonTeamClass: ClassVarsity,
		tieBreak:        TieBreakEncounter,
		l:               log.Default().Named("scoring"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Division is one of the fixed gender/class combinations shown to users
type Division struct {
	Gender model.Gender `json:"gender"`
	Class  string       `json:"class"`
	Label  string       `json:"label"`
}

func Divisions() []Division {
	return []Division{
		{Gender: model.GenderMale, Class: ClassVarsity, Label: "Boys Varsity"},
		{Gender: model.GenderFemale, Class: ClassVarsity, Label: "Girls Varsity"},
		{Gender: model.GenderMale, Class: ClassJV, Label: "Boys JV"},
		{Gender: model.GenderFemale, Class: ClassJV, Label: "Girls JV"},
	}
}
