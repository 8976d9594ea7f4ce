package scoring

import "strings"

// DefaultScoringTeams is used when no allow-list is configured
var DefaultScoringTeams = []string{
	"St Cloud",
	"Lakes Area",
	"Sartell",
	"Brainerd",
	"Alexandria",
	"Buffalo",
}

// TeamPolicy decides whether racers of a team count for individual
// field size and points.
type TeamPolicy interface {
	Matches(team string) bool
}

type TeamPolicyFunc func(team string) bool

func (f TeamPolicyFunc) Matches(team string) bool { return f(team) }

// SubstringAllowList matches a team if its name contains an allow-listed
// name or vice versa, ignoring case. "St Cloud Breakaways Ski Team" matches
// "St Cloud". Short names may produce false positives.
type SubstringAllowList struct {
	names []string
}

func NewAllowList(teams ...string) *SubstringAllowList {
	ret := &SubstringAllowList{names: make([]string, 0, len(teams))}
	for _, t := range teams {
		if n := strings.ToLower(strings.TrimSpace(t)); n != "" {
			ret.names = append(ret.names, n)
		}
	}
	return ret
}

func (a *SubstringAllowList) Matches(team string) bool {
	t := strings.ToLower(strings.TrimSpace(team))
	if t == "" {
		return false
	}
	for _, n := range a.names {
		if strings.Contains(t, n) || strings.Contains(n, t) {
			return true
		}
	}
	return false
}
