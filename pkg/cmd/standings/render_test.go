package standings

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/skirace-standings-go/pkg/model"
	"github.com/mpapenbr/skirace-standings-go/pkg/scoring"
)

func racer(first, team string, ms int) model.Racer {
	total := time.Duration(ms) * time.Millisecond
	return model.Racer{
		FirstName: first, LastName: "Test", Bib: first, Team: team,
		Gender: model.GenderMale, Class: "VM",
		Run1: null.From(total), TotalTime: null.From(total), Status: model.StatusOK,
	}
}

func testEngine() *scoring.Engine {
	return scoring.NewEngine(scoring.WithScoringTeams("Alpha", "Beta"))
}

func TestPrintIndividual(t *testing.T) {
	racers := []model.Racer{
		racer("Anton", "Alpha", 61000),
		racer("Bert", "Beta", 62000),
		racer("Carl", "Other", 60000),
	}
	var buf bytes.Buffer
	require.NoError(t, printIndividual(&buf,
		testEngine().Individual(racers, model.GenderMale, "")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Place"))
	assert.Contains(t, lines[1], "Anton Test")
	assert.Contains(t, lines[1], "1:01.00")
	assert.True(t, strings.HasPrefix(lines[3], "-"), "non eligible racer has no place")
	assert.Contains(t, lines[3], "Carl Test")
}

func TestPrintTeams(t *testing.T) {
	racers := []model.Racer{
		racer("Anton", "Alpha", 61000),
		racer("Bert", "Alpha", 62000),
		racer("Carl", "Beta", 60000),
	}
	var buf bytes.Buffer
	require.NoError(t, printTeams(&buf,
		testEngine().TeamStandings(racers, model.GenderMale, scoring.ClassVarsity, 0)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "Alpha")
	assert.Contains(t, lines[1], "Anton Test (2), Bert Test (1)")
	assert.Contains(t, lines[2], "Beta")
}

func TestPrintSeasonMarksDropped(t *testing.T) {
	events := []*model.Event{
		{Date: "2024-01-01", Name: "One", Races: []*model.Race{{Racers: []model.Racer{
			racer("Anton", "Alpha", 61000), racer("Bert", "Beta", 62000),
		}}}},
		{Date: "2024-01-08", Name: "Two", Races: []*model.Race{{Racers: []model.Racer{
			racer("Anton", "Alpha", 63000), racer("Bert", "Beta", 62000),
		}}}},
	}
	var buf bytes.Buffer
	require.NoError(t, printSeason(&buf,
		testEngine().Season(events, model.GenderMale, "")))

	out := buf.String()
	assert.Contains(t, out, "Season over 2 events, 1 counted")
	assert.Contains(t, out, "2 (1)")
}
