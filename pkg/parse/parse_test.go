//nolint:funlen,lll // ok for tests
package parse

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/skirace-standings-go/pkg/model"
)

func ms(v int64) null.Val[time.Duration] {
	return null.From(time.Duration(v) * time.Millisecond)
}

func parseFile(t *testing.T, name string) *model.Race {
	t.Helper()
	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()
	race, err := ParseRace(f)
	require.NoError(t, err)
	return race
}

func TestParseRace_singleCourse(t *testing.T) {
	race := parseFile(t, "testdata/boys-slalom.xml")

	if diff := cmp.Diff(model.RaceHeader{
		Name:       "Boys Slalom Invitational",
		Date:       "2024-01-01",
		Location:   "Powder Ridge",
		Discipline: "SL",
		RaceType:   model.RaceTypeSingleCourse,
		Courses:    []string{"Upper Bowl"},
	}, race.Header); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, race.Racers, 3)

	erik := race.Racers[0]
	assert.Equal(t, "Erik", erik.FirstName)
	assert.Equal(t, "St Cloud Breakaways Ski Team", erik.Team)
	assert.Equal(t, model.GenderMale, erik.Gender)
	assert.Equal(t, ms(30120), erik.Run1)
	assert.Equal(t, ms(31050), erik.Run2)
	assert.Equal(t, ms(61170), erik.TotalTime)
	assert.Equal(t, model.StatusOK, erik.Status)

	jonas := race.Racers[1]
	assert.Equal(t, model.GenderMale, jonas.Gender, "derived from race name")
	assert.True(t, jonas.DNF)
	assert.Equal(t, model.StatusDNF, jonas.Status)
	assert.True(t, jonas.Run2.IsNull())

	sam := race.Racers[2]
	assert.True(t, sam.DSQ)
	assert.Equal(t, ms(61070), sam.Run1)
	assert.False(t, sam.Finished())
}

func TestParseRace_dualCourse(t *testing.T) {
	race := parseFile(t, "testdata/girls-gs.xml")
	assert.Equal(t, "Girls GS", race.Header.Name)
	assert.Equal(t, "2024-01-13", race.Header.Date)
	assert.Equal(t, "Buck Hill", race.Header.Location)
	assert.Equal(t, "GS", race.Header.Discipline)
	assert.Equal(t, model.RaceTypeDualCourse, race.Header.RaceType)
	assert.Equal(t, []string{"Red", "Blue"}, race.Header.Courses)

	anna := race.Racers[0]
	assert.Equal(t, model.GenderFemale, anna.Gender)
	assert.Equal(t, ms(39250), anna.Run1)
	assert.Equal(t, ms(40500), anna.Run2)
	assert.Equal(t, ms(79750), anna.TotalTime)

	ida := race.Racers[1]
	assert.Equal(t, model.GenderFemale, ida.Gender)
	assert.True(t, ida.DSQ)
	assert.True(t, ida.TotalTime.IsNull())
}

func TestParseRace_noCompetitors(t *testing.T) {
	f, err := os.Open("testdata/empty.xml")
	require.NoError(t, err)
	defer f.Close()
	_, err = ParseRace(f)
	assert.ErrorIs(t, err, ErrNoCompetitors)
}

func TestParseRace_malformed(t *testing.T) {
	_, err := ParseRace(strings.NewReader("<Race><Comp><Bib>1</Bib>"))
	assert.Error(t, err)
}

func TestParseRace_unknownDate(t *testing.T) {
	race, err := ParseRace(strings.NewReader(
		"<Race><Date>sometime</Date><Comp><Bib>1</Bib><Class>VF</Class></Comp></Race>"))
	require.NoError(t, err)
	assert.Equal(t, model.UnknownDate, race.Header.Date)
	assert.Equal(t, model.GenderFemale, race.Racers[0].Gender)
}

func TestSerialDate(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOk bool
	}{
		{"25569", "1970-01-01", true},
		{"45292", "2024-01-01", true},
		{"45292.75", "2024-01-01", true},
		{"2024-01-01", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := SerialDate(tt.in)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	for in, want := range map[string]string{
		"2024-01-13": "2024-01-13",
		"01/13/2024": "2024-01-13",
		"1/5/2024":   "2024-01-05",
	} {
		got, ok := ParseDate(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseDate("13.01.2024")
	assert.False(t, ok)
}
