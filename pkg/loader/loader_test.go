package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestReadManifest(t *testing.T) {
	m, err := ReadManifest("testdata/season.yml")
	assert.NilError(t, err)
	assert.Equal(t, m.Name, "Central Conference 2024")
	assert.Equal(t, len(m.Races), 5)
	files := m.Files("testdata/season.yml")
	assert.Equal(t, files[0], filepath.Join("testdata", "races", "boys-slalom.xml"))
}

func TestReadManifest_missing(t *testing.T) {
	_, err := ReadManifest("testdata/none.yml")
	assert.Assert(t, err != nil)
}

func TestLoader_Load(t *testing.T) {
	l := New("testdata/season.yml")
	season, err := l.Load(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, season.Name, "Central Conference 2024")
	// broken and missing files are skipped
	assert.Assert(t, is.Len(season.Events, 2))

	first := season.Events[0]
	assert.Equal(t, first.Date, "2024-01-01")
	assert.Equal(t, first.Name, "Slalom Invitational")
	assert.Assert(t, is.Len(first.Races, 1))

	second := season.Events[1]
	assert.Equal(t, second.Date, "2024-01-13")
	assert.Assert(t, is.Len(second.Races, 2))
	assert.Equal(t, second.Location, "Powder Ridge")
	assert.Equal(t, len(second.Racers()), 5)

	// second load is served from the cache and yields the same data
	again, err := l.Load(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, again.Events[0].Races[0], first.Races[0])
}

func TestLoader_Load_noRaces(t *testing.T) {
	_, err := New("testdata/nothing.yml").Load(context.Background())
	assert.Assert(t, errors.Is(err, ErrNoRaces))
}

func TestLoader_Watch(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile("testdata/races/boys-slalom.xml")
	assert.NilError(t, err)
	race := filepath.Join(dir, "race.xml")
	assert.NilError(t, os.WriteFile(race, data, 0o600))
	manifest := filepath.Join(dir, "season.yml")
	assert.NilError(t, os.WriteFile(manifest, []byte("name: watch\nraces:\n  - race.xml\n"), 0o600))

	changes := make(chan Change, 10)
	l := New(manifest, WithChanges(changes))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- l.Watch(ctx) }()

	// the watcher may not be registered yet, so keep touching the file
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	var got Change
wait:
	for {
		select {
		case got = <-changes:
			if got.File == race {
				break wait
			}
		case <-tick.C:
			assert.NilError(t, os.WriteFile(race, data, 0o600))
		case <-deadline:
			t.Fatal("no change received")
		}
	}
	assert.Equal(t, got.File, race)

	cancel()
	assert.NilError(t, <-done)
}
