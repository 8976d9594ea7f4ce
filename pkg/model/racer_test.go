package model

import (
	"testing"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/stretchr/testify/assert"
)

func TestParseGender(t *testing.T) {
	tests := []struct {
		in   string
		want Gender
	}{
		{"M", GenderMale},
		{" f ", GenderFemale},
		{"Boys", GenderMale},
		{"female", GenderFemale},
		{"x", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseGender(tt.in))
		})
	}
}

func TestRacer_Finished(t *testing.T) {
	r := Racer{TotalTime: null.From(61 * time.Second)}
	assert.True(t, r.Finished())
	r.DNF = true
	assert.False(t, r.Finished())
	assert.False(t, (&Racer{}).Finished())
}

func TestEvent_Racers(t *testing.T) {
	e := &Event{Races: []*Race{
		{Racers: []Racer{{Bib: "1"}}},
		{Racers: []Racer{{Bib: "2"}, {Bib: "3"}}},
	}}
	got := e.Racers()
	assert.Len(t, got, 3)
	got[0].Bib = "changed"
	assert.Equal(t, "1", e.Races[0].Racers[0].Bib)
}
