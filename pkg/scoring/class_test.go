package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassMatches(t *testing.T) {
	tests := []struct {
		code   string
		filter string
		want   bool
	}{
		{"VF", "Varsity", true},
		{"vm", "Varsity", true},
		{"V", "Varsity", true},
		{" Varsity ", "varsity", true},
		{"JVM", "JV", true},
		{"JVF", "jv", true},
		{"V", "JV", false},
		{"JV", "Varsity", false},
		{"B", "b", true},
		{"B", "C", false},
		{"X", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.code+"/"+tt.filter, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassMatches(tt.code, tt.filter))
		})
	}
}

func TestClassCategory(t *testing.T) {
	assert.Equal(t, ClassVarsity, ClassCategory("vf"))
	assert.Equal(t, ClassVarsity, ClassCategory("VARSITY"))
	assert.Equal(t, ClassJV, ClassCategory("JVM"))
	assert.Equal(t, "", ClassCategory("U14"))
	assert.Equal(t, "", ClassCategory(""))
}

func TestSubstringAllowList(t *testing.T) {
	l := NewAllowList("St Cloud", "Lakes Area Storm", " ")
	assert.True(t, l.Matches("St Cloud Breakaways Ski Team"))
	assert.True(t, l.Matches("st cloud"))
	assert.True(t, l.Matches("Lakes Area"))
	assert.False(t, l.Matches("Duluth"))
	assert.False(t, l.Matches(""))
	assert.False(t, l.Matches("   "))
}

func TestDivisions(t *testing.T) {
	d := Divisions()
	assert.Len(t, d, 4)
	assert.Equal(t, "Boys Varsity", d[0].Label)
	assert.Equal(t, "Girls JV", d[3].Label)
}

func TestParseTieBreak(t *testing.T) {
	tb, err := ParseTieBreak("alphabetical")
	assert.NoError(t, err)
	assert.Equal(t, TieBreakAlphabetical, tb)
	_, err = ParseTieBreak("coin")
	assert.Error(t, err)
}
