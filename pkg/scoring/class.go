package scoring

import (
	"slices"
	"strings"
)

// class categories used as filters
const (
	ClassVarsity = "Varsity"
	ClassJV      = "JV"
)

var (
	varsityCodes = []string{"V", "VM", "VF", "VARSITY"}
	jvCodes      = []string{"JV", "JVM", "JVF"}
)

func normalizeClass(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}

// ClassMatches reports whether the raw class code belongs to filter.
// Varsity and JV match their code families, any other filter needs an exact
// case insensitive match. An empty filter matches every code.
func ClassMatches(code, filter string) bool {
	f := normalizeClass(filter)
	if f == "" {
		return true
	}
	c := normalizeClass(code)
	switch f {
	case normalizeClass(ClassVarsity):
		return slices.Contains(varsityCodes, c)
	case normalizeClass(ClassJV):
		return slices.Contains(jvCodes, c)
	}
	return c == f
}

// ClassCategory maps a raw class code to Varsity or JV.
// The empty string is returned for unrecognized codes.
func ClassCategory(code string) string {
	c := normalizeClass(code)
	switch {
	case slices.Contains(varsityCodes, c):
		return ClassVarsity
	case slices.Contains(jvCodes, c):
		return ClassJV
	}
	return ""
}
