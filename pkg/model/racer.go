package model

import (
	"strings"
	"time"

	"github.com/aarondl/opt/null"
)

type (
	Gender string
	Status string
)

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

const (
	StatusOK  Status = "OK"
	StatusDNF Status = "DNF"
	StatusDSQ Status = "DSQ"
)

// Racer is a single competitor of a race as delivered by the parser.
// Scoring never modifies a Racer, derived values are returned separately.
type Racer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Bib       string `json:"bib"`
	Team      string `json:"team"`
	Gender    Gender `json:"gender"`
	Class     string `json:"class"`

	Run1      null.Val[time.Duration] `json:"run1"`
	Run2      null.Val[time.Duration] `json:"run2"`
	TotalTime null.Val[time.Duration] `json:"totalTime"`
	DNF       bool                    `json:"dnf"`
	DSQ       bool                    `json:"dsq"`
	Status    Status                  `json:"status"`
}

// RacerKey identifies a racer within a race
type RacerKey struct {
	Bib       string
	FirstName string
	LastName  string
	Team      string
}

func (r *Racer) Key() RacerKey {
	return RacerKey{
		Bib:       strings.TrimSpace(r.Bib),
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Team:      strings.TrimSpace(r.Team),
	}
}

func (r *Racer) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(r.FirstName) + " " + strings.TrimSpace(r.LastName))
}

// Finished reports whether the racer has a total time and was neither
// disqualified nor did not finish.
func (r *Racer) Finished() bool {
	return r.TotalTime.IsSet() && !r.DNF && !r.DSQ
}

// ParseGender maps the various spellings found in timing files to M/F.
// The empty Gender is returned for unknown values.
func ParseGender(s string) Gender {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "M", "MALE", "BOY", "BOYS", "MEN":
		return GenderMale
	case "F", "W", "FEMALE", "GIRL", "GIRLS", "WOMEN":
		return GenderFemale
	}
	return ""
}
