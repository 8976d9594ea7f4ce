// Package view contains helpers used by the presentation layer to navigate
// computed standings.
package view

import (
	"errors"
	"strings"

	"github.com/samber/lo"

	"github.com/mpapenbr/skirace-standings-go/pkg/model"
)

const (
	DefaultPageSize = 25
	MaxPageSize     = 200
)

var ErrEventNotFound = errors.New("event not found")

type Page[T any] struct {
	Items    []T `json:"items"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
	Pages    int `json:"pages"`
}

// Paginate returns the 1-based page of items. Page and size are clamped to
// valid values.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	size = min(size, MaxPageSize)
	pages := (len(items) + size - 1) / size
	page = max(1, min(page, max(pages, 1)))
	start := min((page-1)*size, len(items))
	end := min(start+size, len(items))
	return Page[T]{
		Items:    items[start:end],
		Page:     page,
		PageSize: size,
		Total:    len(items),
		Pages:    pages,
	}
}

// FindEvent returns the event of the given date
func FindEvent(season *model.Season, date string) (*model.Event, error) {
	if ev, ok := lo.Find(season.Events, func(e *model.Event) bool {
		return e.Date == date
	}); ok {
		return ev, nil
	}
	return nil, ErrEventNotFound
}

type EventRef struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

type AthleteHit struct {
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	Team      string       `json:"team"`
	Gender    model.Gender `json:"gender"`
	Class     string       `json:"class"`
	Bibs      []string     `json:"bibs"`
	Events    []EventRef   `json:"events"`
}

// SearchAthletes finds athletes whose name or bib contains query (case
// insensitive). Athletes are identified by name and team.
func SearchAthletes(season *model.Season, query string) []AthleteHit {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []AthleteHit{}
	}
	type key struct{ first, last, team string }
	hits := make([]*AthleteHit, 0)
	lookup := make(map[key]*AthleteHit)
	for _, ev := range season.Events {
		for _, r := range ev.Racers() {
			if !strings.Contains(strings.ToLower(r.FullName()), q) &&
				!strings.Contains(strings.ToLower(r.Bib), q) {
				continue
			}
			k := r.Key()
			hk := key{k.FirstName, k.LastName, k.Team}
			h, ok := lookup[hk]
			if !ok {
				h = &AthleteHit{
					FirstName: k.FirstName, LastName: k.LastName, Team: k.Team,
					Gender: r.Gender, Class: r.Class,
				}
				lookup[hk] = h
				hits = append(hits, h)
			}
			if !lo.Contains(h.Bibs, k.Bib) {
				h.Bibs = append(h.Bibs, k.Bib)
			}
			ref := EventRef{Date: ev.Date, Name: ev.Name}
			if !lo.Contains(h.Events, ref) {
				h.Events = append(h.Events, ref)
			}
		}
	}
	return lo.Map(hits, func(h *AthleteHit, _ int) AthleteHit { return *h })
}
