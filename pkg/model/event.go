package model

// Event groups all races of one calendar date
type Event struct {
	Date       string  `json:"date"`
	Name       string  `json:"name"`
	Location   string  `json:"location"`
	Discipline string  `json:"discipline"`
	Races      []*Race `json:"races"`
}

// Racers returns a fresh copy of all racers of all races of the event
func (e *Event) Racers() []Racer {
	n := 0
	for _, r := range e.Races {
		n += len(r.Racers)
	}
	ret := make([]Racer, 0, n)
	for _, r := range e.Races {
		ret = append(ret, r.Racers...)
	}
	return ret
}

// Season is an immutable snapshot of all events, ordered by date
type Season struct {
	Name   string   `json:"name"`
	Events []*Event `json:"events"`
}
