package model

type RaceType int

const (
	// two runs on the same course, runs are resolved by order of appearance
	RaceTypeSingleCourse RaceType = 0
	// one run on each of two courses, runs are resolved by course number
	RaceTypeDualCourse RaceType = 1
)

const UnknownDate = "unknown"

type RaceHeader struct {
	Name       string   `json:"name"`
	Date       string   `json:"date"` // YYYY-MM-DD or UnknownDate
	Location   string   `json:"location"`
	Discipline string   `json:"discipline"`
	RaceType   RaceType `json:"raceType"`
	Courses    []string `json:"courses"`
}

type Race struct {
	Header RaceHeader `json:"header"`
	Source string     `json:"source"` // file the race was read from
	Racers []Racer    `json:"racers"`
}
