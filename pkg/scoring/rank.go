package scoring

import (
	"cmp"
	"slices"
)

// Ranked is an item together with its competition rank
type Ranked[T any] struct {
	Item T
	Rank int
}

// RankAscending sorts a copy of items ascending by value (stable) and assigns
// competition ranks: an item equal in value to its predecessor shares the
// predecessor's rank, every other item is ranked by its 1-based position.
// Values 61, 61, 62, 63 get ranks 1, 1, 3, 4.
func RankAscending[T any, V cmp.Ordered](items []T, value func(T) V) []Ranked[T] {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return cmp.Compare(value(a), value(b))
	})
	ret := make([]Ranked[T], len(sorted))
	for i, item := range sorted {
		rank := i + 1
		if i > 0 && value(sorted[i-1]) == value(item) {
			rank = ret[i-1].Rank
		}
		ret[i] = Ranked[T]{Item: item, Rank: rank}
	}
	return ret
}

// RankDescending is RankAscending for "higher is better" values
func RankDescending[T any](items []T, value func(T) int) []Ranked[T] {
	return RankAscending(items, func(item T) int { return -value(item) })
}

// PointsForPlace returns fieldSize-place+1 for places within the field, 0 otherwise
func PointsForPlace(place, fieldSize int) int {
	if place < 1 || place > fieldSize {
		return 0
	}
	return fieldSize - place + 1
}
