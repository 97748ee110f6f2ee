package club

import (
	"math"
	"sort"
)

// Match is a club paired with its distance from the target.
type Match struct {
	Club       Club    `json:"club"`
	Difference float64 `json:"difference"` // |reference - adjusted|
}

// MatchClub returns the club whose reference distance is closest to
// adjusted. On a tie the club listed first in the table wins. A
// non-finite adjusted distance is InvalidInput.
func MatchClub(adjusted float64, table Table) (Match, error) {
	if table.Len() == 0 {
		return Match{}, ErrEmptyTable
	}
	if !finite(adjusted) {
		return Match{}, invalid("adjustedDistance")
	}

	best := Match{Difference: math.Inf(1)}
	for _, c := range table.clubs {
		diff := math.Abs(c.ReferenceDistance - adjusted)
		if diff < best.Difference {
			best = Match{Club: c, Difference: diff}
		}
	}
	return best, nil
}

// Rank orders every club by distance from adjusted. The sort is stable so
// ties keep table order, and Rank(...)[0] always equals MatchClub.
func Rank(adjusted float64, table Table) ([]Match, error) {
	if table.Len() == 0 {
		return nil, ErrEmptyTable
	}
	if !finite(adjusted) {
		return nil, invalid("adjustedDistance")
	}

	out := make([]Match, 0, table.Len())
	for _, c := range table.clubs {
		out = append(out, Match{Club: c, Difference: math.Abs(c.ReferenceDistance - adjusted)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Difference < out[j].Difference
	})
	return out, nil
}
