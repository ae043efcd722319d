// Package rating holds the pure matchmaking math: greedy team balancing and
// Elo expectation/delta computation. Nothing here touches storage.
package rating

import (
	"math"
	"sort"
)

// DefaultKFactor is the Elo K used when the caller does not override it.
const DefaultKFactor = 24

// Rated is the minimal view of a participant the balancer needs.
type Rated struct {
	UserID string
	Rating int
}

// Teams is the outcome of a balancing pass.
type Teams struct {
	TeamA []Rated
	TeamB []Rated
	SumA  int
	SumB  int
}

// Diff returns the absolute cumulative rating gap between the teams.
func (t Teams) Diff() int {
	d := t.SumA - t.SumB
	if d < 0 {
		return -d
	}
	return d
}

// BalanceTeams sorts players descending by rating and greedily assigns each
// to whichever team currently has the lower cumulative rating, capped at
// teamSize per team. The sort is stable, so equal ratings keep their input
// order and the result is deterministic.
func BalanceTeams(players []Rated, teamSize int) Teams {
	sorted := make([]Rated, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})

	var t Teams
	for _, p := range sorted {
		if len(t.TeamA) < teamSize && (t.SumA <= t.SumB || len(t.TeamB) >= teamSize) {
			t.TeamA = append(t.TeamA, p)
			t.SumA += p.Rating
		} else {
			t.TeamB = append(t.TeamB, p)
			t.SumB += p.Rating
		}
	}
	return t
}

// ExpectedScore is the logistic Elo expectation of team A against team B.
func ExpectedScore(avgA, avgB int) float64 {
	return 1 / (1 + math.Pow(10, float64(avgB-avgA)/400))
}

// ComputeDeltas returns the per-member rating change for each team given the
// winner ("A", "B", or anything else for a draw). The delta is applied
// identically to every member of a team.
func ComputeDeltas(avgA, avgB int, winner string, k int) (deltaA, deltaB int) {
	ea := ExpectedScore(avgA, avgB)
	eb := 1 - ea

	var sa, sb float64
	switch winner {
	case "A":
		sa, sb = 1, 0
	case "B":
		sa, sb = 0, 1
	default:
		sa, sb = 0.5, 0.5
	}

	deltaA = int(math.Round(float64(k) * (sa - ea)))
	deltaB = int(math.Round(float64(k) * (sb - eb)))
	return deltaA, deltaB
}

// TeamAverage rounds the mean rating of a team. The caller guarantees a
// non-empty team.
func TeamAverage(team []Rated) int {
	sum := 0
	for _, p := range team {
		sum += p.Rating
	}
	return int(math.Round(float64(sum) / float64(len(team))))
}
