// Package rating maintains Elo-style club ratings updated after every
// completed fixture.
package rating

import "math"

const (
	DefaultRating = 1500
	kFactor       = 24
)

// Division buckets a rating into a tier (1 strongest). Used for grouping
// leaderboards and seeding cup draws.
func Division(elo int) int {
	switch {
	case elo >= 1650:
		return 1
	case elo >= 1400:
		return 2
	default:
		return 3
	}
}

// ExpectedScore is the probability-like expectation for side A against side
// B under the logistic Elo curve.
func ExpectedScore(eloA, eloB int) float64 {
	return 1.0 / (1.0 + math.Pow(10, float64(eloB-eloA)/400.0))
}

// Update returns both clubs' new ratings after a final score. A win counts
// 1.0, a draw 0.5. The exchange is zero-sum up to rounding.
func Update(homeElo, awayElo, homeGoals, awayGoals int) (newHome, newAway int) {
	actual := 0.5
	switch {
	case homeGoals > awayGoals:
		actual = 1.0
	case awayGoals > homeGoals:
		actual = 0.0
	}
	expected := ExpectedScore(homeElo, awayElo)
	delta := int(math.Round(kFactor * (actual - expected)))
	return homeElo + delta, awayElo - delta
}
