// Package fixture plans and runs rounds of matches: a deterministic
// round-robin schedule, a parallel round executor, and a Redis-backed
// kickoff queue the server pops due fixtures from.
package fixture

import "github.com/google/uuid"

// Fixture is one scheduled pairing. Round numbering is 1-based.
type Fixture struct {
	ID     uuid.UUID `json:"id"`
	Round  int       `json:"round"`
	HomeID int64     `json:"home_id"`
	AwayID int64     `json:"away_id"`
}

// Schedule builds a double round-robin: every club meets every other club
// twice, once at each venue, with the second leg mirroring the first.
// Pairings use the circle method, so the same club list always yields the
// same rotation. Club IDs must be positive; an odd-sized league gets one
// bye per round. Fewer than two clubs yields no rounds.
func Schedule(clubIDs []int64) [][]Fixture {
	if len(clubIDs) < 2 {
		return nil
	}
	ids := append([]int64(nil), clubIDs...)
	if len(ids)%2 == 1 {
		ids = append(ids, 0) // bye slot
	}
	n := len(ids)
	legRounds := n - 1

	rounds := make([][]Fixture, 0, legRounds*2)
	for r := 0; r < legRounds; r++ {
		var fs []Fixture
		for i := 0; i < n/2; i++ {
			a, b := ids[i], ids[n-1-i]
			if a == 0 || b == 0 {
				continue
			}
			home, away := a, b
			if r%2 == 1 {
				home, away = b, a // alternate venues between rounds
			}
			fs = append(fs, Fixture{ID: uuid.New(), Round: r + 1, HomeID: home, AwayID: away})
		}
		rounds = append(rounds, fs)

		// Rotate everything but the first slot.
		last := ids[n-1]
		for i := n - 1; i > 1; i-- {
			ids[i] = ids[i-1]
		}
		ids[1] = last
	}

	for r := 0; r < legRounds; r++ {
		fs := make([]Fixture, 0, len(rounds[r]))
		for _, f := range rounds[r] {
			fs = append(fs, Fixture{
				ID:     uuid.New(),
				Round:  legRounds + r + 1,
				HomeID: f.AwayID,
				AwayID: f.HomeID,
			})
		}
		rounds = append(rounds, fs)
	}
	return rounds
}
