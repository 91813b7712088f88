package roster

import (
	"errors"
	"fmt"
)

// Position is the broad role a player occupies. It drives the weighting a
// player contributes to team attack/defense and the likelihood of being
// picked as scorer, fouler or ball winner.
type Position string

const (
	Goalkeeper Position = "GK"
	Defender   Position = "DF"
	Midfielder Position = "MF"
	Forward    Position = "FW"
)

const (
	// StartersRequired is the number of players a team must field at kickoff.
	StartersRequired = 11

	RatingMin = 1
	RatingMax = 100
)

// ErrInvalidRoster is returned when a team fails validation at match
// construction. It is never produced once a simulation has started.
var ErrInvalidRoster = errors.New("invalid roster")

// Player is an immutable description of a squad member. Ratings are on a
// 1-100 scale and never change during a match; the engine derives effective
// ratings from these plus live fitness and card state.
type Player struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Number     int      `json:"number"`
	Pos        Position `json:"position"`
	Attack     int      `json:"attack"`
	Defense    int      `json:"defense"`
	Stamina    int      `json:"stamina"`    // higher = slower fitness decay
	Discipline int      `json:"discipline"` // higher = fewer fouls and cards
}

// Team is the read-only input to a match: eleven starters plus an ordered
// bench. It is shared by reference across parallel simulations and must
// never be mutated after construction.
type Team struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Venue    string   `json:"venue"`
	Starters []Player `json:"starters"`
	Bench    []Player `json:"bench"`
}

// Validate checks the roster invariants: exactly eleven starters, exactly
// one starting goalkeeper, no duplicate player IDs across starters and
// bench, and every rating inside the 1-100 scale. All violations wrap
// ErrInvalidRoster.
func (t *Team) Validate() error {
	if len(t.Starters) != StartersRequired {
		return fmt.Errorf("%w: team %q has %d starters, want %d",
			ErrInvalidRoster, t.Name, len(t.Starters), StartersRequired)
	}

	keepers := 0
	seen := make(map[int64]struct{}, len(t.Starters)+len(t.Bench))
	for _, p := range t.all() {
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: team %q has duplicate player id %d",
				ErrInvalidRoster, t.Name, p.ID)
		}
		seen[p.ID] = struct{}{}
		if err := p.validateRatings(); err != nil {
			return fmt.Errorf("%w: team %q player %q: %v",
				ErrInvalidRoster, t.Name, p.Name, err)
		}
	}
	for _, p := range t.Starters {
		if p.Pos == Goalkeeper {
			keepers++
		}
	}
	if keepers != 1 {
		return fmt.Errorf("%w: team %q starts %d goalkeepers, want 1",
			ErrInvalidRoster, t.Name, keepers)
	}
	return nil
}

func (t *Team) all() []Player {
	out := make([]Player, 0, len(t.Starters)+len(t.Bench))
	out = append(out, t.Starters...)
	out = append(out, t.Bench...)
	return out
}

// FindPlayer returns the squad member with the given ID, searching starters
// then bench.
func (t *Team) FindPlayer(id int64) (Player, bool) {
	for _, p := range t.all() {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

func (p Player) validateRatings() error {
	for _, r := range [...]struct {
		name string
		val  int
	}{
		{"attack", p.Attack},
		{"defense", p.Defense},
		{"stamina", p.Stamina},
		{"discipline", p.Discipline},
	} {
		if r.val < RatingMin || r.val > RatingMax {
			return fmt.Errorf("%s rating %d outside %d-%d", r.name, r.val, RatingMin, RatingMax)
		}
	}
	return nil
}
