package sim

import (
	"github.com/ksolsim/football-simulator/internal/roster"
)

// Side distinguishes the two teams of a match.
type Side int

const (
	Home Side = iota
	Away
)

func (s Side) String() string {
	if s == Home {
		return "home"
	}
	return "away"
}

func (s Side) Other() Side {
	if s == Home {
		return Away
	}
	return Home
}

// Phase is the match state machine. Transitions are driven purely by the
// clock crossing configured thresholds; FullTime is terminal.
type Phase int

const (
	NotStarted Phase = iota
	FirstHalf
	HalfTime
	SecondHalf
	FullTime
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not_started"
	case FirstHalf:
		return "first_half"
	case HalfTime:
		return "half_time"
	case SecondHalf:
		return "second_half"
	case FullTime:
		return "full_time"
	default:
		return "unknown"
	}
}

// PlayerState is the live, mutable record for one squad member during a
// match. It is owned exclusively by the engine.
type PlayerState struct {
	Player roster.Player

	OnPitch bool
	Fitness float64 // clamped to [0,1], decays monotonically with minutes
	Yellows int
	SentOff bool
	Injured bool

	EnteredAt int // minute the player came on (0 for starters)
	LeftAt    int // minute the player left the pitch, -1 while on or unused
	Minutes   int // minutes actually played

	// per-player statistic counters, maintained by the engine
	Goals, ShotsOn, ShotsOff int
	Fouls, Turnovers         int
}

// TeamState is the live record for one side.
type TeamState struct {
	Team     *roster.Team
	Players  []*PlayerState // starters first, then bench, fixed order
	SubsUsed int

	// running statistics
	goals, shotsOn, shotsOff int
	fouls, yellows, reds     int
	injuries, turnovers      int
	possessionMinutes        int
}

func newTeamState(t *roster.Team) *TeamState {
	ts := &TeamState{Team: t}
	for _, p := range t.Starters {
		ts.Players = append(ts.Players, &PlayerState{
			Player: p, OnPitch: true, Fitness: 1.0, LeftAt: -1,
		})
	}
	for _, p := range t.Bench {
		ts.Players = append(ts.Players, &PlayerState{
			Player: p, Fitness: 1.0, LeftAt: -1,
		})
	}
	return ts
}

// decayMinute credits a minute played to everyone on the pitch and applies
// the per-minute stamina drain. Keepers wear down far slower. Fitness is
// clamped to [0,1] and only ever decreases here.
func (ts *TeamState) decayMinute() {
	for _, p := range ts.Players {
		if !p.OnPitch {
			continue
		}
		p.Minutes++
		rate := 0.0055 * (1.45 - float64(p.Player.Stamina)/100)
		if p.Player.Pos == roster.Goalkeeper {
			rate *= 0.4
		}
		p.Fitness -= rate
		if p.Fitness < 0 {
			p.Fitness = 0
		}
	}
}

// OnPitch returns the players currently on the pitch, in roster order.
func (ts *TeamState) OnPitch() []*PlayerState {
	var out []*PlayerState
	for _, p := range ts.Players {
		if p.OnPitch {
			out = append(out, p)
		}
	}
	return out
}

func (ts *TeamState) OnPitchCount() int {
	n := 0
	for _, p := range ts.Players {
		if p.OnPitch {
			n++
		}
	}
	return n
}

func (ts *TeamState) find(id int64) *PlayerState {
	for _, p := range ts.Players {
		if p.Player.ID == id {
			return p
		}
	}
	return nil
}

// eligibleBench lists bench players who can still come on: never fielded,
// not injured, not sent off.
func (ts *TeamState) eligibleBench() []*PlayerState {
	var out []*PlayerState
	for _, p := range ts.Players[roster.StartersRequired:] {
		if !p.OnPitch && !p.Injured && !p.SentOff && p.EnteredAt == 0 && p.LeftAt == -1 && p.Minutes == 0 {
			out = append(out, p)
		}
	}
	return out
}

// Position weights for the aggregate team ratings. A forward contributes
// most of its attack rating, a keeper almost nothing, and vice versa.
var (
	attackWeight = map[roster.Position]float64{
		roster.Goalkeeper: 0.05,
		roster.Defender:   0.35,
		roster.Midfielder: 0.75,
		roster.Forward:    1.0,
	}
	defenseWeight = map[roster.Position]float64{
		roster.Goalkeeper: 0.9,
		roster.Defender:   1.0,
		roster.Midfielder: 0.6,
		roster.Forward:    0.2,
	}
)

// cardPenalty scales a player's effective ratings down for accumulated
// yellows. Never negative.
func (ps *PlayerState) cardPenalty() float64 {
	pen := 1.0 - 0.08*float64(ps.Yellows)
	if pen < 0 {
		pen = 0
	}
	return pen
}

// EffectiveAttack is the player's attack rating scaled by current fitness
// and card penalty, normalized to [0,1]. Always >= 0.
func (ps *PlayerState) EffectiveAttack() float64 {
	return float64(ps.Player.Attack) / float64(roster.RatingMax) * ps.Fitness * ps.cardPenalty()
}

// EffectiveDefense mirrors EffectiveAttack for the defense rating.
func (ps *PlayerState) EffectiveDefense() float64 {
	return float64(ps.Player.Defense) / float64(roster.RatingMax) * ps.Fitness * ps.cardPenalty()
}

// Attack is the side's aggregate attacking strength: the position-weighted
// sum of on-pitch effective attack ratings over a fixed eleven-player
// divisor, so a side reduced by red cards or unreplaceable injuries is
// proportionally weaker.
func (ts *TeamState) Attack() float64 {
	total := 0.0
	for _, p := range ts.Players {
		if p.OnPitch {
			total += attackWeight[p.Player.Pos] * p.EffectiveAttack()
		}
	}
	return total / float64(roster.StartersRequired)
}

// Defense is the defensive counterpart of Attack.
func (ts *TeamState) Defense() float64 {
	total := 0.0
	for _, p := range ts.Players {
		if p.OnPitch {
			total += defenseWeight[p.Player.Pos] * p.EffectiveDefense()
		}
	}
	return total / float64(roster.StartersRequired)
}

// avgDiscipline is the mean discipline rating of the on-pitch players,
// normalized to [0,1]. Defaults to 0.5 for an empty side.
func (ts *TeamState) avgDiscipline() float64 {
	total, n := 0.0, 0
	for _, p := range ts.Players {
		if p.OnPitch {
			total += float64(p.Player.Discipline)
			n++
		}
	}
	if n == 0 {
		return 0.5
	}
	return total / float64(n) / float64(roster.RatingMax)
}

// avgFitness is the mean fitness of the on-pitch players. Defaults to 1.
func (ts *TeamState) avgFitness() float64 {
	total, n := 0.0, 0
	for _, p := range ts.Players {
		if p.OnPitch {
			total += p.Fitness
			n++
		}
	}
	if n == 0 {
		return 1.0
	}
	return total / float64(n)
}

// State is the full mutable match record. It is owned by one Match for the
// lifetime of a simulation; no other component holds a mutable reference.
type State struct {
	Phase      Phase
	Minute     int
	Score      [2]int
	Possession Side
	Teams      [2]*TeamState
	AddedTime  [2]int // drawn once per half
}

func (st *State) team(s Side) *TeamState { return st.Teams[s] }
