package sim

import (
	"fmt"

	"github.com/ksolsim/football-simulator/internal/roster"
)

// Policy names form a small closed set; the engine depends on substitution
// tactics only through the Policy contract, so alternatives swap in without
// touching the minute loop.
const (
	PolicyDefault      = "default"
	PolicyAggressive   = "aggressive"
	PolicyConservative = "conservative"
)

// SubTrigger says why the engine is consulting the policy this minute.
type SubTrigger int

const (
	// TriggerInjury: a player just went down and left the pitch.
	TriggerInjury SubTrigger = iota
	// TriggerFitness: an on-pitch player dropped below the fitness floor.
	TriggerFitness
	// TriggerTactical: periodic second-half consultation; the policy may
	// decline.
	TriggerTactical
)

// PlayerSnapshot is the read-only view of a player the policy decides from.
type PlayerSnapshot struct {
	ID         int64
	Pos        roster.Position
	Fitness    float64
	Attack     int
	Defense    int
	Stamina    int
	Discipline int
}

// SubView is everything a policy may consider. It carries copies, never
// references into live match state.
type SubView struct {
	Minute        int
	Trigger       SubTrigger
	SubsRemaining int
	ScoreDiff     int // from the deciding side's perspective

	// InjuredID/InjuredPos identify the vacancy for TriggerInjury. The
	// injured player is already off the pitch and absent from OnPitch.
	InjuredID  int64
	InjuredPos roster.Position

	OnPitch []PlayerSnapshot
	Bench   []PlayerSnapshot // eligible players only
}

// SubDecision names the swap: Out must be on the pitch, In on the bench.
type SubDecision struct {
	Out int64
	In  int64
}

// Policy chooses whether and whom to substitute when a trigger fires. A
// policy may consume randomness from the match RNG; the three built-in
// policies are fully deterministic and leave it untouched.
type Policy interface {
	Name() string
	Decide(view SubView, rng *Rand) (SubDecision, bool)
}

// NewPolicy returns a fresh policy instance by name. Instances may carry
// per-match state, so each match constructs its own.
func NewPolicy(name string) (Policy, error) {
	switch name {
	case "", PolicyDefault:
		return &defaultPolicy{}, nil
	case PolicyAggressive:
		return &aggressivePolicy{}, nil
	case PolicyConservative:
		return &conservativePolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown substitution policy %q", name)
	}
}

// defaultPolicy replaces the injured or lowest-fitness outfield player with
// the highest-rated eligible bench player in the same position, falling
// back to the best available anywhere.
type defaultPolicy struct{}

func (defaultPolicy) Name() string { return PolicyDefault }

func (defaultPolicy) Decide(view SubView, _ *Rand) (SubDecision, bool) {
	if view.SubsRemaining <= 0 || len(view.Bench) == 0 {
		return SubDecision{}, false
	}
	var out PlayerSnapshot
	switch view.Trigger {
	case TriggerInjury:
		// Fill the vacancy like-for-like; the injured player is already off.
		out = PlayerSnapshot{ID: view.InjuredID, Pos: view.InjuredPos}
	case TriggerFitness:
		o, ok := lowestFitnessOutfield(view.OnPitch)
		if !ok {
			return SubDecision{}, false
		}
		out = o
	default:
		return SubDecision{}, false
	}
	in, ok := bestBenchFor(view.Bench, out.Pos)
	if !ok {
		return SubDecision{}, false
	}
	return SubDecision{Out: out.ID, In: in.ID}, true
}

// aggressivePolicy chases the game: from the hour mark, while level or
// behind, it trades the tiredest defender or midfielder for the strongest
// attacking option, at most once every fifteen minutes. Injuries and
// exhaustion are handled like the default policy.
type aggressivePolicy struct {
	lastSub int
}

func (*aggressivePolicy) Name() string { return PolicyAggressive }

func (p *aggressivePolicy) Decide(view SubView, rng *Rand) (SubDecision, bool) {
	if view.Trigger != TriggerTactical {
		return defaultPolicy{}.Decide(view, rng)
	}
	if view.SubsRemaining <= 0 || len(view.Bench) == 0 {
		return SubDecision{}, false
	}
	if view.Minute < 60 || view.ScoreDiff > 0 {
		return SubDecision{}, false
	}
	if p.lastSub > 0 && view.Minute-p.lastSub < 15 {
		return SubDecision{}, false
	}

	out, okOut := lowestFitnessAmong(view.OnPitch, roster.Defender, roster.Midfielder)
	in, okIn := bestAttacker(view.Bench)
	if !okOut || !okIn {
		return SubDecision{}, false
	}
	p.lastSub = view.Minute
	return SubDecision{Out: out.ID, In: in.ID}, true
}

// conservativePolicy protects the squad: it always covers injuries, only
// reacts to exhaustion once a player is well under the floor, and never
// makes tactical changes.
type conservativePolicy struct{}

func (conservativePolicy) Name() string { return PolicyConservative }

func (conservativePolicy) Decide(view SubView, rng *Rand) (SubDecision, bool) {
	switch view.Trigger {
	case TriggerInjury:
		return defaultPolicy{}.Decide(view, rng)
	case TriggerFitness:
		o, ok := lowestFitnessOutfield(view.OnPitch)
		if !ok || o.Fitness > 0.40 {
			return SubDecision{}, false
		}
		return defaultPolicy{}.Decide(view, rng)
	default:
		return SubDecision{}, false
	}
}

func lowestFitnessOutfield(onPitch []PlayerSnapshot) (PlayerSnapshot, bool) {
	var out PlayerSnapshot
	found := false
	for _, p := range onPitch {
		if p.Pos == roster.Goalkeeper {
			continue
		}
		if !found || p.Fitness < out.Fitness {
			out, found = p, true
		}
	}
	return out, found
}

func lowestFitnessAmong(onPitch []PlayerSnapshot, positions ...roster.Position) (PlayerSnapshot, bool) {
	var out PlayerSnapshot
	found := false
	for _, p := range onPitch {
		match := false
		for _, pos := range positions {
			if p.Pos == pos {
				match = true
				break
			}
		}
		if !match {
			continue
		}
		if !found || p.Fitness < out.Fitness {
			out, found = p, true
		}
	}
	return out, found
}

// bestBenchFor prefers the highest overall rating in the same position,
// then the highest overall anywhere.
func bestBenchFor(bench []PlayerSnapshot, pos roster.Position) (PlayerSnapshot, bool) {
	if in, ok := bestWhere(bench, func(p PlayerSnapshot) bool { return p.Pos == pos }); ok {
		return in, true
	}
	return bestWhere(bench, func(PlayerSnapshot) bool { return true })
}

func bestAttacker(bench []PlayerSnapshot) (PlayerSnapshot, bool) {
	var out PlayerSnapshot
	found := false
	for _, p := range bench {
		if p.Pos == roster.Goalkeeper {
			continue
		}
		if !found || p.Attack > out.Attack {
			out, found = p, true
		}
	}
	return out, found
}

func bestWhere(bench []PlayerSnapshot, keep func(PlayerSnapshot) bool) (PlayerSnapshot, bool) {
	var out PlayerSnapshot
	found := false
	for _, p := range bench {
		if !keep(p) {
			continue
		}
		if !found || overall(p) > overall(out) {
			out, found = p, true
		}
	}
	return out, found
}

func overall(p PlayerSnapshot) int {
	return p.Attack + p.Defense + p.Stamina + p.Discipline
}
