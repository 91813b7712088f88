package sim

import "github.com/ksolsim/football-simulator/internal/roster"

// OutcomeKind is the headline result of one match minute. At most one is
// emitted per tick; when an incident qualifies for several kinds the
// resolver keeps the highest-priority one:
// red card > goal > shot > foul/card > injury > turnover > none.
type OutcomeKind int

const (
	OutcomeNone OutcomeKind = iota
	OutcomeGoal
	OutcomeShotOnTarget
	OutcomeShotOffTarget
	OutcomeFoul
	OutcomeYellowCard
	OutcomeRedCard
	OutcomeInjury
	OutcomeTurnover
)

// Outcome is the resolver's verdict for one minute. The resolver never
// mutates state; applying the outcome is the engine's job.
type Outcome struct {
	Kind   OutcomeKind
	Side   Side         // acting team: attacker for goals/shots, defender for fouls and turnovers
	Player *PlayerState // acting player, nil for OutcomeNone
}

// Calibrated per-minute base weights. "Nothing noteworthy" dominates most
// minutes; the remainder is split so a full match lands near realistic
// totals (~2.7 goals, ~16 shots, ~13 fouls, ~1 injury). Treat these as
// tunable parameters, not exact requirements.
const (
	goalBase     = 0.060 // scaled by attack share, clamped to goalCeiling
	goalCeiling  = 0.080 // per-minute cap: even a crushing mismatch stays plausible
	shotBase     = 0.350 // scaled by attack share
	shotOnTarget = 0.45  // share of non-scoring shots that are on target
	foulBase     = 0.100
	foulDiscMult = 0.130 // extra foul weight as defender discipline drops
	injuryBase   = 0.006
	injuryTired  = 0.018 // extra injury weight as fitness drops
	turnoverBase = 0.220

	straightRed  = 0.018 // straight red share of fouls
	yellowBase   = 0.24
	yellowDisc   = 0.25 // extra yellow weight as offender discipline drops
	yellowRepeat = 0.10 // extra per prior yellow: prior booking raises red risk
)

// ResolveMinute computes the discrete outcome distribution for the current
// minute — possession side attacking, the other defending — and samples one
// via the match RNG. It is a pure function of the state snapshot, the
// config and the RNG draw sequence.
func ResolveMinute(st *State, cfg Config, rng *Rand) Outcome {
	att := st.team(st.Possession)
	def := st.team(st.Possession.Other())

	attack := att.Attack()
	if st.Possession == Home {
		attack *= cfg.HomeAdvantage
	}
	defense := def.Defense()

	share := 0.5
	if attack+defense > 0 {
		share = attack / (attack + defense)
	}

	goalW := goalBase * share
	if goalW > goalCeiling {
		goalW = goalCeiling
	}
	shotW := shotBase * share
	foulW := foulBase + foulDiscMult*(1.0-def.avgDiscipline())
	avgFit := (att.avgFitness() + def.avgFitness()) / 2
	injuryW := injuryBase + injuryTired*(1.0-avgFit)

	noneW := 1.0 - goalW - shotW - foulW - injuryW - turnoverBase
	if noneW < 0 {
		noneW = 0
	}

	// Index order is fixed: changing it changes every seeded trace.
	switch rng.WeightedIndex([]float64{noneW, goalW, shotW, foulW, injuryW, turnoverBase}) {
	case 1:
		return resolveGoal(att, st.Possession, rng)
	case 2:
		return resolveShot(att, st.Possession, rng)
	case 3:
		return resolveFoul(def, st.Possession.Other(), rng)
	case 4:
		return resolveInjury(st, rng)
	case 5:
		return resolveTurnover(def, st.Possession.Other(), rng)
	default:
		return Outcome{Kind: OutcomeNone, Side: st.Possession}
	}
}

func resolveGoal(att *TeamState, side Side, rng *Rand) Outcome {
	scorer := pickPlayer(att, rng, func(p *PlayerState) float64 {
		return attackWeight[p.Player.Pos] * p.EffectiveAttack()
	})
	if scorer == nil {
		return Outcome{Kind: OutcomeNone, Side: side}
	}
	return Outcome{Kind: OutcomeGoal, Side: side, Player: scorer}
}

func resolveShot(att *TeamState, side Side, rng *Rand) Outcome {
	shooter := pickPlayer(att, rng, func(p *PlayerState) float64 {
		return attackWeight[p.Player.Pos] * p.EffectiveAttack()
	})
	if shooter == nil {
		return Outcome{Kind: OutcomeNone, Side: side}
	}
	kind := OutcomeShotOffTarget
	if rng.Float64() < shotOnTarget {
		kind = OutcomeShotOnTarget
	}
	return Outcome{Kind: kind, Side: side, Player: shooter}
}

// foulPosWeight leans fouling toward the defending positions.
var foulPosWeight = map[roster.Position]float64{
	roster.Goalkeeper: 0.15,
	roster.Defender:   1.0,
	roster.Midfielder: 0.8,
	roster.Forward:    0.5,
}

func resolveFoul(def *TeamState, side Side, rng *Rand) Outcome {
	offender := pickPlayer(def, rng, func(p *PlayerState) float64 {
		return foulPosWeight[p.Player.Pos] * (1.3 - float64(p.Player.Discipline)/100)
	})
	if offender == nil {
		return Outcome{Kind: OutcomeNone, Side: side}
	}

	// Card escalation. A straight red is rare; a booking gets likelier for
	// ill-disciplined or already-booked players, and a second yellow is a
	// red. The red branch outranks everything else this minute.
	if rng.Float64() < straightRed {
		return Outcome{Kind: OutcomeRedCard, Side: side, Player: offender}
	}
	yellowP := yellowBase +
		yellowDisc*(1.0-float64(offender.Player.Discipline)/100) +
		yellowRepeat*float64(offender.Yellows)
	if rng.Float64() < yellowP {
		if offender.Yellows >= 1 {
			return Outcome{Kind: OutcomeRedCard, Side: side, Player: offender}
		}
		return Outcome{Kind: OutcomeYellowCard, Side: side, Player: offender}
	}
	return Outcome{Kind: OutcomeFoul, Side: side, Player: offender}
}

func resolveInjury(st *State, rng *Rand) Outcome {
	// The side in possession absorbs the challenge slightly more often.
	side := st.Possession.Other()
	if rng.Float64() < 0.55 {
		side = st.Possession
	}
	hurt := pickPlayer(st.team(side), rng, func(p *PlayerState) float64 {
		return 1.25 - p.Fitness
	})
	if hurt == nil {
		return Outcome{Kind: OutcomeNone, Side: side}
	}
	return Outcome{Kind: OutcomeInjury, Side: side, Player: hurt}
}

func resolveTurnover(def *TeamState, side Side, rng *Rand) Outcome {
	winner := pickPlayer(def, rng, func(p *PlayerState) float64 {
		return defenseWeight[p.Player.Pos] * p.EffectiveDefense()
	})
	if winner == nil {
		return Outcome{Kind: OutcomeNone, Side: side}
	}
	return Outcome{Kind: OutcomeTurnover, Side: side, Player: winner}
}

// pickPlayer samples one on-pitch player proportionally to weightFn.
// Returns nil when the side has nobody left or all weights are zero.
func pickPlayer(ts *TeamState, rng *Rand, weightFn func(*PlayerState) float64) *PlayerState {
	onPitch := ts.OnPitch()
	if len(onPitch) == 0 {
		return nil
	}
	weights := make([]float64, len(onPitch))
	for i, p := range onPitch {
		weights[i] = weightFn(p)
	}
	idx := rng.WeightedIndex(weights)
	if idx < 0 {
		return nil
	}
	return onPitch[idx]
}
