package sim

import (
	"fmt"

	"github.com/ksolsim/football-simulator/internal/roster"
)

// Match owns all mutable state for one simulated fixture: the clock, the
// score, player fitness and cards, the RNG and the event log. Nothing else
// holds a mutable reference to any of it. A Match is not safe for
// concurrent use; parallel rounds run one Match per goroutine.
type Match struct {
	cfg    Config
	rng    *Rand
	st     *State
	log    []Event
	policy [2]Policy

	done   bool
	result Result

	// scratch for the current minute
	injured [2]*PlayerState
	subbed  [2]bool
}

// NewMatch validates both rosters and the config, then prepares a match
// ready to run. Validation failures surface immediately and no event log is
// ever produced for invalid input.
func NewMatch(home, away *roster.Team, cfg Config, seed int64) (*Match, error) {
	if err := home.Validate(); err != nil {
		return nil, fmt.Errorf("home: %w", err)
	}
	if err := away.Validate(); err != nil {
		return nil, fmt.Errorf("away: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Match{
		cfg: cfg,
		rng: NewRand(seed),
		st: &State{
			Phase:      NotStarted,
			Possession: Home,
			Teams:      [2]*TeamState{newTeamState(home), newTeamState(away)},
		},
	}
	for s := range m.policy {
		p, err := NewPolicy(cfg.Substitutions)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		m.policy[s] = p
	}
	return m, nil
}

// Phase reports where the state machine currently is.
func (m *Match) Phase() Phase { return m.st.Phase }

// Run drives the minute loop to full time and returns the completed result.
// It is total: the clock is strictly bounded by regulation plus added time,
// and every in-match condition (bench exhausted, red-card vacancy, stamina
// floor) is a state transition, never an error. Running twice returns the
// same frozen result.
func (m *Match) Run() Result {
	if m.done {
		return m.result
	}

	half := m.cfg.RegulationMinutes / 2

	m.st.AddedTime[0] = m.rng.IntBetween(m.cfg.AddedTimeMin, m.cfg.AddedTimeMax)
	m.st.Phase = FirstHalf
	m.st.Possession = Home
	m.append(Event{Minute: 0, Kind: EventKickoff, Side: Home})

	halfEnd := half + m.st.AddedTime[0]
	for minute := 1; minute <= halfEnd; minute++ {
		m.tick(minute)
	}

	m.st.Phase = HalfTime
	m.append(Event{Minute: halfEnd, Kind: EventHalfTime, Side: Away})
	m.st.AddedTime[1] = m.rng.IntBetween(m.cfg.AddedTimeMin, m.cfg.AddedTimeMax)
	m.st.Phase = SecondHalf
	m.st.Possession = Away // away side kicks off the second half

	fullEnd := m.cfg.RegulationMinutes + m.st.AddedTime[0] + m.st.AddedTime[1]
	for minute := halfEnd + 1; minute <= fullEnd; minute++ {
		m.tick(minute)
	}

	m.st.Phase = FullTime
	m.append(Event{Minute: fullEnd, Kind: EventFullTime, Side: Home})

	m.result = m.buildResult(fullEnd)
	m.done = true
	return m.result
}

// tick advances the clock by one minute: possession accrual, fitness decay,
// outcome resolution, state transitions, substitution checks. It appends at
// most one headline event plus any substitutions.
func (m *Match) tick(minute int) {
	m.st.Minute = minute
	m.injured = [2]*PlayerState{}
	m.subbed = [2]bool{}

	m.st.team(m.st.Possession).possessionMinutes++
	m.decayFitness()

	out := ResolveMinute(m.st, m.cfg, m.rng)
	m.apply(minute, out)

	for _, side := range [2]Side{Home, Away} {
		m.checkSubstitutions(minute, side)
	}
}

func (m *Match) decayFitness() {
	for _, ts := range m.st.Teams {
		ts.decayMinute()
	}
}

func (m *Match) apply(minute int, out Outcome) {
	ts := m.st.team(out.Side)

	switch out.Kind {
	case OutcomeNone:
		return

	case OutcomeGoal:
		m.st.Score[out.Side]++
		ts.goals++
		out.Player.Goals++
		m.appendActor(minute, EventGoal, out)
		m.st.Possession = out.Side.Other() // conceding side restarts

	case OutcomeShotOnTarget:
		ts.shotsOn++
		out.Player.ShotsOn++
		m.appendActor(minute, EventShotOnTarget, out)
		m.st.Possession = out.Side.Other() // keeper claims it

	case OutcomeShotOffTarget:
		ts.shotsOff++
		out.Player.ShotsOff++
		m.appendActor(minute, EventShotOffTarget, out)
		m.st.Possession = out.Side.Other() // goal kick

	case OutcomeFoul:
		ts.fouls++
		out.Player.Fouls++
		m.appendActor(minute, EventFoul, out)

	case OutcomeYellowCard:
		ts.fouls++
		ts.yellows++
		out.Player.Fouls++
		out.Player.Yellows++
		m.appendActor(minute, EventYellowCard, out)

	case OutcomeRedCard:
		ts.fouls++
		ts.reds++
		out.Player.Fouls++
		out.Player.SentOff = true
		m.leavePitch(out.Player, minute)
		m.appendActor(minute, EventRedCard, out)
		// Sent off and not replaced: the side plays on with fewer players.

	case OutcomeInjury:
		ts.injuries++
		out.Player.Injured = true
		m.leavePitch(out.Player, minute)
		m.appendActor(minute, EventInjury, out)
		m.injured[out.Side] = out.Player

	case OutcomeTurnover:
		ts.turnovers++
		out.Player.Turnovers++
		m.appendActor(minute, EventTurnover, out)
		m.st.Possession = out.Side
	}
}

// checkSubstitutions consults the side's policy when a trigger condition
// holds this minute: an injury vacancy, a player under the fitness floor,
// or the second-half tactical window. At most one substitution per side per
// minute; an empty bench or exhausted allowance is not an error — the
// policy simply has nothing to offer.
func (m *Match) checkSubstitutions(minute int, side Side) {
	ts := m.st.team(side)
	if ts.SubsUsed >= m.cfg.MaxSubstitutions {
		return
	}

	trigger := TriggerTactical
	switch {
	case m.injured[side] != nil:
		trigger = TriggerInjury
	case m.belowFloor(ts):
		trigger = TriggerFitness
	case m.st.Phase == SecondHalf:
		// tactical window: policies may decline
	default:
		return
	}

	view := m.subView(minute, side, trigger)
	dec, ok := m.policy[side].Decide(view, m.rng)
	if !ok {
		return
	}
	m.applySubstitution(minute, side, dec)
}

func (m *Match) belowFloor(ts *TeamState) bool {
	for _, p := range ts.Players {
		if p.OnPitch && p.Player.Pos != roster.Goalkeeper && p.Fitness < m.cfg.FitnessFloor {
			return true
		}
	}
	return false
}

func (m *Match) subView(minute int, side Side, trigger SubTrigger) SubView {
	ts := m.st.team(side)
	view := SubView{
		Minute:        minute,
		Trigger:       trigger,
		SubsRemaining: m.cfg.MaxSubstitutions - ts.SubsUsed,
		ScoreDiff:     m.st.Score[side] - m.st.Score[side.Other()],
	}
	if hurt := m.injured[side]; hurt != nil {
		view.InjuredID = hurt.Player.ID
		view.InjuredPos = hurt.Player.Pos
	}
	for _, p := range ts.OnPitch() {
		view.OnPitch = append(view.OnPitch, snapshot(p))
	}
	for _, p := range ts.eligibleBench() {
		view.Bench = append(view.Bench, snapshot(p))
	}
	return view
}

func snapshot(p *PlayerState) PlayerSnapshot {
	return PlayerSnapshot{
		ID:         p.Player.ID,
		Pos:        p.Player.Pos,
		Fitness:    p.Fitness,
		Attack:     p.Player.Attack,
		Defense:    p.Player.Defense,
		Stamina:    p.Player.Stamina,
		Discipline: p.Player.Discipline,
	}
}

// applySubstitution validates the policy's pick against live state — the
// engine stays authoritative — and executes the swap.
func (m *Match) applySubstitution(minute int, side Side, dec SubDecision) {
	ts := m.st.team(side)
	if m.subbed[side] || ts.SubsUsed >= m.cfg.MaxSubstitutions {
		return
	}
	in := ts.find(dec.In)
	if in == nil || in.OnPitch || in.Injured || in.SentOff || in.Minutes > 0 {
		return
	}

	// An injury vacancy substitution fills the hole without a leaving
	// player; any other substitution takes a player off first.
	if out := ts.find(dec.Out); out != nil && out.OnPitch {
		m.leavePitch(out, minute)
	} else if m.injured[side] == nil || m.injured[side].Player.ID != dec.Out {
		return
	}

	in.OnPitch = true
	in.EnteredAt = minute
	ts.SubsUsed++
	m.subbed[side] = true
	m.append(Event{
		Minute:    minute,
		Kind:      EventSubstitution,
		Side:      side,
		PlayerIn:  dec.In,
		PlayerOut: dec.Out,
	})
}

func (m *Match) leavePitch(p *PlayerState, minute int) {
	if !p.OnPitch {
		return
	}
	p.OnPitch = false
	p.LeftAt = minute
}

func (m *Match) append(e Event) { m.log = append(m.log, e) }

func (m *Match) appendActor(minute int, k EventKind, out Outcome) {
	m.append(Event{Minute: minute, Kind: k, Side: out.Side, PlayerID: out.Player.Player.ID})
}
