package sim

import "testing"

func freshState() *State {
	return &State{
		Phase:      FirstHalf,
		Possession: Home,
		Teams: [2]*TeamState{
			newTeamState(testSquad("Harbor", 100, 75)),
			newTeamState(testSquad("Summit", 200, 75)),
		},
	}
}

// ---------------------------------------------------------------------------
// 1. Minute outcome distribution on a fresh, even match
// ---------------------------------------------------------------------------

func TestOutcomeDistribution(t *testing.T) {
	st := freshState()
	cfg := DefaultConfig()
	rng := NewRand(2024)

	const draws = 20000
	counts := make(map[OutcomeKind]int)
	for i := 0; i < draws; i++ {
		out := ResolveMinute(st, cfg, rng)
		counts[out.Kind]++
		if out.Kind != OutcomeNone && out.Player == nil {
			t.Fatalf("outcome %v without an acting player", out.Kind)
		}
	}

	freq := func(kinds ...OutcomeKind) float64 {
		n := 0
		for _, k := range kinds {
			n += counts[k]
		}
		return float64(n) / draws
	}
	t.Logf("none=%.3f goal=%.3f shots=%.3f fouls=%.3f injury=%.3f turnover=%.3f",
		freq(OutcomeNone), freq(OutcomeGoal),
		freq(OutcomeShotOnTarget, OutcomeShotOffTarget),
		freq(OutcomeFoul, OutcomeYellowCard, OutcomeRedCard),
		freq(OutcomeInjury), freq(OutcomeTurnover))

	checks := []struct {
		name   string
		got    float64
		lo, hi float64
	}{
		{"goal", freq(OutcomeGoal), 0.015, 0.045},
		{"shots", freq(OutcomeShotOnTarget, OutcomeShotOffTarget), 0.12, 0.22},
		{"fouls", freq(OutcomeFoul, OutcomeYellowCard, OutcomeRedCard), 0.09, 0.18},
		{"injury", freq(OutcomeInjury), 0.001, 0.013},
		{"turnover", freq(OutcomeTurnover), 0.17, 0.27},
	}
	for _, c := range checks {
		if c.got < c.lo || c.got > c.hi {
			t.Errorf("%s frequency %.4f outside [%.3f, %.3f]", c.name, c.got, c.lo, c.hi)
		}
	}
	for kind, n := range counts {
		if kind != OutcomeNone && n > counts[OutcomeNone] {
			t.Fatalf("%v (%d) more common than quiet minutes (%d)", kind, n, counts[OutcomeNone])
		}
	}
}

// ---------------------------------------------------------------------------
// 2. Card escalation — a booked player's next card is red
// ---------------------------------------------------------------------------

func TestSecondYellowBecomesRed(t *testing.T) {
	clean := newTeamState(testSquad("Summit", 200, 75))
	booked := newTeamState(testSquad("Harbor", 100, 75))
	for _, p := range booked.Players {
		p.Yellows = 1
	}

	const draws = 5000
	rng := NewRand(11)
	cleanReds, bookedReds := 0, 0
	for i := 0; i < draws; i++ {
		if out := resolveFoul(clean, Away, rng); out.Kind == OutcomeRedCard {
			cleanReds++
		}
		out := resolveFoul(booked, Home, rng)
		if out.Kind == OutcomeYellowCard {
			t.Fatal("booked player shown a second plain yellow")
		}
		if out.Kind == OutcomeRedCard {
			bookedReds++
		}
	}
	t.Logf("red rate: clean=%.4f booked=%.4f", float64(cleanReds)/draws, float64(bookedReds)/draws)
	if bookedReds <= cleanReds*5 {
		t.Fatalf("booking barely raised red risk: clean=%d booked=%d", cleanReds, bookedReds)
	}
}

// ---------------------------------------------------------------------------
// 3. Tired squads pick up more injuries
// ---------------------------------------------------------------------------

func TestFatigueRaisesInjuries(t *testing.T) {
	cfg := DefaultConfig()
	const draws = 20000

	count := func(st *State, seed int64) int {
		rng := NewRand(seed)
		n := 0
		for i := 0; i < draws; i++ {
			if ResolveMinute(st, cfg, rng).Kind == OutcomeInjury {
				n++
			}
		}
		return n
	}

	fresh := count(freshState(), 5)

	tiredState := freshState()
	for _, ts := range tiredState.Teams {
		for _, p := range ts.Players {
			p.Fitness = 0.3
		}
	}
	tired := count(tiredState, 5)

	t.Logf("injuries per %d minutes: fresh=%d tired=%d", draws, fresh, tired)
	if tired <= fresh*2 {
		t.Fatalf("fatigue should raise injury rate markedly: fresh=%d tired=%d", fresh, tired)
	}
}

// ---------------------------------------------------------------------------
// 4. Player picks degrade gracefully
// ---------------------------------------------------------------------------

func TestPickPlayerEdgeCases(t *testing.T) {
	ts := newTeamState(testSquad("Harbor", 100, 75))
	rng := NewRand(1)

	if p := pickPlayer(ts, rng, func(*PlayerState) float64 { return 0 }); p != nil {
		t.Fatal("all-zero weights should yield no pick")
	}

	for _, p := range ts.Players {
		p.OnPitch = false
	}
	if p := pickPlayer(ts, rng, func(*PlayerState) float64 { return 1 }); p != nil {
		t.Fatal("empty pitch should yield no pick")
	}
}
