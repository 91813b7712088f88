package sim

import (
	"testing"

	"github.com/ksolsim/football-simulator/internal/roster"
)

// helper: terse snapshot builder for policy tests.
func snap(id int64, pos roster.Position, fitness float64, rating int) PlayerSnapshot {
	return PlayerSnapshot{
		ID: id, Pos: pos, Fitness: fitness,
		Attack: rating, Defense: rating, Stamina: rating, Discipline: rating,
	}
}

// ---------------------------------------------------------------------------
// 1. Policy factory
// ---------------------------------------------------------------------------

func TestNewPolicy(t *testing.T) {
	for _, name := range []string{"", PolicyDefault, PolicyAggressive, PolicyConservative} {
		p, err := NewPolicy(name)
		if err != nil {
			t.Fatalf("NewPolicy(%q): %v", name, err)
		}
		if name != "" && p.Name() != name {
			t.Fatalf("NewPolicy(%q).Name() = %q", name, p.Name())
		}
	}
	if _, err := NewPolicy("gegenpressing"); err == nil {
		t.Fatal("unknown policy name accepted")
	}
}

// ---------------------------------------------------------------------------
// 2. Default policy — like-for-like injury cover, tiredest player off
// ---------------------------------------------------------------------------

func TestDefaultPolicyInjuryCover(t *testing.T) {
	view := SubView{
		Minute:        30,
		Trigger:       TriggerInjury,
		SubsRemaining: 3,
		InjuredID:     105,
		InjuredPos:    roster.Defender,
		OnPitch: []PlayerSnapshot{
			snap(101, roster.Goalkeeper, 0.9, 70),
			snap(102, roster.Defender, 0.8, 70),
		},
		Bench: []PlayerSnapshot{
			snap(112, roster.Midfielder, 1, 90),
			snap(113, roster.Defender, 1, 60),
			snap(114, roster.Defender, 1, 80),
		},
	}
	dec, ok := defaultPolicy{}.Decide(view, nil)
	if !ok {
		t.Fatal("policy declined an injury vacancy with bench cover")
	}
	if dec.Out != 105 {
		t.Fatalf("Out = %d, want the injured 105", dec.Out)
	}
	if dec.In != 114 {
		t.Fatalf("In = %d, want the best same-position defender 114", dec.In)
	}
}

func TestDefaultPolicyInjuryFallsBackAcrossPositions(t *testing.T) {
	view := SubView{
		Trigger:       TriggerInjury,
		SubsRemaining: 1,
		InjuredID:     105,
		InjuredPos:    roster.Forward,
		Bench: []PlayerSnapshot{
			snap(112, roster.Midfielder, 1, 70),
			snap(113, roster.Defender, 1, 85),
		},
	}
	dec, ok := defaultPolicy{}.Decide(view, nil)
	if !ok || dec.In != 113 {
		t.Fatalf("want best-overall fallback 113, got %+v ok=%v", dec, ok)
	}
}

func TestDefaultPolicyFitness(t *testing.T) {
	view := SubView{
		Minute:        70,
		Trigger:       TriggerFitness,
		SubsRemaining: 2,
		OnPitch: []PlayerSnapshot{
			snap(101, roster.Goalkeeper, 0.2, 70), // tiredest, but keepers stay on
			snap(102, roster.Defender, 0.45, 70),
			snap(103, roster.Midfielder, 0.38, 70),
		},
		Bench: []PlayerSnapshot{
			snap(112, roster.Midfielder, 1, 75),
		},
	}
	dec, ok := defaultPolicy{}.Decide(view, nil)
	if !ok {
		t.Fatal("policy declined a fitness trigger with bench cover")
	}
	if dec.Out != 103 {
		t.Fatalf("Out = %d, want tiredest outfielder 103", dec.Out)
	}
	if dec.In != 112 {
		t.Fatalf("In = %d, want 112", dec.In)
	}
}

func TestDefaultPolicyDeclines(t *testing.T) {
	base := SubView{
		Trigger:       TriggerFitness,
		SubsRemaining: 1,
		OnPitch:       []PlayerSnapshot{snap(102, roster.Defender, 0.3, 70)},
		Bench:         []PlayerSnapshot{snap(112, roster.Defender, 1, 70)},
	}

	exhausted := base
	exhausted.SubsRemaining = 0
	if _, ok := (defaultPolicy{}).Decide(exhausted, nil); ok {
		t.Fatal("accepted with no substitutions remaining")
	}

	empty := base
	empty.Bench = nil
	if _, ok := (defaultPolicy{}).Decide(empty, nil); ok {
		t.Fatal("accepted with an empty bench")
	}

	tactical := base
	tactical.Trigger = TriggerTactical
	if _, ok := (defaultPolicy{}).Decide(tactical, nil); ok {
		t.Fatal("default policy should never make tactical changes")
	}
}

// ---------------------------------------------------------------------------
// 3. Aggressive policy — chase the game from the hour mark
// ---------------------------------------------------------------------------

func TestAggressivePolicyChasesGame(t *testing.T) {
	mkView := func(minute, scoreDiff int) SubView {
		return SubView{
			Minute:        minute,
			Trigger:       TriggerTactical,
			SubsRemaining: 3,
			ScoreDiff:     scoreDiff,
			OnPitch: []PlayerSnapshot{
				snap(101, roster.Goalkeeper, 0.9, 70),
				snap(102, roster.Defender, 0.6, 70),
				snap(103, roster.Midfielder, 0.5, 70),
				snap(104, roster.Forward, 0.4, 70),
			},
			Bench: []PlayerSnapshot{
				snap(112, roster.Forward, 1, 85),
				snap(113, roster.Goalkeeper, 1, 99),
			},
		}
	}

	p := &aggressivePolicy{}
	if _, ok := p.Decide(mkView(45, -1), nil); ok {
		t.Fatal("tactical change before the hour mark")
	}
	if _, ok := p.Decide(mkView(65, 1), nil); ok {
		t.Fatal("tactical change while leading")
	}

	dec, ok := p.Decide(mkView(65, -1), nil)
	if !ok {
		t.Fatal("declined while chasing after the hour")
	}
	if dec.Out != 103 {
		t.Fatalf("Out = %d, want tiredest defender/midfielder 103", dec.Out)
	}
	if dec.In != 112 {
		t.Fatalf("In = %d, want best outfield attacker 112", dec.In)
	}

	// Fifteen-minute spacing between tactical changes.
	if _, ok := p.Decide(mkView(72, -1), nil); ok {
		t.Fatal("second tactical change only seven minutes after the first")
	}
	if _, ok := p.Decide(mkView(80, -1), nil); !ok {
		t.Fatal("declined a spaced-out second change")
	}
}

func TestAggressivePolicyStillCoversInjuries(t *testing.T) {
	view := SubView{
		Trigger:       TriggerInjury,
		SubsRemaining: 1,
		InjuredID:     104,
		InjuredPos:    roster.Forward,
		Bench:         []PlayerSnapshot{snap(112, roster.Forward, 1, 80)},
	}
	dec, ok := (&aggressivePolicy{}).Decide(view, nil)
	if !ok || dec.Out != 104 || dec.In != 112 {
		t.Fatalf("injury cover broken: %+v ok=%v", dec, ok)
	}
}

// ---------------------------------------------------------------------------
// 4. Conservative policy — injuries only, deep-exhaustion exception
// ---------------------------------------------------------------------------

func TestConservativePolicy(t *testing.T) {
	fitness := func(f float64) SubView {
		return SubView{
			Trigger:       TriggerFitness,
			SubsRemaining: 3,
			OnPitch:       []PlayerSnapshot{snap(102, roster.Defender, f, 70)},
			Bench:         []PlayerSnapshot{snap(112, roster.Defender, 1, 70)},
		}
	}

	if _, ok := (conservativePolicy{}).Decide(fitness(0.5), nil); ok {
		t.Fatal("reacted to mild tiredness")
	}
	if _, ok := (conservativePolicy{}).Decide(fitness(0.35), nil); !ok {
		t.Fatal("ignored a fully spent player")
	}

	tactical := fitness(0.9)
	tactical.Trigger = TriggerTactical
	if _, ok := (conservativePolicy{}).Decide(tactical, nil); ok {
		t.Fatal("conservative policy made a tactical change")
	}

	injury := SubView{
		Trigger:       TriggerInjury,
		SubsRemaining: 1,
		InjuredID:     104,
		InjuredPos:    roster.Midfielder,
		Bench:         []PlayerSnapshot{snap(112, roster.Midfielder, 1, 70)},
	}
	if dec, ok := (conservativePolicy{}).Decide(injury, nil); !ok || dec.In != 112 {
		t.Fatalf("injury cover broken: %+v ok=%v", dec, ok)
	}
}
