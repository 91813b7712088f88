package fixture

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/ksolsim/football-simulator/internal/roster"
	"github.com/ksolsim/football-simulator/internal/sim"
)

func squad(name string, base int64, rating int) *roster.Team {
	positions := []roster.Position{
		roster.Goalkeeper,
		roster.Defender, roster.Defender, roster.Defender, roster.Defender,
		roster.Midfielder, roster.Midfielder, roster.Midfielder, roster.Midfielder,
		roster.Forward, roster.Forward,
		roster.Goalkeeper, roster.Defender, roster.Midfielder, roster.Forward,
	}
	t := &roster.Team{ID: base, Name: name, Venue: name + " Arena"}
	for i, pos := range positions {
		p := roster.Player{
			ID:     base + int64(i),
			Name:   fmt.Sprintf("%s %d", name, i+1),
			Number: i + 1,
			Pos:    pos,
			Attack: rating, Defense: rating, Stamina: rating, Discipline: rating,
		}
		if i < roster.StartersRequired {
			t.Starters = append(t.Starters, p)
		} else {
			t.Bench = append(t.Bench, p)
		}
	}
	return t
}

func testPairings(t *testing.T) []Pairing {
	t.Helper()
	clubs := []*roster.Team{
		squad("Harbor", 100, 75),
		squad("Summit", 200, 70),
		squad("Riverside", 300, 80),
		squad("Borough", 400, 65),
	}
	byID := make(map[int64]*roster.Team)
	var ids []int64
	for _, c := range clubs {
		byID[c.ID] = c
		ids = append(ids, c.ID)
	}

	rounds := Schedule(ids)
	pairings := make([]Pairing, 0, len(rounds[0]))
	for _, f := range rounds[0] {
		pairings = append(pairings, Pairing{Fixture: f, Home: byID[f.HomeID], Away: byID[f.AwayID]})
	}
	return pairings
}

// ---------------------------------------------------------------------------
// 1. A round is reproducible from the master seed alone
// ---------------------------------------------------------------------------

func TestRunRoundDeterminism(t *testing.T) {
	pairings := testPairings(t)
	cfg := sim.DefaultConfig()

	a, err := RunRound(context.Background(), pairings, cfg, 777)
	if err != nil {
		t.Fatalf("RunRound: %v", err)
	}
	b, err := RunRound(context.Background(), pairings, cfg, 777)
	if err != nil {
		t.Fatalf("RunRound: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same master seed produced different rounds")
	}

	c, err := RunRound(context.Background(), pairings, cfg, 778)
	if err != nil {
		t.Fatalf("RunRound: %v", err)
	}
	same := true
	for i := range a {
		if !reflect.DeepEqual(a[i].Result.Events, c[i].Result.Events) {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different master seeds reproduced every event log")
	}
}

func TestRunRoundOrderAndSeeds(t *testing.T) {
	pairings := testPairings(t)
	played, err := RunRound(context.Background(), pairings, sim.DefaultConfig(), 42)
	if err != nil {
		t.Fatalf("RunRound: %v", err)
	}
	if len(played) != len(pairings) {
		t.Fatalf("got %d results for %d pairings", len(played), len(pairings))
	}
	for i, p := range played {
		if p.Fixture.ID != pairings[i].Fixture.ID {
			t.Fatalf("result %d out of order", i)
		}
		if want := sim.DeriveSeed(42, i); p.Seed != want {
			t.Fatalf("result %d seed %d, want %d", i, p.Seed, want)
		}
		if p.Result.Minutes == 0 || len(p.Result.Events) == 0 {
			t.Fatalf("result %d looks unplayed: %+v", i, p.Result)
		}
	}
}

// ---------------------------------------------------------------------------
// 2. Failure modes
// ---------------------------------------------------------------------------

func TestRunRoundBadRoster(t *testing.T) {
	pairings := testPairings(t)
	pairings[1].Home = &roster.Team{Name: "Hollow"} // no starters at all

	if _, err := RunRound(context.Background(), pairings, sim.DefaultConfig(), 1); err == nil {
		t.Fatal("round with an invalid roster should fail")
	}
}

func TestRunRoundCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RunRound(ctx, testPairings(t), sim.DefaultConfig(), 1); err == nil {
		t.Fatal("cancelled context should abort the round")
	}
}

func TestRunRoundEmpty(t *testing.T) {
	played, err := RunRound(context.Background(), nil, sim.DefaultConfig(), 1)
	if err != nil {
		t.Fatalf("empty round: %v", err)
	}
	if len(played) != 0 {
		t.Fatalf("empty round produced %d results", len(played))
	}
}
