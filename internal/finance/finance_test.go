package finance

import (
	"testing"

	"github.com/ksolsim/football-simulator/internal/roster"
)

func TestMatchPrize(t *testing.T) {
	tests := []struct {
		hg, ag     int
		home, away int64
	}{
		{2, 0, 60_000, 10_000},
		{0, 3, 10_000, 60_000},
		{1, 1, 25_000, 25_000},
		{0, 0, 25_000, 25_000},
	}
	for _, tt := range tests {
		h, a := MatchPrize(tt.hg, tt.ag)
		if h != tt.home || a != tt.away {
			t.Errorf("MatchPrize(%d,%d) = %d,%d want %d,%d", tt.hg, tt.ag, h, a, tt.home, tt.away)
		}
	}
}

func TestWeeklyWage(t *testing.T) {
	tests := []struct {
		attack, defense, stamina, discipline int
		want                                 int64
	}{
		{70, 70, 70, 70, 58_800},  // 120*70*70/10
		{90, 90, 90, 90, 97_200},
		{71, 70, 70, 70, 58_800},  // mean truncates to 70
		{1, 1, 1, 1, 12},
	}
	for _, tt := range tests {
		p := roster.Player{
			Attack: tt.attack, Defense: tt.defense,
			Stamina: tt.stamina, Discipline: tt.discipline,
		}
		if got := WeeklyWage(p); got != tt.want {
			t.Errorf("WeeklyWage(%d/%d/%d/%d) = %d, want %d",
				tt.attack, tt.defense, tt.stamina, tt.discipline, got, tt.want)
		}
	}
}

func TestSquadWageBill(t *testing.T) {
	tm := &roster.Team{
		Starters: []roster.Player{
			{Attack: 70, Defense: 70, Stamina: 70, Discipline: 70},
			{Attack: 90, Defense: 90, Stamina: 90, Discipline: 90},
		},
		Bench: []roster.Player{
			{Attack: 50, Defense: 50, Stamina: 50, Discipline: 50},
		},
	}
	want := int64(58_800 + 97_200 + 30_000)
	if got := SquadWageBill(tm); got != want {
		t.Fatalf("SquadWageBill = %d, want %d", got, want)
	}
}

func TestSeasonPrize(t *testing.T) {
	tests := []struct {
		place, clubs int
		want         int64
	}{
		{1, 20, 1_000_000},
		{2, 20, 950_000},
		{20, 20, 50_000},
		{1, 3, 1_000_000},
		{3, 3, 333_333}, // truncated
		{0, 20, 0},
		{21, 20, 0},
		{1, 0, 0},
	}
	for _, tt := range tests {
		if got := SeasonPrize(tt.place, tt.clubs); got != tt.want {
			t.Errorf("SeasonPrize(%d,%d) = %d, want %d", tt.place, tt.clubs, got, tt.want)
		}
	}
}

func TestGoalBonus(t *testing.T) {
	if got := GoalBonus(0); got != 0 {
		t.Fatalf("GoalBonus(0) = %d", got)
	}
	if got := GoalBonus(4); got != 10_000 {
		t.Fatalf("GoalBonus(4) = %d, want 10000", got)
	}
}
