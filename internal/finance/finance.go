// Package finance computes prize money, bonuses and wages for completed
// fixtures. All amounts are integer currency units; divisions truncate.
package finance

import "github.com/ksolsim/football-simulator/internal/roster"

const (
	winPrize  = 60_000
	drawPrize = 25_000
	lossPrize = 10_000 // appearance money, paid even for a defeat

	goalBonus = 2_500

	wageBase       = 120
	championsPrize = 1_000_000
)

// MatchPrize splits the per-fixture prize money from the final score.
func MatchPrize(homeGoals, awayGoals int) (home, away int64) {
	switch {
	case homeGoals > awayGoals:
		return winPrize, lossPrize
	case awayGoals > homeGoals:
		return lossPrize, winPrize
	default:
		return drawPrize, drawPrize
	}
}

// GoalBonus is the extra payout for goals scored in one fixture.
func GoalBonus(goals int) int64 {
	return int64(goals) * goalBonus
}

// WeeklyWage derives a player's wage from the mean of the four ratings.
// Quadratic in the mean so stars cost disproportionately more.
func WeeklyWage(p roster.Player) int64 {
	overall := (p.Attack + p.Defense + p.Stamina + p.Discipline) / 4
	return int64(wageBase) * int64(overall) * int64(overall) / 10
}

// SquadWageBill is the weekly wage total for the whole squad, bench
// included.
func SquadWageBill(t *roster.Team) int64 {
	var total int64
	for _, p := range t.Starters {
		total += WeeklyWage(p)
	}
	for _, p := range t.Bench {
		total += WeeklyWage(p)
	}
	return total
}

// SeasonPrize is the end-of-season payout for a final league position,
// scaled linearly from the champion's purse down to a floor share for the
// last place. Places outside 1..clubs pay nothing.
func SeasonPrize(place, clubs int) int64 {
	if clubs <= 0 || place < 1 || place > clubs {
		return 0
	}
	return championsPrize * int64(clubs-place+1) / int64(clubs)
}
