package main

import (
	"fmt"
	"math/rand"
	"reflect"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ksolsim/football-simulator/internal/roster"
	"github.com/ksolsim/football-simulator/internal/sim"
)

// --- Config ---
const (
	totalMatches = 100_000
	masterSeed   = 42
	leagueSize   = 20
)

// club rating spread, strongest to weakest
const (
	topRating    = 90
	bottomRating = 58
)

type matchResult struct {
	homeGoals, awayGoals int
	shots                int
	fouls                int
	yellows, reds        int
	injuries             int
	subs                 int
	addedTime            int
	minutes              int
	homePossession       float64
	replayMismatch       bool
}

func main() {
	start := time.Now()

	clubs := make([]*roster.Team, leagueSize)
	for i := range clubs {
		rating := topRating - i*(topRating-bottomRating)/(leagueSize-1)
		clubs[i] = buildSquad(fmt.Sprintf("Club %02d", i+1), int64((i+1)*1000), rating)
	}

	cfg := sim.DefaultConfig()
	workers := runtime.GOMAXPROCS(0)
	results := make([]matchResult, totalMatches)

	var progress atomic.Int64
	var wg sync.WaitGroup

	chunkSize := totalMatches / workers
	for w := 0; w < workers; w++ {
		wg.Add(1)
		lo := w * chunkSize
		hi := lo + chunkSize
		if w == workers-1 {
			hi = totalMatches
		}
		go func(lo, hi int) {
			defer wg.Done()
			pairRng := rand.New(rand.NewSource(int64(lo) * 7919))
			for i := lo; i < hi; i++ {
				results[i] = runMatch(pairRng, clubs, cfg, sim.DeriveSeed(masterSeed, i))
				if n := progress.Add(1); n%(totalMatches/10) == 0 {
					fmt.Printf("  ... %d/%d matches (%.0f%%)\n", n, totalMatches, float64(n)/float64(totalMatches)*100)
				}
			}
		}(lo, hi)
	}
	wg.Wait()

	elapsed := time.Since(start)
	printReport(results, elapsed)
}

func buildSquad(name string, base int64, rating int) *roster.Team {
	positions := []roster.Position{
		roster.Goalkeeper,
		roster.Defender, roster.Defender, roster.Defender, roster.Defender,
		roster.Midfielder, roster.Midfielder, roster.Midfielder, roster.Midfielder,
		roster.Forward, roster.Forward,
		roster.Goalkeeper, roster.Defender, roster.Midfielder, roster.Midfielder, roster.Forward,
	}
	t := &roster.Team{ID: base, Name: name, Venue: name + " Park"}
	for i, pos := range positions {
		p := roster.Player{
			ID:     base + int64(i),
			Name:   fmt.Sprintf("%s P%d", name, i+1),
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

func runMatch(pairRng *rand.Rand, clubs []*roster.Team, cfg sim.Config, seed int64) matchResult {
	hi := pairRng.Intn(len(clubs))
	ai := pairRng.Intn(len(clubs) - 1)
	if ai >= hi {
		ai++
	}
	home, away := clubs[hi], clubs[ai]

	m, err := sim.NewMatch(home, away, cfg, seed)
	if err != nil {
		panic(err)
	}
	res := m.Run()

	replayed := sim.ReplayStats(home, away, cfg, res.Events)

	mr := matchResult{
		homeGoals:      res.Score[0],
		awayGoals:      res.Score[1],
		addedTime:      res.AddedTime[0] + res.AddedTime[1],
		minutes:        res.Minutes,
		replayMismatch: !reflect.DeepEqual(res, replayed),
	}
	for side := 0; side < 2; side++ {
		ts := res.Teams[side]
		mr.shots += ts.ShotsOnTarget + ts.ShotsOffTarget
		mr.fouls += ts.Fouls
		mr.yellows += ts.Yellows
		mr.reds += ts.Reds
		mr.injuries += ts.Injuries
		mr.subs += ts.Substitutions
	}
	if res.Minutes > 0 {
		mr.homePossession = float64(res.Teams[0].PossessionMinutes) / float64(res.Minutes)
	}
	return mr
}

func printReport(results []matchResult, elapsed time.Duration) {
	var goals, shots, fouls, yellows, reds, injuries, subs, added, possession []float64
	goalDist := make(map[int]int)
	var homeWins, draws, awayWins, mismatches int

	for _, r := range results {
		total := r.homeGoals + r.awayGoals
		goals = append(goals, float64(total))
		bucket := total
		if bucket > 6 {
			bucket = 7
		}
		goalDist[bucket]++
		shots = append(shots, float64(r.shots))
		fouls = append(fouls, float64(r.fouls))
		yellows = append(yellows, float64(r.yellows))
		reds = append(reds, float64(r.reds))
		injuries = append(injuries, float64(r.injuries))
		subs = append(subs, float64(r.subs))
		added = append(added, float64(r.addedTime))
		possession = append(possession, r.homePossession)

		switch {
		case r.homeGoals > r.awayGoals:
			homeWins++
		case r.awayGoals > r.homeGoals:
			awayWins++
		default:
			draws++
		}
		if r.replayMismatch {
			mismatches++
		}
	}

	sort.Float64s(goals)
	sort.Float64s(shots)
	sort.Float64s(fouls)
	sort.Float64s(added)

	n := float64(len(results))
	pct := func(c int) float64 { return float64(c) / n * 100 }

	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════════════════╗")
	fmt.Println("║              MATCH ENGINE CALIBRATION REPORT                ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("  Matches: %d  |  League: %d clubs (ratings %d-%d)\n", totalMatches, leagueSize, bottomRating, topRating)
	fmt.Printf("  Elapsed: %v  |  Workers: %d\n", elapsed.Round(time.Millisecond), runtime.GOMAXPROCS(0))

	fmt.Println()
	fmt.Println("─── GOALS ─────────────────────────────────────────────────────")
	fmt.Printf("  Mean goals/match:              %8.2f\n", mean(goals))
	fmt.Printf("  Median goals/match:            %8.1f\n", percentile(goals, 50))
	fmt.Printf("  90th pctl goals:               %8.1f\n", percentile(goals, 90))
	for b := 0; b <= 7; b++ {
		label := fmt.Sprintf("%d goals", b)
		if b == 7 {
			label = "7+ goals"
		}
		fmt.Printf("  %-10s %8d  (%5.1f%%)\n", label, goalDist[b], pct(goalDist[b]))
	}

	fmt.Println()
	fmt.Println("─── RESULTS ───────────────────────────────────────────────────")
	fmt.Printf("  Home wins:  %8d  (%5.1f%%)\n", homeWins, pct(homeWins))
	fmt.Printf("  Draws:      %8d  (%5.1f%%)\n", draws, pct(draws))
	fmt.Printf("  Away wins:  %8d  (%5.1f%%)\n", awayWins, pct(awayWins))
	fmt.Printf("  Mean home possession:          %7.1f%%\n", mean(possession)*100)

	fmt.Println()
	fmt.Println("─── MATCH EVENTS ──────────────────────────────────────────────")
	fmt.Printf("  Mean shots/match:              %8.1f\n", mean(shots))
	fmt.Printf("  Mean fouls/match:              %8.1f\n", mean(fouls))
	fmt.Printf("  Mean yellows/match:            %8.2f\n", mean(yellows))
	fmt.Printf("  Mean reds/match:               %8.3f\n", mean(reds))
	fmt.Printf("  Mean injuries/match:           %8.2f\n", mean(injuries))
	fmt.Printf("  Mean substitutions/match:      %8.2f\n", mean(subs))
	fmt.Printf("  Mean added time/match:         %7.1fm\n", mean(added))
	fmt.Printf("  90th pctl added time:          %7.1fm\n", percentile(added, 90))

	fmt.Println()
	fmt.Println("─── REPLAY VERIFICATION ───────────────────────────────────────")
	fmt.Printf("  Event logs replayed:         %10d\n", len(results))
	fmt.Printf("  Replay mismatches:           %10d\n", mismatches)

	fmt.Println()
	fmt.Println("─── DIAGNOSIS ─────────────────────────────────────────────────")
	avgGoals := mean(goals)
	if avgGoals >= 2.2 && avgGoals <= 3.2 {
		fmt.Printf("  OK GOALS %.2f — within 2.2-3.2 target\n", avgGoals)
	} else if avgGoals < 2.2 {
		fmt.Printf("  !! GOALS %.2f — too few, matches will feel sterile\n", avgGoals)
	} else {
		fmt.Printf("  !! GOALS %.2f — too many, scorelines not credible\n", avgGoals)
	}

	if pct(homeWins) > pct(awayWins) {
		fmt.Printf("  OK HOME EDGE %.1f%% vs %.1f%% — home advantage present\n", pct(homeWins), pct(awayWins))
	} else {
		fmt.Printf("  !! HOME EDGE missing — home %.1f%% vs away %.1f%%\n", pct(homeWins), pct(awayWins))
	}

	drawPct := pct(draws)
	if drawPct >= 18 && drawPct <= 30 {
		fmt.Printf("  OK DRAWS %.1f%% — within 18-30%% target\n", drawPct)
	} else {
		fmt.Printf("  ~~ DRAWS %.1f%% — outside 18-30%% band, check goal ceiling\n", drawPct)
	}

	avgReds := mean(reds)
	if avgReds <= 0.25 {
		fmt.Printf("  OK REDS %.3f/match — rare as intended\n", avgReds)
	} else {
		fmt.Printf("  !! REDS %.3f/match — card escalation too hot\n", avgReds)
	}

	avgInjuries := mean(injuries)
	if avgInjuries >= 0.4 && avgInjuries <= 1.6 {
		fmt.Printf("  OK INJURIES %.2f/match — within 0.4-1.6 target\n", avgInjuries)
	} else {
		fmt.Printf("  ~~ INJURIES %.2f/match — outside target, check fatigue multiplier\n", avgInjuries)
	}

	if mismatches == 0 {
		fmt.Println("  OK REPLAY — every event log rebuilds its result exactly")
	} else {
		fmt.Printf("  !! REPLAY — %d logs diverged from their results\n", mismatches)
	}

	fmt.Println()
}

func mean(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	t := 0.0
	for _, v := range s {
		t += v
	}
	return t / float64(len(s))
}

func percentile(sorted []float64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * pct / 100)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
