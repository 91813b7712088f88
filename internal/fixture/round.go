package fixture

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/ksolsim/football-simulator/internal/roster"
	"github.com/ksolsim/football-simulator/internal/sim"
)

// Pairing binds a scheduled fixture to the rosters that will contest it.
type Pairing struct {
	Fixture    Fixture
	Home, Away *roster.Team
}

// Played is one completed fixture with the seed that produced it, so any
// single match can be re-run in isolation.
type Played struct {
	Fixture Fixture
	Seed    int64
	Result  sim.Result
}

// RunRound simulates every pairing of a round, fanned out across
// GOMAXPROCS workers. Each fixture gets its own seed derived from the
// master, so results are reproducible regardless of worker interleaving
// and land in pairing order. The first roster or config error aborts the
// round; context cancellation abandons fixtures not yet started.
func RunRound(ctx context.Context, pairings []Pairing, cfg sim.Config, masterSeed int64) ([]Played, error) {
	out := make([]Played, len(pairings))
	if len(pairings) == 0 {
		return out, nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(pairings) {
		workers = len(pairings)
	}

	var (
		mu       sync.Mutex
		firstErr error
		wg       sync.WaitGroup
	)
	setErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	chunk := (len(pairings) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(pairings) {
			hi = len(pairings)
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					setErr(err)
					return
				}
				p := pairings[i]
				seed := sim.DeriveSeed(masterSeed, i)
				m, err := sim.NewMatch(p.Home, p.Away, cfg, seed)
				if err != nil {
					setErr(fmt.Errorf("fixture %s: %w", p.Fixture.ID, err))
					return
				}
				out[i] = Played{Fixture: p.Fixture, Seed: seed, Result: m.Run()}
			}
		}(lo, hi)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
