package sim

import "math/rand"

// Rand is the single source of randomness for one match. Every probabilistic
// decision — outcome sampling, player selection, added-time draws — funnels
// through one instance, so a fixed seed and a fixed call order reproduce a
// match trace exactly. Nothing outside the outcome resolver, the added-time
// draws and the substitution policy may consume draws.
type Rand struct {
	src *rand.Rand
}

func NewRand(seed int64) *Rand {
	return &Rand{src: rand.New(rand.NewSource(seed))}
}

// Float64 returns a uniform draw in [0, 1).
func (r *Rand) Float64() float64 {
	return r.src.Float64()
}

// IntBetween returns a uniform draw in [lo, hi] inclusive.
func (r *Rand) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.src.Intn(hi-lo+1)
}

// WeightedIndex samples an index proportionally to weights. Non-positive
// weights are treated as zero. Returns -1 when no weight is positive.
func (r *Rand) WeightedIndex(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	target := r.src.Float64() * total
	acc := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		if target < acc {
			return i
		}
	}
	return len(weights) - 1
}

// DeriveSeed maps a master seed plus a fixture index to an independent
// per-match seed (splitmix64 finalizer). A whole round simulated in parallel
// stays reproducible from one master seed.
func DeriveSeed(master int64, index int) int64 {
	z := uint64(master) + uint64(index+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z ^= z >> 31
	return int64(z)
}
