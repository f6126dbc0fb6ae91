package rift

// Rand is the random source the simulation draws from.
// *math/rand.Rand satisfies it; tests substitute scripted sources.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// uniform returns a float in [lo, hi).
func uniform(rng Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// randInt returns an integer in [lo, hi], both ends inclusive.
func randInt(rng Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
