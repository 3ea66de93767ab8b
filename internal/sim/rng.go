package sim

// RNG is a small deterministic generator whose whole state is one word,
// so it can be captured in snapshots and replayed from a seed.
// Output is splitmix64, which keeps the low bits usable for Intn.
type RNG struct {
	state uint64
}

// NewRNG creates a generator for the given seed.
func NewRNG(seed int64) *RNG {
	return &RNG{state: uint64(seed)} //#nosec G115 -- intentional conversion for RNG seeding
}

// Seed resets the generator in place so holders of the pointer see the new stream.
func (r *RNG) Seed(seed int64) {
	r.state = uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
}

// Next returns the next 64 random bits.
func (r *RNG) Next() uint64 {
	r.state += 0x9e3779b97f4a7c15
	z := r.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Intn returns a value in [0, n). Returns 0 for n <= 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n)) //#nosec G115 -- n is positive
}

// Range returns a value in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// State returns the internal state for snapshots.
func (r *RNG) State() uint64 {
	return r.state
}
