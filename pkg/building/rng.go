package building

// Rand is a splitmix64 generator. Every detail generator receives its own
// instance seeded from (building id, floor, detail kind), so regenerating a
// building always reproduces the same choices regardless of call order.
type Rand struct {
	state uint64
}

// DetailKind separates the seed domains of the individual detail
// generators so adding draws to one never perturbs another.
type DetailKind uint64

const (
	KindWindowLight DetailKind = iota + 1
	KindFacade
	KindEntrance
	KindBalcony
	KindFireEscape
	KindRoofEquipment
	KindColor
)

// SeedFor derives a deterministic seed for one detail generator.
func SeedFor(buildingID int64, floor int, kind DetailKind) uint64 {
	s := uint64(buildingID) * 0x9E3779B97F4A7C15
	s ^= (uint64(floor) + 1) * 0xC2B2AE3D27D4EB4F
	s ^= uint64(kind) * 0x165667B19E3779F9
	return s
}

// NewRand creates a generator from an explicit seed.
func NewRand(seed uint64) *Rand {
	return &Rand{state: seed}
}

// RandFor creates a generator for one (building, floor, kind) slot.
func RandFor(buildingID int64, floor int, kind DetailKind) *Rand {
	return NewRand(SeedFor(buildingID, floor, kind))
}

// WindowRand creates a generator for a single window opening.
func WindowRand(buildingID int64, floor, window int) *Rand {
	seed := SeedFor(buildingID, floor, KindWindowLight)
	seed ^= (uint64(window) + 1) * 0xD6E8FEB86659FD93
	return NewRand(seed)
}

// Uint64 returns the next value in the sequence.
func (r *Rand) Uint64() uint64 {
	r.state += 0x9E3779B97F4A7C15
	z := r.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Float64 returns a uniform value in [0,1).
func (r *Rand) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

// Range returns a uniform value in [lo,hi).
func (r *Rand) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// Intn returns a uniform value in [0,n). n must be positive.
func (r *Rand) Intn(n int) int {
	return int(r.Uint64() % uint64(n))
}

// Chance returns true with probability p.
func (r *Rand) Chance(p float64) bool {
	return r.Float64() < p
}
