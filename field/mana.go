package field

import (
	"math"
	"math/rand"
)

// surface holds the seed-derived parameters of the mana function.
// It is immutable after construction and shared by all readers.
type surface struct {
	bossX, bossY float64 // centre of the dominant decaying peak
	phase        float64 // phase shift applied to the periodic terms
	tilt         float64 // small seed-dependent weight on the cross term
}

// newSurface derives the surface parameters from seed.
// The boss is kept inside the central 80% of the domain so that its basin
// is always reachable from the grid.
//
// Complexity: O(1).
func newSurface(seed int64, b Bounds) surface {
	r := rand.New(rand.NewSource(mixSeed(seed)))
	return surface{
		bossX: b.XMin + b.Width()*(0.1+0.8*r.Float64()),
		bossY: b.YMin + b.Height()*(0.1+0.8*r.Float64()),
		phase: r.Float64() * 2 * math.Pi,
		tilt:  0.25 + 0.5*r.Float64(),
	}
}

// mixSeed applies a SplitMix64 finaliser so that consecutive seeds give
// unrelated surfaces.
func mixSeed(seed int64) int64 {
	x := uint64(seed) + 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// mana evaluates the continuous surface at (x, y).
//
// The surface is a weighted sum of:
//   - periodic ridges (sin/cos terms) producing many local maxima,
//   - a logarithmic valley along y = 2π,
//   - two Gaussian bumps and a Lorentzian around the boss, which carry the
//     global maximum.
func (s surface) mana(x, y float64) float64 {
	dx, dy := x-s.bossX, y-s.bossY
	r2 := dx*dx + dy*dy
	side := (dx-15)*(dx-15) + (dy+10)*(dy+10)

	v := 2*math.Sin(x+0.1*math.Sin(y/5)+math.Pi/2+s.phase)*math.Cos((y+0.1*math.Cos(x/5)+math.Pi/2)/2) +
		0.7*math.Sin(0.5*x+0.3*y+0.2*math.Sin(x/6)+math.Pi/2) +
		0.3*math.Sin(1.5*x-0.8*y+0.15*math.Cos(y/4)+s.phase) -
		0.2*math.Log(math.Abs(y-2*math.Pi)+0.1) +
		s.tilt*math.Sin(x*y/4+0.05*math.Sin(x)) +
		1.5*math.Cos((x+y)/5+0.1*math.Sin(y)) +
		3.0*math.Exp(-0.03*side) +
		8.0*math.Exp(-0.01*r2) +
		2.0/(1.0+0.05*r2)
	return v
}

// fixedPoint converts a raw mana value to its fixed-point form.
// ok is false when raw is NaN, ±Inf or does not fit in 32 bits.
func fixedPoint(raw float64) (v int, ok bool) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, false
	}
	scaled := raw * Precision
	if scaled > math.MaxInt32 || scaled < math.MinInt32 {
		return 0, false
	}
	return int(scaled), true
}
