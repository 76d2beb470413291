package dungeon

import (
	"context"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Sweep is a grid of hunt configurations to time.
// Every (gate, density, seed, strategy) cell runs Repeats times and is
// reported as one ProfileRow with the mean elapsed time.
type Sweep struct {
	GateSizes  []int
	Densities  []float64
	Seeds      []int64
	Strategies []Strategy
	Repeats    int
	Workers    int
}

// DefaultSweep returns the standard timing grid.
func DefaultSweep() Sweep {
	return Sweep{
		GateSizes:  []int{10, 25, 50, 150, 200, 250},
		Densities:  []float64{0.05, 0.1, 0.2, 0.3},
		Seeds:      []int64{1, 2, 3},
		Strategies: Strategies(),
		Repeats:    3,
	}
}

// ProfileRow is the averaged timing of one sweep cell.
type ProfileRow struct {
	GateSize int
	Density  float64
	Seed     int64
	Strategy Strategy
	Agents   int
	Mean     time.Duration
	Mana     int
	// Speedup is the Sequential mean of the same (gate, density, seed)
	// divided by Mean; 1 for sequential rows, 0 when there is no baseline.
	Speedup float64
}

// Milliseconds returns Mean in fractional milliseconds.
func (p ProfileRow) Milliseconds() float64 {
	return float64(p.Mean) / float64(time.Millisecond)
}

// Profile executes sw and returns one row per cell in sweep order. The
// first failing run aborts the sweep. Each repetition is an independent
// Run, so no state carries between timings.
func Profile(ctx context.Context, sw Sweep, opts ...Option) ([]ProfileRow, error) {
	repeats := sw.Repeats
	if repeats < 1 {
		repeats = 1
	}
	strategies := sw.Strategies
	if len(strategies) == 0 {
		strategies = Strategies()
	}

	var rows []ProfileRow
	for _, gate := range sw.GateSizes {
		for _, density := range sw.Densities {
			for _, seed := range sw.Seeds {
				for _, s := range strategies {
					cfg := DefaultConfig()
					cfg.GateSize, cfg.Density, cfg.Seed = gate, density, seed
					cfg.Strategy, cfg.Workers = s, sw.Workers

					row := ProfileRow{GateSize: gate, Density: density, Seed: seed, Strategy: s}
					var total time.Duration
					for i := 0; i < repeats; i++ {
						if err := ctx.Err(); err != nil {
							return rows, err
						}
						rep, err := Hunt(ctx, cfg, opts...)
						if err != nil {
							return rows, err
						}
						total += rep.Elapsed
						row.Agents, row.Mana = rep.Agents, rep.Mana
					}
					row.Mean = total / time.Duration(repeats)
					rows = append(rows, row)
				}
			}
		}
	}
	Speedups(rows)
	return rows, nil
}

type sweepKey struct {
	gate    int
	density float64
	seed    int64
}

// Speedups fills ProfileRow.Speedup in place against the Sequential row of
// the same gate, density and seed.
func Speedups(rows []ProfileRow) {
	base := make(map[sweepKey]time.Duration)
	for _, r := range rows {
		if r.Strategy == Sequential {
			base[sweepKey{r.GateSize, r.Density, r.Seed}] = r.Mean
		}
	}
	for i := range rows {
		b, ok := base[sweepKey{rows[i].GateSize, rows[i].Density, rows[i].Seed}]
		switch {
		case !ok:
			rows[i].Speedup = 0
		case rows[i].Mean == b:
			rows[i].Speedup = 1
		case rows[i].Mean <= 0:
			rows[i].Speedup = 0
		default:
			rows[i].Speedup = float64(b) / float64(rows[i].Mean)
		}
	}
}

// SpeedupGroup is the mean speedup over the parallel rows sharing a key.
type SpeedupGroup struct {
	GateSize int
	Density  float64
	Mean     float64
}

// SpeedupSummary aggregates parallel rows (non-sequential, with a baseline).
type SpeedupSummary struct {
	Best      ProfileRow
	ByGate    []SpeedupGroup // sorted by GateSize; Density unset
	ByDensity []SpeedupGroup // sorted by Density; GateSize unset
	Slower    []ProfileRow   // Speedup < 1, in sweep order
}

// Summarize aggregates rows whose Speedup has been filled by Speedups.
// ok is false when no parallel row has a baseline.
func Summarize(rows []ProfileRow) (sum SpeedupSummary, ok bool) {
	byGate := make(map[int][]float64)
	byDensity := make(map[float64][]float64)
	for _, r := range rows {
		if r.Strategy == Sequential || r.Speedup <= 0 {
			continue
		}
		if !ok || r.Speedup > sum.Best.Speedup {
			sum.Best = r
		}
		ok = true
		byGate[r.GateSize] = append(byGate[r.GateSize], r.Speedup)
		byDensity[r.Density] = append(byDensity[r.Density], r.Speedup)
		if r.Speedup < 1 {
			sum.Slower = append(sum.Slower, r)
		}
	}
	for g, xs := range byGate {
		sum.ByGate = append(sum.ByGate, SpeedupGroup{GateSize: g, Mean: stat.Mean(xs, nil)})
	}
	for d, xs := range byDensity {
		sum.ByDensity = append(sum.ByDensity, SpeedupGroup{Density: d, Mean: stat.Mean(xs, nil)})
	}
	sort.Slice(sum.ByGate, func(i, j int) bool { return sum.ByGate[i].GateSize < sum.ByGate[j].GateSize })
	sort.Slice(sum.ByDensity, func(i, j int) bool { return sum.ByDensity[i].Density < sum.ByDensity[j].Density })
	return sum, ok
}
