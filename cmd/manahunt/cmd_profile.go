package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/manahunt/dungeon"
)

type profileFlags struct {
	sizes      string
	densities  string
	seeds      string
	strategies string
	repeats    int
	workers    int
	out        string
}

func newProfileCmd(c *cli) *cobra.Command {
	var f profileFlags
	def := dungeon.DefaultSweep()
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Time every strategy over a grid of sizes, densities and seeds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sw, err := f.sweep()
			if err != nil {
				return err
			}
			rows, err := dungeon.Profile(cmd.Context(), sw, dungeon.WithLogger(c.logger))
			if err != nil {
				return err
			}
			for _, r := range rows {
				fmt.Fprintf(c.stderr, "Ran %d %.2f %d %s -> %.3f ms\n",
					r.GateSize, r.Density, r.Seed, r.Strategy, r.Milliseconds())
			}
			printSummary(c.stderr, rows)

			if f.out == "" || f.out == "-" {
				return writeCSV(c.stdout, rows)
			}
			file, err := os.Create(f.out)
			if err != nil {
				return err
			}
			if err := writeCSV(file, rows); err != nil {
				file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return err
			}
			fmt.Fprintf(c.stderr, "Profiling complete. Results saved to %s\n", f.out)
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&f.sizes, "sizes", joinInts(def.GateSizes), "comma-separated gate sizes")
	fs.StringVar(&f.densities, "densities", "0.05,0.1,0.2,0.3", "comma-separated densities")
	fs.StringVar(&f.seeds, "seeds", "1,2,3", "comma-separated seeds")
	fs.StringVar(&f.strategies, "strategies", "sequential,static,forkjoin", "comma-separated strategies")
	fs.IntVar(&f.repeats, "repeats", def.Repeats, "repetitions averaged per configuration")
	fs.IntVar(&f.workers, "workers", 0, "worker count (0 = GOMAXPROCS)")
	fs.StringVar(&f.out, "out", "", "CSV output path (default stdout)")
	return cmd
}

func (f *profileFlags) sweep() (dungeon.Sweep, error) {
	var (
		sw  dungeon.Sweep
		err error
	)
	if sw.GateSizes, err = parseInts(f.sizes); err != nil {
		return sw, usageError("--sizes: %v", err)
	}
	if sw.Densities, err = parseFloats(f.densities); err != nil {
		return sw, usageError("--densities: %v", err)
	}
	if sw.Seeds, err = parseInt64s(f.seeds); err != nil {
		return sw, usageError("--seeds: %v", err)
	}
	for _, name := range splitList(f.strategies) {
		s, err := dungeon.ParseStrategy(name)
		if err != nil {
			return sw, usageError("%v", err)
		}
		sw.Strategies = append(sw.Strategies, s)
	}
	if f.repeats < 1 {
		return sw, usageError("--repeats must be at least 1")
	}
	if len(sw.GateSizes) == 0 || len(sw.Densities) == 0 || len(sw.Seeds) == 0 {
		return sw, usageError("sizes, densities and seeds must not be empty")
	}
	for _, g := range sw.GateSizes {
		for _, d := range sw.Densities {
			for _, s := range sw.Seeds {
				cfg := dungeon.DefaultConfig()
				cfg.GateSize, cfg.Density, cfg.Seed, cfg.Workers = g, d, s, f.workers
				if err := cfg.Validate(); err != nil {
					return sw, usageError("%v", err)
				}
			}
		}
	}
	sw.Repeats, sw.Workers = f.repeats, f.workers
	return sw, nil
}

func writeCSV(w io.Writer, rows []dungeon.ProfileRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Grid_Size", "Density", "Seed", "Strategy", "Time_ms", "Speedup"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.GateSize),
			strconv.FormatFloat(r.Density, 'g', -1, 64),
			strconv.FormatInt(r.Seed, 10),
			r.Strategy.String(),
			strconv.FormatFloat(r.Milliseconds(), 'f', 3, 64),
			strconv.FormatFloat(r.Speedup, 'f', 2, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// printSummary reports the best speedup, averages per gate size and
// density, and every configuration where a parallel strategy lost.
func printSummary(w io.Writer, rows []dungeon.ProfileRow) {
	sum, ok := dungeon.Summarize(rows)
	if !ok {
		return
	}
	b := sum.Best
	fmt.Fprintf(w, "Maximum speedup: %.2fx (%s, grid %d, density %g, seed %d)\n",
		b.Speedup, b.Strategy, b.GateSize, b.Density, b.Seed)
	for _, g := range sum.ByGate {
		fmt.Fprintf(w, "  Grid %d: %.2fx average speedup\n", g.GateSize, g.Mean)
	}
	for _, g := range sum.ByDensity {
		fmt.Fprintf(w, "  Density %g: %.2fx average speedup\n", g.Density, g.Mean)
	}
	if len(sum.Slower) == 0 {
		fmt.Fprintln(w, "Parallel was never slower than sequential.")
		return
	}
	fmt.Fprintf(w, "Parallel slower than sequential in %d case(s):\n", len(sum.Slower))
	for _, r := range sum.Slower {
		fmt.Fprintf(w, "  Grid %d, density %g, seed %d, %s: %.2fx\n",
			r.GateSize, r.Density, r.Seed, r.Strategy, r.Speedup)
	}
}

func joinInts(xs []int) string {
	b := make([]byte, 0, 4*len(xs))
	for i, x := range xs {
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(x), 10)
	}
	return string(b)
}
