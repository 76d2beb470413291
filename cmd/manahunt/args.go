package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/manahunt/dungeon"
	"github.com/katalvlaran/manahunt/hunt"
)

// huntFlags are the run/compare flags layered over a config file.
type huntFlags struct {
	config    string
	strategy  string
	workers   int
	threshold int
	conn      string
	maxSteps  int
}

func (f *huntFlags) register(cmd *cobra.Command, withStrategy bool) {
	fs := cmd.Flags()
	fs.StringVar(&f.config, "config", "", "YAML config file; positional arguments and flags override it")
	if withStrategy {
		fs.StringVar(&f.strategy, "strategy", "forkjoin", "reduction: sequential, static, forkjoin")
		fs.IntVar(&f.threshold, "threshold", 0, "fork-join leaf size (0 = computed)")
	}
	fs.IntVar(&f.workers, "workers", 0, "worker count (0 = GOMAXPROCS)")
	fs.StringVar(&f.conn, "conn", "conn8", "neighbourhood: conn4 or conn8")
	fs.IntVar(&f.maxSteps, "max-steps", 0, "per-agent step guard (0 = grid size)")
}

// positional accepts either three positional arguments or none when
// --config is set.
func positional(cmd *cobra.Command, args []string) error {
	if len(args) == 3 {
		return nil
	}
	if len(args) == 0 && cmd.Flags().Changed("config") {
		return nil
	}
	return usageError("Incorrect number of command line arguments provided: want <gateSize> <density> <seed>, got %d", len(args))
}

// buildConfig resolves defaults, the config file, positional arguments and
// changed flags, in that order, then validates the result. Every failure
// is a usage error.
func (f *huntFlags) buildConfig(cmd *cobra.Command, args []string) (dungeon.Config, error) {
	cfg := dungeon.DefaultConfig()
	if f.config != "" {
		var err error
		if cfg, err = dungeon.LoadConfig(f.config); err != nil {
			return cfg, usageError("%v", err)
		}
	}

	if len(args) == 3 {
		gate, err1 := strconv.Atoi(strings.TrimSpace(args[0]))
		density, err2 := strconv.ParseFloat(strings.TrimSpace(args[1]), 64)
		seed, err3 := strconv.ParseInt(strings.TrimSpace(args[2]), 10, 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return cfg, usageError("All arguments must be numeric.")
		}
		cfg.GateSize, cfg.Density, cfg.Seed = gate, density, seed
	}

	fs := cmd.Flags()
	if fs.Changed("strategy") {
		s, err := dungeon.ParseStrategy(f.strategy)
		if err != nil {
			return cfg, usageError("%v", err)
		}
		cfg.Strategy = s
	}
	if fs.Changed("conn") {
		c, err := hunt.ParseConnectivity(f.conn)
		if err != nil {
			return cfg, usageError("%v", err)
		}
		cfg.Connectivity = c
	}
	if fs.Changed("workers") {
		cfg.Workers = f.workers
	}
	if fs.Changed("threshold") {
		cfg.Threshold = f.threshold
	}
	if fs.Changed("max-steps") {
		cfg.MaxSteps = f.maxSteps
	}

	if err := cfg.Validate(); err != nil {
		return cfg, usageError("%v", err)
	}
	return cfg, nil
}

// parseInts parses a comma-separated list.
func parseInts(s string) ([]int, error) {
	var out []int
	for _, p := range splitList(s) {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseInt64s(s string) ([]int64, error) {
	var out []int64
	for _, p := range splitList(s) {
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, p := range splitList(s) {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
