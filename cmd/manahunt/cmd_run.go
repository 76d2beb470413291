package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/manahunt/dungeon"
	"github.com/katalvlaran/manahunt/render"
)

type runFlags struct {
	huntFlags
	image      string
	scale      int
	noPaths    bool
	jsonOut    bool
	metricsOut string
}

func newRunCmd(c *cli) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run <gateSize> <density> <seed>",
		Short: "Run one hunt and print the report",
		Long: `Run one hunt over the square dungeon [-gateSize, gateSize]².

Arguments:
  gateSize  half-width of the dungeon (integer > 0)
  density   scales the agent count: density × (2·gateSize)² × 5 (real > 0)
  seed      0 draws fresh entropy; a positive seed makes the run reproducible`,
		Args: positional,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.buildConfig(cmd, args)
			if err != nil {
				return err
			}
			if f.image != "" && !f.noPaths {
				cfg.RecordPaths = true
			}
			return c.runHunt(cmd, cfg, &f)
		},
	}
	f.register(cmd, true)
	fs := cmd.Flags()
	fs.StringVar(&f.image, "image", "", "write a PNG of the explored field to this path")
	fs.IntVar(&f.scale, "scale", 4, "pixels per cell edge in the PNG")
	fs.BoolVar(&f.noPaths, "no-paths", false, "omit agent paths from the PNG")
	fs.BoolVar(&f.jsonOut, "json", false, "print the report as JSON")
	fs.StringVar(&f.metricsOut, "metrics-out", "", "write Prometheus metrics in text format to this path")
	return cmd
}

func (c *cli) runHunt(cmd *cobra.Command, cfg dungeon.Config, f *runFlags) error {
	if f.image != "" && f.scale < 1 {
		return usageError("--scale must be at least 1")
	}

	reg := prometheus.NewRegistry()
	opts := []dungeon.Option{dungeon.WithLogger(c.logger), dungeon.WithMetrics(dungeon.NewMetrics(reg))}

	r, err := dungeon.NewRun(cfg, opts...)
	if err != nil {
		return err
	}
	rep, err := r.Execute(cmd.Context())
	if err != nil {
		return err
	}

	if f.image != "" {
		img, err := render.Image(r.Field(), r.Paths(), render.Options{Scale: f.scale, Paths: !f.noPaths})
		if err != nil {
			return err
		}
		if err := render.SavePNG(f.image, img); err != nil {
			return err
		}
		c.logger.Info("image written", "path", f.image)
	}
	if f.metricsOut != "" {
		if err := prometheus.WriteToTextfile(f.metricsOut, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	if f.jsonOut {
		enc := json.NewEncoder(c.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	printReport(c.stdout, rep)
	return nil
}

func printReport(w io.Writer, rep *dungeon.Report) {
	b := rep.Bounds
	fmt.Fprintf(w, "Dungeon size: %d,\n", rep.GateSize)
	fmt.Fprintf(w, "Rows, Columns: %dx%d (%d cells)\n", rep.Rows, rep.Columns, rep.Rows*rep.Columns)
	fmt.Fprintf(w, "x: [%g, %g], y: [%g, %g]\n", b.XMin, b.XMax, b.YMin, b.YMax)
	fmt.Fprintf(w, "Number searches: %d\n", rep.Agents)
	fmt.Fprintf(w, "Strategy: %s (workers %d", rep.Strategy, rep.Workers)
	if rep.Threshold > 0 {
		fmt.Fprintf(w, ", threshold %d", rep.Threshold)
	}
	fmt.Fprintln(w, ")")
	fmt.Fprintf(w, "Seed: %d\n", rep.EffectiveSeed)
	fmt.Fprintf(w, "Time: %d ms\n", rep.Elapsed.Milliseconds())
	fmt.Fprintf(w, "Grid points evaluated: %d (%.0f%%)\n", rep.Evaluated, rep.Coverage*100)
	fmt.Fprintf(w, "Steps per search: mean %.2f, stddev %.2f, max %d\n", rep.Steps.Mean, rep.Steps.StdDev, rep.Steps.Max)
	fmt.Fprintf(w, "Dungeon Master (mana %d) found at: x=%.1f y=%.1f (search %d)\n",
		rep.Mana, rep.X, rep.Y, rep.FinderID)
}
