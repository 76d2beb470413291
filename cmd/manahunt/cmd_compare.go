package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/manahunt/dungeon"
)

func newCompareCmd(c *cli) *cobra.Command {
	var f huntFlags
	cmd := &cobra.Command{
		Use:   "compare <gateSize> <density> <seed>",
		Short: "Run every reduction on the same dungeon and check they agree",
		Long: `Run sequential, static and fork-join reductions on identically seeded
dungeons and compare mana, finder, winning cell and coverage against the
sequential baseline. Exits 1 on any mismatch.`,
		Args: positional,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.buildConfig(cmd, args)
			if err != nil {
				return err
			}
			cmp, err := dungeon.Compare(cmd.Context(), cfg, dungeon.WithLogger(c.logger))
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "STRATEGY\tMANA\tSEARCH\tX\tY\tEVALUATED\tTIME_MS")
			for _, rep := range cmp.Reports {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f\t%.1f\t%d\t%.3f\n",
					rep.Strategy, rep.Mana, rep.FinderID, rep.X, rep.Y, rep.Evaluated,
					float64(rep.Elapsed.Microseconds())/1000)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if !cmp.Agree {
				return &ExitError{
					Code:    exitFailure,
					Message: fmt.Sprintf("MISMATCH (seed %d):\n  %s", cmp.Seed, strings.Join(cmp.Mismatches, "\n  ")),
				}
			}
			fmt.Fprintf(c.stdout, "OK: all strategies agree (seed %d)\n", cmp.Seed)
			return nil
		},
	}
	f.register(cmd, false)
	return cmd
}
