package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

// cli holds process-wide state shared by subcommands.
type cli struct {
	stdout, stderr io.Writer
	logLevel       string
	logFormat      string
	logger         *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "manahunt",
		Short: "Hunt for the strongest mana peak in a seeded dungeon",
		Long: `manahunt scatters greedy hill-climbing agents over a deterministic mana
field and reduces their local maxima to the best one found.

Reductions:
  sequential  - single left-to-right scan (baseline)
  static      - fixed contiguous blocks, one goroutine per worker
  forkjoin    - adaptive recursive bisection on a bounded pool

Examples:
  manahunt run 10 0.2 42
  manahunt run 50 0.1 7 --strategy static --workers 8 --image field.png
  manahunt compare 10 0.05 42
  manahunt profile --sizes 10,25 --out results.csv`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, ok := parseLevel(c.logLevel)
			if !ok {
				return usageError("unknown log level %q", c.logLevel)
			}
			format := strings.ToLower(c.logFormat)
			if format != "text" && format != "json" {
				return usageError("unknown log format %q", c.logFormat)
			}
			c.logger = newLogger(level, format, c.stderr)
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError("%v", err)
	})

	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&c.logFormat, "log-format", "text", "log format: text or json")

	root.AddCommand(newRunCmd(c), newCompareCmd(c), newProfileCmd(c))
	return root
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// newLogger creates an isolated slog.Logger; it does not touch the default.
func newLogger(level slog.Level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}
