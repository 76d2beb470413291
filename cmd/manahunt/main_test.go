package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/manahunt/dungeon"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &stdout, &stderr, args)
	return stdout.String(), stderr.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	return exitErr.Code
}

// TestRun_InvalidInput checks every rejected input exits with code 2
// before any hunt runs.
func TestRun_InvalidInput(t *testing.T) {
	cases := map[string][]string{
		"too few args":   {"run", "10", "0.2"},
		"non-numeric":    {"run", "ten", "0.2", "1"},
		"zero gate":      {"run", "0", "0.2", "1"},
		"negative seed":  {"run", "10", "0.2", "-1"},
		"zero density":   {"run", "10", "0", "1"},
		"huge density":   {"run", "10", "1e9", "1"},
		"bad strategy":   {"run", "10", "0.2", "1", "--strategy", "quantum"},
		"bad conn":       {"run", "10", "0.2", "1", "--conn", "6"},
		"unknown flag":   {"run", "10", "0.2", "1", "--bogus"},
		"bad log level":  {"--log-level", "loud", "run", "10", "0.2", "1"},
		"missing config": {"run", "--config", "does-not-exist.yaml"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			stdout, _, err := execute(t, args...)
			assert.Equal(t, exitUsage, exitCode(t, err))
			assert.Empty(t, stdout)
		})
	}
}

// TestRun_JSONReport checks the JSON report, PNG and metrics outputs.
func TestRun_JSONReport(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "field.png")
	prom := filepath.Join(dir, "hunt.prom")

	stdout, _, err := execute(t, "run", "10", "0.05", "42",
		"--strategy", "static", "--workers", "8", "--json",
		"--image", img, "--scale", "1", "--metrics-out", prom)
	require.NoError(t, err)

	var rep dungeon.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &rep))
	assert.Equal(t, dungeon.Static, rep.Strategy)
	assert.Equal(t, 100, rep.Agents)
	assert.Equal(t, 8, rep.Workers)
	assert.Equal(t, int64(42), rep.EffectiveSeed)

	seq, _, err := execute(t, "run", "10", "0.05", "42", "--strategy", "sequential", "--workers", "1", "--json")
	require.NoError(t, err)
	var base dungeon.Report
	require.NoError(t, json.Unmarshal([]byte(seq), &base))
	assert.Equal(t, base.Mana, rep.Mana)
	assert.Equal(t, base.X, rep.X)
	assert.Equal(t, base.Y, rep.Y)

	info, err := os.Stat(img)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	metrics, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `manahunt_runs_total{result="ok",strategy="static"} 1`)
}

// TestRun_TextReport checks the human-readable report.
func TestRun_TextReport(t *testing.T) {
	stdout, _, err := execute(t, "run", "5", "0.2", "3", "--conn", "4")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Dungeon size: 5,")
	assert.Contains(t, stdout, "Rows, Columns: 50x50 (2500 cells)")
	assert.Contains(t, stdout, "Number searches: 100")
	assert.Contains(t, stdout, "Dungeon Master (mana ")
}

// TestRun_ConfigFile verifies positional arguments override the file.
func TestRun_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hunt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gate_size: 4\ndensity: 0.5\nseed: 9\nstrategy: static\n"), 0o600))

	stdout, _, err := execute(t, "run", "--config", path, "--json")
	require.NoError(t, err)
	var rep dungeon.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &rep))
	assert.Equal(t, 4, rep.GateSize)
	assert.Equal(t, dungeon.Static, rep.Strategy)

	stdout, _, err = execute(t, "run", "6", "0.5", "9", "--config", path, "--json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(stdout), &rep))
	assert.Equal(t, 6, rep.GateSize)
	assert.Equal(t, dungeon.Static, rep.Strategy)
}

// TestCompare_Agrees checks the equivalence table and success line.
func TestCompare_Agrees(t *testing.T) {
	stdout, _, err := execute(t, "compare", "10", "0.05", "42", "--workers", "8")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sequential")
	assert.Contains(t, stdout, "forkjoin")
	assert.Contains(t, stdout, "OK: all strategies agree (seed 42)")
}

// TestProfile_CSV checks the CSV header and one row per configuration.
func TestProfile_CSV(t *testing.T) {
	out := filepath.Join(t.TempDir(), "results.csv")
	_, stderr, err := execute(t, "profile", "--sizes", "3,4", "--densities", "0.2",
		"--seeds", "1", "--strategies", "seq,fj", "--repeats", "1", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Profiling complete")

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1+2*2)
	assert.Equal(t, []string{"Grid_Size", "Density", "Seed", "Strategy", "Time_ms", "Speedup"}, records[0])
	assert.Equal(t, []string{"3", "0.2", "1", "sequential"}, records[1][:4])
	assert.Equal(t, "1.00", records[1][5], "sequential is its own baseline")
	assert.Equal(t, "forkjoin", records[2][3])
	assert.Contains(t, stderr, "Maximum speedup:")

	_, _, err = execute(t, "profile", "--sizes", "x")
	assert.Equal(t, exitUsage, exitCode(t, err))
}
