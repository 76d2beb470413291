package dungeon_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/manahunt/dungeon"
)

func row(gate int, density float64, seed int64, s dungeon.Strategy, ms int) dungeon.ProfileRow {
	return dungeon.ProfileRow{
		GateSize: gate, Density: density, Seed: seed, Strategy: s,
		Mean: time.Duration(ms) * time.Millisecond,
	}
}

// TestSpeedups checks every row is measured against the sequential row of
// its own configuration.
func TestSpeedups(t *testing.T) {
	rows := []dungeon.ProfileRow{
		row(10, 0.1, 1, dungeon.Sequential, 100),
		row(10, 0.1, 1, dungeon.Static, 25),
		row(10, 0.1, 1, dungeon.ForkJoin, 50),
		row(10, 0.1, 2, dungeon.ForkJoin, 80), // baseline listed after
		row(10, 0.1, 2, dungeon.Sequential, 40),
		row(20, 0.1, 1, dungeon.Static, 10), // no baseline
	}
	dungeon.Speedups(rows)

	assert.Equal(t, 1.0, rows[0].Speedup)
	assert.InDelta(t, 4.0, rows[1].Speedup, 1e-12)
	assert.InDelta(t, 2.0, rows[2].Speedup, 1e-12)
	assert.InDelta(t, 0.5, rows[3].Speedup, 1e-12)
	assert.Equal(t, 1.0, rows[4].Speedup)
	assert.Zero(t, rows[5].Speedup)

	sum, ok := dungeon.Summarize(rows)
	require.True(t, ok)
	assert.Equal(t, dungeon.Static, sum.Best.Strategy)
	assert.InDelta(t, 4.0, sum.Best.Speedup, 1e-12)
	require.Len(t, sum.ByGate, 1, "rows without a baseline are skipped")
	assert.InDelta(t, (4.0+2.0+0.5)/3, sum.ByGate[0].Mean, 1e-12)
	require.Len(t, sum.ByDensity, 1)
	require.Len(t, sum.Slower, 1)
	assert.Equal(t, int64(2), sum.Slower[0].Seed)
}

// TestSummarize_SequentialOnly reports nothing without parallel rows.
func TestSummarize_SequentialOnly(t *testing.T) {
	rows := []dungeon.ProfileRow{row(10, 0.1, 1, dungeon.Sequential, 5)}
	dungeon.Speedups(rows)
	_, ok := dungeon.Summarize(rows)
	assert.False(t, ok)
}
