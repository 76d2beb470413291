package dungeon

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/manahunt/field"
)

// Report is the typed outcome of a hunt.
type Report struct {
	RunID         string   `json:"run_id" yaml:"run_id"`
	Strategy      Strategy `json:"strategy" yaml:"strategy"`
	Seed          int64    `json:"seed" yaml:"seed"`
	EffectiveSeed int64    `json:"effective_seed" yaml:"effective_seed"`

	GateSize int          `json:"gate_size" yaml:"gate_size"`
	Density  float64      `json:"density" yaml:"density"`
	Rows     int          `json:"rows" yaml:"rows"`
	Columns  int          `json:"columns" yaml:"columns"`
	Bounds   field.Bounds `json:"bounds" yaml:"bounds"`

	Agents    int           `json:"agents" yaml:"agents"`
	Workers   int           `json:"workers" yaml:"workers"`
	Threshold int           `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	Elapsed   time.Duration `json:"elapsed_ns" yaml:"elapsed"`

	Evaluated int64   `json:"evaluated" yaml:"evaluated"`
	Coverage  float64 `json:"coverage" yaml:"coverage"`

	Mana     int     `json:"mana" yaml:"mana"`
	Finder   int     `json:"finder" yaml:"finder"`
	FinderID int     `json:"finder_id" yaml:"finder_id"`
	Row      int     `json:"row" yaml:"row"`
	Col      int     `json:"col" yaml:"col"`
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`

	Steps StepStats `json:"steps" yaml:"steps"`
}

// ManaValue returns Mana in continuous units.
func (r *Report) ManaValue() float64 { return float64(r.Mana) / field.Precision }

// StepStats summarises agent step counts.
type StepStats struct {
	Total  int     `json:"total" yaml:"total"`
	Max    int     `json:"max" yaml:"max"`
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"stddev" yaml:"stddev"`
}

// stepStats computes StepStats; StdDev is 0 for fewer than two agents.
func stepStats(steps []int) StepStats {
	var st StepStats
	if len(steps) == 0 {
		return st
	}
	xs := make([]float64, len(steps))
	for i, s := range steps {
		xs[i] = float64(s)
		st.Total += s
		if s > st.Max {
			st.Max = s
		}
	}
	if len(xs) < 2 {
		st.Mean = xs[0]
		return st
	}
	st.Mean, st.StdDev = stat.MeanStdDev(xs, nil)
	return st
}
