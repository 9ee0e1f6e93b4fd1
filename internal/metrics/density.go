package metrics

import "github.com/san-kum/wolfca/internal/automaton"

// Density is the mean fraction of non-zero cells per generation.
type Density struct {
	name    string
	sum     float64
	samples int
}

func NewDensity() *Density {
	return &Density{name: "density"}
}

func (d *Density) Name() string { return d.name }

func (d *Density) Observe(g automaton.Generation, step int) {
	d.sum += Fill(g)
	d.samples++
}

func (d *Density) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return d.sum / float64(d.samples)
}

func (d *Density) Reset() {
	d.sum = 0
	d.samples = 0
}

// Fill returns the fraction of non-zero cells in g.
func Fill(g automaton.Generation) float64 {
	if len(g) == 0 {
		return 0
	}
	live := 0
	for _, s := range g {
		if s != 0 {
			live++
		}
	}
	return float64(live) / float64(len(g))
}

// DensitySeries returns Fill for every generation in history.
func DensitySeries(history []automaton.Generation) []float64 {
	series := make([]float64, len(history))
	for i, g := range history {
		series[i] = Fill(g)
	}
	return series
}
