package metrics

import (
	"math"

	"github.com/san-kum/wolfca/internal/automaton"
)

// Entropy is the mean Shannon entropy, in bits, of the state distribution
// within each generation.
type Entropy struct {
	name    string
	sum     float64
	samples int
}

func NewEntropy() *Entropy {
	return &Entropy{name: "entropy"}
}

func (e *Entropy) Name() string { return e.name }

func (e *Entropy) Observe(g automaton.Generation, step int) {
	e.sum += RowEntropy(g)
	e.samples++
}

func (e *Entropy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

func (e *Entropy) Reset() {
	e.sum = 0
	e.samples = 0
}

// RowEntropy returns the Shannon entropy of the state frequencies in g.
func RowEntropy(g automaton.Generation) float64 {
	if len(g) == 0 {
		return 0
	}
	var counts [automaton.MaxStates]int
	for _, s := range g {
		counts[s]++
	}
	n := float64(len(g))
	h := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}
