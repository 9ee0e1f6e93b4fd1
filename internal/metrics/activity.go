package metrics

import "github.com/san-kum/wolfca/internal/automaton"

// Activity is the mean fraction of cells that change between consecutive
// generations.
type Activity struct {
	name    string
	prev    automaton.Generation
	sum     float64
	samples int
}

func NewActivity() *Activity {
	return &Activity{name: "activity"}
}

func (a *Activity) Name() string { return a.name }

func (a *Activity) Observe(g automaton.Generation, step int) {
	if a.prev != nil && len(a.prev) == len(g) && len(g) > 0 {
		changed := 0
		for i := range g {
			if g[i] != a.prev[i] {
				changed++
			}
		}
		a.sum += float64(changed) / float64(len(g))
		a.samples++
	}
	a.prev = append(a.prev[:0], g...)
}

func (a *Activity) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return a.sum / float64(a.samples)
}

func (a *Activity) Reset() {
	a.prev = nil
	a.sum = 0
	a.samples = 0
}
