package sim

import (
	"fmt"

	"github.com/san-kum/wolfca/internal/automaton"
)

type Metric interface {
	Name() string
	Observe(g automaton.Generation, step int)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(g automaton.Generation, step int)
}

type Config struct {
	// Generations counts rows in the history, including the initial one.
	Generations int
}

type Result struct {
	History []automaton.Generation
	Metrics map[string]float64
}

type SimError struct {
	Step    int
	Wrapped error
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Step, e.Wrapped)
}

func (e SimError) Unwrap() error {
	return e.Wrapped
}
