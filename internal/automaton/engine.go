package automaton

import (
	"fmt"
	"iter"
)

// Engine steps a ring of cells under a rule table. It keeps two buffers and
// swaps their roles each generation; every generation it returns is a copy
// the caller owns.
type Engine struct {
	table   *Table
	prev    Generation
	next    Generation
	scratch Neighborhood
	gen     int
	err     error
}

// NewEngine prepares an engine starting from initial. The initial generation
// is copied and must be at least two cells wide so wrap-around is defined.
func NewEngine(initial Generation, table *Table) (*Engine, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: nil rule table", ErrInvalidArgument)
	}
	if len(initial) < 2 {
		return nil, fmt.Errorf("%w: generation width must be at least 2, got %d", ErrInvalidArgument, len(initial))
	}
	return &Engine{
		table:   table,
		prev:    initial.Clone(),
		next:    make(Generation, len(initial)),
		scratch: make(Neighborhood, table.Size()),
	}, nil
}

// Width returns the number of cells in each generation.
func (e *Engine) Width() int { return len(e.prev) }

// Generation returns how many generations have been produced so far.
func (e *Engine) Generation() int { return e.gen }

// Table returns the rule table driving the engine.
func (e *Engine) Table() *Table { return e.table }

// Next computes and returns the following generation. Once a step fails the
// engine is spent and every later call returns the same error.
func (e *Engine) Next() (Generation, error) {
	if e.err != nil {
		return nil, e.err
	}

	w, r := len(e.prev), e.table.Neighbors()
	for i := 0; i < w; i++ {
		e.gather(i, w, r)
		s, err := e.table.Lookup(e.scratch)
		if err != nil {
			e.err = &StepError{
				Generation:   e.gen + 1,
				Cell:         i,
				Neighborhood: append(Neighborhood(nil), e.scratch...),
				Wrapped:      ErrKeyNotFound,
			}
			return nil, e.err
		}
		e.next[i] = s
	}

	out := e.next.Clone()
	e.prev, e.next = e.next, e.prev
	e.gen++
	return out, nil
}

// gather fills the scratch neighborhood for cell i from the previous buffer.
// Interior cells copy a contiguous window; cells within r of either edge
// wrap around the ring.
func (e *Engine) gather(i, w, r int) {
	if i-r >= 0 && i+r < w {
		copy(e.scratch, e.prev[i-r:i+r+1])
		return
	}
	for j := -r; j <= r; j++ {
		k := (i + j) % w
		if k < 0 {
			k += w
		}
		e.scratch[j+r] = e.prev[k]
	}
}

// All returns the engine's generations as an infinite sequence. The sequence
// shares the engine's state: it is not restartable, and it ends after
// yielding the first error.
func (e *Engine) All() iter.Seq2[Generation, error] {
	return func(yield func(Generation, error) bool) {
		for {
			g, err := e.Next()
			if !yield(g, err) || err != nil {
				return
			}
		}
	}
}
