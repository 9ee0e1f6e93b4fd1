package automaton

import (
	"fmt"
	"math/big"
	"strings"
)

const (
	// MaxStates bounds the per-cell state count so a State fits in a byte.
	MaxStates = 256

	// MaxNeighborhoods bounds the size of a rule table.
	MaxNeighborhoods = 1 << 20
)

// State is a single cell value in [0, states).
type State uint8

// Neighborhood is the ordered tuple of states around a cell, left to right,
// including the cell itself.
type Neighborhood []State

// Generation is one row of the lattice.
type Generation []State

// Clone returns an independent copy of g.
func (g Generation) Clone() Generation {
	c := make(Generation, len(g))
	copy(c, g)
	return c
}

func (g Generation) String() string {
	var b strings.Builder
	for _, s := range g {
		fmt.Fprintf(&b, "%d", s)
	}
	return b.String()
}

// Entry pairs a neighborhood with the state it produces.
type Entry struct {
	Neighborhood Neighborhood
	Output       State
}

// Table is a total mapping from neighborhoods to next states. Outputs are
// stored in descending neighborhood order: index 0 holds the output for the
// neighborhood with every cell at the maximum state.
type Table struct {
	states    int
	neighbors int
	size      int
	outputs   []State
	rule      *big.Int
}

// DeriveRule builds the rule table numbered ruleID for automata with the
// given state count and neighborhood radius.
func DeriveRule(ruleID *big.Int, states, neighbors int) (*Table, error) {
	possible, err := neighborhoodCount(states, neighbors)
	if err != nil {
		return nil, err
	}

	digits, err := ExpandBase(ruleID, states, possible)
	if err != nil {
		return nil, err
	}
	if len(digits) > possible {
		return nil, fmt.Errorf("%w: rule %v needs %d digits in base %d, only %d neighborhoods exist",
			ErrOutOfRange, ruleID, len(digits), states, possible)
	}

	outputs := make([]State, possible)
	for k, d := range digits {
		outputs[k] = State(d)
	}

	return &Table{
		states:    states,
		neighbors: neighbors,
		size:      2*neighbors + 1,
		outputs:   outputs,
		rule:      new(big.Int).Set(ruleID),
	}, nil
}

// NewTable builds a table from explicit outputs listed in descending
// neighborhood order. Outputs are not range-checked; an output outside
// [0, states) surfaces as ErrKeyNotFound once it appears in a neighborhood.
func NewTable(states, neighbors int, outputs []State) (*Table, error) {
	possible, err := neighborhoodCount(states, neighbors)
	if err != nil {
		return nil, err
	}
	if len(outputs) != possible {
		return nil, fmt.Errorf("%w: table for %d states radius %d needs %d outputs, got %d",
			ErrInvalidArgument, states, neighbors, possible, len(outputs))
	}

	t := &Table{
		states:    states,
		neighbors: neighbors,
		size:      2*neighbors + 1,
		outputs:   make([]State, possible),
	}
	copy(t.outputs, outputs)

	digits := make([]int, possible)
	for i, o := range outputs {
		digits[i] = int(o)
	}
	if rule, err := FromDigits(digits, states); err == nil {
		t.rule = rule
	}
	return t, nil
}

// neighborhoodCount returns states^(2*neighbors+1), rejecting parameter
// combinations whose table would exceed MaxNeighborhoods.
func neighborhoodCount(states, neighbors int) (int, error) {
	if states < 2 || states > MaxStates {
		return 0, fmt.Errorf("%w: states must be in [2, %d], got %d", ErrInvalidArgument, MaxStates, states)
	}
	if neighbors < 1 {
		return 0, fmt.Errorf("%w: neighbors must be at least 1, got %d", ErrInvalidArgument, neighbors)
	}
	count := 1
	for i := 0; i < 2*neighbors+1; i++ {
		count *= states
		if count > MaxNeighborhoods {
			return 0, fmt.Errorf("%w: %d states with radius %d exceeds %d neighborhoods",
				ErrInvalidArgument, states, neighbors, MaxNeighborhoods)
		}
	}
	return count, nil
}

// States returns the number of cell states.
func (t *Table) States() int { return t.states }

// Neighbors returns the neighborhood radius.
func (t *Table) Neighbors() int { return t.neighbors }

// Size returns the neighborhood length, 2*Neighbors()+1.
func (t *Table) Size() int { return t.size }

// Len returns the number of neighborhoods in the table.
func (t *Table) Len() int { return len(t.outputs) }

// RuleID returns the rule number the table encodes, or nil for a hand-built
// table whose outputs are not valid digits.
func (t *Table) RuleID() *big.Int {
	if t.rule == nil {
		return nil
	}
	return new(big.Int).Set(t.rule)
}

// Outputs returns a copy of the outputs in descending neighborhood order.
func (t *Table) Outputs() []State {
	out := make([]State, len(t.outputs))
	copy(out, t.outputs)
	return out
}

// Lookup returns the next state for n.
func (t *Table) Lookup(n Neighborhood) (State, error) {
	if len(n) != t.size {
		return 0, fmt.Errorf("%w: neighborhood %v has length %d, want %d", ErrKeyNotFound, []State(n), len(n), t.size)
	}
	idx := 0
	for _, s := range n {
		if int(s) >= t.states {
			return 0, fmt.Errorf("%w: neighborhood %v contains state %d outside [0, %d)", ErrKeyNotFound, []State(n), s, t.states)
		}
		idx = idx*t.states + int(s)
	}
	return t.outputs[len(t.outputs)-1-idx], nil
}

// Entries lists every neighborhood with its output in descending order.
func (t *Table) Entries() []Entry {
	hoods := enumerate(t.states, t.size, len(t.outputs))
	entries := make([]Entry, len(hoods))
	for k, n := range hoods {
		entries[k] = Entry{Neighborhood: n, Output: t.outputs[k]}
	}
	return entries
}

// Equal reports whether t and other map every neighborhood identically.
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.states != other.states || t.neighbors != other.neighbors || len(t.outputs) != len(other.outputs) {
		return false
	}
	for i := range t.outputs {
		if t.outputs[i] != other.outputs[i] {
			return false
		}
	}
	return true
}

// Neighborhoods enumerates all neighborhoods for the given state count and
// radius in descending numeric order.
func Neighborhoods(states, neighbors int) ([]Neighborhood, error) {
	possible, err := neighborhoodCount(states, neighbors)
	if err != nil {
		return nil, err
	}
	return enumerate(states, 2*neighbors+1, possible), nil
}

func enumerate(states, size, possible int) []Neighborhood {
	hoods := make([]Neighborhood, possible)
	for k := range hoods {
		v := possible - 1 - k
		n := make(Neighborhood, size)
		for i := size - 1; i >= 0; i-- {
			n[i] = State(v % states)
			v /= states
		}
		hoods[k] = n
	}
	return hoods
}

// ParseRuleID parses a decimal rule identifier of any size.
func ParseRuleID(s string) (*big.Int, error) {
	id, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, fmt.Errorf("%w: rule id %q is not a decimal integer", ErrInvalidArgument, s)
	}
	if id.Sign() < 0 {
		return nil, fmt.Errorf("%w: rule id %v is negative", ErrInvalidArgument, id)
	}
	return id, nil
}
