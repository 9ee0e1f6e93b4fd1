package automaton

import (
	"errors"
	"fmt"
)

// Domain errors for rule derivation and stepping.
var (
	// ErrInvalidArgument indicates malformed input: a base below 2, a negative
	// number, or a generation too narrow to wrap.
	ErrInvalidArgument = errors.New("automaton: invalid argument")

	// ErrOutOfRange indicates a rule identifier that does not fit the rule
	// space of the requested state count and radius.
	ErrOutOfRange = errors.New("automaton: rule id out of range")

	// ErrKeyNotFound indicates a neighborhood with no entry in the rule table.
	ErrKeyNotFound = errors.New("automaton: neighborhood not in rule table")
)

// StepError wraps a stepping failure with the generation and cell it
// occurred at.
type StepError struct {
	Generation   int
	Cell         int
	Neighborhood Neighborhood
	Wrapped      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("generation %d, cell %d, neighborhood %v: %v", e.Generation, e.Cell, []State(e.Neighborhood), e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
