// Package seed builds initial generations for the automaton.
package seed

import (
	"fmt"
	"math/rand/v2"
	"unicode"

	"github.com/san-kum/wolfca/internal/automaton"
	"github.com/san-kum/wolfca/internal/config"
)

// Random fills width cells with states drawn uniformly from [0, states).
// The same seed always yields the same generation.
func Random(width, states int, seed int64) (automaton.Generation, error) {
	if err := check(width, states); err != nil {
		return nil, err
	}
	r := rand.New(rand.NewPCG(uint64(seed), 0))
	g := make(automaton.Generation, width)
	for i := range g {
		g[i] = automaton.State(r.IntN(states))
	}
	return g, nil
}

// Single returns a generation with one live cell in the center.
func Single(width int) (automaton.Generation, error) {
	if err := check(width, 2); err != nil {
		return nil, err
	}
	g := make(automaton.Generation, width)
	g[width/2] = 1
	return g, nil
}

// Parse reads a generation written as decimal digits. Whitespace is ignored.
func Parse(pattern string, states int) (automaton.Generation, error) {
	if states < 2 || states > 10 {
		return nil, fmt.Errorf("%w: patterns support 2 to 10 states, got %d", automaton.ErrInvalidArgument, states)
	}
	g := make(automaton.Generation, 0, len(pattern))
	for i, r := range pattern {
		if unicode.IsSpace(r) {
			continue
		}
		if r < '0' || r > '9' || int(r-'0') >= states {
			return nil, fmt.Errorf("%w: pattern character %q at offset %d is not a state below %d", automaton.ErrInvalidArgument, r, i, states)
		}
		g = append(g, automaton.State(r-'0'))
	}
	if err := check(len(g), states); err != nil {
		return nil, err
	}
	return g, nil
}

// FromConfig builds the initial generation an init section describes.
func FromConfig(init config.InitConfig, width, states int, seed int64) (automaton.Generation, error) {
	switch init.Mode {
	case config.InitRandom, "":
		return Random(width, states, seed)
	case config.InitSingle:
		return Single(width)
	case config.InitPattern:
		return Parse(init.Pattern, states)
	default:
		return nil, fmt.Errorf("unknown init mode: %s", init.Mode)
	}
}

func check(width, states int) error {
	if width < 2 {
		return fmt.Errorf("%w: width must be at least 2, got %d", automaton.ErrInvalidArgument, width)
	}
	if states < 2 || states > automaton.MaxStates {
		return fmt.Errorf("%w: states must be in [2, %d], got %d", automaton.ErrInvalidArgument, automaton.MaxStates, states)
	}
	return nil
}
