package render

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/san-kum/wolfca/internal/automaton"
)

// ErrMissingColor indicates a state with no palette entry.
var ErrMissingColor = errors.New("render: state has no color")

// Palette maps cell states to colors.
type Palette map[automaton.State]color.RGBA

// DefaultPalette returns the warm four-color palette used when none is
// configured.
func DefaultPalette() Palette {
	return Palette{
		0: {R: 255, G: 226, B: 131, A: 255},
		1: {R: 246, G: 182, B: 106, A: 255},
		2: {R: 230, G: 129, B: 106, A: 255},
		3: {R: 230, G: 206, B: 172, A: 255},
	}
}

// GrayPalette spreads states evenly from white (state 0) to black.
func GrayPalette(states int) Palette {
	p := make(Palette, states)
	for s := 0; s < states; s++ {
		v := uint8(255 - s*255/max(1, states-1))
		p[automaton.State(s)] = color.RGBA{R: v, G: v, B: v, A: 255}
	}
	return p
}

// ParsePalette reads "#rrggbb" strings; entry i colors state i.
func ParsePalette(hex []string) (Palette, error) {
	if len(hex) > automaton.MaxStates {
		return nil, fmt.Errorf("palette has %d colors, at most %d states exist", len(hex), automaton.MaxStates)
	}
	p := make(Palette, len(hex))
	for i, h := range hex {
		c, err := parseHex(h)
		if err != nil {
			return nil, fmt.Errorf("palette entry %d: %w", i, err)
		}
		p[automaton.State(i)] = c
	}
	return p, nil
}

func parseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q is not #rrggbb", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q is not #rrggbb", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// Hex formats a color as "#rrggbb".
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Covers reports ErrMissingColor if any state in [0, states) lacks a color.
func (p Palette) Covers(states int) error {
	for s := 0; s < states; s++ {
		if _, ok := p[automaton.State(s)]; !ok {
			return fmt.Errorf("%w: state %d of %d", ErrMissingColor, s, states)
		}
	}
	return nil
}

// Color returns the color for s.
func (p Palette) Color(s automaton.State) (color.RGBA, error) {
	c, ok := p[s]
	if !ok {
		return color.RGBA{}, fmt.Errorf("%w: state %d", ErrMissingColor, s)
	}
	return c, nil
}
