package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/wolfca/internal/automaton"
)

const halfBlock = "▀"

// Terminal draws history with colored half blocks, two generations per text
// line: the upper half is generation 2k, the lower half generation 2k+1.
func Terminal(history []automaton.Generation, p Palette) (string, error) {
	w, h, err := bounds(history)
	if err != nil {
		return "", err
	}

	pairs := make(map[[2]automaton.State]lipgloss.Style)
	tops := make(map[automaton.State]lipgloss.Style)
	var b strings.Builder
	for y := 0; y < h; y += 2 {
		// A trailing odd row has no bottom half: foreground only.
		hasBottom := y+1 < h
		for x := 0; x < w; x++ {
			top := history[y][x]
			var (
				style lipgloss.Style
				ok    bool
				key   [2]automaton.State
			)
			if hasBottom {
				key = [2]automaton.State{top, history[y+1][x]}
				style, ok = pairs[key]
			} else {
				style, ok = tops[top]
			}
			if !ok {
				fg, err := p.Color(top)
				if err != nil {
					return "", err
				}
				style = lipgloss.NewStyle().Foreground(lipgloss.Color(Hex(fg)))
				if hasBottom {
					bg, err := p.Color(key[1])
					if err != nil {
						return "", err
					}
					style = style.Background(lipgloss.Color(Hex(bg)))
					pairs[key] = style
				} else {
					tops[top] = style
				}
			}
			b.WriteString(style.Render(halfBlock))
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}
