package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/wolfca/internal/automaton"
	"github.com/san-kum/wolfca/internal/render"
)

// HistoryToSVG draws history as an SVG grid with scale-sized square cells.
// Runs of equal states within a row become a single rect; state 0 is the
// background.
func HistoryToSVG(history []automaton.Generation, palette render.Palette, scale float64) (string, error) {
	if len(history) == 0 || len(history[0]) == 0 {
		return "", render.ErrEmptyHistory
	}
	if scale <= 0 {
		return "", fmt.Errorf("scale must be positive, got %f", scale)
	}

	bg, err := palette.Color(0)
	if err != nil {
		return "", err
	}

	cols := len(history[0])
	width := float64(cols) * scale
	height := float64(len(history)) * scale

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" shape-rendering="crispEdges">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, render.Hex(bg)))

	for y, g := range history {
		if len(g) != cols {
			return "", fmt.Errorf("generation %d has width %d, want %d", y, len(g), cols)
		}
		for x := 0; x < cols; {
			s := g[x]
			end := x + 1
			for end < cols && g[end] == s {
				end++
			}
			c, err := palette.Color(s)
			if err != nil {
				return "", fmt.Errorf("generation %d, cell %d: %w", y, x, err)
			}
			if s != 0 {
				sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, float64(x)*scale, float64(y)*scale, float64(end-x)*scale, scale, render.Hex(c)))
			}
			x = end
		}
	}

	sb.WriteString("</svg>")
	return sb.String(), nil
}
