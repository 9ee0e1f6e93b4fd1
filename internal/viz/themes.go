package viz

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/wolfca/internal/render"
)

// Theme pairs a cell palette with the colors of the surrounding UI.
type Theme struct {
	Name    string
	Palette render.Palette
	Accent  lipgloss.Color
	Muted   lipgloss.Color
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 255} }

// Available themes
var (
	ThemeWarm = Theme{
		Name:    "warm",
		Palette: render.DefaultPalette(),
		Accent:  lipgloss.Color("#f6b66a"),
		Muted:   lipgloss.Color("#8b6b5c"),
	}

	ThemeMono = Theme{
		Name: "mono",
		Palette: render.Palette{
			0: rgb(0, 0, 0), 1: rgb(255, 255, 255), 2: rgb(160, 160, 160), 3: rgb(80, 80, 80),
		},
		Accent: lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
	}

	ThemeOcean = Theme{
		Name: "ocean",
		Palette: render.Palette{
			0: rgb(0, 26, 51), 1: rgb(0, 168, 204), 2: rgb(255, 215, 0), 3: rgb(224, 240, 255),
		},
		Accent: lipgloss.Color("#00a8cc"),
		Muted:  lipgloss.Color("#4488aa"),
	}

	ThemeRetroGreen = Theme{
		Name: "retro",
		Palette: render.Palette{
			0: rgb(0, 17, 0), 1: rgb(0, 255, 0), 2: rgb(0, 136, 0), 3: rgb(136, 255, 136),
		},
		Accent: lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
	}

	// All available themes
	Themes = []Theme{
		ThemeWarm,
		ThemeMono,
		ThemeOcean,
		ThemeRetroGreen,
	}
)

// ErrUnknownTheme is returned for a theme name not in Themes.
var ErrUnknownTheme = errors.New("viz: unknown theme")

// GetTheme returns the index and value of the named theme.
func GetTheme(name string) (int, Theme, error) {
	for i, t := range Themes {
		if t.Name == name {
			return i, t, nil
		}
	}
	return 0, Theme{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownTheme, name, ThemeNames())
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// paletteFor returns the theme palette, extended with grays for states the
// theme does not color.
func (t Theme) paletteFor(states int) render.Palette {
	if t.Palette.Covers(states) == nil {
		return t.Palette
	}
	p := render.GrayPalette(states)
	for s, c := range t.Palette {
		if int(s) < states {
			p[s] = c
		}
	}
	return p
}
