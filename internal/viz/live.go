package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/wolfca/internal/automaton"
	"github.com/san-kum/wolfca/internal/metrics"
	"github.com/san-kum/wolfca/internal/render"
)

const (
	defaultRows     = 48
	historyCapacity = 600
	minInterval     = time.Second / 60
	maxInterval     = time.Second
)

type TickMsg time.Time

// Model scrolls the generations of a running engine through the terminal.
type Model struct {
	title    string
	table    *automaton.Table
	initial  automaton.Generation
	engine   *automaton.Engine
	rows     []automaton.Generation
	maxRows  int
	density  []float64
	running  bool
	interval time.Duration
	theme    int
	err      error
	showHelp bool
}

// NewModel prepares a live view of table starting from initial, keeping the
// last rows generations on screen. rows <= 0 selects a default.
func NewModel(title string, table *automaton.Table, initial automaton.Generation, rows int) (Model, error) {
	eng, err := automaton.NewEngine(initial, table)
	if err != nil {
		return Model{}, err
	}
	if rows <= 0 {
		rows = defaultRows
	}
	m := Model{
		title:    title,
		table:    table,
		initial:  initial.Clone(),
		engine:   eng,
		maxRows:  rows,
		running:  true,
		interval: time.Second / 20,
	}
	m.push(initial.Clone())
	return m, nil
}

// SetTheme selects the theme by name.
func (m *Model) SetTheme(name string) error {
	i, _, err := GetTheme(name)
	if err != nil {
		return err
	}
	m.theme = i
	return nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the engine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running && m.err == nil
		case "n":
			if !m.running {
				m.step()
			}
		case "r":
			m.reset()
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		case "+", "=":
			m.interval = max(m.interval/2, minInterval)
		case "-", "_":
			m.interval = min(m.interval*2, maxInterval)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances the engine by one generation. A failed step stops the view
// and leaves the error on screen.
func (m *Model) step() {
	if m.err != nil {
		return
	}
	g, err := m.engine.Next()
	if err != nil {
		m.err = err
		m.running = false
		return
	}
	m.push(g)
}

func (m *Model) push(g automaton.Generation) {
	m.rows = append(m.rows, g)
	if len(m.rows) > m.maxRows {
		m.rows = m.rows[len(m.rows)-m.maxRows:]
	}
	m.density = append(m.density, metrics.Fill(g))
	if len(m.density) > historyCapacity {
		m.density = m.density[1:]
	}
}

// reset restarts from the initial generation.
func (m *Model) reset() {
	eng, err := automaton.NewEngine(m.initial, m.table)
	if err != nil {
		m.err = err
		return
	}
	m.engine = eng
	m.err = nil
	m.rows = nil
	m.density = nil
	m.push(m.initial.Clone())
}

// Generation reports how many generations the engine has produced.
func (m Model) Generation() int { return m.engine.Generation() }

// Rows returns the generations currently on screen, oldest first.
func (m Model) Rows() []automaton.Generation { return m.rows }

// Err returns the step error that stopped the view, if any.
func (m Model) Err() error { return m.err }

// View renders the TUI interface.
func (m Model) View() string {
	theme := Themes[m.theme]
	header := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).MarginBottom(1)

	var canvas string
	if grid, err := render.Terminal(m.rows, theme.paletteFor(m.table.States())); err != nil {
		canvas = StatusFailed.Render(err.Error())
	} else {
		canvas = grid
	}
	canvasView := canvasStyle.Render(canvas)

	var s strings.Builder
	s.WriteString(header.Render(strings.ToUpper(m.title)) + "\n")
	switch {
	case m.err != nil:
		s.WriteString(StatusFailed.Render("FAILED") + "\n")
		s.WriteString(lipgloss.NewStyle().Width(30).Render(m.err.Error()) + "\n\n")
	case m.running:
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}
	if len(m.density) > 1 {
		chart := asciigraph.Plot(m.density, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Density"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	s.WriteString(SparklineChart(m.density, 30) + "\n\n")

	fill := 0.0
	if len(m.density) > 0 {
		fill = m.density[len(m.density)-1]
	}
	s.WriteString(labelStyle.Render("Generation") + valueStyle.Render(fmt.Sprintf("%d", m.engine.Generation())) + "\n")
	s.WriteString(labelStyle.Render("Density") + valueStyle.Render(fmt.Sprintf("%.3f", fill)) + "\n")
	s.WriteString(labelStyle.Render("Width") + valueStyle.Render(fmt.Sprintf("%d", m.engine.Width())) + "\n")
	s.WriteString(labelStyle.Render("States") + valueStyle.Render(fmt.Sprintf("%d", m.table.States())) + "\n")
	s.WriteString(labelStyle.Render("Radius") + valueStyle.Render(fmt.Sprintf("%d", m.table.Neighbors())) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%.0f gen/s", float64(time.Second)/float64(m.interval))) + "\n")
	s.WriteString(labelStyle.Render("Theme") + lipgloss.NewStyle().Foreground(theme.Muted).Render(theme.Name) + "\n")

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause N:Step R:Reset\nT:Theme +/-:Speed Q:Quit"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  N        - Single step while paused ║
║  R        - Restart                  ║
║  T        - Cycle themes             ║
║  + / -    - Faster / slower          ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
