package main

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/wolfca/internal/analysis"
	"github.com/san-kum/wolfca/internal/automaton"
	"github.com/san-kum/wolfca/internal/config"
	"github.com/san-kum/wolfca/internal/export"
	"github.com/san-kum/wolfca/internal/metrics"
	"github.com/san-kum/wolfca/internal/render"
	"github.com/san-kum/wolfca/internal/seed"
	"github.com/san-kum/wolfca/internal/sim"
	"github.com/san-kum/wolfca/internal/storage"
	"github.com/san-kum/wolfca/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir     string
	states      int
	neighbors   int
	width       int
	generations int
	seedValue   int64
	initMode    string
	pattern     string
	palette     []string
	output      string
	configFile  string
	preset      string
	// Rule table listing
	outputs string
	limit   int
	// Show and export
	braille bool
	scale   float64
	outFile string
	// Live view
	rows  int
	theme string
	// Survey
	ruleRange string
	workers   int
	sortBy    string
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers every command and its flags.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "wolfca",
		Short:        "one-dimensional cellular automaton lab",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".wolfca", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [rule]",
		Short: "run an automaton, save its image and store the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAutomaton,
	}
	addAutomatonFlags(runCmd)
	runCmd.Flags().StringVar(&output, "out", config.DefaultOutput, "image file (.png, .gif, .bmp, .tiff); empty to skip")

	ruleCmd := &cobra.Command{
		Use:   "rule [rule]",
		Short: "print a rule table",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printRule,
	}
	ruleCmd.Flags().IntVar(&states, "states", config.DefaultStates, "number of cell states")
	ruleCmd.Flags().IntVar(&neighbors, "neighbors", config.DefaultNeighbors, "neighborhood radius")
	ruleCmd.Flags().StringVar(&outputs, "outputs", "", "derive the rule number from outputs in descending neighborhood order")
	ruleCmd.Flags().IntVar(&limit, "limit", 256, "maximum neighborhoods to list (0 for all)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "draw a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().BoolVar(&braille, "braille", false, "draw with braille dots (8 cells per character)")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot per-generation observables",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "cycle detection and density spectrum",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().Float64Var(&scale, "scale", 4, "cell size in pixels")
	exportSVGCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	exportImageCmd := &cobra.Command{
		Use:   "export-image [run_id]",
		Short: "render a stored run to an image file",
		Args:  cobra.ExactArgs(1),
		RunE:  exportImage,
	}
	exportImageCmd.Flags().StringVar(&outFile, "out", "", "image file (.png, .gif, .bmp, .tiff)")
	_ = exportImageCmd.MarkFlagRequired("out")

	liveCmd := &cobra.Command{
		Use:   "live [rule]",
		Short: "run an automaton with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addAutomatonFlags(liveCmd)
	liveCmd.Flags().IntVar(&rows, "rows", 48, "generations kept on screen")
	liveCmd.Flags().StringVar(&theme, "theme", viz.ThemeWarm.Name, "color theme: "+strings.Join(viz.ThemeNames(), ", "))

	surveyCmd := &cobra.Command{
		Use:   "survey",
		Short: "run many rules from the same start and compare them",
		Args:  cobra.NoArgs,
		RunE:  runSurvey,
	}
	addAutomatonFlags(surveyCmd)
	surveyCmd.Flags().StringVar(&ruleRange, "rules", "0-255", "rules to run, e.g. 0-255 or 30,90,110")
	surveyCmd.Flags().IntVar(&workers, "workers", 0, "concurrent runs (0 for one per CPU)")
	surveyCmd.Flags().StringVar(&sortBy, "sort", "rule", "order by rule, density, entropy or activity")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, ruleCmd, listCmd, showCmd, plotCmd, analyzeCmd, exportJSONCmd, exportSVGCmd, exportImageCmd, liveCmd, surveyCmd, presetsCmd)
	return rootCmd
}

func addAutomatonFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&states, "states", config.DefaultStates, "number of cell states")
	cmd.Flags().IntVar(&neighbors, "neighbors", config.DefaultNeighbors, "neighborhood radius")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "cells per generation")
	cmd.Flags().IntVar(&generations, "generations", config.DefaultGenerations, "generations, including the initial one")
	cmd.Flags().Int64Var(&seedValue, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&initMode, "init", config.DefaultInitMode, "initial generation: random, single or pattern")
	cmd.Flags().StringVar(&pattern, "pattern", "", "initial generation as digits (implies --init pattern)")
	cmd.Flags().StringSliceVar(&palette, "palette", nil, "colors as #rrggbb, one per state")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers defaults, preset, config file, explicitly set flags
// and the positional rule, in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("states") {
		cfg.States = states
	}
	if flags.Changed("neighbors") {
		cfg.Neighbors = neighbors
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("generations") {
		cfg.Generations = generations
	}
	if flags.Changed("init") {
		cfg.Init.Mode = initMode
	}
	if flags.Changed("pattern") {
		cfg.Init.Pattern = pattern
		if !flags.Changed("init") {
			cfg.Init.Mode = config.InitPattern
		}
	}
	if flags.Changed("palette") {
		cfg.Palette = palette
	}
	if flags.Changed("out") {
		cfg.Output = output
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seedValue
	}
	if len(args) > 0 {
		cfg.Rule = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// paletteFor returns the configured palette, or a default covering states.
func paletteFor(hex []string, states int) (render.Palette, error) {
	if len(hex) == 0 {
		p := render.DefaultPalette()
		if p.Covers(states) != nil {
			p = render.GrayPalette(states)
		}
		return p, nil
	}
	p, err := render.ParsePalette(hex)
	if err != nil {
		return nil, err
	}
	return p, p.Covers(states)
}

func defaultMetrics() []sim.Metric {
	return []sim.Metric{metrics.NewDensity(), metrics.NewEntropy(), metrics.NewActivity()}
}

func runAutomaton(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	table, err := cfg.Table()
	if err != nil {
		return err
	}
	pal, err := paletteFor(cfg.Palette, cfg.States)
	if err != nil {
		return err
	}
	initial, err := seed.FromConfig(cfg.Init, cfg.Width, cfg.States, cfg.Seed)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s := sim.New(table)
	for _, m := range defaultMetrics() {
		s.AddMetric(m)
	}

	fmt.Fprintf(out, "running rule %s (%d states, radius %d)...\n", cfg.Rule, cfg.States, cfg.Neighbors)
	start := time.Now()

	result, err := s.Run(cmd.Context(), initial, sim.Config{Generations: cfg.Generations})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Rule:      cfg.Rule,
		States:    cfg.States,
		Neighbors: cfg.Neighbors,
		Seed:      cfg.Seed,
		InitMode:  cfg.Init.Mode,
		Palette:   cfg.Palette,
		Image:     cfg.Output,
	}, result)
	if err != nil {
		return err
	}

	if cfg.Output != "" {
		if err := render.Save(cfg.Output, result.History, pal); err != nil {
			if rmErr := st.Delete(runID); rmErr != nil {
				return fmt.Errorf("%w (removing run %s: %v)", err, runID, rmErr)
			}
			return err
		}
	}

	fmt.Fprintf(out, "completed in %v\n", elapsed)
	fmt.Fprintf(out, "run id: %s\n", runID)
	fmt.Fprintf(out, "generations: %d x %d cells\n", len(result.History), cfg.Width)
	if cfg.Output != "" {
		fmt.Fprintf(out, "image: %s\n", cfg.Output)
	}
	fmt.Fprintln(out, "\nmetrics:")
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Fprintf(out, "  %s: %.6f\n", name, result.Metrics[name])
	}

	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func printRule(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var table *automaton.Table
	switch {
	case outputs != "":
		digits, err := parseOutputs(outputs, states)
		if err != nil {
			return err
		}
		table, err = automaton.NewTable(states, neighbors, digits)
		if err != nil {
			return err
		}
	case len(args) == 1:
		id, err := automaton.ParseRuleID(args[0])
		if err != nil {
			return err
		}
		table, err = automaton.DeriveRule(id, states, neighbors)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("rule number or --outputs required")
	}

	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("rule %v", table.RuleID())))
	fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("%d states, radius %d, %d neighborhoods", table.States(), table.Neighbors(), table.Len())))
	fmt.Fprintln(out)

	entries := table.Entries()
	shown := entries
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NEIGHBORHOOD\tNEXT")
	for _, e := range shown {
		fmt.Fprintf(w, "%s\t%d\n", automaton.Generation(e.Neighborhood), e.Output)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(shown) < len(entries) {
		fmt.Fprintf(out, "... %d more\n", len(entries)-len(shown))
	}
	return nil
}

// parseOutputs reads one decimal digit per neighborhood.
func parseOutputs(s string, states int) ([]automaton.State, error) {
	s = strings.Join(strings.Fields(s), "")
	digits := make([]int, len(s))
	for i, r := range s {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("%w: output %q is not a digit", automaton.ErrInvalidArgument, r)
		}
		digits[i] = int(r - '0')
	}
	if _, err := automaton.FromDigits(digits, states); err != nil {
		return nil, err
	}
	out := make([]automaton.State, len(digits))
	for i, d := range digits {
		out[i] = automaton.State(d)
	}
	return out, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tRULE\tSTATES\tRADIUS\tWIDTH\tGENS\tINIT\tTIME")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%s\t%s\n",
			run.ID,
			run.Rule,
			run.States,
			run.Neighbors,
			run.Width,
			run.Generations,
			run.InitMode,
			run.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}

	return w.Flush()
}

// loadRun returns a stored run's metadata and history.
func loadRun(runID string) (*storage.RunMetadata, []automaton.Generation, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	history, err := st.LoadHistory(runID)
	if err != nil {
		return nil, nil, err
	}

	if len(history) == 0 {
		return nil, nil, fmt.Errorf("run %s has no generations", runID)
	}
	return meta, history, nil
}

func showRun(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	meta, history, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("rule %s", meta.Rule)))
	fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("%s, %d x %d", meta.ID, meta.Width, len(history))))

	if braille {
		fmt.Fprint(out, viz.FromHistory(history).String())
		return nil
	}

	pal, err := paletteFor(meta.Palette, meta.States)
	if err != nil {
		return err
	}
	grid, err := render.Terminal(history, pal)
	if err != nil {
		return err
	}
	fmt.Fprint(out, grid)
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	meta, history, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "rule: %s\n", meta.Rule)
	fmt.Fprintf(out, "generations: %d\n\n", len(history))

	if len(history) < 2 {
		return fmt.Errorf("need at least 2 generations to plot")
	}

	entropy := make([]float64, len(history))
	activity := make([]float64, len(history)-1)
	for i, g := range history {
		entropy[i] = metrics.RowEntropy(g)
		if i > 0 {
			activity[i-1] = changed(history[i-1], g)
		}
	}

	series := []struct {
		caption string
		data    []float64
	}{
		{"density (fraction of non-zero cells)", metrics.DensitySeries(history)},
		{"entropy (bits per cell)", entropy},
		{"activity (fraction of cells changed)", activity},
	}
	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}

	return nil
}

func changed(prev, cur automaton.Generation) float64 {
	if len(cur) == 0 {
		return 0
	}
	n := 0
	for i := range cur {
		if i < len(prev) && prev[i] != cur[i] {
			n++
		}
	}
	return float64(n) / float64(len(cur))
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	meta, history, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "analysis: %s\n", meta.ID)
	fmt.Fprintf(out, "rule: %s\n\n", meta.Rule)

	if start, period, ok := analysis.DetectCycle(history); ok {
		fmt.Fprintf(out, "cycle: generation %d repeats every %d generations\n", start, period)
	} else {
		fmt.Fprintf(out, "cycle: none within %d generations\n", len(history))
	}

	density := metrics.DensitySeries(history)
	ps := analysis.PowerSpectrum(density)
	if len(ps) >= 4 {
		plotData := ps[:len(ps)/2]
		graph := asciigraph.Plot(plotData,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (density)"),
		)
		fmt.Fprintln(out)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}

	if period := analysis.DominantPeriod(density); period > 0 {
		fmt.Fprintf(out, "dominant density period: %.2f generations\n", period)
	} else {
		fmt.Fprintln(out, "dominant density period: none (flat density)")
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, history, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(cmd.OutOrStdout(), meta, history)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, history, err := loadRun(args[0])
	if err != nil {
		return err
	}
	pal, err := paletteFor(meta.Palette, meta.States)
	if err != nil {
		return err
	}
	svg, err := export.HistoryToSVG(history, pal, scale)
	if err != nil {
		return err
	}
	if outFile == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), svg)
		return err
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outFile)
	return nil
}

func exportImage(cmd *cobra.Command, args []string) error {
	meta, history, err := loadRun(args[0])
	if err != nil {
		return err
	}
	pal, err := paletteFor(meta.Palette, meta.States)
	if err != nil {
		return err
	}
	if err := render.Save(outFile, history, pal); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outFile)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	table, err := cfg.Table()
	if err != nil {
		return err
	}
	initial, err := seed.FromConfig(cfg.Init, cfg.Width, cfg.States, cfg.Seed)
	if err != nil {
		return err
	}

	m, err := viz.NewModel("rule "+cfg.Rule, table, initial, rows)
	if err != nil {
		return err
	}
	if err := m.SetTheme(theme); err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runSurvey(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		return err
	}
	rules, err := parseRules(ruleRange)
	if err != nil {
		return err
	}
	if err := checkRuleSpace(rules, cfg.States, cfg.Neighbors); err != nil {
		return err
	}
	initial, err := seed.FromConfig(cfg.Init, cfg.Width, cfg.States, cfg.Seed)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "surveying %d rules (%d states, radius %d)...\n", len(rules), cfg.States, cfg.Neighbors)
	start := time.Now()

	results, err := sim.Survey(cmd.Context(), rules, cfg.States, cfg.Neighbors, initial,
		sim.Config{Generations: cfg.Generations}, defaultMetrics, workers)
	if err != nil {
		return err
	}

	if err := sortSurvey(results, sortBy); err != nil {
		return err
	}

	fmt.Fprintf(out, "completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RULE\tDENSITY\tENTROPY\tACTIVITY\tFINAL")
	for _, r := range results {
		final := r.Final.String()
		if len(final) > 40 {
			final = final[:40] + "…"
		}
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.4f\t%s\n",
			r.Rule, r.Metrics["density"], r.Metrics["entropy"], r.Metrics["activity"], final)
	}
	return w.Flush()
}

// sortSurvey orders results by rule or by a metric, largest first.
func sortSurvey(results []sim.SurveyResult, by string) error {
	switch by {
	case "rule":
		slices.SortStableFunc(results, func(a, b sim.SurveyResult) int {
			switch {
			case a.Rule < b.Rule:
				return -1
			case a.Rule > b.Rule:
				return 1
			}
			return 0
		})
	case "density", "entropy", "activity":
		slices.SortStableFunc(results, func(a, b sim.SurveyResult) int {
			switch x, y := a.Metrics[by], b.Metrics[by]; {
			case x > y:
				return -1
			case x < y:
				return 1
			}
			return 0
		})
	default:
		return fmt.Errorf("unknown sort key: %s", by)
	}
	return nil
}

// maxSurveyRules bounds the rules a single survey expands to.
const maxSurveyRules = 1 << 16

// parseRules reads a comma-separated list of rules and inclusive ranges.
func parseRules(s string) ([]uint64, error) {
	var rules []uint64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		from, err := strconv.ParseUint(strings.TrimSpace(lo), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid rule %q: %w", part, err)
		}
		to := from
		if isRange {
			to, err = strconv.ParseUint(strings.TrimSpace(hi), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid rule range %q: %w", part, err)
			}
			if to < from {
				return nil, fmt.Errorf("invalid rule range %q: end before start", part)
			}
		}
		if to-from >= uint64(maxSurveyRules-len(rules)) {
			return nil, fmt.Errorf("too many rules in %q: at most %d per survey", s, maxSurveyRules)
		}
		for r := from; ; r++ {
			rules = append(rules, r)
			if r == to {
				break
			}
		}
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("no rules in %q", s)
	}
	return rules, nil
}

// checkRuleSpace rejects rules at or above states^(states^(2*neighbors+1)),
// the number of distinct rule tables.
func checkRuleSpace(rules []uint64, states, neighbors int) error {
	hoods, size := 1, 2*neighbors+1
	for i := 0; i < size; i++ {
		hoods *= states
		if hoods > 64 {
			// states^hoods >= 2^65, beyond any uint64 rule.
			return nil
		}
	}
	space := new(big.Int).Exp(big.NewInt(int64(states)), big.NewInt(int64(hoods)), nil)
	top := slices.Max(rules)
	if new(big.Int).SetUint64(top).Cmp(space) >= 0 {
		return fmt.Errorf("%w: rule %d, %d states with radius %d have %v rules",
			automaton.ErrOutOfRange, top, states, neighbors, space)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tRULE\tSTATES\tRADIUS\tWIDTH\tGENS\tINIT")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			name, p.Rule, p.States, p.Neighbors, p.Width, p.Generations, p.Init.Mode)
	}
	return w.Flush()
}
