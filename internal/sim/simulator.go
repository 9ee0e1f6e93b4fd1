package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/wolfca/internal/automaton"
)

type Simulator struct {
	table     *automaton.Table
	metrics   []Metric
	observers []Observer
}

func New(table *automaton.Table) *Simulator {
	return &Simulator{
		table:     table,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Table() *automaton.Table { return s.table }

// Run records cfg.Generations generations starting with initial. A failed
// step aborts the run and no partial history is returned.
func (s *Simulator) Run(ctx context.Context, initial automaton.Generation, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	eng, err := automaton.NewEngine(initial, s.table)
	if err != nil {
		return nil, err
	}

	result := &Result{
		History: make([]automaton.Generation, 0, cfg.Generations),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	g := initial.Clone()
	for step := 0; ; step++ {
		s.observe(g, step)
		result.History = append(result.History, g)
		if len(result.History) == cfg.Generations {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		g, err = eng.Next()
		if err != nil {
			return nil, SimError{Step: step + 1, Wrapped: err}
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) observe(g automaton.Generation, step int) {
	for _, m := range s.metrics {
		m.Observe(g, step)
	}
	for _, obs := range s.observers {
		obs.OnStep(g, step)
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if s.table == nil {
		return fmt.Errorf("simulator has no rule table")
	}
	if cfg.Generations <= 0 {
		return fmt.Errorf("generations must be positive, got %d", cfg.Generations)
	}
	return nil
}

// RunWithCallback streams generations to callback without keeping history.
// Streaming stops when callback returns false, after cfg.Generations rows, or
// when ctx is done. A zero Generations streams until one of the others.
func (s *Simulator) RunWithCallback(ctx context.Context, initial automaton.Generation, cfg Config, callback func(automaton.Generation, int) bool) error {
	if s.table == nil {
		return fmt.Errorf("simulator has no rule table")
	}
	if cfg.Generations < 0 {
		return fmt.Errorf("generations must not be negative, got %d", cfg.Generations)
	}

	eng, err := automaton.NewEngine(initial, s.table)
	if err != nil {
		return err
	}

	if !callback(initial.Clone(), 0) || cfg.Generations == 1 {
		return nil
	}

	step := 1
	for g, err := range eng.All() {
		if err != nil {
			return SimError{Step: step, Wrapped: err}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(g, step) {
			return nil
		}
		step++
		if cfg.Generations > 0 && step >= cfg.Generations {
			return nil
		}
	}
	return nil
}
