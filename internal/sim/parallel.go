package sim

import (
	"context"
	"fmt"
	"math/big"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/wolfca/internal/automaton"
)

// MetricFactory creates fresh metric instances for one run.
type MetricFactory func() []Metric

// SurveyResult summarizes one rule of a survey.
type SurveyResult struct {
	Rule    uint64
	Final   automaton.Generation
	Metrics map[string]float64
}

// Survey runs every rule from the same initial generation concurrently. Each
// worker derives its own table and engine; results come back in rule order.
func Survey(ctx context.Context, rules []uint64, states, neighbors int, initial automaton.Generation, cfg Config, metrics MetricFactory, workers int) ([]SurveyResult, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]SurveyResult, len(rules))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, rule := range rules {
		g.Go(func() error {
			table, err := automaton.DeriveRule(new(big.Int).SetUint64(rule), states, neighbors)
			if err != nil {
				return fmt.Errorf("rule %d: %w", rule, err)
			}

			s := New(table)
			if metrics != nil {
				for _, m := range metrics() {
					s.AddMetric(m)
				}
			}

			res, err := s.Run(ctx, initial, cfg)
			if err != nil {
				return fmt.Errorf("rule %d: %w", rule, err)
			}

			results[i] = SurveyResult{
				Rule:    rule,
				Final:   res.History[len(res.History)-1],
				Metrics: res.Metrics,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
