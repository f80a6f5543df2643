package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sdsdsdw/shunting-yard-algo/internal/calc"
	"github.com/sdsdsdw/shunting-yard-algo/internal/exprerr"
	"github.com/sdsdsdw/shunting-yard-algo/internal/suite"
	"github.com/sdsdsdw/shunting-yard-algo/internal/token"
)

// Evaluator runs one expression through the pipeline. *calc.Calculator satisfies it.
type Evaluator interface {
	Run(expression string) (*calc.Result, error)
}

type EvaluatorFunc func(expression string) (*calc.Result, error)

func (f EvaluatorFunc) Run(expression string) (*calc.Result, error) {
	return f(expression)
}

type Runner struct {
	config    Config
	evaluator Evaluator
}

type Option func(*Runner)

func WithEvaluator(e Evaluator) Option {
	return func(r *Runner) {
		r.evaluator = e
	}
}

func New(cfg Config, opts ...Option) *Runner {
	r := &Runner{
		config:    cfg.normalize(),
		evaluator: EvaluatorFunc(calc.Run),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run evaluates every case of s and compares the outcome with its expectation.
// It stops early only when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, s *suite.Suite) (*SuiteResult, error) {
	res := &SuiteResult{
		SuiteName:   s.Name,
		Description: s.Description,
		Config:      r.config,
		StartedAt:   time.Now().UTC(),
	}

	latencies := make([]LatencyStats, 0, len(s.Cases))
	for i := range s.Cases {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("suite %q interrupted after %d cases: %w", s.Name, i, err)
		}

		cr := r.runCase(&s.Cases[i])
		if !cr.Passed {
			slog.Warn("case failed",
				"suite", s.Name,
				"case", cr.CaseID,
				"expected", describe(cr.Expected, cr.ExpectedKind),
				"actual", describe(cr.Actual, cr.ActualKind),
			)
		}
		res.Cases = append(res.Cases, cr)
		latencies = append(latencies, cr.Latency)
	}

	res.Latency = MergeLatencyStats(latencies, r.config.Percentiles...)
	res.Duration = time.Since(res.StartedAt)

	slog.Info("suite completed",
		"suite", s.Name,
		"passed", res.Passed(),
		"failed", res.Failed(),
		"duration", res.Duration,
	)
	return res, nil
}

func (r *Runner) runCase(c *suite.Case) CaseResult {
	for i := 0; i < r.config.WarmupRuns; i++ {
		_, _ = r.evaluator.Run(c.Expression)
	}

	var (
		durations []time.Duration
		last      *calc.Result
		lastErr   error
	)
	for i := 0; i < r.config.Runs; i++ {
		start := time.Now()
		last, lastErr = r.evaluator.Run(c.Expression)
		durations = append(durations, time.Since(start))
	}

	cr := CaseResult{
		CaseID:     c.ID,
		Expression: c.Expression,
		Expected:   c.Expect,
		Latency:    ComputeLatencyStats(durations, r.config.Percentiles...),
	}
	if c.Error != nil {
		cr.ExpectedKind = c.Error.String()
	}
	if last != nil {
		cr.RPN = token.Format(last.Postfix)
	}

	if lastErr != nil {
		cr.ActualKind = exprerr.KindOf(lastErr).String()
		cr.Error = lastErr.Error()
		cr.Passed = c.Error != nil && cr.ActualKind == cr.ExpectedKind
		return cr
	}

	value := last.Value
	cr.Actual = &value
	cr.Passed = c.Expect != nil && *c.Expect == value
	return cr
}

func describe(value *int64, kind string) string {
	if value != nil {
		return fmt.Sprintf("%d", *value)
	}
	if kind != "" {
		return kind
	}
	return "nothing"
}
