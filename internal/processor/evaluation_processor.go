package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sdsdsdw/shunting-yard-algo/internal/calc"
	"github.com/sdsdsdw/shunting-yard-algo/internal/domain"
	"github.com/sdsdsdw/shunting-yard-algo/internal/exprerr"
	"github.com/sdsdsdw/shunting-yard-algo/internal/storage"
)

const defaultBatchSize = 500

// BulkOptions defines bulk processing configuration
type BulkOptions struct {
	Enabled bool
	Size    int
}

// Config defines configuration for the processor
type Config struct {
	Name string
	Bulk *BulkOptions
}

// EvaluationProcessor evaluates expressions and records every run in a history store.
type EvaluationProcessor struct {
	storer storage.Storer
	config *Config
}

type Option func(p *EvaluationProcessor)

// WithBulk makes ProcessBatch save records in batches of the given size
func WithBulk(size int) Option {
	return func(p *EvaluationProcessor) {
		if p.config.Bulk == nil {
			p.config.Bulk = &BulkOptions{}
		}
		p.config.Bulk.Enabled = true
		p.config.Bulk.Size = size
	}
}

// WithConfig sets custom processor configuration
func WithConfig(config *Config) Option {
	return func(p *EvaluationProcessor) {
		p.config = config
	}
}

func New(storer storage.Storer, opts ...Option) *EvaluationProcessor {
	p := &EvaluationProcessor{
		storer: storer,
		config: &Config{
			Name: "evaluation-processor",
			Bulk: &BulkOptions{
				Enabled: false,
				Size:    defaultBatchSize,
			},
		},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Process evaluates expr and saves the outcome. Expression failures are
// recorded too; the returned error is then the *exprerr.Error itself.
// A storage failure is returned wrapped and takes precedence.
func (p *EvaluationProcessor) Process(ctx context.Context, expr string) (*domain.Evaluation, error) {
	evaluation, exprErr := evaluate(expr)

	id, err := p.storer.Save(ctx, evaluation)
	if err != nil {
		slog.Error("Error saving evaluation",
			"error", err,
			"processor", p.config.Name,
			"expression", expr,
		)
		return &evaluation, fmt.Errorf("failed to save evaluation: %w", err)
	}
	evaluation.ID = id

	slog.Debug("Evaluation saved",
		"id", id,
		"expression", expr,
		"error_kind", evaluation.ErrorKind,
		"processor", p.config.Name,
	)

	return &evaluation, exprErr
}

// ProcessBatch evaluates every expression and saves the records, in bulk when
// enabled. Expression failures end up in the records, not in the returned error.
func (p *EvaluationProcessor) ProcessBatch(ctx context.Context, exprs []string) ([]domain.Evaluation, error) {
	start := time.Now()
	evaluations := make([]domain.Evaluation, 0, len(exprs))
	for _, expr := range exprs {
		evaluation, _ := evaluate(expr)
		evaluations = append(evaluations, evaluation)
	}

	var err error
	if p.config.Bulk.Enabled {
		err = p.saveBatches(ctx, evaluations)
	} else {
		err = p.saveEach(ctx, evaluations)
	}

	slog.Info("Batch processing completed",
		"processor", p.config.Name,
		"count", len(evaluations),
		"bulk_enabled", p.config.Bulk.Enabled,
		"duration", time.Since(start),
		"error", err,
	)

	return evaluations, err
}

func (p *EvaluationProcessor) saveEach(ctx context.Context, evaluations []domain.Evaluation) error {
	var errs []error
	for i := range evaluations {
		if err := ctx.Err(); err != nil {
			return err
		}
		id, err := p.storer.Save(ctx, evaluations[i])
		if err != nil {
			slog.Error("Error saving evaluation", "error", err, "processor", p.config.Name)
			errs = append(errs, err)
			continue
		}
		evaluations[i].ID = id
	}
	return errors.Join(errs...)
}

func (p *EvaluationProcessor) saveBatches(ctx context.Context, evaluations []domain.Evaluation) error {
	size := p.config.Bulk.Size
	if size <= 0 {
		size = defaultBatchSize
	}

	batchCount := 0
	for start := 0; start < len(evaluations); start += size {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(start+size, len(evaluations))
		if err := p.storer.SaveBulk(ctx, evaluations[start:end]); err != nil {
			slog.Error("Error saving bulk evaluations",
				"error", err,
				"count", end-start,
				"processor", p.config.Name,
			)
			return fmt.Errorf("failed to save batch %d: %w", batchCount+1, err)
		}
		batchCount++
		slog.Debug("Bulk evaluations saved", "count", end-start, "batch", batchCount, "processor", p.config.Name)
	}
	return nil
}

func evaluate(expr string) (domain.Evaluation, error) {
	start := time.Now()
	r, err := calc.Run(expr)
	evaluation := domain.NewEvaluation(r, err, time.Since(start))

	var exprErr *exprerr.Error
	if err != nil && !errors.As(err, &exprErr) {
		slog.Warn("Unexpected evaluation error", "error", err, "expression", expr)
	}
	return evaluation, err
}
