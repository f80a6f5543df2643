package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sdsdsdw/shunting-yard-algo/internal/domain"
)

var evaluationColumns = []string{
	"id", "expression", "tokens", "postfix", "result", "error_kind", "error", "duration_ns", "created_at",
}

type Storer struct {
	db *pgxpool.Pool
}

func NewStorer(pool *ConnectionPool) (*Storer, error) {
	return &Storer{db: pool.conn}, nil
}

func normalize(e domain.Evaluation, now time.Time) domain.Evaluation {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	return e
}

func (s *Storer) Save(ctx context.Context, evaluation domain.Evaluation) (uuid.UUID, error) {
	e := normalize(evaluation, time.Now().UTC())

	cmd := `
        INSERT INTO evaluations (id, expression, tokens, postfix, result, error_kind, error, duration_ns, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id;
    `
	var id uuid.UUID
	err := s.db.QueryRow(
		ctx,
		cmd,
		e.ID,
		e.Expression,
		e.Tokens,
		e.Postfix,
		e.Result,
		e.ErrorKind,
		e.Error,
		e.Duration.Nanoseconds(),
		e.CreatedAt,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert evaluation: %w", err)
	}

	return id, nil
}

func (s *Storer) SaveBulk(ctx context.Context, evaluations []domain.Evaluation) error {
	if len(evaluations) == 0 {
		return nil
	}

	rows := make([][]interface{}, len(evaluations))
	now := time.Now().UTC()

	for i, ev := range evaluations {
		e := normalize(ev, now)
		rows[i] = []interface{}{
			e.ID,
			e.Expression,
			e.Tokens,
			e.Postfix,
			e.Result,
			e.ErrorKind,
			e.Error,
			e.Duration.Nanoseconds(),
			e.CreatedAt,
		}
	}

	_, err := s.db.CopyFrom(
		ctx,
		pgx.Identifier{"evaluations"},
		evaluationColumns,
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to bulk insert evaluations: %w", err)
	}
	return nil
}
