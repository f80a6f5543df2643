package pg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sdsdsdw/shunting-yard-algo/internal/domain"
	"github.com/sdsdsdw/shunting-yard-algo/internal/storage"
	"github.com/sdsdsdw/shunting-yard-algo/pkg/pagination"
)

const selectEvaluation = `
	SELECT id, expression, tokens, postfix, result, error_kind, error, duration_ns, created_at
	FROM evaluations
`

type Reader struct {
	db *pgxpool.Pool
}

func NewReader(pool *ConnectionPool) (*Reader, error) {
	return &Reader{db: pool.conn}, nil
}

func (r *Reader) List(ctx context.Context, page, size int) (*pagination.OffsetResult[domain.Evaluation], error) {
	slog.Debug("Listing pg evaluations", "page", page, "size", size)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM evaluations`).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count evaluations: %w", err)
	}

	rows, err := r.db.Query(ctx,
		selectEvaluation+` ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
		size, pagination.Offset(page, size),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluations: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Evaluation, 0, size)
	for rows.Next() {
		e, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate evaluations: %w", err)
	}

	return pagination.NewOffsetResult(items, total, page, size), nil
}

func (r *Reader) Get(ctx context.Context, id uuid.UUID) (*domain.Evaluation, error) {
	row := r.db.QueryRow(ctx, selectEvaluation+` WHERE id = $1`, id)

	e, err := scanEvaluation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func scanEvaluation(row pgx.Row) (*domain.Evaluation, error) {
	var e domain.Evaluation
	var durationNs int64

	if err := row.Scan(
		&e.ID,
		&e.Expression,
		&e.Tokens,
		&e.Postfix,
		&e.Result,
		&e.ErrorKind,
		&e.Error,
		&durationNs,
		&e.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to scan evaluation: %w", err)
	}

	e.Duration = time.Duration(durationNs)
	return &e, nil
}
