package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/sdsdsdw/shunting-yard-algo/internal/domain"
	"github.com/sdsdsdw/shunting-yard-algo/pkg/pagination"
)

type Reader interface {
	// List returns evaluations newest first. page is 1 based.
	List(ctx context.Context, page, size int) (*pagination.OffsetResult[domain.Evaluation], error)
	// Get returns ErrNotFound when no evaluation has the given id.
	Get(ctx context.Context, id uuid.UUID) (*domain.Evaluation, error)
}

// Store is a history backend that can both record and read evaluations.
type Store interface {
	Storer
	Reader
}
