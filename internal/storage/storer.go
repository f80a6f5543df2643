package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/sdsdsdw/shunting-yard-algo/internal/domain"
)

type Storer interface {
	Save(ctx context.Context, evaluation domain.Evaluation) (uuid.UUID, error)
	SaveBulk(ctx context.Context, evaluations []domain.Evaluation) error
}

type Type string

const (
	ES       Type = "es"
	PG       Type = "pg"
	InMem    Type = "in_mem"
	JsonFile Type = "json_file"
)

// Types lists every supported storage type.
func Types() []Type {
	return []Type{InMem, JsonFile, PG, ES}
}

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
	ErrNotFound          StorerError = "evaluation not found"
)

func (e StorerError) Error() string {
	return string(e)
}
