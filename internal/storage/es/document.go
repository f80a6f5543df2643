package es

import (
	"time"

	"github.com/google/uuid"
	"github.com/sdsdsdw/shunting-yard-algo/internal/domain"
)

// Document represents the evaluation structure stored in Elasticsearch
type Document struct {
	ID         string    `json:"id"`
	Expression string    `json:"expression"`
	Tokens     string    `json:"tokens"`
	Postfix    string    `json:"postfix"`
	Result     *int64    `json:"result,omitempty"`
	Succeeded  bool      `json:"succeeded"`
	ErrorKind  string    `json:"error_kind,omitempty"`
	Error      string    `json:"error,omitempty"`
	DurationNs int64     `json:"duration_ns"`
	CreatedAt  time.Time `json:"created_at"`
	IndexedAt  time.Time `json:"indexed_at"`
}

func toDocument(e domain.Evaluation) Document {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	return Document{
		ID:         e.ID.String(),
		Expression: e.Expression,
		Tokens:     e.Tokens,
		Postfix:    e.Postfix,
		Result:     e.Result,
		Succeeded:  e.Succeeded(),
		ErrorKind:  e.ErrorKind,
		Error:      e.Error,
		DurationNs: e.Duration.Nanoseconds(),
		CreatedAt:  e.CreatedAt,
		IndexedAt:  time.Now().UTC(),
	}
}

func (d Document) toEvaluation() (domain.Evaluation, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.Evaluation{}, err
	}
	return domain.Evaluation{
		ID:         id,
		Expression: d.Expression,
		Tokens:     d.Tokens,
		Postfix:    d.Postfix,
		Result:     d.Result,
		ErrorKind:  d.ErrorKind,
		Error:      d.Error,
		Duration:   time.Duration(d.DurationNs),
		CreatedAt:  d.CreatedAt,
	}, nil
}
