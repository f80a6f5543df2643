package es

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/google/uuid"
	"github.com/sdsdsdw/shunting-yard-algo/internal/domain"
	"github.com/sdsdsdw/shunting-yard-algo/internal/storage"
	"github.com/sdsdsdw/shunting-yard-algo/pkg/pagination"
)

type Reader struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewReader(config ClientConfig) (*Reader, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	return &Reader{
		client:    client,
		indexName: config.index(),
	}, nil
}

func (r *Reader) List(ctx context.Context, page, size int) (*pagination.OffsetResult[domain.Evaluation], error) {
	sortOrderDesc := sortorder.Desc

	res, err := r.client.Search().
		Index(r.indexName).
		Query(&types.Query{
			MatchAll: &types.MatchAllQuery{},
		}).
		From(pagination.Offset(page, size)).
		Size(size).
		Sort(
			&types.SortOptions{
				SortOptions: map[string]types.FieldSort{
					"created_at": {Order: &sortOrderDesc},
				},
			},
			&types.SortOptions{
				SortOptions: map[string]types.FieldSort{
					"id": {Order: &sortOrderDesc},
				},
			},
		).
		Do(ctx)
	if err != nil {
		slog.Error("Elasticsearch history query failed", "error", err, "page", page, "size", size)
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}

	items := make([]domain.Evaluation, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc Document
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document: %w", err)
		}
		e, err := doc.toEvaluation()
		if err != nil {
			return nil, fmt.Errorf("failed to map document %q: %w", doc.ID, err)
		}
		items = append(items, e)
	}

	var total int64
	if res.Hits.Total != nil {
		total = res.Hits.Total.Value
	}

	return pagination.NewOffsetResult(items, total, page, size), nil
}

func (r *Reader) Get(ctx context.Context, id uuid.UUID) (*domain.Evaluation, error) {
	res, err := r.client.Get(r.indexName, id.String()).Do(ctx)
	if err != nil {
		var esErr *types.ElasticsearchError
		if errors.As(err, &esErr) && esErr.Status == http.StatusNotFound {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}
	if !res.Found {
		return nil, storage.ErrNotFound
	}

	var doc Document
	if err := json.Unmarshal(res.Source_, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	e, err := doc.toEvaluation()
	if err != nil {
		return nil, fmt.Errorf("failed to map document %q: %w", doc.ID, err)
	}
	return &e, nil
}
