package es

import (
	"context"
	"fmt"
)

// Store indexes and reads evaluations in one Elasticsearch index.
type Store struct {
	*Storer
	*Reader
}

func NewStore(ctx context.Context, config ClientConfig) (*Store, error) {
	storer, err := NewStorer(ctx, config)
	if err != nil {
		return nil, err
	}
	reader, err := NewReader(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader: %w", err)
	}
	return &Store{Storer: storer, Reader: reader}, nil
}

// Healthy implements server.HealthChecker.
func (s *Store) Healthy(ctx context.Context) bool {
	ok, err := s.Storer.client.Ping().Do(ctx)
	return err == nil && ok
}
