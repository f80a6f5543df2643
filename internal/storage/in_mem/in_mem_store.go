package in_mem

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/sdsdsdw/shunting-yard-algo/internal/domain"
	"github.com/sdsdsdw/shunting-yard-algo/internal/storage"
	"github.com/sdsdsdw/shunting-yard-algo/pkg/pagination"
)

type InMemStore struct {
	storageLock sync.RWMutex
	storage     map[uuid.UUID]domain.Evaluation
	order       []uuid.UUID
}

func NewInMemStore() *InMemStore {
	return &InMemStore{
		storage: make(map[uuid.UUID]domain.Evaluation),
	}
}

func (s *InMemStore) Save(ctx context.Context, evaluation domain.Evaluation) (uuid.UUID, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	id := s.put(evaluation)
	slog.Debug("Saved evaluation to in-memory storage", "id", id)
	return id, nil
}

func (s *InMemStore) SaveBulk(ctx context.Context, evaluations []domain.Evaluation) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	for _, e := range evaluations {
		s.put(e)
	}
	slog.Debug("Saved evaluations to in-memory storage", "count", len(evaluations))
	return nil
}

// put must be called with the write lock held.
func (s *InMemStore) put(e domain.Evaluation) uuid.UUID {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if _, exists := s.storage[e.ID]; !exists {
		s.order = append(s.order, e.ID)
	}
	s.storage[e.ID] = e
	return e.ID
}

func (s *InMemStore) List(ctx context.Context, page, size int) (*pagination.OffsetResult[domain.Evaluation], error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	total := len(s.order)
	items := make([]domain.Evaluation, 0, size)

	start := pagination.Offset(page, size)
	for i := start; i < start+size && i < total; i++ {
		id := s.order[total-1-i]
		items = append(items, s.storage[id])
	}

	return pagination.NewOffsetResult(items, int64(total), page, size), nil
}

func (s *InMemStore) Get(ctx context.Context, id uuid.UUID) (*domain.Evaluation, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	e, ok := s.storage[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &e, nil
}
