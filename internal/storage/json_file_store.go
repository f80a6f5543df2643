package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/sdsdsdw/shunting-yard-algo/internal/domain"
	"github.com/sdsdsdw/shunting-yard-algo/pkg/pagination"
)

// JsonFileStore keeps evaluations as JSON lines appended to a single file.
type JsonFileStore struct {
	mu       sync.Mutex
	filePath string
}

func NewJsonFileStore(filePath string) *JsonFileStore {
	return &JsonFileStore{
		filePath: filePath,
	}
}

func (s *JsonFileStore) Save(ctx context.Context, evaluation domain.Evaluation) (uuid.UUID, error) {
	if evaluation.ID == uuid.Nil {
		evaluation.ID = uuid.New()
	}
	if err := s.append([]domain.Evaluation{evaluation}); err != nil {
		return uuid.Nil, err
	}
	slog.Debug("Saved evaluation to JSON file", "id", evaluation.ID, "path", s.filePath)
	return evaluation.ID, nil
}

func (s *JsonFileStore) SaveBulk(ctx context.Context, evaluations []domain.Evaluation) error {
	if len(evaluations) == 0 {
		return nil
	}
	batch := make([]domain.Evaluation, len(evaluations))
	for i, e := range evaluations {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		batch[i] = e
	}
	return s.append(batch)
}

func (s *JsonFileStore) append(evaluations []domain.Evaluation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, e := range evaluations {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("encode evaluation %s: %w", e.ID, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write history file: %w", err)
	}
	return nil
}

func (s *JsonFileStore) readAll() ([]domain.Evaluation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	var out []domain.Evaluation
	dec := json.NewDecoder(f)
	for dec.More() {
		var e domain.Evaluation
		if err := dec.Decode(&e); err != nil {
			return nil, fmt.Errorf("decode history file: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *JsonFileStore) List(ctx context.Context, page, size int) (*pagination.OffsetResult[domain.Evaluation], error) {
	all, err := s.readAll()
	if err != nil {
		return nil, err
	}

	total := len(all)
	items := make([]domain.Evaluation, 0, size)
	start := pagination.Offset(page, size)
	for i := start; i < start+size && i < total; i++ {
		items = append(items, all[total-1-i])
	}

	return pagination.NewOffsetResult(items, int64(total), page, size), nil
}

func (s *JsonFileStore) Get(ctx context.Context, id uuid.UUID) (*domain.Evaluation, error) {
	all, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, ErrNotFound
}
