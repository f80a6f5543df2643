package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/sdsdsdw/shunting-yard-algo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJsonFileStore_SaveListGet(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.jsonl")
	s := NewJsonFileStore(path)

	result := int64(14)
	id, err := s.Save(ctx, domain.Evaluation{Expression: "(3 + 4) * 2", Result: &result})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	require.NoError(t, s.SaveBulk(ctx, []domain.Evaluation{
		{Expression: "1"},
		{Expression: "10 / 0", ErrorKind: "division_by_zero"},
	}))

	res, err := s.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Total)
	require.Len(t, res.Items, 3)
	assert.Equal(t, "10 / 0", res.Items[0].Expression)
	assert.Equal(t, "(3 + 4) * 2", res.Items[2].Expression)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got.Result)
	assert.Equal(t, int64(14), *got.Result)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"expression":"(3 + 4) * 2"`)
}

func TestJsonFileStore_MissingFile(t *testing.T) {
	ctx := context.Background()
	s := NewJsonFileStore(filepath.Join(t.TempDir(), "none.jsonl"))

	res, err := s.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Zero(t, res.Total)

	_, err = s.Get(ctx, uuid.New())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestJsonFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{not json\n"), 0644))

	_, err := NewJsonFileStore(path).List(context.Background(), 1, 10)
	assert.Error(t, err)
}
