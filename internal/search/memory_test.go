package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackend_QueryRanksByOccurrences(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()

	require.NoError(t, backend.Upsert(ctx, "articles", 1, map[string]string{"body": "go go go", "title": "go"}))
	require.NoError(t, backend.Upsert(ctx, "articles", 2, map[string]string{"body": "go once", "title": "other"}))
	require.NoError(t, backend.Upsert(ctx, "articles", 3, map[string]string{"body": "nothing here"}))

	ids, total, err := backend.Query(ctx, "articles", "go", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, []uint{1, 2}, ids)
}

func TestMemoryBackend_QueryPaginates(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()
	for id := uint(1); id <= 5; id++ {
		require.NoError(t, backend.Upsert(ctx, "articles", id, map[string]string{"body": "term"}))
	}

	ids, total, err := backend.Query(ctx, "articles", "term", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Equal(t, []uint{3, 4}, ids)

	ids, total, err = backend.Query(ctx, "articles", "term", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Empty(t, ids)
}

func TestMemoryBackend_DeleteRemovesDocument(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()
	require.NoError(t, backend.Upsert(ctx, "articles", 1, map[string]string{"body": "term"}))
	require.NoError(t, backend.Delete(ctx, "articles", 1))

	ids, total, err := backend.Query(ctx, "articles", "term", 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, ids)

	// Deleting an absent document is not an error.
	assert.NoError(t, backend.Delete(ctx, "articles", 42))
}

func TestMemoryBackend_IndexesAreIsolated(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()
	require.NoError(t, backend.Upsert(ctx, "articles", 1, map[string]string{"body": "term"}))
	require.NoError(t, backend.Upsert(ctx, "drafts", 2, map[string]string{"body": "term"}))

	ids, _, err := backend.Query(ctx, "articles", "term", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, ids)
}
