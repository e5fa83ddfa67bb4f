package search

import (
	"context"

	"bloghub/internal/store"
)

// Backend is the narrow contract the external full-text index must
// satisfy: per-index document upsert keyed by entity id, delete-by-id, and
// a free-text query returning a page of ids in relevance order plus the
// total hit count.
type Backend interface {
	Upsert(ctx context.Context, index string, id uint, fields map[string]string) error
	Delete(ctx context.Context, index string, id uint) error
	Query(ctx context.Context, index, expr string, page, perPage int) (ids []uint, total int64, err error)
}

// Document is implemented by entity types that mirror a field subset into
// the index. The document id is the relational id.
type Document interface {
	store.Entity
	SearchIndex() string
	SearchFields() map[string]string
}

// document constrains PT to "pointer to T that is a Document" so Find and
// Reindex can name the index without a fetched row in hand.
type document[T any] interface {
	*T
	Document
}
