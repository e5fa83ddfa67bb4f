package search

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"gorm.io/gorm"

	"bloghub/internal/store"
)

// Synchronizer keeps the external index consistent with the relational
// store. It registers once as a commit hook: at the commit boundary it
// snapshots the searchable subset of the transaction's change set, and
// after the durable commit it applies the equivalent index mutations.
// Index failures never reach the write path; the store stays the source of
// truth and the index can always be rebuilt with Reindex.
type Synchronizer struct {
	db      *store.DB
	backend Backend
	log     *slog.Logger

	mu      sync.Mutex
	pending map[*store.ChangeSet]batch
}

type batch struct {
	upserts []Document
	deletes []Document
}

// NewSynchronizer subscribes the synchronizer to db. A nil backend makes
// every operation a no-op and every search return no results.
func NewSynchronizer(db *store.DB, backend Backend, logger *slog.Logger) *Synchronizer {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Synchronizer{
		db:      db,
		backend: backend,
		log:     logger,
		pending: make(map[*store.ChangeSet]batch),
	}
	db.Subscribe(s)
	return s
}

// Enabled reports whether an index backend is configured.
func (s *Synchronizer) Enabled() bool { return s.backend != nil }

// BeforeCommit captures the documents of the transaction about to commit.
// Object references are kept, not copies: by the time AfterCommit runs the
// relational state is durable and these are what was written.
func (s *Synchronizer) BeforeCommit(cs *store.ChangeSet) {
	if s.backend == nil {
		return
	}
	var b batch
	for _, e := range cs.Added {
		if d, ok := e.(Document); ok {
			b.upserts = append(b.upserts, d)
		}
	}
	for _, e := range cs.Updated {
		if d, ok := e.(Document); ok {
			b.upserts = append(b.upserts, d)
		}
	}
	for _, e := range cs.Deleted {
		if d, ok := e.(Document); ok {
			b.deletes = append(b.deletes, d)
		}
	}
	if len(b.upserts) == 0 && len(b.deletes) == 0 {
		return
	}
	s.mu.Lock()
	s.pending[cs] = b
	s.mu.Unlock()
}

// AfterCommit pushes the captured mutations to the backend, best-effort.
func (s *Synchronizer) AfterCommit(cs *store.ChangeSet) {
	s.mu.Lock()
	b, ok := s.pending[cs]
	delete(s.pending, cs)
	s.mu.Unlock()
	if !ok || s.backend == nil {
		return
	}

	ctx := context.Background()
	for _, d := range b.upserts {
		if err := s.backend.Upsert(ctx, d.SearchIndex(), d.EntityID(), d.SearchFields()); err != nil {
			s.log.Warn("search index upsert failed", "index", d.SearchIndex(), "id", d.EntityID(), "error", err)
		}
	}
	for _, d := range b.deletes {
		if err := s.backend.Delete(ctx, d.SearchIndex(), d.EntityID()); err != nil {
			s.log.Warn("search index delete failed", "index", d.SearchIndex(), "id", d.EntityID(), "error", err)
		}
	}
}

// Find runs a free-text query against T's index and hydrates the hits from
// the relational store, preserving the backend's relevance order. Backend
// unavailability degrades silently to an empty result.
func Find[T any, PT document[T]](ctx context.Context, s *Synchronizer, expr string, page, perPage int) ([]T, int64, error) {
	if s.backend == nil {
		return nil, 0, nil
	}
	index := PT(new(T)).SearchIndex()

	ids, total, err := s.backend.Query(ctx, index, expr, page, perPage)
	if err != nil {
		s.log.Warn("search query failed", "index", index, "error", err)
		return nil, 0, nil
	}
	if total == 0 || len(ids) == 0 {
		return nil, total, nil
	}

	var rows []T
	err = s.db.Gorm().WithContext(ctx).
		Where("id IN ?", ids).
		Where("deleted = ?", false).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	// The relational fetch does not preserve order; rank rows back into the
	// backend's relevance order.
	rank := make(map[uint]int, len(ids))
	for i, id := range ids {
		rank[id] = i
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rank[PT(&rows[i]).EntityID()] < rank[PT(&rows[j]).EntityID()]
	})
	return rows, total, nil
}

// Reindex re-pushes the full corpus of T, soft-deleted rows included, so a
// diverged or lost index converges back to the store. Soft-deleted rows
// stay invisible to Find, which filters on the flag during hydration.
func Reindex[T any, PT document[T]](ctx context.Context, s *Synchronizer) error {
	if s.backend == nil {
		return nil
	}
	index := PT(new(T)).SearchIndex()

	var rows []T
	result := s.db.Gorm().WithContext(ctx).FindInBatches(&rows, 200, func(_ *gorm.DB, _ int) error {
		for i := range rows {
			d := PT(&rows[i])
			if err := s.backend.Upsert(ctx, index, d.EntityID(), d.SearchFields()); err != nil {
				return err
			}
		}
		return nil
	})
	return result.Error
}
