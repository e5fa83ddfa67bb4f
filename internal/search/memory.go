package search

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryBackend is an in-process index for tests and local development.
// Relevance order is deterministic: documents rank by total occurrence
// count of the query across their fields, descending, ties broken by
// ascending id.
type MemoryBackend struct {
	mu      sync.RWMutex
	indexes map[string]map[uint]map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{indexes: make(map[string]map[uint]map[string]string)}
}

func (m *MemoryBackend) Upsert(_ context.Context, index string, id uint, fields map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	docs, ok := m.indexes[index]
	if !ok {
		docs = make(map[uint]map[string]string)
		m.indexes[index] = docs
	}
	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	docs[id] = copied
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, index string, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.indexes[index], id)
	return nil
}

func (m *MemoryBackend) Query(_ context.Context, index, expr string, page, perPage int) ([]uint, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	type hit struct {
		id    uint
		score int
	}
	needle := strings.ToLower(expr)
	var hits []hit
	for id, fields := range m.indexes[index] {
		score := 0
		for _, value := range fields {
			score += strings.Count(strings.ToLower(value), needle)
		}
		if score > 0 {
			hits = append(hits, hit{id: id, score: score})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].id < hits[j].id
	})

	total := int64(len(hits))
	if page < 1 || perPage < 1 {
		return nil, total, nil
	}
	from := (page - 1) * perPage
	if from >= len(hits) {
		return nil, total, nil
	}
	to := from + perPage
	if to > len(hits) {
		to = len(hits)
	}
	ids := make([]uint, 0, to-from)
	for _, h := range hits[from:to] {
		ids = append(ids, h.id)
	}
	return ids, total, nil
}

// Clear drops every document of an index. Used to simulate a corrupted or
// lost index ahead of a reindex.
func (m *MemoryBackend) Clear(index string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.indexes, index)
}

// Len reports the number of documents currently held for an index.
func (m *MemoryBackend) Len(index string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.indexes[index])
}
