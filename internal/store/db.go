package store

import (
	"context"
	"sync"

	"gorm.io/gorm"
)

// ChangeSet partitions the entities touched by a single transaction. It is
// handed to commit hooks by reference: hooks see the same objects the
// transaction wrote, not copies.
type ChangeSet struct {
	Added   []Entity
	Updated []Entity
	Deleted []Entity
}

// Empty reports whether the transaction touched nothing trackable.
func (cs *ChangeSet) Empty() bool {
	return len(cs.Added) == 0 && len(cs.Updated) == 0 && len(cs.Deleted) == 0
}

// CommitHook observes transaction boundaries. BeforeCommit runs inside the
// transaction just before the durable commit; AfterCommit runs only once
// the commit has succeeded. A rolled-back transaction fires neither.
type CommitHook interface {
	BeforeCommit(cs *ChangeSet)
	AfterCommit(cs *ChangeSet)
}

// DB wraps a *gorm.DB and owns the commit hooks registered against it.
// Hooks are registered once at startup (Subscribe) rather than through
// ORM-level event dispatch.
type DB struct {
	gorm *gorm.DB

	mu    sync.RWMutex
	hooks []CommitHook
}

func New(g *gorm.DB) *DB {
	return &DB{gorm: g}
}

// Gorm exposes the underlying handle for read paths and migrations.
func (d *DB) Gorm() *gorm.DB { return d.gorm }

func (d *DB) Subscribe(h CommitHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hooks = append(d.hooks, h)
}

func (d *DB) commitHooks() []CommitHook {
	d.mu.RLock()
	defer d.mu.RUnlock()
	hooks := make([]CommitHook, len(d.hooks))
	copy(hooks, d.hooks)
	return hooks
}

// Transaction runs fn inside a database transaction, recording every
// entity fn creates, updates or soft-deletes through the Tx. If fn returns
// an error the transaction rolls back and no hook fires. Otherwise hooks
// get BeforeCommit at the commit boundary and AfterCommit once the commit
// is durable.
func (d *DB) Transaction(ctx context.Context, fn func(tx *Tx) error) error {
	cs := &ChangeSet{}
	hooks := d.commitHooks()

	err := d.gorm.WithContext(ctx).Transaction(func(g *gorm.DB) error {
		if err := fn(&Tx{db: g, changes: cs}); err != nil {
			return err
		}
		if !cs.Empty() {
			for _, h := range hooks {
				h.BeforeCommit(cs)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if !cs.Empty() {
		for _, h := range hooks {
			h.AfterCommit(cs)
		}
	}
	return nil
}

// Tx is the handle fn receives inside DB.Transaction. Every mutation made
// through it lands in the transaction's change set.
type Tx struct {
	db      *gorm.DB
	changes *ChangeSet
}

// Gorm exposes the transactional handle for entity-specific queries that
// do not need change tracking.
func (t *Tx) Gorm() *gorm.DB { return t.db }

// Create persists a new row. On failure the surrounding transaction rolls
// back, so no partial state is retained.
func (t *Tx) Create(e Entity) error {
	if err := t.db.Create(e).Error; err != nil {
		return Translate(err)
	}
	t.changes.Added = append(t.changes.Added, e)
	return nil
}

// Update applies a partial attribute set, then reloads the row so
// auto-touched columns (updated_at) are reflected on the entity.
func (t *Tx) Update(e Entity, attrs map[string]any) error {
	if err := t.db.Model(e).Updates(attrs).Error; err != nil {
		return Translate(err)
	}
	if err := t.db.First(e, e.EntityID()).Error; err != nil {
		return Translate(err)
	}
	t.changes.Updated = append(t.changes.Updated, e)
	return nil
}

// Save persists the entity's current in-memory state as a full-row update.
func (t *Tx) Save(e Entity) error {
	if err := t.db.Save(e).Error; err != nil {
		return Translate(err)
	}
	t.changes.Updated = append(t.changes.Updated, e)
	return nil
}

// SoftDelete flips the deletion flag; the row stays in place. Flipping a
// deleted row restores it, which re-enters it into the updated set so any
// derived index picks it back up.
func (t *Tx) SoftDelete(e Entity) error {
	next := !e.IsDeleted()
	if err := t.db.Model(e).Update("deleted", next).Error; err != nil {
		return Translate(err)
	}
	e.SetDeleted(next)
	if next {
		t.changes.Deleted = append(t.changes.Deleted, e)
	} else {
		t.changes.Updated = append(t.changes.Updated, e)
	}
	return nil
}
