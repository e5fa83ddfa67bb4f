package store

import (
	"time"

	"gorm.io/gorm"
)

// Model is the base embedded by every persisted entity. Rows are never
// physically removed through the public API; Deleted flips instead, and
// false means visible.
type Model struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null" json:"updated_at"`
	Deleted   bool      `gorm:"not null;default:false;index" json:"deleted"`
}

// Entity is what the store knows how to persist and track across a
// transaction. Every model embedding Model satisfies it.
type Entity interface {
	EntityID() uint
	IsDeleted() bool
	SetDeleted(deleted bool)
}

func (m *Model) EntityID() uint { return m.ID }

func (m *Model) IsDeleted() bool { return m.Deleted }

func (m *Model) SetDeleted(deleted bool) { m.Deleted = deleted }

// Visibility filters retrieval by the soft-delete flag.
type Visibility int

const (
	// Any disables soft-delete filtering.
	Any Visibility = iota
	// Visible matches rows with deleted = false.
	Visible
	// SoftDeleted matches rows with deleted = true.
	SoftDeleted
)

func (v Visibility) Scope(db *gorm.DB) *gorm.DB {
	switch v {
	case Visible:
		return db.Where("deleted = ?", false)
	case SoftDeleted:
		return db.Where("deleted = ?", true)
	default:
		return db
	}
}

// Order is the list/pagination ordering over the primary key. There is no
// secondary sort key; ties are already broken by the key itself.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

func (o Order) Clause() string {
	if o == Desc {
		return "id DESC"
	}
	return "id ASC"
}
