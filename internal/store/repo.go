package store

import "context"

// entityPtr constrains PT to "pointer to T that satisfies Entity", which
// lets the repository allocate fresh rows for point lookups.
type entityPtr[T any] interface {
	*T
	Entity
}

// Repo is the generic soft-delete-aware repository shared by every entity
// type. Entity-specific query helpers wrap it rather than inherit from it.
type Repo[T any, PT entityPtr[T]] struct {
	db *DB
}

func NewRepo[T any, PT entityPtr[T]](db *DB) *Repo[T, PT] {
	return &Repo[T, PT]{db: db}
}

// DB returns the store handle the repository runs on.
func (r *Repo[T, PT]) DB() *DB { return r.db }

// Create persists e inside its own transaction. Constraint violations
// surface as ErrDuplicate with the transaction rolled back.
func (r *Repo[T, PT]) Create(ctx context.Context, e PT) error {
	return r.db.Transaction(ctx, func(tx *Tx) error {
		return tx.Create(e)
	})
}

// Update applies attrs to e and re-persists it.
func (r *Repo[T, PT]) Update(ctx context.Context, e PT, attrs map[string]any) error {
	return r.db.Transaction(ctx, func(tx *Tx) error {
		return tx.Update(e, attrs)
	})
}

// SoftDelete flips e's deletion flag.
func (r *Repo[T, PT]) SoftDelete(ctx context.Context, e PT) error {
	return r.db.Transaction(ctx, func(tx *Tx) error {
		return tx.SoftDelete(e)
	})
}

// GetByID is a point lookup honoring the visibility filter.
func (r *Repo[T, PT]) GetByID(ctx context.Context, id uint, vis Visibility) (PT, error) {
	e := PT(new(T))
	err := vis.Scope(r.db.gorm.WithContext(ctx)).First(e, id).Error
	if err != nil {
		return nil, Translate(err)
	}
	return e, nil
}

// List returns every matching row ordered by primary key.
func (r *Repo[T, PT]) List(ctx context.Context, vis Visibility, order Order) ([]T, error) {
	var items []T
	err := vis.Scope(r.db.gorm.WithContext(ctx)).Order(order.Clause()).Find(&items).Error
	if err != nil {
		return nil, Translate(err)
	}
	return items, nil
}

// Paginate bounds List to one page. Pages below 1 or beyond the last page
// yield an empty item list with Total still populated.
func (r *Repo[T, PT]) Paginate(ctx context.Context, vis Visibility, order Order, page, pageSize int) (Page[T], error) {
	result := Page[T]{Items: []T{}, Page: page, PageSize: pageSize}

	if err := vis.Scope(r.db.gorm.WithContext(ctx).Model(PT(new(T)))).Count(&result.Total).Error; err != nil {
		return result, Translate(err)
	}
	if page < 1 || pageSize < 1 {
		return result, nil
	}

	err := vis.Scope(r.db.gorm.WithContext(ctx)).
		Order(order.Clause()).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&result.Items).Error
	if err != nil {
		return result, Translate(err)
	}
	return result, nil
}
