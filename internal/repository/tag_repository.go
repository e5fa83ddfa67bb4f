package repository

import (
	"context"

	"bloghub/internal/models"
	"bloghub/internal/store"
)

type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	SoftDelete(ctx context.Context, tag *models.Tag) error
	GetByID(ctx context.Context, id uint, vis store.Visibility) (*models.Tag, error)
	GetByName(ctx context.Context, authorID uint, name string, vis store.Visibility) (*models.Tag, error)
	ListByAuthor(ctx context.Context, authorID uint, vis store.Visibility, order store.Order) ([]models.Tag, error)
}

type tagRepository struct {
	*store.Repo[models.Tag, *models.Tag]
	db *store.DB
}

func NewTagRepository(db *store.DB) TagRepository {
	return &tagRepository{
		Repo: store.NewRepo[models.Tag](db),
		db:   db,
	}
}

func (r *tagRepository) GetByName(ctx context.Context, authorID uint, name string, vis store.Visibility) (*models.Tag, error) {
	var tag models.Tag
	err := vis.Scope(r.db.Gorm().WithContext(ctx)).
		Where("author_id = ? AND name = ?", authorID, name).
		First(&tag).Error
	if err != nil {
		return nil, store.Translate(err)
	}
	return &tag, nil
}

func (r *tagRepository) ListByAuthor(ctx context.Context, authorID uint, vis store.Visibility, order store.Order) ([]models.Tag, error) {
	var tags []models.Tag
	err := vis.Scope(r.db.Gorm().WithContext(ctx)).
		Where("author_id = ?", authorID).
		Order(order.Clause()).
		Find(&tags).Error
	if err != nil {
		return nil, store.Translate(err)
	}
	return tags, nil
}
