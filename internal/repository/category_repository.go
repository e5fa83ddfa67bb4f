package repository

import (
	"context"

	"bloghub/internal/models"
	"bloghub/internal/store"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category, attrs map[string]any) error
	SoftDelete(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uint, vis store.Visibility) (*models.Category, error)
	GetByName(ctx context.Context, authorID uint, name string, vis store.Visibility) (*models.Category, error)
	List(ctx context.Context, vis store.Visibility, order store.Order) ([]models.Category, error)
}

type categoryRepository struct {
	*store.Repo[models.Category, *models.Category]
	db *store.DB
}

func NewCategoryRepository(db *store.DB) CategoryRepository {
	return &categoryRepository{
		Repo: store.NewRepo[models.Category](db),
		db:   db,
	}
}

func (r *categoryRepository) GetByName(ctx context.Context, authorID uint, name string, vis store.Visibility) (*models.Category, error) {
	var category models.Category
	err := vis.Scope(r.db.Gorm().WithContext(ctx)).
		Where("author_id = ? AND name = ?", authorID, name).
		First(&category).Error
	if err != nil {
		return nil, store.Translate(err)
	}
	return &category, nil
}
