package repository

import (
	"context"

	"bloghub/internal/models"
	"bloghub/internal/store"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	SoftDelete(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint, vis store.Visibility) (*models.Comment, error)
	PaginateByArticle(ctx context.Context, articleID uint, vis store.Visibility, order store.Order, page, pageSize int) (store.Page[models.Comment], error)
}

type commentRepository struct {
	*store.Repo[models.Comment, *models.Comment]
	db *store.DB
}

func NewCommentRepository(db *store.DB) CommentRepository {
	return &commentRepository{
		Repo: store.NewRepo[models.Comment](db),
		db:   db,
	}
}

func (r *commentRepository) PaginateByArticle(ctx context.Context, articleID uint, vis store.Visibility, order store.Order, page, pageSize int) (store.Page[models.Comment], error) {
	result := store.Page[models.Comment]{Items: []models.Comment{}, Page: page, PageSize: pageSize}

	base := vis.Scope(r.db.Gorm().WithContext(ctx).Model(&models.Comment{}).Where("article_id = ?", articleID))
	if err := base.Count(&result.Total).Error; err != nil {
		return result, store.Translate(err)
	}
	if page < 1 || pageSize < 1 {
		return result, nil
	}

	err := vis.Scope(r.db.Gorm().WithContext(ctx).Where("article_id = ?", articleID)).
		Preload("Author").
		Order(order.Clause()).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&result.Items).Error
	if err != nil {
		return result, store.Translate(err)
	}
	return result, nil
}
