package repository

import (
	"context"

	"gorm.io/gorm"

	"bloghub/internal/models"
	"bloghub/internal/store"
)

type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article, attrs map[string]any) error
	SoftDelete(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id uint, vis store.Visibility) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string, vis store.Visibility) (*models.Article, error)
	GetByTitle(ctx context.Context, title string, vis store.Visibility) (*models.Article, error)
	Paginate(ctx context.Context, vis store.Visibility, order store.Order, page, pageSize int) (store.Page[models.Article], error)
	PaginateByTag(ctx context.Context, tag string, vis store.Visibility, order store.Order, page, pageSize int) (store.Page[models.Article], error)
	PaginateByCategory(ctx context.Context, categoryID uint, vis store.Visibility, order store.Order, page, pageSize int) (store.Page[models.Article], error)
	IncrementViews(ctx context.Context, article *models.Article, delta int) error
	ListTags(ctx context.Context, vis store.Visibility) ([]string, error)
}

type articleRepository struct {
	*store.Repo[models.Article, *models.Article]
	db *store.DB
}

func NewArticleRepository(db *store.DB) ArticleRepository {
	return &articleRepository{
		Repo: store.NewRepo[models.Article](db),
		db:   db,
	}
}

func (r *articleRepository) GetBySlug(ctx context.Context, slug string, vis store.Visibility) (*models.Article, error) {
	return r.getBy(ctx, vis, "slug = ?", slug)
}

func (r *articleRepository) GetByTitle(ctx context.Context, title string, vis store.Visibility) (*models.Article, error) {
	return r.getBy(ctx, vis, "title = ?", title)
}

func (r *articleRepository) getBy(ctx context.Context, vis store.Visibility, query string, args ...any) (*models.Article, error) {
	var article models.Article
	err := vis.Scope(r.db.Gorm().WithContext(ctx)).
		Where(query, args...).
		First(&article).Error
	if err != nil {
		return nil, store.Translate(err)
	}
	return &article, nil
}

// PaginateByTag pattern-matches against the denormalized tag string.
func (r *articleRepository) PaginateByTag(ctx context.Context, tag string, vis store.Visibility, order store.Order, page, pageSize int) (store.Page[models.Article], error) {
	return r.paginateWhere(ctx, vis, order, page, pageSize, "tags LIKE ?", "%"+tag+"%")
}

func (r *articleRepository) PaginateByCategory(ctx context.Context, categoryID uint, vis store.Visibility, order store.Order, page, pageSize int) (store.Page[models.Article], error) {
	return r.paginateWhere(ctx, vis, order, page, pageSize, "category_id = ?", categoryID)
}

func (r *articleRepository) paginateWhere(ctx context.Context, vis store.Visibility, order store.Order, page, pageSize int, query string, args ...any) (store.Page[models.Article], error) {
	result := store.Page[models.Article]{Items: []models.Article{}, Page: page, PageSize: pageSize}

	base := vis.Scope(r.db.Gorm().WithContext(ctx).Model(&models.Article{}).Where(query, args...))
	if err := base.Count(&result.Total).Error; err != nil {
		return result, store.Translate(err)
	}
	if page < 1 || pageSize < 1 {
		return result, nil
	}

	err := vis.Scope(r.db.Gorm().WithContext(ctx).Where(query, args...)).
		Order(order.Clause()).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&result.Items).Error
	if err != nil {
		return result, store.Translate(err)
	}
	return result, nil
}

// IncrementViews bumps the view counter atomically in the database. It
// goes through the unit of work so the index sees the article as updated.
func (r *articleRepository) IncrementViews(ctx context.Context, article *models.Article, delta int) error {
	return r.db.Transaction(ctx, func(tx *store.Tx) error {
		return tx.Update(article, map[string]any{
			"view_count": gorm.Expr("view_count + ?", delta),
		})
	})
}

// ListTags returns the raw comma-joined tag strings of matching articles
// in primary-key order.
func (r *articleRepository) ListTags(ctx context.Context, vis store.Visibility) ([]string, error) {
	var tags []string
	err := vis.Scope(r.db.Gorm().WithContext(ctx).Model(&models.Article{})).
		Order("id ASC").
		Pluck("tags", &tags).Error
	if err != nil {
		return nil, store.Translate(err)
	}
	return tags, nil
}
