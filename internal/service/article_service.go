package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/google/uuid"

	"bloghub/internal/cache"
	"bloghub/internal/models"
	"bloghub/internal/repository"
	"bloghub/internal/store"
)

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrTitleInUse       = errors.New("title already in use")
)

// slugAttempts bounds the collision retry loop. Eight decimal digits give
// 10^8 slugs, so consecutive collisions are vanishingly rare.
const slugAttempts = 5

// ArticleSearcher abstracts the full-text query and reindex operations so
// the service can be tested without a live index.
type ArticleSearcher interface {
	Search(ctx context.Context, expression string, page, perPage int) ([]models.Article, int64, error)
	Reindex(ctx context.Context) error
}

type ArticleInput struct {
	Title      string
	Summary    string
	Body       string
	Tags       []string
	Status     models.ArticleStatus
	CategoryID uint
}

type ArticleService interface {
	Create(ctx context.Context, author *models.User, input ArticleInput) (*models.Article, error)
	Update(ctx context.Context, actor *models.User, slug string, input ArticleInput) (*models.Article, error)
	Delete(ctx context.Context, actor *models.User, slug string) error
	GetBySlug(ctx context.Context, slug string, countView bool) (*models.Article, error)
	List(ctx context.Context, order store.Order, page, pageSize int) (store.Page[models.Article], error)
	ListByTag(ctx context.Context, tag string, order store.Order, page, pageSize int) (store.Page[models.Article], error)
	ListByCategory(ctx context.Context, categoryID uint, order store.Order, page, pageSize int) (store.Page[models.Article], error)
	Search(ctx context.Context, expression string, page, pageSize int) (store.Page[models.Article], error)
	Reindex(ctx context.Context) error
}

type articleService struct {
	articles repository.ArticleRepository
	views    *cache.ViewCounter
	searcher ArticleSearcher
}

func NewArticleService(articles repository.ArticleRepository, views *cache.ViewCounter, searcher ArticleSearcher) ArticleService {
	return &articleService{articles: articles, views: views, searcher: searcher}
}

func (s *articleService) Create(ctx context.Context, author *models.User, input ArticleInput) (*models.Article, error) {
	if !author.Can(models.PermPublishArticle) {
		return nil, ErrPermissionDenied
	}
	if _, err := s.articles.GetByTitle(ctx, input.Title, store.Any); err == nil {
		return nil, ErrTitleInUse
	}

	status := input.Status
	if status == 0 {
		status = models.ArticleStatusNormal
	}

	article := &models.Article{
		Title:      input.Title,
		Summary:    input.Summary,
		Body:       input.Body,
		Tags:       models.JoinTags(input.Tags),
		Status:     status,
		CategoryID: input.CategoryID,
		AuthorID:   author.ID,
	}

	// The slug is random, so a unique-constraint hit just means we drew an
	// existing one. Retry with a fresh draw.
	for attempt := 0; attempt < slugAttempts; attempt++ {
		article.Slug = newSlug()
		err := s.articles.Create(ctx, article)
		if err == nil {
			return article, nil
		}
		if !errors.Is(err, store.ErrDuplicate) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("could not allocate a unique slug after %d attempts", slugAttempts)
}

// newSlug derives an 8-digit slug from a random UUID.
func newSlug() string {
	h := fnv.New32a()
	h.Write([]byte(uuid.NewString()))
	return fmt.Sprintf("%08d", h.Sum32()%100000000)
}

func (s *articleService) Update(ctx context.Context, actor *models.User, slug string, input ArticleInput) (*models.Article, error) {
	article, err := s.articles.GetBySlug(ctx, slug, store.Visible)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != actor.ID && !actor.Can(models.PermAdmin) {
		return nil, ErrPermissionDenied
	}
	if input.Title != article.Title {
		if _, err := s.articles.GetByTitle(ctx, input.Title, store.Any); err == nil {
			return nil, ErrTitleInUse
		}
	}

	attrs := map[string]any{
		"title":       input.Title,
		"summary":     input.Summary,
		"body":        input.Body,
		"tags":        models.JoinTags(input.Tags),
		"category_id": input.CategoryID,
	}
	if input.Status != 0 {
		attrs["status"] = input.Status
	}
	if err := s.articles.Update(ctx, article, attrs); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *articleService) Delete(ctx context.Context, actor *models.User, slug string) error {
	article, err := s.articles.GetBySlug(ctx, slug, store.Visible)
	if err != nil {
		return err
	}
	if article.AuthorID != actor.ID && !actor.Can(models.PermAdmin) {
		return ErrPermissionDenied
	}
	return s.articles.SoftDelete(ctx, article)
}

// GetBySlug fetches one visible article. With countView set the read also
// registers a view; counting failures never fail the read.
func (s *articleService) GetBySlug(ctx context.Context, slug string, countView bool) (*models.Article, error) {
	article, err := s.articles.GetBySlug(ctx, slug, store.Visible)
	if err != nil {
		return nil, err
	}
	if countView {
		_ = s.views.Increment(ctx, article)
	}
	return article, nil
}

func (s *articleService) List(ctx context.Context, order store.Order, page, pageSize int) (store.Page[models.Article], error) {
	return s.articles.Paginate(ctx, store.Visible, order, page, pageSize)
}

func (s *articleService) ListByTag(ctx context.Context, tag string, order store.Order, page, pageSize int) (store.Page[models.Article], error) {
	return s.articles.PaginateByTag(ctx, strings.TrimSpace(tag), store.Visible, order, page, pageSize)
}

func (s *articleService) ListByCategory(ctx context.Context, categoryID uint, order store.Order, page, pageSize int) (store.Page[models.Article], error) {
	return s.articles.PaginateByCategory(ctx, categoryID, store.Visible, order, page, pageSize)
}

// Search runs the expression against the full-text index and wraps the
// relevance-ordered hits in a page envelope.
func (s *articleService) Search(ctx context.Context, expression string, page, pageSize int) (store.Page[models.Article], error) {
	result := store.Page[models.Article]{Items: []models.Article{}, Page: page, PageSize: pageSize}
	items, total, err := s.searcher.Search(ctx, expression, page, pageSize)
	if err != nil {
		return result, err
	}
	result.Items = items
	result.Total = total
	return result, nil
}

func (s *articleService) Reindex(ctx context.Context) error {
	return s.searcher.Reindex(ctx)
}
