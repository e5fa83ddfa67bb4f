package service

import (
	"context"
	"errors"

	"bloghub/internal/models"
	"bloghub/internal/repository"
	"bloghub/internal/store"
)

var ErrNameInUse = errors.New("name already in use")

// CategoryService manages the per-author category vocabulary.
type CategoryService interface {
	Create(ctx context.Context, author *models.User, name string) (*models.Category, error)
	Rename(ctx context.Context, actor *models.User, categoryID uint, name string) (*models.Category, error)
	Delete(ctx context.Context, actor *models.User, categoryID uint) error
	List(ctx context.Context) ([]models.Category, error)
}

type categoryService struct {
	categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) Create(ctx context.Context, author *models.User, name string) (*models.Category, error) {
	if !author.Can(models.PermPublishArticle) {
		return nil, ErrPermissionDenied
	}
	if _, err := s.categories.GetByName(ctx, author.ID, name, store.Any); err == nil {
		return nil, ErrNameInUse
	}
	category := &models.Category{Name: name, AuthorID: author.ID}
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrNameInUse
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Rename(ctx context.Context, actor *models.User, categoryID uint, name string) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, categoryID, store.Visible)
	if err != nil {
		return nil, err
	}
	if category.AuthorID != actor.ID && !actor.Can(models.PermAdmin) {
		return nil, ErrPermissionDenied
	}
	if err := s.categories.Update(ctx, category, map[string]any{"name": name}); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrNameInUse
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, actor *models.User, categoryID uint) error {
	category, err := s.categories.GetByID(ctx, categoryID, store.Visible)
	if err != nil {
		return err
	}
	if category.AuthorID != actor.ID && !actor.Can(models.PermAdmin) {
		return ErrPermissionDenied
	}
	return s.categories.SoftDelete(ctx, category)
}

func (s *categoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx, store.Visible, store.Asc)
}

// TagService manages the per-author tag vocabulary. Articles carry their
// tags denormalized; these records exist for listing and suggestions.
type TagService interface {
	Create(ctx context.Context, author *models.User, name string) (*models.Tag, error)
	Delete(ctx context.Context, actor *models.User, tagID uint) error
	ListByAuthor(ctx context.Context, authorID uint) ([]models.Tag, error)
	ListInUse(ctx context.Context) ([]string, error)
}

type tagService struct {
	tags     repository.TagRepository
	articles repository.ArticleRepository
}

func NewTagService(tags repository.TagRepository, articles repository.ArticleRepository) TagService {
	return &tagService{tags: tags, articles: articles}
}

func (s *tagService) Create(ctx context.Context, author *models.User, name string) (*models.Tag, error) {
	if !author.Can(models.PermPublishArticle) {
		return nil, ErrPermissionDenied
	}
	if _, err := s.tags.GetByName(ctx, author.ID, name, store.Any); err == nil {
		return nil, ErrNameInUse
	}
	tag := &models.Tag{Name: name, AuthorID: author.ID}
	if err := s.tags.Create(ctx, tag); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrNameInUse
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Delete(ctx context.Context, actor *models.User, tagID uint) error {
	tag, err := s.tags.GetByID(ctx, tagID, store.Visible)
	if err != nil {
		return err
	}
	if tag.AuthorID != actor.ID && !actor.Can(models.PermAdmin) {
		return ErrPermissionDenied
	}
	return s.tags.SoftDelete(ctx, tag)
}

func (s *tagService) ListByAuthor(ctx context.Context, authorID uint) ([]models.Tag, error) {
	return s.tags.ListByAuthor(ctx, authorID, store.Visible, store.Asc)
}

// ListInUse collects the distinct tags actually attached to visible
// articles, in first-seen order.
func (s *tagService) ListInUse(ctx context.Context) ([]string, error) {
	joined, err := s.articles.ListTags(ctx, store.Visible)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var tags []string
	for _, row := range joined {
		for _, tag := range models.SplitTags(row) {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags, nil
}
