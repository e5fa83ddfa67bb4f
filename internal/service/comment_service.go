package service

import (
	"context"

	"bloghub/internal/models"
	"bloghub/internal/repository"
	"bloghub/internal/store"
)

type CommentService interface {
	Create(ctx context.Context, author *models.User, articleSlug, body string) (*models.Comment, error)
	Delete(ctx context.Context, actor *models.User, commentID uint) error
	ListByArticle(ctx context.Context, articleSlug string, page, pageSize int) (store.Page[models.Comment], error)
}

type commentService struct {
	comments repository.CommentRepository
	articles repository.ArticleRepository
}

func NewCommentService(comments repository.CommentRepository, articles repository.ArticleRepository) CommentService {
	return &commentService{comments: comments, articles: articles}
}

func (s *commentService) Create(ctx context.Context, author *models.User, articleSlug, body string) (*models.Comment, error) {
	if !author.Can(models.PermComment) {
		return nil, ErrPermissionDenied
	}
	article, err := s.articles.GetBySlug(ctx, articleSlug, store.Visible)
	if err != nil {
		return nil, err
	}
	comment := &models.Comment{
		Body:      body,
		ArticleID: article.ID,
		AuthorID:  author.ID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete soft-deletes a comment. Allowed for the comment's author and for
// moderators holding the review permission.
func (s *commentService) Delete(ctx context.Context, actor *models.User, commentID uint) error {
	comment, err := s.comments.GetByID(ctx, commentID, store.Visible)
	if err != nil {
		return err
	}
	if comment.AuthorID != actor.ID && !actor.Can(models.PermReviewComment) {
		return ErrPermissionDenied
	}
	return s.comments.SoftDelete(ctx, comment)
}

func (s *commentService) ListByArticle(ctx context.Context, articleSlug string, page, pageSize int) (store.Page[models.Comment], error) {
	article, err := s.articles.GetBySlug(ctx, articleSlug, store.Visible)
	if err != nil {
		return store.Page[models.Comment]{Items: []models.Comment{}, Page: page, PageSize: pageSize}, err
	}
	return s.comments.PaginateByArticle(ctx, article.ID, store.Visible, store.Asc, page, pageSize)
}
