package service

import (
	"context"

	"bloghub/internal/models"
	"bloghub/internal/search"
)

// articleSearcher binds the article type to the index synchronizer.
type articleSearcher struct {
	sync *search.Synchronizer
}

func NewArticleSearcher(sync *search.Synchronizer) ArticleSearcher {
	return &articleSearcher{sync: sync}
}

func (a *articleSearcher) Search(ctx context.Context, expression string, page, perPage int) ([]models.Article, int64, error) {
	return search.Find[models.Article](ctx, a.sync, expression, page, perPage)
}

func (a *articleSearcher) Reindex(ctx context.Context) error {
	return search.Reindex[models.Article](ctx, a.sync)
}
