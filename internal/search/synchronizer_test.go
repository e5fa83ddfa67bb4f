package search_test

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bloghub/internal/models"
	"bloghub/internal/search"
	"bloghub/internal/store"
)

func openTestDB(t *testing.T) *store.DB {
	t.Helper()
	g, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, g.AutoMigrate(&models.User{}, &models.Category{}, &models.Article{}))
	return store.New(g)
}

func createArticle(t *testing.T, repo *store.Repo[models.Article, *models.Article], title, tags string) *models.Article {
	t.Helper()
	article := &models.Article{
		Slug:       "slug-" + title,
		Title:      title,
		Body:       "body of " + title,
		Tags:       tags,
		Status:     models.ArticleStatusNormal,
		CategoryID: 1,
		AuthorID:   1,
	}
	require.NoError(t, repo.Create(context.Background(), article))
	return article
}

func TestFind_MatchesTagsAcrossArticles(t *testing.T) {
	db := openTestDB(t)
	sync := search.NewSynchronizer(db, search.NewMemoryBackend(), nil)
	repo := store.NewRepo[models.Article](db)
	ctx := context.Background()

	createArticle(t, repo, "one", "好玩,程序员")
	second := createArticle(t, repo, "two", "程序员,技术,招聘")
	third := createArticle(t, repo, "three", "网络,技术,交易")

	rows, total, err := search.Find[models.Article](ctx, sync, "技术", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, rows, 2)
	assert.ElementsMatch(t,
		[]uint{second.ID, third.ID},
		[]uint{rows[0].ID, rows[1].ID},
	)

	rows, total, err = search.Find[models.Article](ctx, sync, "程序员", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, rows, 2)
}

func TestFind_PreservesBackendOrder(t *testing.T) {
	db := openTestDB(t)
	sync := search.NewSynchronizer(db, search.NewMemoryBackend(), nil)
	repo := store.NewRepo[models.Article](db)
	ctx := context.Background()

	weak := createArticle(t, repo, "one mention", "")
	strong := createArticle(t, repo, "mention mention mention", "mention")

	rows, _, err := search.Find[models.Article](ctx, sync, "mention", 1, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// The higher-scoring article comes first even though it has the later
	// primary key.
	assert.Equal(t, strong.ID, rows[0].ID)
	assert.Equal(t, weak.ID, rows[1].ID)
}

func TestUpdate_ReindexesDocument(t *testing.T) {
	db := openTestDB(t)
	sync := search.NewSynchronizer(db, search.NewMemoryBackend(), nil)
	repo := store.NewRepo[models.Article](db)
	ctx := context.Background()

	article := createArticle(t, repo, "stale", "")
	rows, _, err := search.Find[models.Article](ctx, sync, "refreshed", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.NoError(t, repo.Update(ctx, article, map[string]any{"body": "refreshed content"}))

	rows, total, err := search.Find[models.Article](ctx, sync, "refreshed", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, article.ID, rows[0].ID)
}

func TestSoftDelete_RemovesFromResultsAndRestoreReturns(t *testing.T) {
	db := openTestDB(t)
	sync := search.NewSynchronizer(db, search.NewMemoryBackend(), nil)
	repo := store.NewRepo[models.Article](db)
	ctx := context.Background()

	article := createArticle(t, repo, "ephemeral", "")

	require.NoError(t, repo.SoftDelete(ctx, article))
	rows, total, err := search.Find[models.Article](ctx, sync, "ephemeral", 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, rows)

	require.NoError(t, repo.SoftDelete(ctx, article))
	rows, _, err = search.Find[models.Article](ctx, sync, "ephemeral", 1, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, article.ID, rows[0].ID)
}

func TestReindex_ConvergesLostIndex(t *testing.T) {
	db := openTestDB(t)
	backend := search.NewMemoryBackend()
	sync := search.NewSynchronizer(db, backend, nil)
	repo := store.NewRepo[models.Article](db)
	ctx := context.Background()

	createArticle(t, repo, "persisted", "")
	deleted := createArticle(t, repo, "persisted twice", "")
	require.NoError(t, repo.SoftDelete(ctx, deleted))

	backend.Clear("articles")
	rows, _, err := search.Find[models.Article](ctx, sync, "persisted", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.NoError(t, search.Reindex[models.Article](ctx, sync))

	// Soft-deleted rows are pushed too but stay invisible; the hydration
	// filter is the visibility authority.
	assert.Equal(t, 2, backend.Len("articles"))
	rows, _, err = search.Find[models.Article](ctx, sync, "persisted", 1, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "persisted", rows[0].Title)
}

func TestFind_NilBackendDegradesToEmpty(t *testing.T) {
	db := openTestDB(t)
	sync := search.NewSynchronizer(db, nil, nil)
	repo := store.NewRepo[models.Article](db)
	ctx := context.Background()

	createArticle(t, repo, "unindexed", "")

	assert.False(t, sync.Enabled())
	rows, total, err := search.Find[models.Article](ctx, sync, "unindexed", 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, rows)
}

type failingBackend struct{}

func (failingBackend) Upsert(context.Context, string, uint, map[string]string) error {
	return errors.New("index down")
}
func (failingBackend) Delete(context.Context, string, uint) error {
	return errors.New("index down")
}
func (failingBackend) Query(context.Context, string, string, int, int) ([]uint, int64, error) {
	return nil, 0, errors.New("index down")
}

func TestWrites_SucceedWhenBackendFails(t *testing.T) {
	db := openTestDB(t)
	sync := search.NewSynchronizer(db, failingBackend{}, nil)
	repo := store.NewRepo[models.Article](db)
	ctx := context.Background()

	// The write path never sees index failures.
	article := createArticle(t, repo, "resilient", "")
	require.NoError(t, repo.Update(ctx, article, map[string]any{"body": "still fine"}))
	require.NoError(t, repo.SoftDelete(ctx, article))

	// Queries degrade to empty rather than erroring.
	rows, total, err := search.Find[models.Article](ctx, sync, "resilient", 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, rows)
}
