package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bloghub/internal/api/dto"
	"bloghub/internal/models"
	"bloghub/internal/service"
	"bloghub/internal/store"
)

// MockArticleService mocks the ArticleService interface
type MockArticleService struct {
	mock.Mock
}

func (m *MockArticleService) Create(ctx context.Context, author *models.User, input service.ArticleInput) (*models.Article, error) {
	args := m.Called(ctx, author, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *MockArticleService) Update(ctx context.Context, actor *models.User, slug string, input service.ArticleInput) (*models.Article, error) {
	args := m.Called(ctx, actor, slug, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *MockArticleService) Delete(ctx context.Context, actor *models.User, slug string) error {
	args := m.Called(ctx, actor, slug)
	return args.Error(0)
}

func (m *MockArticleService) GetBySlug(ctx context.Context, slug string, countView bool) (*models.Article, error) {
	args := m.Called(ctx, slug, countView)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *MockArticleService) List(ctx context.Context, order store.Order, page, pageSize int) (store.Page[models.Article], error) {
	args := m.Called(ctx, order, page, pageSize)
	return args.Get(0).(store.Page[models.Article]), args.Error(1)
}

func (m *MockArticleService) ListByTag(ctx context.Context, tag string, order store.Order, page, pageSize int) (store.Page[models.Article], error) {
	args := m.Called(ctx, tag, order, page, pageSize)
	return args.Get(0).(store.Page[models.Article]), args.Error(1)
}

func (m *MockArticleService) ListByCategory(ctx context.Context, categoryID uint, order store.Order, page, pageSize int) (store.Page[models.Article], error) {
	args := m.Called(ctx, categoryID, order, page, pageSize)
	return args.Get(0).(store.Page[models.Article]), args.Error(1)
}

func (m *MockArticleService) Search(ctx context.Context, expression string, page, pageSize int) (store.Page[models.Article], error) {
	args := m.Called(ctx, expression, page, pageSize)
	return args.Get(0).(store.Page[models.Article]), args.Error(1)
}

func (m *MockArticleService) Reindex(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// asUser stands in for the auth middleware.
func asUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("currentUser", user)
		c.Next()
	}
}

func author() *models.User {
	user := &models.User{Nickname: "author", Role: models.RoleAdministrator}
	user.ID = 1
	return user
}

func TestCreateArticle_Created(t *testing.T) {
	mockService := new(MockArticleService)
	h := NewArticleHandler(mockService)
	router := setupRouter()
	router.POST("/articles", asUser(author()), h.Create)

	article := &models.Article{Slug: "12345678", Title: "Hello", Body: "world", Tags: "go,web"}
	article.ID = 9
	mockService.On("Create", mock.Anything, mock.AnythingOfType("*models.User"), mock.AnythingOfType("service.ArticleInput")).
		Return(article, nil)

	body, _ := json.Marshal(dto.ArticleRequest{
		Title:      "Hello",
		Body:       "world",
		Tags:       []string{"go", "web"},
		CategoryID: 2,
	})
	req, _ := http.NewRequest("POST", "/articles", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response dto.ArticleResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "12345678", response.Slug)
	assert.Equal(t, []string{"go", "web"}, response.Tags)

	mockService.AssertExpectations(t)
}

func TestCreateArticle_MissingTitle(t *testing.T) {
	mockService := new(MockArticleService)
	h := NewArticleHandler(mockService)
	router := setupRouter()
	router.POST("/articles", asUser(author()), h.Create)

	body, _ := json.Marshal(map[string]any{"body": "world", "category_id": 2})
	req, _ := http.NewRequest("POST", "/articles", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateArticle_PermissionDenied(t *testing.T) {
	mockService := new(MockArticleService)
	h := NewArticleHandler(mockService)
	router := setupRouter()
	router.POST("/articles", asUser(author()), h.Create)

	mockService.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, service.ErrPermissionDenied)

	body, _ := json.Marshal(dto.ArticleRequest{Title: "Hello", Body: "world", CategoryID: 2})
	req, _ := http.NewRequest("POST", "/articles", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetArticle_NotFound(t *testing.T) {
	mockService := new(MockArticleService)
	h := NewArticleHandler(mockService)
	router := setupRouter()
	router.GET("/articles/:slug", h.Get)

	mockService.On("GetBySlug", mock.Anything, "missing", true).Return(nil, store.ErrNotFound)

	req, _ := http.NewRequest("GET", "/articles/missing", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListArticles_DefaultsAndEnvelope(t *testing.T) {
	mockService := new(MockArticleService)
	h := NewArticleHandler(mockService)
	router := setupRouter()
	router.GET("/articles", h.List)

	hit := models.Article{Slug: "12345678", Title: "Hello", Body: "hidden in lists"}
	hit.ID = 4
	page := store.Page[models.Article]{Items: []models.Article{hit}, Page: 1, PageSize: 20, Total: 41}
	mockService.On("List", mock.Anything, store.Desc, 1, 20).Return(page, nil)

	req, _ := http.NewRequest("GET", "/articles", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.PageResponse[dto.ArticleResponse]
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, int64(41), response.Total)
	assert.Equal(t, 3, response.TotalPages)
	assert.Len(t, response.Items, 1)
	assert.Empty(t, response.Items[0].Body)

	mockService.AssertExpectations(t)
}

func TestListArticles_TagFilter(t *testing.T) {
	mockService := new(MockArticleService)
	h := NewArticleHandler(mockService)
	router := setupRouter()
	router.GET("/articles", h.List)

	page := store.Page[models.Article]{Items: []models.Article{}, Page: 1, PageSize: 20}
	mockService.On("ListByTag", mock.Anything, "技术", store.Desc, 1, 20).Return(page, nil)

	req, _ := http.NewRequest("GET", "/articles?tag=%E6%8A%80%E6%9C%AF", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestSearchArticles_MissingQuery(t *testing.T) {
	mockService := new(MockArticleService)
	h := NewArticleHandler(mockService)
	router := setupRouter()
	router.GET("/articles/search", h.Search)

	req, _ := http.NewRequest("GET", "/articles/search", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReindex_AdminOnly(t *testing.T) {
	mockService := new(MockArticleService)
	h := NewArticleHandler(mockService)
	router := setupRouter()

	general := &models.User{Nickname: "reader", Role: models.RoleGeneral}
	general.ID = 2
	router.POST("/articles/reindex", asUser(general), h.Reindex)

	req, _ := http.NewRequest("POST", "/articles/reindex", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockService.AssertNotCalled(t, "Reindex", mock.Anything)
}
