package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bloghub/internal/models"
	"bloghub/internal/store"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User, attrs map[string]any) error {
	args := m.Called(ctx, user, attrs)
	return args.Error(0)
}

func (m *MockUserRepository) SoftDelete(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint, vis store.Visibility) (*models.User, error) {
	args := m.Called(ctx, id, vis)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByNickname(ctx context.Context, nickname string, vis store.Visibility) (*models.User, error) {
	args := m.Called(ctx, nickname, vis)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string, vis store.Visibility) (*models.User, error) {
	args := m.Called(ctx, email, vis)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmailOrNickname(ctx context.Context, email, nickname string, vis store.Visibility) (*models.User, error) {
	args := m.Called(ctx, email, nickname, vis)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Paginate(ctx context.Context, vis store.Visibility, order store.Order, page, pageSize int) (store.Page[models.User], error) {
	args := m.Called(ctx, vis, order, page, pageSize)
	return args.Get(0).(store.Page[models.User]), args.Error(1)
}

func (m *MockUserRepository) UnreadMessageCount(ctx context.Context, user *models.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

// MockArticleRepository mocks the ArticleRepository interface
type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article, attrs map[string]any) error {
	args := m.Called(ctx, article, attrs)
	return args.Error(0)
}

func (m *MockArticleRepository) SoftDelete(ctx context.Context, article *models.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id uint, vis store.Visibility) (*models.Article, error) {
	args := m.Called(ctx, id, vis)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *MockArticleRepository) GetBySlug(ctx context.Context, slug string, vis store.Visibility) (*models.Article, error) {
	args := m.Called(ctx, slug, vis)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *MockArticleRepository) GetByTitle(ctx context.Context, title string, vis store.Visibility) (*models.Article, error) {
	args := m.Called(ctx, title, vis)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *MockArticleRepository) Paginate(ctx context.Context, vis store.Visibility, order store.Order, page, pageSize int) (store.Page[models.Article], error) {
	args := m.Called(ctx, vis, order, page, pageSize)
	return args.Get(0).(store.Page[models.Article]), args.Error(1)
}

func (m *MockArticleRepository) PaginateByTag(ctx context.Context, tag string, vis store.Visibility, order store.Order, page, pageSize int) (store.Page[models.Article], error) {
	args := m.Called(ctx, tag, vis, order, page, pageSize)
	return args.Get(0).(store.Page[models.Article]), args.Error(1)
}

func (m *MockArticleRepository) PaginateByCategory(ctx context.Context, categoryID uint, vis store.Visibility, order store.Order, page, pageSize int) (store.Page[models.Article], error) {
	args := m.Called(ctx, categoryID, vis, order, page, pageSize)
	return args.Get(0).(store.Page[models.Article]), args.Error(1)
}

func (m *MockArticleRepository) IncrementViews(ctx context.Context, article *models.Article, delta int) error {
	args := m.Called(ctx, article, delta)
	return args.Error(0)
}

func (m *MockArticleRepository) ListTags(ctx context.Context, vis store.Visibility) ([]string, error) {
	args := m.Called(ctx, vis)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockMailer records sent notifications without delivering anything
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(subject, htmlBody string, to []string) {
	m.Called(subject, htmlBody, to)
}
