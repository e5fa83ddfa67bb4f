package repository

import (
	"context"
	"time"

	"bloghub/internal/models"
	"bloghub/internal/store"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User, attrs map[string]any) error
	SoftDelete(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint, vis store.Visibility) (*models.User, error)
	GetByNickname(ctx context.Context, nickname string, vis store.Visibility) (*models.User, error)
	GetByEmail(ctx context.Context, email string, vis store.Visibility) (*models.User, error)
	GetByEmailOrNickname(ctx context.Context, email, nickname string, vis store.Visibility) (*models.User, error)
	Paginate(ctx context.Context, vis store.Visibility, order store.Order, page, pageSize int) (store.Page[models.User], error)
	UnreadMessageCount(ctx context.Context, user *models.User) (int64, error)
}

type userRepository struct {
	*store.Repo[models.User, *models.User]
	db *store.DB
}

func NewUserRepository(db *store.DB) UserRepository {
	return &userRepository{
		Repo: store.NewRepo[models.User](db),
		db:   db,
	}
}

func (r *userRepository) GetByNickname(ctx context.Context, nickname string, vis store.Visibility) (*models.User, error) {
	return r.getBy(ctx, vis, "nickname = ?", nickname)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string, vis store.Visibility) (*models.User, error) {
	return r.getBy(ctx, vis, "email = ?", email)
}

func (r *userRepository) GetByEmailOrNickname(ctx context.Context, email, nickname string, vis store.Visibility) (*models.User, error) {
	return r.getBy(ctx, vis, "email = ? OR nickname = ?", email, nickname)
}

func (r *userRepository) getBy(ctx context.Context, vis store.Visibility, query string, args ...any) (*models.User, error) {
	var user models.User
	err := vis.Scope(r.db.Gorm().WithContext(ctx)).
		Where(query, args...).
		First(&user).Error
	if err != nil {
		return nil, store.Translate(err)
	}
	return &user, nil
}

// UnreadMessageCount counts messages received after the user last read
// their inbox.
func (r *userRepository) UnreadMessageCount(ctx context.Context, user *models.User) (int64, error) {
	since := time.Time{}
	if user.LastReadAt != nil {
		since = *user.LastReadAt
	}
	var count int64
	err := r.db.Gorm().WithContext(ctx).
		Model(&models.Message{}).
		Where("recipient_id = ? AND deleted = ? AND created_at > ?", user.ID, false, since).
		Count(&count).Error
	if err != nil {
		return 0, store.Translate(err)
	}
	return count, nil
}
