package repository

import (
	"context"

	"bloghub/internal/models"
	"bloghub/internal/store"
)

type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	SoftDelete(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id uint, vis store.Visibility) (*models.Message, error)
	PaginateByRecipient(ctx context.Context, recipientID uint, vis store.Visibility, order store.Order, page, pageSize int) (store.Page[models.Message], error)
	LatestBySender(ctx context.Context, senderID uint, vis store.Visibility) (*models.Message, error)
}

type messageRepository struct {
	*store.Repo[models.Message, *models.Message]
	db *store.DB
}

func NewMessageRepository(db *store.DB) MessageRepository {
	return &messageRepository{
		Repo: store.NewRepo[models.Message](db),
		db:   db,
	}
}

func (r *messageRepository) PaginateByRecipient(ctx context.Context, recipientID uint, vis store.Visibility, order store.Order, page, pageSize int) (store.Page[models.Message], error) {
	result := store.Page[models.Message]{Items: []models.Message{}, Page: page, PageSize: pageSize}

	base := vis.Scope(r.db.Gorm().WithContext(ctx).Model(&models.Message{}).Where("recipient_id = ?", recipientID))
	if err := base.Count(&result.Total).Error; err != nil {
		return result, store.Translate(err)
	}
	if page < 1 || pageSize < 1 {
		return result, nil
	}

	err := vis.Scope(r.db.Gorm().WithContext(ctx).Where("recipient_id = ?", recipientID)).
		Preload("Sender").
		Order(order.Clause()).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&result.Items).Error
	if err != nil {
		return result, store.Translate(err)
	}
	return result, nil
}

func (r *messageRepository) LatestBySender(ctx context.Context, senderID uint, vis store.Visibility) (*models.Message, error) {
	var message models.Message
	err := vis.Scope(r.db.Gorm().WithContext(ctx)).
		Where("sender_id = ?", senderID).
		Order("id DESC").
		First(&message).Error
	if err != nil {
		return nil, store.Translate(err)
	}
	return &message, nil
}
