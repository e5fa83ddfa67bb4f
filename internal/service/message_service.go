package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bloghub/internal/mailer"
	"bloghub/internal/models"
	"bloghub/internal/repository"
	"bloghub/internal/store"
)

var ErrRecipientNotFound = errors.New("recipient not found")

type MessageService interface {
	Send(ctx context.Context, sender *models.User, recipientNickname, body string) (*models.Message, error)
	Inbox(ctx context.Context, user *models.User, page, pageSize int) (store.Page[models.Message], error)
	MarkRead(ctx context.Context, user *models.User) error
	UnreadCount(ctx context.Context, user *models.User) (int64, error)
}

type messageService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
	mail     mailer.Mailer
}

func NewMessageService(messages repository.MessageRepository, users repository.UserRepository, mail mailer.Mailer) MessageService {
	return &messageService{messages: messages, users: users, mail: mail}
}

// Send delivers a private message and notifies the recipient by mail.
func (s *messageService) Send(ctx context.Context, sender *models.User, recipientNickname, body string) (*models.Message, error) {
	if !sender.Can(models.PermMessage) {
		return nil, ErrPermissionDenied
	}
	recipient, err := s.users.GetByNickname(ctx, recipientNickname, store.Visible)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}

	message := &models.Message{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Body:        body,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}

	s.mail.Send(
		fmt.Sprintf("New message from %s", sender.Nickname),
		fmt.Sprintf("<p>Hello %s,</p><p>%s sent you a message:</p><blockquote>%s</blockquote>",
			recipient.Nickname, sender.Nickname, body),
		[]string{recipient.Email},
	)
	return message, nil
}

func (s *messageService) Inbox(ctx context.Context, user *models.User, page, pageSize int) (store.Page[models.Message], error) {
	return s.messages.PaginateByRecipient(ctx, user.ID, store.Visible, store.Desc, page, pageSize)
}

// MarkRead stamps the whole inbox as read. Unread state is a single
// watermark per user rather than a flag per message.
func (s *messageService) MarkRead(ctx context.Context, user *models.User) error {
	now := time.Now()
	if err := s.users.Update(ctx, user, map[string]any{"last_message_read_at": now}); err != nil {
		return err
	}
	user.LastReadAt = &now
	return nil
}

func (s *messageService) UnreadCount(ctx context.Context, user *models.User) (int64, error) {
	return s.users.UnreadMessageCount(ctx, user)
}
