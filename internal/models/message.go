package models

import "bloghub/internal/store"

// Message is a private note between two users. Read state is tracked on
// the recipient (User.LastReadAt), not per row.
type Message struct {
	store.Model
	SenderID    uint   `gorm:"index;not null" json:"sender_id"`
	RecipientID uint   `gorm:"index;not null" json:"recipient_id"`
	Body        string `gorm:"size:200;not null" json:"body"`

	Sender    *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient *User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}
