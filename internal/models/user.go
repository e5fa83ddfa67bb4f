package models

import (
	"time"

	"bloghub/internal/auth"
	"bloghub/internal/store"
)

// Permission bits grantable through a role.
type Permission uint

const (
	PermAdmin Permission = 1 << iota
	PermComment
	PermPublishArticle
	PermReviewComment
	PermMessage
)

type Role int16

const (
	RoleGeneral       Role = 1
	RoleAdministrator Role = 2
)

var rolePermissions = map[Role]Permission{
	RoleGeneral:       PermComment | PermMessage,
	RoleAdministrator: PermAdmin | PermComment | PermPublishArticle | PermReviewComment | PermMessage,
}

type User struct {
	store.Model
	Nickname     string     `gorm:"size:32;uniqueIndex;not null" json:"nickname"`
	Email        string     `gorm:"size:64;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:128;not null" json:"-"`
	AvatarURL    string     `gorm:"size:256" json:"avatar_url,omitempty"`
	Bio          string     `gorm:"size:200" json:"bio,omitempty"`
	Role         Role       `gorm:"not null;default:1" json:"role"`
	LastReadAt   *time.Time `gorm:"column:last_message_read_at" json:"last_message_read_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Can reports whether the user's role grants every bit of p.
func (u *User) Can(p Permission) bool {
	granted, ok := rolePermissions[u.Role]
	return ok && granted&p == p
}

// SetPassword re-hashes the plaintext onto PasswordHash. The plaintext is
// never stored; callers persist PasswordHash afterwards.
func (u *User) SetPassword(plaintext string) error {
	hashed, err := auth.HashPassword(plaintext)
	if err != nil {
		return err
	}
	u.PasswordHash = hashed
	return nil
}

// VerifyPassword checks a login attempt against the stored hash.
func (u *User) VerifyPassword(plaintext string) bool {
	return auth.VerifyPassword(u.PasswordHash, plaintext) == nil
}
