package models

import "bloghub/internal/store"

type Comment struct {
	store.Model
	Body      string `gorm:"size:200;not null" json:"body"`
	ArticleID uint   `gorm:"index;not null" json:"article_id"`
	AuthorID  uint   `gorm:"index;not null" json:"author_id"`

	Author  *User    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Article *Article `gorm:"foreignKey:ArticleID" json:"article,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}
