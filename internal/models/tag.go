package models

import "bloghub/internal/store"

type Tag struct {
	store.Model
	AuthorID uint   `gorm:"index;not null;uniqueIndex:uniq_tag_owner_name" json:"author_id"`
	Name     string `gorm:"size:20;not null;uniqueIndex:uniq_tag_owner_name" json:"name"`
}

func (Tag) TableName() string {
	return "tags"
}
