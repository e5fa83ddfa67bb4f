package models

import "bloghub/internal/store"

type Category struct {
	store.Model
	AuthorID uint   `gorm:"index;not null;uniqueIndex:uniq_category_owner_name" json:"author_id"`
	Name     string `gorm:"size:20;not null;uniqueIndex:uniq_category_owner_name" json:"name"`
}

func (Category) TableName() string {
	return "categories"
}
