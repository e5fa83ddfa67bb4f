package models

import (
	"strings"

	"bloghub/internal/store"
)

type ArticleStatus int16

const (
	ArticleStatusNormal ArticleStatus = 1
	ArticleStatusDraft  ArticleStatus = 2
)

// Article's body must be written in Markdown. Tags is a denormalized
// comma-joined string, so tag filtering is a pattern match rather than a
// join.
type Article struct {
	store.Model
	Slug       string        `gorm:"size:16;uniqueIndex;not null" json:"slug"`
	Title      string        `gorm:"size:200;not null" json:"title"`
	Summary    string        `gorm:"size:200" json:"summary,omitempty"`
	Body       string        `gorm:"type:text;not null" json:"body"`
	Tags       string        `gorm:"size:200" json:"tags,omitempty"`
	Status     ArticleStatus `gorm:"not null;default:1" json:"status"`
	ViewCount  int           `gorm:"not null;default:0" json:"view_count"`
	CategoryID uint          `gorm:"index;not null" json:"category_id"`
	AuthorID   uint          `gorm:"index;not null" json:"author_id"`

	Author   *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Comments []Comment `gorm:"foreignKey:ArticleID" json:"comments,omitempty"`
}

func (Article) TableName() string {
	return "articles"
}

// SearchIndex names the external index mirroring this entity type.
func (a *Article) SearchIndex() string {
	return "articles"
}

// SearchFields is the declared searchable subset pushed into the index.
func (a *Article) SearchFields() map[string]string {
	return map[string]string{
		"body":  a.Body,
		"tags":  a.Tags,
		"title": a.Title,
	}
}

// TagList splits the denormalized tag string back into individual tags.
func (a *Article) TagList() []string {
	return SplitTags(a.Tags)
}

// JoinTags normalizes a tag list into the comma-joined storage form,
// dropping blanks.
func JoinTags(tags []string) string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	return strings.Join(cleaned, ",")
}

// SplitTags is the inverse of JoinTags.
func SplitTags(joined string) []string {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}
