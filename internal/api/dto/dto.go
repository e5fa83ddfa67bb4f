// Package dto holds the request and response payloads of the HTTP API.
package dto

import (
	"time"

	"bloghub/internal/models"
	"bloghub/internal/store"
)

// PageQuery is the shared pagination query-string contract.
type PageQuery struct {
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
	Order    string `form:"order,default=desc" binding:"omitempty,oneof=asc desc"`
}

// Sort maps the query order onto the store's ordering.
func (q PageQuery) Sort() store.Order {
	if q.Order == "asc" {
		return store.Asc
	}
	return store.Desc
}

// PageResponse wraps a page of items with its envelope.
type PageResponse[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func NewPageResponse[T, U any](page store.Page[U], convert func(U) T) PageResponse[T] {
	items := make([]T, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, convert(item))
	}
	return PageResponse[T]{
		Items:      items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages(),
	}
}

// RegisterRequest: payload for user registration
type RegisterRequest struct {
	Nickname string `json:"nickname" binding:"required,min=3,max=32"`
	Email    string `json:"email" binding:"required,email,max=64"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest: payload for user login
type LoginRequest struct {
	Nickname string `json:"nickname" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse: response payload after successful authentication
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"` // seconds
	User        UserResponse `json:"user"`
}

type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type UserResponse struct {
	ID        uint   `json:"id"`
	Nickname  string `json:"nickname"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Role      int16  `json:"role"`
}

func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Nickname:  user.Nickname,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		Bio:       user.Bio,
		Role:      int16(user.Role),
	}
}

type ArticleRequest struct {
	Title      string   `json:"title" binding:"required,max=200"`
	Summary    string   `json:"summary" binding:"max=200"`
	Body       string   `json:"body" binding:"required"`
	Tags       []string `json:"tags" binding:"max=10"`
	Status     int16    `json:"status" binding:"omitempty,oneof=1 2"`
	CategoryID uint     `json:"category_id" binding:"required"`
}

type ArticleResponse struct {
	ID         uint      `json:"id"`
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary,omitempty"`
	Body       string    `json:"body,omitempty"`
	Tags       []string  `json:"tags"`
	Status     int16     `json:"status"`
	ViewCount  int       `json:"view_count"`
	CategoryID uint      `json:"category_id"`
	AuthorID   uint      `json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewArticleResponse(article *models.Article) ArticleResponse {
	return ArticleResponse{
		ID:         article.ID,
		Slug:       article.Slug,
		Title:      article.Title,
		Summary:    article.Summary,
		Body:       article.Body,
		Tags:       article.TagList(),
		Status:     int16(article.Status),
		ViewCount:  article.ViewCount,
		CategoryID: article.CategoryID,
		AuthorID:   article.AuthorID,
		CreatedAt:  article.CreatedAt,
		UpdatedAt:  article.UpdatedAt,
	}
}

// NewArticleSummary omits the body for list views.
func NewArticleSummary(article models.Article) ArticleResponse {
	resp := NewArticleResponse(&article)
	resp.Body = ""
	return resp
}

type CommentRequest struct {
	Body string `json:"body" binding:"required,max=200"`
}

type CommentResponse struct {
	ID        uint      `json:"id"`
	Body      string    `json:"body"`
	ArticleID uint      `json:"article_id"`
	AuthorID  uint      `json:"author_id"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewCommentResponse(comment models.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        comment.ID,
		Body:      comment.Body,
		ArticleID: comment.ArticleID,
		AuthorID:  comment.AuthorID,
		CreatedAt: comment.CreatedAt,
	}
	if comment.Author != nil {
		resp.Author = comment.Author.Nickname
	}
	return resp
}

type MessageRequest struct {
	Recipient string `json:"recipient" binding:"required"`
	Body      string `json:"body" binding:"required,max=200"`
}

type MessageResponse struct {
	ID        uint      `json:"id"`
	SenderID  uint      `json:"sender_id"`
	Sender    string    `json:"sender,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func NewMessageResponse(message models.Message) MessageResponse {
	resp := MessageResponse{
		ID:        message.ID,
		SenderID:  message.SenderID,
		Body:      message.Body,
		CreatedAt: message.CreatedAt,
	}
	if message.Sender != nil {
		resp.Sender = message.Sender.Nickname
	}
	return resp
}

type NameRequest struct {
	Name string `json:"name" binding:"required,max=20"`
}

type CategoryResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	AuthorID uint   `json:"author_id"`
}

func NewCategoryResponse(category models.Category) CategoryResponse {
	return CategoryResponse{ID: category.ID, Name: category.Name, AuthorID: category.AuthorID}
}

type TagResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	AuthorID uint   `json:"author_id"`
}

func NewTagResponse(tag models.Tag) TagResponse {
	return TagResponse{ID: tag.ID, Name: tag.Name, AuthorID: tag.AuthorID}
}
