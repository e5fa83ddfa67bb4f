// Package api assembles the Gin router.
package api

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"bloghub/internal/api/handler"
	"bloghub/internal/api/middleware"
	"bloghub/internal/repository"
	"bloghub/internal/service"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Article  *handler.ArticleHandler
	Comment  *handler.CommentHandler
	Message  *handler.MessageHandler
	Category *handler.CategoryHandler
	Tag      *handler.TagHandler
}

// NewRouter mounts the public and authenticated route groups.
func NewRouter(h Handlers, authService service.AuthService, users repository.UserRepository) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RateLimit(rate.Limit(20), 40))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
	}

	public := r.Group("/")
	{
		public.GET("/articles", h.Article.List)
		public.GET("/articles/search", h.Article.Search)
		public.GET("/articles/:slug", h.Article.Get)
		public.GET("/articles/:slug/comments", h.Comment.ListByArticle)
		public.GET("/categories", h.Category.List)
		public.GET("/tags/in-use", h.Tag.ListInUse)
	}

	authed := r.Group("/", middleware.Auth(authService, users))
	{
		authed.GET("/me", h.Auth.Me)
		authed.POST("/me/password", h.Auth.ChangePassword)

		authed.POST("/articles", h.Article.Create)
		authed.PUT("/articles/:slug", h.Article.Update)
		authed.DELETE("/articles/:slug", h.Article.Delete)
		authed.POST("/articles/reindex", h.Article.Reindex)

		authed.POST("/articles/:slug/comments", h.Comment.Create)
		authed.DELETE("/comments/:id", h.Comment.Delete)

		authed.POST("/messages", h.Message.Send)
		authed.GET("/messages", h.Message.Inbox)
		authed.POST("/messages/read", h.Message.MarkRead)
		authed.GET("/messages/unread", h.Message.UnreadCount)

		authed.POST("/categories", h.Category.Create)
		authed.PUT("/categories/:id", h.Category.Rename)
		authed.DELETE("/categories/:id", h.Category.Delete)

		authed.GET("/tags", h.Tag.List)
		authed.POST("/tags", h.Tag.Create)
		authed.DELETE("/tags/:id", h.Tag.Delete)
	}

	return r
}
