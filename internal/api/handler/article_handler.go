package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bloghub/internal/api/dto"
	"bloghub/internal/api/middleware"
	"bloghub/internal/models"
	"bloghub/internal/service"
	"bloghub/internal/store"
)

type ArticleHandler struct {
	articleService service.ArticleService
}

func NewArticleHandler(articleService service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

func (h *ArticleHandler) Create(c *gin.Context) {
	var req dto.ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.articleService.Create(c.Request.Context(), middleware.CurrentUser(c), articleInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewArticleResponse(article))
}

func (h *ArticleHandler) Update(c *gin.Context) {
	var req dto.ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.articleService.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"), articleInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewArticleResponse(article))
}

func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.articleService.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get returns one article and counts the view.
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.articleService.GetBySlug(c.Request.Context(), c.Param("slug"), true)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewArticleResponse(article))
}

// List serves the article feed, optionally filtered by tag or category.
func (h *ArticleHandler) List(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		page store.Page[models.Article]
		err  error
	)
	switch {
	case c.Query("tag") != "":
		page, err = h.articleService.ListByTag(c.Request.Context(), c.Query("tag"), query.Sort(), query.Page, query.PageSize)
	case c.Query("category_id") != "":
		categoryID, parseErr := strconv.ParseUint(c.Query("category_id"), 10, 64)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		page, err = h.articleService.ListByCategory(c.Request.Context(), uint(categoryID), query.Sort(), query.Page, query.PageSize)
	default:
		page, err = h.articleService.List(c.Request.Context(), query.Sort(), query.Page, query.PageSize)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPageResponse(page, dto.NewArticleSummary))
}

// Search runs a full-text query. A blank expression is a 400; a degraded
// index comes back as an empty, well-formed page.
func (h *ArticleHandler) Search(c *gin.Context) {
	expression := c.Query("q")
	if expression == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.articleService.Search(c.Request.Context(), expression, query.Page, query.PageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPageResponse(page, dto.NewArticleSummary))
}

// Reindex rebuilds the search index from the store. Admin only.
func (h *ArticleHandler) Reindex(c *gin.Context) {
	if !middleware.CurrentUser(c).Can(models.PermAdmin) {
		respondError(c, service.ErrPermissionDenied)
		return
	}
	if err := h.articleService.Reindex(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reindex complete"})
}

func articleInput(req dto.ArticleRequest) service.ArticleInput {
	return service.ArticleInput{
		Title:      req.Title,
		Summary:    req.Summary,
		Body:       req.Body,
		Tags:       req.Tags,
		Status:     models.ArticleStatus(req.Status),
		CategoryID: req.CategoryID,
	}
}
