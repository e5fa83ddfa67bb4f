// Package handler wires the HTTP surface onto the service layer.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bloghub/internal/service"
	"bloghub/internal/store"
)

// respondError maps service-layer errors onto HTTP status codes. Anything
// unrecognized is a 500 with no detail leaked.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrRecipientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNicknameInUse),
		errors.Is(err, service.ErrEmailInUse),
		errors.Is(err, service.ErrTitleInUse),
		errors.Is(err, service.ErrNameInUse),
		errors.Is(err, store.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
