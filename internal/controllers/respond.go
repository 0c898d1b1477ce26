package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"notely-be/internal/jwt"
	"notely-be/internal/repository"
	"notely-be/internal/service"
)

// respondServiceError maps service and repository errors onto the API's
// error bodies: per-field 400s for validation, an indistinguishable 404 for
// missing and foreign rows, 401 for credential failures.
func respondServiceError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": gin.H{vErr.Field: vErr.Message},
		})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"detail": "Not found.",
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{
			"detail": "Invalid email or password",
		})
	case errors.Is(err, jwt.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{
			"detail": "Token is invalid or expired",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

// currentUserID returns the caller identity set by the auth middleware.
// Responds 401 and returns false if it is missing.
func currentUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"detail": "Authentication credentials were not provided.",
		})
		c.Abort()
		return "", false
	}
	return value.(string), true
}

// parsePagination reads the page and page_size query params, applying the
// configured default and cap
func parsePagination(c *gin.Context, defaultSize, maxSize int) (page, pageSize int) {
	page = 1
	if value := c.Query("page"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			page = parsed
		}
	}

	pageSize = defaultSize
	if value := c.Query("page_size"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			pageSize = parsed
		}
	}
	if pageSize > maxSize {
		pageSize = maxSize
	}
	return page, pageSize
}
