package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"journeatz-api/middleware"
	"journeatz-api/models"
	"journeatz-api/storage"
)

func mwUserID(c *gin.Context) string {
	return middleware.GetUserID(c)
}

func mwRole(c *gin.Context) models.UserRole {
	return middleware.GetRole(c)
}

// respondStoreError translates storage errors into status codes: absence is
// a 404, bad input a 400, anything else a 500.
func respondStoreError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.Is(err, storage.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
