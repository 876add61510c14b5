package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-discovery/backend/internal/store"
)

// HealthCheck returns the health status of the API
func HealthCheck(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"recipes": s.Len(),
		})
	}
}
