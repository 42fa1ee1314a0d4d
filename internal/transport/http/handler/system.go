package handler

import (
	"net/http"

	"github.com/ErlanBelekov/blog-api/internal/domain"
	"github.com/gin-gonic/gin"
)

// GET /
func Banner(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  statusSuccess,
		"message": "Blog API is running",
		"endpoints": gin.H{
			"auth":  "/api/auth",
			"blogs": "/api/blogs",
		},
	})
}

// GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Server is healthy"})
}

// NotFound answers every unmatched method and path.
func NotFound(c *gin.Context) {
	_ = c.Error(domain.RouteNotFound(c.Request.URL.Path))
}
