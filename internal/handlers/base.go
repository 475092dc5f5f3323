package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSONError renders a failure payload in the shape the dashboard and the
// comment widget expect.
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// StoreUnavailable renders the explicit degradation payload used when no
// database is configured. The request fails, the process does not.
func StoreUnavailable(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"error":   "Database not configured",
		"message": "The comment system is not yet set up.",
	})
}
