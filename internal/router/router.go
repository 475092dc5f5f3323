package router

import (
	"youngchai/internal/config"
	"youngchai/internal/handlers"
	"youngchai/internal/middleware"
	"youngchai/internal/services"
	"youngchai/internal/store"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the comment API onto the engine. The store may be
// nil (no database configured); handlers degrade per route instead of the
// server refusing to start.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, commentStore *store.CommentStore) {
	verifier := services.NewIdentityVerifier(cfg.GitHubAPIURL, cfg.AllowedUsers)
	limiter := services.NewRateLimiter(commentStore, cfg.RateLimitMax, cfg.RateLimitWindow)

	commentHandler := handlers.NewCommentHandler(commentStore, limiter, cfg.AutoApprove)
	adminHandler := handlers.NewAdminHandler(commentStore)
	authHandler := handlers.NewAuthHandler(cfg, verifier)

	// Public routes
	r.GET("/comments", commentHandler.List)    // approved comments of one post
	r.POST("/comments", commentHandler.Create) // reader submission

	r.GET("/auth/admin", authHandler.AdminLogin) // OAuth relay for the dashboard

	// Moderation routes, gated on a verified allow-listed identity
	admin := r.Group("/admin")
	admin.Use(middleware.AdminRequired(verifier))
	{
		admin.GET("/comments", adminHandler.List)
		admin.POST("/comments/:id/approve", adminHandler.Approve)
		admin.POST("/comments/:id/hide", adminHandler.Hide)
		admin.DELETE("/comments/:id", adminHandler.Delete)
	}
}
