package handlers

import (
	"errors"
	"log"
	"net/http"

	"youngchai/internal/models"
	"youngchai/internal/services"
	"youngchai/internal/store"
	"youngchai/internal/utils"

	"github.com/gin-gonic/gin"
)

// CommentHandler serves the public read/write surface of the comment
// system. Writes compose validation → rate limit → store insert; every
// decision is re-derived per request, nothing is shared between handlers.
type CommentHandler struct {
	store       *store.CommentStore
	limiter     *services.RateLimiter
	autoApprove bool
}

func NewCommentHandler(s *store.CommentStore, limiter *services.RateLimiter, autoApprove bool) *CommentHandler {
	return &CommentHandler{store: s, limiter: limiter, autoApprove: autoApprove}
}

// List handles GET /comments?post=<slug>. Only approved comments are
// returned, oldest first, as flat (id, parent_id) pairs the widget turns
// back into a tree. Orphaned replies are served as-is; rendering around a
// missing parent is the client's concern.
func (h *CommentHandler) List(c *gin.Context) {
	postSlug := c.Query("post")
	if postSlug == "" {
		JSONError(c, http.StatusBadRequest, "Missing post parameter")
		return
	}

	if h.store == nil {
		// Degrade without breaking readers: an empty list plus a hint,
		// not an error page.
		c.JSON(http.StatusOK, gin.H{
			"comments": []models.PublicComment{},
			"message":  "Database not configured. Comments will appear once storage is set up.",
		})
		return
	}

	comments, err := h.store.ListApproved(postSlug)
	if err != nil {
		log.Printf("Error fetching comments: %v", err)
		JSONError(c, http.StatusInternalServerError, "Failed to fetch comments")
		return
	}

	public := make([]models.PublicComment, 0, len(comments))
	for i := range comments {
		public = append(public, comments[i].Public())
	}
	c.JSON(http.StatusOK, gin.H{"comments": public})
}

// Create handles POST /comments.
func (h *CommentHandler) Create(c *gin.Context) {
	var input utils.CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	sanitized, err := utils.SanitizeComment(input)
	if err != nil {
		JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	if h.store == nil {
		StoreUnavailable(c)
		return
	}

	ipHash := utils.HashIP(c.ClientIP())
	if err := h.limiter.Allow(ipHash); err != nil {
		if errors.Is(err, services.ErrRateLimited) {
			JSONError(c, http.StatusTooManyRequests, "Too many comments. Please wait a moment before posting again.")
			return
		}
		log.Printf("Rate limit check error: %v", err)
		JSONError(c, http.StatusInternalServerError, "Failed to post comment")
		return
	}

	comment := models.Comment{
		PostSlug: sanitized.Post,
		ParentID: sanitized.ParentID,
		Name:     sanitized.Name,
		Content:  sanitized.Content,
		Approved: h.autoApprove,
		IPHash:   ipHash,
	}
	if sanitized.Email != "" {
		comment.Email = &sanitized.Email
	}

	if err := h.store.Create(&comment); err != nil {
		if errors.Is(err, store.ErrParentNotFound) {
			JSONError(c, http.StatusBadRequest, "Parent comment not found")
			return
		}
		log.Printf("Error posting comment: %v", err)
		JSONError(c, http.StatusInternalServerError, "Failed to post comment")
		return
	}

	message := "Comment posted successfully"
	if !h.autoApprove {
		message = "Comment submitted and awaiting moderation"
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   message,
		"commentId": comment.ID,
	})
}
