package handlers

import (
	"errors"
	"log"
	"net/http"

	"youngchai/internal/store"
	"youngchai/internal/utils"

	"github.com/gin-gonic/gin"
)

// moderationListLimit caps the moderation view at the most recent rows.
const moderationListLimit = 500

// AdminHandler serves the moderation surface. Authorization happens in the
// AdminRequired middleware before any of these run.
type AdminHandler struct {
	store *store.CommentStore
}

func NewAdminHandler(s *store.CommentStore) *AdminHandler {
	return &AdminHandler{store: s}
}

// List handles GET /admin/comments: every comment regardless of approval,
// newest first, email and ip_hash included.
func (h *AdminHandler) List(c *gin.Context) {
	if h.store == nil {
		StoreUnavailable(c)
		return
	}

	comments, err := h.store.ListAll(moderationListLimit)
	if err != nil {
		log.Printf("Error fetching comments: %v", err)
		JSONError(c, http.StatusInternalServerError, "Failed to fetch comments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "comments": comments})
}

// Approve handles POST /admin/comments/:id/approve.
func (h *AdminHandler) Approve(c *gin.Context) {
	h.update(c, h.store.Approve, "Comment approved successfully")
}

// Hide handles POST /admin/comments/:id/hide: pulls a comment off the
// public read path without deleting it. Reversible via approve.
func (h *AdminHandler) Hide(c *gin.Context) {
	h.update(c, h.store.Hide, "Comment hidden successfully")
}

// Delete handles DELETE /admin/comments/:id. Permanent, no cascade:
// replies keep their dangling parent reference.
func (h *AdminHandler) Delete(c *gin.Context) {
	h.update(c, h.store.Delete, "Comment deleted successfully")
}

func (h *AdminHandler) update(c *gin.Context, op func(uint) error, successMessage string) {
	if h.store == nil {
		StoreUnavailable(c)
		return
	}

	id := utils.ParseID(c.Param("id"))
	if id == 0 {
		JSONError(c, http.StatusBadRequest, "Invalid comment ID")
		return
	}

	if err := op(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			JSONError(c, http.StatusNotFound, "Comment not found")
			return
		}
		log.Printf("Error updating comment %d: %v", id, err)
		JSONError(c, http.StatusInternalServerError, "Failed to update comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": successMessage})
}
