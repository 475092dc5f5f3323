package store

import (
	"errors"
	"fmt"
	"time"

	"youngchai/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrNotFound reports an operation on an id no row matches.
	ErrNotFound = errors.New("comment not found")
	// ErrParentNotFound reports a reply to a comment that does not exist
	// under the same post.
	ErrParentNotFound = errors.New("parent comment not found")
)

// CommentStore wraps all comment table access. Every method is a single
// statement; coordination between concurrent requests is delegated to the
// database, there is no in-process state.
type CommentStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) *CommentStore {
	return &CommentStore{db: db}
}

// Create inserts a new comment and fills in its generated id and
// created_at. When a parent is referenced it must already exist with the
// same post_slug; replies cannot cross posts and cycles are impossible
// because the parent pre-exists.
func (s *CommentStore) Create(comment *models.Comment) error {
	if comment.ParentID != nil {
		var count int64
		err := s.db.Model(&models.Comment{}).
			Where("id = ? AND post_slug = ?", *comment.ParentID, comment.PostSlug).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check parent comment: %w", err)
		}
		if count == 0 {
			return ErrParentNotFound
		}
	}

	if err := s.db.Create(comment).Error; err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

// ListApproved returns the visible comments of one post, oldest first.
// Callers rebuild the reply tree from the flat (id, parent_id) pairs; a
// dangling parent_id (parent deleted) is legal and left to the renderer.
func (s *CommentStore) ListApproved(postSlug string) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.
		Where("post_slug = ? AND approved = ?", postSlug, true).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}
	return comments, nil
}

// ListAll is the moderation view: every comment regardless of approval,
// newest first, capped at limit.
func (s *CommentStore) ListAll(limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}
	return comments, nil
}

// Approve makes one comment visible on the public read path.
func (s *CommentStore) Approve(id uint) error {
	res := s.db.Model(&models.Comment{}).Where("id = ?", id).Update("approved", true)
	if res.Error != nil {
		return fmt.Errorf("failed to approve comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Hide removes one comment from the public read path without deleting it.
func (s *CommentStore) Hide(id uint) error {
	res := s.db.Model(&models.Comment{}).Where("id = ?", id).Update("approved", false)
	if res.Error != nil {
		return fmt.Errorf("failed to hide comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes one comment permanently. Children are not cascaded:
// orphaned replies keep their dangling parent_id and stay addressable.
func (s *CommentStore) Delete(id uint) error {
	res := s.db.Delete(&models.Comment{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountSince counts comments stored for one ip_hash after the given
// instant. Read fresh on every call so the rate limit stays consistent
// across concurrent handlers, at the cost of one extra query per write.
func (s *CommentStore) CountSince(ipHash string, since time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&models.Comment{}).
		Where("ip_hash = ? AND created_at > ?", ipHash, since).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count recent comments: %w", err)
	}
	return count, nil
}
