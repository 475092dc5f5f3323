package models

import (
	"time"
)

// Comment is the single persisted entity: one reader comment on a blog
// post. Posts live in the static site and are referenced by slug only,
// there is no posts table. The column layout is the durable on-disk
// contract shared with the dashboard and must not change shape.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostSlug  string    `gorm:"size:255;not null;index" json:"post_slug"`
	ParentID  *uint     `gorm:"index" json:"parent_id"` // Nullable for top-level comments
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     *string   `json:"email"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	Approved  bool      `gorm:"not null;default:true" json:"approved"`
	IPHash    string    `gorm:"size:16;index" json:"ip_hash"`
}

// PublicComment is the read-side view served to anonymous visitors. Email
// and ip_hash never leave the admin surface.
type PublicComment struct {
	ID        uint      `json:"id"`
	PostSlug  string    `json:"post_slug"`
	ParentID  *uint     `json:"parent_id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Comment) Public() PublicComment {
	return PublicComment{
		ID:        c.ID,
		PostSlug:  c.PostSlug,
		ParentID:  c.ParentID,
		Name:      c.Name,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}
