package model

import "time"

// Activity event actions.
const (
	ActionPostCreated = "post.created"
	ActionPostUpdated = "post.updated"
	ActionPostDeleted = "post.deleted"
)

// Activity is one audit-trail row, persisted asynchronously from the
// post lifecycle event stream.
type Activity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Action    string    `gorm:"size:32;not null;index" json:"action"`
	PostTitle string    `gorm:"size:255" json:"post_title"`
	CreatedAt time.Time `json:"created_at"`
}
