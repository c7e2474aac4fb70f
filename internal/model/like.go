package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like targets exactly one of a post or a comment.
type Like struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:uk_likes_user_post;uniqueIndex:uk_likes_user_comment" json:"user_id"`
	PostID    *string   `gorm:"size:36;index;uniqueIndex:uk_likes_user_post" json:"post_id,omitempty"`
	CommentID *string   `gorm:"size:36;index;uniqueIndex:uk_likes_user_comment" json:"comment_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}

func (l *Like) BeforeCreate(*gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
