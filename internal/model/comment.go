package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a post comment; ParentID set means it is a reply.
type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	PostID    string    `gorm:"size:36;not null;index" json:"post_id"`
	ParentID  *string   `gorm:"size:36;index" json:"parent_id"`
	UserID    string    `gorm:"size:36;not null" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Replies   []Comment `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
	Likes     []Like    `gorm:"foreignKey:CommentID" json:"likes,omitempty"`
}

func (Comment) TableName() string { return "comments" }

func (c *Comment) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
