package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Post struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	CommunityID string     `gorm:"size:36;not null;index:idx_posts_community_time,priority:1" json:"community_id"`
	UserID      string     `gorm:"size:36;not null;index" json:"user_id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	TitleKey    string     `gorm:"size:200;not null;uniqueIndex:uk_posts_title_key" json:"-"`
	Category    string     `gorm:"size:50;not null" json:"category"`
	Description string     `gorm:"type:text;not null" json:"description"`
	MediaURL    *string    `gorm:"column:media_url;size:512" json:"media_url"`
	CreatedAt   time.Time  `gorm:"index:idx_posts_community_time,priority:2,sort:desc" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Community   *Community `gorm:"foreignKey:CommunityID" json:"community,omitempty"`
	Comments    []Comment  `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	Likes       []Like     `gorm:"foreignKey:PostID" json:"likes,omitempty"`
}

func (Post) TableName() string { return "posts" }

func (p *Post) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.TitleKey = FoldKey(p.Title)
	return nil
}
