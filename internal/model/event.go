package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	CommunityID string     `gorm:"size:36;not null;index:idx_events_community_start,priority:1" json:"community_id"`
	UserID      string     `gorm:"size:36;not null" json:"user_id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	Location    *string    `gorm:"size:255" json:"location"`
	StartsAt    time.Time  `gorm:"not null;index:idx_events_community_start,priority:2" json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Event) TableName() string { return "events" }

func (e *Event) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
