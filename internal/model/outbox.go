package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OutboxPending = 0
	OutboxSent    = 1
	OutboxFailed  = 2
)

// ContentOutbox records domain events written in the same transaction as the change.
type ContentOutbox struct {
	ID        string `gorm:"primaryKey;size:36"`
	EventType string `gorm:"size:32;not null"` // post.created / comment.deleted / like.toggled ...
	SubjectID string `gorm:"size:36;not null"`
	Payload   string `gorm:"type:text;not null"`
	Status    int8   `gorm:"not null;default:0;index"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ContentOutbox) TableName() string { return "content_outbox" }

func (o *ContentOutbox) BeforeCreate(*gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
