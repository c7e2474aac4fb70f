package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Community struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:64;not null" json:"name"`
	NameKey     string    `gorm:"uniqueIndex:uk_communities_name_key;size:64;not null" json:"-"`
	Description *string   `gorm:"type:text" json:"description"`
	UserID      string    `gorm:"size:36;not null;index" json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Community) TableName() string { return "communities" }

// BeforeCreate assigns a UUID when the caller did not and folds the name key.
func (c *Community) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.NameKey = FoldKey(c.Name)
	return nil
}
