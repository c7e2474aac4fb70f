package database

import (
	"context"
	"time"

	"gorm.io/gorm"

	"Content_Service/internal/model"
	"Content_Service/internal/pkg"
)

type EventRepository struct {
	DB *gorm.DB
}

// EventFilter narrows event listings; zero values mean "any".
type EventFilter struct {
	CommunityID string
	StartsFrom  *time.Time
}

func (r *EventRepository) Create(ctx context.Context, e *model.Event) error {
	return translate(r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		return insertOutbox(tx, EventEventCreated, e.ID, map[string]any{
			"community_id": e.CommunityID,
			"starts_at":    e.StartsAt.UTC().Format(time.RFC3339),
		})
	}))
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*model.Event, error) {
	var e model.Event
	if err := r.DB.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

// List returns events ordered by start time.
func (r *EventRepository) List(ctx context.Context, f EventFilter, offset, limit int) ([]model.Event, error) {
	offset, limit = page(offset, limit)
	q := r.DB.WithContext(ctx).Model(&model.Event{})
	if f.CommunityID != "" {
		q = q.Where("community_id = ?", f.CommunityID)
	}
	if f.StartsFrom != nil {
		q = q.Where("starts_at >= ?", *f.StartsFrom)
	}
	var list []model.Event
	err := q.Order("starts_at ASC").Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}

// Update writes the given columns; callers check existence first.
func (r *EventRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	return translate(r.DB.WithContext(ctx).Model(&model.Event{}).Where("id = ?", id).Updates(fields).Error)
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.Event{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return pkg.ErrNotFound
	}
	return nil
}
