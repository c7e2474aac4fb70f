package database

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"Content_Service/internal/model"
)

// Outbox event types.
const (
	EventPostCreated      = "post.created"
	EventPostDeleted      = "post.deleted"
	EventCommentCreated   = "comment.created"
	EventCommentDeleted   = "comment.deleted"
	EventLikeToggled      = "like.toggled"
	EventEventCreated     = "event.created"
	EventCommunityDeleted = "community.deleted"
)

type OutboxRepository struct {
	DB *gorm.DB
}

// insertOutbox writes an event row inside the caller's transaction.
func insertOutbox(tx *gorm.DB, event, subjectID string, fields map[string]any) error {
	body := map[string]any{
		"event":      event,
		"subject_id": subjectID,
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
	}
	for k, v := range fields {
		body[k] = v
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return tx.Create(&model.ContentOutbox{
		EventType: event,
		SubjectID: subjectID,
		Payload:   string(payload),
		Status:    model.OutboxPending,
	}).Error
}

// ListPending returns up to batchSize pending rows, oldest first.
func (r *OutboxRepository) ListPending(ctx context.Context, batchSize int) ([]model.ContentOutbox, error) {
	var list []model.ContentOutbox
	if err := r.DB.WithContext(ctx).
		Where("status = ?", model.OutboxPending).
		Order("created_at ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// MarkFailed flags a row whose delivery failed and bumps its retry counter.
func (r *OutboxRepository) MarkFailed(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Model(&model.ContentOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": model.OutboxFailed, "retry": gorm.Expr("retry + 1")}).Error
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Model(&model.ContentOutbox{}).Where("id = ?", id).
		Update("status", model.OutboxSent).Error
}

// Requeue moves failed rows with fewer than maxRetry attempts back to pending.
func (r *OutboxRepository) Requeue(ctx context.Context, maxRetry int) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.ContentOutbox{}).
		Where("status = ? AND retry < ?", model.OutboxFailed, maxRetry).
		Update("status", model.OutboxPending)
	return res.RowsAffected, res.Error
}
