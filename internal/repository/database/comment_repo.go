package database

import (
	"context"

	"gorm.io/gorm"

	"Content_Service/internal/model"
)

type CommentRepository struct {
	DB *gorm.DB
}

func (r *CommentRepository) Create(ctx context.Context, c *model.Comment) error {
	return translate(r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		return insertOutbox(tx, EventCommentCreated, c.ID, map[string]any{
			"post_id":   c.PostID,
			"parent_id": c.ParentID,
			"user_id":   c.UserID,
		})
	}))
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	var c model.Comment
	if err := r.DB.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *CommentRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// ListByPost returns every comment of the post oldest first, each with its
// direct replies and likes.
func (r *CommentRepository) ListByPost(ctx context.Context, postID string) ([]model.Comment, error) {
	var list []model.Comment
	err := r.DB.WithContext(ctx).
		Preload("Replies", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Likes").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

// Delete removes the comment, its reply subtree and every like on them.
// It returns the number of comments removed.
func (r *CommentRepository) Delete(ctx context.Context, id string) (int, error) {
	var removed int
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var root model.Comment
		if err := tx.Select("id", "post_id").First(&root, "id = ?", id).Error; err != nil {
			return translate(err)
		}

		ids := []string{root.ID}
		frontier := []string{root.ID}
		for len(frontier) > 0 {
			var children []string
			if err := tx.Model(&model.Comment{}).Where("parent_id IN ?", frontier).Pluck("id", &children).Error; err != nil {
				return err
			}
			ids = append(ids, children...)
			frontier = children
		}

		if err := tx.Where("comment_id IN ?", ids).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		// leaves first so the parent_id constraint never sees a dangling reply
		for i := len(ids) - 1; i >= 0; i-- {
			if err := tx.Where("id = ?", ids[i]).Delete(&model.Comment{}).Error; err != nil {
				return err
			}
		}
		removed = len(ids)
		return insertOutbox(tx, EventCommentDeleted, root.ID, map[string]any{
			"post_id": root.PostID,
			"removed": removed,
		})
	})
	return removed, err
}
