package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"Content_Service/internal/model"
)

// Like subjects.
const (
	SubjectPost    = "post"
	SubjectComment = "comment"
)

type LikeRepository struct {
	DB *gorm.DB
}

// TogglePost likes the post, or removes the like if the user already liked it.
func (r *LikeRepository) TogglePost(ctx context.Context, userID, postID string) (bool, *model.Like, error) {
	return r.toggle(ctx, userID, SubjectPost, postID)
}

// ToggleComment likes the comment, or removes the like if the user already liked it.
func (r *LikeRepository) ToggleComment(ctx context.Context, userID, commentID string) (bool, *model.Like, error) {
	return r.toggle(ctx, userID, SubjectComment, commentID)
}

func (r *LikeRepository) toggle(ctx context.Context, userID, subject, subjectID string) (liked bool, like *model.Like, err error) {
	column := subject + "_id"
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Like
		err := tx.Where("user_id = ? AND "+column+" = ?", userID, subjectID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Where("id = ?", existing.ID).Delete(&model.Like{}).Error; err != nil {
				return err
			}
			liked = false
			like = &existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			created := model.Like{UserID: userID}
			id := subjectID
			if subject == SubjectPost {
				created.PostID = &id
			} else {
				created.CommentID = &id
			}
			if err := tx.Create(&created).Error; err != nil {
				return err
			}
			liked = true
			like = &created
		default:
			return err
		}
		return insertOutbox(tx, EventLikeToggled, subjectID, map[string]any{
			"subject": subject,
			"user_id": userID,
			"liked":   liked,
		})
	})
	if err != nil {
		return false, nil, translate(err)
	}
	return liked, like, nil
}

func (r *LikeRepository) IsLiked(ctx context.Context, userID, subject, subjectID string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&model.Like{}).
		Where("user_id = ? AND "+subject+"_id = ?", userID, subjectID).
		Count(&count).Error
	return count > 0, err
}

// Count returns the number of likes on a post or comment.
func (r *LikeRepository) Count(ctx context.Context, subject, subjectID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&model.Like{}).
		Where(subject+"_id = ?", subjectID).
		Count(&count).Error
	return count, err
}
