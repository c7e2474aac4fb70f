package database

import (
	"context"

	"gorm.io/gorm"

	"Content_Service/internal/model"
	"Content_Service/internal/pkg"
)

type CommunityRepository struct {
	DB *gorm.DB
}

func (r *CommunityRepository) Create(ctx context.Context, c *model.Community) error {
	return translate(r.DB.WithContext(ctx).Create(c).Error)
}

func (r *CommunityRepository) FindByID(ctx context.Context, id string) (*model.Community, error) {
	var community model.Community
	if err := r.DB.WithContext(ctx).First(&community, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &community, nil
}

// FindByName matches the name case-insensitively through the folded key.
func (r *CommunityRepository) FindByName(ctx context.Context, name string) (*model.Community, error) {
	var community model.Community
	err := r.DB.WithContext(ctx).
		Where("name_key = ?", model.FoldKey(name)).
		First(&community).Error
	if err != nil {
		return nil, translate(err)
	}
	return &community, nil
}

func (r *CommunityRepository) List(ctx context.Context, offset, limit int) ([]model.Community, error) {
	offset, limit = page(offset, limit)
	var list []model.Community
	err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}

// Delete removes the community together with its events, posts, comments and likes.
func (r *CommunityRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&model.Community{}).Where("id = ?", id).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return pkg.ErrNotFound
		}

		var postIDs []string
		if err := tx.Model(&model.Post{}).Where("community_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := deletePostsTx(tx, postIDs); err != nil {
				return err
			}
		}
		if err := tx.Where("community_id = ?", id).Delete(&model.Event{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", id).Delete(&model.Community{}).Error; err != nil {
			return err
		}
		return insertOutbox(tx, EventCommunityDeleted, id, map[string]any{"posts": len(postIDs)})
	})
}
