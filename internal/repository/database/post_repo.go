package database

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"Content_Service/internal/model"
)

type PostRepository struct {
	DB *gorm.DB
}

// withRelations preloads what post reads return: community, comments (oldest first) and likes.
func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Community").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Likes")
}

// Create inserts the post and its outbox row in one transaction.
func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return translate(r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return insertOutbox(tx, EventPostCreated, post.ID, map[string]any{
			"community_id": post.CommunityID,
			"user_id":      post.UserID,
		})
	}))
}

// FindByID loads a post with community, comments and likes.
func (r *PostRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	if err := withRelations(r.DB.WithContext(ctx)).First(&post, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// FindByTitle matches the title case-insensitively through the folded key.
func (r *PostRepository) FindByTitle(ctx context.Context, title string) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).
		Where("title_key = ?", model.FoldKey(title)).
		First(&post).Error
	if err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// TitleTaken reports whether another post already uses title (case-insensitive).
func (r *PostRepository) TitleTaken(ctx context.Context, title, excludeID string) (bool, error) {
	var n int64
	q := r.DB.WithContext(ctx).Model(&model.Post{}).Where("title_key = ?", model.FoldKey(title))
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// List returns all posts newest first.
func (r *PostRepository) List(ctx context.Context, offset, limit int) ([]model.Post, error) {
	offset, limit = page(offset, limit)
	var list []model.Post
	err := withRelations(r.DB.WithContext(ctx)).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}

// ListByCommunity returns a community's posts newest first with comments and likes.
func (r *PostRepository) ListByCommunity(ctx context.Context, communityID string) ([]model.Post, error) {
	var list []model.Post
	err := r.DB.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Likes").
		Where("community_id = ?", communityID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// Search matches query against title or description, ignoring case.
func (r *PostRepository) Search(ctx context.Context, query string, offset, limit int) ([]model.Post, error) {
	offset, limit = page(offset, limit)
	pattern := likePattern(strings.ToLower(query))
	var list []model.Post
	err := withRelations(r.DB.WithContext(ctx)).
		Where("LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!'", pattern, pattern).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}

// Update writes the given columns, refolding title_key when the title changes.
// Callers check existence first: MySQL reports zero affected rows when the
// values are unchanged.
func (r *PostRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	if title, ok := fields["title"].(string); ok {
		fields["title_key"] = model.FoldKey(title)
	}
	return translate(r.DB.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Updates(fields).Error)
}

// Delete removes the post after its likes and comments.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post model.Post
		if err := tx.Select("id", "community_id").First(&post, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		if err := deletePostsTx(tx, []string{id}); err != nil {
			return err
		}
		return insertOutbox(tx, EventPostDeleted, id, map[string]any{"community_id": post.CommunityID})
	})
}

// deletePostsTx deletes likes on the posts' comments, likes on the posts, the
// comments and finally the posts.
func deletePostsTx(tx *gorm.DB, postIDs []string) error {
	var commentIDs []string
	if err := tx.Model(&model.Comment{}).Where("post_id IN ?", postIDs).Pluck("id", &commentIDs).Error; err != nil {
		return err
	}
	if len(commentIDs) > 0 {
		if err := tx.Where("comment_id IN ?", commentIDs).Delete(&model.Like{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("post_id IN ?", postIDs).Delete(&model.Like{}).Error; err != nil {
		return err
	}
	if err := tx.Where("post_id IN ?", postIDs).Delete(&model.Comment{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", postIDs).Delete(&model.Post{}).Error
}
