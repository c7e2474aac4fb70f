package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"Content_Service/internal/model"
	"Content_Service/internal/pkg"
	"Content_Service/internal/repository/database"
)

const maxCommentGraphemes = 10000

type CommentService struct {
	repo  *database.CommentRepository
	posts *database.PostRepository
}

type AddCommentInput struct {
	PostID   string
	UserID   string
	ParentID *string
	Content  string
}

func NewCommentService(repo *database.CommentRepository, posts *database.PostRepository) *CommentService {
	return &CommentService{repo: repo, posts: posts}
}

// AddComment attaches a comment to a post, or a reply to a comment of the same post.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*model.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment content is required", pkg.ErrInvalid)
	}
	if uniseg.GraphemeClusterCount(content) > maxCommentGraphemes {
		return nil, fmt.Errorf("%w: comment content exceeds %d characters", pkg.ErrInvalid, maxCommentGraphemes)
	}

	ok, err := s.posts.Exists(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("post %s: %w", in.PostID, pkg.ErrNotFound)
	}

	parentID := emptyToNil(in.ParentID)
	if parentID != nil {
		parent, err := s.repo.FindByID(ctx, *parentID)
		if err != nil {
			return nil, notFound("parent comment", *parentID, err)
		}
		if parent.PostID != in.PostID {
			return nil, fmt.Errorf("%w: parent comment belongs to another post", pkg.ErrInvalid)
		}
	}

	comment := &model.Comment{
		PostID:   in.PostID,
		ParentID: parentID,
		UserID:   in.UserID,
		Content:  content,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns the post's comments oldest first with replies and likes.
func (s *CommentService) ListComments(ctx context.Context, postID string) ([]model.Comment, error) {
	ok, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("post %s: %w", postID, pkg.ErrNotFound)
	}
	return s.repo.ListByPost(ctx, postID)
}

// DeleteComment removes the comment with its replies and likes and returns how
// many comments went away.
func (s *CommentService) DeleteComment(ctx context.Context, actor, id string) (int, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return 0, notFound("comment", id, err)
	}
	if actor != "" && c.UserID != actor {
		return 0, fmt.Errorf("%w: only the author can delete a comment", pkg.ErrForbidden)
	}
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, notFound("comment", id, err)
	}
	return n, nil
}
