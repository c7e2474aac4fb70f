package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"Content_Service/internal/model"
	"Content_Service/internal/pkg"
	"Content_Service/internal/repository/database"
)

type PostService struct {
	repo        *database.PostRepository
	communities *database.CommunityRepository
	media       *MediaService
}

type CreatePostInput struct {
	CommunityID string
	UserID      string
	Title       string
	Category    string
	Description string
	MediaURL    *string
	// Media, when set, is uploaded and its URL replaces MediaURL.
	Media io.Reader
}

// UpdatePostInput replaces title, category and description. A nil MediaURL
// leaves the media untouched, an empty one clears it.
type UpdatePostInput struct {
	Title       string
	Category    string
	Description string
	MediaURL    *string
}

func NewPostService(repo *database.PostRepository, communities *database.CommunityRepository, media *MediaService) *PostService {
	return &PostService{repo: repo, communities: communities, media: media}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*model.Post, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title required", pkg.ErrInvalid)
	}

	if _, err := s.communities.FindByID(ctx, in.CommunityID); err != nil {
		return nil, notFound("community", in.CommunityID, err)
	}
	if err := s.ensureTitleFree(ctx, title, ""); err != nil {
		return nil, err
	}

	post := &model.Post{
		CommunityID: in.CommunityID,
		UserID:      in.UserID,
		Title:       title,
		Category:    strings.TrimSpace(in.Category),
		Description: in.Description,
		MediaURL:    emptyToNil(in.MediaURL),
	}

	var uploaded *Media
	if in.Media != nil {
		if s.media == nil {
			return nil, fmt.Errorf("%w: media storage not configured", pkg.ErrUnavailable)
		}
		m, err := s.media.UploadImage(ctx, in.Media)
		if err != nil {
			return nil, err
		}
		uploaded = m
		post.MediaURL = &m.URL
	}

	if err := s.repo.Create(ctx, post); err != nil {
		s.media.Discard(ctx, uploaded)
		if errors.Is(err, pkg.ErrConflict) {
			return nil, fmt.Errorf("%w: post %q already exists", pkg.ErrConflict, title)
		}
		return nil, err
	}
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, id string) (*model.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound("post", id, err)
	}
	return post, nil
}

// GetPostByTitle looks a post up by title, ignoring case.
func (s *PostService) GetPostByTitle(ctx context.Context, title string) (*model.Post, error) {
	post, err := s.repo.FindByTitle(ctx, strings.TrimSpace(title))
	if err != nil {
		return nil, notFound("post", title, err)
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, page, size int) ([]model.Post, error) {
	offset, limit := pageBounds(page, size)
	return s.repo.List(ctx, offset, limit)
}

func (s *PostService) SearchPosts(ctx context.Context, query string, page, size int) ([]model.Post, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query required", pkg.ErrInvalid)
	}
	offset, limit := pageBounds(page, size)
	return s.repo.Search(ctx, query, offset, limit)
}

// UpdatePost rewrites the editable fields. When actor is set it must be the author.
func (s *PostService) UpdatePost(ctx context.Context, actor, id string, in UpdatePostInput) (*model.Post, error) {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor != "" && post.UserID != actor {
		return nil, fmt.Errorf("%w: only the author can edit a post", pkg.ErrForbidden)
	}

	title := strings.TrimSpace(in.Title)
	if model.FoldKey(title) != post.TitleKey {
		if err := s.ensureTitleFree(ctx, title, id); err != nil {
			return nil, err
		}
	}

	fields := map[string]any{
		"title":       title,
		"category":    strings.TrimSpace(in.Category),
		"description": in.Description,
	}
	if in.MediaURL != nil {
		fields["media_url"] = emptyToNil(in.MediaURL)
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.GetPost(ctx, id)
}

// DeletePost removes the post with its comments and likes.
func (s *PostService) DeletePost(ctx context.Context, actor, id string) error {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound("post", id, err)
	}
	if actor != "" && post.UserID != actor {
		return fmt.Errorf("%w: only the author can delete a post", pkg.ErrForbidden)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound("post", id, err)
	}
	return nil
}

func (s *PostService) ensureTitleFree(ctx context.Context, title, excludeID string) error {
	taken, err := s.repo.TitleTaken(ctx, title, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: post %q already exists", pkg.ErrConflict, title)
	}
	return nil
}
