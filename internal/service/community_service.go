package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"Content_Service/internal/model"
	"Content_Service/internal/pkg"
	"Content_Service/internal/repository/database"
)

type CommunityService struct {
	repo   *database.CommunityRepository
	posts  *database.PostRepository
	events *database.EventRepository
}

type CreateCommunityInput struct {
	UserID      string
	Name        string
	Description *string
}

func NewCommunityService(repo *database.CommunityRepository, posts *database.PostRepository, events *database.EventRepository) *CommunityService {
	return &CommunityService{repo: repo, posts: posts, events: events}
}

// CreateCommunity rejects names already used by another community, ignoring case.
func (s *CommunityService) CreateCommunity(ctx context.Context, in CreateCommunityInput) (*model.Community, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: community name required", pkg.ErrInvalid)
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil && !errors.Is(err, pkg.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: community %q already exists", pkg.ErrConflict, name)
	}

	community := &model.Community{
		Name:        name,
		Description: emptyToNil(in.Description),
		UserID:      in.UserID,
	}
	if err := s.repo.Create(ctx, community); err != nil {
		if errors.Is(err, pkg.ErrConflict) {
			return nil, fmt.Errorf("%w: community %q already exists", pkg.ErrConflict, name)
		}
		return nil, err
	}
	return community, nil
}

func (s *CommunityService) GetCommunity(ctx context.Context, id string) (*model.Community, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound("community", id, err)
	}
	return c, nil
}

func (s *CommunityService) ListCommunities(ctx context.Context, page, size int) ([]model.Community, error) {
	offset, limit := pageBounds(page, size)
	return s.repo.List(ctx, offset, limit)
}

// DeleteCommunity removes the community and everything posted in it. When actor
// is set only the creator may delete.
func (s *CommunityService) DeleteCommunity(ctx context.Context, actor, id string) error {
	c, err := s.GetCommunity(ctx, id)
	if err != nil {
		return err
	}
	if actor != "" && c.UserID != actor {
		return fmt.Errorf("%w: only the creator can delete a community", pkg.ErrForbidden)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound("community", id, err)
	}
	return nil
}

// ListCommunityPosts returns the community's posts newest first.
func (s *CommunityService) ListCommunityPosts(ctx context.Context, id string) ([]model.Post, error) {
	if _, err := s.GetCommunity(ctx, id); err != nil {
		return nil, err
	}
	return s.posts.ListByCommunity(ctx, id)
}

// ListCommunityEvents returns the community's events by start time.
func (s *CommunityService) ListCommunityEvents(ctx context.Context, id string, page, size int) ([]model.Event, error) {
	if _, err := s.GetCommunity(ctx, id); err != nil {
		return nil, err
	}
	offset, limit := pageBounds(page, size)
	return s.events.List(ctx, database.EventFilter{CommunityID: id}, offset, limit)
}
