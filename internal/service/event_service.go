package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"Content_Service/internal/model"
	"Content_Service/internal/pkg"
	"Content_Service/internal/repository/database"
)

type EventService struct {
	repo        *database.EventRepository
	communities *database.CommunityRepository
	now         func() time.Time
}

type CreateEventInput struct {
	CommunityID string
	UserID      string
	Title       string
	Description *string
	Location    *string
	StartsAt    time.Time
	EndsAt      *time.Time
}

type UpdateEventInput struct {
	Title       string
	Description *string
	Location    *string
	StartsAt    time.Time
	EndsAt      *time.Time
}

// ListEventsInput filters event listings. Upcoming keeps events that have not started yet.
type ListEventsInput struct {
	CommunityID string
	Upcoming    bool
	Page        int
	Size        int
}

func NewEventService(repo *database.EventRepository, communities *database.CommunityRepository) *EventService {
	return &EventService{repo: repo, communities: communities, now: time.Now}
}

func (s *EventService) CreateEvent(ctx context.Context, in CreateEventInput) (*model.Event, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title required", pkg.ErrInvalid)
	}
	starts, ends, err := eventWindow(in.StartsAt, in.EndsAt)
	if err != nil {
		return nil, err
	}
	if _, err := s.communities.FindByID(ctx, in.CommunityID); err != nil {
		return nil, notFound("community", in.CommunityID, err)
	}

	e := &model.Event{
		CommunityID: in.CommunityID,
		UserID:      in.UserID,
		Title:       title,
		Description: emptyToNil(in.Description),
		Location:    emptyToNil(in.Location),
		StartsAt:    starts,
		EndsAt:      ends,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound("event", id, err)
	}
	return e, nil
}

func (s *EventService) ListEvents(ctx context.Context, in ListEventsInput) ([]model.Event, error) {
	f := database.EventFilter{CommunityID: in.CommunityID}
	if in.Upcoming {
		now := s.now().UTC()
		f.StartsFrom = &now
	}
	offset, limit := pageBounds(in.Page, in.Size)
	return s.repo.List(ctx, f, offset, limit)
}

// UpdateEvent rewrites the event. When actor is set it must be the organizer.
func (s *EventService) UpdateEvent(ctx context.Context, actor, id string, in UpdateEventInput) (*model.Event, error) {
	e, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor != "" && e.UserID != actor {
		return nil, fmt.Errorf("%w: only the organizer can edit an event", pkg.ErrForbidden)
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title required", pkg.ErrInvalid)
	}
	starts, ends, err := eventWindow(in.StartsAt, in.EndsAt)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		"title":       title,
		"description": emptyToNil(in.Description),
		"location":    emptyToNil(in.Location),
		"starts_at":   starts,
		"ends_at":     ends,
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.GetEvent(ctx, id)
}

func (s *EventService) DeleteEvent(ctx context.Context, actor, id string) error {
	e, err := s.GetEvent(ctx, id)
	if err != nil {
		return err
	}
	if actor != "" && e.UserID != actor {
		return fmt.Errorf("%w: only the organizer can delete an event", pkg.ErrForbidden)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound("event", id, err)
	}
	return nil
}

// eventWindow normalizes to UTC and rejects an end before the start.
func eventWindow(starts time.Time, ends *time.Time) (time.Time, *time.Time, error) {
	if starts.IsZero() {
		return time.Time{}, nil, fmt.Errorf("%w: starts_at required", pkg.ErrInvalid)
	}
	starts = starts.UTC()
	if ends == nil {
		return starts, nil, nil
	}
	e := ends.UTC()
	if e.Before(starts) {
		return time.Time{}, nil, fmt.Errorf("%w: ends_at before starts_at", pkg.ErrInvalid)
	}
	return starts, &e, nil
}
