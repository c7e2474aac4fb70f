package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"Content_Service/internal/model"
	"Content_Service/internal/pkg"
	"Content_Service/internal/repository/database"
)

// LikeCache caches like counts and guards their rebuild with a short lock.
type LikeCache interface {
	GetLikeCount(ctx context.Context, subject, id string) (int64, bool, error)
	SetLikeCount(ctx context.Context, subject, id string, cnt int64) error
	DeleteCount(ctx context.Context, subject, id string, delay ...time.Duration) error
	Acquire(ctx context.Context, subject, id, token string) (bool, error)
	Release(ctx context.Context, subject, id, token string) error
}

// ToggleResult is the outcome of a like toggle.
type ToggleResult struct {
	Liked bool        `json:"liked"`
	Like  *model.Like `json:"like,omitempty"`
}

// LikeCount is the count payload for a post or comment.
type LikeCount struct {
	PostID    string `json:"post_id,omitempty"`
	CommentID string `json:"comment_id,omitempty"`
	LikeCount int64  `json:"like_count"`
}

type LikeService struct {
	repo     *database.LikeRepository
	posts    *database.PostRepository
	comments *database.CommentRepository
	cache    LikeCache
	log      *zap.Logger
	// rebuildWait is how long a reader that lost the lock waits before re-reading the cache.
	rebuildWait time.Duration
}

// NewLikeService accepts a nil cache; counts then always come from the store.
func NewLikeService(repo *database.LikeRepository, posts *database.PostRepository, comments *database.CommentRepository, cache LikeCache, log *zap.Logger) *LikeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &LikeService{
		repo:        repo,
		posts:       posts,
		comments:    comments,
		cache:       cache,
		log:         log,
		rebuildWait: 50 * time.Millisecond,
	}
}

// LikePost likes the post, or unlikes it if the user already liked it.
func (s *LikeService) LikePost(ctx context.Context, userID, postID string) (*ToggleResult, error) {
	ok, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("post %s: %w", postID, pkg.ErrNotFound)
	}
	liked, like, err := s.repo.TogglePost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, database.SubjectPost, postID)
	return &ToggleResult{Liked: liked, Like: like}, nil
}

// LikeComment likes the comment, or unlikes it if the user already liked it.
func (s *LikeService) LikeComment(ctx context.Context, userID, commentID string) (*ToggleResult, error) {
	ok, err := s.comments.Exists(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("comment %s: %w", commentID, pkg.ErrNotFound)
	}
	liked, like, err := s.repo.ToggleComment(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, database.SubjectComment, commentID)
	return &ToggleResult{Liked: liked, Like: like}, nil
}

func (s *LikeService) PostLikeCount(ctx context.Context, postID string) (*LikeCount, error) {
	ok, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("post %s: %w", postID, pkg.ErrNotFound)
	}
	n, err := s.count(ctx, database.SubjectPost, postID)
	if err != nil {
		return nil, err
	}
	return &LikeCount{PostID: postID, LikeCount: n}, nil
}

func (s *LikeService) CommentLikeCount(ctx context.Context, commentID string) (*LikeCount, error) {
	ok, err := s.comments.Exists(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("comment %s: %w", commentID, pkg.ErrNotFound)
	}
	n, err := s.count(ctx, database.SubjectComment, commentID)
	if err != nil {
		return nil, err
	}
	return &LikeCount{CommentID: commentID, LikeCount: n}, nil
}

// count reads through the cache. On a miss only the lock holder rebuilds from
// the store; others wait briefly and re-read before falling back to the store.
func (s *LikeService) count(ctx context.Context, subject, id string) (int64, error) {
	if s.cache == nil {
		return s.repo.Count(ctx, subject, id)
	}
	if v, ok, err := s.cache.GetLikeCount(ctx, subject, id); err == nil && ok {
		return v, nil
	}

	token := uuid.NewString()
	got, err := s.cache.Acquire(ctx, subject, id, token)
	if err != nil {
		s.log.Warn("like count lock failed", zap.String("subject", subject), zap.String("id", id), zap.Error(err))
	}
	if got {
		defer func() {
			if err := s.cache.Release(ctx, subject, id, token); err != nil {
				s.log.Warn("like count unlock failed", zap.String("subject", subject), zap.String("id", id), zap.Error(err))
			}
		}()
		// second check: another holder may have just rebuilt it
		if v, ok, err := s.cache.GetLikeCount(ctx, subject, id); err == nil && ok {
			return v, nil
		}
		v, err := s.repo.Count(ctx, subject, id)
		if err != nil {
			return 0, err
		}
		_ = s.cache.SetLikeCount(ctx, subject, id, v)
		return v, nil
	}

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-time.After(s.rebuildWait):
	}
	if v, ok, err := s.cache.GetLikeCount(ctx, subject, id); err == nil && ok {
		return v, nil
	}
	return s.repo.Count(ctx, subject, id)
}

func (s *LikeService) invalidate(ctx context.Context, subject, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteCount(ctx, subject, id, 500*time.Millisecond); err != nil {
		s.log.Warn("like count invalidate failed", zap.String("subject", subject), zap.String("id", id), zap.Error(err))
	}
}
