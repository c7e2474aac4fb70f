package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"Content_Service/internal/pkg"
)

// DefaultMaxUploadBytes is the upload limit when none is configured.
const DefaultMaxUploadBytes = 2 << 20

// MediaStore is the external media host.
type MediaStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

// Media is an uploaded object.
type Media struct {
	URL         string `json:"url"`
	Key         string `json:"-"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

type MediaService struct {
	store    MediaStore
	folder   string
	maxBytes int64
	log      *zap.Logger
}

// NewMediaService accepts a nil store; uploads then fail with ErrUnavailable.
func NewMediaService(store MediaStore, folder string, maxBytes int64, log *zap.Logger) *MediaService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if folder == "" {
		folder = "uploads"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &MediaService{store: store, folder: folder, maxBytes: maxBytes, log: log}
}

// MaxBytes is the largest accepted upload.
func (s *MediaService) MaxBytes() int64 { return s.maxBytes }

// UploadImage sniffs r, accepts only image/* content within the size limit and
// stores it under a fresh key.
func (s *MediaService) UploadImage(ctx context.Context, r io.Reader) (*Media, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: no file uploaded", pkg.ErrInvalid)
	}
	if s.store == nil {
		return nil, fmt.Errorf("%w: media storage not configured", pkg.ErrUnavailable)
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no file uploaded", pkg.ErrInvalid)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", pkg.ErrTooLarge, s.maxBytes)
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, fmt.Errorf("%w: only image files are allowed", pkg.ErrInvalid)
	}

	key := path.Join(s.folder, uuid.NewString()+mt.Extension())
	contentType := strings.SplitN(mt.String(), ";", 2)[0]
	url, err := s.store.Upload(ctx, key, contentType, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to upload media: %w", err)
	}
	return &Media{URL: url, Key: key, ContentType: contentType, Size: len(data)}, nil
}

// Discard removes an object whose owning record could not be saved.
func (s *MediaService) Discard(ctx context.Context, m *Media) {
	if s == nil || m == nil || s.store == nil {
		return
	}
	if err := s.store.Delete(ctx, m.Key); err != nil {
		s.log.Warn("discard media failed", zap.String("key", m.Key), zap.Error(err))
	}
}
