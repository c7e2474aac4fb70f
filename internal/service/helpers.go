package service

import (
	"errors"
	"fmt"
	"strings"

	"Content_Service/internal/pkg"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pageBounds turns 1-based page/size into offset/limit.
func pageBounds(page, size int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > maxPageSize {
		size = defaultPageSize
	}
	return (page - 1) * size, size
}

// notFound names the missing entity while keeping the ErrNotFound class.
func notFound(kind, id string, err error) error {
	if errors.Is(err, pkg.ErrNotFound) {
		return fmt.Errorf("%s %s: %w", kind, id, pkg.ErrNotFound)
	}
	return err
}

func emptyToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
