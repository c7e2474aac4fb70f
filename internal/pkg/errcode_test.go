package pkg

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"invalid", fmt.Errorf("%w: title required", ErrInvalid), http.StatusBadRequest},
		{"not found", fmt.Errorf("post %q: %w", "x", ErrNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("%w: name taken", ErrConflict), http.StatusConflict},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"too large", ErrTooLarge, http.StatusRequestEntityTooLarge},
		{"unavailable", ErrUnavailable, http.StatusServiceUnavailable},
		{"rate limited", ErrRateLimited, http.StatusTooManyRequests},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}
