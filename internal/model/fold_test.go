package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Gophers", "gophers"},
		{"  Hello Go ", "hello go"},
		{"ÉCOLE news", "école news"},
		{"Ünicode", "ünicode"},
		{"ÅNGSTRÖM", "ångström"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FoldKey(tt.in), tt.in)
	}
	assert.Equal(t, FoldKey("ΣΊΣΥΦΟΣ"), FoldKey("σίσυφος"))
}
