package model

import (
	"strings"

	"golang.org/x/text/cases"
)

// FoldKey normalizes a name or title for case-insensitive matching.
// Folding happens here rather than in SQL because SQLite's LOWER only knows ASCII.
func FoldKey(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
