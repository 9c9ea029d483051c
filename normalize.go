// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package graftcsv

import (
	"fmt"
	"strings"
)

// placeholderColumn is used when a header token sanitizes to nothing.
const placeholderColumn = "column"

// SanitizeColumnName converts a raw header token into a valid SQL column
// name. Every character outside [0-9A-Za-z] becomes an underscore, a
// leading digit gets an underscore prefix, and an empty result is replaced
// by a fixed placeholder.
func SanitizeColumnName(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	for _, r := range name {
		if isAlphanumeric(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}
	s := sb.String()
	if s == "" {
		return placeholderColumn
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "_" + s
	}
	return s
}

// NormalizeHeader sanitizes every header token and resolves collisions by
// appending an incrementing numeric suffix per duplicate, in first-seen
// order. The result has the same length and order as the input.
func NormalizeHeader(header []string) []string {
	cols := make([]string, 0, len(header))
	counts := make(map[string]int, len(header))
	for _, raw := range header {
		col := SanitizeColumnName(raw)
		if n, seen := counts[col]; seen {
			counts[col] = n + 1
			col = fmt.Sprintf("%s_%d", col, n+1)
		} else {
			counts[col] = 0
		}
		cols = append(cols, col)
	}
	return cols
}

func isAlphanumeric(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
