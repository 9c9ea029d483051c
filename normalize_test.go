// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package graftcsv_test

import (
	"testing"

	"github.com/mdhender/graftcsv"
)

// TestSanitizeColumnName tests character substitution on single tokens.
func TestSanitizeColumnName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "name", "name"},
		{"spaces", "first name", "first_name"},
		{"punctuation", "price ($)", "price____"},
		{"leading digit", "2nd_col", "_2nd_col"},
		{"only invalid", "!@#", "column"},
		{"empty", "", "column"},
		{"mixed case kept", "UserID", "UserID"},
		{"unicode replaced", "naïve", "na_ve"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := graftcsv.SanitizeColumnName(tc.in); got != tc.want {
				t.Errorf("SanitizeColumnName(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

// TestNormalizeHeader_Duplicates tests collision suffixing in first-seen order.
func TestNormalizeHeader_Duplicates(t *testing.T) {
	got := graftcsv.NormalizeHeader([]string{"id", "name", "id", "name", "id"})
	want := []string{"id", "name", "id_1", "name_1", "id_2"}

	if len(got) != len(want) {
		t.Fatalf("expected %d columns, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

// TestNormalizeHeader_SanitizedCollisions tests that tokens which collide
// only after sanitization are still deduped.
func TestNormalizeHeader_SanitizedCollisions(t *testing.T) {
	got := graftcsv.NormalizeHeader([]string{"a b", "a-b", "a.b"})
	want := []string{"a_b", "a_b_1", "a_b_2"}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d: got %q, want %q", i, got[i], want[i])
		}
	}

	seen := make(map[string]bool)
	for _, col := range got {
		if seen[col] {
			t.Errorf("duplicate column %q in output", col)
		}
		seen[col] = true
	}
}

// TestNormalizeHeader_AllInvalid tests that a header of unusable tokens
// still yields unique placeholder-based names.
func TestNormalizeHeader_AllInvalid(t *testing.T) {
	got := graftcsv.NormalizeHeader([]string{"!!", "??"})
	want := []string{"column", "column_1"}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

// TestNormalizeHeader_Empty tests the degenerate empty header.
func TestNormalizeHeader_Empty(t *testing.T) {
	if got := graftcsv.NormalizeHeader(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}
