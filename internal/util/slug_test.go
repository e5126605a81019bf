// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Hello World", "hello-world"},
		{"unicode transliteration", "Café au Lait", "cafe-au-lait"},
		{"special characters", "Hello, World! (2026)", "hello-world-2026"},
		{"multiple spaces", "too   many   spaces", "too-many-spaces"},
		{"leading and trailing junk", "  --Trimmed--  ", "trimmed"},
		{"indonesian title", "Belajar Pemrograman untuk Pemula", "belajar-pemrograman-untuk-pemula"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		slug  string
		valid bool
	}{
		{"hello-world", true},
		{"abc123", true},
		{"a", true},
		{"", false},
		{"-leading", false},
		{"trailing-", false},
		{"double--hyphen", false},
		{"Upper-Case", false},
		{"under_score", false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			if got := IsValidSlug(tt.slug); got != tt.valid {
				t.Errorf("IsValidSlug(%q) = %v, want %v", tt.slug, got, tt.valid)
			}
		})
	}
}
