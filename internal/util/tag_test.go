package util

import (
	"reflect"
	"testing"
)

func TestCleanTagKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "archives prefix",
			input:    "archives.tag foo",
			expected: "foo",
		},
		{
			name:     "blog posts prefix",
			input:    "blog posts.tag bar",
			expected: "bar",
		},
		{
			name:     "no prefix",
			input:    "plain",
			expected: "plain",
		},
		{
			name:     "prefix-like but not exact",
			input:    "archives.tags foo",
			expected: "archives.tags foo",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "prefix with multiword key",
			input:    "blog posts.tag web development",
			expected: "web development",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanTagKey(tt.input)
			if got != tt.expected {
				t.Errorf("CleanTagKey(%q) = %q, want %q", tt.input, got, tt.expected)
			}
			// Idempotent: applying twice equals applying once.
			if again := CleanTagKey(got); again != got {
				t.Errorf("CleanTagKey not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestCleanTagKeys(t *testing.T) {
	got := CleanTagKeys([]string{"archives.tag foo", "plain", "blog posts.tag ", "  "})
	want := []string{"foo", "plain"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CleanTagKeys = %v, want %v", got, want)
	}
}

func TestExtractYouTubeID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url with params", "https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"shorts url", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"not a video url", "https://example.com/watch?v=dQw4w9WgXcQ", ""},
		{"garbage", "not a url", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractYouTubeID(tt.input); got != tt.expected {
				t.Errorf("ExtractYouTubeID(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestYouTubeURLBuilders(t *testing.T) {
	id := "dQw4w9WgXcQ"
	if got := YouTubeThumbnailURL(id); got != "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg" {
		t.Errorf("thumbnail url = %q", got)
	}
	if got := YouTubeEmbedURL(id); got != "https://www.youtube.com/embed/dQw4w9WgXcQ" {
		t.Errorf("embed url = %q", got)
	}
	if got := YouTubeWatchURL(id); got != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("watch url = %q", got)
	}
}
