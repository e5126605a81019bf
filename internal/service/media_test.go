package service

import "testing"

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "photo.jpg", "photo.jpg"},
		{"spaces", "my photo.jpg", "my-photo.jpg"},
		{"path traversal", "../../etc/passwd.png", "passwd.png"},
		{"special characters", "a'b\"c<d>e&f#g?h%i.png", "abcdefghi.png"},
		{"no extension", "README", "README.bin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeFilename(tt.input); got != tt.expected {
				t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestGetMimeTypeFromExtension(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"a.jpg", "image/jpeg"},
		{"a.JPEG", "image/jpeg"},
		{"a.png", "image/png"},
		{"a.webp", "image/webp"},
		{"a.pdf", "application/pdf"},
		{"a.exe", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := getMimeTypeFromExtension(tt.filename); got != tt.expected {
				t.Errorf("getMimeTypeFromExtension(%q) = %q, want %q", tt.filename, got, tt.expected)
			}
		})
	}
}

func TestUUIDFromMediaURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			"original",
			"/uploads/originals/6ba7b810-9dad-11d1-80b4-00c04fd430c8/photo.jpg",
			"6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		},
		{
			"thumbnail variant",
			"/uploads/thumbnail/6ba7b810-9dad-11d1-80b4-00c04fd430c8/photo.jpg",
			"6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		},
		{"external url", "https://example.com/photo.jpg", ""},
		{"not a uuid", "/uploads/originals/not-a-uuid/photo.jpg", ""},
		{"too short", "/uploads/photo.jpg", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := uuidFromMediaURL(tt.url); got != tt.expected {
				t.Errorf("uuidFromMediaURL(%q) = %q, want %q", tt.url, got, tt.expected)
			}
		})
	}
}
