// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Supported image variant types
const (
	VariantThumbnail = "thumbnail"
	VariantMedium    = "medium"
)

// Supported MIME types
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
	MimeTypePDF  = "application/pdf"
)

// ImageVariantConfig defines settings for generating image variants.
type ImageVariantConfig struct {
	Width   int
	Height  int
	Quality int
	Crop    bool // true = crop to exact size, false = fit within bounds
}

// ImageVariants defines the default image variant configurations.
var ImageVariants = map[string]ImageVariantConfig{
	VariantThumbnail: {Width: 320, Height: 180, Quality: 80, Crop: true},
	VariantMedium:    {Width: 1280, Height: 720, Quality: 85, Crop: false},
}

// SupportedImageTypes returns the image MIME types accepted for upload.
func SupportedImageTypes() []string {
	return []string{MimeTypeJPEG, MimeTypePNG, MimeTypeGIF, MimeTypeWebP}
}

// IsImageMimeType returns true for a processable image MIME type.
func IsImageMimeType(mimeType string) bool {
	switch mimeType {
	case MimeTypeJPEG, MimeTypePNG, MimeTypeGIF, MimeTypeWebP:
		return true
	default:
		return false
	}
}

// IsSupportedMimeType checks if a MIME type is accepted for upload.
// PDFs are allowed for archive attachments alongside images.
func IsSupportedMimeType(mimeType string) bool {
	return IsImageMimeType(mimeType) || mimeType == MimeTypePDF
}
