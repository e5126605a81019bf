// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds application services that sit between handlers and
// the store: media uploads and event log recording.
package service

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/xwalt19/webblog-sub001/internal/imaging"
	"github.com/xwalt19/webblog-sub001/internal/model"
)

// Upload limits
const (
	MaxUploadSize     = 20 * 1024 * 1024 // 20MB, archive PDFs included
	MaxHeroUploadSize = 5 * 1024 * 1024  // 5MB for hero carousel slides
	DefaultUploadDir  = "./uploads"
)

// UploadResult describes a stored upload. Entity rows reference these URLs
// directly; there is no separate media table.
type UploadResult struct {
	URL          string
	ThumbnailURL string
	MimeType     string
	Size         int64
	Width        int
	Height       int
}

// MediaService handles media file operations.
type MediaService struct {
	processor *imaging.Processor
	uploadDir string
	logger    *slog.Logger
}

// NewMediaService creates a new media service.
func NewMediaService(uploadDir string, logger *slog.Logger) *MediaService {
	if uploadDir == "" {
		uploadDir = DefaultUploadDir
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MediaService{
		processor: imaging.NewProcessor(uploadDir),
		uploadDir: uploadDir,
		logger:    logger,
	}
}

// Upload validates, processes and stores an uploaded file. maxSize bounds the
// accepted file size; pass MaxHeroUploadSize for hero slides.
func (s *MediaService) Upload(file multipart.File, header *multipart.FileHeader, maxSize int64) (*UploadResult, error) {
	if maxSize <= 0 {
		maxSize = MaxUploadSize
	}
	if header.Size > maxSize {
		return nil, fmt.Errorf("file size exceeds maximum allowed (%d bytes)", maxSize)
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = getMimeTypeFromExtension(header.Filename)
	}
	if !model.IsSupportedMimeType(mimeType) {
		return nil, fmt.Errorf("file type %s is not allowed", mimeType)
	}

	fileUUID := uuid.New().String()
	filename := sanitizeFilename(header.Filename)

	if model.IsImageMimeType(mimeType) {
		processResult, err := s.processor.ProcessImage(file, fileUUID, filename)
		if err != nil {
			return nil, fmt.Errorf("failed to process image: %w", err)
		}

		// Variants are best effort; the original is already stored.
		if _, err := s.processor.CreateAllVariants(processResult.FilePath, fileUUID, filename); err != nil {
			s.logger.Warn("failed to create some image variants", "uuid", fileUUID, "error", err)
		}

		return &UploadResult{
			URL:          s.mediaURL("originals", fileUUID, filename),
			ThumbnailURL: s.mediaURL(model.VariantThumbnail, fileUUID, filename),
			MimeType:     processResult.MimeType,
			Size:         processResult.Size,
			Width:        processResult.Width,
			Height:       processResult.Height,
		}, nil
	}

	// Non-image file (archive PDF): just save it.
	_, size, err := s.saveNonImageFile(file, fileUUID, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &UploadResult{
		URL:      s.mediaURL("originals", fileUUID, filename),
		MimeType: mimeType,
		Size:     size,
	}, nil
}

// Delete removes all stored files belonging to an upload URL.
func (s *MediaService) Delete(url string) error {
	fileUUID := uuidFromMediaURL(url)
	if fileUUID == "" {
		return fmt.Errorf("not a managed upload url: %s", url)
	}
	return s.processor.DeleteMediaFiles(fileUUID)
}

// mediaURL builds the public URL path for a stored file.
func (s *MediaService) mediaURL(variant, fileUUID, filename string) string {
	return fmt.Sprintf("/uploads/%s/%s/%s", variant, fileUUID, filename)
}

// uuidFromMediaURL extracts the upload UUID from a /uploads/... URL.
func uuidFromMediaURL(url string) string {
	parts := strings.Split(strings.TrimPrefix(url, "/"), "/")
	// uploads/<variant>/<uuid>/<filename>
	if len(parts) != 4 || parts[0] != "uploads" {
		return ""
	}
	if _, err := uuid.Parse(parts[2]); err != nil {
		return ""
	}
	return parts[2]
}

// saveNonImageFile saves a non-image file to the uploads directory.
func (s *MediaService) saveNonImageFile(file io.Reader, fileUUID, filename string) (string, int64, error) {
	dir := filepath.Join(s.uploadDir, "originals", fileUUID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create directory: %w", err)
	}

	filePath := filepath.Join(dir, filename)
	out, err := os.Create(filePath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = out.Close() }()

	size, err := io.Copy(out, file)
	if err != nil {
		_ = os.Remove(filePath)
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}

	return filePath, size, nil
}

func sanitizeFilename(filename string) string {
	// Remove path separators
	filename = filepath.Base(filename)

	// Replace problematic characters
	replacer := strings.NewReplacer(
		" ", "-",
		"'", "",
		"\"", "",
		"<", "",
		">", "",
		"&", "",
		"#", "",
		"?", "",
		"%", "",
	)
	filename = replacer.Replace(filename)

	// Ensure we have an extension
	if filepath.Ext(filename) == "" {
		filename += ".bin"
	}

	return filename
}

func getMimeTypeFromExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		return model.MimeTypeJPEG
	case ".png":
		return model.MimeTypePNG
	case ".gif":
		return model.MimeTypeGIF
	case ".webp":
		return model.MimeTypeWebP
	case ".pdf":
		return model.MimeTypePDF
	default:
		return "application/octet-stream"
	}
}
