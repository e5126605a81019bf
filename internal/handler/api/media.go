// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/xwalt19/webblog-sub001/internal/middleware"
	"github.com/xwalt19/webblog-sub001/internal/model"
	"github.com/xwalt19/webblog-sub001/internal/service"
)

// UploadMedia handles POST /api/v1/admin/media.
// Generic multipart upload for post images, partner logos, team photos and
// archive PDFs. The response carries the stored URLs to embed in a later
// entity save.
func (h *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(service.MaxUploadSize); err != nil {
		WriteBadRequest(w, "Failed to parse upload", nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteBadRequest(w, "Missing file field", nil)
		return
	}
	defer file.Close()

	result, err := h.media.Upload(file, header, service.MaxUploadSize)
	if err != nil {
		WriteBadRequest(w, err.Error(), nil)
		return
	}

	slog.Info("media uploaded",
		"category", model.EventCategoryMedia,
		"url", result.URL,
		"mime_type", result.MimeType,
		"size", result.Size,
		"user_id", middleware.GetUserID(r),
	)

	WriteCreated(w, result)
}

// DeleteMediaRequest names the stored file to remove.
type DeleteMediaRequest struct {
	URL string `json:"url"`
}

// DeleteMedia handles POST /api/v1/admin/media/delete.
// Only URLs under /uploads/ are accepted.
func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	var req DeleteMediaRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !strings.HasPrefix(req.URL, "/uploads/") {
		WriteBadRequest(w, "Not an uploaded file URL", nil)
		return
	}

	if err := h.media.Delete(req.URL); err != nil {
		slog.Warn("failed to delete media", "error", err, "url", req.URL)
		WriteInternalError(w, "Failed to delete media")
		return
	}
	WriteSuccess(w, map[string]bool{"deleted": true}, nil)
}
