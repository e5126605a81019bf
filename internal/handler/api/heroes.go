// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/xwalt19/webblog-sub001/internal/middleware"
	"github.com/xwalt19/webblog-sub001/internal/model"
	"github.com/xwalt19/webblog-sub001/internal/realtime"
	"github.com/xwalt19/webblog-sub001/internal/service"
)

// ListHeroImages handles GET /api/v1/hero-images.
// Slides come back in carousel order.
func (h *Handler) ListHeroImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.queries.ListHeroImages(r.Context())
	if err != nil {
		slog.Error("failed to list hero images", "error", err)
		WriteInternalError(w, "Failed to list hero images")
		return
	}
	if images == nil {
		images = []model.HeroImage{}
	}
	WriteSuccess(w, images, nil)
}

// SubscribeHeroImages handles GET /api/v1/hero-images/subscribe.
// An SSE stream that emits a coalesced change signal whenever the slide
// set is mutated; clients refetch the list on each event.
func (h *Handler) SubscribeHeroImages() http.HandlerFunc {
	return realtime.SSEHandler(h.hub, realtime.TopicHeroImages)
}

// publishHeroChange notifies live subscribers of a slide mutation.
func (h *Handler) publishHeroChange(action string, id int64) {
	h.hub.Publish(realtime.Change{
		Topic:  realtime.TopicHeroImages,
		Action: action,
		ID:     id,
	})
}

// UploadHeroImage handles POST /api/v1/admin/hero-images.
// Multipart upload; the new slide is appended to the end of the carousel.
func (h *Handler) UploadHeroImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(service.MaxHeroUploadSize); err != nil {
		WriteBadRequest(w, "Failed to parse upload", nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteBadRequest(w, "Missing file field", nil)
		return
	}
	defer file.Close()

	result, err := h.media.Upload(file, header, service.MaxHeroUploadSize)
	if err != nil {
		// Oversized and unsupported files are client errors; the slide
		// list stays untouched.
		WriteBadRequest(w, err.Error(), nil)
		return
	}
	if !model.IsImageMimeType(result.MimeType) {
		_ = h.media.Delete(result.URL)
		WriteBadRequest(w, "Hero images must be image files", nil)
		return
	}

	image, err := h.queries.CreateHeroImage(ctx, result.URL, time.Now().UTC())
	if err != nil {
		slog.Error("failed to create hero image", "error", err)
		_ = h.media.Delete(result.URL)
		WriteInternalError(w, "Failed to create hero image")
		return
	}

	h.publishHeroChange("insert", image.ID)
	slog.Info("hero image uploaded",
		"category", model.EventCategoryMedia,
		"hero_id", image.ID,
		"user_id", middleware.GetUserID(r),
	)

	WriteCreated(w, image)
}

// ReorderHeroImagesRequest carries the full slide ordering.
type ReorderHeroImagesRequest struct {
	IDs []int64 `json:"ids"`
}

// ReorderHeroImages handles PUT /api/v1/admin/hero-images/order.
// The request lists every slide ID in the desired order; order_index is
// rewritten densely from 0.
func (h *Handler) ReorderHeroImages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ReorderHeroImagesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.IDs) == 0 {
		WriteBadRequest(w, "ids is required", nil)
		return
	}

	if err := h.queries.ReorderHeroImages(ctx, req.IDs); err != nil {
		slog.Error("failed to reorder hero images", "error", err)
		WriteInternalError(w, "Failed to reorder hero images")
		return
	}

	h.publishHeroChange("update", 0)

	images, err := h.queries.ListHeroImages(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to list hero images")
		return
	}
	WriteSuccess(w, images, nil)
}

// DeleteHeroImage handles DELETE /api/v1/admin/hero-images/{id}.
// Remaining slides are re-sequenced; the uploaded file is removed.
func (h *Handler) DeleteHeroImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	image, ok := requireEntityByID(w, r, "hero image", func(id int64) (model.HeroImage, error) {
		return h.queries.GetHeroImage(ctx, id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteHeroImage(ctx, image.ID); err != nil {
		slog.Error("failed to delete hero image", "error", err, "hero_id", image.ID)
		WriteInternalError(w, "Failed to delete hero image")
		return
	}

	if strings.HasPrefix(image.ImageURL, "/uploads/") {
		if err := h.media.Delete(image.ImageURL); err != nil {
			slog.Warn("failed to delete hero image file", "error", err, "url", image.ImageURL)
		}
	}

	h.publishHeroChange("delete", image.ID)
	slog.Info("hero image deleted",
		"category", model.EventCategoryMedia,
		"hero_id", image.ID,
		"user_id", middleware.GetUserID(r),
	)

	WriteSuccess(w, map[string]bool{"deleted": true}, nil)
}
