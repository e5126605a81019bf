// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/xwalt19/webblog-sub001/internal/model"
	"github.com/xwalt19/webblog-sub001/internal/store"
	"github.com/xwalt19/webblog-sub001/internal/util"
)

// VideoResponse is a gallery video with derived embed data.
type VideoResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url"`
	VideoURL     string    `json:"video_url"`
	EmbedURL     string    `json:"embed_url,omitempty"`
	PublishedAt  time.Time `json:"published_at"`
	CreatedAt    time.Time `json:"created_at"`
}

func videoToResponse(v model.Video) VideoResponse {
	resp := VideoResponse{
		ID:           v.ID,
		Title:        v.Title,
		Description:  v.Description,
		ThumbnailURL: v.ThumbnailURL,
		VideoURL:     v.VideoURL,
		PublishedAt:  v.PublishedAt,
		CreatedAt:    v.CreatedAt,
	}
	if id := util.ExtractYouTubeID(v.VideoURL); id != "" {
		resp.EmbedURL = util.YouTubeEmbedURL(id)
	}
	return resp
}

// ListVideos handles GET /api/v1/videos, newest-first.
func (h *Handler) ListVideos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := ParsePageParam(r)
	perPage := ParsePerPageParam(r, 12, 50)

	videos, err := h.queries.ListVideos(ctx, int64(perPage), int64((page-1)*perPage))
	if err != nil {
		slog.Error("failed to list videos", "error", err)
		WriteInternalError(w, "Failed to list videos")
		return
	}
	total, err := h.queries.CountVideos(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to list videos")
		return
	}

	responses := make([]VideoResponse, 0, len(videos))
	for _, v := range videos {
		responses = append(responses, videoToResponse(v))
	}
	WriteSuccess(w, responses, newMeta(total, page, perPage))
}

// VideoRequest is the request body for adding a single video manually.
// Bulk import goes through the YouTube channel function instead.
type VideoRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	VideoURL     string     `json:"video_url"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
}

// CreateVideo handles POST /api/v1/admin/videos.
// A second submit with the same URL refreshes the existing row.
func (h *Handler) CreateVideo(w http.ResponseWriter, r *http.Request) {
	var req VideoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	videoID := util.ExtractYouTubeID(req.VideoURL)
	if req.Title == "" || videoID == "" {
		fieldErrors := make(map[string]string)
		if req.Title == "" {
			fieldErrors["title"] = "Title is required"
		}
		if videoID == "" {
			fieldErrors["video_url"] = "Must be a YouTube video URL"
		}
		WriteValidationError(w, fieldErrors)
		return
	}

	if req.ThumbnailURL == "" {
		req.ThumbnailURL = util.YouTubeThumbnailURL(videoID)
	}

	now := time.Now().UTC()
	publishedAt := now
	if req.PublishedAt != nil {
		publishedAt = *req.PublishedAt
	}

	video, err := h.queries.UpsertVideo(r.Context(), store.UpsertVideoParams{
		Title:        req.Title,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		VideoURL:     util.YouTubeWatchURL(videoID),
		PublishedAt:  publishedAt,
		CreatedAt:    now,
	})
	if err != nil {
		slog.Error("failed to save video", "error", err)
		WriteInternalError(w, "Failed to save video")
		return
	}
	WriteCreated(w, videoToResponse(video))
}

// DeleteVideo handles DELETE /api/v1/admin/videos/{id}.
func (h *Handler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	video, ok := requireEntityByID(w, r, "video", func(id int64) (model.Video, error) {
		return h.queries.GetVideo(ctx, id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteVideo(ctx, video.ID); err != nil {
		slog.Error("failed to delete video", "error", err, "video_id", video.ID)
		WriteInternalError(w, "Failed to delete video")
		return
	}
	WriteSuccess(w, map[string]bool{"deleted": true}, nil)
}
