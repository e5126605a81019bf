// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xwalt19/webblog-sub001/internal/middleware"
	"github.com/xwalt19/webblog-sub001/internal/model"
	"github.com/xwalt19/webblog-sub001/internal/store"
	"github.com/xwalt19/webblog-sub001/internal/util"
)

const tagsCacheKey = "posts:tags"
const tagsCacheTTL = time.Minute

// PostResponse represents a blog or archive post in API responses.
type PostResponse struct {
	ID          int64      `json:"id"`
	Slug        string     `json:"slug"`
	TitleKey    string     `json:"title_key"`
	ExcerptKey  string     `json:"excerpt_key"`
	CategoryKey string     `json:"category_key"`
	AuthorKey   string     `json:"author_key"`
	Tags        []string   `json:"tags_keys"`
	ImageURL    string     `json:"image_url"`
	PDFLink     string     `json:"pdf_link,omitempty"`
	Content     string     `json:"content,omitempty"`
	ContentHTML string     `json:"content_html,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// postToResponse converts a post. Raw markdown is included only for admin
// consumers; public detail views get the rendered body instead.
func (h *Handler) postToResponse(p model.BlogPost, includeRaw, renderBody bool) PostResponse {
	resp := PostResponse{
		ID:          p.ID,
		Slug:        p.Slug,
		TitleKey:    p.TitleKey,
		ExcerptKey:  p.ExcerptKey,
		CategoryKey: p.CategoryKey,
		AuthorKey:   p.AuthorKey,
		Tags:        p.Tags,
		ImageURL:    p.ImageURL,
		PDFLink:     p.PDFLink,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		PublishedAt: util.TimePtrFromNull(p.PublishedAt),
		ScheduledAt: util.TimePtrFromNull(p.ScheduledAt),
	}
	if includeRaw {
		resp.Content = p.Content
	}
	if renderBody && p.Content != "" {
		resp.ContentHTML = h.renderMarkdown(p.Content)
	}
	return resp
}

// ListPosts handles GET /api/v1/posts.
// Public callers see only published posts; authenticated back-office users
// may filter by status. Filters: category, tag (prefix-free), archives=true
// limits to posts carrying a PDF.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := ParsePageParam(r)
	perPage := ParsePerPageParam(r, 20, 100)

	user := middleware.GetUser(r)
	status := r.URL.Query().Get("status")
	if user == nil {
		status = model.PostStatusPublished
	}

	params := store.ListBlogPostsParams{
		Status:   status,
		Category: r.URL.Query().Get("category"),
		Tag:      util.CleanTagKey(r.URL.Query().Get("tag")),
		PDFOnly:  r.URL.Query().Get("archives") == "true",
		Limit:    int64(perPage),
		Offset:   int64((page - 1) * perPage),
	}

	posts, err := h.queries.ListBlogPosts(ctx, params)
	if err != nil {
		slog.Error("failed to list posts", "error", err)
		WriteInternalError(w, "Failed to list posts")
		return
	}
	total, err := h.queries.CountBlogPosts(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to list posts")
		return
	}

	includeRaw := user != nil
	responses := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		responses = append(responses, h.postToResponse(p, includeRaw, false))
	}

	WriteSuccess(w, responses, newMeta(total, page, perPage))
}

// GetPostBySlug handles GET /api/v1/posts/slug/{slug}.
// Unpublished posts are visible only to back-office users.
func (h *Handler) GetPostBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		WriteBadRequest(w, "Slug is required", nil)
		return
	}

	post, err := h.queries.GetBlogPostBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Post not found")
		} else {
			WriteInternalError(w, "Failed to retrieve post")
		}
		return
	}

	user := middleware.GetUser(r)
	if !post.IsPublished() && user == nil {
		WriteNotFound(w, "Post not found")
		return
	}

	WriteSuccess(w, h.postToResponse(post, user != nil, true), nil)
}

// GetPost handles GET /api/v1/admin/posts/{id}.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, ok := requireEntityByID(w, r, "post", func(id int64) (model.BlogPost, error) {
		return h.queries.GetBlogPostByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, h.postToResponse(post, true, false), nil)
}

// ListTags handles GET /api/v1/posts/tags.
// The distinct-tag listing backs the public filter bar and changes rarely,
// so it sits behind a short-TTL cache.
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached, err := h.cache.Get(ctx, tagsCacheKey); err == nil {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(cached)
		return
	}

	tags, err := h.queries.ListBlogPostTags(ctx)
	if err != nil {
		slog.Error("failed to list post tags", "error", err)
		WriteInternalError(w, "Failed to list tags")
		return
	}
	if tags == nil {
		tags = []string{}
	}

	body, err := json.Marshal(Response{Data: tags})
	if err != nil {
		WriteInternalError(w, "Failed to list tags")
		return
	}
	_ = h.cache.Set(ctx, tagsCacheKey, body, tagsCacheTTL)

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

// invalidateTagCache drops the cached tag listing after a post mutation.
func (h *Handler) invalidateTagCache(ctx context.Context) {
	_ = h.cache.Delete(ctx, tagsCacheKey)
}

// PostRequest is the request body for creating or updating a post.
type PostRequest struct {
	Slug        string     `json:"slug,omitempty"`
	TitleKey    string     `json:"title_key"`
	ExcerptKey  string     `json:"excerpt_key"`
	CategoryKey string     `json:"category_key"`
	AuthorKey   string     `json:"author_key"`
	Tags        []string   `json:"tags_keys"`
	ImageURL    string     `json:"image_url"`
	PDFLink     string     `json:"pdf_link,omitempty"`
	Content     string     `json:"content"`
	Status      string     `json:"status"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// validatePostRequest checks required fields and normalizes the request.
// Tags are stored prefix-free regardless of what the client sends.
func validatePostRequest(req *PostRequest) map[string]string {
	fieldErrors := make(map[string]string)
	if req.TitleKey == "" {
		fieldErrors["title_key"] = "Title is required"
	}
	if req.Status == "" {
		req.Status = model.PostStatusDraft
	}
	if req.Status != model.PostStatusDraft && req.Status != model.PostStatusPublished {
		fieldErrors["status"] = "Status must be draft or published"
	}
	if req.Slug == "" {
		req.Slug = util.Slugify(req.TitleKey)
	}
	if !util.IsValidSlug(req.Slug) {
		fieldErrors["slug"] = "Invalid slug"
	}
	req.Tags = util.CleanTagKeys(req.Tags)
	if len(fieldErrors) > 0 {
		return fieldErrors
	}
	return nil
}

// CreatePost handles POST /api/v1/admin/posts.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req PostRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := validatePostRequest(&req); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	if _, err := h.queries.GetBlogPostBySlug(ctx, req.Slug); err == nil {
		WriteValidationError(w, map[string]string{"slug": "Slug already exists"})
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		WriteInternalError(w, "Failed to check slug")
		return
	}

	now := time.Now().UTC()
	var publishedAt sql.NullTime
	if req.Status == model.PostStatusPublished {
		publishedAt = sql.NullTime{Time: now, Valid: true}
	}

	post, err := h.queries.CreateBlogPost(ctx, store.CreateBlogPostParams{
		Slug:        req.Slug,
		TitleKey:    req.TitleKey,
		ExcerptKey:  req.ExcerptKey,
		CategoryKey: req.CategoryKey,
		AuthorKey:   req.AuthorKey,
		Tags:        req.Tags,
		ImageURL:    req.ImageURL,
		PDFLink:     req.PDFLink,
		Content:     req.Content,
		Status:      req.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
		PublishedAt: publishedAt,
		ScheduledAt: util.NullTimeFromPtr(req.ScheduledAt),
	})
	if err != nil {
		slog.Error("failed to create post", "error", err)
		WriteInternalError(w, "Failed to create post")
		return
	}

	h.invalidateTagCache(ctx)
	slog.Info("post created",
		"category", model.EventCategoryContent,
		"post_id", post.ID,
		"slug", post.Slug,
		"user_id", middleware.GetUserID(r),
	)

	WriteCreated(w, h.postToResponse(post, true, false))
}

// UpdatePost handles PUT /api/v1/admin/posts/{id}.
// The whole post is rewritten; the last write wins.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "post", func(id int64) (model.BlogPost, error) {
		return h.queries.GetBlogPostByID(ctx, id)
	})
	if !ok {
		return
	}

	var req PostRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := validatePostRequest(&req); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	if req.Slug != existing.Slug {
		if _, err := h.queries.GetBlogPostBySlug(ctx, req.Slug); err == nil {
			WriteValidationError(w, map[string]string{"slug": "Slug already exists"})
			return
		} else if !errors.Is(err, sql.ErrNoRows) {
			WriteInternalError(w, "Failed to check slug")
			return
		}
	}

	now := time.Now().UTC()
	publishedAt := existing.PublishedAt
	if req.Status == model.PostStatusPublished && !publishedAt.Valid {
		publishedAt = sql.NullTime{Time: now, Valid: true}
	}
	if req.Status == model.PostStatusDraft {
		publishedAt = sql.NullTime{}
	}

	post, err := h.queries.UpdateBlogPost(ctx, store.UpdateBlogPostParams{
		ID:          existing.ID,
		Slug:        req.Slug,
		TitleKey:    req.TitleKey,
		ExcerptKey:  req.ExcerptKey,
		CategoryKey: req.CategoryKey,
		AuthorKey:   req.AuthorKey,
		Tags:        req.Tags,
		ImageURL:    req.ImageURL,
		PDFLink:     req.PDFLink,
		Content:     req.Content,
		Status:      req.Status,
		UpdatedAt:   now,
		PublishedAt: publishedAt,
		ScheduledAt: util.NullTimeFromPtr(req.ScheduledAt),
	})
	if err != nil {
		slog.Error("failed to update post", "error", err, "post_id", existing.ID)
		WriteInternalError(w, "Failed to update post")
		return
	}

	// Replacing the image orphans the old file.
	if existing.ImageURL != "" && existing.ImageURL != req.ImageURL {
		if err := h.media.Delete(existing.ImageURL); err != nil {
			slog.Warn("failed to delete replaced post image", "error", err, "url", existing.ImageURL)
		}
	}

	h.invalidateTagCache(ctx)
	WriteSuccess(w, h.postToResponse(post, true, false), nil)
}

// DeletePost handles DELETE /api/v1/admin/posts/{id}.
// The post's uploaded image is removed along with the row.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	post, ok := requireEntityByID(w, r, "post", func(id int64) (model.BlogPost, error) {
		return h.queries.GetBlogPostByID(ctx, id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteBlogPost(ctx, post.ID); err != nil {
		slog.Error("failed to delete post", "error", err, "post_id", post.ID)
		WriteInternalError(w, "Failed to delete post")
		return
	}

	if post.ImageURL != "" {
		if err := h.media.Delete(post.ImageURL); err != nil {
			slog.Warn("failed to delete post image", "error", err, "url", post.ImageURL)
		}
	}

	h.invalidateTagCache(ctx)
	slog.Info("post deleted",
		"category", model.EventCategoryContent,
		"post_id", post.ID,
		"slug", post.Slug,
		"user_id", middleware.GetUserID(r),
	)

	WriteSuccess(w, map[string]bool{"deleted": true}, nil)
}
