// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/xwalt19/webblog-sub001/internal/model"
)

const blogPostColumns = `id, slug, title_key, excerpt_key, category_key, author_key,
tags_keys, image_url, pdf_link, content, status, created_at, updated_at,
published_at, scheduled_at`

func scanBlogPost(row interface{ Scan(...any) error }) (model.BlogPost, error) {
	var p model.BlogPost
	var tags string
	err := row.Scan(&p.ID, &p.Slug, &p.TitleKey, &p.ExcerptKey, &p.CategoryKey,
		&p.AuthorKey, &tags, &p.ImageURL, &p.PDFLink, &p.Content, &p.Status,
		&p.CreatedAt, &p.UpdatedAt, &p.PublishedAt, &p.ScheduledAt)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
		p.Tags = nil
	}
	return p, nil
}

func marshalTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(b)
}

const createBlogPost = `
INSERT INTO blog_posts (slug, title_key, excerpt_key, category_key, author_key,
tags_keys, image_url, pdf_link, content, status, created_at, updated_at,
published_at, scheduled_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + blogPostColumns

// CreateBlogPostParams holds the inputs for CreateBlogPost.
type CreateBlogPostParams struct {
	Slug        string
	TitleKey    string
	ExcerptKey  string
	CategoryKey string
	AuthorKey   string
	Tags        []string
	ImageURL    string
	PDFLink     string
	Content     string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PublishedAt sql.NullTime
	ScheduledAt sql.NullTime
}

// CreateBlogPost inserts a blog or archive post.
func (q *Queries) CreateBlogPost(ctx context.Context, arg CreateBlogPostParams) (model.BlogPost, error) {
	row := q.db.QueryRowContext(ctx, createBlogPost,
		arg.Slug, arg.TitleKey, arg.ExcerptKey, arg.CategoryKey, arg.AuthorKey,
		marshalTags(arg.Tags), arg.ImageURL, arg.PDFLink, arg.Content, arg.Status,
		arg.CreatedAt, arg.UpdatedAt, arg.PublishedAt, arg.ScheduledAt)
	return scanBlogPost(row)
}

const getBlogPostByID = `
SELECT ` + blogPostColumns + ` FROM blog_posts WHERE id = ?
`

// GetBlogPostByID fetches a post by primary key.
func (q *Queries) GetBlogPostByID(ctx context.Context, id int64) (model.BlogPost, error) {
	return scanBlogPost(q.db.QueryRowContext(ctx, getBlogPostByID, id))
}

const getBlogPostBySlug = `
SELECT ` + blogPostColumns + ` FROM blog_posts WHERE slug = ?
`

// GetBlogPostBySlug fetches a post by its slug.
func (q *Queries) GetBlogPostBySlug(ctx context.Context, slug string) (model.BlogPost, error) {
	return scanBlogPost(q.db.QueryRowContext(ctx, getBlogPostBySlug, slug))
}

// ListBlogPostsParams holds paging and filtering inputs for ListBlogPosts.
type ListBlogPostsParams struct {
	Status   string // empty means all statuses
	Category string // empty means all categories
	Tag      string // empty means all tags (prefix-free key)
	PDFOnly  bool   // true limits to archive posts carrying a pdf_link
	Limit    int64
	Offset   int64
}

// Tags are stored as a JSON string array, so a tag filter matches the quoted
// key anywhere in the column.
const blogPostFilter = `
WHERE (? = '' OR status = ?) AND (? = '' OR category_key = ?)
AND (? = '' OR tags_keys LIKE '%"' || ? || '"%')
AND (? = 0 OR pdf_link != '')
`

const listBlogPosts = `
SELECT ` + blogPostColumns + ` FROM blog_posts
` + blogPostFilter + `
ORDER BY COALESCE(published_at, created_at) DESC
LIMIT ? OFFSET ?
`

func filterArgs(arg ListBlogPostsParams) []any {
	pdfOnly := 0
	if arg.PDFOnly {
		pdfOnly = 1
	}
	return []any{arg.Status, arg.Status, arg.Category, arg.Category, arg.Tag, arg.Tag, pdfOnly}
}

// ListBlogPosts returns posts newest-first, optionally filtered by status,
// category and tag.
func (q *Queries) ListBlogPosts(ctx context.Context, arg ListBlogPostsParams) ([]model.BlogPost, error) {
	args := append(filterArgs(arg), arg.Limit, arg.Offset)
	rows, err := q.db.QueryContext(ctx, listBlogPosts, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.BlogPost
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

const countBlogPosts = `SELECT COUNT(*) FROM blog_posts ` + blogPostFilter

// CountBlogPosts returns the total matching ListBlogPosts without paging.
func (q *Queries) CountBlogPosts(ctx context.Context, arg ListBlogPostsParams) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countBlogPosts, filterArgs(arg)...).Scan(&n)
	return n, err
}

const updateBlogPost = `
UPDATE blog_posts SET slug = ?, title_key = ?, excerpt_key = ?, category_key = ?,
author_key = ?, tags_keys = ?, image_url = ?, pdf_link = ?, content = ?,
status = ?, updated_at = ?, published_at = ?, scheduled_at = ?
WHERE id = ?
RETURNING ` + blogPostColumns

// UpdateBlogPostParams holds the inputs for UpdateBlogPost.
type UpdateBlogPostParams struct {
	ID          int64
	Slug        string
	TitleKey    string
	ExcerptKey  string
	CategoryKey string
	AuthorKey   string
	Tags        []string
	ImageURL    string
	PDFLink     string
	Content     string
	Status      string
	UpdatedAt   time.Time
	PublishedAt sql.NullTime
	ScheduledAt sql.NullTime
}

// UpdateBlogPost rewrites every mutable column of a post.
func (q *Queries) UpdateBlogPost(ctx context.Context, arg UpdateBlogPostParams) (model.BlogPost, error) {
	row := q.db.QueryRowContext(ctx, updateBlogPost,
		arg.Slug, arg.TitleKey, arg.ExcerptKey, arg.CategoryKey, arg.AuthorKey,
		marshalTags(arg.Tags), arg.ImageURL, arg.PDFLink, arg.Content, arg.Status,
		arg.UpdatedAt, arg.PublishedAt, arg.ScheduledAt, arg.ID)
	return scanBlogPost(row)
}

const deleteBlogPost = `
DELETE FROM blog_posts WHERE id = ?
`

// DeleteBlogPost removes a post.
func (q *Queries) DeleteBlogPost(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteBlogPost, id)
	return err
}

const listScheduledBlogPosts = `
SELECT ` + blogPostColumns + ` FROM blog_posts
WHERE status = 'draft' AND scheduled_at IS NOT NULL AND scheduled_at <= ?
`

// ListScheduledBlogPosts returns drafts whose scheduled publish time has
// passed.
func (q *Queries) ListScheduledBlogPosts(ctx context.Context, now time.Time) ([]model.BlogPost, error) {
	rows, err := q.db.QueryContext(ctx, listScheduledBlogPosts, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.BlogPost
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

const publishBlogPost = `
UPDATE blog_posts SET status = 'published', published_at = ?, scheduled_at = NULL,
updated_at = ? WHERE id = ?
`

// PublishBlogPost flips a post to published at the given time.
func (q *Queries) PublishBlogPost(ctx context.Context, id int64, at time.Time) error {
	_, err := q.db.ExecContext(ctx, publishBlogPost, at, at, id)
	return err
}

const listBlogPostTags = `
SELECT tags_keys FROM blog_posts WHERE status = 'published'
`

// ListBlogPostTags returns the distinct tag keys across published posts.
func (q *Queries) ListBlogPostTags(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listBlogPostTags)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seen := make(map[string]bool)
	var tags []string
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var list []string
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			continue
		}
		for _, t := range list {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	return tags, rows.Err()
}
