// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Blog post statuses
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// BlogPost represents a blog or archive entry. Title, excerpt, category and
// author are translation keys resolved by the consuming frontend; tags are
// stored prefix-free (see util.CleanTagKey).
type BlogPost struct {
	ID          int64        `json:"id"`
	Slug        string       `json:"slug"`
	TitleKey    string       `json:"title_key"`
	ExcerptKey  string       `json:"excerpt_key"`
	CategoryKey string       `json:"category_key"`
	AuthorKey   string       `json:"author_key"`
	Tags        []string     `json:"tags_keys"`
	ImageURL    string       `json:"image_url"`
	PDFLink     string       `json:"pdf_link,omitempty"`
	Content     string       `json:"content,omitempty"`
	Status      string       `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	PublishedAt sql.NullTime `json:"published_at,omitempty"`
	ScheduledAt sql.NullTime `json:"scheduled_at,omitempty"`
}

// IsPublished returns true if the post is published.
func (p *BlogPost) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// IsArchive returns true if the post carries an archival PDF.
func (p *BlogPost) IsArchive() bool {
	return p.PDFLink != ""
}
