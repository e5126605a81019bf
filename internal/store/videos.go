// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/xwalt19/webblog-sub001/internal/model"
)

const upsertVideo = `
INSERT INTO videos (title, description, thumbnail_url, video_url, published_at, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(video_url) DO UPDATE SET
    title = excluded.title,
    description = excluded.description,
    thumbnail_url = excluded.thumbnail_url,
    published_at = excluded.published_at
RETURNING id, title, description, thumbnail_url, video_url, published_at, created_at
`

// UpsertVideoParams holds the inputs for UpsertVideo.
type UpsertVideoParams struct {
	Title        string
	Description  string
	ThumbnailURL string
	VideoURL     string
	PublishedAt  time.Time
	CreatedAt    time.Time
}

// UpsertVideo inserts a video or refreshes an existing row with the same URL.
// Channel imports re-run this for every fetched video, so duplicates collapse.
func (q *Queries) UpsertVideo(ctx context.Context, arg UpsertVideoParams) (model.Video, error) {
	row := q.db.QueryRowContext(ctx, upsertVideo,
		arg.Title, arg.Description, arg.ThumbnailURL, arg.VideoURL,
		arg.PublishedAt, arg.CreatedAt)
	var v model.Video
	err := row.Scan(&v.ID, &v.Title, &v.Description, &v.ThumbnailURL,
		&v.VideoURL, &v.PublishedAt, &v.CreatedAt)
	return v, err
}

const getVideo = `
SELECT id, title, description, thumbnail_url, video_url, published_at, created_at
FROM videos WHERE id = ?
`

// GetVideo fetches a video by primary key.
func (q *Queries) GetVideo(ctx context.Context, id int64) (model.Video, error) {
	row := q.db.QueryRowContext(ctx, getVideo, id)
	var v model.Video
	err := row.Scan(&v.ID, &v.Title, &v.Description, &v.ThumbnailURL,
		&v.VideoURL, &v.PublishedAt, &v.CreatedAt)
	return v, err
}

const listVideos = `
SELECT id, title, description, thumbnail_url, video_url, published_at, created_at
FROM videos ORDER BY published_at DESC
LIMIT ? OFFSET ?
`

// ListVideos returns videos newest-first.
func (q *Queries) ListVideos(ctx context.Context, limit, offset int64) ([]model.Video, error) {
	rows, err := q.db.QueryContext(ctx, listVideos, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []model.Video
	for rows.Next() {
		var v model.Video
		if err := rows.Scan(&v.ID, &v.Title, &v.Description, &v.ThumbnailURL,
			&v.VideoURL, &v.PublishedAt, &v.CreatedAt); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

const countVideos = `
SELECT COUNT(*) FROM videos
`

// CountVideos returns the total number of stored videos.
func (q *Queries) CountVideos(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countVideos).Scan(&n)
	return n, err
}

const deleteVideo = `
DELETE FROM videos WHERE id = ?
`

// DeleteVideo removes a video.
func (q *Queries) DeleteVideo(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteVideo, id)
	return err
}
