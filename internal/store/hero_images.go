// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/xwalt19/webblog-sub001/internal/model"
)

const createHeroImage = `
INSERT INTO hero_images (image_url, order_index, created_at)
VALUES (?, COALESCE((SELECT MAX(order_index) + 1 FROM hero_images), 0), ?)
RETURNING id, image_url, order_index, created_at
`

// CreateHeroImage appends a slide to the end of the carousel.
func (q *Queries) CreateHeroImage(ctx context.Context, imageURL string, createdAt time.Time) (model.HeroImage, error) {
	row := q.db.QueryRowContext(ctx, createHeroImage, imageURL, createdAt)
	var h model.HeroImage
	err := row.Scan(&h.ID, &h.ImageURL, &h.OrderIndex, &h.CreatedAt)
	return h, err
}

const getHeroImage = `
SELECT id, image_url, order_index, created_at FROM hero_images WHERE id = ?
`

// GetHeroImage fetches a slide by primary key.
func (q *Queries) GetHeroImage(ctx context.Context, id int64) (model.HeroImage, error) {
	row := q.db.QueryRowContext(ctx, getHeroImage, id)
	var h model.HeroImage
	err := row.Scan(&h.ID, &h.ImageURL, &h.OrderIndex, &h.CreatedAt)
	return h, err
}

const listHeroImages = `
SELECT id, image_url, order_index, created_at
FROM hero_images ORDER BY order_index, id
`

// ListHeroImages returns all slides in display order.
func (q *Queries) ListHeroImages(ctx context.Context) ([]model.HeroImage, error) {
	rows, err := q.db.QueryContext(ctx, listHeroImages)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []model.HeroImage
	for rows.Next() {
		var h model.HeroImage
		if err := rows.Scan(&h.ID, &h.ImageURL, &h.OrderIndex, &h.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, h)
	}
	return images, rows.Err()
}

const updateHeroImageOrder = `
UPDATE hero_images SET order_index = ? WHERE id = ?
`

// ReorderHeroImages rewrites order_index to match the given ID sequence.
// IDs absent from the slice keep their position relative to each other after
// the listed ones.
func (q *Queries) ReorderHeroImages(ctx context.Context, ids []int64) error {
	for i, id := range ids {
		if _, err := q.db.ExecContext(ctx, updateHeroImageOrder, int64(i), id); err != nil {
			return err
		}
	}
	return nil
}

const deleteHeroImage = `
DELETE FROM hero_images WHERE id = ?
`

const resequenceHeroImages = `
UPDATE hero_images SET order_index = (
	SELECT COUNT(*) FROM hero_images AS h
	WHERE h.order_index < hero_images.order_index
	   OR (h.order_index = hero_images.order_index AND h.id < hero_images.id)
)
`

// DeleteHeroImage removes a slide and closes the gap so order_index stays
// contiguous from 0.
func (q *Queries) DeleteHeroImage(ctx context.Context, id int64) error {
	if _, err := q.db.ExecContext(ctx, deleteHeroImage, id); err != nil {
		return err
	}
	_, err := q.db.ExecContext(ctx, resequenceHeroImages)
	return err
}
