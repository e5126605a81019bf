// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/xwalt19/webblog-sub001/internal/model"
)

const getContentBlock = `
SELECT id, html_content, updated_at FROM content WHERE id = ?
`

// GetContentBlock fetches a content block by its well-known identifier.
func (q *Queries) GetContentBlock(ctx context.Context, id string) (model.ContentBlock, error) {
	row := q.db.QueryRowContext(ctx, getContentBlock, id)
	var c model.ContentBlock
	err := row.Scan(&c.ID, &c.HTMLContent, &c.UpdatedAt)
	return c, err
}

const listContentBlocks = `
SELECT id, html_content, updated_at FROM content ORDER BY id
`

// ListContentBlocks returns every content block.
func (q *Queries) ListContentBlocks(ctx context.Context) ([]model.ContentBlock, error) {
	rows, err := q.db.QueryContext(ctx, listContentBlocks)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []model.ContentBlock
	for rows.Next() {
		var c model.ContentBlock
		if err := rows.Scan(&c.ID, &c.HTMLContent, &c.UpdatedAt); err != nil {
			return nil, err
		}
		blocks = append(blocks, c)
	}
	return blocks, rows.Err()
}

const upsertContentBlock = `
INSERT INTO content (id, html_content, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    html_content = excluded.html_content,
    updated_at = excluded.updated_at
RETURNING id, html_content, updated_at
`

// UpsertContentBlock writes a content block, creating the row if needed.
func (q *Queries) UpsertContentBlock(ctx context.Context, id, html string, updatedAt time.Time) (model.ContentBlock, error) {
	row := q.db.QueryRowContext(ctx, upsertContentBlock, id, html, updatedAt)
	var c model.ContentBlock
	err := row.Scan(&c.ID, &c.HTMLContent, &c.UpdatedAt)
	return c, err
}
