// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/xwalt19/webblog-sub001/internal/model"
)

const createPartner = `
INSERT INTO partners (name_key, logo_url, site_url, category)
VALUES (?, ?, ?, ?)
RETURNING id, name_key, logo_url, site_url, category
`

// CreatePartnerParams holds the inputs for CreatePartner.
type CreatePartnerParams struct {
	NameKey  string
	LogoURL  string
	SiteURL  string
	Category string
}

// CreatePartner inserts a partner entry.
func (q *Queries) CreatePartner(ctx context.Context, arg CreatePartnerParams) (model.Partner, error) {
	row := q.db.QueryRowContext(ctx, createPartner,
		arg.NameKey, arg.LogoURL, arg.SiteURL, arg.Category)
	var p model.Partner
	err := row.Scan(&p.ID, &p.NameKey, &p.LogoURL, &p.SiteURL, &p.Category)
	return p, err
}

const getPartner = `
SELECT id, name_key, logo_url, site_url, category FROM partners WHERE id = ?
`

// GetPartner fetches a partner by primary key.
func (q *Queries) GetPartner(ctx context.Context, id int64) (model.Partner, error) {
	row := q.db.QueryRowContext(ctx, getPartner, id)
	var p model.Partner
	err := row.Scan(&p.ID, &p.NameKey, &p.LogoURL, &p.SiteURL, &p.Category)
	return p, err
}

const listPartners = `
SELECT id, name_key, logo_url, site_url, category FROM partners
WHERE (? = '' OR category = ?)
ORDER BY id
`

// ListPartners returns partners, optionally filtered by category.
func (q *Queries) ListPartners(ctx context.Context, category string) ([]model.Partner, error) {
	rows, err := q.db.QueryContext(ctx, listPartners, category, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var partners []model.Partner
	for rows.Next() {
		var p model.Partner
		if err := rows.Scan(&p.ID, &p.NameKey, &p.LogoURL, &p.SiteURL, &p.Category); err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}
	return partners, rows.Err()
}

const updatePartner = `
UPDATE partners SET name_key = ?, logo_url = ?, site_url = ?, category = ?
WHERE id = ?
RETURNING id, name_key, logo_url, site_url, category
`

// UpdatePartnerParams holds the inputs for UpdatePartner.
type UpdatePartnerParams struct {
	ID       int64
	NameKey  string
	LogoURL  string
	SiteURL  string
	Category string
}

// UpdatePartner rewrites a partner entry.
func (q *Queries) UpdatePartner(ctx context.Context, arg UpdatePartnerParams) (model.Partner, error) {
	row := q.db.QueryRowContext(ctx, updatePartner,
		arg.NameKey, arg.LogoURL, arg.SiteURL, arg.Category, arg.ID)
	var p model.Partner
	err := row.Scan(&p.ID, &p.NameKey, &p.LogoURL, &p.SiteURL, &p.Category)
	return p, err
}

const deletePartner = `
DELETE FROM partners WHERE id = ?
`

// DeletePartner removes a partner entry.
func (q *Queries) DeletePartner(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deletePartner, id)
	return err
}
