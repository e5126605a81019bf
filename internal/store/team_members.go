// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/xwalt19/webblog-sub001/internal/model"
)

const createTeamMember = `
INSERT INTO team_members (name, role_key, photo_url, order_index)
VALUES (?, ?, ?, COALESCE((SELECT MAX(order_index) + 1 FROM team_members), 0))
RETURNING id, name, role_key, photo_url, order_index
`

// CreateTeamMemberParams holds the inputs for CreateTeamMember.
type CreateTeamMemberParams struct {
	Name     string
	RoleKey  string
	PhotoURL string
}

// CreateTeamMember appends a member to the end of the team page.
func (q *Queries) CreateTeamMember(ctx context.Context, arg CreateTeamMemberParams) (model.TeamMember, error) {
	row := q.db.QueryRowContext(ctx, createTeamMember, arg.Name, arg.RoleKey, arg.PhotoURL)
	var m model.TeamMember
	err := row.Scan(&m.ID, &m.Name, &m.RoleKey, &m.PhotoURL, &m.OrderIndex)
	return m, err
}

const getTeamMember = `
SELECT id, name, role_key, photo_url, order_index FROM team_members WHERE id = ?
`

// GetTeamMember fetches a member by primary key.
func (q *Queries) GetTeamMember(ctx context.Context, id int64) (model.TeamMember, error) {
	row := q.db.QueryRowContext(ctx, getTeamMember, id)
	var m model.TeamMember
	err := row.Scan(&m.ID, &m.Name, &m.RoleKey, &m.PhotoURL, &m.OrderIndex)
	return m, err
}

const listTeamMembers = `
SELECT id, name, role_key, photo_url, order_index
FROM team_members ORDER BY order_index, id
`

// ListTeamMembers returns all members in display order.
func (q *Queries) ListTeamMembers(ctx context.Context) ([]model.TeamMember, error) {
	rows, err := q.db.QueryContext(ctx, listTeamMembers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []model.TeamMember
	for rows.Next() {
		var m model.TeamMember
		if err := rows.Scan(&m.ID, &m.Name, &m.RoleKey, &m.PhotoURL, &m.OrderIndex); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

const updateTeamMember = `
UPDATE team_members SET name = ?, role_key = ?, photo_url = ? WHERE id = ?
RETURNING id, name, role_key, photo_url, order_index
`

// UpdateTeamMemberParams holds the inputs for UpdateTeamMember.
type UpdateTeamMemberParams struct {
	ID       int64
	Name     string
	RoleKey  string
	PhotoURL string
}

// UpdateTeamMember rewrites a member's fields, keeping its position.
func (q *Queries) UpdateTeamMember(ctx context.Context, arg UpdateTeamMemberParams) (model.TeamMember, error) {
	row := q.db.QueryRowContext(ctx, updateTeamMember, arg.Name, arg.RoleKey, arg.PhotoURL, arg.ID)
	var m model.TeamMember
	err := row.Scan(&m.ID, &m.Name, &m.RoleKey, &m.PhotoURL, &m.OrderIndex)
	return m, err
}

// ReorderTeamMembers rewrites order_index to match the given ID sequence.
func (q *Queries) ReorderTeamMembers(ctx context.Context, ids []int64) error {
	for i, id := range ids {
		if _, err := q.db.ExecContext(ctx,
			`UPDATE team_members SET order_index = ? WHERE id = ?`, int64(i), id); err != nil {
			return err
		}
	}
	return nil
}

const deleteTeamMember = `
DELETE FROM team_members WHERE id = ?
`

// DeleteTeamMember removes a member.
func (q *Queries) DeleteTeamMember(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteTeamMember, id)
	return err
}
