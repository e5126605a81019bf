// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/xwalt19/webblog-sub001/internal/model"
)

const createUser = `
INSERT INTO users (email, password_hash, role, name, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, email, password_hash, role, name, created_at, updated_at, last_login_at
`

// CreateUserParams holds the inputs for CreateUser.
type CreateUserParams struct {
	Email        string
	PasswordHash string
	Role         string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUser inserts a new back-office user.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	row := q.db.QueryRowContext(ctx, createUser,
		arg.Email, arg.PasswordHash, arg.Role, arg.Name, arg.CreatedAt, arg.UpdatedAt)
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Name,
		&u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt)
	return u, err
}

const getUserByEmail = `
SELECT id, email, password_hash, role, name, created_at, updated_at, last_login_at
FROM users WHERE email = ?
`

// GetUserByEmail looks up a user by email address.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	row := q.db.QueryRowContext(ctx, getUserByEmail, email)
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Name,
		&u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt)
	return u, err
}

const getUserByID = `
SELECT id, email, password_hash, role, name, created_at, updated_at, last_login_at
FROM users WHERE id = ?
`

// GetUserByID looks up a user by primary key.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	row := q.db.QueryRowContext(ctx, getUserByID, id)
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Name,
		&u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt)
	return u, err
}

const listUsers = `
SELECT id, email, password_hash, role, name, created_at, updated_at, last_login_at
FROM users ORDER BY email
`

// ListUsers returns all users ordered by email.
func (q *Queries) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := q.db.QueryContext(ctx, listUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Name,
			&u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

const updateUserPassword = `
UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?
`

// UpdateUserPassword replaces a user's password hash.
func (q *Queries) UpdateUserPassword(ctx context.Context, id int64, passwordHash string, updatedAt time.Time) error {
	_, err := q.db.ExecContext(ctx, updateUserPassword, passwordHash, updatedAt, id)
	return err
}

const touchUserLogin = `
UPDATE users SET last_login_at = ? WHERE id = ?
`

// TouchUserLogin records a successful login time.
func (q *Queries) TouchUserLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := q.db.ExecContext(ctx, touchUserLogin, at, id)
	return err
}

const deleteUser = `
DELETE FROM users WHERE id = ?
`

// DeleteUser removes a user.
func (q *Queries) DeleteUser(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteUser, id)
	return err
}
