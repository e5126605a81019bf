// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/xwalt19/webblog-sub001/internal/auth"
	"github.com/xwalt19/webblog-sub001/internal/model"
)

// Default admin credentials
const (
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "Administrator"
)

// Seed creates initial data in the database: an empty row for every
// well-known content block always, plus the default admin user when doSeed
// is set. The default admin carries a known password, so creating it is
// opt-in.
func Seed(ctx context.Context, db *sql.DB, doSeed bool) error {
	queries := New(db)
	now := time.Now()

	// Check if admin user already exists
	_, err := queries.GetUserByEmail(ctx, DefaultAdminEmail)
	switch {
	case err == nil:
		slog.Info("admin user already exists, skipping seed")
	case errors.Is(err, sql.ErrNoRows) && !doSeed:
		// Nothing to do; an admin must be created out of band.
	case errors.Is(err, sql.ErrNoRows):
		passwordHash, err := auth.HashPassword(DefaultAdminPassword)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}

		user, err := queries.CreateUser(ctx, CreateUserParams{
			Email:        DefaultAdminEmail,
			PasswordHash: passwordHash,
			Role:         model.RoleAdmin,
			Name:         DefaultAdminName,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("creating admin user: %w", err)
		}

		slog.Info("created default admin user",
			"id", user.ID,
			"email", user.Email,
			"password", DefaultAdminPassword,
		)
	default:
		return fmt.Errorf("checking for admin user: %w", err)
	}

	// Ensure every well-known content block has a row so the admin editor
	// always has something to load.
	for _, id := range model.KnownContentIDs {
		if _, err := queries.GetContentBlock(ctx, id); err == nil {
			continue
		} else if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking content block %s: %w", id, err)
		}
		if _, err := queries.UpsertContentBlock(ctx, id, "", now); err != nil {
			return fmt.Errorf("seeding content block %s: %w", id, err)
		}
	}

	return nil
}
