// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the recurring background jobs: publishing
// scheduled blog posts, refreshing stored national holidays and pruning
// old event log entries.
package scheduler

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/xwalt19/webblog-sub001/internal/functions"
	"github.com/xwalt19/webblog-sub001/internal/model"
	"github.com/xwalt19/webblog-sub001/internal/store"
)

// eventRetention is how long event log rows are kept.
const eventRetention = 90 * 24 * time.Hour

// Scheduler handles the recurring background jobs.
type Scheduler struct {
	db       *sql.DB
	cron     *cron.Cron
	logger   *slog.Logger
	holidays *functions.HolidayClient // nil when no Google API key is set
}

// New creates a scheduler. holidays may be nil; the refresh job is then
// skipped.
func New(db *sql.DB, logger *slog.Logger, holidays *functions.HolidayClient) *Scheduler {
	return &Scheduler{
		db:       db,
		cron:     cron.New(),
		logger:   logger,
		holidays: holidays,
	}
}

// Start registers the jobs and begins the cron loop.
func (s *Scheduler) Start() error {
	// Scheduled posts go live within a minute of their time.
	if _, err := s.cron.AddFunc("* * * * *", func() {
		if err := s.processScheduledPosts(); err != nil {
			s.logger.Error("failed to process scheduled posts", "error", err)
		}
	}); err != nil {
		return err
	}

	// Daily holiday refresh keeps next year's rows in place before the
	// frontend needs them.
	if s.holidays != nil {
		if _, err := s.cron.AddFunc("30 2 * * *", func() {
			if err := s.refreshHolidays(); err != nil {
				s.logger.Error("failed to refresh holidays", "error", err)
			}
		}); err != nil {
			return err
		}
	}

	// Weekly event log pruning.
	if _, err := s.cron.AddFunc("0 3 * * 0", func() {
		if err := s.pruneEvents(); err != nil {
			s.logger.Error("failed to prune events", "error", err)
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// processScheduledPosts publishes every draft whose scheduled time has
// passed.
func (s *Scheduler) processScheduledPosts() error {
	ctx := context.Background()
	queries := store.New(s.db)
	now := time.Now().UTC()

	posts, err := queries.ListScheduledBlogPosts(ctx, now)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		return nil
	}

	s.logger.Info("processing scheduled posts", "count", len(posts))

	for _, post := range posts {
		if err := s.publishPost(ctx, queries, post, now); err != nil {
			s.logger.Error("failed to publish scheduled post",
				"post_id", post.ID, "slug", post.Slug, "error", err)
			continue
		}
		s.logger.Info("published scheduled post",
			"post_id", post.ID, "slug", post.Slug, "scheduled_at", post.ScheduledAt.Time)
	}
	return nil
}

// publishPost publishes one due post and records the event.
func (s *Scheduler) publishPost(ctx context.Context, queries *store.Queries, post model.BlogPost, now time.Time) error {
	if err := queries.PublishBlogPost(ctx, post.ID, now); err != nil {
		return err
	}

	metadata, _ := json.Marshal(map[string]any{
		"post_id":      post.ID,
		"slug":         post.Slug,
		"scheduled_at": post.ScheduledAt.Time.Format(time.RFC3339),
		"published_at": now.Format(time.RFC3339),
	})
	if err := queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     model.EventLevelInfo,
		Category:  model.EventCategoryContent,
		Message:   "Post published by scheduler: " + post.TitleKey,
		UserID:    sql.NullInt64{},
		Metadata:  string(metadata),
		CreatedAt: now,
	}); err != nil {
		s.logger.Warn("failed to log scheduled publish event", "error", err)
	}
	return nil
}

// refreshHolidays replaces the stored holiday rows for the current and the
// coming year with fresh upstream data.
func (s *Scheduler) refreshHolidays() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	queries := store.New(s.db)
	year := time.Now().Year()

	for _, y := range []int{year, year + 1} {
		holidays, err := s.holidays.Fetch(ctx, y, "id")
		if err != nil {
			return err
		}

		from := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(1, 0, 0)
		if err := queries.DeleteImportedHolidays(ctx, from, to); err != nil {
			return err
		}

		for _, h := range holidays {
			date, err := time.ParseInLocation("2006-01-02", h.Date, time.UTC)
			if err != nil {
				s.logger.Warn("skipping holiday with bad date", "title", h.Title, "date", h.Date)
				continue
			}
			if _, err := queries.CreateCalendarEvent(ctx, store.CreateCalendarEventParams{
				Title:       h.Title,
				Description: h.Description,
				Date:        date,
				IsHoliday:   true,
				Imported:    true,
			}); err != nil {
				return err
			}
		}
		s.logger.Info("refreshed stored holidays", "year", y, "count", len(holidays))
	}
	return nil
}

// pruneEvents drops event log rows older than the retention window.
func (s *Scheduler) pruneEvents() error {
	ctx := context.Background()
	queries := store.New(s.db)

	pruned, err := queries.PruneEvents(ctx, time.Now().UTC().Add(-eventRetention))
	if err != nil {
		return err
	}
	if pruned > 0 {
		s.logger.Info("pruned old events", "count", pruned)
	}
	return nil
}
