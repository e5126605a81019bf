// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command webblog runs the headless content service: public REST API,
// admin back-office API, proxy functions and the background scheduler.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/xwalt19/webblog-sub001/internal/cache"
	"github.com/xwalt19/webblog-sub001/internal/config"
	"github.com/xwalt19/webblog-sub001/internal/functions"
	"github.com/xwalt19/webblog-sub001/internal/handler/api"
	"github.com/xwalt19/webblog-sub001/internal/i18n"
	"github.com/xwalt19/webblog-sub001/internal/logging"
	"github.com/xwalt19/webblog-sub001/internal/middleware"
	"github.com/xwalt19/webblog-sub001/internal/realtime"
	"github.com/xwalt19/webblog-sub001/internal/scheduler"
	"github.com/xwalt19/webblog-sub001/internal/service"
	"github.com/xwalt19/webblog-sub001/internal/session"
	"github.com/xwalt19/webblog-sub001/internal/store"
)

// Version information - injected at build time via ldflags
var (
	appVersion = "dev"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}

	// Ensure data and uploads directories exist
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	// Upgrade logger to also write WARN and ERROR records to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx := context.Background()
	if err := store.Seed(ctx, db, cfg.DoSeed); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	sessionManager := session.New(db, cfg.IsDevelopment())

	cacher := cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:    cfg.CacheMaxSize,
	}, logger)
	defer cacher.Close()

	media := service.NewMediaService(cfg.UploadsDir, logger)

	hub := realtime.NewHub(250*time.Millisecond, logger)
	defer hub.Close()

	// Outbound clients; nil when the corresponding secret is absent
	var emailSender functions.EmailSender
	if cfg.ContactEnabled() {
		emailSender = functions.NewResendSender(cfg.ResendAPIKey, cfg.ContactFrom, cfg.ContactTo)
	}
	var holidayClient *functions.HolidayClient
	if cfg.HolidaysEnabled() {
		holidayClient = functions.NewHolidayClient(cfg.GoogleAPIKey)
	}
	var youtubeClient *functions.YouTubeClient
	if cfg.YouTubeEnabled() {
		youtubeClient = functions.NewYouTubeClient(cfg.YouTubeAPIKey)
	}

	sched := scheduler.New(db, logger, holidayClient)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	loginLimiter := middleware.NewRateLimiter(0.5, 5)
	defer loginLimiter.Stop()
	functionLimiter := middleware.NewRateLimiter(1, 10)
	defer functionLimiter.Stop()

	h := api.NewHandler(db, cacher, media, hub, sessionManager)
	queries := store.New(db)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(sessionManager.LoadAndSave)
		r.Use(middleware.LoadUser(sessionManager, db))

		r.Get("/status", h.Status)

		// Public read endpoints
		r.Get("/posts", h.ListPosts)
		r.Get("/posts/tags", h.ListTags)
		r.Get("/posts/slug/{slug}", h.GetPostBySlug)
		r.Get("/hero-images", h.ListHeroImages)
		r.Get("/hero-images/subscribe", h.SubscribeHeroImages())
		r.Get("/calendar", h.ListCalendar)
		r.Get("/programs", h.ListPrograms)
		r.Get("/programs/slug/{slug}", h.GetProgramBySlug)
		r.Get("/partners", h.ListPartners)
		r.Get("/team", h.ListTeamMembers)
		r.Get("/videos", h.ListVideos)
		r.Get("/content", h.ListContentBlocks)
		r.Get("/content/{id}", h.GetContentBlock)
		r.Get("/icons", h.ListIcons)
		r.Get("/translations", h.ListTranslations)
		r.Get("/translations/{lang}", h.ListTranslations)

		// Authentication
		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter.Middleware()).Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.Get("/me", h.Me)
		})

		// Back-office, admin only
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin())

			r.Post("/posts", h.CreatePost)
			r.Get("/posts/{id}", h.GetPost)
			r.Put("/posts/{id}", h.UpdatePost)
			r.Delete("/posts/{id}", h.DeletePost)

			r.Post("/hero-images", h.UploadHeroImage)
			r.Put("/hero-images/order", h.ReorderHeroImages)
			r.Delete("/hero-images/{id}", h.DeleteHeroImage)

			r.Post("/calendar", h.CreateCalendarEvent)
			r.Put("/calendar/{id}", h.UpdateCalendarEvent)
			r.Delete("/calendar/{id}", h.DeleteCalendarEvent)

			r.Post("/programs", h.CreateProgram)
			r.Put("/programs/{id}", h.UpdateProgram)
			r.Delete("/programs/{id}", h.DeleteProgram)

			r.Post("/partners", h.CreatePartner)
			r.Put("/partners/{id}", h.UpdatePartner)
			r.Delete("/partners/{id}", h.DeletePartner)

			r.Post("/team", h.CreateTeamMember)
			r.Put("/team/order", h.ReorderTeamMembers)
			r.Put("/team/{id}", h.UpdateTeamMember)
			r.Delete("/team/{id}", h.DeleteTeamMember)

			r.Post("/videos", h.CreateVideo)
			r.Delete("/videos/{id}", h.DeleteVideo)

			r.Put("/content/{id}", h.UpdateContentBlock)

			r.Post("/media", h.UploadMedia)
			r.Post("/media/delete", h.DeleteMedia)

			r.Get("/events", h.ListEvents)
		})
	})

	// Stateless proxy functions; CORS is handled inside each handler
	r.Route("/functions", func(r chi.Router) {
		r.Use(functionLimiter.Middleware())

		registerFunction(r, "/send-contact-email", functions.SendContactEmail(emailSender))
		registerFunction(r, "/fetch-holidays", functions.FetchHolidays(holidayClient))
		registerFunction(r, "/fetch-youtube-video-details", functions.FetchYouTubeVideoDetails(youtubeClient))
		registerFunction(r, "/import-youtube-channel", functions.ImportYouTubeChannel(youtubeClient, queries, cfg.YouTubeChannelID))
	})

	// Uploaded files
	uploadsDir, err := filepath.Abs(cfg.UploadsDir)
	if err != nil {
		return fmt.Errorf("resolving uploads directory: %w", err)
	}
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      0, // SSE connections stay open
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", appVersion)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// registerFunction mounts a function handler for both its POST route and
// the CORS preflight.
func registerFunction(r chi.Router, path string, fn http.HandlerFunc) {
	r.Post(path, fn)
	r.Options(path, fn)
}
