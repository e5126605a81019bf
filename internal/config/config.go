// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"WEBBLOG_DB_PATH" envDefault:"./data/webblog.db"`
	ServerHost string `env:"WEBBLOG_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"WEBBLOG_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"WEBBLOG_ENV" envDefault:"development"`

	LogLevel   string `env:"WEBBLOG_LOG_LEVEL" envDefault:"info"`
	UploadsDir string `env:"WEBBLOG_UPLOADS_DIR" envDefault:"./uploads"`

	// CORS configuration for the public site front end.
	AllowedOrigins []string `env:"WEBBLOG_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	// Cache configuration
	RedisURL     string `env:"WEBBLOG_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"WEBBLOG_CACHE_PREFIX" envDefault:"webblog:"` // Redis key prefix
	CacheTTL     int    `env:"WEBBLOG_CACHE_TTL" envDefault:"3600"`        // Default cache TTL in seconds
	CacheMaxSize int    `env:"WEBBLOG_CACHE_MAX_SIZE" envDefault:"10000"`  // Max memory cache entries

	// Outbound integrations used by the proxy endpoints.
	ResendAPIKey     string `env:"WEBBLOG_RESEND_API_KEY"`
	ContactFrom      string `env:"WEBBLOG_CONTACT_FROM" envDefault:"Website <onboarding@resend.dev>"`
	ContactTo        string `env:"WEBBLOG_CONTACT_TO"`
	GoogleAPIKey  string `env:"WEBBLOG_GOOGLE_API_KEY"`
	YouTubeAPIKey string `env:"WEBBLOG_YOUTUBE_API_KEY"`

	// YouTubeChannelID is the channel handle imported when an import
	// request does not name one.
	YouTubeChannelID string `env:"WEBBLOG_YOUTUBE_CHANNEL_ID"`

	// Seeding configuration
	DoSeed bool `env:"WEBBLOG_DO_SEED" envDefault:"false"` // Enable database seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// ContactEnabled returns true if the contact email proxy is configured.
func (c Config) ContactEnabled() bool {
	return c.ResendAPIKey != "" && c.ContactTo != ""
}

// HolidaysEnabled returns true if the Google Calendar holiday proxy is configured.
func (c Config) HolidaysEnabled() bool {
	return c.GoogleAPIKey != ""
}

// YouTubeEnabled returns true if the YouTube data proxy is configured.
func (c Config) YouTubeEnabled() bool {
	return c.YouTubeAPIKey != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
