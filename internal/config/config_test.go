// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Check defaults
	if cfg.DBPath != "./data/webblog.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/webblog.db")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.UploadsDir != "./uploads" {
		t.Errorf("UploadsDir = %q, want %q", cfg.UploadsDir, "./uploads")
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:5173" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "WEBBLOG_DB_PATH", "/custom/path.db")
	setEnv(t, "WEBBLOG_SERVER_HOST", "0.0.0.0")
	setEnv(t, "WEBBLOG_SERVER_PORT", "3000")
	setEnv(t, "WEBBLOG_ENV", "production")
	setEnv(t, "WEBBLOG_LOG_LEVEL", "debug")
	setEnv(t, "WEBBLOG_ALLOWED_ORIGINS", "https://example.org,https://www.example.org")
	setEnv(t, "WEBBLOG_YOUTUBE_CHANNEL_ID", "@kodingakademi")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/custom/path.db")
	}
	if cfg.ServerHost != "0.0.0.0" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "0.0.0.0")
	}
	if cfg.ServerPort != 3000 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 3000)
	}
	if cfg.Env != "production" {
		t.Errorf("Env = %q, want %q", cfg.Env, "production")
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Errorf("AllowedOrigins = %v, want 2 entries", cfg.AllowedOrigins)
	}
	if cfg.YouTubeChannelID != "@kodingakademi" {
		t.Errorf("YouTubeChannelID = %q, want @kodingakademi", cfg.YouTubeChannelID)
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"development", true},
		{"production", false},
		{"staging", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := Config{Env: tt.env}
			if got := cfg.IsDevelopment(); got != tt.want {
				t.Errorf("IsDevelopment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_ServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"localhost", 8080, "localhost:8080"},
		{"0.0.0.0", 3000, "0.0.0.0:3000"},
		{"127.0.0.1", 443, "127.0.0.1:443"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			cfg := Config{ServerHost: tt.host, ServerPort: tt.port}
			if got := cfg.ServerAddr(); got != tt.want {
				t.Errorf("ServerAddr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfig_IntegrationToggles(t *testing.T) {
	cfg := Config{}
	if cfg.ContactEnabled() || cfg.HolidaysEnabled() || cfg.YouTubeEnabled() {
		t.Error("empty config should report all integrations disabled")
	}

	cfg = Config{
		ResendAPIKey:  "re_123",
		ContactTo:     "hello@example.org",
		GoogleAPIKey:  "g_123",
		YouTubeAPIKey: "yt_123",
	}
	if !cfg.ContactEnabled() {
		t.Error("ContactEnabled() = false, want true")
	}
	if !cfg.HolidaysEnabled() {
		t.Error("HolidaysEnabled() = false, want true")
	}
	if !cfg.YouTubeEnabled() {
		t.Error("YouTubeEnabled() = false, want true")
	}

	// Contact needs both an API key and a destination address.
	cfg = Config{ResendAPIKey: "re_123"}
	if cfg.ContactEnabled() {
		t.Error("ContactEnabled() = true without a destination address")
	}
}
