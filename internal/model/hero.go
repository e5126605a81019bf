// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// HeroImage is an admin-managed carousel slide, ordered by OrderIndex.
type HeroImage struct {
	ID         int64     `json:"id"`
	ImageURL   string    `json:"image_url"`
	OrderIndex int64     `json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
}

// Partner is a logo/link entry on the partners page.
type Partner struct {
	ID       int64  `json:"id"`
	NameKey  string `json:"name_key"`
	LogoURL  string `json:"logo_url"`
	SiteURL  string `json:"site_url,omitempty"`
	Category string `json:"category,omitempty"`
}

// TeamMember is an entry on the team page.
type TeamMember struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	RoleKey    string `json:"role_key"`
	PhotoURL   string `json:"photo_url,omitempty"`
	OrderIndex int64  `json:"order_index"`
}

// Video is an imported YouTube video shown in the video gallery.
type Video struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url"`
	VideoURL     string    `json:"video_url"`
	PublishedAt  time.Time `json:"published_at"`
	CreatedAt    time.Time `json:"created_at"`
}
