// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateVideoDerivesYouTubeFields(t *testing.T) {
	_, q, router := testEnv(t)
	admin := createAdmin(t, q)

	srv := httptest.NewServer(router)
	defer srv.Close()
	client := loginClient(t, srv, admin.Email, testAdminPassword)

	var created struct {
		Data VideoResponse `json:"data"`
	}
	status := doJSON(t, client, http.MethodPost, srv.URL+"/api/v1/admin/videos", VideoRequest{
		Title:    "Rekap Workshop",
		VideoURL: "https://youtu.be/dQw4w9WgXcQ",
	}, &created)
	if status != http.StatusCreated {
		t.Fatalf("status = %d, want %d", status, http.StatusCreated)
	}
	// Share links normalize to the canonical watch URL.
	if created.Data.VideoURL != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("video_url = %q, want canonical watch URL", created.Data.VideoURL)
	}
	if created.Data.EmbedURL != "https://www.youtube.com/embed/dQw4w9WgXcQ" {
		t.Errorf("embed_url = %q", created.Data.EmbedURL)
	}
	if created.Data.ThumbnailURL == "" {
		t.Error("thumbnail should default to the YouTube thumbnail")
	}

	t.Run("same URL updates in place", func(t *testing.T) {
		var again struct {
			Data VideoResponse `json:"data"`
		}
		status := doJSON(t, client, http.MethodPost, srv.URL+"/api/v1/admin/videos", VideoRequest{
			Title:    "Rekap Workshop (final)",
			VideoURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		}, &again)
		if status != http.StatusCreated {
			t.Fatalf("status = %d, want %d", status, http.StatusCreated)
		}
		if again.Data.ID != created.Data.ID {
			t.Errorf("id = %d, want %d (upsert)", again.Data.ID, created.Data.ID)
		}
	})

	t.Run("listing", func(t *testing.T) {
		var resp struct {
			Data []VideoResponse `json:"data"`
			Meta Meta            `json:"meta"`
		}
		status := doJSON(t, srv.Client(), http.MethodGet, srv.URL+"/api/v1/videos", nil, &resp)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want %d", status, http.StatusOK)
		}
		if len(resp.Data) != 1 || resp.Meta.Total != 1 {
			t.Errorf("got %d videos (total %d), want 1", len(resp.Data), resp.Meta.Total)
		}
		if resp.Data[0].Title != "Rekap Workshop (final)" {
			t.Errorf("title = %q, want updated title", resp.Data[0].Title)
		}
	})
}

func TestCreateVideoRejectsNonYouTubeURL(t *testing.T) {
	_, q, router := testEnv(t)
	admin := createAdmin(t, q)

	srv := httptest.NewServer(router)
	defer srv.Close()
	client := loginClient(t, srv, admin.Email, testAdminPassword)

	var errResp ErrorResponse
	status := doJSON(t, client, http.MethodPost, srv.URL+"/api/v1/admin/videos", VideoRequest{
		Title:    "Bukan YouTube",
		VideoURL: "https://vimeo.com/12345",
	}, &errResp)
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", status, http.StatusUnprocessableEntity)
	}
	if _, ok := errResp.Error.Details["video_url"]; !ok {
		t.Errorf("details = %v, want video_url error", errResp.Error.Details)
	}
}

func TestListIcons(t *testing.T) {
	_, _, router := testEnv(t)

	srv := httptest.NewServer(router)
	defer srv.Close()

	var resp struct {
		Data []string `json:"data"`
	}
	status := doJSON(t, srv.Client(), http.MethodGet, srv.URL+"/api/v1/icons", nil, &resp)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want %d", status, http.StatusOK)
	}
	if len(resp.Data) == 0 {
		t.Fatal("icon registry should not be empty")
	}
	for i := 1; i < len(resp.Data); i++ {
		if resp.Data[i] < resp.Data[i-1] {
			t.Fatal("icon names should be sorted")
		}
	}
}
