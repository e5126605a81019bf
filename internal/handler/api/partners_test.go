// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xwalt19/webblog-sub001/internal/model"
)

func TestPartnerCRUD(t *testing.T) {
	_, q, router := testEnv(t)
	admin := createAdmin(t, q)

	srv := httptest.NewServer(router)
	defer srv.Close()
	client := loginClient(t, srv, admin.Email, testAdminPassword)

	var created struct {
		Data model.Partner `json:"data"`
	}
	status := doJSON(t, client, http.MethodPost, srv.URL+"/api/v1/admin/partners", PartnerRequest{
		NameKey:  "partner.kampus_a",
		LogoURL:  "/uploads/kampus-a.png",
		Category: "school",
	}, &created)
	if status != http.StatusCreated {
		t.Fatalf("create status = %d, want %d", status, http.StatusCreated)
	}

	statusB := doJSON(t, client, http.MethodPost, srv.URL+"/api/v1/admin/partners", PartnerRequest{
		NameKey:  "partner.perusahaan_b",
		LogoURL:  "/uploads/perusahaan-b.png",
		Category: "company",
	}, nil)
	if statusB != http.StatusCreated {
		t.Fatalf("second create status = %d, want %d", statusB, http.StatusCreated)
	}

	t.Run("category filter", func(t *testing.T) {
		var resp struct {
			Data []model.Partner `json:"data"`
		}
		status := doJSON(t, srv.Client(), http.MethodGet, srv.URL+"/api/v1/partners?category=school", nil, &resp)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want %d", status, http.StatusOK)
		}
		if len(resp.Data) != 1 || resp.Data[0].NameKey != "partner.kampus_a" {
			t.Errorf("partners = %+v, want only the school partner", resp.Data)
		}
	})

	t.Run("update", func(t *testing.T) {
		var resp struct {
			Data model.Partner `json:"data"`
		}
		status := doJSON(t, client, http.MethodPut, srv.URL+"/api/v1/admin/partners/"+jsonNumber(created.Data.ID), PartnerRequest{
			NameKey: "partner.kampus_a",
			LogoURL: "/uploads/kampus-a-v2.png",
			SiteURL: "https://kampus-a.example",
		}, &resp)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want %d", status, http.StatusOK)
		}
		if resp.Data.LogoURL != "/uploads/kampus-a-v2.png" {
			t.Errorf("logo = %q, want updated logo", resp.Data.LogoURL)
		}
	})

	t.Run("delete", func(t *testing.T) {
		status := doJSON(t, client, http.MethodDelete, srv.URL+"/api/v1/admin/partners/"+jsonNumber(created.Data.ID), nil, nil)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want %d", status, http.StatusOK)
		}
		var resp struct {
			Data []model.Partner `json:"data"`
		}
		doJSON(t, srv.Client(), http.MethodGet, srv.URL+"/api/v1/partners", nil, &resp)
		if len(resp.Data) != 1 {
			t.Errorf("got %d partners after delete, want 1", len(resp.Data))
		}
	})
}

func TestCreatePartnerValidation(t *testing.T) {
	_, q, router := testEnv(t)
	admin := createAdmin(t, q)

	srv := httptest.NewServer(router)
	defer srv.Close()
	client := loginClient(t, srv, admin.Email, testAdminPassword)

	var errResp ErrorResponse
	status := doJSON(t, client, http.MethodPost, srv.URL+"/api/v1/admin/partners", PartnerRequest{}, &errResp)
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", status, http.StatusUnprocessableEntity)
	}
	for _, field := range []string{"name_key", "logo_url"} {
		if _, ok := errResp.Error.Details[field]; !ok {
			t.Errorf("details = %v, want %s error", errResp.Error.Details, field)
		}
	}
}
