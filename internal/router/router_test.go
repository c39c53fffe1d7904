// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

// Package router tests verify the routing configuration: the health
// endpoint, the admin auth gate, and the CORS preflight handling.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"nexusapi/internal/auth"
	"nexusapi/internal/handlers"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	tokens := auth.NewManager("test-secret", 60, rdb)
	return New(Deps{
		Tokens:         tokens,
		Auth:           &handlers.Auth{},
		Admin:          &handlers.Admin{},
		Public:         &handlers.Public{},
		AllowedOrigins: []string{"https://nexusengineering.com"},
	})
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	testRouter(t).ServeHTTP(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	router := testRouter(t)

	paths := []struct {
		method, path string
	}{
		{"GET", "/admin/users"},
		{"GET", "/admin/blogs"},
		{"POST", "/admin/jobs"},
		{"GET", "/admin/job-applications"},
		{"GET", "/admin/services/slug/engineering"},
		{"PATCH", "/admin/job-applications/abc/notes"},
		{"PUT", "/admin/settings"},
		{"POST", "/admin/auth/logout"},
	}
	for _, p := range paths {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(p.method, p.path, nil)
		router.ServeHTTP(w, r)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without token: got %d, want 401", p.method, p.path, w.Code)
		}
	}
}

func TestAdminRoutesRejectGarbageToken(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/admin/users", nil)
	r.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: got %d, want 401", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("OPTIONS", "/public/blogs", nil)
	r.Header.Set("Origin", "https://nexusengineering.com")
	r.Header.Set("Access-Control-Request-Method", "GET")
	router.ServeHTTP(w, r)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://nexusengineering.com" {
		t.Errorf("allow-origin: got %q, want the configured origin", got)
	}
}
