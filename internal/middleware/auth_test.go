package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"nexusapi/internal/auth"
)

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func testTokens(t *testing.T) *auth.Manager {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return auth.NewManager("test-secret", 60, rdb)
}

func TestRequireAuth_NoToken_Returns401(t *testing.T) {
	tokens := testTokens(t)
	next, called := okHandler()

	req := httptest.NewRequest(http.MethodGet, "/admin/blogs", nil)
	rec := httptest.NewRecorder()
	RequireAuth(tokens)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if *called {
		t.Error("handler was called despite missing token")
	}
}

func TestRequireAuth_ValidToken_AttachesPrincipal(t *testing.T) {
	tokens := testTokens(t)

	token, err := tokens.Issue(9, "Ops", "ops@test.local", []string{"view_blogs"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var got *Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = PrincipalFromCtx(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/blogs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	RequireAuth(tokens)(next).ServeHTTP(rec, req)

	if got == nil {
		t.Fatal("principal not attached")
	}
	if got.ID != 9 || got.Email != "ops@test.local" {
		t.Errorf("principal = %+v", got)
	}
}

func TestRequirePermission_Missing_Returns403(t *testing.T) {
	next, called := okHandler()

	p := &Principal{ID: 1, Email: "a@test.local", Permissions: []string{"view_blogs"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/blogs", nil)
	req = req.WithContext(CtxWithPrincipal(req.Context(), p))

	rec := httptest.NewRecorder()
	RequirePermission("edit_blogs")(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if *called {
		t.Error("handler was called despite missing permission")
	}

	var body struct {
		Success            bool   `json:"success"`
		RequiredPermission string `json:"required_permission"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body: %v", err)
	}
	if body.Success || body.RequiredPermission != "edit_blogs" {
		t.Errorf("body = %+v", body)
	}
}

func TestRequirePermission_Wildcard_AlwaysPasses(t *testing.T) {
	p := &Principal{ID: 1, Email: "root@test.local", Permissions: []string{"*"}}

	for _, perm := range []string{"edit_blogs", "delete_admins", "assign_permissions"} {
		next, called := okHandler()
		req := httptest.NewRequest(http.MethodPost, "/admin/x", nil)
		req = req.WithContext(CtxWithPrincipal(req.Context(), p))

		rec := httptest.NewRecorder()
		RequirePermission(perm)(next).ServeHTTP(rec, req)

		if !*called {
			t.Errorf("wildcard principal denied %q", perm)
		}
	}
}

func TestRequirePermission_NoPrincipal_Returns401(t *testing.T) {
	next, called := okHandler()

	req := httptest.NewRequest(http.MethodPost, "/admin/blogs", nil)
	rec := httptest.NewRecorder()
	RequirePermission("edit_blogs")(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if *called {
		t.Error("handler was called without a principal")
	}
}
