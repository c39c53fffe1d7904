package auth

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewManager("test-jwt-secret", 60, rdb)
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()

	token, err := m.Issue(42, "Jane Admin", "jane@test.local", []string{"view_blogs", "edit_blogs"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := m.Verify(ctx, token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	id, err := claims.UserID()
	if err != nil || id != 42 {
		t.Errorf("UserID = %d, %v; want 42", id, err)
	}
	if claims.Email != "jane@test.local" {
		t.Errorf("Email = %q", claims.Email)
	}
	if len(claims.Permissions) != 2 || claims.Permissions[0] != "view_blogs" {
		t.Errorf("Permissions = %v", claims.Permissions)
	}
}

func TestVerify_RejectsForgedToken(t *testing.T) {
	m := testManager(t)
	other := testManager(t) // different miniredis, same secret string

	token, err := other.Issue(1, "A", "a@test.local", nil)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Same secret should verify fine across managers.
	if _, err := m.Verify(context.Background(), token); err != nil {
		t.Fatalf("Verify with same secret: %v", err)
	}

	// Different secret must be rejected.
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	forged := NewManager("other-secret", 60, rdb)
	if _, err := forged.Verify(context.Background(), token); err == nil {
		t.Fatal("Verify accepted token signed with a different secret")
	}
}

func TestVerify_RejectsGarbage(t *testing.T) {
	m := testManager(t)

	for _, in := range []string{"", "abc", "a.b.c"} {
		if _, err := m.Verify(context.Background(), in); err == nil {
			t.Errorf("Verify(%q) accepted garbage", in)
		}
	}
}

func TestRevoke_DeniesToken(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()

	token, err := m.Issue(7, "B", "b@test.local", nil)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := m.Verify(ctx, token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if err := m.Revoke(ctx, claims); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if _, err := m.Verify(ctx, token); err == nil {
		t.Fatal("Verify accepted a revoked token")
	}
}
