package store

import (
	"errors"
	"testing"
	"time"

	"nexusapi/internal/models"
)

func TestUserStore_CreateAndFind(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)

	email := "create-find@store-test.local"
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE email = $1", email) })

	created, err := users.Create("Ada", email, "strong-password", nil, []string{"view_blogs", "edit_blogs", "bogus_permission"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("created user has no ID")
	}

	found, err := users.FindByEmail(email)
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found == nil {
		t.Fatal("user not found by email")
	}
	if !found.HasPermission("view_blogs") || !found.HasPermission("edit_blogs") {
		t.Errorf("permissions not persisted: %v", found.Permissions)
	}
	if found.HasPermission("bogus_permission") {
		t.Error("unknown permission name should be dropped on create")
	}
	if !users.CheckPassword(found, "strong-password") {
		t.Error("CheckPassword rejected the correct password")
	}
	if users.CheckPassword(found, "wrong") {
		t.Error("CheckPassword accepted a wrong password")
	}
}

func TestUserStore_DuplicateEmail(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)

	email := "duplicate@store-test.local"
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE email = $1", email) })

	if _, err := users.Create("First", email, "password-one", nil, nil); err != nil {
		t.Fatalf("Create first: %v", err)
	}
	_, err := users.Create("Second", email, "password-two", nil, nil)
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("second create err = %v, want ErrDuplicate", err)
	}
}

func TestUserStore_SyncPermissions(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)

	u := seedTestUser(t, db, "sync-perms@store-test.local")

	if err := users.SyncPermissions(u.ID, []string{"view_jobs", "edit_jobs"}); err != nil {
		t.Fatalf("SyncPermissions: %v", err)
	}
	found, err := users.FindByID(u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.HasPermission("view_blogs") {
		t.Error("old permission should be revoked after sync")
	}
	if !found.HasPermission("view_jobs") || !found.HasPermission("edit_jobs") {
		t.Errorf("synced permissions missing: %v", found.Permissions)
	}
}

func TestUserStore_BulkDeleteProtections(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)

	actor := seedTestUser(t, db, "bulk-actor@store-test.local")
	victim := seedTestUser(t, db, "bulk-victim@store-test.local")

	superEmail := "bulk-super@store-test.local"
	super, err := users.Create("Root", superEmail, "root-password", nil, []string{models.PermissionWildcard})
	if err != nil {
		t.Fatalf("create super: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE email = $1", superEmail) })

	// The wildcard holder never shows up in the listing.
	all, err := users.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, u := range all {
		if u.ID == super.ID {
			t.Error("super admin must be excluded from List")
		}
	}

	res, err := users.BulkDelete([]int64{actor.ID, super.ID, victim.ID}, actor.ID)
	if err != nil {
		t.Fatalf("BulkDelete: %v", err)
	}
	if res.DeletedCount != 1 {
		t.Errorf("DeletedCount = %d, want 1", res.DeletedCount)
	}
	if len(res.Errors) != 2 {
		t.Errorf("Errors = %v, want 2 entries (self + super admin)", res.Errors)
	}

	if still, _ := users.FindByID(actor.ID); still == nil {
		t.Error("acting user must not be deleted")
	}
	if still, _ := users.FindByID(super.ID); still == nil {
		t.Error("super admin must not be deleted")
	}
	if gone, _ := users.FindByID(victim.ID); gone != nil {
		t.Error("regular user should be deleted")
	}
}

func TestUserStore_VerificationCode(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)

	u := seedTestUser(t, db, "verify@store-test.local")

	if err := users.SetVerificationCode(u.ID, "123456", time.Now().Add(15*time.Minute)); err != nil {
		t.Fatalf("SetVerificationCode: %v", err)
	}

	ok, err := users.ConsumeVerificationCode(u.ID, "999999")
	if err != nil {
		t.Fatalf("ConsumeVerificationCode wrong: %v", err)
	}
	if ok {
		t.Error("wrong code accepted")
	}

	ok, err = users.ConsumeVerificationCode(u.ID, "123456")
	if err != nil {
		t.Fatalf("ConsumeVerificationCode: %v", err)
	}
	if !ok {
		t.Fatal("correct code rejected")
	}

	// Second use must fail: the code is consumed.
	ok, _ = users.ConsumeVerificationCode(u.ID, "123456")
	if ok {
		t.Error("code accepted twice")
	}
}

func TestUserStore_ExpiredVerificationCode(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)

	u := seedTestUser(t, db, "verify-expired@store-test.local")

	if err := users.SetVerificationCode(u.ID, "123456", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("SetVerificationCode: %v", err)
	}
	ok, err := users.ConsumeVerificationCode(u.ID, "123456")
	if err != nil {
		t.Fatalf("ConsumeVerificationCode: %v", err)
	}
	if ok {
		t.Error("expired code accepted")
	}
}
