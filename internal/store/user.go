// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"nexusapi/internal/models"
)

// UserStore handles all admin-user database operations, including the
// direct permission grants in user_permissions.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, name, email, password_hash, profile_image, bio, is_active,
	email_verification_code, email_verification_expires_at, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.ProfileImage, &u.Bio,
		&u.IsActive, &u.VerificationCode, &u.VerificationExpiresAt,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// FindByEmail retrieves a user with permissions loaded. Returns nil if
// not found.
func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	u, err := scanUser(s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if err := s.loadPermissions(u); err != nil {
		return nil, err
	}
	return u, nil
}

// FindByID retrieves a user with permissions loaded. Returns nil if not found.
func (s *UserStore) FindByID(id int64) (*models.User, error) {
	u, err := scanUser(s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	if err := s.loadPermissions(u); err != nil {
		return nil, err
	}
	return u, nil
}

// List returns all users ordered by creation date, permissions included.
// Wildcard super-admins are excluded from the listing.
func (s *UserStore) List() ([]models.User, error) {
	rows, err := s.db.Query(`
		SELECT ` + userColumns + ` FROM users
		WHERE NOT EXISTS (
			SELECT 1 FROM user_permissions
			WHERE user_id = users.id AND permission = '*'
		)
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range users {
		if err := s.loadPermissions(&users[i]); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// Create inserts a new user with a bcrypt-hashed password and the given
// permission grants. Returns ErrDuplicate if the email is taken.
func (s *UserStore) Create(name, email, password string, bio *string, permissions []string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	defer tx.Rollback()

	u, err := scanUser(tx.QueryRow(`
		INSERT INTO users (name, email, password_hash, bio)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		name, email, string(hash), bio))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("create user %s: %w", email, ErrDuplicate)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	if err := syncPermissionsTx(tx, u.ID, permissions); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	u.Permissions = normalizePermissions(permissions)
	return u, nil
}

// Update modifies a user's profile fields. Permissions are managed
// separately with SyncPermissions.
func (s *UserStore) Update(u *models.User) error {
	_, err := s.db.Exec(`
		UPDATE users SET name = $1, email = $2, profile_image = $3, bio = $4,
		                 is_active = $5, updated_at = NOW()
		WHERE id = $6
	`, u.Name, u.Email, u.ProfileImage, u.Bio, u.IsActive, u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update user %d: %w", u.ID, ErrDuplicate)
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// UpdatePassword replaces the user's password hash.
func (s *UserStore) UpdatePassword(userID int64, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = s.db.Exec(`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		string(hash), userID)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// Delete removes a user by ID.
func (s *UserStore) Delete(userID int64) error {
	_, err := s.db.Exec(`DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// BulkDelete removes the given users, skipping the acting user and any
// wildcard super-admin. Every skipped or failed item is recorded and the
// loop continues.
func (s *UserStore) BulkDelete(ids []int64, actorID int64) (*BulkResult, error) {
	res := &BulkResult{Errors: []string{}}
	for _, id := range ids {
		if id == actorID {
			res.Errors = append(res.Errors, "Cannot delete your own account")
			continue
		}
		u, err := s.FindByID(id)
		if err != nil {
			return nil, err
		}
		if u == nil {
			res.Errors = append(res.Errors, fmt.Sprintf("User %d not found", id))
			continue
		}
		if u.IsSuperAdmin() {
			res.Errors = append(res.Errors, fmt.Sprintf("Cannot delete super admin %s", u.Email))
			continue
		}
		if err := s.Delete(id); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Failed to delete user %s", u.Email))
			continue
		}
		res.DeletedCount++
	}
	return res, nil
}

// SetActive enables or disables an account. Returns sql.ErrNoRows when
// the user does not exist.
func (s *UserStore) SetActive(id int64, active bool) error {
	return setActive(s.db, "users", id, active)
}

// BulkSetActive enables or disables the given accounts, recording
// failures and continuing. The acting admin and super-admin accounts
// are never deactivated.
func (s *UserStore) BulkSetActive(ids []int64, active bool, actorID int64) (*BulkResult, error) {
	res := &BulkResult{Errors: []string{}}
	for _, id := range ids {
		if !active && id == actorID {
			res.Errors = append(res.Errors, "Cannot deactivate your own account")
			continue
		}
		u, err := s.FindByID(id)
		if err != nil {
			return nil, err
		}
		if u == nil {
			res.Errors = append(res.Errors, fmt.Sprintf("User %d not found", id))
			continue
		}
		if !active && u.IsSuperAdmin() {
			res.Errors = append(res.Errors, fmt.Sprintf("Cannot deactivate super admin %s", u.Email))
			continue
		}
		if err := s.SetActive(id, active); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Failed to update user %s", u.Email))
			continue
		}
		res.UpdatedCount++
	}
	return res, nil
}

// SyncPermissions replaces a user's permission grants with the given set.
func (s *UserStore) SyncPermissions(userID int64, permissions []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("sync permissions: %w", err)
	}
	defer tx.Rollback()
	if err := syncPermissionsTx(tx, userID, permissions); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sync permissions: %w", err)
	}
	return nil
}

func syncPermissionsTx(tx *sql.Tx, userID int64, permissions []string) error {
	if _, err := tx.Exec(`DELETE FROM user_permissions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear permissions: %w", err)
	}
	for _, p := range normalizePermissions(permissions) {
		if _, err := tx.Exec(`
			INSERT INTO user_permissions (user_id, permission) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, userID, p); err != nil {
			return fmt.Errorf("grant permission %s: %w", p, err)
		}
	}
	return nil
}

// normalizePermissions drops unknown names, keeping the wildcard.
func normalizePermissions(permissions []string) []string {
	kept := make([]string, 0, len(permissions))
	for _, p := range permissions {
		if p == models.PermissionWildcard || models.ValidPermission(p) {
			kept = append(kept, p)
		}
	}
	return kept
}

func (s *UserStore) loadPermissions(u *models.User) error {
	rows, err := s.db.Query(`
		SELECT permission FROM user_permissions WHERE user_id = $1 ORDER BY permission
	`, u.ID)
	if err != nil {
		return fmt.Errorf("load permissions: %w", err)
	}
	defer rows.Close()

	u.Permissions = []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return fmt.Errorf("scan permission: %w", err)
		}
		u.Permissions = append(u.Permissions, p)
	}
	return rows.Err()
}

// CheckPassword verifies a plaintext password against the stored hash.
func (s *UserStore) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// SetVerificationCode stores a profile-change verification code with its
// expiry.
func (s *UserStore) SetVerificationCode(userID int64, code string, expiresAt time.Time) error {
	_, err := s.db.Exec(`
		UPDATE users SET email_verification_code = $1, email_verification_expires_at = $2,
		                 updated_at = NOW()
		WHERE id = $3
	`, code, expiresAt, userID)
	if err != nil {
		return fmt.Errorf("set verification code: %w", err)
	}
	return nil
}

// ConsumeVerificationCode checks a verification code against the stored
// value and expiry, clearing it on success. Returns false for a wrong or
// expired code.
func (s *UserStore) ConsumeVerificationCode(userID int64, code string) (bool, error) {
	var stored *string
	var expires *time.Time
	err := s.db.QueryRow(`
		SELECT email_verification_code, email_verification_expires_at FROM users WHERE id = $1
	`, userID).Scan(&stored, &expires)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read verification code: %w", err)
	}
	if stored == nil || *stored != code || expires == nil || time.Now().After(*expires) {
		return false, nil
	}
	_, err = s.db.Exec(`
		UPDATE users SET email_verification_code = NULL, email_verification_expires_at = NULL,
		                 updated_at = NOW()
		WHERE id = $1
	`, userID)
	if err != nil {
		return false, fmt.Errorf("clear verification code: %w", err)
	}
	return true, nil
}
