package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"nexusapi/internal/models"
)

// Seed populates the database with the bootstrap admin accounts. It is a
// no-op once any user exists. The super-admin receives the wildcard
// permission, which the permission gate treats as every permission at
// once; the demo admin receives a curated read-mostly subset.
func Seed(db *sql.DB, superEmail, superPassword string) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	if err := seedUser(db, "Super Admin", superEmail, superPassword,
		[]string{models.PermissionWildcard}); err != nil {
		return err
	}

	if err := seedUser(db, "Demo Admin", "demo@nexusengineering.com", "DemoAdmin2026!",
		[]string{
			"view_admins",
			"view_services",
			"view_projects",
			"view_jobs",
			"view_job_applications",
			"view_blogs",
			"view_disciplines",
			"view_feedbacks",
			"view_settings",
			"create_blogs",
			"edit_blogs",
		}); err != nil {
		return err
	}

	slog.Info("database seeded with bootstrap admins", "super_admin", superEmail)
	return nil
}

func seedUser(db *sql.DB, name, email, password string, permissions []string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	var id int64
	err = db.QueryRow(`
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id
	`, name, email, string(hash)).Scan(&id)
	if err != nil {
		return fmt.Errorf("seed insert user %s: %w", email, err)
	}

	for _, p := range permissions {
		if _, err := db.Exec(`
			INSERT INTO user_permissions (user_id, permission) VALUES ($1, $2)
		`, id, p); err != nil {
			return fmt.Errorf("seed grant %s to %s: %w", p, email, err)
		}
	}
	return nil
}
