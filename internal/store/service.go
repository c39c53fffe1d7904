// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"nexusapi/internal/models"
)

// CatalogFilters narrows List results for services, projects, and
// disciplines. Zero values mean "no filter".
type CatalogFilters struct {
	Active *bool
	Search string
}

func (f CatalogFilters) whereClause() (string, []any) {
	var where []string
	var args []any
	if f.Active != nil {
		args = append(args, *f.Active)
		where = append(where, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if len(where) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

// ServiceStore handles all service database operations, including the
// per-service section list and discipline links.
type ServiceStore struct {
	db *sql.DB
}

// NewServiceStore creates a new ServiceStore with the given database connection.
func NewServiceStore(db *sql.DB) *ServiceStore {
	return &ServiceStore{db: db}
}

const serviceColumns = `id, title, description, slug, cover_photo, is_active,
	created_by, created_at, updated_at`

func scanService(row interface{ Scan(...any) error }) (*models.Service, error) {
	svc := &models.Service{}
	err := row.Scan(&svc.ID, &svc.Title, &svc.Description, &svc.Slug, &svc.CoverPhoto,
		&svc.IsActive, &svc.CreatedBy, &svc.CreatedAt, &svc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// List returns services matching the filters, newest first, with their
// discipline links loaded.
func (s *ServiceStore) List(f CatalogFilters) ([]models.Service, error) {
	where, args := f.whereClause()
	rows, err := s.db.Query(`SELECT `+serviceColumns+` FROM services`+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var services []models.Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, *svc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range services {
		if services[i].Disciplines, err = s.disciplines(services[i].ID); err != nil {
			return nil, err
		}
	}
	return services, nil
}

// FindByID retrieves a service with sections, disciplines, and author.
// Returns nil if not found.
func (s *ServiceStore) FindByID(id int64) (*models.Service, error) {
	svc, err := scanService(s.db.QueryRow(`SELECT `+serviceColumns+` FROM services WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find service by id: %w", err)
	}
	return s.hydrate(svc)
}

// FindBySlug retrieves an active service by slug for the public site.
// Returns nil if not found or inactive.
func (s *ServiceStore) FindBySlug(slug string) (*models.Service, error) {
	return s.findBySlug(slug, true)
}

// FindBySlugAny retrieves a service by slug regardless of active status,
// for the admin API.
func (s *ServiceStore) FindBySlugAny(slug string) (*models.Service, error) {
	return s.findBySlug(slug, false)
}

func (s *ServiceStore) findBySlug(slug string, activeOnly bool) (*models.Service, error) {
	q := `SELECT ` + serviceColumns + ` FROM services WHERE slug = $1`
	if activeOnly {
		q += ` AND is_active = TRUE`
	}
	svc, err := scanService(s.db.QueryRow(q, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find service by slug: %w", err)
	}
	return s.hydrate(svc)
}

func (s *ServiceStore) hydrate(svc *models.Service) (*models.Service, error) {
	var err error
	if svc.Sections, err = serviceSections.list(s.db, svc.ID); err != nil {
		return nil, err
	}
	if svc.Disciplines, err = s.disciplines(svc.ID); err != nil {
		return nil, err
	}
	author := &models.User{}
	err = s.db.QueryRow(`SELECT id, name, email FROM users WHERE id = $1`, svc.CreatedBy).
		Scan(&author.ID, &author.Name, &author.Email)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("load service author: %w", err)
	}
	if err == nil {
		svc.Author = author
	}
	return svc, nil
}

func (s *ServiceStore) disciplines(serviceID int64) ([]models.Discipline, error) {
	rows, err := s.db.Query(`
		SELECT d.id, d.title, d.slug, d.is_active
		FROM disciplines d
		JOIN discipline_service ds ON ds.discipline_id = d.id
		WHERE ds.service_id = $1
		ORDER BY d.title
	`, serviceID)
	if err != nil {
		return nil, fmt.Errorf("service disciplines: %w", err)
	}
	defer rows.Close()

	disciplines := []models.Discipline{}
	for rows.Next() {
		var d models.Discipline
		if err := rows.Scan(&d.ID, &d.Title, &d.Slug, &d.IsActive); err != nil {
			return nil, fmt.Errorf("scan service discipline: %w", err)
		}
		disciplines = append(disciplines, d)
	}
	return disciplines, rows.Err()
}

// Create inserts a service with its sections and discipline links in one
// transaction. Returns ErrDuplicate if the slug is taken.
func (s *ServiceStore) Create(svc *models.Service, disciplineIDs []int64) (*models.Service, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	defer tx.Rollback()

	created, err := scanService(tx.QueryRow(`
		INSERT INTO services (title, description, slug, cover_photo, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+serviceColumns,
		svc.Title, svc.Description, svc.Slug, svc.CoverPhoto, svc.IsActive, svc.CreatedBy))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("create service %q: %w", svc.Slug, ErrDuplicate)
		}
		return nil, fmt.Errorf("create service: %w", err)
	}
	if err := serviceSections.replaceTx(tx, created.ID, svc.Sections); err != nil {
		return nil, err
	}
	if err := syncServiceDisciplines(tx, created.ID, disciplineIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return s.FindByID(created.ID)
}

// Update modifies a service, replacing its section list and discipline
// links in one transaction.
func (s *ServiceStore) Update(svc *models.Service, disciplineIDs []int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE services SET title = $1, description = $2, slug = $3, cover_photo = $4,
		                    is_active = $5, updated_at = NOW()
		WHERE id = $6
	`, svc.Title, svc.Description, svc.Slug, svc.CoverPhoto, svc.IsActive, svc.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update service %q: %w", svc.Slug, ErrDuplicate)
		}
		return fmt.Errorf("update service: %w", err)
	}
	if err := serviceSections.replaceTx(tx, svc.ID, svc.Sections); err != nil {
		return err
	}
	if err := syncServiceDisciplines(tx, svc.ID, disciplineIDs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	return nil
}

func syncServiceDisciplines(tx *sql.Tx, serviceID int64, disciplineIDs []int64) error {
	if _, err := tx.Exec(`DELETE FROM discipline_service WHERE service_id = $1`, serviceID); err != nil {
		return fmt.Errorf("clear service disciplines: %w", err)
	}
	for _, id := range disciplineIDs {
		if _, err := tx.Exec(`
			INSERT INTO discipline_service (discipline_id, service_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, id, serviceID); err != nil {
			return fmt.Errorf("link service discipline: %w", err)
		}
	}
	return nil
}

// SectionImages returns the stored section image URLs keyed by position.
func (s *ServiceStore) SectionImages(serviceID int64) (map[int]string, error) {
	return serviceSections.images(s.db, serviceID)
}

// Delete removes a service. Sections and links cascade.
func (s *ServiceStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	return nil
}

// BulkDelete removes the given services, recording failures and continuing.
func (s *ServiceStore) BulkDelete(ids []int64) (*BulkResult, error) {
	res := &BulkResult{Errors: []string{}}
	for _, id := range ids {
		result, err := s.db.Exec(`DELETE FROM services WHERE id = $1`, id)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Failed to delete service %d", id))
			continue
		}
		if n, _ := result.RowsAffected(); n == 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("Service %d not found", id))
			continue
		}
		res.DeletedCount++
	}
	return res, nil
}

// SetActive toggles public visibility of a service.
func (s *ServiceStore) SetActive(id int64, active bool) error {
	return setActive(s.db, "services", id, active)
}

// BulkSetActive toggles visibility of the given services, recording
// failures and continuing.
func (s *ServiceStore) BulkSetActive(ids []int64, active bool) (*BulkResult, error) {
	return bulkSetActive(s.db, "services", "Service", ids, active)
}
