// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"nexusapi/internal/models"
)

// DisciplineStore handles all discipline database operations. Links to
// services and projects are owned by their respective stores; this store
// only reads them back for display.
type DisciplineStore struct {
	db *sql.DB
}

// NewDisciplineStore creates a new DisciplineStore with the given database connection.
func NewDisciplineStore(db *sql.DB) *DisciplineStore {
	return &DisciplineStore{db: db}
}

const disciplineColumns = `id, title, description, slug, cover_photo, is_active,
	created_by, created_at, updated_at`

func scanDiscipline(row interface{ Scan(...any) error }) (*models.Discipline, error) {
	d := &models.Discipline{}
	err := row.Scan(&d.ID, &d.Title, &d.Description, &d.Slug, &d.CoverPhoto,
		&d.IsActive, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// List returns disciplines matching the filters, newest first.
func (s *DisciplineStore) List(f CatalogFilters) ([]models.Discipline, error) {
	where, args := f.whereClause()
	rows, err := s.db.Query(`SELECT `+disciplineColumns+` FROM disciplines`+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list disciplines: %w", err)
	}
	defer rows.Close()

	var disciplines []models.Discipline
	for rows.Next() {
		d, err := scanDiscipline(rows)
		if err != nil {
			return nil, fmt.Errorf("scan discipline: %w", err)
		}
		disciplines = append(disciplines, *d)
	}
	return disciplines, rows.Err()
}

// FindByID retrieves a discipline with its sections and linked services
// and projects. Returns nil if not found.
func (s *DisciplineStore) FindByID(id int64) (*models.Discipline, error) {
	d, err := scanDiscipline(s.db.QueryRow(`SELECT `+disciplineColumns+` FROM disciplines WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find discipline by id: %w", err)
	}
	return s.hydrate(d, false)
}

// FindBySlug retrieves an active discipline by slug for the public site,
// with only active linked services and projects. Returns nil if not
// found or inactive.
func (s *DisciplineStore) FindBySlug(slug string) (*models.Discipline, error) {
	d, err := scanDiscipline(s.db.QueryRow(`
		SELECT `+disciplineColumns+` FROM disciplines WHERE slug = $1 AND is_active = TRUE
	`, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find discipline by slug: %w", err)
	}
	return s.hydrate(d, true)
}

func (s *DisciplineStore) hydrate(d *models.Discipline, activeOnly bool) (*models.Discipline, error) {
	var err error
	if d.Sections, err = disciplineSections.list(s.db, d.ID); err != nil {
		return nil, err
	}

	activeFilter := ""
	if activeOnly {
		activeFilter = " AND is_active = TRUE"
	}

	d.Services = []models.Service{}
	rows, err := s.db.Query(`
		SELECT id, title, slug, cover_photo, is_active FROM services
		WHERE id IN (SELECT service_id FROM discipline_service WHERE discipline_id = $1)`+activeFilter+`
		ORDER BY title
	`, d.ID)
	if err != nil {
		return nil, fmt.Errorf("discipline services: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var svc models.Service
		if err := rows.Scan(&svc.ID, &svc.Title, &svc.Slug, &svc.CoverPhoto, &svc.IsActive); err != nil {
			return nil, fmt.Errorf("scan discipline service: %w", err)
		}
		d.Services = append(d.Services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	d.Projects = []models.Project{}
	prows, err := s.db.Query(`
		SELECT id, title, slug, cover_photo, is_active FROM projects
		WHERE id IN (SELECT project_id FROM discipline_project WHERE discipline_id = $1)`+activeFilter+`
		ORDER BY title
	`, d.ID)
	if err != nil {
		return nil, fmt.Errorf("discipline projects: %w", err)
	}
	defer prows.Close()
	for prows.Next() {
		var p models.Project
		if err := prows.Scan(&p.ID, &p.Title, &p.Slug, &p.CoverPhoto, &p.IsActive); err != nil {
			return nil, fmt.Errorf("scan discipline project: %w", err)
		}
		d.Projects = append(d.Projects, p)
	}
	return d, prows.Err()
}

// Create inserts a discipline with its sections in one transaction.
// Returns ErrDuplicate if the slug is taken.
func (s *DisciplineStore) Create(d *models.Discipline) (*models.Discipline, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("create discipline: %w", err)
	}
	defer tx.Rollback()

	created, err := scanDiscipline(tx.QueryRow(`
		INSERT INTO disciplines (title, description, slug, cover_photo, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+disciplineColumns,
		d.Title, d.Description, d.Slug, d.CoverPhoto, d.IsActive, d.CreatedBy))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("create discipline %q: %w", d.Slug, ErrDuplicate)
		}
		return nil, fmt.Errorf("create discipline: %w", err)
	}
	if err := disciplineSections.replaceTx(tx, created.ID, d.Sections); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create discipline: %w", err)
	}
	return s.FindByID(created.ID)
}

// Update modifies a discipline, replacing its section list in one transaction.
func (s *DisciplineStore) Update(d *models.Discipline) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("update discipline: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE disciplines SET title = $1, description = $2, slug = $3, cover_photo = $4,
		                       is_active = $5, updated_at = NOW()
		WHERE id = $6
	`, d.Title, d.Description, d.Slug, d.CoverPhoto, d.IsActive, d.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update discipline %q: %w", d.Slug, ErrDuplicate)
		}
		return fmt.Errorf("update discipline: %w", err)
	}
	if err := disciplineSections.replaceTx(tx, d.ID, d.Sections); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update discipline: %w", err)
	}
	return nil
}

// SectionImages returns the stored section image URLs keyed by position.
func (s *DisciplineStore) SectionImages(disciplineID int64) (map[int]string, error) {
	return disciplineSections.images(s.db, disciplineID)
}

// Delete removes a discipline. Sections and links cascade.
func (s *DisciplineStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM disciplines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete discipline: %w", err)
	}
	return nil
}

// BulkDelete removes the given disciplines, recording failures and continuing.
func (s *DisciplineStore) BulkDelete(ids []int64) (*BulkResult, error) {
	res := &BulkResult{Errors: []string{}}
	for _, id := range ids {
		result, err := s.db.Exec(`DELETE FROM disciplines WHERE id = $1`, id)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Failed to delete discipline %d", id))
			continue
		}
		if n, _ := result.RowsAffected(); n == 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("Discipline %d not found", id))
			continue
		}
		res.DeletedCount++
	}
	return res, nil
}

// SetActive toggles public visibility of a discipline.
func (s *DisciplineStore) SetActive(id int64, active bool) error {
	return setActive(s.db, "disciplines", id, active)
}

// BulkSetActive toggles visibility of the given disciplines, recording
// failures and continuing.
func (s *DisciplineStore) BulkSetActive(ids []int64, active bool) (*BulkResult, error) {
	return bulkSetActive(s.db, "disciplines", "Discipline", ids, active)
}
