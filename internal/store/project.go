// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"nexusapi/internal/models"
)

// ProjectStore handles all project database operations, including the
// per-project section list and discipline links.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore creates a new ProjectStore with the given database connection.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

const projectColumns = `id, title, description, slug, cover_photo, is_active,
	created_by, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (*models.Project, error) {
	p := &models.Project{}
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Slug, &p.CoverPhoto,
		&p.IsActive, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List returns projects matching the filters, newest first, with their
// discipline links loaded.
func (s *ProjectStore) List(f CatalogFilters) ([]models.Project, error) {
	where, args := f.whereClause()
	rows, err := s.db.Query(`SELECT `+projectColumns+` FROM projects`+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].Disciplines, err = s.disciplines(projects[i].ID); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

// FindByID retrieves a project with sections, disciplines, and author.
// Returns nil if not found.
func (s *ProjectStore) FindByID(id int64) (*models.Project, error) {
	p, err := scanProject(s.db.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by id: %w", err)
	}
	return s.hydrate(p)
}

// FindBySlug retrieves an active project by slug for the public site.
// Returns nil if not found or inactive.
func (s *ProjectStore) FindBySlug(slug string) (*models.Project, error) {
	return s.findBySlug(slug, true)
}

// FindBySlugAny retrieves a project by slug regardless of active status,
// for the admin API.
func (s *ProjectStore) FindBySlugAny(slug string) (*models.Project, error) {
	return s.findBySlug(slug, false)
}

func (s *ProjectStore) findBySlug(slug string, activeOnly bool) (*models.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects WHERE slug = $1`
	if activeOnly {
		q += ` AND is_active = TRUE`
	}
	p, err := scanProject(s.db.QueryRow(q, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by slug: %w", err)
	}
	return s.hydrate(p)
}

func (s *ProjectStore) hydrate(p *models.Project) (*models.Project, error) {
	var err error
	if p.Sections, err = projectSections.list(s.db, p.ID); err != nil {
		return nil, err
	}
	if p.Disciplines, err = s.disciplines(p.ID); err != nil {
		return nil, err
	}
	author := &models.User{}
	err = s.db.QueryRow(`SELECT id, name, email FROM users WHERE id = $1`, p.CreatedBy).
		Scan(&author.ID, &author.Name, &author.Email)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("load project author: %w", err)
	}
	if err == nil {
		p.Author = author
	}
	return p, nil
}

func (s *ProjectStore) disciplines(projectID int64) ([]models.Discipline, error) {
	rows, err := s.db.Query(`
		SELECT d.id, d.title, d.slug, d.is_active
		FROM disciplines d
		JOIN discipline_project dp ON dp.discipline_id = d.id
		WHERE dp.project_id = $1
		ORDER BY d.title
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("project disciplines: %w", err)
	}
	defer rows.Close()

	disciplines := []models.Discipline{}
	for rows.Next() {
		var d models.Discipline
		if err := rows.Scan(&d.ID, &d.Title, &d.Slug, &d.IsActive); err != nil {
			return nil, fmt.Errorf("scan project discipline: %w", err)
		}
		disciplines = append(disciplines, d)
	}
	return disciplines, rows.Err()
}

// Create inserts a project with its sections and discipline links in one
// transaction. Returns ErrDuplicate if the slug is taken.
func (s *ProjectStore) Create(p *models.Project, disciplineIDs []int64) (*models.Project, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	defer tx.Rollback()

	created, err := scanProject(tx.QueryRow(`
		INSERT INTO projects (title, description, slug, cover_photo, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+projectColumns,
		p.Title, p.Description, p.Slug, p.CoverPhoto, p.IsActive, p.CreatedBy))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("create project %q: %w", p.Slug, ErrDuplicate)
		}
		return nil, fmt.Errorf("create project: %w", err)
	}
	if err := projectSections.replaceTx(tx, created.ID, p.Sections); err != nil {
		return nil, err
	}
	if err := syncProjectDisciplines(tx, created.ID, disciplineIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return s.FindByID(created.ID)
}

// Update modifies a project, replacing its section list and discipline
// links in one transaction.
func (s *ProjectStore) Update(p *models.Project, disciplineIDs []int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE projects SET title = $1, description = $2, slug = $3, cover_photo = $4,
		                    is_active = $5, updated_at = NOW()
		WHERE id = $6
	`, p.Title, p.Description, p.Slug, p.CoverPhoto, p.IsActive, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update project %q: %w", p.Slug, ErrDuplicate)
		}
		return fmt.Errorf("update project: %w", err)
	}
	if err := projectSections.replaceTx(tx, p.ID, p.Sections); err != nil {
		return err
	}
	if err := syncProjectDisciplines(tx, p.ID, disciplineIDs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

func syncProjectDisciplines(tx *sql.Tx, projectID int64, disciplineIDs []int64) error {
	if _, err := tx.Exec(`DELETE FROM discipline_project WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("clear project disciplines: %w", err)
	}
	for _, id := range disciplineIDs {
		if _, err := tx.Exec(`
			INSERT INTO discipline_project (discipline_id, project_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, id, projectID); err != nil {
			return fmt.Errorf("link project discipline: %w", err)
		}
	}
	return nil
}

// SectionImages returns the stored section image URLs keyed by position.
func (s *ProjectStore) SectionImages(projectID int64) (map[int]string, error) {
	return projectSections.images(s.db, projectID)
}

// Delete removes a project. Sections and links cascade.
func (s *ProjectStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// BulkDelete removes the given projects, recording failures and continuing.
func (s *ProjectStore) BulkDelete(ids []int64) (*BulkResult, error) {
	res := &BulkResult{Errors: []string{}}
	for _, id := range ids {
		result, err := s.db.Exec(`DELETE FROM projects WHERE id = $1`, id)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Failed to delete project %d", id))
			continue
		}
		if n, _ := result.RowsAffected(); n == 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("Project %d not found", id))
			continue
		}
		res.DeletedCount++
	}
	return res, nil
}

// SetActive toggles public visibility of a project.
func (s *ProjectStore) SetActive(id int64, active bool) error {
	return setActive(s.db, "projects", id, active)
}

// BulkSetActive toggles visibility of the given projects, recording
// failures and continuing.
func (s *ProjectStore) BulkSetActive(ids []int64, active bool) (*BulkResult, error) {
	return bulkSetActive(s.db, "projects", "Project", ids, active)
}
