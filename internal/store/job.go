// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"nexusapi/internal/models"
)

// JobStore handles all job-posting database operations.
type JobStore struct {
	db *sql.DB
}

// NewJobStore creates a new JobStore with the given database connection.
func NewJobStore(db *sql.DB) *JobStore {
	return &JobStore{db: db}
}

// JobFilters narrows List results. Zero values mean "no filter".
type JobFilters struct {
	Type     string
	Location string
	Active   *bool
	Search   string
}

const jobColumns = `id, title, slug, location, type, key_responsibilities,
	preferred_qualifications, applications_count, is_active, created_by,
	created_at, updated_at`

func scanJob(row interface{ Scan(...any) error }) (*models.Job, error) {
	j := &models.Job{}
	var responsibilities, qualifications []byte
	err := row.Scan(
		&j.ID, &j.Title, &j.Slug, &j.Location, &j.Type,
		&responsibilities, &qualifications, &j.ApplicationsCount,
		&j.IsActive, &j.CreatedBy, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := scanStrings(responsibilities, &j.KeyResponsibilities); err != nil {
		return nil, fmt.Errorf("scan job responsibilities: %w", err)
	}
	if err := scanStrings(qualifications, &j.PreferredQualifications); err != nil {
		return nil, fmt.Errorf("scan job qualifications: %w", err)
	}
	return j, nil
}

// List returns jobs matching the filters, newest first.
func (s *JobStore) List(f JobFilters) ([]models.Job, error) {
	var where []string
	var args []any
	if f.Type != "" {
		args = append(args, f.Type)
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	if f.Location != "" {
		args = append(args, f.Location)
		where = append(where, fmt.Sprintf("location = $%d", len(args)))
	}
	if f.Active != nil {
		args = append(args, *f.Active)
		where = append(where, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR location ILIKE $%d)", len(args), len(args)))
	}

	query := `SELECT ` + jobColumns + ` FROM jobs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

// FindByID retrieves a job with its author. Returns nil if not found.
func (s *JobStore) FindByID(id int64) (*models.Job, error) {
	j, err := scanJob(s.db.QueryRow(`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find job by id: %w", err)
	}
	author := &models.User{}
	err = s.db.QueryRow(`SELECT id, name, email FROM users WHERE id = $1`, j.CreatedBy).
		Scan(&author.ID, &author.Name, &author.Email)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("load job author: %w", err)
	}
	if err == nil {
		j.Author = author
	}
	return j, nil
}

// FindBySlug retrieves an active job by slug for the public site.
// Returns nil if not found or inactive.
func (s *JobStore) FindBySlug(slug string) (*models.Job, error) {
	return s.findBySlug(slug, true)
}

// FindBySlugAny retrieves a job by slug regardless of active status, for
// the admin API.
func (s *JobStore) FindBySlugAny(slug string) (*models.Job, error) {
	return s.findBySlug(slug, false)
}

func (s *JobStore) findBySlug(slug string, activeOnly bool) (*models.Job, error) {
	q := `SELECT ` + jobColumns + ` FROM jobs WHERE slug = $1`
	if activeOnly {
		q += ` AND is_active = TRUE`
	}
	j, err := scanJob(s.db.QueryRow(q, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find job by slug: %w", err)
	}
	return j, nil
}

// Create inserts a new job. Returns ErrDuplicate if the slug is taken.
func (s *JobStore) Create(j *models.Job) (*models.Job, error) {
	responsibilities, err := jsonStrings(j.KeyResponsibilities)
	if err != nil {
		return nil, fmt.Errorf("encode job responsibilities: %w", err)
	}
	qualifications, err := jsonStrings(j.PreferredQualifications)
	if err != nil {
		return nil, fmt.Errorf("encode job qualifications: %w", err)
	}
	created, err := scanJob(s.db.QueryRow(`
		INSERT INTO jobs (title, slug, location, type, key_responsibilities,
		                  preferred_qualifications, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+jobColumns,
		j.Title, j.Slug, j.Location, j.Type, responsibilities, qualifications,
		j.IsActive, j.CreatedBy))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("create job %q: %w", j.Slug, ErrDuplicate)
		}
		return nil, fmt.Errorf("create job: %w", err)
	}
	return created, nil
}

// Update modifies an existing job.
func (s *JobStore) Update(j *models.Job) error {
	responsibilities, err := jsonStrings(j.KeyResponsibilities)
	if err != nil {
		return fmt.Errorf("encode job responsibilities: %w", err)
	}
	qualifications, err := jsonStrings(j.PreferredQualifications)
	if err != nil {
		return fmt.Errorf("encode job qualifications: %w", err)
	}
	_, err = s.db.Exec(`
		UPDATE jobs SET title = $1, slug = $2, location = $3, type = $4,
		                key_responsibilities = $5, preferred_qualifications = $6,
		                is_active = $7, updated_at = NOW()
		WHERE id = $8
	`, j.Title, j.Slug, j.Location, j.Type, responsibilities, qualifications,
		j.IsActive, j.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update job %q: %w", j.Slug, ErrDuplicate)
		}
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

// Delete removes a job. Returns ErrConflict when applications still
// reference it; they must be handled first.
func (s *JobStore) Delete(id int64) error {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM job_applications WHERE job_id = $1`, id).Scan(&n); err != nil {
		return fmt.Errorf("count job applications: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("job %d has %d applications: %w", id, n, ErrConflict)
	}
	_, err := s.db.Exec(`DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

// BulkDelete removes the given jobs, recording failures (including
// jobs blocked by existing applications) and continuing.
func (s *JobStore) BulkDelete(ids []int64) (*BulkResult, error) {
	res := &BulkResult{Errors: []string{}}
	for _, id := range ids {
		j, err := s.FindByID(id)
		if err != nil {
			return nil, err
		}
		if j == nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Job %d not found", id))
			continue
		}
		if err := s.Delete(id); err != nil {
			if errors.Is(err, ErrConflict) {
				res.Errors = append(res.Errors, fmt.Sprintf("Cannot delete %q: it has applications", j.Title))
			} else {
				res.Errors = append(res.Errors, fmt.Sprintf("Failed to delete %q", j.Title))
			}
			continue
		}
		res.DeletedCount++
	}
	return res, nil
}

// Locations returns the distinct locations of active jobs.
func (s *JobStore) Locations() ([]string, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT location FROM jobs WHERE is_active = TRUE ORDER BY location
	`)
	if err != nil {
		return nil, fmt.Errorf("job locations: %w", err)
	}
	defer rows.Close()

	locations := []string{}
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			return nil, fmt.Errorf("scan job location: %w", err)
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

// JobStatistics summarizes the jobs table for the admin dashboard.
type JobStatistics struct {
	Total             int            `json:"total"`
	Active            int            `json:"active"`
	Inactive          int            `json:"inactive"`
	TotalApplications int            `json:"total_applications"`
	ByType            map[string]int `json:"by_type"`
}

// Statistics computes dashboard counters.
func (s *JobStore) Statistics() (*JobStatistics, error) {
	st := &JobStatistics{ByType: map[string]int{}}
	err := s.db.QueryRow(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_active),
		       COUNT(*) FILTER (WHERE NOT is_active),
		       COALESCE(SUM(applications_count), 0)
		FROM jobs
	`).Scan(&st.Total, &st.Active, &st.Inactive, &st.TotalApplications)
	if err != nil {
		return nil, fmt.Errorf("job statistics: %w", err)
	}

	rows, err := s.db.Query(`SELECT type, COUNT(*) FROM jobs GROUP BY type`)
	if err != nil {
		return nil, fmt.Errorf("job statistics by type: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var jobType string
		var n int
		if err := rows.Scan(&jobType, &n); err != nil {
			return nil, fmt.Errorf("scan job type count: %w", err)
		}
		st.ByType[jobType] = n
	}
	return st, rows.Err()
}

// SetActive opens or closes a job posting.
func (s *JobStore) SetActive(id int64, active bool) error {
	return setActive(s.db, "jobs", id, active)
}

// BulkSetActive opens or closes the given job postings, recording
// failures and continuing.
func (s *JobStore) BulkSetActive(ids []int64, active bool) (*BulkResult, error) {
	return bulkSetActive(s.db, "jobs", "Job", ids, active)
}
