// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"nexusapi/internal/models"
)

// ApplicationStore handles all job-application database operations and
// keeps jobs.applications_count in step with inserts and deletes.
type ApplicationStore struct {
	db *sql.DB
}

// NewApplicationStore creates a new ApplicationStore with the given database connection.
func NewApplicationStore(db *sql.DB) *ApplicationStore {
	return &ApplicationStore{db: db}
}

// ApplicationFilters narrows List results. Zero values mean "no filter".
type ApplicationFilters struct {
	JobID  int64
	Status string
	Search string
}

const applicationColumns = `id, job_id, first_name, last_name, email, phone, address,
	linkedin_profile, portfolio_website, cover_letter, resume_path, portfolio_path,
	years_of_experience, current_position, current_company, expected_salary,
	availability, willing_to_relocate, status, admin_notes, reviewed_at, reviewed_by,
	created_at, updated_at`

func scanApplication(row interface{ Scan(...any) error }) (*models.JobApplication, error) {
	a := &models.JobApplication{}
	err := row.Scan(
		&a.ID, &a.JobID, &a.FirstName, &a.LastName, &a.Email, &a.Phone, &a.Address,
		&a.LinkedinProfile, &a.PortfolioWebsite, &a.CoverLetter, &a.ResumePath,
		&a.PortfolioPath, &a.YearsOfExperience, &a.CurrentPosition, &a.CurrentCompany,
		&a.ExpectedSalary, &a.Availability, &a.WillingToRelocate, &a.Status,
		&a.AdminNotes, &a.ReviewedAt, &a.ReviewedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// List returns applications matching the filters, newest first, with a
// minimal job reference loaded for display.
func (s *ApplicationStore) List(f ApplicationFilters) ([]models.JobApplication, error) {
	var where []string
	var args []any
	if f.JobID != 0 {
		args = append(args, f.JobID)
		where = append(where, fmt.Sprintf("job_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)",
			len(args), len(args), len(args)))
	}

	query := `SELECT ` + applicationColumns + ` FROM job_applications`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var apps []models.JobApplication
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range apps {
		if err := s.loadJob(&apps[i]); err != nil {
			return nil, err
		}
	}
	return apps, nil
}

// FindByID retrieves an application with its job and reviewer loaded.
// Returns nil if not found.
func (s *ApplicationStore) FindByID(id int64) (*models.JobApplication, error) {
	a, err := scanApplication(s.db.QueryRow(`
		SELECT `+applicationColumns+` FROM job_applications WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find application by id: %w", err)
	}
	if err := s.loadJob(a); err != nil {
		return nil, err
	}
	if a.ReviewedBy != nil {
		reviewer := &models.User{}
		err := s.db.QueryRow(`SELECT id, name, email FROM users WHERE id = $1`, *a.ReviewedBy).
			Scan(&reviewer.ID, &reviewer.Name, &reviewer.Email)
		if err != nil && err != sql.ErrNoRows {
			return nil, fmt.Errorf("load application reviewer: %w", err)
		}
		if err == nil {
			a.Reviewer = reviewer
		}
	}
	return a, nil
}

func (s *ApplicationStore) loadJob(a *models.JobApplication) error {
	job := &models.Job{}
	err := s.db.QueryRow(`SELECT id, title, slug, location, type FROM jobs WHERE id = $1`, a.JobID).
		Scan(&job.ID, &job.Title, &job.Slug, &job.Location, &job.Type)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("load application job: %w", err)
	}
	if err == nil {
		a.Job = job
	}
	return nil
}

// ExistsForJob reports whether the email already applied to the job.
func (s *ApplicationStore) ExistsForJob(jobID int64, email string) (bool, error) {
	var n int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM job_applications WHERE job_id = $1 AND LOWER(email) = LOWER($2)
	`, jobID, email).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check duplicate application: %w", err)
	}
	return n > 0, nil
}

// Create inserts an application and bumps the job's application counter
// in one transaction. Returns ErrDuplicate when the (job, email) pair
// already applied.
func (s *ApplicationStore) Create(a *models.JobApplication) (*models.JobApplication, error) {
	exists, err := s.ExistsForJob(a.JobID, a.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("application for job %d by %s: %w", a.JobID, a.Email, ErrDuplicate)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	defer tx.Rollback()

	created, err := scanApplication(tx.QueryRow(`
		INSERT INTO job_applications (job_id, first_name, last_name, email, phone, address,
			linkedin_profile, portfolio_website, cover_letter, resume_path, portfolio_path,
			years_of_experience, current_position, current_company, expected_salary,
			availability, willing_to_relocate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING `+applicationColumns,
		a.JobID, a.FirstName, a.LastName, a.Email, a.Phone, a.Address,
		a.LinkedinProfile, a.PortfolioWebsite, a.CoverLetter, a.ResumePath, a.PortfolioPath,
		a.YearsOfExperience, a.CurrentPosition, a.CurrentCompany, a.ExpectedSalary,
		a.Availability, a.WillingToRelocate))
	if err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	if _, err := tx.Exec(`
		UPDATE jobs SET applications_count = applications_count + 1, updated_at = NOW()
		WHERE id = $1
	`, a.JobID); err != nil {
		return nil, fmt.Errorf("bump applications count: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	return created, nil
}

// UpdateStatus moves an application to a new status, recording the
// reviewer and review time. Notes replace any previous notes when
// provided.
func (s *ApplicationStore) UpdateStatus(id int64, status models.ApplicationStatus, notes *string, reviewerID int64) error {
	_, err := s.db.Exec(`
		UPDATE job_applications
		SET status = $1,
		    admin_notes = COALESCE($2, admin_notes),
		    reviewed_at = NOW(), reviewed_by = $3, updated_at = NOW()
		WHERE id = $4
	`, status, notes, reviewerID, id)
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	return nil
}

// UpdateNotes replaces the reviewer notes on an application, recording
// the reviewer and review time.
func (s *ApplicationStore) UpdateNotes(id int64, notes string, reviewerID int64) error {
	_, err := s.db.Exec(`
		UPDATE job_applications
		SET admin_notes = $1, reviewed_at = NOW(), reviewed_by = $2, updated_at = NOW()
		WHERE id = $3
	`, notes, reviewerID, id)
	if err != nil {
		return fmt.Errorf("update application notes: %w", err)
	}
	return nil
}

// Delete removes an application and decrements the job's counter in one
// transaction.
func (s *ApplicationStore) Delete(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	defer tx.Rollback()

	var jobID int64
	err = tx.QueryRow(`DELETE FROM job_applications WHERE id = $1 RETURNING job_id`, id).Scan(&jobID)
	if err == sql.ErrNoRows {
		return sql.ErrNoRows
	}
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	if _, err := tx.Exec(`
		UPDATE jobs SET applications_count = GREATEST(applications_count - 1, 0), updated_at = NOW()
		WHERE id = $1
	`, jobID); err != nil {
		return fmt.Errorf("drop applications count: %w", err)
	}
	return tx.Commit()
}

// BulkDelete removes the given applications, recording failures and continuing.
func (s *ApplicationStore) BulkDelete(ids []int64) (*BulkResult, error) {
	res := &BulkResult{Errors: []string{}}
	for _, id := range ids {
		err := s.Delete(id)
		if err == sql.ErrNoRows {
			res.Errors = append(res.Errors, fmt.Sprintf("Application %d not found", id))
			continue
		}
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Failed to delete application %d", id))
			continue
		}
		res.DeletedCount++
	}
	return res, nil
}

// BulkUpdateStatus moves the given applications to a new status,
// recording failures and continuing.
func (s *ApplicationStore) BulkUpdateStatus(ids []int64, status models.ApplicationStatus, reviewerID int64) (*BulkResult, error) {
	res := &BulkResult{Errors: []string{}}
	for _, id := range ids {
		result, err := s.db.Exec(`
			UPDATE job_applications
			SET status = $1, reviewed_at = NOW(), reviewed_by = $2, updated_at = NOW()
			WHERE id = $3
		`, status, reviewerID, id)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Failed to update application %d", id))
			continue
		}
		if n, _ := result.RowsAffected(); n == 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("Application %d not found", id))
			continue
		}
		res.UpdatedCount++
	}
	return res, nil
}

// ApplicationStatistics summarizes applications for the admin dashboard.
type ApplicationStatistics struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
	Recent   int            `json:"recent"` // last 7 days
}

// Statistics computes dashboard counters.
func (s *ApplicationStore) Statistics() (*ApplicationStatistics, error) {
	st := &ApplicationStatistics{ByStatus: map[string]int{}}
	err := s.db.QueryRow(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE created_at > NOW() - INTERVAL '7 days')
		FROM job_applications
	`).Scan(&st.Total, &st.Recent)
	if err != nil {
		return nil, fmt.Errorf("application statistics: %w", err)
	}

	rows, err := s.db.Query(`SELECT status, COUNT(*) FROM job_applications GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("application statistics by status: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan application status count: %w", err)
		}
		st.ByStatus[status] = n
	}
	return st, rows.Err()
}
