// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"nexusapi/internal/models"
)

// FeedbackStore handles all client-testimonial database operations.
type FeedbackStore struct {
	db *sql.DB
}

// NewFeedbackStore creates a new FeedbackStore with the given database connection.
func NewFeedbackStore(db *sql.DB) *FeedbackStore {
	return &FeedbackStore{db: db}
}

const feedbackColumns = `id, name, title, message, image, is_active, created_at, updated_at`

func scanFeedback(row interface{ Scan(...any) error }) (*models.Feedback, error) {
	f := &models.Feedback{}
	err := row.Scan(&f.ID, &f.Name, &f.Title, &f.Message, &f.Image,
		&f.IsActive, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// List returns feedbacks, newest first. When activeOnly is true only
// active entries are returned, for the public site.
func (s *FeedbackStore) List(activeOnly bool) ([]models.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedbacks`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list feedbacks: %w", err)
	}
	defer rows.Close()

	var feedbacks []models.Feedback
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		feedbacks = append(feedbacks, *f)
	}
	return feedbacks, rows.Err()
}

// FindByID retrieves a feedback. Returns nil if not found.
func (s *FeedbackStore) FindByID(id int64) (*models.Feedback, error) {
	f, err := scanFeedback(s.db.QueryRow(`SELECT `+feedbackColumns+` FROM feedbacks WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find feedback by id: %w", err)
	}
	return f, nil
}

// Create inserts a new feedback.
func (s *FeedbackStore) Create(f *models.Feedback) (*models.Feedback, error) {
	created, err := scanFeedback(s.db.QueryRow(`
		INSERT INTO feedbacks (name, title, message, image, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+feedbackColumns,
		f.Name, f.Title, f.Message, f.Image, f.IsActive))
	if err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	return created, nil
}

// Update modifies an existing feedback.
func (s *FeedbackStore) Update(f *models.Feedback) error {
	_, err := s.db.Exec(`
		UPDATE feedbacks SET name = $1, title = $2, message = $3, image = $4,
		                     is_active = $5, updated_at = NOW()
		WHERE id = $6
	`, f.Name, f.Title, f.Message, f.Image, f.IsActive, f.ID)
	if err != nil {
		return fmt.Errorf("update feedback: %w", err)
	}
	return nil
}

// Delete removes a feedback by ID.
func (s *FeedbackStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM feedbacks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	return nil
}

// BulkDelete removes the given feedbacks, recording failures and continuing.
func (s *FeedbackStore) BulkDelete(ids []int64) (*BulkResult, error) {
	res := &BulkResult{Errors: []string{}}
	for _, id := range ids {
		result, err := s.db.Exec(`DELETE FROM feedbacks WHERE id = $1`, id)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Failed to delete feedback %d", id))
			continue
		}
		if n, _ := result.RowsAffected(); n == 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("Feedback %d not found", id))
			continue
		}
		res.DeletedCount++
	}
	return res, nil
}

// SetActive toggles public visibility of a feedback.
func (s *FeedbackStore) SetActive(id int64, active bool) error {
	return setActive(s.db, "feedbacks", id, active)
}

// BulkSetActive toggles visibility of the given feedbacks, recording
// failures and continuing.
func (s *FeedbackStore) BulkSetActive(ids []int64, active bool) (*BulkResult, error) {
	return bulkSetActive(s.db, "feedbacks", "Feedback", ids, active)
}
