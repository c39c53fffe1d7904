// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"nexusapi/internal/models"
)

// sectionTable parameterizes the three structurally identical section
// tables (service_sections, project_sections, discipline_sections).
// Table and column names come from the constants below, never from input.
type sectionTable struct {
	table string
	fk    string
}

var (
	serviceSections    = sectionTable{"service_sections", "service_id"}
	projectSections    = sectionTable{"project_sections", "project_id"}
	disciplineSections = sectionTable{"discipline_sections", "discipline_id"}
)

// list returns a parent's sections ordered by position.
func (t sectionTable) list(db *sql.DB, parentID int64) ([]models.Section, error) {
	rows, err := db.Query(fmt.Sprintf(`
		SELECT id, %s, content, image, caption, "order", created_at, updated_at
		FROM %s WHERE %s = $1 ORDER BY "order" ASC, id ASC
	`, t.fk, t.table, t.fk), parentID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.table, err)
	}
	defer rows.Close()

	sections := []models.Section{}
	for rows.Next() {
		var sec models.Section
		if err := rows.Scan(&sec.ID, &sec.ParentID, &sec.Content, &sec.Image,
			&sec.Caption, &sec.Order, &sec.CreatedAt, &sec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.table, err)
		}
		sections = append(sections, sec)
	}
	return sections, rows.Err()
}

// replaceTx swaps a parent's entire section list inside a transaction.
// Sections with a nil Image keep no image; the caller resolves image
// preservation before this runs.
func (t sectionTable) replaceTx(tx *sql.Tx, parentID int64, sections []models.Section) error {
	if _, err := tx.Exec(fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.table, t.fk), parentID); err != nil {
		return fmt.Errorf("clear %s: %w", t.table, err)
	}
	for i, sec := range sections {
		if _, err := tx.Exec(fmt.Sprintf(`
			INSERT INTO %s (%s, content, image, caption, "order")
			VALUES ($1, $2, $3, $4, $5)
		`, t.table, t.fk), parentID, sec.Content, sec.Image, sec.Caption, i); err != nil {
			return fmt.Errorf("insert %s: %w", t.table, err)
		}
	}
	return nil
}

// images returns the stored image URLs of a parent's sections keyed by
// position, used to keep existing images across an update that sends no
// replacement file.
func (t sectionTable) images(db *sql.DB, parentID int64) (map[int]string, error) {
	sections, err := t.list(db, parentID)
	if err != nil {
		return nil, err
	}
	out := make(map[int]string, len(sections))
	for _, sec := range sections {
		if sec.Image != nil && *sec.Image != "" {
			out[sec.Order] = *sec.Image
		}
	}
	return out, nil
}
