// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all Nexus entities.
// Each store struct wraps a *sql.DB and exposes typed query methods.
// Find methods return (nil, nil) when a row does not exist; conflicts
// that callers must distinguish are reported with the sentinel errors
// below.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrConflict is returned when a delete is blocked by dependent rows,
	// e.g. removing a job that still has applications.
	ErrConflict = errors.New("store: conflict")

	// ErrDuplicate is returned when an insert violates a uniqueness rule,
	// e.g. a second application for the same (job, email) pair.
	ErrDuplicate = errors.New("store: duplicate")
)

// BulkResult reports the outcome of a bulk operation. The operation
// always runs to completion: every failed item adds a message to Errors
// and the counters reflect only items that succeeded.
type BulkResult struct {
	DeletedCount int      `json:"deleted_count,omitempty"`
	UpdatedCount int      `json:"updated_count,omitempty"`
	Errors       []string `json:"errors"`
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// setActive flips is_active on one row. Returns sql.ErrNoRows when the
// row does not exist. table and label come from store constants only.
func setActive(db *sql.DB, table string, id int64, active bool) error {
	result, err := db.Exec(`UPDATE `+table+` SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("set %s active: %w", table, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// bulkSetActive flips is_active on the given rows, recording failures
// and continuing. label names the entity in error messages.
func bulkSetActive(db *sql.DB, table, label string, ids []int64, active bool) (*BulkResult, error) {
	res := &BulkResult{Errors: []string{}}
	for _, id := range ids {
		err := setActive(db, table, id, active)
		if err == sql.ErrNoRows {
			res.Errors = append(res.Errors, fmt.Sprintf("%s %d not found", label, id))
			continue
		}
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Failed to update %s %d", strings.ToLower(label), id))
			continue
		}
		res.UpdatedCount++
	}
	return res, nil
}

// jsonStrings marshals a string slice for a JSONB column. A nil slice
// is stored as an empty array so scans never see SQL NULL.
func jsonStrings(v []string) ([]byte, error) {
	if v == nil {
		v = []string{}
	}
	return json.Marshal(v)
}

// scanStrings unmarshals a JSONB string array column.
func scanStrings(raw []byte, dst *[]string) error {
	if len(raw) == 0 {
		*dst = []string{}
		return nil
	}
	return json.Unmarshal(raw, dst)
}

// joinTags flattens a tag list into the comma-separated form stored in
// the blogs.tags column.
func joinTags(tags []string) string {
	var kept []string
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, ",")
}

// splitTags expands the stored comma-separated tag column.
func splitTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
