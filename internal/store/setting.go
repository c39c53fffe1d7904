// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"nexusapi/internal/models"
)

// settingID is the primary key of the single settings row.
const settingID = 1

// SettingStore handles the singleton site-settings row.
type SettingStore struct {
	db *sql.DB
}

// NewSettingStore creates a new SettingStore with the given database connection.
func NewSettingStore(db *sql.DB) *SettingStore {
	return &SettingStore{db: db}
}

const settingColumns = `id, our_mission, our_vision, years, projects, clients,
	engineers, portfolio, image, created_at, updated_at`

func scanSetting(row interface{ Scan(...any) error }) (*models.Setting, error) {
	st := &models.Setting{}
	err := row.Scan(&st.ID, &st.OurMission, &st.OurVision, &st.Years, &st.Projects,
		&st.Clients, &st.Engineers, &st.Portfolio, &st.Image, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return st, nil
}

// Get fetches the settings row, creating an empty one on first access.
func (s *SettingStore) Get() (*models.Setting, error) {
	st, err := scanSetting(s.db.QueryRow(`SELECT `+settingColumns+` FROM settings WHERE id = $1`, settingID))
	if err == nil {
		return st, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	st, err = scanSetting(s.db.QueryRow(`
		INSERT INTO settings (id) VALUES ($1)
		ON CONFLICT (id) DO UPDATE SET updated_at = settings.updated_at
		RETURNING `+settingColumns, settingID))
	if err != nil {
		return nil, fmt.Errorf("init settings: %w", err)
	}
	return st, nil
}

// Update writes the settings row, creating it if missing.
func (s *SettingStore) Update(st *models.Setting) (*models.Setting, error) {
	updated, err := scanSetting(s.db.QueryRow(`
		INSERT INTO settings (id, our_mission, our_vision, years, projects, clients,
		                      engineers, portfolio, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			our_mission = EXCLUDED.our_mission,
			our_vision = EXCLUDED.our_vision,
			years = EXCLUDED.years,
			projects = EXCLUDED.projects,
			clients = EXCLUDED.clients,
			engineers = EXCLUDED.engineers,
			portfolio = EXCLUDED.portfolio,
			image = EXCLUDED.image,
			updated_at = NOW()
		RETURNING `+settingColumns,
		settingID, st.OurMission, st.OurVision, st.Years, st.Projects, st.Clients,
		st.Engineers, st.Portfolio, st.Image))
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	return updated, nil
}
