// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Section is an ordered sub-record of a service, project, or discipline:
// a block of rich-text content with an optional image and caption.
type Section struct {
	ID        int64     `json:"-"`
	ParentID  int64     `json:"-"`
	Content   *string   `json:"content"`
	Image     *string   `json:"-"`
	Caption   *string   `json:"caption"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service is a service offering shown on the marketing site.
type Service struct {
	ID          int64     `json:"-"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Slug        string    `json:"slug"`
	CoverPhoto  *string   `json:"-"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   int64     `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Author      *User        `json:"-"`
	Sections    []Section    `json:"-"`
	Disciplines []Discipline `json:"-"`
}

// Project is a delivered engineering project.
type Project struct {
	ID          int64     `json:"-"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Slug        string    `json:"slug"`
	CoverPhoto  *string   `json:"-"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   int64     `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Author      *User        `json:"-"`
	Sections    []Section    `json:"-"`
	Disciplines []Discipline `json:"-"`
}

// Discipline is an engineering classification linked many-to-many to
// services and projects. It owns its own section list.
type Discipline struct {
	ID          int64     `json:"-"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Slug        string    `json:"slug"`
	CoverPhoto  *string   `json:"-"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   int64     `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Sections []Section `json:"-"`
	Services []Service `json:"-"`
	Projects []Project `json:"-"`
}

// Feedback is a client testimonial. It has no owning user.
type Feedback struct {
	ID        int64     `json:"-"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Image     *string   `json:"-"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Setting is the singleton row of site-wide display values. The store
// fetches-or-creates it on every read; there is no in-memory copy.
type Setting struct {
	ID         int64     `json:"-"`
	OurMission *string   `json:"our_mission"`
	OurVision  *string   `json:"our_vision"`
	Years      *int      `json:"years"`
	Projects   *int      `json:"projects"`
	Clients    *int      `json:"clients"`
	Engineers  *int      `json:"engineers"`
	Portfolio  *string   `json:"portfolio"`
	Image      *string   `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
