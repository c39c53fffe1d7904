// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

// Package models defines the database entities shared by the stores and
// handlers. All externally addressable entities expose their primary key
// only through the secureid codec; the raw ID never leaves the server.
package models

import "time"

// PermissionWildcard grants every permission when present in a user's
// permission set. Only the bootstrap super-admin receives it.
const PermissionWildcard = "*"

// User is an administrator account. Permissions are granted directly to
// users rather than through roles.
type User struct {
	ID           int64      `json:"-"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	ProfileImage *string    `json:"profile_image"`
	Bio          *string    `json:"bio"`
	IsActive     bool       `json:"is_active"`
	Permissions  []string   `json:"permissions"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Email verification state for the profile-update flow.
	VerificationCode      *string    `json:"-"`
	VerificationExpiresAt *time.Time `json:"-"`
}

// HasPermission reports whether the user holds the named permission.
// The wildcard entry always matches.
func (u *User) HasPermission(name string) bool {
	for _, p := range u.Permissions {
		if p == PermissionWildcard || p == name {
			return true
		}
	}
	return false
}

// IsSuperAdmin reports whether the user holds the wildcard permission.
func (u *User) IsSuperAdmin() bool {
	return u.HasPermission(PermissionWildcard)
}

// AllPermissions is the full set of grantable permission names, grouped
// by the resource prefix before the first underscore.
var AllPermissions = []string{
	"view_admins", "create_admins", "edit_admins", "delete_admins",
	"view_permissions", "assign_permissions", "revoke_permissions",
	"view_services", "create_services", "edit_services", "delete_services",
	"view_projects", "create_projects", "edit_projects", "delete_projects",
	"view_jobs", "create_jobs", "edit_jobs", "delete_jobs",
	"view_job_applications", "manage_job_applications", "delete_job_applications",
	"view_blogs", "create_blogs", "edit_blogs", "delete_blogs",
	"manage_blog_faqs",
	"view_feedbacks", "create_feedbacks", "edit_feedbacks", "delete_feedbacks",
	"view_disciplines", "create_disciplines", "edit_disciplines", "delete_disciplines",
	"view_settings", "edit_settings",
}

// ValidPermission reports whether name is a known permission.
func ValidPermission(name string) bool {
	for _, p := range AllPermissions {
		if p == name {
			return true
		}
	}
	return false
}
