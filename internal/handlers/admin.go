// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"nexusapi/internal/mailer"
	"nexusapi/internal/middleware"
	"nexusapi/internal/models"
	"nexusapi/internal/response"
	"nexusapi/internal/secureid"
	"nexusapi/internal/storage"
	"nexusapi/internal/store"
)

// Admin groups all admin-panel HTTP handlers and their dependencies.
type Admin struct {
	ids          *secureid.Codec
	users        *store.UserStore
	blogs        *store.BlogStore
	services     *store.ServiceStore
	projects     *store.ProjectStore
	disciplines  *store.DisciplineStore
	jobs         *store.JobStore
	applications *store.ApplicationStore
	feedbacks    *store.FeedbackStore
	settings     *store.SettingStore
	uploads      *storage.Client
	mail         *mailer.Mailer
}

// NewAdmin creates a new Admin handler group with the given dependencies.
// uploads and mail may be nil if those services are not configured.
func NewAdmin(ids *secureid.Codec, users *store.UserStore, blogs *store.BlogStore, services *store.ServiceStore, projects *store.ProjectStore, disciplines *store.DisciplineStore, jobs *store.JobStore, applications *store.ApplicationStore, feedbacks *store.FeedbackStore, settings *store.SettingStore, uploads *storage.Client, mail *mailer.Mailer) *Admin {
	return &Admin{
		ids:          ids,
		users:        users,
		blogs:        blogs,
		services:     services,
		projects:     projects,
		disciplines:  disciplines,
		jobs:         jobs,
		applications: applications,
		feedbacks:    feedbacks,
		settings:     settings,
		uploads:      uploads,
		mail:         mail,
	}
}

// --- Admin users ---

// UsersList returns all admin accounts.
func (h *Admin) UsersList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List()
	if err != nil {
		response.Internal(w, err, "list users failed")
		return
	}
	response.OK(w, "Users retrieved", newUserViews(h.ids, users))
}

// UserShow returns one admin account.
func (h *Admin) UserShow(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	user, err := h.users.FindByID(id)
	if err != nil || user == nil {
		notFoundOrInternal(w, err, "find user failed")
		return
	}
	response.OK(w, "User retrieved", newUserView(h.ids, user))
}

type userRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Bio         *string  `json:"bio"`
	IsActive    *bool    `json:"is_active"`
	Permissions []string `json:"permissions"`
}

// UserCreate adds an admin account with an initial permission set. The
// wildcard grant cannot be handed out through the API.
func (h *Admin) UserCreate(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		response.ValidationError(w, err.Error())
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if msg := validateUser(req.Name, req.Email, req.Password); msg != "" {
		response.ValidationError(w, msg)
		return
	}
	if hasWildcard(req.Permissions) {
		response.ValidationError(w, "The wildcard permission cannot be granted.")
		return
	}

	user, err := h.users.Create(strings.TrimSpace(req.Name), req.Email, req.Password, req.Bio, req.Permissions)
	if err != nil {
		if isDuplicate(err) {
			response.ValidationError(w, "Email address is already in use.")
			return
		}
		response.Internal(w, err, "create user failed")
		return
	}
	response.Created(w, "User created", newUserView(h.ids, user))
}

// UserUpdate modifies an admin account's profile fields.
func (h *Admin) UserUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	user, err := h.users.FindByID(id)
	if err != nil || user == nil {
		notFoundOrInternal(w, err, "find user failed")
		return
	}

	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		response.ValidationError(w, err.Error())
		return
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	if email := strings.TrimSpace(strings.ToLower(req.Email)); email != "" {
		if !validEmail(email) {
			response.ValidationError(w, "A valid email address is required.")
			return
		}
		user.Email = email
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.IsActive != nil {
		// Deactivating yourself would strand the session.
		if p := middleware.PrincipalFromCtx(r.Context()); p.ID == user.ID && !*req.IsActive {
			response.ValidationError(w, "Cannot deactivate your own account.")
			return
		}
		user.IsActive = *req.IsActive
	}

	if err := h.users.Update(user); err != nil {
		if isDuplicate(err) {
			response.ValidationError(w, "Email address is already in use.")
			return
		}
		response.Internal(w, err, "update user failed")
		return
	}
	if req.Password != "" {
		if len(req.Password) < minPasswordLen {
			response.ValidationError(w, "Password must be at least 8 characters.")
			return
		}
		if err := h.users.UpdatePassword(user.ID, req.Password); err != nil {
			response.Internal(w, err, "password update failed")
			return
		}
	}
	response.OK(w, "User updated", newUserView(h.ids, user))
}

// UserDelete removes an admin account. The acting user and the wildcard
// super-admin are protected.
func (h *Admin) UserDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	p := middleware.PrincipalFromCtx(r.Context())
	if p.ID == id {
		response.ValidationError(w, "Cannot delete your own account")
		return
	}
	user, err := h.users.FindByID(id)
	if err != nil || user == nil {
		notFoundOrInternal(w, err, "find user failed")
		return
	}
	if user.IsSuperAdmin() {
		response.ValidationError(w, "Cannot delete the super admin account")
		return
	}
	if err := h.users.Delete(id); err != nil {
		response.Internal(w, err, "delete user failed")
		return
	}
	response.OK(w, "User deleted", nil)
}

type bulkIDsRequest struct {
	IDs []string `json:"ids"`
}

type bulkActiveRequest struct {
	IDs      []string `json:"ids"`
	IsActive bool     `json:"is_active"`
}

// UserToggleActive flips an account between active and deactivated.
func (h *Admin) UserToggleActive(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	user, err := h.users.FindByID(id)
	if err != nil || user == nil {
		notFoundOrInternal(w, err, "find user failed")
		return
	}
	if user.IsActive {
		if p := middleware.PrincipalFromCtx(r.Context()); p.ID == user.ID {
			response.ValidationError(w, "Cannot deactivate your own account.")
			return
		}
		if user.IsSuperAdmin() {
			response.ValidationError(w, "Cannot deactivate the super admin account")
			return
		}
	}
	user.IsActive = !user.IsActive
	if err := h.users.SetActive(id, user.IsActive); err != nil {
		response.Internal(w, err, "toggle user failed")
		return
	}
	response.OK(w, "User status updated", newUserView(h.ids, user))
}

// UsersBulkUpdateStatus activates or deactivates several accounts,
// recording per-item failures. The acting admin and super-admins are
// never deactivated.
func (h *Admin) UsersBulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req bulkActiveRequest
	if err := decodeJSON(r, &req); err != nil {
		response.ValidationError(w, err.Error())
		return
	}
	if len(req.IDs) == 0 {
		response.ValidationError(w, "No ids provided.")
		return
	}
	ids, decodeErrors := decodeIDList(h.ids, req.IDs)
	p := middleware.PrincipalFromCtx(r.Context())

	res, err := h.users.BulkSetActive(ids, req.IsActive, p.ID)
	if err != nil {
		response.Internal(w, err, "bulk update users failed")
		return
	}
	merged := mergeBulkErrors(res, decodeErrors)
	response.OK(w, fmt.Sprintf("Bulk status update completed: %d updated", merged.UpdatedCount), merged)
}

// UsersBulkDelete removes several accounts, reporting every item that
// could not be deleted while the rest proceed.
func (h *Admin) UsersBulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkIDsRequest
	if err := decodeJSON(r, &req); err != nil {
		response.ValidationError(w, err.Error())
		return
	}
	if len(req.IDs) == 0 {
		response.ValidationError(w, "No ids provided.")
		return
	}
	ids, decodeErrors := decodeIDList(h.ids, req.IDs)
	p := middleware.PrincipalFromCtx(r.Context())

	res, err := h.users.BulkDelete(ids, p.ID)
	if err != nil {
		response.Internal(w, err, "bulk delete users failed")
		return
	}
	merged := mergeBulkErrors(res, decodeErrors)
	response.OK(w, fmt.Sprintf("Bulk delete completed: %d deleted", merged.DeletedCount), merged)
}

// --- Permissions ---

// PermissionsList returns every grantable permission name, both flat and
// grouped by the action verb (view, create, edit, delete, ...).
func (h *Admin) PermissionsList(w http.ResponseWriter, r *http.Request) {
	grouped := map[string][]string{}
	for _, name := range models.AllPermissions {
		verb, _, _ := strings.Cut(name, "_")
		grouped[verb] = append(grouped[verb], name)
	}
	response.OK(w, "Permissions retrieved", map[string]any{
		"permissions":     grouped,
		"all_permissions": models.AllPermissions,
	})
}

// UserPermissions returns one user's permission grants.
func (h *Admin) UserPermissions(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	user, err := h.users.FindByID(id)
	if err != nil || user == nil {
		notFoundOrInternal(w, err, "find user failed")
		return
	}
	response.OK(w, "Permissions retrieved", map[string]any{
		"permissions": user.Permissions,
	})
}

type syncPermissionsRequest struct {
	Permissions []string `json:"permissions"`
}

// UserPermissionsSync replaces a user's permission grants. The wildcard
// cannot be granted, a super-admin's grants cannot be changed, and a
// user cannot rewrite their own.
func (h *Admin) UserPermissionsSync(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	p := middleware.PrincipalFromCtx(r.Context())
	if p.ID == id {
		response.ValidationError(w, "Cannot change your own permissions.")
		return
	}
	user, err := h.users.FindByID(id)
	if err != nil || user == nil {
		notFoundOrInternal(w, err, "find user failed")
		return
	}
	if user.IsSuperAdmin() {
		response.ValidationError(w, "Super admin permissions cannot be changed.")
		return
	}

	var req syncPermissionsRequest
	if err := decodeJSON(r, &req); err != nil {
		response.ValidationError(w, err.Error())
		return
	}
	if hasWildcard(req.Permissions) {
		response.ValidationError(w, "The wildcard permission cannot be granted.")
		return
	}
	for _, name := range req.Permissions {
		if !models.ValidPermission(name) {
			response.ValidationError(w, "Unknown permission: "+name)
			return
		}
	}

	if err := h.users.SyncPermissions(id, req.Permissions); err != nil {
		response.Internal(w, err, "sync permissions failed")
		return
	}
	user, err = h.users.FindByID(id)
	if err != nil || user == nil {
		notFoundOrInternal(w, err, "find user failed")
		return
	}
	response.OK(w, "Permissions updated", newUserView(h.ids, user))
}

func hasWildcard(permissions []string) bool {
	for _, p := range permissions {
		if p == models.PermissionWildcard {
			return true
		}
	}
	return false
}
