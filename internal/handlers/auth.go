// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"nexusapi/internal/auth"
	"nexusapi/internal/mailer"
	"nexusapi/internal/middleware"
	"nexusapi/internal/response"
	"nexusapi/internal/secureid"
	"nexusapi/internal/storage"
	"nexusapi/internal/store"
)

// verificationTTL bounds how long a profile-change code stays valid.
const verificationTTL = 15 * time.Minute

// Auth groups the session endpoints: login, logout, token refresh, and
// the authenticated profile with its verification-code update flow.
type Auth struct {
	ids     *secureid.Codec
	users   *store.UserStore
	tokens  *auth.Manager
	mail    *mailer.Mailer
	uploads *storage.Client
}

// NewAuth creates a new Auth handler group with the given dependencies.
// mail and uploads may be nil when those services are not configured.
func NewAuth(ids *secureid.Codec, users *store.UserStore, tokens *auth.Manager, mail *mailer.Mailer, uploads *storage.Client) *Auth {
	return &Auth{ids: ids, users: users, tokens: tokens, mail: mail, uploads: uploads}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks credentials and issues a bearer token. Wrong email and
// wrong password produce the same response.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.ValidationError(w, err.Error())
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		response.ValidationError(w, "Email and password are required.")
		return
	}

	user, err := h.users.FindByEmail(req.Email)
	if err != nil {
		response.Internal(w, err, "login lookup failed")
		return
	}
	if user == nil || !h.users.CheckPassword(user, req.Password) {
		response.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !user.IsActive {
		response.Error(w, http.StatusUnauthorized, "Account is deactivated")
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Name, user.Email, user.Permissions)
	if err != nil {
		response.Internal(w, err, "token issue failed")
		return
	}

	response.OK(w, "Login successful", map[string]any{
		"admin":      newUserView(h.ids, user),
		"token":      token,
		"token_type": "bearer",
		"expires_in": int(h.tokens.TTL().Seconds()),
	})
}

// Logout revokes the current token.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromCtx(r.Context())
	if err := h.tokens.Revoke(r.Context(), p.Claims); err != nil {
		response.Internal(w, err, "token revoke failed")
		return
	}
	response.OK(w, "Logged out", nil)
}

// Refresh revokes the current token and issues a fresh one with the
// user's current permission set.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromCtx(r.Context())

	user, err := h.users.FindByID(p.ID)
	if err != nil {
		response.Internal(w, err, "refresh lookup failed")
		return
	}
	if user == nil || !user.IsActive {
		response.Unauthenticated(w)
		return
	}

	if err := h.tokens.Revoke(r.Context(), p.Claims); err != nil {
		response.Internal(w, err, "token revoke failed")
		return
	}
	token, err := h.tokens.Issue(user.ID, user.Name, user.Email, user.Permissions)
	if err != nil {
		response.Internal(w, err, "token issue failed")
		return
	}
	response.OK(w, "Token refreshed", map[string]any{
		"token":      token,
		"token_type": "bearer",
		"expires_in": int(h.tokens.TTL().Seconds()),
	})
}

// Profile returns the authenticated user's account.
func (h *Auth) Profile(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromCtx(r.Context())
	user, err := h.users.FindByID(p.ID)
	if err != nil || user == nil {
		notFoundOrInternal(w, err, "profile lookup failed")
		return
	}
	response.OK(w, "Profile retrieved", newUserView(h.ids, user))
}

// RequestProfileUpdate emails the user a verification code that must
// accompany the subsequent profile update.
func (h *Auth) RequestProfileUpdate(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromCtx(r.Context())

	code, err := verificationCode()
	if err != nil {
		response.Internal(w, err, "verification code generation failed")
		return
	}
	if err := h.users.SetVerificationCode(p.ID, code, time.Now().Add(verificationTTL)); err != nil {
		response.Internal(w, err, "verification code store failed")
		return
	}
	h.mail.SendVerificationCode(p.Email, code)

	response.OK(w, "Verification code sent to your email", nil)
}

// UpdateProfile applies profile changes after consuming the emailed
// verification code. Accepts multipart form data so a profile image can
// ride along.
func (h *Auth) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromCtx(r.Context())
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		if err := r.ParseForm(); err != nil {
			response.ValidationError(w, "Invalid request body")
			return
		}
	}

	ok, err := h.users.ConsumeVerificationCode(p.ID, strings.TrimSpace(r.FormValue("verification_code")))
	if err != nil {
		response.Internal(w, err, "verification code check failed")
		return
	}
	if !ok {
		response.ValidationError(w, "Verification code is invalid or expired.")
		return
	}

	user, err := h.users.FindByID(p.ID)
	if err != nil || user == nil {
		notFoundOrInternal(w, err, "profile lookup failed")
		return
	}

	if name := strings.TrimSpace(r.FormValue("name")); name != "" {
		user.Name = name
	}
	if email := strings.TrimSpace(strings.ToLower(r.FormValue("email"))); email != "" {
		if !validEmail(email) {
			response.ValidationError(w, "A valid email address is required.")
			return
		}
		user.Email = email
	}
	if bio := r.FormValue("bio"); bio != "" {
		user.Bio = formStrPtr(bio)
	}
	previous := assetURLs(user.ProfileImage, nil)
	if fh := formFile(r, "profile_image"); fh != nil {
		if msg := checkImage(fh.Filename, fh.Size); msg != "" {
			response.ValidationError(w, "Profile image "+msg)
			return
		}
		if h.uploads != nil {
			url, err := h.uploads.UploadFormImage(r.Context(), "profiles", fh)
			if err != nil {
				response.Internal(w, err, "profile image upload failed")
				return
			}
			user.ProfileImage = &url
		}
	}

	if err := h.users.Update(user); err != nil {
		if isDuplicate(err) {
			response.ValidationError(w, "Email address is already in use.")
			return
		}
		response.Internal(w, err, "profile update failed")
		return
	}
	if password := r.FormValue("password"); password != "" {
		if len(password) < minPasswordLen {
			response.ValidationError(w, "Password must be at least 8 characters.")
			return
		}
		if err := h.users.UpdatePassword(user.ID, password); err != nil {
			response.Internal(w, err, "password update failed")
			return
		}
	}
	h.uploads.Cleanup(r.Context(), removedFileURLs(previous, assetURLs(user.ProfileImage, nil))...)

	response.OK(w, "Profile updated", newUserView(h.ids, user))
}

// verificationCode returns a 6-digit numeric code.
func verificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
