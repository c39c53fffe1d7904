// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"nexusapi/internal/auth"
	"nexusapi/internal/models"
	"nexusapi/internal/response"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated admin attached to the request context.
// Permissions come from the token claims, not a per-request DB lookup.
type Principal struct {
	ID          int64
	Name        string
	Email       string
	Permissions []string
	Claims      *auth.Claims
}

// HasPermission reports whether the principal holds the named
// permission. The wildcard entry matches everything.
func (p *Principal) HasPermission(name string) bool {
	for _, perm := range p.Permissions {
		if perm == models.PermissionWildcard || perm == name {
			return true
		}
	}
	return false
}

// RequireAuth verifies the bearer token and attaches the principal to
// the request context. Requests without a valid token get 401.
func RequireAuth(tokens *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				response.Unauthenticated(w)
				return
			}

			claims, err := tokens.Verify(r.Context(), raw)
			if err != nil {
				response.Unauthenticated(w)
				return
			}
			id, err := claims.UserID()
			if err != nil {
				response.Unauthenticated(w)
				return
			}

			p := &Principal{
				ID:          id,
				Name:        claims.Name,
				Email:       claims.Email,
				Permissions: claims.Permissions,
				Claims:      claims,
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey, p)))
		})
	}
}

// RequirePermission is the fail-closed permission gate. It must run
// after RequireAuth. An unauthenticated request gets 401; an
// authenticated principal without the permission gets 403 naming the
// permission it lacked.
func RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := PrincipalFromCtx(r.Context())
			if p == nil {
				response.Unauthenticated(w)
				return
			}
			if !p.HasPermission(permission) {
				response.Forbidden(w, permission)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// PrincipalFromCtx extracts the authenticated principal from the
// request context. Returns nil when the request is unauthenticated.
func PrincipalFromCtx(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey).(*Principal)
	return p
}

// CtxWithPrincipal attaches a principal to a context. Exported for
// handler tests.
func CtxWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
