// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

// Package auth issues and verifies the bearer tokens used by the admin
// API. Tokens are HS256 JWTs carrying the principal's identity and
// resolved permission names as claims. Logout and refresh revoke the
// outgoing token by placing its ID on a Redis denylist for the remainder
// of its validity window.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const denylistPrefix = "token:revoked:"

// ErrInvalidToken is returned for malformed, expired, forged, or
// revoked tokens. Callers treat all of these identically: 401.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload for an authenticated admin.
type Claims struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// UserID returns the numeric user identifier from the subject claim.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// Manager issues, verifies, and revokes bearer tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
	redis  *redis.Client
}

// NewManager creates a token manager. ttlMinutes bounds the lifetime of
// every issued token.
func NewManager(secret string, ttlMinutes int, rdb *redis.Client) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    time.Duration(ttlMinutes) * time.Minute,
		redis:  rdb,
	}
}

// TTL returns the configured token lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a new token for the given principal.
func (m *Manager) Issue(userID int64, name, email string, permissions []string) (string, error) {
	now := time.Now()
	claims := Claims{
		Name:        name,
		Email:       email,
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a bearer token, rejecting revoked ones.
func (m *Manager) Verify(ctx context.Context, token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	revoked, err := m.redis.Exists(ctx, denylistPrefix+claims.ID).Result()
	if err != nil {
		return nil, fmt.Errorf("denylist check: %w", err)
	}
	if revoked > 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Revoke places the token's ID on the denylist until the token would
// have expired anyway.
func (m *Manager) Revoke(ctx context.Context, claims *Claims) error {
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}
	if err := m.redis.Set(ctx, denylistPrefix+claims.ID, "1", remaining).Err(); err != nil {
		return fmt.Errorf("denylist set: %w", err)
	}
	return nil
}
