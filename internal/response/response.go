// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

// Package response writes the uniform JSON envelope used by every API
// endpoint: {"success": true, "message": ..., "data": ...} on success and
// {"success": false, "message": ...} on error. Unexpected failures are
// logged server-side and reported to the client as a generic message so
// internals never leak into a response body.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the wire shape of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// OK writes a success envelope with HTTP 200.
func OK(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created writes a success envelope with HTTP 201.
func Created(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Error writes an error envelope with the given status code.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Success: false, Message: message})
}

// ValidationError writes a 422 with the first validation failure found.
func ValidationError(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnprocessableEntity, message)
}

// Unauthenticated writes a 401.
func Unauthenticated(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthenticated")
}

// Forbidden writes a 403 naming the permission the caller lacked.
func Forbidden(w http.ResponseWriter, permission string) {
	JSON(w, http.StatusForbidden, struct {
		Envelope
		RequiredPermission string `json:"required_permission,omitempty"`
	}{
		Envelope:           Envelope{Success: false, Message: "You do not have permission to access this resource"},
		RequiredPermission: permission,
	})
}

// NotFound writes a 404.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(w, http.StatusNotFound, message)
}

// Internal logs the underlying error and writes a generic 500. The error
// detail never reaches the client.
func Internal(w http.ResponseWriter, err error, context string) {
	slog.Error(context, "error", err)
	Error(w, http.StatusInternalServerError, "Operation failed")
}

// JSON writes any payload with the given status code.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
