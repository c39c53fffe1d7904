// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the Nexus API.
// Handlers are grouped by concern (auth, admin, public) and receive
// their dependencies through the handler struct. Every response uses
// the JSON envelope from the response package, and every entity ID
// crosses the wire in its encoded form.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"nexusapi/internal/models"
	"nexusapi/internal/response"
	"nexusapi/internal/secureid"
	"nexusapi/internal/storage"
	"nexusapi/internal/store"
)

// maxUploadBytes bounds multipart request bodies (32 MiB).
const maxUploadBytes = 32 << 20

// decodeJSON parses a JSON request body into dst. Unknown fields are
// tolerated; malformed bodies are not.
func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		return errors.New("Invalid request body")
	}
	return nil
}

// idParam decodes the encoded {id} route parameter. Returns false for
// missing, malformed, or forged tokens; callers respond 404 so probing
// reveals nothing about why the lookup failed.
func idParam(r *http.Request, ids *secureid.Codec) (int64, bool) {
	return ids.Decode(chi.URLParam(r, "id"))
}

// namedIDParam decodes an encoded route parameter with a custom name.
func namedIDParam(r *http.Request, ids *secureid.Codec, name string) (int64, bool) {
	return ids.Decode(chi.URLParam(r, name))
}

// decodeIDList decodes a list of encoded IDs from a bulk request,
// collecting a message for every token that fails to decode.
func decodeIDList(ids *secureid.Codec, tokens []string) ([]int64, []string) {
	decoded := make([]int64, 0, len(tokens))
	var bad []string
	for _, tok := range tokens {
		id, ok := ids.Decode(tok)
		if !ok {
			bad = append(bad, "Invalid identifier: "+tok)
			continue
		}
		decoded = append(decoded, id)
	}
	return decoded, bad
}

// mergeBulkErrors prepends decode failures to a bulk result so the
// response reflects every requested item.
func mergeBulkErrors(res *store.BulkResult, decodeErrors []string) *store.BulkResult {
	if res == nil {
		res = &store.BulkResult{Errors: []string{}}
	}
	if len(decodeErrors) > 0 {
		res.Errors = append(decodeErrors, res.Errors...)
	}
	return res
}

// bulkActive runs a store-level bulk activation toggle for a JSON
// {ids, is_active} request and writes the merged result.
func bulkActive(w http.ResponseWriter, r *http.Request, ids *secureid.Codec, update func([]int64, bool) (*store.BulkResult, error), context string) {
	var req bulkActiveRequest
	if err := decodeJSON(r, &req); err != nil {
		response.ValidationError(w, err.Error())
		return
	}
	if len(req.IDs) == 0 {
		response.ValidationError(w, "No ids provided.")
		return
	}
	decoded, decodeErrors := decodeIDList(ids, req.IDs)
	res, err := update(decoded, req.IsActive)
	if err != nil {
		response.Internal(w, err, context)
		return
	}
	merged := mergeBulkErrors(res, decodeErrors)
	response.OK(w, fmt.Sprintf("Bulk status update completed: %d updated", merged.UpdatedCount), merged)
}

// parseAnyForm accepts multipart or urlencoded bodies; admin clients
// send multipart when a file rides along and urlencoded otherwise.
func parseAnyForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return errors.New("Invalid request body")
		}
		return nil
	}
	if err := r.ParseForm(); err != nil {
		return errors.New("Invalid request body")
	}
	return nil
}

// formBool parses checkbox-style boolean form values.
func formBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// formIntPtr parses an optional integer form value.
func formIntPtr(v string) *int {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

// formFloatPtr parses an optional decimal form value.
func formFloatPtr(v string) *float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

// formStrPtr returns nil for an empty form value.
func formStrPtr(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

// formLines splits a textarea or JSON-array form value into trimmed,
// non-empty lines. Accepts either a JSON array or newline-separated text.
func formLines(v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return []string{}
	}
	if strings.HasPrefix(v, "[") {
		var arr []string
		if err := json.Unmarshal([]byte(v), &arr); err == nil {
			out := make([]string, 0, len(arr))
			for _, s := range arr {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
			return out
		}
	}
	var out []string
	for _, line := range strings.Split(v, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// activeFilter parses an optional ?active= query value.
func activeFilter(r *http.Request) *bool {
	switch strings.ToLower(r.URL.Query().Get("active")) {
	case "true", "1":
		v := true
		return &v
	case "false", "0":
		v := false
		return &v
	}
	return nil
}

// isDuplicate reports whether a store error is a uniqueness conflict.
func isDuplicate(err error) bool {
	return errors.Is(err, store.ErrDuplicate)
}

// isConflict reports whether a store error is a dependent-rows conflict.
func isConflict(err error) bool {
	return errors.Is(err, store.ErrConflict)
}

// notFoundOrInternal maps a (nil, err) store result pair for show-style
// handlers: storage errors become a 500, missing rows a 404.
func notFoundOrInternal(w http.ResponseWriter, err error, context string) {
	if err != nil {
		response.Internal(w, err, context)
		return
	}
	response.NotFound(w, "")
}

// formFile returns the first uploaded file for a multipart field, or
// nil when the request carried none. Unlike Request.FormFile it does
// not open the file, so it is safe for presence checks too.
func formFile(r *http.Request, field string) *multipart.FileHeader {
	if r.MultipartForm == nil || len(r.MultipartForm.File[field]) == 0 {
		return nil
	}
	return r.MultipartForm.File[field][0]
}

// assetURLs collects the uploaded files a row owns: its cover or photo
// plus any section images.
func assetURLs(cover *string, sections []models.Section) []string {
	var urls []string
	if cover != nil && *cover != "" {
		urls = append(urls, *cover)
	}
	for _, s := range sections {
		if s.Image != nil && *s.Image != "" {
			urls = append(urls, *s.Image)
		}
	}
	return urls
}

// removedFileURLs returns the entries of previous that current no
// longer references: the files an update orphaned and a delete must
// not leave behind.
func removedFileURLs(previous, current []string) []string {
	kept := make(map[string]bool, len(current))
	for _, u := range current {
		kept[u] = true
	}
	var removed []string
	for _, u := range previous {
		if !kept[u] {
			removed = append(removed, u)
		}
	}
	return removed
}

// cleanupAfterBulkDelete removes the files of rows a bulk delete
// actually removed. assets maps row id to its file URLs; gone re-checks
// the row so a failed delete keeps its files.
func cleanupAfterBulkDelete(ctx context.Context, uploads *storage.Client, assets map[int64][]string, gone func(int64) bool) {
	if uploads == nil {
		return
	}
	for id, urls := range assets {
		if len(urls) > 0 && gone(id) {
			uploads.Cleanup(ctx, urls...)
		}
	}
}
