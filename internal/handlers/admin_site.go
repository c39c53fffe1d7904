// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"nexusapi/internal/models"
	"nexusapi/internal/response"
)

// --- Feedbacks ---

// FeedbacksList returns client testimonials, optionally filtered by ?active=.
func (h *Admin) FeedbacksList(w http.ResponseWriter, r *http.Request) {
	active := activeFilter(r)
	feedbacks, err := h.feedbacks.List(active != nil && *active)
	if err != nil {
		response.Internal(w, err, "list feedbacks failed")
		return
	}
	if active != nil && !*active {
		inactive := feedbacks[:0]
		for _, f := range feedbacks {
			if !f.IsActive {
				inactive = append(inactive, f)
			}
		}
		feedbacks = inactive
	}
	response.OK(w, "Feedbacks retrieved", newFeedbackViews(h.ids, feedbacks))
}

// FeedbackShow returns one testimonial.
func (h *Admin) FeedbackShow(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	f, err := h.feedbacks.FindByID(id)
	if err != nil || f == nil {
		notFoundOrInternal(w, err, "find feedback failed")
		return
	}
	response.OK(w, "Feedback retrieved", newFeedbackView(h.ids, f))
}

// feedbackImageFromForm validates and uploads the image file if one was
// sent, otherwise returns current unchanged.
func (h *Admin) feedbackImageFromForm(r *http.Request, current *string) (*string, string, error) {
	return h.imageFromForm(r, "image", "Image", "feedbacks", current)
}

// FeedbackCreate adds a testimonial with an optional client photo.
func (h *Admin) FeedbackCreate(w http.ResponseWriter, r *http.Request) {
	if err := parseAnyForm(r); err != nil {
		response.ValidationError(w, err.Error())
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	title := strings.TrimSpace(r.FormValue("title"))
	message := strings.TrimSpace(r.FormValue("message"))
	if msg := validateFeedback(name, title, message); msg != "" {
		response.ValidationError(w, msg)
		return
	}
	image, msg, err := h.feedbackImageFromForm(r, nil)
	if msg != "" {
		response.ValidationError(w, msg)
		return
	}
	if err != nil {
		response.Internal(w, err, "feedback image upload failed")
		return
	}
	created, err := h.feedbacks.Create(&models.Feedback{
		Name:     name,
		Title:    title,
		Message:  message,
		Image:    image,
		IsActive: formBool(r.FormValue("is_active")),
	})
	if err != nil {
		response.Internal(w, err, "create feedback failed")
		return
	}
	response.Created(w, "Feedback created", newFeedbackView(h.ids, created))
}

// FeedbackUpdate modifies a testimonial. The stored photo is kept when
// no new file is uploaded.
func (h *Admin) FeedbackUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	f, err := h.feedbacks.FindByID(id)
	if err != nil || f == nil {
		notFoundOrInternal(w, err, "find feedback failed")
		return
	}
	if err := parseAnyForm(r); err != nil {
		response.ValidationError(w, err.Error())
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	title := strings.TrimSpace(r.FormValue("title"))
	message := strings.TrimSpace(r.FormValue("message"))
	if msg := validateFeedback(name, title, message); msg != "" {
		response.ValidationError(w, msg)
		return
	}
	previous := assetURLs(f.Image, nil)
	image, msg, err := h.feedbackImageFromForm(r, f.Image)
	if msg != "" {
		response.ValidationError(w, msg)
		return
	}
	if err != nil {
		response.Internal(w, err, "feedback image upload failed")
		return
	}

	f.Name = name
	f.Title = title
	f.Message = message
	f.Image = image
	f.IsActive = formBool(r.FormValue("is_active"))
	if err := h.feedbacks.Update(f); err != nil {
		response.Internal(w, err, "update feedback failed")
		return
	}
	h.uploads.Cleanup(r.Context(), removedFileURLs(previous, assetURLs(f.Image, nil))...)
	response.OK(w, "Feedback updated", newFeedbackView(h.ids, f))
}

// FeedbackDelete removes a testimonial.
func (h *Admin) FeedbackDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	f, err := h.feedbacks.FindByID(id)
	if err != nil || f == nil {
		notFoundOrInternal(w, err, "find feedback failed")
		return
	}
	assets := assetURLs(f.Image, nil)
	if err := h.feedbacks.Delete(id); err != nil {
		response.Internal(w, err, "delete feedback failed")
		return
	}
	h.uploads.Cleanup(r.Context(), assets...)
	response.OK(w, "Feedback deleted", nil)
}

// FeedbacksBulkDelete removes several testimonials, recording per-item failures.
func (h *Admin) FeedbacksBulkDelete(w http.ResponseWriter, r *http.Request) {
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
	assets := map[int64][]string{}
	if h.uploads != nil {
		for _, id := range ids {
			if f, err := h.feedbacks.FindByID(id); err == nil && f != nil {
				assets[id] = assetURLs(f.Image, nil)
			}
		}
	}
	res, err := h.feedbacks.BulkDelete(ids)
	if err != nil {
		response.Internal(w, err, "bulk delete feedbacks failed")
		return
	}
	cleanupAfterBulkDelete(r.Context(), h.uploads, assets, func(id int64) bool {
		f, err := h.feedbacks.FindByID(id)
		return err == nil && f == nil
	})
	merged := mergeBulkErrors(res, decodeErrors)
	response.OK(w, fmt.Sprintf("Bulk delete completed: %d deleted", merged.DeletedCount), merged)
}

// --- Settings ---

// SettingsShow returns the site settings, creating the row on first access.
func (h *Admin) SettingsShow(w http.ResponseWriter, r *http.Request) {
	st, err := h.settings.Get()
	if err != nil {
		response.Internal(w, err, "get settings failed")
		return
	}
	response.OK(w, "Settings retrieved", newSettingView(st))
}

// SettingsUpdate writes the site settings. The stored image is kept
// when no new file is uploaded.
func (h *Admin) SettingsUpdate(w http.ResponseWriter, r *http.Request) {
	current, err := h.settings.Get()
	if err != nil {
		response.Internal(w, err, "get settings failed")
		return
	}
	if err := parseAnyForm(r); err != nil {
		response.ValidationError(w, err.Error())
		return
	}

	st := &models.Setting{
		OurMission: formStrPtr(r.FormValue("our_mission")),
		OurVision:  formStrPtr(r.FormValue("our_vision")),
		Portfolio:  formStrPtr(r.FormValue("portfolio")),
		Image:      current.Image,
	}
	st.Years = formIntPtr(r.FormValue("years"))
	st.Projects = formIntPtr(r.FormValue("projects"))
	st.Clients = formIntPtr(r.FormValue("clients"))
	st.Engineers = formIntPtr(r.FormValue("engineers"))

	previous := assetURLs(current.Image, nil)
	image, msg, err := h.imageFromForm(r, "image", "Image", "settings", current.Image)
	if msg != "" {
		response.ValidationError(w, msg)
		return
	}
	if err != nil {
		response.Internal(w, err, "settings image upload failed")
		return
	}
	st.Image = image

	updated, err := h.settings.Update(st)
	if err != nil {
		response.Internal(w, err, "update settings failed")
		return
	}
	h.uploads.Cleanup(r.Context(), removedFileURLs(previous, assetURLs(updated.Image, nil))...)
	response.OK(w, "Settings updated", newSettingView(updated))
}

// FeedbackToggleActive flips public visibility of one testimonial.
func (h *Admin) FeedbackToggleActive(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	f, err := h.feedbacks.FindByID(id)
	if err != nil || f == nil {
		notFoundOrInternal(w, err, "find feedback failed")
		return
	}
	f.IsActive = !f.IsActive
	if err := h.feedbacks.SetActive(id, f.IsActive); err != nil {
		response.Internal(w, err, "toggle feedback failed")
		return
	}
	response.OK(w, "Feedback status updated", newFeedbackView(h.ids, f))
}

// FeedbacksBulkUpdateStatus shows or hides several testimonials,
// recording per-item failures.
func (h *Admin) FeedbacksBulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	bulkActive(w, r, h.ids, h.feedbacks.BulkSetActive, "bulk update feedbacks failed")
}
