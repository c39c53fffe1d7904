// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"nexusapi/internal/middleware"
	"nexusapi/internal/models"
	"nexusapi/internal/response"
	"nexusapi/internal/slug"
	"nexusapi/internal/store"
)

const resumeLinkTTL = 15 * time.Minute

// --- Jobs ---

// JobsList returns jobs filtered by ?type=, ?location=, ?active=, ?search=.
func (h *Admin) JobsList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if t := q.Get("type"); t != "" && !models.ValidJobType(t) {
		response.ValidationError(w, "Invalid job type.")
		return
	}
	jobs, err := h.jobs.List(store.JobFilters{
		Type:     q.Get("type"),
		Location: strings.TrimSpace(q.Get("location")),
		Active:   activeFilter(r),
		Search:   strings.TrimSpace(q.Get("search")),
	})
	if err != nil {
		response.Internal(w, err, "list jobs failed")
		return
	}
	response.OK(w, "Jobs retrieved", newJobViews(h.ids, jobs))
}

// JobShow returns one job posting.
func (h *Admin) JobShow(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	job, err := h.jobs.FindByID(id)
	if err != nil || job == nil {
		notFoundOrInternal(w, err, "find job failed")
		return
	}
	response.OK(w, "Job retrieved", newJobView(h.ids, job))
}

// JobShowBySlug returns one job posting by slug, active or not.
func (h *Admin) JobShowBySlug(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.FindBySlugAny(chi.URLParam(r, "slug"))
	if err != nil || job == nil {
		notFoundOrInternal(w, err, "find job by slug failed")
		return
	}
	response.OK(w, "Job retrieved", newJobView(h.ids, job))
}

type jobRequest struct {
	Title                   string   `json:"title"`
	Slug                    string   `json:"slug"`
	Location                string   `json:"location"`
	Type                    string   `json:"type"`
	KeyResponsibilities     []string `json:"key_responsibilities"`
	PreferredQualifications []string `json:"preferred_qualifications"`
	IsActive                bool     `json:"is_active"`
}

// jobFromRequest validates the request and maps it onto a job. The
// current slug is kept when the request leaves slug empty on update.
func jobFromRequest(req jobRequest, currentSlug string) (*models.Job, string) {
	if msg := validateJob(req.Title, req.Location, req.Type); msg != "" {
		return nil, msg
	}
	s := strings.TrimSpace(req.Slug)
	switch {
	case s != "" && !slug.Valid(s):
		return nil, "Slug may contain only lowercase letters, digits, and hyphens."
	case s == "" && currentSlug != "":
		s = currentSlug
	case s == "":
		s = slug.Generate(req.Title)
	}
	return &models.Job{
		Title:                   strings.TrimSpace(req.Title),
		Slug:                    s,
		Location:                strings.TrimSpace(req.Location),
		Type:                    models.JobType(req.Type),
		KeyResponsibilities:     req.KeyResponsibilities,
		PreferredQualifications: req.PreferredQualifications,
		IsActive:                req.IsActive,
	}, ""
}

// JobCreate adds a job posting.
func (h *Admin) JobCreate(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.ValidationError(w, err.Error())
		return
	}
	job, msg := jobFromRequest(req, "")
	if msg != "" {
		response.ValidationError(w, msg)
		return
	}
	job.CreatedBy = middleware.PrincipalFromCtx(r.Context()).ID
	created, err := h.jobs.Create(job)
	if err != nil {
		if isDuplicate(err) {
			response.ValidationError(w, "Slug is already in use.")
			return
		}
		response.Internal(w, err, "create job failed")
		return
	}
	response.Created(w, "Job created", newJobView(h.ids, created))
}

// JobUpdate modifies a job posting.
func (h *Admin) JobUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	current, err := h.jobs.FindByID(id)
	if err != nil || current == nil {
		notFoundOrInternal(w, err, "find job failed")
		return
	}
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.ValidationError(w, err.Error())
		return
	}
	job, msg := jobFromRequest(req, current.Slug)
	if msg != "" {
		response.ValidationError(w, msg)
		return
	}
	job.ID = id
	if err := h.jobs.Update(job); err != nil {
		if isDuplicate(err) {
			response.ValidationError(w, "Slug is already in use.")
			return
		}
		response.Internal(w, err, "update job failed")
		return
	}
	updated, err := h.jobs.FindByID(id)
	if err != nil || updated == nil {
		notFoundOrInternal(w, err, "find job failed")
		return
	}
	response.OK(w, "Job updated", newJobView(h.ids, updated))
}

// JobDelete removes a job. Jobs with applications cannot be deleted.
func (h *Admin) JobDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	job, err := h.jobs.FindByID(id)
	if err != nil || job == nil {
		notFoundOrInternal(w, err, "find job failed")
		return
	}
	if err := h.jobs.Delete(id); err != nil {
		if isConflict(err) {
			response.Error(w, http.StatusUnprocessableEntity, "Cannot delete a job that has applications.")
			return
		}
		response.Internal(w, err, "delete job failed")
		return
	}
	response.OK(w, "Job deleted", nil)
}

// JobsBulkDelete removes several jobs, recording per-item failures.
// Jobs with applications are skipped and reported.
func (h *Admin) JobsBulkDelete(w http.ResponseWriter, r *http.Request) {
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
	res, err := h.jobs.BulkDelete(ids)
	if err != nil {
		response.Internal(w, err, "bulk delete jobs failed")
		return
	}
	merged := mergeBulkErrors(res, decodeErrors)
	response.OK(w, fmt.Sprintf("Bulk delete completed: %d deleted", merged.DeletedCount), merged)
}

// JobOptions returns the form option sets for job admin UIs.
func (h *Admin) JobOptions(w http.ResponseWriter, r *http.Request) {
	locations, err := h.jobs.Locations()
	if err != nil {
		response.Internal(w, err, "list job locations failed")
		return
	}
	response.OK(w, "Job options retrieved", map[string]any{
		"types":          models.JobTypeLabels,
		"availabilities": models.AvailabilityLabels,
		"locations":      locations,
	})
}

// JobStatistics returns dashboard counters for jobs.
func (h *Admin) JobStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.jobs.Statistics()
	if err != nil {
		response.Internal(w, err, "job statistics failed")
		return
	}
	response.OK(w, "Job statistics retrieved", stats)
}

// --- Job applications ---

// ApplicationsList returns applications filtered by ?job=, ?status=, ?search=.
func (h *Admin) ApplicationsList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filters store.ApplicationFilters
	if tok := q.Get("job"); tok != "" {
		jobID, ok := h.ids.Decode(tok)
		if !ok {
			response.NotFound(w, "")
			return
		}
		filters.JobID = jobID
	}
	if status := q.Get("status"); status != "" {
		if !models.ValidApplicationStatus(status) {
			response.ValidationError(w, "Invalid application status.")
			return
		}
		filters.Status = status
	}
	filters.Search = strings.TrimSpace(q.Get("search"))

	apps, err := h.applications.List(filters)
	if err != nil {
		response.Internal(w, err, "list applications failed")
		return
	}
	response.OK(w, "Applications retrieved", newApplicationViews(h.ids, apps))
}

// ApplicationsByJob returns every application for one job, newest first.
func (h *Admin) ApplicationsByJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := h.ids.Decode(chi.URLParam(r, "jobID"))
	if !ok {
		response.NotFound(w, "")
		return
	}
	job, err := h.jobs.FindByID(jobID)
	if err != nil || job == nil {
		notFoundOrInternal(w, err, "find job failed")
		return
	}
	apps, err := h.applications.List(store.ApplicationFilters{JobID: jobID})
	if err != nil {
		response.Internal(w, err, "list applications failed")
		return
	}
	response.OK(w, "Applications retrieved", newApplicationViews(h.ids, apps))
}

// ApplicationShow returns one application with its job reference.
func (h *Admin) ApplicationShow(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	app, err := h.applications.FindByID(id)
	if err != nil || app == nil {
		notFoundOrInternal(w, err, "find application failed")
		return
	}
	response.OK(w, "Application retrieved", newApplicationView(h.ids, app))
}

type statusRequest struct {
	Status     string  `json:"status"`
	AdminNotes *string `json:"admin_notes"`
}

// ApplicationUpdateStatus moves an application to a new status. Notes
// are replaced only when the request carries them.
func (h *Admin) ApplicationUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	app, err := h.applications.FindByID(id)
	if err != nil || app == nil {
		notFoundOrInternal(w, err, "find application failed")
		return
	}
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.ValidationError(w, err.Error())
		return
	}
	if !models.ValidApplicationStatus(req.Status) {
		response.ValidationError(w, "Invalid application status.")
		return
	}
	reviewer := middleware.PrincipalFromCtx(r.Context())
	if err := h.applications.UpdateStatus(id, models.ApplicationStatus(req.Status), req.AdminNotes, reviewer.ID); err != nil {
		response.Internal(w, err, "update application status failed")
		return
	}
	updated, err := h.applications.FindByID(id)
	if err != nil || updated == nil {
		notFoundOrInternal(w, err, "find application failed")
		return
	}
	response.OK(w, "Application status updated", newApplicationView(h.ids, updated))
}

type notesRequest struct {
	AdminNotes string `json:"admin_notes"`
}

// ApplicationUpdateNotes replaces the reviewer notes on an application
// without touching its status.
func (h *Admin) ApplicationUpdateNotes(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	app, err := h.applications.FindByID(id)
	if err != nil || app == nil {
		notFoundOrInternal(w, err, "find application failed")
		return
	}
	var req notesRequest
	if err := decodeJSON(r, &req); err != nil {
		response.ValidationError(w, err.Error())
		return
	}
	if strings.TrimSpace(req.AdminNotes) == "" {
		response.ValidationError(w, "Notes are required.")
		return
	}
	reviewer := middleware.PrincipalFromCtx(r.Context())
	if err := h.applications.UpdateNotes(id, req.AdminNotes, reviewer.ID); err != nil {
		response.Internal(w, err, "update application notes failed")
		return
	}
	updated, err := h.applications.FindByID(id)
	if err != nil || updated == nil {
		notFoundOrInternal(w, err, "find application failed")
		return
	}
	response.OK(w, "Notes added", newApplicationView(h.ids, updated))
}

// applicationFileKeys returns the private storage keys an application owns.
func applicationFileKeys(app *models.JobApplication) []string {
	keys := []string{app.ResumePath}
	if app.PortfolioPath != nil {
		keys = append(keys, *app.PortfolioPath)
	}
	return keys
}

// ApplicationDelete removes an application, releases its slot in the
// job's counter, and drops its files from private storage.
func (h *Admin) ApplicationDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	app, err := h.applications.FindByID(id)
	if err != nil || app == nil {
		notFoundOrInternal(w, err, "find application failed")
		return
	}
	if err := h.applications.Delete(id); err != nil {
		response.Internal(w, err, "delete application failed")
		return
	}
	h.uploads.CleanupPrivate(r.Context(), applicationFileKeys(app)...)
	response.OK(w, "Application deleted", nil)
}

// ApplicationsBulkDelete removes several applications, recording per-item failures.
func (h *Admin) ApplicationsBulkDelete(w http.ResponseWriter, r *http.Request) {
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
	keys := map[int64][]string{}
	if h.uploads != nil {
		for _, id := range ids {
			if app, err := h.applications.FindByID(id); err == nil && app != nil {
				keys[id] = applicationFileKeys(app)
			}
		}
	}
	res, err := h.applications.BulkDelete(ids)
	if err != nil {
		response.Internal(w, err, "bulk delete applications failed")
		return
	}
	if h.uploads != nil {
		for id, ks := range keys {
			if app, err := h.applications.FindByID(id); err == nil && app == nil {
				h.uploads.CleanupPrivate(r.Context(), ks...)
			}
		}
	}
	merged := mergeBulkErrors(res, decodeErrors)
	response.OK(w, fmt.Sprintf("Bulk delete completed: %d deleted", merged.DeletedCount), merged)
}

type bulkStatusRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status"`
}

// ApplicationsBulkUpdateStatus moves several applications to a new
// status, recording per-item failures.
func (h *Admin) ApplicationsBulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req bulkStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.ValidationError(w, err.Error())
		return
	}
	if len(req.IDs) == 0 {
		response.ValidationError(w, "No ids provided.")
		return
	}
	if !models.ValidApplicationStatus(req.Status) {
		response.ValidationError(w, "Invalid application status.")
		return
	}
	ids, decodeErrors := decodeIDList(h.ids, req.IDs)
	reviewer := middleware.PrincipalFromCtx(r.Context())
	res, err := h.applications.BulkUpdateStatus(ids, models.ApplicationStatus(req.Status), reviewer.ID)
	if err != nil {
		response.Internal(w, err, "bulk update application status failed")
		return
	}
	merged := mergeBulkErrors(res, decodeErrors)
	response.OK(w, fmt.Sprintf("Bulk status update completed: %d updated", merged.UpdatedCount), merged)
}

// ApplicationStatusOptions returns the status metadata and the
// suggested transition graph.
func (h *Admin) ApplicationStatusOptions(w http.ResponseWriter, r *http.Request) {
	response.OK(w, "Status options retrieved", map[string]any{
		"statuses": models.StatusOptions,
		"workflow": models.StatusWorkflow,
	})
}

// ApplicationStatistics returns dashboard counters for applications.
func (h *Admin) ApplicationStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.applications.Statistics()
	if err != nil {
		response.Internal(w, err, "application statistics failed")
		return
	}
	response.OK(w, "Application statistics retrieved", stats)
}

// ApplicationResume returns a short-lived link to the applicant's
// resume in private storage.
func (h *Admin) ApplicationResume(w http.ResponseWriter, r *http.Request) {
	h.applicationFileLink(w, r, "Resume", func(a *models.JobApplication) string {
		return a.ResumePath
	})
}

// ApplicationPortfolio returns a short-lived link to the applicant's
// portfolio file, when one was uploaded.
func (h *Admin) ApplicationPortfolio(w http.ResponseWriter, r *http.Request) {
	h.applicationFileLink(w, r, "Portfolio", func(a *models.JobApplication) string {
		if a.PortfolioPath == nil {
			return ""
		}
		return *a.PortfolioPath
	})
}

func (h *Admin) applicationFileLink(w http.ResponseWriter, r *http.Request, label string, key func(*models.JobApplication) string) {
	if h.uploads == nil {
		response.Error(w, http.StatusServiceUnavailable, "File storage is not configured.")
		return
	}
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	app, err := h.applications.FindByID(id)
	if err != nil || app == nil {
		notFoundOrInternal(w, err, "find application failed")
		return
	}
	k := key(app)
	if k == "" {
		response.NotFound(w, label+" not found")
		return
	}
	url, err := h.uploads.PresignedURL(r.Context(), k, resumeLinkTTL)
	if err != nil {
		response.Internal(w, err, "presign application file failed")
		return
	}
	response.OK(w, label+" link generated", map[string]string{"url": url})
}

// JobToggleActive opens or closes one job posting.
func (h *Admin) JobToggleActive(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	job, err := h.jobs.FindByID(id)
	if err != nil || job == nil {
		notFoundOrInternal(w, err, "find job failed")
		return
	}
	job.IsActive = !job.IsActive
	if err := h.jobs.SetActive(id, job.IsActive); err != nil {
		response.Internal(w, err, "toggle job failed")
		return
	}
	response.OK(w, "Job status updated", newJobView(h.ids, job))
}

// JobsBulkUpdateStatus opens or closes several job postings, recording
// per-item failures.
func (h *Admin) JobsBulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	bulkActive(w, r, h.ids, h.jobs.BulkSetActive, "bulk update jobs failed")
}
