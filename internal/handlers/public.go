// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"nexusapi/internal/mailer"
	"nexusapi/internal/models"
	"nexusapi/internal/response"
	"nexusapi/internal/secureid"
	"nexusapi/internal/storage"
	"nexusapi/internal/store"
)

const (
	maxResumeBytes    = 5 << 20
	maxPortfolioBytes = 10 << 20
	recentBlogCount   = 6
	relatedBlogCount  = 3
)

// Public groups the unauthenticated site handlers. Only active rows are
// ever served here.
type Public struct {
	ids          *secureid.Codec
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
	notifyEmail  string
}

// NewPublic creates a new Public handler group with the given dependencies.
// uploads and mail may be nil if those services are not configured.
// notifyEmail receives an alert for every new job application.
func NewPublic(ids *secureid.Codec, blogs *store.BlogStore, services *store.ServiceStore, projects *store.ProjectStore, disciplines *store.DisciplineStore, jobs *store.JobStore, applications *store.ApplicationStore, feedbacks *store.FeedbackStore, settings *store.SettingStore, uploads *storage.Client, mail *mailer.Mailer, notifyEmail string) *Public {
	return &Public{
		ids:          ids,
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
		notifyEmail:  notifyEmail,
	}
}

func activeOnly() *bool {
	v := true
	return &v
}

// --- Services, projects, disciplines ---

// ServicesList returns the active services.
func (h *Public) ServicesList(w http.ResponseWriter, r *http.Request) {
	services, err := h.services.List(store.CatalogFilters{Active: activeOnly()})
	if err != nil {
		response.Internal(w, err, "list public services failed")
		return
	}
	response.OK(w, "Services retrieved", newServiceViews(h.ids, services))
}

// ServiceBySlug returns one active service with its sections.
func (h *Public) ServiceBySlug(w http.ResponseWriter, r *http.Request) {
	svc, err := h.services.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil || svc == nil {
		notFoundOrInternal(w, err, "find public service failed")
		return
	}
	response.OK(w, "Service retrieved", newServiceView(h.ids, svc))
}

// ProjectsList returns the active projects.
func (h *Public) ProjectsList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(store.CatalogFilters{Active: activeOnly()})
	if err != nil {
		response.Internal(w, err, "list public projects failed")
		return
	}
	response.OK(w, "Projects retrieved", newProjectViews(h.ids, projects))
}

// ProjectBySlug returns one active project with its sections.
func (h *Public) ProjectBySlug(w http.ResponseWriter, r *http.Request) {
	p, err := h.projects.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil || p == nil {
		notFoundOrInternal(w, err, "find public project failed")
		return
	}
	response.OK(w, "Project retrieved", newProjectView(h.ids, p))
}

// DisciplinesList returns the active disciplines.
func (h *Public) DisciplinesList(w http.ResponseWriter, r *http.Request) {
	disciplines, err := h.disciplines.List(store.CatalogFilters{Active: activeOnly()})
	if err != nil {
		response.Internal(w, err, "list public disciplines failed")
		return
	}
	response.OK(w, "Disciplines retrieved", newDisciplineViews(h.ids, disciplines))
}

// DisciplineBySlug returns one active discipline with its active
// services and projects.
func (h *Public) DisciplineBySlug(w http.ResponseWriter, r *http.Request) {
	d, err := h.disciplines.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil || d == nil {
		notFoundOrInternal(w, err, "find public discipline failed")
		return
	}
	response.OK(w, "Discipline retrieved", newDisciplineView(h.ids, d))
}

// --- Blogs ---

// BlogsList returns active blogs, optionally filtered by ?category=.
func (h *Public) BlogsList(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category != "" && !models.ValidBlogCategory(category) {
		response.ValidationError(w, "Category must be either trending or news.")
		return
	}
	blogs, err := h.blogs.List(store.BlogFilters{
		Category: category,
		Active:   activeOnly(),
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
	})
	if err != nil {
		response.Internal(w, err, "list public blogs failed")
		return
	}
	response.OK(w, "Blogs retrieved", newBlogViews(h.ids, blogs))
}

// BlogLanding returns the hero blog and the most recent posts in one
// payload for the landing page.
func (h *Public) BlogLanding(w http.ResponseWriter, r *http.Request) {
	hero, err := h.blogs.Hero()
	if err != nil {
		response.Internal(w, err, "load hero blog failed")
		return
	}
	recent, err := h.blogs.Recent(recentBlogCount)
	if err != nil {
		response.Internal(w, err, "load recent blogs failed")
		return
	}
	payload := map[string]any{
		"hero":   nil,
		"recent": newBlogViews(h.ids, recent),
	}
	if hero != nil {
		payload["hero"] = newBlogView(h.ids, hero)
	}
	response.OK(w, "Landing blogs retrieved", payload)
}

// BlogsRecent returns the most recent active blogs.
func (h *Public) BlogsRecent(w http.ResponseWriter, r *http.Request) {
	recent, err := h.blogs.Recent(recentBlogCount)
	if err != nil {
		response.Internal(w, err, "load recent blogs failed")
		return
	}
	response.OK(w, "Recent blogs retrieved", newBlogViews(h.ids, recent))
}

// BlogCategories returns the category list with active-post counts.
func (h *Public) BlogCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.blogs.CategoriesWithCounts()
	if err != nil {
		response.Internal(w, err, "list blog categories failed")
		return
	}
	response.OK(w, "Categories retrieved", categories)
}

// BlogBySlug returns one active blog with its FAQs.
func (h *Public) BlogBySlug(w http.ResponseWriter, r *http.Request) {
	b, err := h.blogs.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil || b == nil {
		notFoundOrInternal(w, err, "find public blog failed")
		return
	}
	response.OK(w, "Blog retrieved", newBlogView(h.ids, b))
}

// BlogRelated returns active blogs sharing the category of the given one.
func (h *Public) BlogRelated(w http.ResponseWriter, r *http.Request) {
	b, err := h.blogs.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil || b == nil {
		notFoundOrInternal(w, err, "find public blog failed")
		return
	}
	related, err := h.blogs.Related(b, relatedBlogCount)
	if err != nil {
		response.Internal(w, err, "load related blogs failed")
		return
	}
	response.OK(w, "Related blogs retrieved", newBlogViews(h.ids, related))
}

// --- Jobs ---

// JobsList returns active jobs filtered by ?type=, ?location=, ?search=.
func (h *Public) JobsList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if t := q.Get("type"); t != "" && !models.ValidJobType(t) {
		response.ValidationError(w, "Invalid job type.")
		return
	}
	jobs, err := h.jobs.List(store.JobFilters{
		Type:     q.Get("type"),
		Location: strings.TrimSpace(q.Get("location")),
		Active:   activeOnly(),
		Search:   strings.TrimSpace(q.Get("search")),
	})
	if err != nil {
		response.Internal(w, err, "list public jobs failed")
		return
	}
	response.OK(w, "Jobs retrieved", newJobViews(h.ids, jobs))
}

// JobLocations returns the distinct locations of active jobs.
func (h *Public) JobLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.jobs.Locations()
	if err != nil {
		response.Internal(w, err, "list job locations failed")
		return
	}
	response.OK(w, "Job locations retrieved", locations)
}

// JobBySlug returns one active job posting.
func (h *Public) JobBySlug(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil || job == nil {
		notFoundOrInternal(w, err, "find public job failed")
		return
	}
	response.OK(w, "Job retrieved", newJobView(h.ids, job))
}

var documentExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// JobApply accepts a multipart application for an active job. The
// resume is required; one application per email per job.
func (h *Public) JobApply(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil || job == nil {
		notFoundOrInternal(w, err, "find public job failed")
		return
	}
	if h.uploads == nil {
		response.Error(w, http.StatusServiceUnavailable, "File storage is not configured.")
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.ValidationError(w, "Invalid request body")
		return
	}

	app := &models.JobApplication{
		JobID:             job.ID,
		FirstName:         strings.TrimSpace(r.FormValue("first_name")),
		LastName:          strings.TrimSpace(r.FormValue("last_name")),
		Email:             strings.ToLower(strings.TrimSpace(r.FormValue("email"))),
		Phone:             strings.TrimSpace(r.FormValue("phone")),
		Address:           formStrPtr(r.FormValue("address")),
		LinkedinProfile:   formStrPtr(r.FormValue("linkedin_profile")),
		PortfolioWebsite:  formStrPtr(r.FormValue("portfolio_website")),
		CoverLetter:       strings.TrimSpace(r.FormValue("cover_letter")),
		CurrentPosition:   formStrPtr(r.FormValue("current_position")),
		CurrentCompany:    formStrPtr(r.FormValue("current_company")),
		Availability:      models.Availability(r.FormValue("availability")),
		WillingToRelocate: formBool(r.FormValue("willing_to_relocate")),
		Status:            models.StatusPending,
	}
	if msg := validateApplication(app.FirstName, app.LastName, app.Email, app.Phone, app.CoverLetter, string(app.Availability)); msg != "" {
		response.ValidationError(w, msg)
		return
	}
	if years := formIntPtr(r.FormValue("years_of_experience")); years != nil {
		app.YearsOfExperience = *years
	}
	if salary := r.FormValue("expected_salary"); strings.TrimSpace(salary) != "" {
		app.ExpectedSalary = formFloatPtr(salary)
	}

	exists, err := h.applications.ExistsForJob(job.ID, app.Email)
	if err != nil {
		response.Internal(w, err, "check duplicate application failed")
		return
	}
	if exists {
		response.Error(w, http.StatusUnprocessableEntity, "You have already applied for this position.")
		return
	}

	_, resume, err := r.FormFile("resume")
	if err != nil || resume == nil {
		response.ValidationError(w, "Resume is required.")
		return
	}
	if msg := checkDocument(resume.Filename, resume.Size, maxResumeBytes); msg != "" {
		response.ValidationError(w, "Resume "+msg)
		return
	}
	resumeKey, err := h.uploads.UploadFormPrivate(r.Context(), "resumes", resume)
	if err != nil {
		response.Internal(w, err, "resume upload failed")
		return
	}
	app.ResumePath = resumeKey

	if _, portfolio, err := r.FormFile("portfolio"); err == nil && portfolio != nil {
		if msg := checkDocument(portfolio.Filename, portfolio.Size, maxPortfolioBytes); msg != "" {
			response.ValidationError(w, "Portfolio "+msg)
			return
		}
		key, err := h.uploads.UploadFormPrivate(r.Context(), "portfolios", portfolio)
		if err != nil {
			response.Internal(w, err, "portfolio upload failed")
			return
		}
		app.PortfolioPath = &key
	}

	created, err := h.applications.Create(app)
	if err != nil {
		// The uploads are orphans once the insert fails; drop them.
		uploaded := []string{app.ResumePath}
		if app.PortfolioPath != nil {
			uploaded = append(uploaded, *app.PortfolioPath)
		}
		h.uploads.CleanupPrivate(r.Context(), uploaded...)
		if isDuplicate(err) {
			response.Error(w, http.StatusUnprocessableEntity, "You have already applied for this position.")
			return
		}
		response.Internal(w, err, "create application failed")
		return
	}
	h.mail.SendApplicationReceived(created.Email, created.Name(), job.Title)
	if h.notifyEmail != "" {
		h.mail.SendNewApplicationAlert(h.notifyEmail, created.Name(), job.Title)
	}

	response.Created(w, "Application submitted", newApplicationView(h.ids, created))
}

// checkDocument validates an uploaded document's extension and size.
// Returns the tail of an error message, or "".
func checkDocument(filename string, size, limit int64) string {
	if !documentExtensions[strings.ToLower(filepath.Ext(filename))] {
		return "must be a PDF or Word document."
	}
	if size > limit {
		return "exceeds the maximum file size."
	}
	return ""
}

// --- Aggregates ---

// Home returns the landing-page aggregate: site settings, testimonials,
// and recent blog posts.
func (h *Public) Home(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get()
	if err != nil {
		response.Internal(w, err, "get settings failed")
		return
	}
	feedbacks, err := h.feedbacks.List(true)
	if err != nil {
		response.Internal(w, err, "list public feedbacks failed")
		return
	}
	recent, err := h.blogs.Recent(recentBlogCount)
	if err != nil {
		response.Internal(w, err, "load recent blogs failed")
		return
	}
	response.OK(w, "Home retrieved", map[string]any{
		"settings":  newSettingView(settings),
		"feedbacks": newFeedbackViews(h.ids, feedbacks),
		"blogs":     newBlogViews(h.ids, recent),
	})
}

// About returns the site settings for the about page.
func (h *Public) About(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get()
	if err != nil {
		response.Internal(w, err, "get settings failed")
		return
	}
	response.OK(w, "About retrieved", newSettingView(settings))
}
