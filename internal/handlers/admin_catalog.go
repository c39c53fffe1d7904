// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"nexusapi/internal/middleware"
	"nexusapi/internal/models"
	"nexusapi/internal/response"
	"nexusapi/internal/slug"
	"nexusapi/internal/store"
)

// catalogForm holds the shared fields of services, projects, and
// disciplines as read from the request.
type catalogForm struct {
	Title       string
	Description *string
	Slug        string
	IsActive    bool
}

// readCatalogForm validates and extracts the shared catalog fields.
// Returns an error message for the first failed check.
func readCatalogForm(r *http.Request, currentSlug string) (catalogForm, string) {
	var f catalogForm
	f.Title = strings.TrimSpace(r.FormValue("title"))
	if msg := validateTitle(f.Title); msg != "" {
		return f, msg
	}
	f.Description = formStrPtr(r.FormValue("description"))
	f.IsActive = formBool(r.FormValue("is_active"))

	if s := strings.TrimSpace(r.FormValue("slug")); s != "" {
		if !slug.Valid(s) {
			return f, "Slug may contain only lowercase letters, digits, and hyphens."
		}
		f.Slug = s
	} else if currentSlug != "" {
		f.Slug = currentSlug
	} else {
		f.Slug = slug.Generate(f.Title)
	}
	return f, ""
}

// disciplineFieldPresent reports whether the request named a discipline
// list field at all, under either accepted name. Absent means an update
// keeps the current links.
func disciplineFieldPresent(r *http.Request) bool {
	_, ids := r.Form["discipline_ids"]
	_, alias := r.Form["disciplines"]
	return ids || alias
}

// disciplineIDsFromForm decodes the discipline list, sent as either
// discipline_ids or disciplines.
func (h *Admin) disciplineIDsFromForm(r *http.Request) ([]int64, string) {
	tokens := r.Form["discipline_ids"]
	if len(tokens) == 0 {
		tokens = r.Form["disciplines"]
	}
	if len(tokens) == 1 && strings.HasPrefix(strings.TrimSpace(tokens[0]), "[") {
		tokens = formLines(tokens[0])
	}
	ids := make([]int64, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		id, ok := h.ids.Decode(tok)
		if !ok {
			return nil, "Invalid discipline identifier."
		}
		ids = append(ids, id)
	}
	return ids, ""
}

// currentDisciplineIDs extracts the linked discipline ids of a loaded row.
func currentDisciplineIDs(ds []models.Discipline) []int64 {
	ids := make([]int64, 0, len(ds))
	for _, d := range ds {
		ids = append(ids, d.ID)
	}
	return ids
}

// imageFromForm validates and uploads the image file sent under field,
// returning current unchanged when none arrives. The second return is a
// validation message for a rejected file.
func (h *Admin) imageFromForm(r *http.Request, field, label, prefix string, current *string) (*string, string, error) {
	fh := formFile(r, field)
	if fh == nil {
		return current, "", nil
	}
	if msg := checkImage(fh.Filename, fh.Size); msg != "" {
		return nil, label + " " + msg, nil
	}
	if h.uploads == nil {
		return current, "", nil
	}
	url, err := h.uploads.UploadFormImage(r.Context(), prefix, fh)
	if err != nil {
		return nil, "", err
	}
	return &url, "", nil
}

// coverPhotoFromForm handles the cover_photo file of catalog rows and blogs.
func (h *Admin) coverPhotoFromForm(r *http.Request, prefix string, current *string) (*string, string, error) {
	return h.imageFromForm(r, "cover_photo", "Cover photo", prefix, current)
}

// --- Services ---

// ServicesList returns services filtered by ?active= and ?search=.
func (h *Admin) ServicesList(w http.ResponseWriter, r *http.Request) {
	services, err := h.services.List(store.CatalogFilters{
		Active: activeFilter(r),
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
	})
	if err != nil {
		response.Internal(w, err, "list services failed")
		return
	}
	response.OK(w, "Services retrieved", newServiceViews(h.ids, services))
}

// ServiceShow returns one service with sections and discipline links.
func (h *Admin) ServiceShow(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	svc, err := h.services.FindByID(id)
	if err != nil || svc == nil {
		notFoundOrInternal(w, err, "find service failed")
		return
	}
	response.OK(w, "Service retrieved", newServiceView(h.ids, svc))
}

// ServiceShowBySlug returns one service by slug, active or not.
func (h *Admin) ServiceShowBySlug(w http.ResponseWriter, r *http.Request) {
	svc, err := h.services.FindBySlugAny(chi.URLParam(r, "slug"))
	if err != nil || svc == nil {
		notFoundOrInternal(w, err, "find service by slug failed")
		return
	}
	response.OK(w, "Service retrieved", newServiceView(h.ids, svc))
}

// ServiceCreate adds a service with its sections and discipline links.
func (h *Admin) ServiceCreate(w http.ResponseWriter, r *http.Request) {
	if err := parseAnyForm(r); err != nil {
		response.ValidationError(w, err.Error())
		return
	}
	form, msg := readCatalogForm(r, "")
	if msg != "" {
		response.ValidationError(w, msg)
		return
	}
	disciplineIDs, msg := h.disciplineIDsFromForm(r)
	if msg != "" {
		response.ValidationError(w, msg)
		return
	}
	cover, msg, err := h.coverPhotoFromForm(r, "services", nil)
	if msg != "" {
		response.ValidationError(w, msg)
		return
	}
	if err != nil {
		response.Internal(w, err, "cover photo upload failed")
		return
	}
	sections, msg, err := parseSectionForm(r, h.uploads, "services", nil)
	if msg != "" {
		response.ValidationError(w, msg)
		return
	}
	if err != nil {
		response.Internal(w, err, "section upload failed")
		return
	}

	svc := &models.Service{
		Title:       form.Title,
		Description: form.Description,
		Slug:        form.Slug,
		CoverPhoto:  cover,
		IsActive:    form.IsActive,
		CreatedBy:   middleware.PrincipalFromCtx(r.Context()).ID,
		Sections:    sections,
	}
	created, err := h.services.Create(svc, disciplineIDs)
	if err != nil {
		if isDuplicate(err) {
			response.ValidationError(w, "Slug is already in use.")
			return
		}
		response.Internal(w, err, "create service failed")
		return
	}
	response.Created(w, "Service created", newServiceView(h.ids, created))
}

// ServiceUpdate modifies a service. Sections are replaced only when the
// request carries section fields, and discipline links only when it
// names a discipline list; files the update orphans are removed from
// storage afterwards.
func (h *Admin) ServiceUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	svc, err := h.services.FindByID(id)
	if err != nil || svc == nil {
		notFoundOrInternal(w, err, "find service failed")
		return
	}
	if err := parseAnyForm(r); err != nil {
		response.ValidationError(w, err.Error())
		return
	}
	form, msg := readCatalogForm(r, svc.Slug)
	if msg != "" {
		response.ValidationError(w, msg)
		return
	}
	previous := assetURLs(svc.CoverPhoto, svc.Sections)

	disciplineIDs := currentDisciplineIDs(svc.Disciplines)
	if disciplineFieldPresent(r) {
		disciplineIDs, msg = h.disciplineIDsFromForm(r)
		if msg != "" {
			response.ValidationError(w, msg)
			return
		}
	}
	cover, msg, err := h.coverPhotoFromForm(r, "services", svc.CoverPhoto)
	if msg != "" {
		response.ValidationError(w, msg)
		return
	}
	if err != nil {
		response.Internal(w, err, "cover photo upload failed")
		return
	}
	sections := svc.Sections
	if sectionFormPresent(r) {
		existing, err := h.services.SectionImages(id)
		if err != nil {
			response.Internal(w, err, "load section images failed")
			return
		}
		sections, msg, err = parseSectionForm(r, h.uploads, "services", existing)
		if msg != "" {
			response.ValidationError(w, msg)
			return
		}
		if err != nil {
			response.Internal(w, err, "section upload failed")
			return
		}
	}

	svc.Title = form.Title
	svc.Description = form.Description
	svc.Slug = form.Slug
	svc.CoverPhoto = cover
	svc.IsActive = form.IsActive
	svc.Sections = sections
	if err := h.services.Update(svc, disciplineIDs); err != nil {
		if isDuplicate(err) {
			response.ValidationError(w, "Slug is already in use.")
			return
		}
		response.Internal(w, err, "update service failed")
		return
	}
	updated, err := h.services.FindByID(id)
	if err != nil || updated == nil {
		notFoundOrInternal(w, err, "find service failed")
		return
	}
	h.uploads.Cleanup(r.Context(), removedFileURLs(previous, assetURLs(updated.CoverPhoto, updated.Sections))...)
	response.OK(w, "Service updated", newServiceView(h.ids, updated))
}

// ServiceDelete removes a service with its sections, links, and files.
func (h *Admin) ServiceDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	svc, err := h.services.FindByID(id)
	if err != nil || svc == nil {
		notFoundOrInternal(w, err, "find service failed")
		return
	}
	assets := assetURLs(svc.CoverPhoto, svc.Sections)
	if err := h.services.Delete(id); err != nil {
		response.Internal(w, err, "delete service failed")
		return
	}
	h.uploads.Cleanup(r.Context(), assets...)
	response.OK(w, "Service deleted", nil)
}

// ServicesBulkDelete removes several services, recording per-item failures.
func (h *Admin) ServicesBulkDelete(w http.ResponseWriter, r *http.Request) {
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
			if svc, err := h.services.FindByID(id); err == nil && svc != nil {
				assets[id] = assetURLs(svc.CoverPhoto, svc.Sections)
			}
		}
	}
	res, err := h.services.BulkDelete(ids)
	if err != nil {
		response.Internal(w, err, "bulk delete services failed")
		return
	}
	cleanupAfterBulkDelete(r.Context(), h.uploads, assets, func(id int64) bool {
		svc, err := h.services.FindByID(id)
		return err == nil && svc == nil
	})
	merged := mergeBulkErrors(res, decodeErrors)
	response.OK(w, fmt.Sprintf("Bulk delete completed: %d deleted", merged.DeletedCount), merged)
}

// --- Projects ---

// ProjectsList returns projects filtered by ?active= and ?search=.
func (h *Admin) ProjectsList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(store.CatalogFilters{
		Active: activeFilter(r),
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
	})
	if err != nil {
		response.Internal(w, err, "list projects failed")
		return
	}
	response.OK(w, "Projects retrieved", newProjectViews(h.ids, projects))
}

// ProjectShow returns one project with sections and discipline links.
func (h *Admin) ProjectShow(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	p, err := h.projects.FindByID(id)
	if err != nil || p == nil {
		notFoundOrInternal(w, err, "find project failed")
		return
	}
	response.OK(w, "Project retrieved", newProjectView(h.ids, p))
}

// ProjectShowBySlug returns one project by slug, active or not.
func (h *Admin) ProjectShowBySlug(w http.ResponseWriter, r *http.Request) {
	p, err := h.projects.FindBySlugAny(chi.URLParam(r, "slug"))
	if err != nil || p == nil {
		notFoundOrInternal(w, err, "find project by slug failed")
		return
	}
	response.OK(w, "Project retrieved", newProjectView(h.ids, p))
}

// ProjectCreate adds a project with its sections and discipline links.
func (h *Admin) ProjectCreate(w http.ResponseWriter, r *http.Request) {
	if err := parseAnyForm(r); err != nil {
		response.ValidationError(w, err.Error())
		return
	}
	form, msg := readCatalogForm(r, "")
	if msg != "" {
		response.ValidationError(w, msg)
		return
	}
	disciplineIDs, msg := h.disciplineIDsFromForm(r)
	if msg != "" {
		response.ValidationError(w, msg)
		return
	}
	cover, msg, err := h.coverPhotoFromForm(r, "projects", nil)
	if msg != "" {
		response.ValidationError(w, msg)
		return
	}
	if err != nil {
		response.Internal(w, err, "cover photo upload failed")
		return
	}
	sections, msg, err := parseSectionForm(r, h.uploads, "projects", nil)
	if msg != "" {
		response.ValidationError(w, msg)
		return
	}
	if err != nil {
		response.Internal(w, err, "section upload failed")
		return
	}

	p := &models.Project{
		Title:       form.Title,
		Description: form.Description,
		Slug:        form.Slug,
		CoverPhoto:  cover,
		IsActive:    form.IsActive,
		CreatedBy:   middleware.PrincipalFromCtx(r.Context()).ID,
		Sections:    sections,
	}
	created, err := h.projects.Create(p, disciplineIDs)
	if err != nil {
		if isDuplicate(err) {
			response.ValidationError(w, "Slug is already in use.")
			return
		}
		response.Internal(w, err, "create project failed")
		return
	}
	response.Created(w, "Project created", newProjectView(h.ids, created))
}

// ProjectUpdate modifies a project. Sections and discipline links are
// replaced only when the request carries those fields.
func (h *Admin) ProjectUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	p, err := h.projects.FindByID(id)
	if err != nil || p == nil {
		notFoundOrInternal(w, err, "find project failed")
		return
	}
	if err := parseAnyForm(r); err != nil {
		response.ValidationError(w, err.Error())
		return
	}
	form, msg := readCatalogForm(r, p.Slug)
	if msg != "" {
		response.ValidationError(w, msg)
		return
	}
	previous := assetURLs(p.CoverPhoto, p.Sections)

	disciplineIDs := currentDisciplineIDs(p.Disciplines)
	if disciplineFieldPresent(r) {
		disciplineIDs, msg = h.disciplineIDsFromForm(r)
		if msg != "" {
			response.ValidationError(w, msg)
			return
		}
	}
	cover, msg, err := h.coverPhotoFromForm(r, "projects", p.CoverPhoto)
	if msg != "" {
		response.ValidationError(w, msg)
		return
	}
	if err != nil {
		response.Internal(w, err, "cover photo upload failed")
		return
	}
	sections := p.Sections
	if sectionFormPresent(r) {
		existing, err := h.projects.SectionImages(id)
		if err != nil {
			response.Internal(w, err, "load section images failed")
			return
		}
		sections, msg, err = parseSectionForm(r, h.uploads, "projects", existing)
		if msg != "" {
			response.ValidationError(w, msg)
			return
		}
		if err != nil {
			response.Internal(w, err, "section upload failed")
			return
		}
	}

	p.Title = form.Title
	p.Description = form.Description
	p.Slug = form.Slug
	p.CoverPhoto = cover
	p.IsActive = form.IsActive
	p.Sections = sections
	if err := h.projects.Update(p, disciplineIDs); err != nil {
		if isDuplicate(err) {
			response.ValidationError(w, "Slug is already in use.")
			return
		}
		response.Internal(w, err, "update project failed")
		return
	}
	updated, err := h.projects.FindByID(id)
	if err != nil || updated == nil {
		notFoundOrInternal(w, err, "find project failed")
		return
	}
	h.uploads.Cleanup(r.Context(), removedFileURLs(previous, assetURLs(updated.CoverPhoto, updated.Sections))...)
	response.OK(w, "Project updated", newProjectView(h.ids, updated))
}

// ProjectDelete removes a project with its sections, links, and files.
func (h *Admin) ProjectDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	p, err := h.projects.FindByID(id)
	if err != nil || p == nil {
		notFoundOrInternal(w, err, "find project failed")
		return
	}
	assets := assetURLs(p.CoverPhoto, p.Sections)
	if err := h.projects.Delete(id); err != nil {
		response.Internal(w, err, "delete project failed")
		return
	}
	h.uploads.Cleanup(r.Context(), assets...)
	response.OK(w, "Project deleted", nil)
}

// ProjectsBulkDelete removes several projects, recording per-item failures.
func (h *Admin) ProjectsBulkDelete(w http.ResponseWriter, r *http.Request) {
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
			if p, err := h.projects.FindByID(id); err == nil && p != nil {
				assets[id] = assetURLs(p.CoverPhoto, p.Sections)
			}
		}
	}
	res, err := h.projects.BulkDelete(ids)
	if err != nil {
		response.Internal(w, err, "bulk delete projects failed")
		return
	}
	cleanupAfterBulkDelete(r.Context(), h.uploads, assets, func(id int64) bool {
		p, err := h.projects.FindByID(id)
		return err == nil && p == nil
	})
	merged := mergeBulkErrors(res, decodeErrors)
	response.OK(w, fmt.Sprintf("Bulk delete completed: %d deleted", merged.DeletedCount), merged)
}

// --- Disciplines ---

// DisciplinesList returns disciplines filtered by ?active= and ?search=.
func (h *Admin) DisciplinesList(w http.ResponseWriter, r *http.Request) {
	disciplines, err := h.disciplines.List(store.CatalogFilters{
		Active: activeFilter(r),
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
	})
	if err != nil {
		response.Internal(w, err, "list disciplines failed")
		return
	}
	response.OK(w, "Disciplines retrieved", newDisciplineViews(h.ids, disciplines))
}

// DisciplineShow returns one discipline with sections and its linked
// services and projects.
func (h *Admin) DisciplineShow(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	d, err := h.disciplines.FindByID(id)
	if err != nil || d == nil {
		notFoundOrInternal(w, err, "find discipline failed")
		return
	}
	response.OK(w, "Discipline retrieved", newDisciplineView(h.ids, d))
}

// DisciplineCreate adds a discipline with its sections.
func (h *Admin) DisciplineCreate(w http.ResponseWriter, r *http.Request) {
	if err := parseAnyForm(r); err != nil {
		response.ValidationError(w, err.Error())
		return
	}
	form, msg := readCatalogForm(r, "")
	if msg != "" {
		response.ValidationError(w, msg)
		return
	}
	cover, msg, err := h.coverPhotoFromForm(r, "disciplines", nil)
	if msg != "" {
		response.ValidationError(w, msg)
		return
	}
	if err != nil {
		response.Internal(w, err, "cover photo upload failed")
		return
	}
	sections, msg, err := parseSectionForm(r, h.uploads, "disciplines", nil)
	if msg != "" {
		response.ValidationError(w, msg)
		return
	}
	if err != nil {
		response.Internal(w, err, "section upload failed")
		return
	}

	d := &models.Discipline{
		Title:       form.Title,
		Description: form.Description,
		Slug:        form.Slug,
		CoverPhoto:  cover,
		IsActive:    form.IsActive,
		CreatedBy:   middleware.PrincipalFromCtx(r.Context()).ID,
		Sections:    sections,
	}
	created, err := h.disciplines.Create(d)
	if err != nil {
		if isDuplicate(err) {
			response.ValidationError(w, "Slug is already in use.")
			return
		}
		response.Internal(w, err, "create discipline failed")
		return
	}
	response.Created(w, "Discipline created", newDisciplineView(h.ids, created))
}

// DisciplineUpdate modifies a discipline. Sections are replaced only
// when the request carries section fields.
func (h *Admin) DisciplineUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	d, err := h.disciplines.FindByID(id)
	if err != nil || d == nil {
		notFoundOrInternal(w, err, "find discipline failed")
		return
	}
	if err := parseAnyForm(r); err != nil {
		response.ValidationError(w, err.Error())
		return
	}
	form, msg := readCatalogForm(r, d.Slug)
	if msg != "" {
		response.ValidationError(w, msg)
		return
	}
	previous := assetURLs(d.CoverPhoto, d.Sections)

	cover, msg, err := h.coverPhotoFromForm(r, "disciplines", d.CoverPhoto)
	if msg != "" {
		response.ValidationError(w, msg)
		return
	}
	if err != nil {
		response.Internal(w, err, "cover photo upload failed")
		return
	}
	sections := d.Sections
	if sectionFormPresent(r) {
		existing, err := h.disciplines.SectionImages(id)
		if err != nil {
			response.Internal(w, err, "load section images failed")
			return
		}
		sections, msg, err = parseSectionForm(r, h.uploads, "disciplines", existing)
		if msg != "" {
			response.ValidationError(w, msg)
			return
		}
		if err != nil {
			response.Internal(w, err, "section upload failed")
			return
		}
	}

	d.Title = form.Title
	d.Description = form.Description
	d.Slug = form.Slug
	d.CoverPhoto = cover
	d.IsActive = form.IsActive
	d.Sections = sections
	if err := h.disciplines.Update(d); err != nil {
		if isDuplicate(err) {
			response.ValidationError(w, "Slug is already in use.")
			return
		}
		response.Internal(w, err, "update discipline failed")
		return
	}
	updated, err := h.disciplines.FindByID(id)
	if err != nil || updated == nil {
		notFoundOrInternal(w, err, "find discipline failed")
		return
	}
	h.uploads.Cleanup(r.Context(), removedFileURLs(previous, assetURLs(updated.CoverPhoto, updated.Sections))...)
	response.OK(w, "Discipline updated", newDisciplineView(h.ids, updated))
}

// DisciplineDelete removes a discipline with its sections, links, and files.
func (h *Admin) DisciplineDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	d, err := h.disciplines.FindByID(id)
	if err != nil || d == nil {
		notFoundOrInternal(w, err, "find discipline failed")
		return
	}
	assets := assetURLs(d.CoverPhoto, d.Sections)
	if err := h.disciplines.Delete(id); err != nil {
		response.Internal(w, err, "delete discipline failed")
		return
	}
	h.uploads.Cleanup(r.Context(), assets...)
	response.OK(w, "Discipline deleted", nil)
}

// DisciplinesBulkDelete removes several disciplines, recording per-item failures.
func (h *Admin) DisciplinesBulkDelete(w http.ResponseWriter, r *http.Request) {
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
			if d, err := h.disciplines.FindByID(id); err == nil && d != nil {
				assets[id] = assetURLs(d.CoverPhoto, d.Sections)
			}
		}
	}
	res, err := h.disciplines.BulkDelete(ids)
	if err != nil {
		response.Internal(w, err, "bulk delete disciplines failed")
		return
	}
	cleanupAfterBulkDelete(r.Context(), h.uploads, assets, func(id int64) bool {
		d, err := h.disciplines.FindByID(id)
		return err == nil && d == nil
	})
	merged := mergeBulkErrors(res, decodeErrors)
	response.OK(w, fmt.Sprintf("Bulk delete completed: %d deleted", merged.DeletedCount), merged)
}

// ServiceToggleActive flips public visibility of one service.
func (h *Admin) ServiceToggleActive(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	svc, err := h.services.FindByID(id)
	if err != nil || svc == nil {
		notFoundOrInternal(w, err, "find service failed")
		return
	}
	svc.IsActive = !svc.IsActive
	if err := h.services.SetActive(id, svc.IsActive); err != nil {
		response.Internal(w, err, "toggle service failed")
		return
	}
	response.OK(w, "Service status updated", newServiceView(h.ids, svc))
}

// ServicesBulkUpdateStatus shows or hides several services, recording
// per-item failures.
func (h *Admin) ServicesBulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	bulkActive(w, r, h.ids, h.services.BulkSetActive, "bulk update services failed")
}

// ProjectToggleActive flips public visibility of one project.
func (h *Admin) ProjectToggleActive(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	p, err := h.projects.FindByID(id)
	if err != nil || p == nil {
		notFoundOrInternal(w, err, "find project failed")
		return
	}
	p.IsActive = !p.IsActive
	if err := h.projects.SetActive(id, p.IsActive); err != nil {
		response.Internal(w, err, "toggle project failed")
		return
	}
	response.OK(w, "Project status updated", newProjectView(h.ids, p))
}

// ProjectsBulkUpdateStatus shows or hides several projects, recording
// per-item failures.
func (h *Admin) ProjectsBulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	bulkActive(w, r, h.ids, h.projects.BulkSetActive, "bulk update projects failed")
}

// DisciplineToggleActive flips public visibility of one discipline.
func (h *Admin) DisciplineToggleActive(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	d, err := h.disciplines.FindByID(id)
	if err != nil || d == nil {
		notFoundOrInternal(w, err, "find discipline failed")
		return
	}
	d.IsActive = !d.IsActive
	if err := h.disciplines.SetActive(id, d.IsActive); err != nil {
		response.Internal(w, err, "toggle discipline failed")
		return
	}
	response.OK(w, "Discipline status updated", newDisciplineView(h.ids, d))
}

// DisciplinesBulkUpdateStatus shows or hides several disciplines,
// recording per-item failures.
func (h *Admin) DisciplinesBulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	bulkActive(w, r, h.ids, h.disciplines.BulkSetActive, "bulk update disciplines failed")
}
