// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"database/sql"
	"errors"
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

// BlogsList returns blogs filtered by ?category=, ?active=, ?search=.
func (h *Admin) BlogsList(w http.ResponseWriter, r *http.Request) {
	f := store.BlogFilters{
		Category: r.URL.Query().Get("category"),
		Active:   activeFilter(r),
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
	}
	if f.Category != "" && !models.ValidBlogCategory(f.Category) {
		response.ValidationError(w, "Category must be either trending or news.")
		return
	}
	blogs, err := h.blogs.List(f)
	if err != nil {
		response.Internal(w, err, "list blogs failed")
		return
	}
	response.OK(w, "Blogs retrieved", newBlogViews(h.ids, blogs))
}

// BlogShow returns one blog with FAQs and author.
func (h *Admin) BlogShow(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	b, err := h.blogs.FindByID(id)
	if err != nil || b == nil {
		notFoundOrInternal(w, err, "find blog failed")
		return
	}
	response.OK(w, "Blog retrieved", newBlogView(h.ids, b))
}

// BlogShowBySlug returns one blog by slug, active or not.
func (h *Admin) BlogShowBySlug(w http.ResponseWriter, r *http.Request) {
	b, err := h.blogs.FindBySlugAny(chi.URLParam(r, "slug"))
	if err != nil || b == nil {
		notFoundOrInternal(w, err, "find blog by slug failed")
		return
	}
	response.OK(w, "Blog retrieved", newBlogView(h.ids, b))
}

// blogFromForm reads the shared create/update fields into b.
func (h *Admin) blogFromForm(r *http.Request, b *models.Blog) string {
	title := strings.TrimSpace(r.FormValue("title"))
	category := r.FormValue("category")
	content := r.FormValue("content")
	if msg := validateBlog(title, category, content); msg != "" {
		return msg
	}

	b.Title = title
	b.Category = models.BlogCategory(category)
	b.Content = renderDynamicDates(content, time.Now())
	b.Tags = formLines(r.FormValue("tags"))
	b.Headings = formLines(r.FormValue("headings"))
	b.IsActive = formBool(r.FormValue("is_active"))

	if s := strings.TrimSpace(r.FormValue("slug")); s != "" {
		if !slug.Valid(s) {
			return "Slug may contain only lowercase letters, digits, and hyphens."
		}
		b.Slug = s
	} else if b.Slug == "" {
		b.Slug = slug.Generate(title)
	}
	return ""
}

// BlogCreate adds a blog. Accepts multipart form data with an optional
// cover_photo file.
func (h *Admin) BlogCreate(w http.ResponseWriter, r *http.Request) {
	if err := parseAnyForm(r); err != nil {
		response.ValidationError(w, err.Error())
		return
	}
	b := &models.Blog{CreatedBy: middleware.PrincipalFromCtx(r.Context()).ID}
	if msg := h.blogFromForm(r, b); msg != "" {
		response.ValidationError(w, msg)
		return
	}
	cover, msg, err := h.coverPhotoFromForm(r, "blogs", nil)
	if msg != "" {
		response.ValidationError(w, msg)
		return
	}
	if err != nil {
		response.Internal(w, err, "cover photo upload failed")
		return
	}
	b.CoverPhoto = cover

	created, err := h.blogs.Create(b)
	if err != nil {
		if isDuplicate(err) {
			response.ValidationError(w, "Slug is already in use.")
			return
		}
		response.Internal(w, err, "create blog failed")
		return
	}
	response.Created(w, "Blog created", newBlogView(h.ids, created))
}

// BlogUpdate modifies a blog. A missing cover_photo file keeps the
// stored one; a replaced cover is removed from storage.
func (h *Admin) BlogUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	b, err := h.blogs.FindByID(id)
	if err != nil || b == nil {
		notFoundOrInternal(w, err, "find blog failed")
		return
	}
	if err := parseAnyForm(r); err != nil {
		response.ValidationError(w, err.Error())
		return
	}
	if msg := h.blogFromForm(r, b); msg != "" {
		response.ValidationError(w, msg)
		return
	}
	previous := assetURLs(b.CoverPhoto, nil)
	cover, msg, err := h.coverPhotoFromForm(r, "blogs", b.CoverPhoto)
	if msg != "" {
		response.ValidationError(w, msg)
		return
	}
	if err != nil {
		response.Internal(w, err, "cover photo upload failed")
		return
	}
	b.CoverPhoto = cover

	if err := h.blogs.Update(b); err != nil {
		if isDuplicate(err) {
			response.ValidationError(w, "Slug is already in use.")
			return
		}
		response.Internal(w, err, "update blog failed")
		return
	}
	updated, err := h.blogs.FindByID(id)
	if err != nil || updated == nil {
		notFoundOrInternal(w, err, "find blog failed")
		return
	}
	h.uploads.Cleanup(r.Context(), removedFileURLs(previous, assetURLs(updated.CoverPhoto, nil))...)
	response.OK(w, "Blog updated", newBlogView(h.ids, updated))
}

// BlogDelete removes a blog with its FAQs and cover photo.
func (h *Admin) BlogDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	b, err := h.blogs.FindByID(id)
	if err != nil || b == nil {
		notFoundOrInternal(w, err, "find blog failed")
		return
	}
	assets := assetURLs(b.CoverPhoto, nil)
	if err := h.blogs.Delete(id); err != nil {
		response.Internal(w, err, "delete blog failed")
		return
	}
	h.uploads.Cleanup(r.Context(), assets...)
	response.OK(w, "Blog deleted", nil)
}

// BlogsBulkDelete removes several blogs, recording per-item failures.
func (h *Admin) BlogsBulkDelete(w http.ResponseWriter, r *http.Request) {
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
			if b, err := h.blogs.FindByID(id); err == nil && b != nil {
				assets[id] = assetURLs(b.CoverPhoto, nil)
			}
		}
	}
	res, err := h.blogs.BulkDelete(ids)
	if err != nil {
		response.Internal(w, err, "bulk delete blogs failed")
		return
	}
	cleanupAfterBulkDelete(r.Context(), h.uploads, assets, func(id int64) bool {
		b, err := h.blogs.FindByID(id)
		return err == nil && b == nil
	})
	merged := mergeBulkErrors(res, decodeErrors)
	response.OK(w, fmt.Sprintf("Bulk delete completed: %d deleted", merged.DeletedCount), merged)
}

type bulkCategoryRequest struct {
	IDs      []string `json:"ids"`
	Category string   `json:"category"`
}

// BlogsBulkUpdateCategory moves several blogs to a new category.
func (h *Admin) BlogsBulkUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req bulkCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		response.ValidationError(w, err.Error())
		return
	}
	if len(req.IDs) == 0 {
		response.ValidationError(w, "No ids provided.")
		return
	}
	if !models.ValidBlogCategory(req.Category) {
		response.ValidationError(w, "Category must be either trending or news.")
		return
	}
	ids, decodeErrors := decodeIDList(h.ids, req.IDs)
	res, err := h.blogs.BulkUpdateCategory(ids, models.BlogCategory(req.Category))
	if err != nil {
		response.Internal(w, err, "bulk update category failed")
		return
	}
	merged := mergeBulkErrors(res, decodeErrors)
	response.OK(w, fmt.Sprintf("Bulk update completed: %d updated", merged.UpdatedCount), merged)
}

type markHeroRequest struct {
	EncodedID string `json:"encoded_id"`
}

// BlogMarkAsHero makes the blog named in the body the single hero post.
func (h *Admin) BlogMarkAsHero(w http.ResponseWriter, r *http.Request) {
	var req markHeroRequest
	if err := decodeJSON(r, &req); err != nil {
		response.ValidationError(w, err.Error())
		return
	}
	id, ok := h.ids.Decode(req.EncodedID)
	if !ok {
		response.NotFound(w, "")
		return
	}
	if err := h.blogs.MarkAsHero(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			response.NotFound(w, "")
			return
		}
		response.Internal(w, err, "mark hero failed")
		return
	}
	b, err := h.blogs.FindByID(id)
	if err != nil || b == nil {
		notFoundOrInternal(w, err, "find blog failed")
		return
	}
	response.OK(w, "Blog marked as hero", newBlogView(h.ids, b))
}

// BlogOptions returns the choice lists admin forms need.
func (h *Admin) BlogOptions(w http.ResponseWriter, r *http.Request) {
	response.OK(w, "Options retrieved", map[string]any{
		"categories": []models.BlogCategory{models.BlogCategoryTrending, models.BlogCategoryNews},
	})
}

// BlogStatistics returns dashboard counters for blogs.
func (h *Admin) BlogStatistics(w http.ResponseWriter, r *http.Request) {
	st, err := h.blogs.Statistics()
	if err != nil {
		response.Internal(w, err, "blog statistics failed")
		return
	}
	response.OK(w, "Statistics retrieved", st)
}

// BlogUploadContentImage stores an inline editor image and returns its
// public URL.
func (h *Admin) BlogUploadContentImage(w http.ResponseWriter, r *http.Request) {
	if h.uploads == nil {
		response.Error(w, http.StatusServiceUnavailable, "File storage is not configured")
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.ValidationError(w, "Invalid request body")
		return
	}
	fh := formFile(r, "image")
	if fh == nil {
		response.ValidationError(w, "An image file is required.")
		return
	}
	if msg := checkImage(fh.Filename, fh.Size); msg != "" {
		response.ValidationError(w, "Image "+msg)
		return
	}
	url, err := h.uploads.UploadFormImage(r.Context(), "blogs/content", fh)
	if err != nil {
		response.Internal(w, err, "content image upload failed")
		return
	}
	response.OK(w, "Image uploaded", map[string]string{"url": url})
}

// --- Blog FAQs ---

// blogForFAQ resolves the {id} route param to a blog, writing the 404
// itself when the blog is missing.
func (h *Admin) blogForFAQ(w http.ResponseWriter, r *http.Request) *models.Blog {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return nil
	}
	b, err := h.blogs.FindByID(id)
	if err != nil || b == nil {
		notFoundOrInternal(w, err, "find blog failed")
		return nil
	}
	return b
}

// BlogFAQsList returns a blog's FAQs in order.
func (h *Admin) BlogFAQsList(w http.ResponseWriter, r *http.Request) {
	b := h.blogForFAQ(w, r)
	if b == nil {
		return
	}
	response.OK(w, "FAQs retrieved", newFAQViews(h.ids, b.FAQs))
}

type faqRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Order    int    `json:"order"`
}

// BlogFAQCreate appends a FAQ to a blog.
func (h *Admin) BlogFAQCreate(w http.ResponseWriter, r *http.Request) {
	b := h.blogForFAQ(w, r)
	if b == nil {
		return
	}
	var req faqRequest
	if err := decodeJSON(r, &req); err != nil {
		response.ValidationError(w, err.Error())
		return
	}
	if strings.TrimSpace(req.Question) == "" || strings.TrimSpace(req.Answer) == "" {
		response.ValidationError(w, "Question and answer are required.")
		return
	}
	faq, err := h.blogs.CreateFAQ(&models.BlogFAQ{
		BlogID:   b.ID,
		Question: strings.TrimSpace(req.Question),
		Answer:   strings.TrimSpace(req.Answer),
		Order:    req.Order,
	})
	if err != nil {
		response.Internal(w, err, "create faq failed")
		return
	}
	response.Created(w, "FAQ created", faqView{ID: h.ids.Encode(faq.ID), BlogFAQ: *faq})
}

// BlogFAQUpdate modifies a FAQ. A FAQ reached through a blog that does
// not own it is a 404, same as a missing one.
func (h *Admin) BlogFAQUpdate(w http.ResponseWriter, r *http.Request) {
	b := h.blogForFAQ(w, r)
	if b == nil {
		return
	}
	faqID, ok := namedIDParam(r, h.ids, "faqID")
	if !ok {
		response.NotFound(w, "")
		return
	}
	faq, err := h.blogs.FindFAQ(b.ID, faqID)
	if err != nil || faq == nil {
		notFoundOrInternal(w, err, "find faq failed")
		return
	}

	var req faqRequest
	if err := decodeJSON(r, &req); err != nil {
		response.ValidationError(w, err.Error())
		return
	}
	if strings.TrimSpace(req.Question) == "" || strings.TrimSpace(req.Answer) == "" {
		response.ValidationError(w, "Question and answer are required.")
		return
	}
	faq.Question = strings.TrimSpace(req.Question)
	faq.Answer = strings.TrimSpace(req.Answer)
	faq.Order = req.Order
	if err := h.blogs.UpdateFAQ(faq); err != nil {
		response.Internal(w, err, "update faq failed")
		return
	}
	response.OK(w, "FAQ updated", faqView{ID: h.ids.Encode(faq.ID), BlogFAQ: *faq})
}

// BlogFAQDelete removes a FAQ, scoped to its owning blog.
func (h *Admin) BlogFAQDelete(w http.ResponseWriter, r *http.Request) {
	b := h.blogForFAQ(w, r)
	if b == nil {
		return
	}
	faqID, ok := namedIDParam(r, h.ids, "faqID")
	if !ok {
		response.NotFound(w, "")
		return
	}
	faq, err := h.blogs.FindFAQ(b.ID, faqID)
	if err != nil || faq == nil {
		notFoundOrInternal(w, err, "find faq failed")
		return
	}
	if err := h.blogs.DeleteFAQ(b.ID, faqID); err != nil {
		response.Internal(w, err, "delete faq failed")
		return
	}
	response.OK(w, "FAQ deleted", nil)
}

// BlogToggleActive flips publication of one blog.
func (h *Admin) BlogToggleActive(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, h.ids)
	if !ok {
		response.NotFound(w, "")
		return
	}
	b, err := h.blogs.FindByID(id)
	if err != nil || b == nil {
		notFoundOrInternal(w, err, "find blog failed")
		return
	}
	b.IsActive = !b.IsActive
	if err := h.blogs.SetActive(id, b.IsActive); err != nil {
		response.Internal(w, err, "toggle blog failed")
		return
	}
	response.OK(w, "Blog status updated", newBlogView(h.ids, b))
}

// BlogsBulkUpdateStatus publishes or unpublishes several blogs,
// recording per-item failures.
func (h *Admin) BlogsBulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	bulkActive(w, r, h.ids, h.blogs.BulkSetActive, "bulk update blogs failed")
}
