// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

// Package router wires all HTTP routes and middleware chains for the
// Nexus API. Admin routes are JWT-authenticated and permission-gated
// per resource; public routes serve active content only.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"nexusapi/internal/auth"
	"nexusapi/internal/handlers"
	"nexusapi/internal/middleware"
)

// Deps carries everything the route tree needs. LoginLimiter and
// ApplyLimiter may be nil when Redis is not configured.
type Deps struct {
	Tokens         *auth.Manager
	Auth           *handlers.Auth
	Admin          *handlers.Admin
	Public         *handlers.Public
	LoginLimiter   *middleware.RateLimiter
	ApplyLimiter   *middleware.RateLimiter
	AllowedOrigins []string
}

// New creates the configured chi router with all middleware and route
// groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	r.Get("/", healthHandler)
	r.Get("/health", healthHandler)

	r.Route("/admin", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if d.LoginLimiter != nil {
					r.Use(d.LoginLimiter.Middleware)
				}
				r.Post("/login", d.Auth.Login)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth(d.Tokens))
				r.Post("/logout", d.Auth.Logout)
				r.Post("/refresh", d.Auth.Refresh)
				r.Get("/profile", d.Auth.Profile)
				r.Route("/settings", func(r chi.Router) {
					r.Post("/request-update", d.Auth.RequestProfileUpdate)
					r.Post("/confirm-update", d.Auth.UpdateProfile)
				})
			})
		})

		// Everything below requires a valid token plus the permission
		// named on each route.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(d.Tokens))

			r.Route("/users", func(r chi.Router) {
				r.With(middleware.RequirePermission("view_admins")).Get("/", d.Admin.UsersList)
				r.With(middleware.RequirePermission("view_admins")).Get("/{id}", d.Admin.UserShow)
				r.With(middleware.RequirePermission("create_admins")).Post("/", d.Admin.UserCreate)
				r.With(middleware.RequirePermission("edit_admins")).Put("/{id}", d.Admin.UserUpdate)
				r.With(middleware.RequirePermission("edit_admins")).Patch("/{id}/toggle-active", d.Admin.UserToggleActive)
				r.With(middleware.RequirePermission("delete_admins")).Delete("/{id}", d.Admin.UserDelete)
				r.With(middleware.RequirePermission("delete_admins")).Post("/bulk/delete", d.Admin.UsersBulkDelete)
				r.With(middleware.RequirePermission("edit_admins")).Post("/bulk/update-status", d.Admin.UsersBulkUpdateStatus)
			})

			r.Route("/permissions", func(r chi.Router) {
				r.With(middleware.RequirePermission("view_permissions")).Get("/", d.Admin.PermissionsList)
				r.With(middleware.RequirePermission("view_permissions")).Get("/{id}", d.Admin.UserPermissions)
				r.With(middleware.RequirePermission("assign_permissions")).Post("/assign/{id}", d.Admin.UserPermissionsSync)
			})

			r.Route("/blogs", func(r chi.Router) {
				r.With(middleware.RequirePermission("view_blogs")).Get("/", d.Admin.BlogsList)
				r.With(middleware.RequirePermission("view_blogs")).Get("/options", d.Admin.BlogOptions)
				r.With(middleware.RequirePermission("view_blogs")).Get("/statistics", d.Admin.BlogStatistics)
				r.With(middleware.RequirePermission("view_blogs")).Get("/slug/{slug}", d.Admin.BlogShowBySlug)
				r.With(middleware.RequirePermission("view_blogs")).Get("/{id}", d.Admin.BlogShow)
				r.With(middleware.RequirePermission("create_blogs")).Post("/", d.Admin.BlogCreate)
				r.With(middleware.RequirePermission("create_blogs")).Post("/upload-content-image", d.Admin.BlogUploadContentImage)
				r.With(middleware.RequirePermission("edit_blogs")).Put("/{id}", d.Admin.BlogUpdate)
				r.With(middleware.RequirePermission("edit_blogs")).Patch("/{id}/toggle-active", d.Admin.BlogToggleActive)
				r.With(middleware.RequirePermission("edit_blogs")).Post("/mark-as-hero", d.Admin.BlogMarkAsHero)
				r.With(middleware.RequirePermission("edit_blogs")).Post("/bulk/update-status", d.Admin.BlogsBulkUpdateStatus)
				r.With(middleware.RequirePermission("edit_blogs")).Post("/bulk-update-category", d.Admin.BlogsBulkUpdateCategory)
				r.With(middleware.RequirePermission("delete_blogs")).Delete("/{id}", d.Admin.BlogDelete)
				r.With(middleware.RequirePermission("delete_blogs")).Post("/bulk/delete", d.Admin.BlogsBulkDelete)

				r.Route("/{id}/faqs", func(r chi.Router) {
					r.Use(middleware.RequirePermission("manage_blog_faqs"))
					r.Get("/", d.Admin.BlogFAQsList)
					r.Post("/", d.Admin.BlogFAQCreate)
					r.Put("/{faqID}", d.Admin.BlogFAQUpdate)
					r.Delete("/{faqID}", d.Admin.BlogFAQDelete)
				})
			})

			r.Route("/services", func(r chi.Router) {
				r.With(middleware.RequirePermission("view_services")).Get("/", d.Admin.ServicesList)
				r.With(middleware.RequirePermission("view_services")).Get("/slug/{slug}", d.Admin.ServiceShowBySlug)
				r.With(middleware.RequirePermission("view_services")).Get("/{id}", d.Admin.ServiceShow)
				r.With(middleware.RequirePermission("create_services")).Post("/", d.Admin.ServiceCreate)
				r.With(middleware.RequirePermission("edit_services")).Post("/{id}", d.Admin.ServiceUpdate)
				r.With(middleware.RequirePermission("edit_services")).Patch("/{id}/toggle-active", d.Admin.ServiceToggleActive)
				r.With(middleware.RequirePermission("edit_services")).Post("/bulk/update-status", d.Admin.ServicesBulkUpdateStatus)
				r.With(middleware.RequirePermission("delete_services")).Delete("/{id}", d.Admin.ServiceDelete)
				r.With(middleware.RequirePermission("delete_services")).Post("/bulk/delete", d.Admin.ServicesBulkDelete)
			})

			r.Route("/projects", func(r chi.Router) {
				r.With(middleware.RequirePermission("view_projects")).Get("/", d.Admin.ProjectsList)
				r.With(middleware.RequirePermission("view_projects")).Get("/slug/{slug}", d.Admin.ProjectShowBySlug)
				r.With(middleware.RequirePermission("view_projects")).Get("/{id}", d.Admin.ProjectShow)
				r.With(middleware.RequirePermission("create_projects")).Post("/", d.Admin.ProjectCreate)
				r.With(middleware.RequirePermission("edit_projects")).Post("/{id}", d.Admin.ProjectUpdate)
				r.With(middleware.RequirePermission("edit_projects")).Patch("/{id}/toggle-active", d.Admin.ProjectToggleActive)
				r.With(middleware.RequirePermission("edit_projects")).Post("/bulk/update-status", d.Admin.ProjectsBulkUpdateStatus)
				r.With(middleware.RequirePermission("delete_projects")).Delete("/{id}", d.Admin.ProjectDelete)
				r.With(middleware.RequirePermission("delete_projects")).Post("/bulk/delete", d.Admin.ProjectsBulkDelete)
			})

			r.Route("/disciplines", func(r chi.Router) {
				r.With(middleware.RequirePermission("view_disciplines")).Get("/", d.Admin.DisciplinesList)
				r.With(middleware.RequirePermission("view_disciplines")).Get("/{id}", d.Admin.DisciplineShow)
				r.With(middleware.RequirePermission("create_disciplines")).Post("/", d.Admin.DisciplineCreate)
				r.With(middleware.RequirePermission("edit_disciplines")).Put("/{id}", d.Admin.DisciplineUpdate)
				r.With(middleware.RequirePermission("edit_disciplines")).Patch("/{id}/toggle-active", d.Admin.DisciplineToggleActive)
				r.With(middleware.RequirePermission("edit_disciplines")).Post("/bulk/update-status", d.Admin.DisciplinesBulkUpdateStatus)
				r.With(middleware.RequirePermission("delete_disciplines")).Delete("/{id}", d.Admin.DisciplineDelete)
				r.With(middleware.RequirePermission("delete_disciplines")).Post("/bulk/delete", d.Admin.DisciplinesBulkDelete)
			})

			r.Route("/jobs", func(r chi.Router) {
				r.With(middleware.RequirePermission("view_jobs")).Get("/", d.Admin.JobsList)
				r.With(middleware.RequirePermission("view_jobs")).Get("/options", d.Admin.JobOptions)
				r.With(middleware.RequirePermission("view_jobs")).Get("/statistics", d.Admin.JobStatistics)
				r.With(middleware.RequirePermission("view_jobs")).Get("/slug/{slug}", d.Admin.JobShowBySlug)
				r.With(middleware.RequirePermission("view_jobs")).Get("/{id}", d.Admin.JobShow)
				r.With(middleware.RequirePermission("create_jobs")).Post("/", d.Admin.JobCreate)
				r.With(middleware.RequirePermission("edit_jobs")).Post("/{id}", d.Admin.JobUpdate)
				r.With(middleware.RequirePermission("edit_jobs")).Patch("/{id}/toggle-active", d.Admin.JobToggleActive)
				r.With(middleware.RequirePermission("edit_jobs")).Post("/bulk/update-status", d.Admin.JobsBulkUpdateStatus)
				r.With(middleware.RequirePermission("delete_jobs")).Delete("/{id}", d.Admin.JobDelete)
				r.With(middleware.RequirePermission("delete_jobs")).Post("/bulk/delete", d.Admin.JobsBulkDelete)
			})

			r.Route("/job-applications", func(r chi.Router) {
				r.With(middleware.RequirePermission("view_job_applications")).Get("/", d.Admin.ApplicationsList)
				r.With(middleware.RequirePermission("view_job_applications")).Get("/status-options", d.Admin.ApplicationStatusOptions)
				r.With(middleware.RequirePermission("view_job_applications")).Get("/statistics", d.Admin.ApplicationStatistics)
				r.With(middleware.RequirePermission("view_job_applications")).Get("/job/{jobID}", d.Admin.ApplicationsByJob)
				r.With(middleware.RequirePermission("view_job_applications")).Get("/{id}", d.Admin.ApplicationShow)
				r.With(middleware.RequirePermission("view_job_applications")).Get("/{id}/download/cv", d.Admin.ApplicationResume)
				r.With(middleware.RequirePermission("view_job_applications")).Get("/{id}/download/portfolio", d.Admin.ApplicationPortfolio)
				r.With(middleware.RequirePermission("manage_job_applications")).Patch("/{id}/status", d.Admin.ApplicationUpdateStatus)
				r.With(middleware.RequirePermission("manage_job_applications")).Patch("/{id}/notes", d.Admin.ApplicationUpdateNotes)
				r.With(middleware.RequirePermission("manage_job_applications")).Post("/bulk/update-status", d.Admin.ApplicationsBulkUpdateStatus)
				r.With(middleware.RequirePermission("delete_job_applications")).Delete("/{id}", d.Admin.ApplicationDelete)
				r.With(middleware.RequirePermission("delete_job_applications")).Post("/bulk/delete", d.Admin.ApplicationsBulkDelete)
			})

			r.Route("/feedbacks", func(r chi.Router) {
				r.With(middleware.RequirePermission("view_feedbacks")).Get("/", d.Admin.FeedbacksList)
				r.With(middleware.RequirePermission("view_feedbacks")).Get("/{id}", d.Admin.FeedbackShow)
				r.With(middleware.RequirePermission("create_feedbacks")).Post("/", d.Admin.FeedbackCreate)
				r.With(middleware.RequirePermission("edit_feedbacks")).Put("/{id}", d.Admin.FeedbackUpdate)
				r.With(middleware.RequirePermission("edit_feedbacks")).Patch("/{id}/toggle-active", d.Admin.FeedbackToggleActive)
				r.With(middleware.RequirePermission("edit_feedbacks")).Post("/bulk/update-status", d.Admin.FeedbacksBulkUpdateStatus)
				r.With(middleware.RequirePermission("delete_feedbacks")).Delete("/{id}", d.Admin.FeedbackDelete)
				r.With(middleware.RequirePermission("delete_feedbacks")).Post("/bulk/delete", d.Admin.FeedbacksBulkDelete)
			})

			r.Route("/settings", func(r chi.Router) {
				r.With(middleware.RequirePermission("view_settings")).Get("/", d.Admin.SettingsShow)
				r.With(middleware.RequirePermission("edit_settings")).Put("/", d.Admin.SettingsUpdate)
			})
		})
	})

	r.Route("/public", func(r chi.Router) {
		r.Get("/home", d.Public.Home)
		r.Get("/about", d.Public.About)

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", d.Public.BlogsList)
			r.Get("/landing", d.Public.BlogLanding)
			r.Get("/recent", d.Public.BlogsRecent)
			r.Get("/categories", d.Public.BlogCategories)
			r.Get("/{slug}", d.Public.BlogBySlug)
			r.Get("/{slug}/related", d.Public.BlogRelated)
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", d.Public.ServicesList)
			r.Get("/{slug}", d.Public.ServiceBySlug)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", d.Public.ProjectsList)
			r.Get("/{slug}", d.Public.ProjectBySlug)
		})

		r.Route("/disciplines", func(r chi.Router) {
			r.Get("/", d.Public.DisciplinesList)
			r.Get("/{slug}", d.Public.DisciplineBySlug)
		})

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", d.Public.JobsList)
			r.Get("/locations", d.Public.JobLocations)
			r.Get("/{slug}", d.Public.JobBySlug)
			r.Group(func(r chi.Router) {
				if d.ApplyLimiter != nil {
					r.Use(d.ApplyLimiter.Middleware)
				}
				r.Post("/{slug}/apply", d.Public.JobApply)
			})
		})
	})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
