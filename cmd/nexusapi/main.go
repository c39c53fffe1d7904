// Copyright (c) 2026 Nexus Engineering <dev@nexusengineering.com>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the Nexus API server. It loads
// configuration, connects to services, sets up routing, and starts the
// HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"nexusapi/internal/auth"
	"nexusapi/internal/cache"
	"nexusapi/internal/config"
	"nexusapi/internal/database"
	"nexusapi/internal/handlers"
	"nexusapi/internal/mailer"
	"nexusapi/internal/middleware"
	"nexusapi/internal/router"
	"nexusapi/internal/secureid"
	"nexusapi/internal/storage"
	"nexusapi/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger — JSON in production, text in development.
	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())

	// Connect to PostgreSQL and run pending migrations.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed the bootstrap super-admin (no-op once it exists).
	if err := database.Seed(db, cfg.SuperAdminEmail, cfg.SuperAdminPassword); err != nil {
		slog.Error("failed to seed database", "error", err)
		os.Exit(1)
	}

	// Connect to Redis (token denylist + rate limiting).
	rdb, err := cache.Connect(cfg.RedisAddr(), cfg.RedisPassword)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()

	// Connect to S3-compatible object storage (optional — uploads are
	// disabled without it).
	uploads, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3BucketPublic, cfg.S3BucketPrivate, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize s3 storage", "error", err)
		os.Exit(1)
	}
	if uploads != nil {
		slog.Info("s3 storage connected",
			"endpoint", cfg.S3Endpoint,
			"public_bucket", cfg.S3BucketPublic,
			"private_bucket", cfg.S3BucketPrivate,
		)
	} else {
		slog.Warn("s3 storage not configured — file uploads disabled")
	}

	// SMTP mailer (optional — notification mails are skipped without it).
	smtpPort, _ := strconv.Atoi(cfg.SMTPPort)
	mail := mailer.New(cfg.SMTPHost, smtpPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	if mail == nil {
		slog.Warn("smtp not configured — outbound mail disabled")
	}

	// Initialize data stores.
	users := store.NewUserStore(db)
	blogs := store.NewBlogStore(db)
	services := store.NewServiceStore(db)
	projects := store.NewProjectStore(db)
	disciplines := store.NewDisciplineStore(db)
	jobs := store.NewJobStore(db)
	applications := store.NewApplicationStore(db)
	feedbacks := store.NewFeedbackStore(db)
	settings := store.NewSettingStore(db)

	ids := secureid.New(cfg.AppSecret)
	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTTTL, rdb)

	// Create handler groups with their dependencies.
	authHandlers := handlers.NewAuth(ids, users, tokens, mail, uploads)
	adminHandlers := handlers.NewAdmin(ids, users, blogs, services, projects, disciplines,
		jobs, applications, feedbacks, settings, uploads, mail)
	publicHandlers := handlers.NewPublic(ids, blogs, services, projects, disciplines,
		jobs, applications, feedbacks, settings, uploads, mail, cfg.NotifyEmail)

	r := router.New(router.Deps{
		Tokens:         tokens,
		Auth:           authHandlers,
		Admin:          adminHandlers,
		Public:         publicHandlers,
		LoginLimiter:   middleware.NewRateLimiter(rdb, "login", 10, time.Minute),
		ApplyLimiter:   middleware.NewRateLimiter(rdb, "apply", 5, time.Minute),
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// WriteTimeout must accommodate multipart uploads to object storage.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
