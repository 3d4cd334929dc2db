// Copyright (c) 2025-2026 Cybaem Tech
// SPDX-License-Identifier: GPL-3.0-or-later

// Command sited is the Cybaem Tech site backend: server-rendered post pages,
// the headless SEO API, sitemap generation and the admin content API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/cybaemtech/site-go/internal/cache"
	"github.com/cybaemtech/site-go/internal/config"
	"github.com/cybaemtech/site-go/internal/handler"
	"github.com/cybaemtech/site-go/internal/logging"
	"github.com/cybaemtech/site-go/internal/middleware"
	"github.com/cybaemtech/site-go/internal/scheduler"
	"github.com/cybaemtech/site-go/internal/service"
	"github.com/cybaemtech/site-go/internal/store"
	"github.com/cybaemtech/site-go/web"
)

const version = "1.0.0"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("sited " + version)
		return
	}

	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	if !cfg.UseMySQL() {
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := store.NewDB(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := store.Migrate(db, cfg); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	// Upgrade logging: WARN+ records now also land in the events table.
	logger = slog.New(logging.NewEventLogHandler(logger.Handler(), db))
	slog.SetDefault(logger)

	var c cache.Cache
	if cfg.UseRedisCache() {
		rc, err := cache.NewRedis(cfg.RedisURL, cfg.CachePrefix)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		c = rc
		logger.Info("cache backend", "type", "redis")
	} else {
		c = cache.NewMemory(time.Minute)
		logger.Info("cache backend", "type", "memory")
	}
	defer func() { _ = c.Close() }()

	queries := store.New(db)
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	metadataSvc := service.NewMetadataService(queries, c, cacheTTL, cfg.BaseURL, logger)
	sitemapSvc := service.NewSitemapService(queries, cfg.BaseURL, cfg.SitemapPath, logger)

	templates, err := web.Templates()
	if err != nil {
		return fmt.Errorf("parsing templates: %w", err)
	}

	frontend := handler.NewFrontendHandler(metadataSvc, sitemapSvc, templates, logger)
	sitemapAPI := handler.NewSitemapAPIHandler(sitemapSvc, logger)
	seoAPI := handler.NewSEOAPIHandler(metadataSvc, logger)
	posts := handler.NewPostsHandler(queries, metadataSvc, sitemapSvc, logger)

	sched := scheduler.New(sitemapSvc, cfg.SitemapCron, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5))

	r.Get("/sitemap.xml", frontend.Sitemap)
	r.Get("/blog-post/{slug}", frontend.BlogPost)
	r.NotFound(frontend.NotFound)

	limiter := middleware.NewGlobalRateLimiter(50, 100)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(limiter.Middleware())

		// CORS-open endpoints called cross-origin by the React frontend.
		r.Group(func(r chi.Router) {
			r.Use(middleware.OpenCORS)
			r.HandleFunc("/sitemap/regenerate", sitemapAPI.Regenerate)
			r.Get("/seo/blog-post/{slug}", seoAPI.BlogPost)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", posts.List)
			r.Post("/", posts.Create)
			r.Get("/{id}", posts.Get)
			r.Put("/{id}", posts.Update)
			r.Delete("/{id}", posts.Delete)
			r.Post("/{id}/publish", posts.Publish)
			r.Post("/{id}/unpublish", posts.Unpublish)
		})
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Env, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
