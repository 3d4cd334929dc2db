// Copyright (c) 2025-2026 Cybaem Tech
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cybaemtech/site-go/internal/seo"
	"github.com/cybaemtech/site-go/internal/store"
)

// SitemapService generates the sitemap document and persists it to the
// well-known file path. Writes go through a temp file and an atomic rename
// under a mutex, so concurrent writers (cron job, manual regenerate, publish
// side effect) can never leave a truncated file behind.
type SitemapService struct {
	queries *store.Queries
	baseURL string
	path    string
	logger  *slog.Logger

	writeMu sync.Mutex
}

// SitemapResult describes one generation run. The regenerate endpoint maps it
// into its own response payload.
type SitemapResult struct {
	RunID            string
	BlogsCount       int
	StaticPagesCount int
	TotalURLs        int
	GeneratedAt      time.Time
}

// NewSitemapService creates a sitemap service writing to path with URLs under
// baseURL.
func NewSitemapService(queries *store.Queries, baseURL, path string, logger *slog.Logger) *SitemapService {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = seo.ProductionBaseURL
	}
	return &SitemapService{
		queries: queries,
		baseURL: baseURL,
		path:    path,
		logger:  logger,
	}
}

// Generate builds the sitemap document. A database failure degrades to a
// static-pages-only document (logged) instead of failing the run: partial
// availability beats no sitemap at all.
func (s *SitemapService) Generate(ctx context.Context) ([]byte, SitemapResult, error) {
	result := SitemapResult{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now(),
	}

	builder := seo.NewSitemapBuilder(s.baseURL)

	static := seo.StaticPages()
	builder.AddStaticPages(static, result.GeneratedAt)
	result.StaticPagesCount = len(static)

	posts, err := s.queries.ListSitemapPosts(ctx)
	if err != nil {
		s.logger.Error("listing sitemap posts failed, emitting static pages only",
			"run_id", result.RunID, "error", err)
		posts = nil
	}
	before := builder.Len()
	builder.AddPosts(posts)
	result.BlogsCount = builder.Len() - before
	result.TotalURLs = builder.Len()

	xml, err := builder.Build()
	if err != nil {
		return nil, result, fmt.Errorf("building sitemap: %w", err)
	}
	return xml, result, nil
}

// Regenerate builds the sitemap and writes it to the configured file path.
// Single-writer: the write section is serialized and the file is replaced via
// rename, never written in place.
func (s *SitemapService) Regenerate(ctx context.Context) (SitemapResult, error) {
	xml, result, err := s.Generate(ctx)
	if err != nil {
		return result, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return result, fmt.Errorf("creating sitemap directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".sitemap-*.xml")
	if err != nil {
		return result, fmt.Errorf("creating temp sitemap: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(xml); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return result, fmt.Errorf("writing sitemap: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return result, fmt.Errorf("closing temp sitemap: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return result, fmt.Errorf("replacing sitemap: %w", err)
	}

	s.logger.Info("sitemap regenerated",
		"run_id", result.RunID,
		"path", s.path,
		"blogs", result.BlogsCount,
		"static_pages", result.StaticPagesCount,
		"total", result.TotalURLs,
	)
	return result, nil
}

// Path returns the configured sitemap file path.
func (s *SitemapService) Path() string {
	return s.path
}
