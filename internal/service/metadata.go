// Copyright (c) 2025-2026 Cybaem Tech
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service wires the store and seo packages into request-level
// operations: metadata resolution and sitemap generation.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cybaemtech/site-go/internal/cache"
	"github.com/cybaemtech/site-go/internal/model"
	"github.com/cybaemtech/site-go/internal/seo"
	"github.com/cybaemtech/site-go/internal/store"
)

// ErrPostNotFound reports a missing or unpublished post. Callers treat it as
// a silent no-op (no tags emitted, 404 page) rather than a server failure;
// any other error from this package means the store was unavailable.
var ErrPostNotFound = errors.New("post not found")

// PageMetadata is the fully resolved metadata for one post page.
type PageMetadata struct {
	Post model.Post   `json:"post"`
	Head seo.HeadData `json:"head"`
}

// MetadataService loads a post with its optional SEO override and resolves
// the head metadata. It replaces the original design's ambient
// request-global data bus with an explicit return value.
type MetadataService struct {
	queries  *store.Queries
	cache    cache.Cache
	cacheTTL time.Duration
	baseURL  string // origin cached entries are keyed against
	logger   *slog.Logger
}

// NewMetadataService creates a metadata service. The cache may be nil to
// disable caching; baseURL is the configured canonical origin — responses for
// other origins (development hosts) bypass the cache.
func NewMetadataService(queries *store.Queries, c cache.Cache, ttl time.Duration, baseURL string, logger *slog.Logger) *MetadataService {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = seo.ProductionBaseURL
	}
	return &MetadataService{
		queries:  queries,
		cache:    c,
		cacheTTL: ttl,
		baseURL:  baseURL,
		logger:   logger,
	}
}

// ForSlug resolves metadata for the published post with the given slug.
// Returns ErrPostNotFound for missing or draft posts; other errors indicate
// store failures and are wrapped for logging at the call site.
func (s *MetadataService) ForSlug(ctx context.Context, slug, baseURL string) (*PageMetadata, error) {
	if baseURL == "" {
		baseURL = s.baseURL
	}
	cacheable := s.cache != nil && baseURL == s.baseURL

	if cacheable {
		if raw, ok := s.cache.Get(ctx, metadataKey(slug)); ok {
			var md PageMetadata
			if err := json.Unmarshal(raw, &md); err == nil {
				return &md, nil
			}
			// Corrupt entry: drop it and fall through to a fresh load.
			s.cache.Delete(ctx, metadataKey(slug))
		}
	}

	post, err := s.queries.GetPublishedPostBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("loading post %q: %w", slug, err)
	}

	var override *model.PostSEO
	ov, err := s.queries.GetPostSEO(ctx, post.ID)
	switch {
	case err == nil:
		override = &ov
	case errors.Is(err, sql.ErrNoRows):
		// No override row; every field resolves through its fallback chain.
	default:
		// The page can still render from post data alone.
		s.logger.Warn("loading seo override failed", "slug", slug, "error", err)
	}

	fields := seo.Resolve(&post, override, baseURL)
	md := &PageMetadata{
		Post: post,
		Head: seo.HeadData{
			Fields:  fields,
			Schemas: seo.BuildSchemas(&post, override, fields, time.Now()),
		},
	}

	if cacheable {
		if raw, err := json.Marshal(md); err == nil {
			s.cache.Set(ctx, metadataKey(slug), raw, s.cacheTTL)
		}
	}

	return md, nil
}

// Invalidate drops the cached metadata for a slug. Called on post save and
// delete.
func (s *MetadataService) Invalidate(ctx context.Context, slug string) {
	if s.cache != nil {
		s.cache.Delete(ctx, metadataKey(slug))
	}
}

// RecordView bumps the post view counter. Failures are logged, never
// propagated: a broken counter must not take down the page.
func (s *MetadataService) RecordView(ctx context.Context, postID int64) {
	if err := s.queries.IncrementPostViews(ctx, postID); err != nil {
		s.logger.Warn("incrementing post views failed", "post_id", postID, "error", err)
	}
}

func metadataKey(slug string) string {
	return "seo:meta:" + slug
}
