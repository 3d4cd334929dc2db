// Copyright (c) 2025-2026 Cybaem Tech
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybaemtech/site-go/internal/cache"
	"github.com/cybaemtech/site-go/internal/config"
	"github.com/cybaemtech/site-go/internal/model"
	"github.com/cybaemtech/site-go/internal/seo"
	"github.com/cybaemtech/site-go/internal/store"
)

func testStore(t *testing.T) *store.Queries {
	t.Helper()

	cfg := &config.Config{SQLitePath: filepath.Join(t.TempDir(), "test.db")}
	db, err := store.NewDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, store.Migrate(db, cfg))
	return store.New(db)
}

func seedPost(t *testing.T, q *store.Queries, slug, status string, includeInSitemap bool) model.Post {
	t.Helper()

	post, err := q.CreatePost(context.Background(), store.CreatePostParams{
		Slug:             slug,
		Title:            "Title " + slug,
		Excerpt:          "<p>Excerpt text.</p>",
		Body:             "<p>Body</p>",
		Type:             model.PostTypeBlogPost,
		Status:           status,
		AuthorName:       "Jane Smith",
		Tags:             "cloud",
		IncludeInSitemap: includeInSitemap,
		CreatedAt:        time.Now().UTC(),
	})
	require.NoError(t, err)
	return post
}

func TestMetadataForSlug(t *testing.T) {
	q := testStore(t)
	svc := NewMetadataService(q, nil, 0, seo.ProductionBaseURL, nil)
	ctx := context.Background()

	seedPost(t, q, "hello", model.PostStatusPublished, true)

	md, err := svc.ForSlug(ctx, "hello", seo.ProductionBaseURL)
	require.NoError(t, err)

	assert.Equal(t, "hello", md.Post.Slug)
	assert.Equal(t, "Title hello | Cybaem Tech", md.Head.Fields.MetaTitle)
	assert.Equal(t, "Excerpt text.", md.Head.Fields.MetaDescription)
	assert.NotEmpty(t, md.Head.Schemas.Article)
	assert.NotEmpty(t, md.Head.Schemas.Breadcrumb)
}

func TestMetadataForSlugNotFound(t *testing.T) {
	q := testStore(t)
	svc := NewMetadataService(q, nil, 0, seo.ProductionBaseURL, nil)
	ctx := context.Background()

	_, err := svc.ForSlug(ctx, "missing", seo.ProductionBaseURL)
	assert.True(t, errors.Is(err, ErrPostNotFound))

	// Drafts resolve to the same sentinel as missing posts.
	seedPost(t, q, "draft", model.PostStatusDraft, true)
	_, err = svc.ForSlug(ctx, "draft", seo.ProductionBaseURL)
	assert.True(t, errors.Is(err, ErrPostNotFound))
}

func TestMetadataForSlugWithOverride(t *testing.T) {
	q := testStore(t)
	svc := NewMetadataService(q, nil, 0, seo.ProductionBaseURL, nil)
	ctx := context.Background()

	post := seedPost(t, q, "custom", model.PostStatusPublished, true)
	require.NoError(t, q.UpsertPostSEO(ctx, model.PostSEO{
		PostID:    post.ID,
		MetaTitle: "Hand Tuned",
	}))

	md, err := svc.ForSlug(ctx, "custom", seo.ProductionBaseURL)
	require.NoError(t, err)
	assert.Equal(t, "Hand Tuned", md.Head.Fields.MetaTitle)
}

func TestMetadataCaching(t *testing.T) {
	q := testStore(t)
	c := cache.NewMemory(time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	svc := NewMetadataService(q, c, time.Minute, seo.ProductionBaseURL, nil)
	ctx := context.Background()

	post := seedPost(t, q, "cached", model.PostStatusPublished, true)

	first, err := svc.ForSlug(ctx, "cached", seo.ProductionBaseURL)
	require.NoError(t, err)

	// The title change is invisible until the cache entry is invalidated.
	_, err = q.UpdatePost(ctx, store.UpdatePostParams{
		ID:               post.ID,
		Slug:             post.Slug,
		Title:            "Changed",
		Excerpt:          post.Excerpt,
		Body:             post.Body,
		Type:             post.Type,
		Status:           post.Status,
		AuthorName:       post.AuthorName,
		Tags:             post.Tags,
		IncludeInSitemap: post.IncludeInSitemap,
		UpdatedAt:        time.Now().UTC(),
	})
	require.NoError(t, err)

	stale, err := svc.ForSlug(ctx, "cached", seo.ProductionBaseURL)
	require.NoError(t, err)
	assert.Equal(t, first.Head.Fields.MetaTitle, stale.Head.Fields.MetaTitle)

	svc.Invalidate(ctx, "cached")

	fresh, err := svc.ForSlug(ctx, "cached", seo.ProductionBaseURL)
	require.NoError(t, err)
	assert.Equal(t, "Changed | Cybaem Tech", fresh.Head.Fields.MetaTitle)
}

func TestMetadataCacheBypassedForOtherOrigins(t *testing.T) {
	q := testStore(t)
	c := cache.NewMemory(time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	svc := NewMetadataService(q, c, time.Minute, seo.ProductionBaseURL, nil)
	ctx := context.Background()

	seedPost(t, q, "origin", model.PostStatusPublished, true)

	md, err := svc.ForSlug(ctx, "origin", "https://staging.cybaemtech.com")
	require.NoError(t, err)
	assert.Equal(t, "https://staging.cybaemtech.com/blog-post/origin", md.Head.Fields.CanonicalURL)

	// Nothing was cached for the staging origin.
	stats := c.Stats()
	assert.Equal(t, 0, stats.Items)
}

func TestRecordView(t *testing.T) {
	q := testStore(t)
	svc := NewMetadataService(q, nil, 0, seo.ProductionBaseURL, nil)
	ctx := context.Background()

	post := seedPost(t, q, "seen", model.PostStatusPublished, true)

	svc.RecordView(ctx, post.ID)
	svc.RecordView(ctx, post.ID)

	got, err := q.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Views)
}
