// Copyright (c) 2025-2026 Cybaem Tech
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybaemtech/site-go/internal/config"
	"github.com/cybaemtech/site-go/internal/model"
	"github.com/cybaemtech/site-go/internal/seo"
	"github.com/cybaemtech/site-go/internal/service"
	"github.com/cybaemtech/site-go/internal/store"
	"github.com/cybaemtech/site-go/web"
)

type testEnv struct {
	router      chi.Router
	queries     *store.Queries
	sitemapPath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{SQLitePath: filepath.Join(t.TempDir(), "test.db")}
	db, err := store.NewDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db, cfg))

	queries := store.New(db)
	sitemapPath := filepath.Join(t.TempDir(), "sitemap.xml")

	metadataSvc := service.NewMetadataService(queries, nil, 0, seo.ProductionBaseURL, nil)
	sitemapSvc := service.NewSitemapService(queries, seo.ProductionBaseURL, sitemapPath, nil)

	templates, err := web.Templates()
	require.NoError(t, err)

	frontend := NewFrontendHandler(metadataSvc, sitemapSvc, templates, nil)
	sitemapAPI := NewSitemapAPIHandler(sitemapSvc, nil)
	seoAPI := NewSEOAPIHandler(metadataSvc, nil)
	posts := NewPostsHandler(queries, metadataSvc, sitemapSvc, nil)

	r := chi.NewRouter()
	r.Get("/sitemap.xml", frontend.Sitemap)
	r.Get("/blog-post/{slug}", frontend.BlogPost)
	r.NotFound(frontend.NotFound)
	r.Route("/api/v1", func(r chi.Router) {
		r.HandleFunc("/sitemap/regenerate", sitemapAPI.Regenerate)
		r.Get("/seo/blog-post/{slug}", seoAPI.BlogPost)
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

	return &testEnv{router: r, queries: queries, sitemapPath: sitemapPath}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Host = "www.cybaemtech.com"
	req.Header.Set("X-Forwarded-Proto", "https")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) seedPost(t *testing.T, slug, status string) model.Post {
	t.Helper()

	post, err := e.queries.CreatePost(context.Background(), store.CreatePostParams{
		Slug:             slug,
		Title:            "Title " + slug,
		Excerpt:          "Excerpt.",
		Body:             "<p>Body</p>",
		Type:             model.PostTypeBlogPost,
		Status:           status,
		AuthorName:       "Jane Smith",
		Tags:             "cloud",
		IncludeInSitemap: true,
		CreatedAt:        time.Now().UTC(),
	})
	require.NoError(t, err)
	return post
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestBlogPostPage(t *testing.T) {
	env := newTestEnv(t)
	post := env.seedPost(t, "live-post", model.PostStatusPublished)

	rec := env.do(t, http.MethodGet, "/blog-post/live-post", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	assert.Contains(t, out, "<title>Title live-post | Cybaem Tech</title>")
	assert.Contains(t, out, `rel="canonical" href="https://www.cybaemtech.com/blog-post/live-post"`)
	assert.Contains(t, out, "application/ld+json")
	assert.Contains(t, out, "<p>Body</p>")

	// The page view was counted.
	got, err := env.queries.GetPostByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Views)
}

func TestBlogPostPageNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.seedPost(t, "hidden", model.PostStatusDraft)

	for _, slug := range []string{"hidden", "missing"} {
		rec := env.do(t, http.MethodGet, "/blog-post/"+slug, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, "slug %s", slug)
		assert.NotContains(t, rec.Body.String(), "ld+json")
	}
}

func TestLiveSitemap(t *testing.T) {
	env := newTestEnv(t)
	env.seedPost(t, "mapped", model.PostStatusPublished)

	rec := env.do(t, http.MethodGet, "/sitemap.xml", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/xml")
	assert.Contains(t, rec.Body.String(), "https://www.cybaemtech.com/blog-post/mapped")
}

func TestSitemapRegenerateEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.seedPost(t, "one", model.PostStatusPublished)
	env.seedPost(t, "two", model.PostStatusPublished)

	rec := env.do(t, http.MethodPost, "/api/v1/sitemap/regenerate", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Sitemap generated successfully", body["message"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), data["blogs_count"])
	assert.Equal(t, float64(len(seo.StaticPages())), data["static_pages_count"])
	assert.Equal(t, float64(2+len(seo.StaticPages())), data["total_urls"])
	assert.NotEmpty(t, data["generated_at"])

	// The file landed on disk.
	_, err := os.Stat(env.sitemapPath)
	assert.NoError(t, err)
}

func TestSEOEndpoint(t *testing.T) {
	env := newTestEnv(t)
	post := env.seedPost(t, "headless", model.PostStatusPublished)
	require.NoError(t, env.queries.UpsertPostSEO(context.Background(), model.PostSEO{
		PostID:    post.ID,
		MetaTitle: "Hand Tuned",
	}))

	rec := env.do(t, http.MethodGet, "/api/v1/seo/blog-post/headless", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, true, body["success"])

	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Hand Tuned", fields["meta_title"])
	assert.Equal(t, "https://www.cybaemtech.com/blog-post/headless", fields["canonical_url"])

	schemas, ok := body["schemas"].([]any)
	require.True(t, ok)
	assert.Len(t, schemas, 2) // synthesized article + breadcrumb
}

func TestSEOEndpointNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/seo/blog-post/nope", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, false, body["success"])
}

func TestCreatePost(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/posts/", map[string]any{
		"title":  "My New Article",
		"body":   "<p>Content</p>",
		"status": "draft",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	post := data["post"].(map[string]any)
	// Slug derived from the title.
	assert.Equal(t, "my-new-article", post["slug"])
	assert.Equal(t, model.PostTypeBlogPost, post["type"])
	assert.Equal(t, true, post["include_in_sitemap"])
}

func TestCreatePostValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{name: "missing title", payload: map[string]any{"body": "x"}},
		{name: "bad type", payload: map[string]any{"title": "T", "type": "Newsletter"}},
		{name: "bad status", payload: map[string]any{"title": "T", "status": "archived"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/v1/posts/", tt.payload)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeResponse(t, rec)
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestCreatePublishedPostRegeneratesSitemap(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/posts/", map[string]any{
		"title":  "Born Published",
		"status": "published",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	data, err := os.ReadFile(env.sitemapPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "/blog-post/born-published")
}

func TestUpdatePostSavesSEO(t *testing.T) {
	env := newTestEnv(t)
	post := env.seedPost(t, "editable", model.PostStatusDraft)

	rec := env.do(t, http.MethodPut, "/api/v1/posts/"+itoa(post.ID), map[string]any{
		"slug":   "editable",
		"title":  "Edited Title",
		"status": "draft",
		"seo": map[string]any{
			"meta_title": "SEO Title",
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	override, err := env.queries.GetPostSEO(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "SEO Title", override.MetaTitle)

	got, err := env.queries.GetPostByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edited Title", got.Title)
	assert.True(t, got.UpdatedAt.Valid)
}

func TestPublishAndUnpublish(t *testing.T) {
	env := newTestEnv(t)
	post := env.seedPost(t, "toggle", model.PostStatusDraft)

	rec := env.do(t, http.MethodPost, "/api/v1/posts/"+itoa(post.ID)+"/publish", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got, err := env.queries.GetPostByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusPublished, got.Status)

	// Publish regenerated the sitemap with the new entry.
	data, err := os.ReadFile(env.sitemapPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "/blog-post/toggle")

	rec = env.do(t, http.MethodPost, "/api/v1/posts/"+itoa(post.ID)+"/unpublish", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data, err = os.ReadFile(env.sitemapPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "/blog-post/toggle")
}

func TestDeletePost(t *testing.T) {
	env := newTestEnv(t)
	post := env.seedPost(t, "doomed", model.PostStatusPublished)

	rec := env.do(t, http.MethodDelete, "/api/v1/posts/"+itoa(post.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/posts/"+itoa(post.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Deleting a sitemap-eligible post rewrote the file without it.
	data, err := os.ReadFile(env.sitemapPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "/blog-post/doomed")
}

func TestListPosts(t *testing.T) {
	env := newTestEnv(t)
	env.seedPost(t, "a", model.PostStatusPublished)
	env.seedPost(t, "b", model.PostStatusDraft)

	rec := env.do(t, http.MethodGet, "/api/v1/posts/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeResponse(t, rec)
	posts, ok := body["data"].([]any)
	require.True(t, ok)
	// Admin listing includes drafts.
	assert.Len(t, posts, 2)
}

func TestGetPostInvalidID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/posts/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/posts/99999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
