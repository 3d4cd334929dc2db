// Copyright (c) 2025-2026 Cybaem Tech
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cybaemtech/site-go/internal/model"
	"github.com/cybaemtech/site-go/internal/service"
	"github.com/cybaemtech/site-go/internal/store"
	"github.com/cybaemtech/site-go/internal/util"
)

// PostsHandler is the admin content API: post CRUD with the optional SEO
// override saved in the same request. Publish and delete transitions trigger
// sitemap regeneration; saves invalidate the metadata cache.
type PostsHandler struct {
	queries  *store.Queries
	metadata *service.MetadataService
	sitemap  *service.SitemapService
	logger   *slog.Logger
}

// NewPostsHandler creates an admin posts handler.
func NewPostsHandler(queries *store.Queries, metadata *service.MetadataService, sitemap *service.SitemapService, logger *slog.Logger) *PostsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostsHandler{
		queries:  queries,
		metadata: metadata,
		sitemap:  sitemap,
		logger:   logger,
	}
}

// postRequest is the write payload for create and update.
type postRequest struct {
	Slug             string         `json:"slug"`
	Title            string         `json:"title"`
	Excerpt          string         `json:"excerpt"`
	Body             string         `json:"body"`
	Type             string         `json:"type"`
	Status           string         `json:"status"`
	AuthorName       string         `json:"author_name"`
	AuthorTitle      string         `json:"author_title"`
	AuthorPhoto      string         `json:"author_photo"`
	AuthorLinkedIn   string         `json:"author_linkedin"`
	Tags             string         `json:"tags"`
	FeaturedImage    string         `json:"featured_image"`
	IncludeInSitemap *bool          `json:"include_in_sitemap"`
	SEO              *model.PostSEO `json:"seo"`
}

// validate normalizes and checks the payload. The slug is derived from the
// title when absent.
func (p *postRequest) validate() (string, bool) {
	if p.Title == "" {
		return "Title is required", false
	}
	if p.Slug == "" {
		p.Slug = util.Slugify(p.Title)
	}
	if !util.IsValidSlug(p.Slug) {
		return "Invalid slug", false
	}
	if p.Type == "" {
		p.Type = model.PostTypeBlogPost
	}
	if !model.IsValidPostType(p.Type) {
		return "Invalid post type", false
	}
	if p.Status == "" {
		p.Status = model.PostStatusDraft
	}
	if !model.IsValidPostStatus(p.Status) {
		return "Invalid post status", false
	}
	return "", true
}

func (p *postRequest) includeInSitemap() bool {
	if p.IncludeInSitemap == nil {
		return true
	}
	return *p.IncludeInSitemap
}

// postResponse pairs a post with its SEO override for admin reads.
type postResponse struct {
	Post model.Post     `json:"post"`
	SEO  *model.PostSEO `json:"seo,omitempty"`
}

// List returns all posts, drafts included, newest first.
func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.queries.ListPosts(r.Context())
	if err != nil {
		h.logger.Error("listing posts failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to list posts")
		return
	}
	if posts == nil {
		posts = []model.Post{}
	}
	writeJSONSuccess(w, "", posts)
}

// Get returns one post with its SEO override.
func (h *PostsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	post, err := h.queries.GetPostByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Post not found")
			return
		}
		h.logger.Error("loading post failed", "post_id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to load post")
		return
	}

	resp := postResponse{Post: post}
	if override, err := h.queries.GetPostSEO(r.Context(), id); err == nil {
		resp.SEO = &override
	} else if !errors.Is(err, sql.ErrNoRows) {
		h.logger.Warn("loading seo override failed", "post_id", id, "error", err)
	}
	writeJSONSuccess(w, "", resp)
}

// Create inserts a new post, saves its SEO override if supplied, and
// regenerates the sitemap when the post is born published.
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg, ok := req.validate(); !ok {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	post, err := h.queries.CreatePost(r.Context(), store.CreatePostParams{
		Slug:             req.Slug,
		Title:            req.Title,
		Excerpt:          req.Excerpt,
		Body:             req.Body,
		Type:             req.Type,
		Status:           req.Status,
		AuthorName:       req.AuthorName,
		AuthorTitle:      req.AuthorTitle,
		AuthorPhoto:      req.AuthorPhoto,
		AuthorLinkedIn:   req.AuthorLinkedIn,
		Tags:             req.Tags,
		FeaturedImage:    req.FeaturedImage,
		IncludeInSitemap: req.includeInSitemap(),
		CreatedAt:        time.Now(),
	})
	if err != nil {
		h.logger.Error("creating post failed", "slug", req.Slug, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to create post")
		return
	}

	h.saveSEO(r.Context(), post.ID, req.SEO)
	h.metadata.Invalidate(r.Context(), post.Slug)
	if post.IsPublished() {
		h.regenerateSitemap(r.Context())
	}

	writeJSON(w, http.StatusCreated, apiResponse{
		Success: true,
		Message: "Post created",
		Data:    postResponse{Post: post, SEO: req.SEO},
	})
}

// Update replaces a post's content and SEO override. Status transitions in
// either direction change sitemap membership, so any status or eligibility
// change regenerates the file.
func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg, ok := req.validate(); !ok {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	before, err := h.queries.GetPostByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Post not found")
			return
		}
		h.logger.Error("loading post failed", "post_id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to load post")
		return
	}

	post, err := h.queries.UpdatePost(r.Context(), store.UpdatePostParams{
		ID:               id,
		Slug:             req.Slug,
		Title:            req.Title,
		Excerpt:          req.Excerpt,
		Body:             req.Body,
		Type:             req.Type,
		Status:           req.Status,
		AuthorName:       req.AuthorName,
		AuthorTitle:      req.AuthorTitle,
		AuthorPhoto:      req.AuthorPhoto,
		AuthorLinkedIn:   req.AuthorLinkedIn,
		Tags:             req.Tags,
		FeaturedImage:    req.FeaturedImage,
		IncludeInSitemap: req.includeInSitemap(),
		UpdatedAt:        time.Now(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Post not found")
			return
		}
		h.logger.Error("updating post failed", "post_id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to update post")
		return
	}

	h.saveSEO(r.Context(), post.ID, req.SEO)
	h.metadata.Invalidate(r.Context(), before.Slug)
	h.metadata.Invalidate(r.Context(), post.Slug)
	if before.SitemapEligible() != post.SitemapEligible() || before.Slug != post.Slug {
		h.regenerateSitemap(r.Context())
	}

	writeJSONSuccess(w, "Post updated", postResponse{Post: post, SEO: req.SEO})
}

// Publish flips a post to published and regenerates the sitemap.
func (h *PostsHandler) Publish(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, model.PostStatusPublished, "Post published")
}

// Unpublish flips a post back to draft, removing it from the sitemap and the
// public site.
func (h *PostsHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, model.PostStatusDraft, "Post unpublished")
}

func (h *PostsHandler) setStatus(w http.ResponseWriter, r *http.Request, status, message string) {
	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	if err := h.queries.SetPostStatus(r.Context(), id, status, time.Now()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Post not found")
			return
		}
		h.logger.Error("setting post status failed", "post_id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to update post status")
		return
	}

	post, err := h.queries.GetPostByID(r.Context(), id)
	if err != nil {
		h.logger.Error("loading post failed", "post_id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to load post")
		return
	}

	h.metadata.Invalidate(r.Context(), post.Slug)
	h.regenerateSitemap(r.Context())

	writeJSONSuccess(w, message, postResponse{Post: post})
}

// Delete removes a post and regenerates the sitemap. The SEO override row
// goes with it via FK cascade.
func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	post, err := h.queries.GetPostByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Post not found")
			return
		}
		h.logger.Error("loading post failed", "post_id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to load post")
		return
	}

	if err := h.queries.DeletePost(r.Context(), id); err != nil {
		h.logger.Error("deleting post failed", "post_id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to delete post")
		return
	}

	h.metadata.Invalidate(r.Context(), post.Slug)
	if post.SitemapEligible() {
		h.regenerateSitemap(r.Context())
	}

	writeJSONSuccess(w, "Post deleted", nil)
}

// saveSEO upserts or clears the override record. Failures are logged, not
// propagated: the post itself saved fine.
func (h *PostsHandler) saveSEO(ctx context.Context, postID int64, override *model.PostSEO) {
	if override == nil {
		return
	}
	override.PostID = postID
	if override.IsZero() {
		if err := h.queries.DeletePostSEO(ctx, postID); err != nil {
			h.logger.Warn("clearing seo override failed", "post_id", postID, "error", err)
		}
		return
	}
	if err := h.queries.UpsertPostSEO(ctx, *override); err != nil {
		h.logger.Warn("saving seo override failed", "post_id", postID, "error", err)
	}
}

// regenerateSitemap runs the publish side effect. Failures are logged only:
// content writes must not fail because the sitemap file did.
func (h *PostsHandler) regenerateSitemap(ctx context.Context) {
	if _, err := h.sitemap.Regenerate(ctx); err != nil {
		h.logger.Error("sitemap regeneration after post change failed", "error", err)
	}
}

func (h *PostsHandler) postID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSONError(w, http.StatusBadRequest, "Invalid post ID")
		return 0, false
	}
	return id, true
}
