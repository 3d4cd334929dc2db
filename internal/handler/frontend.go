// Copyright (c) 2025-2026 Cybaem Tech
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cybaemtech/site-go/internal/seo"
	"github.com/cybaemtech/site-go/internal/service"
)

// FrontendHandler serves the server-rendered post pages and the live
// sitemap document.
type FrontendHandler struct {
	metadata  *service.MetadataService
	sitemap   *service.SitemapService
	templates *template.Template
	logger    *slog.Logger
}

// NewFrontendHandler creates a frontend handler.
func NewFrontendHandler(metadata *service.MetadataService, sitemap *service.SitemapService, templates *template.Template, logger *slog.Logger) *FrontendHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FrontendHandler{
		metadata:  metadata,
		sitemap:   sitemap,
		templates: templates,
		logger:    logger,
	}
}

// blogPostPage is the template data for the post page.
type blogPostPage struct {
	Head template.HTML
	Post postView
}

// postView exposes the post to the template with the body as trusted HTML.
// Post bodies come from the admin editor, not from visitors.
type postView struct {
	Title       string
	AuthorName  string
	AuthorTitle string
	Body        template.HTML
	Tags        []string
}

// BlogPost renders a published post with its full SEO head block. Missing and
// draft posts both get the 404 page with no tags emitted.
func (h *FrontendHandler) BlogPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	md, err := h.metadata.ForSlug(r.Context(), slug, seo.ResolveBaseURL(r))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			h.NotFound(w, r)
			return
		}
		h.logger.Error("resolving post metadata failed", "slug", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.metadata.RecordView(r.Context(), md.Post.ID)

	page := blogPostPage{
		Head: seo.RenderHead(md.Head),
		Post: postView{
			Title:       md.Post.Title,
			AuthorName:  md.Post.AuthorName,
			AuthorTitle: md.Post.AuthorTitle,
			Body:        template.HTML(md.Post.Body),
			Tags:        md.Post.TagList(),
		},
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "blog_post.gohtml", page); err != nil {
		h.logger.Error("rendering post page failed", "slug", slug, "error", err)
	}
}

// Sitemap serves the sitemap generated on the fly. The file written by the
// regeneration job is for the web server to serve statically; this handler
// always reflects the current database state.
func (h *FrontendHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	xml, _, err := h.sitemap.Generate(r.Context())
	if err != nil {
		h.logger.Error("generating sitemap failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(xml)
}

// NotFound renders the 404 page.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := h.templates.ExecuteTemplate(w, "not_found.gohtml", nil); err != nil {
		h.logger.Error("rendering 404 page failed", "error", err)
	}
}
