// Copyright (c) 2025-2026 Cybaem Tech
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cybaemtech/site-go/internal/seo"
	"github.com/cybaemtech/site-go/internal/service"
)

// SEOAPIHandler serves resolved metadata as JSON for the client-rendered
// React frontend, which injects the same tags the server renderer emits.
type SEOAPIHandler struct {
	metadata *service.MetadataService
	logger   *slog.Logger
}

// NewSEOAPIHandler creates a headless SEO API handler.
func NewSEOAPIHandler(metadata *service.MetadataService, logger *slog.Logger) *SEOAPIHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SEOAPIHandler{metadata: metadata, logger: logger}
}

// seoResponse carries resolved head fields plus the JSON-LD documents in
// emission order.
type seoResponse struct {
	Success bool              `json:"success"`
	Fields  seo.Fields        `json:"fields"`
	Schemas []json.RawMessage `json:"schemas"`
}

// BlogPost returns the resolved SEO fields and schemas for a published post.
func (h *SEOAPIHandler) BlogPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	md, err := h.metadata.ForSlug(r.Context(), slug, seo.ResolveBaseURL(r))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeJSONError(w, http.StatusNotFound, "Post not found")
			return
		}
		h.logger.Error("resolving seo metadata failed", "slug", slug, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to resolve metadata")
		return
	}

	writeJSON(w, http.StatusOK, seoResponse{
		Success: true,
		Fields:  md.Head.Fields,
		Schemas: md.Head.Schemas.Ordered(),
	})
}
