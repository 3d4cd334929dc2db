// Copyright (c) 2025-2026 Cybaem Tech
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/cybaemtech/site-go/internal/service"
)

// SitemapAPIHandler exposes the manual sitemap regeneration endpoint used by
// the admin dashboard and deployment hooks.
type SitemapAPIHandler struct {
	sitemap *service.SitemapService
	logger  *slog.Logger
}

// NewSitemapAPIHandler creates a sitemap API handler.
func NewSitemapAPIHandler(sitemap *service.SitemapService, logger *slog.Logger) *SitemapAPIHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SitemapAPIHandler{sitemap: sitemap, logger: logger}
}

// regenerateData is the data payload of a successful regeneration response.
type regenerateData struct {
	BlogsCount       int    `json:"blogs_count"`
	StaticPagesCount int    `json:"static_pages_count"`
	TotalURLs        int    `json:"total_urls"`
	GeneratedAt      string `json:"generated_at"`
}

// Regenerate rebuilds the sitemap file and reports the URL counts.
func (h *SitemapAPIHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	result, err := h.sitemap.Regenerate(r.Context())
	if err != nil {
		h.logger.Error("sitemap regeneration failed", "run_id", result.RunID, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to generate sitemap")
		return
	}

	writeJSONSuccess(w, "Sitemap generated successfully", regenerateData{
		BlogsCount:       result.BlogsCount,
		StaticPagesCount: result.StaticPagesCount,
		TotalURLs:        result.TotalURLs,
		GeneratedAt:      result.GeneratedAt.Format("2006-01-02 15:04:05"),
	})
}
