// Copyright (c) 2025-2026 Cybaem Tech
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo derives per-page SEO metadata and sitemaps from post data.
// It holds the single implementation of the field fallback chains consumed
// by both the server-rendered pages and the headless JSON endpoint.
package seo

import (
	"net/http"
	"strings"
)

// Site-wide SEO constants.
const (
	// SiteName is the organization name used in titles, OG tags and JSON-LD.
	SiteName = "Cybaem Tech"

	// ProductionBaseURL is the canonical origin used when the request host
	// is unavailable or local.
	ProductionBaseURL = "https://www.cybaemtech.com"

	// DefaultLogoPath is the fallback share image when a post has neither an
	// override image nor a featured image.
	DefaultLogoPath = "/public/uploads/cybaem-logo.png"

	// BlogPostPathPrefix is the public route prefix for post pages.
	BlogPostPathPrefix = "/blog-post/"
)

// Geo defaults (Pune, Maharashtra headquarters).
const (
	DefaultGeoRegion    = "IN-MH"
	DefaultGeoPlacename = "Pune"
	DefaultGeoPosition  = "18.5204;73.8567"
	DefaultICBM         = "18.5204, 73.8567"
)

// DefaultRobots is emitted when no robots override exists.
const DefaultRobots = "index, follow"

// ResolveBaseURL derives the canonical site origin from an incoming request.
// Localhost and hostless requests resolve to the production domain so that
// generated URLs never leak development hosts.
func ResolveBaseURL(r *http.Request) string {
	if r == nil || r.Host == "" || isLocalHost(r.Host) {
		return ProductionBaseURL
	}

	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func isLocalHost(host string) bool {
	h := host
	if i := strings.LastIndex(h, ":"); i >= 0 {
		h = h[:i]
	}
	return h == "localhost" || h == "127.0.0.1" || h == "::1" || h == "[::1]"
}

// CanonicalURL computes the canonical post URL. It is always derived from the
// slug — a stored canonical override is deliberately ignored, preventing
// editors from pointing a page's canonical somewhere else by accident.
func CanonicalURL(baseURL, slug string) string {
	return strings.TrimSuffix(baseURL, "/") + BlogPostPathPrefix + slug
}
