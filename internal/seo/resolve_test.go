// Copyright (c) 2025-2026 Cybaem Tech
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"database/sql"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybaemtech/site-go/internal/model"
)

func samplePost() *model.Post {
	return &model.Post{
		ID:               42,
		Slug:             "cloud-migration-101",
		Title:            "Cloud Migration 101",
		Excerpt:          "<p>A practical guide to moving workloads.</p>",
		Body:             "<p>Full body</p>",
		Type:             model.PostTypeBlogPost,
		Status:           model.PostStatusPublished,
		AuthorName:       "Jane Smith",
		AuthorLinkedIn:   "https://linkedin.com/in/janesmith",
		Tags:             "cloud, migration, aws",
		FeaturedImage:    "/uploads/cloud.jpg",
		IncludeInSitemap: true,
		CreatedAt:        time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestResolveDefaults(t *testing.T) {
	f := Resolve(samplePost(), nil, ProductionBaseURL)

	assert.Equal(t, "Cloud Migration 101 | Cybaem Tech", f.MetaTitle)
	assert.Equal(t, "A practical guide to moving workloads.", f.MetaDescription)
	assert.Equal(t, "cloud, migration, aws", f.MetaKeywords)
	assert.Equal(t, "Jane Smith", f.MetaAuthor)
	assert.Equal(t, DefaultRobots, f.Robots)
	assert.Equal(t, "https://www.cybaemtech.com/blog-post/cloud-migration-101", f.CanonicalURL)
	assert.Equal(t, "en", f.Hreflang)

	assert.Equal(t, "article", f.OGType)
	assert.Equal(t, f.CanonicalURL, f.OGURL)
	assert.Equal(t, f.MetaTitle, f.OGTitle)
	assert.Equal(t, f.MetaDescription, f.OGDescription)
	assert.Equal(t, "https://www.cybaemtech.com/public/uploads/cloud.jpg", f.OGImage)
	assert.Equal(t, SiteName, f.OGSiteName)

	assert.Equal(t, "summary_large_image", f.TwitterCard)
	assert.Equal(t, f.CanonicalURL, f.TwitterURL)
	assert.Equal(t, f.OGTitle, f.TwitterTitle)
	assert.Equal(t, f.OGDescription, f.TwitterDescription)
	assert.Equal(t, f.OGImage, f.TwitterImage)

	assert.Equal(t, DefaultGeoRegion, f.GeoRegion)
	assert.Equal(t, DefaultGeoPlacename, f.GeoPlacename)
	assert.Equal(t, DefaultGeoPosition, f.GeoPosition)
	assert.Equal(t, DefaultICBM, f.ICBM)

	assert.Equal(t, []string{"cloud", "migration", "aws"}, f.ArticleTags)
	assert.Empty(t, f.GoogleAnalyticsID)
	assert.Empty(t, f.GoogleTagManagerID)
}

func TestResolveOverridesWin(t *testing.T) {
	override := &model.PostSEO{
		MetaTitle:       "Custom Title",
		MetaDescription: "Custom description",
		MetaKeywords:    "k1, k2",
		MetaAuthor:      "Marketing Team",
		Robots:          "noindex, nofollow",
		OGTitle:         "OG Custom",
		OGImage:         "/uploads/custom.png",
		TwitterTitle:    "TW Custom",
		GeoRegion:       "IN-KA",
	}

	f := Resolve(samplePost(), override, ProductionBaseURL)

	assert.Equal(t, "Custom Title", f.MetaTitle)
	assert.Equal(t, "Custom description", f.MetaDescription)
	assert.Equal(t, "k1, k2", f.MetaKeywords)
	assert.Equal(t, "Marketing Team", f.MetaAuthor)
	assert.Equal(t, "noindex, nofollow", f.Robots)
	assert.Equal(t, "OG Custom", f.OGTitle)
	assert.Equal(t, "https://www.cybaemtech.com/public/uploads/custom.png", f.OGImage)
	assert.Equal(t, "TW Custom", f.TwitterTitle)
	assert.Equal(t, "IN-KA", f.GeoRegion)
	// Unset geo fields still resolve to defaults.
	assert.Equal(t, DefaultGeoPlacename, f.GeoPlacename)
}

func TestResolveCanonicalOverrideIgnored(t *testing.T) {
	override := &model.PostSEO{CanonicalURL: "https://evil.example.com/elsewhere"}

	f := Resolve(samplePost(), override, ProductionBaseURL)

	assert.Equal(t, "https://www.cybaemtech.com/blog-post/cloud-migration-101", f.CanonicalURL)
}

func TestResolveDescriptionFallsBackToTitle(t *testing.T) {
	post := samplePost()
	post.Excerpt = ""

	f := Resolve(post, nil, ProductionBaseURL)

	assert.Equal(t, post.Title, f.MetaDescription)
}

func TestResolveExcerptHTMLStripped(t *testing.T) {
	post := samplePost()
	post.Excerpt = "<p>Part <strong>one</strong></p>\n<p>part two.</p>"

	f := Resolve(post, nil, ProductionBaseURL)

	assert.Equal(t, "Part one part two.", f.MetaDescription)
}

func TestResolveAuthorFallsBackToSiteName(t *testing.T) {
	post := samplePost()
	post.AuthorName = ""

	f := Resolve(post, nil, ProductionBaseURL)

	assert.Equal(t, SiteName, f.MetaAuthor)
}

func TestResolveTwitterImageOverrideNormalized(t *testing.T) {
	override := &model.PostSEO{TwitterImage: "card.png"}

	f := Resolve(samplePost(), override, ProductionBaseURL)

	assert.Equal(t, "https://www.cybaemtech.com/public/uploads/card.png", f.TwitterImage)
}

func TestResolveMissingImagesUseDefaultLogo(t *testing.T) {
	post := samplePost()
	post.FeaturedImage = ""

	f := Resolve(post, nil, ProductionBaseURL)

	assert.Equal(t, ProductionBaseURL+DefaultLogoPath, f.OGImage)
	assert.Equal(t, f.OGImage, f.TwitterImage)
}

func TestResolveIdempotent(t *testing.T) {
	post := samplePost()
	post.UpdatedAt = sql.NullTime{Time: time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC), Valid: true}
	override := &model.PostSEO{MetaTitle: "Stable"}

	first := Resolve(post, override, ProductionBaseURL)
	second := Resolve(post, override, ProductionBaseURL)

	require.Equal(t, first, second)
}

func TestResolveEmptyBaseUsesProduction(t *testing.T) {
	f := Resolve(samplePost(), nil, "")
	assert.Equal(t, ProductionBaseURL+BlogPostPathPrefix+"cloud-migration-101", f.CanonicalURL)
}

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		name  string
		host  string
		proto string
		want  string
	}{
		{name: "localhost resolves to production", host: "localhost:8080", want: ProductionBaseURL},
		{name: "loopback resolves to production", host: "127.0.0.1:8080", want: ProductionBaseURL},
		{name: "real host plain http", host: "staging.cybaemtech.com", want: "http://staging.cybaemtech.com"},
		{name: "forwarded proto https", host: "www.cybaemtech.com", proto: "https", want: "https://www.cybaemtech.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/blog-post/x", nil)
			r.Host = tt.host
			if tt.proto != "" {
				r.Header.Set("X-Forwarded-Proto", tt.proto)
			}
			assert.Equal(t, tt.want, ResolveBaseURL(r))
		})
	}
}
