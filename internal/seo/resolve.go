// Copyright (c) 2025-2026 Cybaem Tech
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/cybaemtech/site-go/internal/model"
)

// stripPolicy removes every HTML tag; used for the meta-description fallback
// when the excerpt carries markup.
var stripPolicy = bluemonday.StrictPolicy()

// Fields is the resolved-field map shared by both runtimes. The JSON keys are
// the hydration contract consumed by the React SEO component and must match
// what the server-rendered head emits.
type Fields struct {
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	MetaKeywords    string `json:"meta_keywords"`
	MetaAuthor      string `json:"meta_author"`
	Robots          string `json:"robots"`

	CanonicalURL string `json:"canonical_url"`
	Hreflang     string `json:"hreflang"`

	OGType        string `json:"og_type"`
	OGURL         string `json:"og_url"`
	OGTitle       string `json:"og_title"`
	OGDescription string `json:"og_description"`
	OGImage       string `json:"og_image"`
	OGSiteName    string `json:"og_site_name"`

	TwitterCard        string `json:"twitter_card"`
	TwitterURL         string `json:"twitter_url"`
	TwitterTitle       string `json:"twitter_title"`
	TwitterDescription string `json:"twitter_description"`
	TwitterImage       string `json:"twitter_image"`

	GeoRegion    string `json:"geo_region"`
	GeoPlacename string `json:"geo_placename"`
	GeoPosition  string `json:"geo_position"`
	ICBM         string `json:"icbm"`

	ArticleTags []string `json:"article_tags"`

	GoogleAnalyticsID  string `json:"google_analytics_id"`
	GoogleTagManagerID string `json:"google_tag_manager_id"`
}

// Resolve applies the per-field fallback chains to a post and its optional
// override record. It is a pure function of its inputs: resolving the same
// (post, override, base) twice yields identical output.
//
// For every field the first non-empty candidate wins; the canonical URL is
// the one exception and is always computed from the slug.
func Resolve(post *model.Post, override *model.PostSEO, baseURL string) Fields {
	if override == nil {
		override = &model.PostSEO{}
	}
	base := strings.TrimSuffix(baseURL, "/")
	if base == "" {
		base = ProductionBaseURL
	}

	f := Fields{
		CanonicalURL: CanonicalURL(base, post.Slug),
		ArticleTags:  post.TagList(),
	}

	f.MetaTitle = firstNonEmpty(override.MetaTitle, post.Title+" | "+SiteName)
	f.MetaDescription = firstNonEmpty(override.MetaDescription, stripHTML(post.Excerpt), post.Title)
	f.MetaKeywords = firstNonEmpty(override.MetaKeywords, post.Tags)
	f.MetaAuthor = firstNonEmpty(override.MetaAuthor, post.AuthorName, SiteName)
	f.Robots = firstNonEmpty(override.Robots, DefaultRobots)
	f.Hreflang = firstNonEmpty(override.Hreflang, "en")

	f.OGType = firstNonEmpty(override.OGType, "article")
	f.OGURL = firstNonEmpty(override.OGURL, f.CanonicalURL)
	f.OGTitle = firstNonEmpty(override.OGTitle, f.MetaTitle, post.Title, SiteName)
	f.OGDescription = firstNonEmpty(override.OGDescription, f.MetaDescription)
	f.OGImage = NormalizeImageURL(firstNonEmpty(override.OGImage, post.FeaturedImage), base)
	f.OGSiteName = firstNonEmpty(override.OGSiteName, SiteName)

	f.TwitterCard = firstNonEmpty(override.TwitterCardType, "summary_large_image")
	f.TwitterURL = firstNonEmpty(override.TwitterURL, f.CanonicalURL)
	f.TwitterTitle = firstNonEmpty(override.TwitterTitle, f.OGTitle)
	f.TwitterDescription = firstNonEmpty(override.TwitterDescription, f.OGDescription)
	if override.TwitterImage != "" {
		f.TwitterImage = NormalizeImageURL(override.TwitterImage, base)
	} else {
		f.TwitterImage = f.OGImage
	}

	f.GeoRegion = firstNonEmpty(override.GeoRegion, DefaultGeoRegion)
	f.GeoPlacename = firstNonEmpty(override.GeoPlacename, DefaultGeoPlacename)
	f.GeoPosition = firstNonEmpty(override.GeoPosition, DefaultGeoPosition)
	f.ICBM = firstNonEmpty(override.ICBM, DefaultICBM)

	f.GoogleAnalyticsID = override.GoogleAnalyticsID
	f.GoogleTagManagerID = override.GoogleTagManagerID

	return f
}

// firstNonEmpty returns the first candidate that is not blank after trimming.
func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return c
		}
	}
	return ""
}

// stripHTML removes markup and collapses whitespace.
func stripHTML(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(stripPolicy.Sanitize(s)), " ")
}
