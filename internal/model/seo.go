// Copyright (c) 2025-2026 Cybaem Tech
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// PostSEO is the optional one-to-one SEO override record for a post.
// Every field is optional; an empty string means "no override" and the
// resolver falls back to a computed default. The record is saved together
// with the post and has no independent lifecycle.
type PostSEO struct {
	PostID int64 `json:"post_id"`

	// Basic meta
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	MetaKeywords    string `json:"meta_keywords"`
	MetaAuthor      string `json:"meta_author"`
	Robots          string `json:"robots"`

	// Geo meta
	GeoRegion    string `json:"geo_region"`
	GeoPlacename string `json:"geo_placename"`
	GeoPosition  string `json:"geo_position"`
	ICBM         string `json:"icbm"`

	// Open Graph
	OGType        string `json:"og_type"`
	OGURL         string `json:"og_url"`
	OGTitle       string `json:"og_title"`
	OGDescription string `json:"og_description"`
	OGImage       string `json:"og_image"`
	OGSiteName    string `json:"og_site_name"`

	// Twitter Card
	TwitterCardType    string `json:"twitter_card_type"`
	TwitterURL         string `json:"twitter_url"`
	TwitterTitle       string `json:"twitter_title"`
	TwitterDescription string `json:"twitter_description"`
	TwitterImage       string `json:"twitter_image"`

	// Canonical + alternates. CanonicalURL is stored and editable but the
	// resolver deliberately ignores it in favor of the computed URL.
	CanonicalURL string `json:"canonical_url"`
	Hreflang     string `json:"hreflang"`

	// Raw JSON-LD schema strings, used verbatim when they parse as JSON.
	SchemaOrganization string `json:"schema_organization"`
	SchemaWebsite      string `json:"schema_website"`
	SchemaBreadcrumb   string `json:"schema_breadcrumb"`
	SchemaArticle      string `json:"schema_article"`
	SchemaFAQ          string `json:"schema_faq"`

	// Analytics
	GoogleAnalyticsID  string `json:"google_analytics_id"`
	GoogleTagManagerID string `json:"google_tag_manager_id"`
}

// IsZero returns true when no override field is set.
func (s *PostSEO) IsZero() bool {
	if s == nil {
		return true
	}
	z := *s
	z.PostID = 0
	return z == PostSEO{}
}
