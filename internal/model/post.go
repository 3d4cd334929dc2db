// Copyright (c) 2025-2026 Cybaem Tech
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"strings"
	"time"
)

// Post statuses
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// Post content types. Slugs are unique per type.
const (
	PostTypeBlogPost   = "Blog Post"
	PostTypeCaseStudy  = "Case Study"
	PostTypeWhitePaper = "White Paper"
	PostTypeEBook      = "eBook"
)

// PostTypes lists every valid content type.
var PostTypes = []string{PostTypeBlogPost, PostTypeCaseStudy, PostTypeWhitePaper, PostTypeEBook}

// Post represents a content item (blog post, case study, white paper or eBook).
type Post struct {
	ID               int64        `json:"id"`
	Slug             string       `json:"slug"`
	Title            string       `json:"title"`
	Excerpt          string       `json:"excerpt"`
	Body             string       `json:"body"`
	Type             string       `json:"type"`
	Status           string       `json:"status"`
	AuthorName       string       `json:"author_name"`
	AuthorTitle      string       `json:"author_title"`
	AuthorPhoto      string       `json:"author_photo"`
	AuthorLinkedIn   string       `json:"author_linkedin"`
	Tags             string       `json:"tags"` // comma separated
	FeaturedImage    string       `json:"featured_image"`
	IncludeInSitemap bool         `json:"include_in_sitemap"`
	Views            int64        `json:"views"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        sql.NullTime `json:"updated_at"`
}

// IsPublished returns true if the post is published.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// SitemapEligible returns true if the post belongs in the sitemap:
// published and not opted out.
func (p *Post) SitemapEligible() bool {
	return p.IsPublished() && p.IncludeInSitemap
}

// LastModified returns updated_at when set, created_at otherwise.
func (p *Post) LastModified() time.Time {
	if p.UpdatedAt.Valid {
		return p.UpdatedAt.Time
	}
	return p.CreatedAt
}

// TagList splits the comma-separated tags column into trimmed, non-empty entries.
func (p *Post) TagList() []string {
	if p.Tags == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(p.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// IsValidPostType reports whether t is one of the known content types.
func IsValidPostType(t string) bool {
	for _, known := range PostTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsValidPostStatus reports whether s is a known post status.
func IsValidPostStatus(s string) bool {
	return s == PostStatusDraft || s == PostStatusPublished
}
