// Copyright (c) 2025-2026 Cybaem Tech
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/cybaemtech/site-go/internal/model"
)

// SchemaContext is the JSON-LD context URL.
const SchemaContext = "https://schema.org"

// ArticleSchema represents JSON-LD BlogPosting structured data.
type ArticleSchema struct {
	Context          string        `json:"@context"`
	Type             string        `json:"@type"`
	Headline         string        `json:"headline"`
	Description      string        `json:"description,omitempty"`
	Image            string        `json:"image,omitempty"`
	DatePublished    string        `json:"datePublished,omitempty"`
	DateModified     string        `json:"dateModified,omitempty"`
	Author           *PersonSchema `json:"author,omitempty"`
	Publisher        *OrgSchema    `json:"publisher,omitempty"`
	MainEntityOfPage *WebPageRef   `json:"mainEntityOfPage,omitempty"`
	Keywords         string        `json:"keywords,omitempty"`
}

// PersonSchema represents JSON-LD Person structured data.
type PersonSchema struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// OrgSchema represents JSON-LD Organization structured data.
type OrgSchema struct {
	Type string       `json:"@type"`
	Name string       `json:"name"`
	Logo *ImageSchema `json:"logo,omitempty"`
}

// ImageSchema represents JSON-LD ImageObject structured data.
type ImageSchema struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

// WebPageRef is the @id reference used by mainEntityOfPage.
type WebPageRef struct {
	Type string `json:"@type"`
	ID   string `json:"@id"`
}

// BreadcrumbSchema represents JSON-LD BreadcrumbList structured data.
type BreadcrumbSchema struct {
	Context  string           `json:"@context"`
	Type     string           `json:"@type"`
	ItemList []BreadcrumbItem `json:"itemListElement"`
}

// BreadcrumbItem is a single breadcrumb list element.
type BreadcrumbItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item,omitempty"`
}

// SchemaSet holds the JSON-LD blocks for one page. Each entry is either the
// verbatim override string (when it parsed as JSON) or a synthesized default;
// organization, website and FAQ exist only as pass-through overrides.
type SchemaSet struct {
	Article      json.RawMessage `json:"article,omitempty"`
	Breadcrumb   json.RawMessage `json:"breadcrumb,omitempty"`
	Organization json.RawMessage `json:"organization,omitempty"`
	Website      json.RawMessage `json:"website,omitempty"`
	FAQ          json.RawMessage `json:"faq,omitempty"`
}

// Ordered returns the blocks in emission order: Article, Breadcrumb,
// Organization, Website, FAQ — skipping absent ones.
func (s SchemaSet) Ordered() []json.RawMessage {
	var out []json.RawMessage
	for _, raw := range []json.RawMessage{s.Article, s.Breadcrumb, s.Organization, s.Website, s.FAQ} {
		if len(raw) > 0 {
			out = append(out, raw)
		}
	}
	return out
}

// BuildSchemas assembles the JSON-LD set for a post. Override strings that
// parse as JSON are used verbatim; invalid ones are logged and treated as
// absent, falling through to the synthesized default (Article, Breadcrumb)
// or to nothing (Organization, Website, FAQ).
func BuildSchemas(post *model.Post, override *model.PostSEO, fields Fields, now time.Time) SchemaSet {
	if override == nil {
		override = &model.PostSEO{}
	}

	set := SchemaSet{
		Article:      overrideSchema(override.SchemaArticle, "article", post.Slug),
		Breadcrumb:   overrideSchema(override.SchemaBreadcrumb, "breadcrumb", post.Slug),
		Organization: overrideSchema(override.SchemaOrganization, "organization", post.Slug),
		Website:      overrideSchema(override.SchemaWebsite, "website", post.Slug),
		FAQ:          overrideSchema(override.SchemaFAQ, "faq", post.Slug),
	}

	if set.Article == nil {
		set.Article = marshalSchema(buildArticleSchema(post, fields, now))
	}
	if set.Breadcrumb == nil {
		set.Breadcrumb = marshalSchema(buildBreadcrumbSchema(post, fields))
	}

	return set
}

// overrideSchema validates a raw override string. Invalid JSON is never
// emitted: it is logged and discarded so the synthesized default appears
// instead.
func overrideSchema(raw, name, slug string) json.RawMessage {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if !json.Valid([]byte(raw)) {
		slog.Warn("discarding malformed schema override", "schema", name, "slug", slug)
		return nil
	}
	return json.RawMessage(raw)
}

func buildArticleSchema(post *model.Post, fields Fields, now time.Time) ArticleSchema {
	article := ArticleSchema{
		Context:     SchemaContext,
		Type:        "BlogPosting",
		Headline:    post.Title,
		Description: fields.MetaDescription,
		Image:       fields.OGImage,
		Keywords:    fields.MetaKeywords,
		MainEntityOfPage: &WebPageRef{
			Type: "WebPage",
			ID:   fields.CanonicalURL,
		},
		Publisher: &OrgSchema{
			Type: "Organization",
			Name: SiteName,
			Logo: &ImageSchema{
				Type: "ImageObject",
				URL:  ProductionBaseURL + DefaultLogoPath,
			},
		},
	}

	// Dates fall back updated_at → created_at → today.
	published := post.CreatedAt
	if published.IsZero() {
		published = now
	}
	modified := published
	if post.UpdatedAt.Valid {
		modified = post.UpdatedAt.Time
	}
	article.DatePublished = published.Format(time.RFC3339)
	article.DateModified = modified.Format(time.RFC3339)

	article.Author = &PersonSchema{
		Type: "Person",
		Name: fields.MetaAuthor,
		URL:  post.AuthorLinkedIn,
	}

	return article
}

// buildBreadcrumbSchema produces the fixed 3-level default trail:
// Home → Resources → current post.
func buildBreadcrumbSchema(post *model.Post, fields Fields) BreadcrumbSchema {
	base := strings.TrimSuffix(fields.CanonicalURL, BlogPostPathPrefix+post.Slug)
	return BreadcrumbSchema{
		Context: SchemaContext,
		Type:    "BreadcrumbList",
		ItemList: []BreadcrumbItem{
			{Type: "ListItem", Position: 1, Name: "Home", Item: base + "/"},
			{Type: "ListItem", Position: 2, Name: "Resources", Item: base + "/resources"},
			{Type: "ListItem", Position: 3, Name: post.Title, Item: fields.CanonicalURL},
		},
	}
}

// marshalSchema serializes a synthesized schema object.
func marshalSchema(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("marshalling schema", "error", err)
		return nil
	}
	return data
}
