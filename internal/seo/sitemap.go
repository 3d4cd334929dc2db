// Copyright (c) 2025-2026 Cybaem Tech
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/cybaemtech/site-go/internal/model"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Valid change frequency values.
const (
	ChangeFreqAlways  ChangeFreq = "always"
	ChangeFreqHourly  ChangeFreq = "hourly"
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
	ChangeFreqYearly  ChangeFreq = "yearly"
	ChangeFreqNever   ChangeFreq = "never"
)

// Post entries always carry these values.
const (
	postChangeFreq = ChangeFreqWeekly
	postPriority   = "0.8"
)

// lastModLayout is the date-only lastmod format.
const lastModLayout = "2006-01-02"

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// StaticPage is a fixed, code-defined site route with hand-authored
// change frequency and priority. The list changes only with deployments.
type StaticPage struct {
	Path       string
	ChangeFreq ChangeFreq
	Priority   string
}

// StaticPages returns the non-blog site routes included in every sitemap.
func StaticPages() []StaticPage {
	return []StaticPage{
		{Path: "/", ChangeFreq: ChangeFreqDaily, Priority: "1.0"},
		{Path: "/about-us", ChangeFreq: ChangeFreqMonthly, Priority: "0.7"},
		{Path: "/services", ChangeFreq: ChangeFreqWeekly, Priority: "0.9"},
		{Path: "/services/cloud-solutions", ChangeFreq: ChangeFreqWeekly, Priority: "0.8"},
		{Path: "/services/cyber-security", ChangeFreq: ChangeFreqWeekly, Priority: "0.8"},
		{Path: "/services/managed-it", ChangeFreq: ChangeFreqWeekly, Priority: "0.8"},
		{Path: "/services/digital-marketing", ChangeFreq: ChangeFreqWeekly, Priority: "0.8"},
		{Path: "/resources", ChangeFreq: ChangeFreqDaily, Priority: "0.9"},
		{Path: "/case-studies", ChangeFreq: ChangeFreqWeekly, Priority: "0.8"},
		{Path: "/careers", ChangeFreq: ChangeFreqWeekly, Priority: "0.6"},
		{Path: "/contact-us", ChangeFreq: ChangeFreqMonthly, Priority: "0.5"},
	}
}

// SitemapBuilder assembles a sitemaps.org 0.9 document from static routes and
// sitemap-eligible posts.
type SitemapBuilder struct {
	baseURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a builder for the given site origin.
func NewSitemapBuilder(baseURL string) *SitemapBuilder {
	return &SitemapBuilder{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		urls:    make([]SitemapURL, 0),
	}
}

// AddStaticPage adds one static route. Static entries are stamped with the
// generation date rather than a real modification date.
func (b *SitemapBuilder) AddStaticPage(p StaticPage, now time.Time) {
	loc := b.baseURL + p.Path
	if p.Path == "/" {
		loc = b.baseURL + "/"
	}
	b.urls = append(b.urls, SitemapURL{
		Loc:        loc,
		LastMod:    now.Format(lastModLayout),
		ChangeFreq: p.ChangeFreq,
		Priority:   p.Priority,
	})
}

// AddStaticPages adds all static routes.
func (b *SitemapBuilder) AddStaticPages(pages []StaticPage, now time.Time) {
	for _, p := range pages {
		b.AddStaticPage(p, now)
	}
}

// AddPost adds a post entry. Ineligible posts (drafts, opted out of the
// sitemap) are skipped regardless of the caller's query.
func (b *SitemapBuilder) AddPost(p model.Post) {
	if !p.SitemapEligible() {
		return
	}
	b.urls = append(b.urls, SitemapURL{
		Loc:        CanonicalURL(b.baseURL, p.Slug),
		LastMod:    p.LastModified().Format(lastModLayout),
		ChangeFreq: postChangeFreq,
		Priority:   postPriority,
	})
}

// AddPosts adds multiple posts.
func (b *SitemapBuilder) AddPosts(posts []model.Post) {
	for _, p := range posts {
		b.AddPost(p)
	}
}

// Len returns the number of URL entries added so far.
func (b *SitemapBuilder) Len() int {
	return len(b.urls)
}

// Build generates the sitemap XML document.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}
