// Copyright (c) 2025-2026 Cybaem Tech
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"html/template"
	"strings"
)

// HeadData is the full metadata payload for one page: the resolved field map
// plus the JSON-LD blocks. It is the shared contract between the
// server-rendered head and the headless JSON endpoint — both runtimes render
// from the same structure, so their output cannot drift apart.
type HeadData struct {
	Fields  Fields    `json:"fields"`
	Schemas SchemaSet `json:"schemas"`
}

// RenderHead emits the complete head tag set for a page. Tag order is fixed:
// charset/viewport, title and core meta, canonical and hreflang alternates,
// Open Graph (with one article:tag per tag entry), Twitter Card, geo meta,
// analytics bootstrap, then the JSON-LD blocks.
func RenderHead(d HeadData) template.HTML {
	f := d.Fields
	var b strings.Builder

	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")

	b.WriteString("<title>" + esc(f.MetaTitle) + "</title>\n")
	writeMeta(&b, "description", f.MetaDescription)
	writeMeta(&b, "keywords", f.MetaKeywords)
	writeMeta(&b, "robots", f.Robots)
	writeMeta(&b, "author", f.MetaAuthor)

	writeLink(&b, "canonical", "", f.CanonicalURL)
	writeLink(&b, "alternate", f.Hreflang, f.CanonicalURL)
	writeLink(&b, "alternate", "x-default", f.CanonicalURL)

	writeProperty(&b, "og:type", f.OGType)
	writeProperty(&b, "og:url", f.OGURL)
	writeProperty(&b, "og:title", f.OGTitle)
	writeProperty(&b, "og:description", f.OGDescription)
	writeProperty(&b, "og:image", f.OGImage)
	writeProperty(&b, "og:site_name", f.OGSiteName)
	for _, tag := range f.ArticleTags {
		writeProperty(&b, "article:tag", tag)
	}

	writeMeta(&b, "twitter:card", f.TwitterCard)
	writeMeta(&b, "twitter:url", f.TwitterURL)
	writeMeta(&b, "twitter:title", f.TwitterTitle)
	writeMeta(&b, "twitter:description", f.TwitterDescription)
	writeMeta(&b, "twitter:image", f.TwitterImage)

	writeMeta(&b, "geo.region", f.GeoRegion)
	writeMeta(&b, "geo.placename", f.GeoPlacename)
	writeMeta(&b, "geo.position", f.GeoPosition)
	writeMeta(&b, "ICBM", f.ICBM)

	writeAnalytics(&b, f)

	for _, schema := range d.Schemas.Ordered() {
		b.WriteString("<script type=\"application/ld+json\">")
		b.Write(schema)
		b.WriteString("</script>\n")
	}

	return template.HTML(b.String())
}

func writeMeta(b *strings.Builder, name, content string) {
	if content == "" {
		return
	}
	b.WriteString("<meta name=\"" + esc(name) + "\" content=\"" + esc(content) + "\">\n")
}

func writeProperty(b *strings.Builder, property, content string) {
	if content == "" {
		return
	}
	b.WriteString("<meta property=\"" + esc(property) + "\" content=\"" + esc(content) + "\">\n")
}

func writeLink(b *strings.Builder, rel, hreflang, href string) {
	if href == "" {
		return
	}
	b.WriteString("<link rel=\"" + esc(rel) + "\"")
	if hreflang != "" {
		b.WriteString(" hreflang=\"" + esc(hreflang) + "\"")
	}
	b.WriteString(" href=\"" + esc(href) + "\">\n")
}

// writeAnalytics emits the gtag/GTM bootstrap scripts when the override
// record carries analytics IDs.
func writeAnalytics(b *strings.Builder, f Fields) {
	if f.GoogleAnalyticsID != "" {
		id := esc(f.GoogleAnalyticsID)
		b.WriteString("<script async src=\"https://www.googletagmanager.com/gtag/js?id=" + id + "\"></script>\n")
		b.WriteString("<script>window.dataLayer=window.dataLayer||[];function gtag(){dataLayer.push(arguments);}" +
			"gtag('js',new Date());gtag('config','" + id + "');</script>\n")
	}
	if f.GoogleTagManagerID != "" {
		id := esc(f.GoogleTagManagerID)
		b.WriteString("<script>(function(w,d,s,l,i){w[l]=w[l]||[];w[l].push({'gtm.start':new Date().getTime()," +
			"event:'gtm.js'});var f=d.getElementsByTagName(s)[0],j=d.createElement(s);j.async=true;" +
			"j.src='https://www.googletagmanager.com/gtm.js?id='+i;f.parentNode.insertBefore(j,f);})" +
			"(window,document,'script','dataLayer','" + id + "');</script>\n")
	}
}

func esc(s string) string {
	return template.HTMLEscapeString(s)
}
