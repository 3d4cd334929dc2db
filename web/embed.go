// Copyright (c) 2025-2026 Cybaem Tech
// SPDX-License-Identifier: GPL-3.0-or-later

// Package web embeds the HTML templates.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

// Templates parses the embedded template set.
func Templates() (*template.Template, error) {
	return template.ParseFS(templatesFS, "templates/*.gohtml")
}
