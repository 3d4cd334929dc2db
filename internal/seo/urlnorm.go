// Copyright (c) 2025-2026 Cybaem Tech
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"path"
	"strings"
)

// imageExtensions are the file extensions recognized as uploadable images.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

// NormalizeImageURL converts any stored image path into an absolute URL under
// the canonical upload directory.
//
// Uploaded files moved under /public/uploads/ during a storage migration but
// not every database row was rewritten, so legacy /uploads/ prefixes are
// reconciled here. Bare filenames (rows that stored only "team.jpg") are
// assumed to live in the upload directory as well.
//
// The result is always a fully qualified URL; an empty input falls back to
// the default logo asset.
func NormalizeImageURL(value, baseURL string) string {
	base := strings.TrimSuffix(baseURL, "/")
	if base == "" {
		base = ProductionBaseURL
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return base + DefaultLogoPath
	}
	if strings.HasPrefix(value, "http") {
		return value
	}

	if !strings.HasPrefix(value, "/") {
		value = "/" + value
	}

	switch {
	case strings.HasPrefix(value, "/uploads/"):
		value = "/public" + value
	case path.Dir(value) == "/" && imageExtensions[strings.ToLower(path.Ext(value))]:
		value = "/public/uploads" + value
	}

	return base + value
}
