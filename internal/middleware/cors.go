// Copyright (c) 2025-2026 Cybaem Tech
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for the public API surface.
package middleware

import "net/http"

// OpenCORS allows cross-origin access from any origin. The sitemap
// regenerate endpoint and the headless SEO endpoint are called from the
// React admin dashboard and the public site, which run on separate origins.
// Preflight OPTIONS requests are answered directly with 200.
func OpenCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
