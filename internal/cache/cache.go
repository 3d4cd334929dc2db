// Copyright (c) 2025-2026 Cybaem Tech
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides a small TTL cache with in-memory and Redis backends,
// used for resolved page metadata.
package cache

import (
	"context"
	"time"
)

// Cache is the backend interface. Values are opaque byte slices; a miss is
// reported via the boolean, never via an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Close() error
}

// Stats holds hit/miss counters for a cache backend.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Items  int   `json:"items"`
}
