// Copyright (c) 2025-2026 Cybaem Tech
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSet(t *testing.T) {
	m := NewMemory(time.Minute)
	defer func() { _ = m.Close() }()
	ctx := context.Background()

	_, ok := m.Get(ctx, "missing")
	assert.False(t, ok)

	m.Set(ctx, "k", []byte("v"), time.Minute)
	got, ok := m.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory(time.Hour) // janitor never fires during the test
	defer func() { _ = m.Close() }()
	ctx := context.Background()

	m.Set(ctx, "k", []byte("v"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	// Expired entries are rejected on read even before the janitor runs.
	_, ok := m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryDelete(t *testing.T) {
	m := NewMemory(time.Minute)
	defer func() { _ = m.Close() }()
	ctx := context.Background()

	m.Set(ctx, "k", []byte("v"), time.Minute)
	m.Delete(ctx, "k")

	_, ok := m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryZeroTTLNotStored(t *testing.T) {
	m := NewMemory(time.Minute)
	defer func() { _ = m.Close() }()
	ctx := context.Background()

	m.Set(ctx, "k", []byte("v"), 0)
	_, ok := m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryStats(t *testing.T) {
	m := NewMemory(time.Minute)
	defer func() { _ = m.Close() }()
	ctx := context.Background()

	m.Set(ctx, "k", []byte("v"), time.Minute)
	m.Get(ctx, "k")
	m.Get(ctx, "nope")

	stats := m.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Items)
}
