// Copyright (c) 2025-2026 Cybaem Tech
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybaemtech/site-go/internal/config"
	"github.com/cybaemtech/site-go/internal/seo"
	"github.com/cybaemtech/site-go/internal/service"
	"github.com/cybaemtech/site-go/internal/store"
)

func testSitemapService(t *testing.T) *service.SitemapService {
	t.Helper()

	cfg := &config.Config{SQLitePath: filepath.Join(t.TempDir(), "test.db")}
	db, err := store.NewDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db, cfg))

	return service.NewSitemapService(store.New(db), seo.ProductionBaseURL,
		filepath.Join(t.TempDir(), "sitemap.xml"), nil)
}

func TestSchedulerStartStop(t *testing.T) {
	s := New(testSitemapService(t), "0 3 * * *", nil)

	require.NoError(t, s.Start())
	s.Stop()
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	s := New(testSitemapService(t), "not a cron spec", nil)

	err := s.Start()
	assert.Error(t, err)
}
