// Copyright (c) 2025-2026 Cybaem Tech
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic sitemap regeneration job.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/cybaemtech/site-go/internal/service"
)

// Scheduler triggers sitemap regeneration on a cron schedule. It shares the
// single-writer SitemapService with the manual endpoint and the publish side
// effect, so overlapping triggers serialize on the file write.
type Scheduler struct {
	cron    *cron.Cron
	sitemap *service.SitemapService
	spec    string
	logger  *slog.Logger
}

// New creates a scheduler regenerating the sitemap per the cron spec.
func New(sitemap *service.SitemapService, spec string, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:    cron.New(),
		sitemap: sitemap,
		spec:    spec,
		logger:  logger,
	}
}

// Start registers the regeneration job and starts the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.run)
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("scheduler started", "sitemap_cron", s.spec)
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := s.sitemap.Regenerate(ctx); err != nil {
		s.logger.Error("scheduled sitemap regeneration failed", "error", err)
	}
}
