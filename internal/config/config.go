// Copyright (c) 2025-2026 Cybaem Tech
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
//
// The DB_* variables follow the deployment's existing database contract: when
// DB_HOST is set the service connects to MySQL, otherwise it falls back to a
// local SQLite file (development and tests).
type Config struct {
	DBHost     string `env:"DB_HOST"`
	DBPort     int    `env:"DB_PORT" envDefault:"3306"`
	DBName     string `env:"DB_NAME"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	SQLitePath string `env:"SITE_SQLITE_PATH" envDefault:"./data/site.db"`

	ServerHost string `env:"SITE_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"SITE_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"SITE_ENV" envDefault:"development"`
	LogLevel   string `env:"SITE_LOG_LEVEL" envDefault:"info"`

	// BaseURL forces the canonical site origin. When empty the origin is
	// derived from the incoming request's Host header, falling back to the
	// production domain for localhost and hostless requests.
	BaseURL string `env:"SITE_BASE_URL"`

	// Sitemap file output and regeneration schedule.
	SitemapPath string `env:"SITE_SITEMAP_PATH" envDefault:"./public/sitemap.xml"`
	SitemapCron string `env:"SITE_SITEMAP_CRON" envDefault:"0 3 * * *"`

	// Cache configuration
	RedisURL    string `env:"SITE_REDIS_URL"`                       // Optional Redis URL for distributed caching
	CachePrefix string `env:"SITE_CACHE_PREFIX" envDefault:"site:"` // Redis key prefix
	CacheTTL    int    `env:"SITE_CACHE_TTL" envDefault:"900"`      // Metadata cache TTL in seconds
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseMySQL returns true if a MySQL connection is configured.
func (c Config) UseMySQL() bool {
	return c.DBHost != ""
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// A partial MySQL configuration is a deployment mistake, not a fallback case.
	if cfg.UseMySQL() {
		if cfg.DBName == "" || cfg.DBUser == "" {
			return nil, fmt.Errorf("DB_HOST is set but DB_NAME/DB_USER are missing")
		}
		if cfg.DBPort <= 0 || cfg.DBPort > 65535 {
			return nil, fmt.Errorf("DB_PORT %d is out of range", cfg.DBPort)
		}
	}

	return cfg, nil
}
