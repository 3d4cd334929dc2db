// Copyright (c) 2025-2026 Cybaem Tech
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cybaemtech/site-go/internal/model"
)

// Queries wraps a database handle with typed query methods.
// All SQL sticks to the portable subset shared by MySQL and SQLite.
type Queries struct {
	db *sql.DB
}

// New creates a Queries instance for the given database.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// DB returns the underlying database handle.
func (q *Queries) DB() *sql.DB {
	return q.db
}

const postColumns = `id, slug, title, excerpt, body, type, status,
	author_name, author_title, author_photo, author_linkedin,
	tags, featured_image, include_in_sitemap, views, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (model.Post, error) {
	var p model.Post
	err := row.Scan(
		&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Body, &p.Type, &p.Status,
		&p.AuthorName, &p.AuthorTitle, &p.AuthorPhoto, &p.AuthorLinkedIn,
		&p.Tags, &p.FeaturedImage, &p.IncludeInSitemap, &p.Views,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// GetPostByID returns a post by ID regardless of status.
func (q *Queries) GetPostByID(ctx context.Context, id int64) (model.Post, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = ?`, id)
	return scanPost(row)
}

// GetPublishedPostBySlug returns a published post by slug. Draft posts are
// indistinguishable from missing ones here: public rendering treats both as
// not found.
func (q *Queries) GetPublishedPostBySlug(ctx context.Context, slug string) (model.Post, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE slug = ? AND status = ? LIMIT 1`,
		slug, model.PostStatusPublished)
	return scanPost(row)
}

// ListPosts returns all posts ordered by creation time, newest first.
func (q *Queries) ListPosts(ctx context.Context) ([]model.Post, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var posts []model.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListSitemapPosts returns sitemap-eligible posts: published with
// include_in_sitemap set, ordered by creation time descending.
func (q *Queries) ListSitemapPosts(ctx context.Context) ([]model.Post, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts
		 WHERE status = ? AND include_in_sitemap = 1
		 ORDER BY created_at DESC, id DESC`,
		model.PostStatusPublished)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var posts []model.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// CreatePostParams holds the writable post columns.
type CreatePostParams struct {
	Slug             string
	Title            string
	Excerpt          string
	Body             string
	Type             string
	Status           string
	AuthorName       string
	AuthorTitle      string
	AuthorPhoto      string
	AuthorLinkedIn   string
	Tags             string
	FeaturedImage    string
	IncludeInSitemap bool
	CreatedAt        time.Time
}

// CreatePost inserts a new post and returns it with its assigned ID.
func (q *Queries) CreatePost(ctx context.Context, p CreatePostParams) (model.Post, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO posts (slug, title, excerpt, body, type, status,
			author_name, author_title, author_photo, author_linkedin,
			tags, featured_image, include_in_sitemap, views, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, NULL)`,
		p.Slug, p.Title, p.Excerpt, p.Body, p.Type, p.Status,
		p.AuthorName, p.AuthorTitle, p.AuthorPhoto, p.AuthorLinkedIn,
		p.Tags, p.FeaturedImage, p.IncludeInSitemap, p.CreatedAt)
	if err != nil {
		return model.Post{}, fmt.Errorf("inserting post: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Post{}, fmt.Errorf("reading post id: %w", err)
	}
	return q.GetPostByID(ctx, id)
}

// UpdatePostParams holds the updatable post columns.
type UpdatePostParams struct {
	ID               int64
	Slug             string
	Title            string
	Excerpt          string
	Body             string
	Type             string
	Status           string
	AuthorName       string
	AuthorTitle      string
	AuthorPhoto      string
	AuthorLinkedIn   string
	Tags             string
	FeaturedImage    string
	IncludeInSitemap bool
	UpdatedAt        time.Time
}

// UpdatePost updates an existing post and returns the fresh row.
func (q *Queries) UpdatePost(ctx context.Context, p UpdatePostParams) (model.Post, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE posts SET slug = ?, title = ?, excerpt = ?, body = ?, type = ?, status = ?,
			author_name = ?, author_title = ?, author_photo = ?, author_linkedin = ?,
			tags = ?, featured_image = ?, include_in_sitemap = ?, updated_at = ?
		 WHERE id = ?`,
		p.Slug, p.Title, p.Excerpt, p.Body, p.Type, p.Status,
		p.AuthorName, p.AuthorTitle, p.AuthorPhoto, p.AuthorLinkedIn,
		p.Tags, p.FeaturedImage, p.IncludeInSitemap, p.UpdatedAt, p.ID)
	if err != nil {
		return model.Post{}, fmt.Errorf("updating post: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return model.Post{}, sql.ErrNoRows
	}
	return q.GetPostByID(ctx, p.ID)
}

// SetPostStatus updates only the status and touches updated_at.
func (q *Queries) SetPostStatus(ctx context.Context, id int64, status string, updatedAt time.Time) error {
	res, err := q.db.ExecContext(ctx,
		`UPDATE posts SET status = ?, updated_at = ? WHERE id = ?`,
		status, updatedAt, id)
	if err != nil {
		return fmt.Errorf("setting post status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeletePost removes a post and (via FK cascade) its SEO override.
// Hard delete: the original system keeps no tombstones.
func (q *Queries) DeletePost(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// IncrementPostViews bumps the post view counter.
func (q *Queries) IncrementPostViews(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE posts SET views = views + 1 WHERE id = ?`, id)
	return err
}

// GetPostSEO returns the SEO override row for a post, or sql.ErrNoRows when
// the post has none.
func (q *Queries) GetPostSEO(ctx context.Context, postID int64) (model.PostSEO, error) {
	var s model.PostSEO
	err := q.db.QueryRowContext(ctx,
		`SELECT post_id, meta_title, meta_description, meta_keywords, meta_author, robots,
			geo_region, geo_placename, geo_position, icbm,
			og_type, og_url, og_title, og_description, og_image, og_site_name,
			twitter_card_type, twitter_url, twitter_title, twitter_description, twitter_image,
			canonical_url, hreflang,
			schema_organization, schema_website, schema_breadcrumb, schema_article, schema_faq,
			google_analytics_id, google_tag_manager_id
		 FROM post_seo WHERE post_id = ?`, postID).Scan(
		&s.PostID, &s.MetaTitle, &s.MetaDescription, &s.MetaKeywords, &s.MetaAuthor, &s.Robots,
		&s.GeoRegion, &s.GeoPlacename, &s.GeoPosition, &s.ICBM,
		&s.OGType, &s.OGURL, &s.OGTitle, &s.OGDescription, &s.OGImage, &s.OGSiteName,
		&s.TwitterCardType, &s.TwitterURL, &s.TwitterTitle, &s.TwitterDescription, &s.TwitterImage,
		&s.CanonicalURL, &s.Hreflang,
		&s.SchemaOrganization, &s.SchemaWebsite, &s.SchemaBreadcrumb, &s.SchemaArticle, &s.SchemaFAQ,
		&s.GoogleAnalyticsID, &s.GoogleTagManagerID,
	)
	return s, err
}

// UpsertPostSEO replaces the SEO override row for a post. Delete-then-insert
// inside a transaction keeps the statement portable across MySQL and SQLite
// (their upsert syntaxes differ).
func (q *Queries) UpsertPostSEO(ctx context.Context, s model.PostSEO) error {
	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM post_seo WHERE post_id = ?`, s.PostID); err != nil {
		return fmt.Errorf("clearing seo override: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO post_seo (post_id, meta_title, meta_description, meta_keywords, meta_author, robots,
			geo_region, geo_placename, geo_position, icbm,
			og_type, og_url, og_title, og_description, og_image, og_site_name,
			twitter_card_type, twitter_url, twitter_title, twitter_description, twitter_image,
			canonical_url, hreflang,
			schema_organization, schema_website, schema_breadcrumb, schema_article, schema_faq,
			google_analytics_id, google_tag_manager_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.PostID, s.MetaTitle, s.MetaDescription, s.MetaKeywords, s.MetaAuthor, s.Robots,
		s.GeoRegion, s.GeoPlacename, s.GeoPosition, s.ICBM,
		s.OGType, s.OGURL, s.OGTitle, s.OGDescription, s.OGImage, s.OGSiteName,
		s.TwitterCardType, s.TwitterURL, s.TwitterTitle, s.TwitterDescription, s.TwitterImage,
		s.CanonicalURL, s.Hreflang,
		s.SchemaOrganization, s.SchemaWebsite, s.SchemaBreadcrumb, s.SchemaArticle, s.SchemaFAQ,
		s.GoogleAnalyticsID, s.GoogleTagManagerID)
	if err != nil {
		return fmt.Errorf("inserting seo override: %w", err)
	}

	return tx.Commit()
}

// DeletePostSEO removes the SEO override row for a post if present.
func (q *Queries) DeletePostSEO(ctx context.Context, postID int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM post_seo WHERE post_id = ?`, postID)
	return err
}

// CreateEventParams holds one event-log row.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

// CreateEvent appends a row to the event log.
func (q *Queries) CreateEvent(ctx context.Context, e CreateEventParams) error {
	if e.Category == "" {
		e.Category = "app"
	}
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO events (level, category, message, metadata, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.Level, e.Category, e.Message, e.Metadata, e.CreatedAt)
	return err
}

// CountEvents returns the number of event-log rows (used by tests and the
// health surface).
func (q *Queries) CountEvents(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n)
	return n, err
}
