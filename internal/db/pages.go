package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// GetFreshPage returns the cached page for url if it was fetched within
// maxAge, or nil otherwise.
func (db *DB) GetFreshPage(ctx context.Context, url string, maxAge time.Duration) (*JobPage, error) {
	var p JobPage
	err := db.pool.QueryRow(ctx,
		`SELECT url, raw_html, parsed_text, content_hash, http_status, fetched_at
		 FROM job_pages WHERE url = $1`,
		url,
	).Scan(&p.URL, &p.RawHTML, &p.ParsedText, &p.ContentHash, &p.HTTPStatus, &p.FetchedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached page: %w", err)
	}

	if !p.IsFresh(maxAge) {
		return nil, nil
	}
	return &p, nil
}

// UpsertPage stores a fetched page, replacing any previous copy
func (db *DB) UpsertPage(ctx context.Context, page *JobPage) error {
	page.ContentHash = HashContent(page.RawHTML)

	err := db.pool.QueryRow(ctx,
		`INSERT INTO job_pages (url, raw_html, parsed_text, content_hash, http_status, fetched_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())
		 ON CONFLICT (url) DO UPDATE SET
		     raw_html = $2,
		     parsed_text = $3,
		     content_hash = $4,
		     http_status = $5,
		     fetched_at = NOW()
		 RETURNING fetched_at`,
		page.URL, page.RawHTML, page.ParsedText, page.ContentHash, page.HTTPStatus,
	).Scan(&page.FetchedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert cached page: %w", err)
	}
	return nil
}
