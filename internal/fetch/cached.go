package fetch

import (
	"context"
	"time"

	"github.com/jonathan/gencv/internal/db"
	"go.uber.org/zap"
)

// PageStore caches fetched pages. *db.DB satisfies it.
type PageStore interface {
	GetFreshPage(ctx context.Context, url string, maxAge time.Duration) (*db.JobPage, error)
	UpsertPage(ctx context.Context, page *db.JobPage) error
}

// CachedFetcher fetches job pages through an optional PageStore.
type CachedFetcher struct {
	store    PageStore
	options  *Options
	cacheTTL time.Duration
	logger   *zap.Logger
}

// CachedResult extends Result with cache metadata.
type CachedResult struct {
	*Result
	Platform  Platform
	FromCache bool
}

// NewCachedFetcher creates a fetcher. A nil store disables caching.
func NewCachedFetcher(store PageStore, options *Options, logger *zap.Logger) *CachedFetcher {
	if options == nil {
		options = DefaultOptions()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedFetcher{
		store:    store,
		options:  options,
		cacheTTL: db.DefaultPageCacheTTL,
		logger:   logger,
	}
}

// WithTTL overrides how long cached pages are served.
func (f *CachedFetcher) WithTTL(ttl time.Duration) *CachedFetcher {
	f.cacheTTL = ttl
	return f
}

// Fetch retrieves a job page and extracts its text with the selectors of the
// detected platform. A fresh cached copy is returned when available. Cache
// failures are logged and never fail the fetch.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*CachedResult, error) {
	platform := DetectPlatform(urlStr)

	if f.store != nil {
		cached, err := f.store.GetFreshPage(ctx, urlStr, f.cacheTTL)
		if err != nil {
			f.logger.Warn("page cache lookup failed", zap.String("url", urlStr), zap.Error(err))
		} else if cached != nil {
			f.logger.Debug("page served from cache", zap.String("url", urlStr))
			return &CachedResult{
				Result: &Result{
					URL:        cached.URL,
					HTML:       cached.RawHTML,
					Text:       cached.ParsedText,
					StatusCode: cached.HTTPStatus,
				},
				Platform:  platform,
				FromCache: true,
			}, nil
		}
	}

	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		return nil, err
	}
	f.logger.Debug("fetched page",
		zap.String("url", urlStr),
		zap.String("platform", string(platform)),
		zap.Int("bytes", len(result.HTML)))

	text, err := ExtractMainText(result.HTML, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)...)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "content extraction failed", Cause: err}
	}
	result.Text = text

	if f.store != nil {
		page := &db.JobPage{
			URL:        urlStr,
			RawHTML:    result.HTML,
			ParsedText: result.Text,
			HTTPStatus: result.StatusCode,
		}
		if err := f.store.UpsertPage(ctx, page); err != nil {
			f.logger.Warn("failed to cache page", zap.String("url", urlStr), zap.Error(err))
		}
	}

	return &CachedResult{Result: result, Platform: platform}, nil
}
