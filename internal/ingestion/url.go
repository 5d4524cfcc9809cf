package ingestion

import (
	"context"
	"fmt"

	"github.com/jonathan/gencv/internal/fetch"
	"github.com/jonathan/gencv/internal/llm"
	"go.uber.org/zap"
)

// Options configures how descriptions are retrieved from URLs
type Options struct {
	// Fetcher retrieves pages; nil uses an uncached fetcher.
	Fetcher *fetch.CachedFetcher
	// UseBrowser renders client-side pages in headless Chrome when the
	// plain fetch yields too little text.
	UseBrowser bool
	// Extractor, when set, reduces the page to its requirements.
	Extractor llm.Client
	Logger    *zap.Logger
}

// IngestFromURL fetches a job posting and returns its cleaned text.
// Browser rendering and LLM extraction failures fall back to the plain text.
func IngestFromURL(ctx context.Context, urlStr string, opts Options) (string, *Metadata, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = fetch.NewCachedFetcher(nil, nil, logger)
	}

	result, err := fetcher.Fetch(ctx, urlStr)
	if err != nil {
		return "", nil, err
	}
	text := result.Text

	if opts.UseBrowser && !result.FromCache && fetch.ShouldUseBrowser(text) {
		logger.Info("content too short, rendering in browser",
			zap.Int("chars", len(text)),
			zap.Int("min", fetch.MinContentLength))

		html, err := fetch.Browser(ctx, urlStr, logger)
		if err != nil {
			logger.Warn("browser rendering failed, using HTTP content", zap.Error(err))
		} else if rendered, err := fetch.ExtractMainText(html,
			fetch.PlatformContentSelectors(result.Platform),
			fetch.PlatformNoiseSelectors(result.Platform)...); err != nil {
			logger.Warn("browser content extraction failed", zap.Error(err))
		} else {
			text = rendered
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", nil, fmt.Errorf("%w: %s", ErrContentExtractionFailed, urlStr)
	}

	metadata := NewMetadata(cleaned, SourceURL, urlStr)
	metadata.Platform = string(result.Platform)
	metadata.FromCache = result.FromCache

	if opts.Extractor != nil {
		extracted, err := ExtractWithLLM(ctx, opts.Extractor, cleaned)
		if err != nil {
			logger.Warn("LLM extraction failed, using cleaned text", zap.Error(err))
		} else {
			logger.Debug("LLM extraction succeeded",
				zap.Int("requirements", len(extracted.Requirements)),
				zap.Int("responsibilities", len(extracted.Responsibilities)))
			cleaned = FormatExtractedContent(extracted)
			metadata.Company = extracted.Company
			metadata.Title = extracted.Title
			metadata.AdminInfo = extracted.AdminInfo
		}
	}

	return cleaned, metadata, nil
}
