package pipeline

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/gencv/internal/config"
	"github.com/jonathan/gencv/internal/embedding"
	"github.com/jonathan/gencv/internal/fetch"
	"github.com/jonathan/gencv/internal/llm"
)

// EmbeddingConfig translates the CLI configuration into an engine config.
// The retrieval prefix is only applied to the default Ollama model unless
// one is configured explicitly.
func EmbeddingConfig(cfg config.Config) embedding.Config {
	ec := embedding.Config{
		Provider:   strings.ToLower(cfg.Embedder),
		Model:      cfg.EmbedModel,
		Prefix:     cfg.EmbedPrefix,
		OllamaHost: cfg.OllamaHost,
		APIKey:     cfg.APIKey,
		Dimensions: embedding.DefaultHashDimensions,
	}
	if ec.Provider == "" {
		ec.Provider = embedding.ProviderOllama
	}
	if ec.Prefix == "" && ec.Provider == embedding.ProviderOllama &&
		(ec.Model == "" || ec.Model == embedding.DefaultOllamaModel) {
		ec.Prefix = embedding.DefaultPrefix
	}
	return ec
}

// NewLLMClient creates the query generation client named by the configuration
func NewLLMClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	lc := llm.ConfigFor(llm.Provider(strings.ToLower(cfg.LLM)), cfg.LLMModel)
	lc.Host = cfg.OllamaHost
	return llm.NewClient(ctx, lc, cfg.APIKey)
}

func newFetcher(pages fetch.PageStore, logger *zap.Logger) *fetch.CachedFetcher {
	return fetch.NewCachedFetcher(pages, nil, logger)
}
