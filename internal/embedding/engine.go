// Package embedding turns text into vectors and compares them.
// Supports Ollama (local), Google Gemini (cloud) and an offline hashing engine.
package embedding

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Engine generates vector embeddings for text.
type Engine interface {
	// Embed generates an embedding for a single text
	Embed(ctx context.Context, text string) ([]float32, error)
	// Name identifies the engine and model, e.g. "ollama:mxbai-embed-large"
	Name() string
}

// Provider names accepted by NewEngine.
const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
	ProviderHash   = "hash"
)

// DefaultPrefix is the retrieval instruction mxbai-embed-large expects in
// front of every input.
const DefaultPrefix = "Represent this sentence for searching relevant passages: "

// Config holds embedding engine configuration.
type Config struct {
	Provider string
	// Model overrides the provider's default model
	Model string
	// Prefix is prepended to every text before embedding
	Prefix string
	// OllamaHost overrides OLLAMA_HOST
	OllamaHost string
	// APIKey is the Gemini API key
	APIKey string
	// Dimensions is only used by the hashing engine
	Dimensions int
}

// DefaultConfig returns the configuration the original model was tuned for.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderOllama,
		Model:      DefaultOllamaModel,
		Prefix:     DefaultPrefix,
		Dimensions: DefaultHashDimensions,
	}
}

// NewEngine creates an embedding engine based on configuration.
func NewEngine(ctx context.Context, cfg Config) (Engine, error) {
	var engine Engine
	var err error

	switch strings.ToLower(cfg.Provider) {
	case ProviderOllama, "":
		host := cfg.OllamaHost
		if host == "" {
			host = os.Getenv("OLLAMA_HOST")
		}
		engine, err = NewOllamaEngine(host, cfg.Model)
	case ProviderGemini:
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		engine, err = NewGeminiEngine(ctx, apiKey, cfg.Model)
	case ProviderHash:
		engine = NewHashEngine(cfg.Dimensions)
	default:
		return nil, &Error{Message: fmt.Sprintf("unsupported embedding provider: %s (use 'ollama', 'gemini' or 'hash')", cfg.Provider)}
	}
	if err != nil {
		return nil, err
	}

	if cfg.Prefix != "" {
		engine = WithPrefix(engine, cfg.Prefix)
	}
	return engine, nil
}

type prefixedEngine struct {
	Engine
	prefix string
}

// WithPrefix wraps an engine so that every text is embedded with prefix in front of it.
func WithPrefix(engine Engine, prefix string) Engine {
	return &prefixedEngine{Engine: engine, prefix: prefix}
}

func (p *prefixedEngine) Embed(ctx context.Context, text string) ([]float32, error) {
	return p.Engine.Embed(ctx, p.prefix+text)
}
