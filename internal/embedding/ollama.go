package embedding

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"
)

// DefaultOllamaModel is the embedding model pulled by a stock install.
const DefaultOllamaModel = "mxbai-embed-large"

const defaultOllamaHost = "http://localhost:11434"

// OllamaEngine generates embeddings using a local Ollama server.
type OllamaEngine struct {
	client *api.Client
	model  string
}

// NewOllamaEngine creates a new Ollama embedding engine.
func NewOllamaEngine(host, model string) (*OllamaEngine, error) {
	if host == "" {
		host = defaultOllamaHost
	}
	if model == "" {
		model = DefaultOllamaModel
	}

	base, err := url.Parse(host)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("invalid Ollama host %q", host), Cause: err}
	}

	httpClient := &http.Client{Timeout: 60 * time.Second}
	return &OllamaEngine{
		client: api.NewClient(base, httpClient),
		model:  model,
	}, nil
}

// Embed generates an embedding for a single text.
func (e *OllamaEngine) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.Embed(ctx, &api.EmbedRequest{
		Model: e.model,
		Input: text,
	})
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("ollama embed with %s failed", e.model), Cause: err}
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0]) == 0 {
		return nil, &Error{Message: fmt.Sprintf("ollama returned no embedding for model %s", e.model)}
	}
	return resp.Embeddings[0], nil
}

// Name returns the engine identifier.
func (e *OllamaEngine) Name() string {
	return ProviderOllama + ":" + e.model
}
