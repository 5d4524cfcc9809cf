package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

// OllamaClient implements Client for a local Ollama server
type OllamaClient struct {
	client *api.Client
	config *Config
}

// NewOllamaClient creates a client for the configured host, falling back to
// OLLAMA_HOST and then localhost.
func NewOllamaClient(config *Config) (*OllamaClient, error) {
	host := config.Host
	if host == "" {
		host = os.Getenv("OLLAMA_HOST")
	}
	if host == "" {
		host = "http://localhost:11434"
	}

	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama host %q: %w", host, err)
	}

	httpClient := &http.Client{Timeout: 5 * time.Minute}
	return &OllamaClient{
		client: api.NewClient(base, httpClient),
		config: config,
	}, nil
}

// GenerateContent generates text content using the specified model tier
func (c *OllamaClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.chat(ctx, prompt, tier, "")
}

// GenerateJSON generates JSON content using the specified model tier
func (c *OllamaClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	text, err := c.chat(ctx, prompt, tier, "json")
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

func (c *OllamaClient) chat(ctx context.Context, prompt string, tier ModelTier, format string) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	stream := false
	req := &api.ChatRequest{
		Model:    modelName,
		Messages: []api.Message{{Role: "user", Content: prompt}},
		Stream:   &stream,
		Options:  map[string]any{"temperature": 0.1},
	}
	if format != "" {
		req.Format = []byte(`"` + format + `"`)
	}

	var sb strings.Builder
	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		sb.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("empty response from model %s", modelName)
	}
	return sb.String(), nil
}

// GetModel returns the model name for a tier
func (c *OllamaClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *OllamaClient) Close() error {
	return nil
}
