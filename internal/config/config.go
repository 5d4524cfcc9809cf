// Package config loads gencv settings from a JSON file or a KEY=VALUE rc file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Defaults for the selection budget
const (
	DefaultMaxLines  = 31
	DefaultLineChars = 120
)

// Config holds every setting the CLI reads. Zero values mean "use the default".
type Config struct {
	// Paths
	Datafile    string `json:"datafile,omitempty"`     // Source content YAML
	TemplateDir string `json:"template_dir,omitempty"` // Directory of template directories
	OutputDir   string `json:"output_dir,omitempty"`   // Where finished resumes go
	ProxyDir    string `json:"proxy_dir,omitempty"`    // Scratch directory for pdf output

	// Output
	Output   string `json:"output,omitempty" validate:"omitempty,oneof=pdf tex all"`
	Compiler string `json:"compiler,omitempty"`
	Verbose  bool   `json:"verbose,omitempty"`

	// Budget
	MaxLines  int `json:"max_lines,omitempty" validate:"gte=0"`
	LineChars int `json:"line_chars,omitempty" validate:"gte=0"`

	// Embeddings
	Embedder    string `json:"embedder,omitempty" validate:"omitempty,oneof=ollama gemini hash"`
	EmbedModel  string `json:"embed_model,omitempty"`
	EmbedPrefix string `json:"embed_prefix,omitempty"`

	// Query generation
	LLM      string `json:"llm,omitempty" validate:"omitempty,oneof=ollama gemini"`
	LLMModel string `json:"llm_model,omitempty"`

	// Services
	APIKey      string `json:"api_key,omitempty"` // Gemini API key
	OllamaHost  string `json:"ollama_host,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL run history, optional
	UseBrowser  bool   `json:"use_browser,omitempty"`  // Headless browser for client-rendered job pages
}

// Default returns the built-in configuration rooted at the user's home
// directory.
func Default() Config {
	return Config{
		Datafile:    ExpandHome("~/.gencv/data.yaml"),
		TemplateDir: ExpandHome("~/.gencv/templates"),
		OutputDir:   ExpandHome("~/Downloads"),
		ProxyDir:    ExpandHome("~/.gencv/proxy"),
		Output:      "pdf",
		Compiler:    "pdflatex",
		MaxLines:    DefaultMaxLines,
		LineChars:   DefaultLineChars,
		Embedder:    "ollama",
		LLM:         "ollama",
	}
}

// DefaultPath is the rc file read when no config path is given.
func DefaultPath() string {
	return ExpandHome("~/.gencvrc")
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Load reads path, or DefaultPath when path is empty, and fills every unset
// field from Default and the environment. A missing default rc file is not
// an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := &Config{}
	loaded, err := LoadConfig(path)
	switch {
	case err == nil:
		cfg = loaded
	case !explicit && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	merged := cfg.MergeWithDefaults(Default())
	merged.ApplyEnv()
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// LoadConfig parses a single config file. Files ending in .json are JSON;
// anything else is a KEY=VALUE rc file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	path = ExpandHome(path)

	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		var cfg Config
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
		return &cfg, nil
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return fromValues(values)
}

// fromValues maps rc-file keys (case-insensitive, named like the JSON keys)
// onto a Config. Unknown keys are ignored.
func fromValues(values map[string]string) (*Config, error) {
	cfg := &Config{}
	strs := map[string]*string{
		"datafile":     &cfg.Datafile,
		"template_dir": &cfg.TemplateDir,
		"output_dir":   &cfg.OutputDir,
		"proxy_dir":    &cfg.ProxyDir,
		"output":       &cfg.Output,
		"compiler":     &cfg.Compiler,
		"embedder":     &cfg.Embedder,
		"embed_model":  &cfg.EmbedModel,
		"embed_prefix": &cfg.EmbedPrefix,
		"llm":          &cfg.LLM,
		"llm_model":    &cfg.LLMModel,
		"api_key":      &cfg.APIKey,
		"ollama_host":  &cfg.OllamaHost,
		"database_url": &cfg.DatabaseURL,
	}
	ints := map[string]*int{
		"max_lines":  &cfg.MaxLines,
		"line_chars": &cfg.LineChars,
	}
	bools := map[string]*bool{
		"verbose":     &cfg.Verbose,
		"use_browser": &cfg.UseBrowser,
	}

	for key, value := range values {
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if dst, ok := strs[key]; ok {
			*dst = ExpandHome(value)
		} else if dst, ok := ints[key]; ok {
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("config error: %s must be an integer, got %q", key, value)
			}
			*dst = n
		} else if dst, ok := bools[key]; ok {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("config error: %s must be a boolean, got %q", key, value)
			}
			*dst = b
		}
	}
	return cfg, nil
}

// ApplyEnv fills service credentials from GEMINI_API_KEY, OLLAMA_HOST and
// DATABASE_URL when the config leaves them empty.
func (c *Config) ApplyEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.OllamaHost == "" {
		c.OllamaHost = os.Getenv("OLLAMA_HOST")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
}

// Validate checks enumerated fields and numeric ranges.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.Embedder == "gemini" && c.APIKey == "" {
		return fmt.Errorf("config error: the gemini embedder needs api_key or GEMINI_API_KEY")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	for _, f := range []struct{ dst, def *string }{
		{&result.Datafile, &defaults.Datafile},
		{&result.TemplateDir, &defaults.TemplateDir},
		{&result.OutputDir, &defaults.OutputDir},
		{&result.ProxyDir, &defaults.ProxyDir},
		{&result.Output, &defaults.Output},
		{&result.Compiler, &defaults.Compiler},
		{&result.Embedder, &defaults.Embedder},
		{&result.EmbedModel, &defaults.EmbedModel},
		{&result.EmbedPrefix, &defaults.EmbedPrefix},
		{&result.LLM, &defaults.LLM},
		{&result.LLMModel, &defaults.LLMModel},
		{&result.APIKey, &defaults.APIKey},
		{&result.OllamaHost, &defaults.OllamaHost},
		{&result.DatabaseURL, &defaults.DatabaseURL},
	} {
		if *f.dst == "" {
			*f.dst = *f.def
		}
	}

	if result.MaxLines == 0 {
		result.MaxLines = defaults.MaxLines
	}
	if result.LineChars == 0 {
		result.LineChars = defaults.LineChars
	}

	// Bools cannot distinguish unset from false, so CLI flags decide them.
	return result
}
