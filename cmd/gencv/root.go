package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/gencv/internal/config"
	"github.com/jonathan/gencv/internal/observability"
)

var rootCmd = &cobra.Command{
	Use:   "gencv",
	Short: "Generate resumes tailored to a job description",
	Long: `gencv picks the bullet points of your resume content that best match a job
description and fills them into a LaTeX template under a line budget.

Settings are read from ~/.gencvrc (KEY=VALUE) or a JSON file given with --config.
Command-line flags override config file values.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var (
	configPath  string
	verbose     bool
	datafile    string
	templateDir string
	embedder    string
	embedModel  string
	ollamaHost  string
	apiKey      string
	databaseURL string
)

// Settings resolved by loadSettings before any command runs
var (
	cfg    config.Config
	logger *zap.Logger
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to a config file (default ~/.gencvrc; .json files are read as JSON)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
	flags.StringVar(&datafile, "datafile", "", "Path to the resume content YAML")
	flags.StringVar(&templateDir, "template-dir", "", "Directory holding template directories")
	flags.StringVar(&embedder, "embedder", "", "Embedding provider: ollama, gemini or hash")
	flags.StringVar(&embedModel, "embed-model", "", "Embedding model name")
	flags.StringVar(&ollamaHost, "ollama-host", "", "Ollama server URL (defaults to OLLAMA_HOST)")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	flags.StringVar(&apiKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for run history
	flags.StringVar(&databaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
}

// loadSettings reads the config file, applies flag overrides and builds the logger.
func loadSettings(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg = *loaded

	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	for name, dst := range map[string]*string{
		"datafile":     &cfg.Datafile,
		"template-dir": &cfg.TemplateDir,
		"embedder":     &cfg.Embedder,
		"embed-model":  &cfg.EmbedModel,
		"ollama-host":  &cfg.OllamaHost,
		"api-key":      &cfg.APIKey,
		"db-url":       &cfg.DatabaseURL,
	} {
		if flags.Changed(name) {
			v, _ := flags.GetString(name)
			*dst = config.ExpandHome(v)
		}
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err = observability.NewLogger(cfg.Verbose)
	if err != nil {
		return err
	}
	logger.Debug("loaded settings",
		zap.String("datafile", cfg.Datafile),
		zap.String("template_dir", cfg.TemplateDir),
		zap.String("embedder", cfg.Embedder),
		zap.String("llm", cfg.LLM))
	return nil
}

// printer returns a Printer on the command's output
func printer(cmd *cobra.Command) *observability.Printer {
	return observability.NewPrinter(cmd.OutOrStdout())
}
