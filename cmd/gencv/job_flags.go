package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/gencv/internal/config"
	"github.com/jonathan/gencv/internal/ingestion"
	"github.com/jonathan/gencv/internal/pipeline"
)

// jobFlags are the flags shared by commands that select bullets for a job
type jobFlags struct {
	descFile   string
	jobURL     string
	asQuery    bool
	keywords   bool
	useBrowser bool
	extract    bool
	llm        string
	llmModel   string
	maxLines   int
	lineChars  int
}

func (f *jobFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.descFile, "desc-file", "", "Read the job description from a file")
	cmd.Flags().StringVar(&f.jobURL, "job-url", "", "Fetch the job description from a URL")
	cmd.Flags().BoolVar(&f.asQuery, "as-query", false, "Use the description as the search query as is")
	cmd.Flags().BoolVar(&f.keywords, "keywords", false, "Also extract the description's keywords")
	cmd.Flags().BoolVar(&f.useBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	cmd.Flags().BoolVar(&f.extract, "extract", false, "Reduce fetched job pages to their requirements with the language model")
	cmd.Flags().StringVar(&f.llm, "llm", "", "Query generation provider: ollama or gemini")
	cmd.Flags().StringVar(&f.llmModel, "llm-model", "", "Query generation model")
	cmd.Flags().IntVar(&f.maxLines, "max-lines", 0, "Maximum lines allowed")
	cmd.Flags().IntVar(&f.lineChars, "line-chars", 0, "Characters that fit on one line")
}

// options builds pipeline options from "<template> [description]" and the flags.
func (f *jobFlags) options(cmd *cobra.Command, args []string, settings config.Config) (pipeline.Options, error) {
	flags := cmd.Flags()
	if flags.Changed("llm") {
		settings.LLM = f.llm
	}
	if flags.Changed("llm-model") {
		settings.LLMModel = f.llmModel
	}
	if flags.Changed("max-lines") {
		settings.MaxLines = f.maxLines
	}
	if flags.Changed("line-chars") {
		settings.LineChars = f.lineChars
	}
	if flags.Changed("use-browser") {
		settings.UseBrowser = f.useBrowser
	}
	if err := settings.Validate(); err != nil {
		return pipeline.Options{}, err
	}

	opts := pipeline.Options{
		Config:              settings,
		Template:            args[0],
		Keywords:            f.keywords,
		ExtractRequirements: f.extract,
		Logger:              logger,
		Out:                 cmd.OutOrStdout(),
	}

	var desc string
	if len(args) > 1 {
		desc = args[1]
	}
	if f.asQuery {
		if desc == "" {
			return pipeline.Options{}, fmt.Errorf("--as-query needs the query as the description argument")
		}
		if f.descFile != "" || f.jobURL != "" {
			return pipeline.Options{}, fmt.Errorf("--as-query cannot be combined with --desc-file or --job-url")
		}
		opts.Query = desc
		return opts, nil
	}

	opts.Source = ingestion.Source{
		Text: desc,
		File: config.ExpandHome(f.descFile),
		URL:  f.jobURL,
	}
	return opts, nil
}
