// Package pipeline provides the high-level orchestration for the resume generation process.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/gencv/internal/config"
	"github.com/jonathan/gencv/internal/content"
	"github.com/jonathan/gencv/internal/db"
	"github.com/jonathan/gencv/internal/embedding"
	"github.com/jonathan/gencv/internal/ingestion"
	"github.com/jonathan/gencv/internal/llm"
	"github.com/jonathan/gencv/internal/observability"
	"github.com/jonathan/gencv/internal/ranking"
	"github.com/jonathan/gencv/internal/rendering"
	"github.com/jonathan/gencv/internal/selection"
	"github.com/jonathan/gencv/internal/types"
	"github.com/jonathan/gencv/internal/validation"
)

// Progress categories
const (
	CategoryIngestion = "ingestion"
	CategorySelection = "selection"
	CategoryRendering = "rendering"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Options holds configuration for running the pipeline
type Options struct {
	Config   config.Config
	Template string
	// Source is the job description. Ignored when Query is set.
	Source ingestion.Source
	// Query bypasses query generation
	Query string
	// OutName defaults to "<template>_<timestamp>"
	OutName string
	// Keywords also extracts the description's keywords for display
	Keywords bool
	// ExtractRequirements reduces fetched job pages to their requirements
	// with the language model before the query is generated
	ExtractRequirements bool

	// Embedder, LLM and Store override what Config would construct
	Embedder embedding.Engine
	LLM      llm.Client
	Store    RunStore

	Logger *zap.Logger
	// Printer receives verbose output; nil prints nothing
	Printer *observability.Printer
	// Out receives "Step n/N" lines; nil uses os.Stdout
	Out        io.Writer
	OnProgress ProgressCallback
	Now        func() time.Time
}

// Selection is everything known once bullets have been chosen
type Selection struct {
	Description string
	Metadata    *ingestion.Metadata
	Query       string
	Keywords    []string
	Model       *content.Model
	Template    *rendering.ResumeTemplate
	Params      selection.Params
	Result      *selection.Result
	Plan        *types.ResumePlan
	Experiences []types.ExperienceData
}

// Result is the outcome of a full run
type Result struct {
	*Selection
	RunID  uuid.UUID
	Body   string
	Output *validation.OutputResult
}

// runner holds the state shared by the steps of one invocation
type runner struct {
	opts   Options
	cfg    config.Config
	logger *zap.Logger
	out    io.Writer
	total  int
	step   int

	client   llm.Client
	store    RunStore
	runID    uuid.UUID
	recorded bool
}

func newRunner(opts Options, total int) *runner {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	cfg := opts.Config
	if cfg.MaxLines == 0 {
		cfg.MaxLines = config.DefaultMaxLines
	}
	if cfg.LineChars == 0 {
		cfg.LineChars = config.DefaultLineChars
	}
	return &runner{opts: opts, cfg: cfg, logger: logger, out: out, total: total, client: opts.LLM}
}

// progress prints the next step line
//
//nolint:errcheck // writing progress to stdout; errors are not recoverable
func (r *runner) progress(format string, args ...any) {
	r.step++
	fmt.Fprintf(r.out, "Step %d/%d: %s...\n", r.step, r.total, fmt.Sprintf(format, args...))
}

// emitProgress calls the progress callback if configured
func (r *runner) emitProgress(step, category, message string, content any) {
	if r.opts.OnProgress == nil {
		return
	}
	event := ProgressEvent{Step: step, Category: category, Message: message, Content: content}
	if r.recorded {
		event.RunID = r.runID.String()
	}
	r.opts.OnProgress(event)
}

// Select ingests the description, generates the query and chooses bullets
// without rendering anything.
func Select(ctx context.Context, opts Options) (*Selection, error) {
	r := newRunner(opts, 6)
	defer r.close()
	r.connect(ctx)
	return r.selectBullets(ctx)
}

// Run executes the full pipeline: selection, rendering and output. When a
// store is available the run and its artifacts are recorded.
func Run(ctx context.Context, opts Options) (res *Result, err error) {
	r := newRunner(opts, 7)
	defer r.close()
	r.connect(ctx)
	r.startRun(ctx)
	defer func() { r.completeRun(ctx, err) }()

	sel, err := r.selectBullets(ctx)
	if err != nil {
		return nil, err
	}

	r.progress("Rendering and writing output")
	body := sel.Template.Render(sel.Experiences, r.logger)
	r.saveText(ctx, db.StepResumeTex, body)

	mode, err := validation.ParseMode(r.cfg.Output)
	if err != nil {
		return nil, err
	}
	outName := opts.OutName
	if outName == "" {
		outName = validation.DefaultOutName(opts.Template, r.opts.Now())
	}
	output, err := validation.WriteOutput(ctx, validation.OutputRequest{
		Body:      body,
		OutputDir: r.cfg.OutputDir,
		ProxyDir:  r.cfg.ProxyDir,
		OutName:   outName,
		Mode:      mode,
		Compiler:  r.cfg.Compiler,
		Logger:    r.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("output failed: %w", err)
	}
	r.emitProgress(db.StepResumeTex, CategoryRendering, "Wrote resume", output)

	if r.opts.Printer != nil {
		if output.PDFPath != "" {
			r.opts.Printer.PrintSuccess("Resume written to %s", output.PDFPath)
		} else {
			r.opts.Printer.PrintSuccess("Resume written to %s", output.TexPath)
		}
		if output.Pages > 1 {
			r.opts.Printer.PrintNote("The resume is %d pages long; consider lowering max_lines", output.Pages)
		}
	}

	return &Result{Selection: sel, RunID: r.runID, Body: body, Output: output}, nil
}

func (r *runner) selectBullets(ctx context.Context) (*Selection, error) {
	sel := &Selection{}

	// Step 1: job description
	query := r.opts.Query
	if query != "" {
		r.progress("Using the given query")
	} else {
		r.progress("Reading job description")
		if err := r.ingest(ctx, sel); err != nil {
			return nil, err
		}
	}

	// Step 2: query
	if query == "" {
		r.progress("Generating search query")
		client, err := r.llmClient(ctx)
		if err != nil {
			return nil, err
		}
		query, err = llm.GenerateQuery(ctx, client, sel.Description)
		if err != nil {
			return nil, err
		}
		if r.opts.Keywords {
			keywords, err := llm.ExtractKeywords(ctx, client, sel.Description)
			if err != nil {
				r.logger.Warn("keyword extraction failed", zap.Error(err))
			}
			sel.Keywords = keywords
		}
	} else {
		r.progress("Skipping query generation")
	}
	sel.Query = query
	r.updateRunQuery(ctx, query)
	r.saveText(ctx, db.StepQuery, query)
	if len(sel.Keywords) > 0 {
		r.saveJSON(ctx, db.StepKeywords, sel.Keywords)
	}
	r.emitProgress(db.StepQuery, CategoryIngestion, "Generated search query", query)
	if r.opts.Printer != nil {
		r.opts.Printer.PrintQuery(query, sel.Keywords)
	}

	// Step 3: content and template
	r.progress("Loading content and template %s", r.opts.Template)
	model, err := content.Load(r.cfg.Datafile)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	tmpl, err := rendering.LoadTemplateDir(r.cfg.TemplateDir, r.opts.Template)
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	sel.Model = model
	sel.Template = tmpl
	r.logger.Debug("loaded content",
		zap.Int("experiences", len(model.Experiences)),
		zap.Int("bullets", len(model.Bullets)),
		zap.Any("quotas", tmpl.Template.Quotas()))

	// Step 4: scoring
	r.progress("Scoring %d bullets", len(model.Bullets))
	engine := r.opts.Embedder
	if engine == nil {
		engine, err = embedding.NewEngine(ctx, EmbeddingConfig(r.cfg))
		if err != nil {
			return nil, err
		}
	}
	scored, err := ranking.Score(ctx, engine, model, query, embedding.DefaultConcurrency)
	if err != nil {
		return nil, err
	}

	// Step 5: selection
	r.progress("Selecting bullets")
	sel.Params = selection.Params{
		MaxLines:  r.cfg.MaxLines,
		LineChars: r.cfg.LineChars,
		Quotas:    tmpl.Template.Quotas(),
	}
	selector, err := selection.NewEngine(model, sel.Params, r.logger)
	if err != nil {
		return nil, err
	}
	sel.Result, err = selector.Select(scored)
	if err != nil {
		return nil, fmt.Errorf("selection failed: %w", err)
	}

	// Step 6: materialize
	r.progress("Materializing %d selected bullets", len(sel.Result.Selected))
	sel.Experiences = selection.Materialize(model, sel.Result.Selected)
	sel.Plan = selection.BuildPlan(model, query, sel.Params, sel.Result)
	r.saveJSON(ctx, db.StepSelection, sel.Plan)
	r.emitProgress(db.StepSelection, CategorySelection,
		fmt.Sprintf("Selected %d bullets (%d lines)", len(sel.Result.Selected), sel.Result.TotalLines), sel.Plan)
	if r.opts.Printer != nil {
		r.opts.Printer.PrintPlan(sel.Plan)
	}

	return sel, nil
}

func (r *runner) ingest(ctx context.Context, sel *Selection) error {
	opts := ingestion.Options{
		UseBrowser: r.cfg.UseBrowser,
		Logger:     r.logger,
	}
	if pages := r.pageStore(); pages != nil {
		opts.Fetcher = newFetcher(pages, r.logger)
	}
	if r.opts.ExtractRequirements && r.opts.Source.URL != "" {
		client, err := r.llmClient(ctx)
		if err != nil {
			return err
		}
		opts.Extractor = client
	}

	text, metadata, err := ingestion.Ingest(ctx, r.opts.Source, opts)
	if err != nil {
		return fmt.Errorf("job ingestion failed: %w", err)
	}
	sel.Description = text
	sel.Metadata = metadata
	r.saveText(ctx, db.StepJobDescription, text)
	r.emitProgress(db.StepJobDescription, CategoryIngestion, "Ingested job description", metadata)
	return nil
}

// llmClient returns the configured client, creating it on first use
func (r *runner) llmClient(ctx context.Context) (llm.Client, error) {
	if r.client != nil {
		return r.client, nil
	}
	client, err := NewLLMClient(ctx, r.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	r.client = client
	return client, nil
}

func (r *runner) close() {
	if r.opts.LLM == nil && r.client != nil {
		_ = r.client.Close()
	}
	if closer, ok := r.store.(interface{ Close() }); ok && r.opts.Store == nil {
		closer.Close()
	}
}
