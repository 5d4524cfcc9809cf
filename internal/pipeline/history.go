package pipeline

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/gencv/internal/db"
	"github.com/jonathan/gencv/internal/fetch"
)

// RunStore records runs and their artifacts. *db.DB satisfies it.
type RunStore interface {
	CreateRun(ctx context.Context, template, query, jobURL string) (uuid.UUID, error)
	UpdateRunQuery(ctx context.Context, runID uuid.UUID, query string) error
	SaveArtifact(ctx context.Context, runID uuid.UUID, step string, content any) error
	SaveTextArtifact(ctx context.Context, runID uuid.UUID, step, text string) error
	CompleteRun(ctx context.Context, runID uuid.UUID, runErr error) error
}

// connect opens the configured database. Failure is a warning: the run
// continues without persistence.
func (r *runner) connect(ctx context.Context) {
	if r.opts.Store != nil {
		r.store = r.opts.Store
		return
	}
	if r.cfg.DatabaseURL == "" {
		return
	}

	database, err := db.Connect(ctx, r.cfg.DatabaseURL)
	if err != nil {
		r.logger.Warn("failed to connect to database, continuing without persistence", zap.Error(err))
		return
	}
	if err := database.Migrate(ctx); err != nil {
		r.logger.Warn("failed to migrate database, continuing without persistence", zap.Error(err))
		database.Close()
		return
	}
	r.logger.Debug("connected to database")
	r.store = database
}

// pageStore returns the store as a page cache when it can serve as one
func (r *runner) pageStore() fetch.PageStore {
	if pages, ok := r.store.(fetch.PageStore); ok {
		return pages
	}
	return nil
}

func (r *runner) startRun(ctx context.Context) {
	if r.store == nil {
		return
	}
	runID, err := r.store.CreateRun(ctx, r.opts.Template, r.opts.Query, r.opts.Source.URL)
	if err != nil {
		r.logger.Warn("failed to create run record", zap.Error(err))
		return
	}
	r.runID = runID
	r.recorded = true
	r.logger.Debug("created run", zap.Stringer("run_id", runID))
}

func (r *runner) updateRunQuery(ctx context.Context, query string) {
	if !r.recorded {
		return
	}
	if err := r.store.UpdateRunQuery(ctx, r.runID, query); err != nil {
		r.logger.Warn("failed to update run query", zap.Error(err))
	}
}

func (r *runner) saveText(ctx context.Context, step, text string) {
	if !r.recorded {
		return
	}
	if err := r.store.SaveTextArtifact(ctx, r.runID, step, text); err != nil {
		r.logger.Warn("failed to save artifact", zap.String("step", step), zap.Error(err))
	}
}

func (r *runner) saveJSON(ctx context.Context, step string, content any) {
	if !r.recorded {
		return
	}
	if err := r.store.SaveArtifact(ctx, r.runID, step, content); err != nil {
		r.logger.Warn("failed to save artifact", zap.String("step", step), zap.Error(err))
	}
}

func (r *runner) completeRun(ctx context.Context, runErr error) {
	if !r.recorded {
		return
	}
	if err := r.store.CompleteRun(ctx, r.runID, runErr); err != nil {
		r.logger.Warn("failed to complete run", zap.Error(err))
	}
}
