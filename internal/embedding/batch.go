package embedding

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of in-flight embedding requests.
const DefaultConcurrency = 4

// EmbedBatch embeds texts with at most limit requests in flight and returns
// the vectors in input order. The first failure cancels the remaining work.
func EmbedBatch(ctx context.Context, engine Engine, texts []string, limit int) ([][]float32, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	vectors := make([][]float32, len(texts))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, text := range texts {
		g.Go(func() error {
			vec, err := engine.Embed(gCtx, text)
			if err != nil {
				return fmt.Errorf("failed to embed text %d: %w", i, err)
			}
			vectors[i] = vec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}
