// Package ranking scores content against a query by embedding similarity.
package ranking

import (
	"context"
	"fmt"

	"github.com/jonathan/gencv/internal/content"
	"github.com/jonathan/gencv/internal/embedding"
)

// ExperienceSampleSize is how many of an experience's bullets, in declaration
// order, are averaged into the experience similarity.
const ExperienceSampleSize = 5

// ScoredBullet is one bullet's similarity to the query.
type ScoredBullet struct {
	Experience content.ExperienceID
	Bullet     content.BulletID
	Group      content.GroupID
	Similarity float64
}

// EmbedModel embeds every bullet of the model and stores the vectors, which
// also refreshes each experience's mean embedding.
func EmbedModel(ctx context.Context, engine embedding.Engine, model *content.Model, concurrency int) error {
	texts := make([]string, len(model.Bullets))
	for i, b := range model.Bullets {
		texts[i] = b.Text
	}

	vectors, err := embedding.EmbedBatch(ctx, engine, texts, concurrency)
	if err != nil {
		return fmt.Errorf("failed to embed bullets: %w", err)
	}
	for i, vec := range vectors {
		if err := model.SetEmbedding(content.BulletID(i), vec); err != nil {
			return err
		}
	}
	return nil
}

// ScoreBullets computes the cosine similarity of every embedded bullet to the
// query vector. Results follow experience then bullet declaration order.
func ScoreBullets(query []float32, model *content.Model) ([]ScoredBullet, error) {
	scored := make([]ScoredBullet, 0, len(model.Bullets))
	for _, exp := range model.Experiences {
		for _, id := range exp.Bullets {
			b := model.Bullets[id]
			sim, err := embedding.Cosine(query, b.Embedding)
			if err != nil {
				return nil, fmt.Errorf("bullet %q: %w", b.Text, err)
			}
			scored = append(scored, ScoredBullet{
				Experience: exp.ID,
				Bullet:     id,
				Group:      b.Group,
				Similarity: sim,
			})
		}
	}
	return scored, nil
}

// ExperienceSimilarities averages, per experience, the similarity of the
// first ExperienceSampleSize scored bullets in the order they appear.
func ExperienceSimilarities(scored []ScoredBullet) map[content.ExperienceID]float64 {
	sums := make(map[content.ExperienceID]float64)
	counts := make(map[content.ExperienceID]int)
	for _, s := range scored {
		if counts[s.Experience] >= ExperienceSampleSize {
			continue
		}
		sums[s.Experience] += s.Similarity
		counts[s.Experience]++
	}

	means := make(map[content.ExperienceID]float64, len(sums))
	for id, sum := range sums {
		means[id] = sum / float64(counts[id])
	}
	return means
}

// Score embeds the query and the model and scores every bullet.
func Score(ctx context.Context, engine embedding.Engine, model *content.Model, query string, concurrency int) ([]ScoredBullet, error) {
	queryVec, err := engine.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if err := EmbedModel(ctx, engine, model, concurrency); err != nil {
		return nil, err
	}
	return ScoreBullets(queryVec, model)
}
