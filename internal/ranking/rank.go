package ranking

import (
	"context"
	"fmt"
	"sort"

	"github.com/jonathan/gencv/internal/content"
	"github.com/jonathan/gencv/internal/embedding"
)

// RankedExperience is an experience with its similarity to a query.
type RankedExperience struct {
	Experience content.ExperienceID
	Key        string
	Category   string
	Similarity float64
}

// RankExperiences orders experiences by the cosine similarity of their mean
// bullet embedding to the query vector, most similar first. Ties keep
// declaration order. The model must already be embedded.
func RankExperiences(query []float32, model *content.Model) ([]RankedExperience, error) {
	ranked := make([]RankedExperience, 0, len(model.Experiences))
	for _, exp := range model.Experiences {
		sim := 0.0
		if len(exp.Embedding) > 0 {
			var err error
			sim, err = embedding.Cosine(query, exp.Embedding)
			if err != nil {
				return nil, fmt.Errorf("experience %s: %w", exp.Key, err)
			}
		}
		ranked = append(ranked, RankedExperience{
			Experience: exp.ID,
			Key:        exp.Key,
			Category:   exp.Category,
			Similarity: sim,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Similarity > ranked[j].Similarity
	})
	return ranked, nil
}

// RankQuery embeds the query and the model, then ranks experiences.
func RankQuery(ctx context.Context, engine embedding.Engine, model *content.Model, query string, concurrency int) ([]RankedExperience, error) {
	queryVec, err := engine.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if err := EmbedModel(ctx, engine, model, concurrency); err != nil {
		return nil, err
	}
	return RankExperiences(queryVec, model)
}
