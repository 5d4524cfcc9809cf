package selection

import (
	"maps"
	"slices"

	"github.com/jonathan/gencv/internal/content"
	"github.com/jonathan/gencv/internal/types"
)

// Sorted returns a copy of sel ordered by sorting key.
func Sorted(sel []Selected) []Selected {
	out := slices.Clone(sel)
	slices.SortStableFunc(out, func(a, b Selected) int {
		return a.Key.Compare(b.Key)
	})
	return out
}

// Materialize sorts the selection and groups it into one record per
// experience, in the order experiences first appear.
func Materialize(model *content.Model, sel []Selected) []types.ExperienceData {
	var result []types.ExperienceData
	index := make(map[content.ExperienceID]int)

	for _, s := range Sorted(sel) {
		i, ok := index[s.Experience]
		if !ok {
			exp := model.Experiences[s.Experience]
			i = len(result)
			index[s.Experience] = i
			result = append(result, types.ExperienceData{
				ID:       exp.Key,
				Category: exp.Category,
				MetaText: exp.MetaText,
			})
		}
		b := model.Bullets[s.Bullet]
		result[i].Bullets = append(result[i].Bullets, types.BulletData{
			Text: b.Text,
			Bold: b.Bold,
		})
	}
	return result
}

// BuildPlan summarises a run for display and storage.
func BuildPlan(model *content.Model, query string, params Params, res *Result) *types.ResumePlan {
	plan := &types.ResumePlan{
		Query:               query,
		SelectedExperiences: []types.SelectedExperience{},
		SpaceBudget: types.SpaceBudget{
			MaxLines:   params.MaxLines,
			LineChars:  params.LineChars,
			SlotQuotas: maps.Clone(params.Quotas),
		},
		TotalLines: res.TotalLines,
	}

	index := make(map[content.ExperienceID]int)
	for _, s := range Sorted(res.Selected) {
		i, ok := index[s.Experience]
		if !ok {
			exp := model.Experiences[s.Experience]
			i = len(plan.SelectedExperiences)
			index[s.Experience] = i
			plan.SelectedExperiences = append(plan.SelectedExperiences, types.SelectedExperience{
				ExperienceID: exp.Key,
				Category:     exp.Category,
				Similarity:   s.Key.ExperienceSimilarity,
			})
		}
		se := &plan.SelectedExperiences[i]
		se.Bullets = append(se.Bullets, model.Bullets[s.Bullet].Text)
		se.Similarities = append(se.Similarities, s.Key.BulletSimilarity)
		se.EstimatedLines += s.Lines
	}
	return plan
}
