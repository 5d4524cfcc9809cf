package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/gencv/internal/content"
	"github.com/jonathan/gencv/internal/types"
)

func TestMaterialize_GroupsAndOrders(t *testing.T) {
	f := newFixture(t)

	late, err := f.model.AddGroup(f.model.AddExperience(content.ExperienceSpec{
		Key: "late", Category: "job", Order: 1, Min: content.NoLimit, Max: content.NoLimit,
		MetaText: [5]string{"Late Inc", "Engineer"},
	}), content.NoLimit, content.NoLimit)
	require.NoError(t, err)
	f.bullet(late, "late bullet", 0.99)

	exp := f.experience("acme", "job", content.NoLimit, content.NoLimit)
	g := f.group(exp, content.NoLimit, content.NoLimit)
	first := f.bullet(g, "pinned last", 0.9)
	f.model.Bullets[first].Order = 5
	f.bullet(g, "strong", 0.8)
	id, err := f.model.AddBullet(g, content.BulletSpec{Text: "weak with bold", Bold: []string{"bold"}})
	require.NoError(t, err)
	f.sims[id] = 0.1

	res := f.run(Params{MaxLines: 100, LineChars: 120, Quotas: map[string]int{"job": 2}})
	data := Materialize(f.model, res.Selected)

	require.Len(t, data, 2)
	assert.Equal(t, "acme", data[0].ID)
	assert.Equal(t, []types.BulletData{
		{Text: "strong"},
		{Text: "weak with bold", Bold: []string{"bold"}},
		{Text: "pinned last"},
	}, data[0].Bullets)

	assert.Equal(t, "late", data[1].ID)
	assert.Equal(t, "job", data[1].Category)
	assert.Equal(t, "Late Inc", data[1].MetaText[0])
	assert.Equal(t, "Engineer", data[1].MetaText[1])
}

func TestBuildPlan(t *testing.T) {
	f := newFixture(t)
	exp := f.experience("acme", "job", content.NoLimit, content.NoLimit)
	g := f.group(exp, content.NoLimit, content.NoLimit)
	f.bullet(g, "alpha", 0.6)
	f.bullet(g, "beta", 0.2)

	params := Params{MaxLines: 10, LineChars: 120, Quotas: map[string]int{"job": 1}}
	res := f.run(params)
	plan := BuildPlan(f.model, "go backend", params, res)

	assert.Equal(t, "go backend", plan.Query)
	assert.Equal(t, 2, plan.TotalLines)
	assert.Equal(t, map[string]int{"job": 1}, plan.SpaceBudget.SlotQuotas)
	require.Len(t, plan.SelectedExperiences, 1)

	se := plan.SelectedExperiences[0]
	assert.Equal(t, "acme", se.ExperienceID)
	assert.InDelta(t, 0.4, se.Similarity, 1e-9)
	assert.Equal(t, []string{"alpha", "beta"}, se.Bullets)
	assert.Equal(t, []float64{0.6, 0.2}, se.Similarities)
	assert.Equal(t, 2, se.EstimatedLines)
}

func TestMaterialize_Empty(t *testing.T) {
	assert.Empty(t, Materialize(content.NewModel(), nil))
}
