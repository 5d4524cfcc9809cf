package selection

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/gencv/internal/content"
	"github.com/jonathan/gencv/internal/ranking"
)

// fixture builds a model alongside the similarity of every bullet.
type fixture struct {
	t     *testing.T
	model *content.Model
	sims  map[content.BulletID]float64
}

func newFixture(t *testing.T) *fixture {
	return &fixture{t: t, model: content.NewModel(), sims: make(map[content.BulletID]float64)}
}

func (f *fixture) experience(key, category string, minBullets, maxBullets int) content.ExperienceID {
	return f.model.AddExperience(content.ExperienceSpec{Key: key, Category: category, Min: minBullets, Max: maxBullets})
}

func (f *fixture) group(exp content.ExperienceID, minBullets, maxBullets int) content.GroupID {
	g, err := f.model.AddGroup(exp, minBullets, maxBullets)
	require.NoError(f.t, err)
	return g
}

func (f *fixture) bullet(g content.GroupID, text string, sim float64) content.BulletID {
	id, err := f.model.AddBullet(g, content.BulletSpec{Text: text})
	require.NoError(f.t, err)
	f.sims[id] = sim
	return id
}

func (f *fixture) dependant(g content.GroupID, dep content.BulletID, text string, sim float64) content.BulletID {
	id, err := f.model.AddDependantIn(g, dep, content.BulletSpec{Text: text})
	require.NoError(f.t, err)
	f.sims[id] = sim
	return id
}

// scored lists bullets in experience then declaration order, as the scorer does.
func (f *fixture) scored() []ranking.ScoredBullet {
	var out []ranking.ScoredBullet
	for _, exp := range f.model.Experiences {
		for _, id := range exp.Bullets {
			b := f.model.Bullets[id]
			out = append(out, ranking.ScoredBullet{
				Experience: exp.ID,
				Bullet:     id,
				Group:      b.Group,
				Similarity: f.sims[id],
			})
		}
	}
	return out
}

func (f *fixture) run(params Params) *Result {
	e, err := NewEngine(f.model, params, nil)
	require.NoError(f.t, err)
	res, err := e.Select(f.scored())
	require.NoError(f.t, err)
	return res
}

func (f *fixture) texts(sel []Selected) []string {
	out := make([]string, 0, len(sel))
	for _, s := range sel {
		out = append(out, f.model.Bullets[s.Bullet].Text)
	}
	return out
}

func TestSelect_AllBulletsFitOrderedBySimilarity(t *testing.T) {
	f := newFixture(t)
	exp := f.experience("acme", "job", content.NoLimit, content.NoLimit)
	g := f.group(exp, 1, 3)
	f.bullet(g, "low", 0.1)
	f.bullet(g, "high", 0.9)
	f.bullet(g, "mid", 0.5)

	res := f.run(Params{MaxLines: 100, LineChars: 120, Quotas: map[string]int{"job": 1}})

	assert.Equal(t, []string{"high", "mid", "low"}, f.texts(res.Selected))
	assert.Equal(t, []string{"high", "mid", "low"}, f.texts(Sorted(res.Selected)))
	assert.Equal(t, PassGroupMin, res.Selected[0].Pass)
	assert.Equal(t, PassFill, res.Selected[1].Pass)
	assert.Equal(t, 3, res.TotalLines)
}

func TestSelect_DependencyForcedPastGroupMax(t *testing.T) {
	f := newFixture(t)
	exp := f.experience("acme", "job", content.NoLimit, content.NoLimit)
	full := f.group(exp, 1, 1)
	open := f.group(exp, content.NoLimit, content.NoLimit)

	y := f.bullet(full, "context for the result", 0.01)
	f.bullet(full, "other strong bullet", 0.8)
	x := f.dependant(open, y, "headline result", 0.95)

	res := f.run(Params{MaxLines: 100, LineChars: 120, Quotas: map[string]int{"job": 1}})

	assert.Equal(t, []string{"other strong bullet", "context for the result", "headline result"}, f.texts(res.Selected))
	assert.Equal(t, PassDependency, res.Selected[1].Pass)
	assert.Equal(t, y, res.Selected[1].Bullet)
	assert.Equal(t, x, res.Selected[2].Bullet)

	groupCount := 0
	for _, s := range res.Selected {
		if s.Group == full {
			groupCount++
		}
	}
	assert.Equal(t, 2, groupCount, "dependency is included even though its group was full")
}

func TestSelect_OnlyCommittedExperiencesContribute(t *testing.T) {
	f := newFixture(t)
	job := f.experience("job_a", "job", content.NoLimit, content.NoLimit)
	f.bullet(f.group(job, content.NoLimit, content.NoLimit), "job bullet", 0.5)

	p1 := f.experience("p1", "project", content.NoLimit, content.NoLimit)
	f.bullet(f.group(p1, content.NoLimit, content.NoLimit), "p1 bullet", 0.8)

	p2 := f.experience("p2", "project", content.NoLimit, content.NoLimit)
	f.bullet(f.group(p2, content.NoLimit, content.NoLimit), "p2 bullet", 0.6)

	p3 := f.experience("p3", "project", content.NoLimit, content.NoLimit)
	g3 := f.group(p3, content.NoLimit, content.NoLimit)
	f.bullet(g3, "p3 best single bullet", 0.95)
	f.bullet(g3, "p3 weak bullet", -0.15)

	res := f.run(Params{MaxLines: 100, LineChars: 120, Quotas: map[string]int{"job": 1, "project": 1}})

	assert.Equal(t, []content.ExperienceID{p1}, res.Committed["project"])
	assert.Equal(t, []content.ExperienceID{job}, res.Committed["job"])
	assert.ElementsMatch(t, []string{"p1 bullet", "job bullet"}, f.texts(res.Selected))
}

func TestSelect_MinimumOverridesBudget(t *testing.T) {
	f := newFixture(t)
	exp := f.experience("acme", "job", 2, content.NoLimit)
	g := f.group(exp, content.NoLimit, content.NoLimit)
	long := f.bullet(g, strings.Repeat("a", 130), 0.7)
	short := f.bullet(g, strings.Repeat("b", 90), 0.9)

	res := f.run(Params{MaxLines: 2, LineChars: 120, Quotas: map[string]int{"job": 1}})

	require.Len(t, res.Selected, 2)
	assert.Equal(t, short, res.Selected[0].Bullet)
	assert.Equal(t, long, res.Selected[1].Bullet)
	assert.Equal(t, 1, res.Selected[0].Lines)
	assert.Equal(t, 2, res.Selected[1].Lines)
	assert.Equal(t, 3, res.TotalLines)
}

func TestSelect_FillStopsAtBudget(t *testing.T) {
	f := newFixture(t)
	exp := f.experience("acme", "job", content.NoLimit, content.NoLimit)
	g := f.group(exp, content.NoLimit, content.NoLimit)
	f.bullet(g, "one", 0.9)
	f.bullet(g, "two", 0.8)
	f.bullet(g, "three", 0.7)

	res := f.run(Params{MaxLines: 2, LineChars: 120, Quotas: map[string]int{"job": 1}})

	assert.Equal(t, []string{"one", "two"}, f.texts(res.Selected))
	assert.Equal(t, 2, res.TotalLines)
}

func TestSelect_MaximumsAndDeduplication(t *testing.T) {
	f := newFixture(t)
	a := f.experience("a", "job", content.NoLimit, 2)
	ga := f.group(a, content.NoLimit, content.NoLimit)
	f.bullet(ga, "shared text", 0.99)
	f.bullet(ga, "a two", 0.9)
	f.bullet(ga, "a three", 0.8)

	b := f.experience("b", "job", content.NoLimit, content.NoLimit)
	gb := f.group(b, content.NoLimit, 1)
	f.bullet(gb, "shared text", 0.98)
	f.bullet(gb, "b two", 0.7)
	f.bullet(gb, "b three", 0.6)

	res := f.run(Params{MaxLines: 100, LineChars: 120, Quotas: map[string]int{"job": 2}})

	assert.Equal(t, []string{"shared text", "a two", "b two"}, f.texts(res.Selected))
}

func TestSelect_CategoryWithoutSlotIsIgnored(t *testing.T) {
	f := newFixture(t)
	exp := f.experience("edu", "education", 1, content.NoLimit)
	f.bullet(f.group(exp, 1, content.NoLimit), "degree", 0.9)

	res := f.run(Params{MaxLines: 100, LineChars: 120, Quotas: map[string]int{"job": 1}})

	assert.Empty(t, res.Selected)
	assert.Empty(t, res.Committed)
}

func TestSelect_ZeroQuota(t *testing.T) {
	f := newFixture(t)
	exp := f.experience("acme", "job", content.NoLimit, content.NoLimit)
	f.bullet(f.group(exp, content.NoLimit, content.NoLimit), "x", 0.9)

	res := f.run(Params{MaxLines: 100, LineChars: 120, Quotas: map[string]int{"job": 0}})
	assert.Empty(t, res.Selected)
}

func TestNewEngine_InvalidParams(t *testing.T) {
	m := content.NewModel()
	tests := []struct {
		name    string
		model   *content.Model
		params  Params
		wantErr string
	}{
		{"nil model", nil, Params{LineChars: 1}, "content model is required"},
		{"negative budget", m, Params{MaxLines: -1, LineChars: 1}, "max lines"},
		{"zero line chars", m, Params{MaxLines: 1}, "line chars"},
		{"negative quota", m, Params{MaxLines: 1, LineChars: 1, Quotas: map[string]int{"job": -2}}, "quota"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine(tt.model, tt.params, nil)
			require.Error(t, err)
			var selErr *Error
			assert.ErrorAs(t, err, &selErr)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSelect_RejectsForeignBullets(t *testing.T) {
	f := newFixture(t)
	exp := f.experience("acme", "job", content.NoLimit, content.NoLimit)
	f.bullet(f.group(exp, content.NoLimit, content.NoLimit), "x", 0.9)

	e, err := NewEngine(f.model, Params{MaxLines: 1, LineChars: 1}, nil)
	require.NoError(t, err)

	_, err = e.Select([]ranking.ScoredBullet{{Bullet: 7}})
	assert.Error(t, err)

	scored := f.scored()
	_, err = e.Select(append(scored, scored[0]))
	assert.ErrorContains(t, err, "scored more than once")
}

func TestSelect_LogsDecisions(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	f := newFixture(t)
	exp := f.experience("acme", "job", content.NoLimit, 1)
	g := f.group(exp, content.NoLimit, content.NoLimit)
	f.bullet(g, "kept", 0.9)
	f.bullet(g, "dropped", 0.1)

	e, err := NewEngine(f.model, Params{MaxLines: 10, LineChars: 120, Quotas: map[string]int{"job": 1}}, zap.New(core))
	require.NoError(t, err)
	_, err = e.Select(f.scored())
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("bullet selected").Len())
	assert.Equal(t, 1, logs.FilterMessage("experience committed").Len())

	maxed := logs.FilterMessage("candidate").FilterField(zap.Stringer("status", SkippedExperienceMax))
	assert.Equal(t, 1, maxed.Len())
}

// randomFixture generates a model exercising bounds, dependants and duplicate text.
func randomFixture(t *testing.T, seed uint64, duplicates bool) *fixture {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	f := newFixture(t)
	categories := []string{"job", "project"}

	bound := func() (int, int) {
		if rng.IntN(3) == 0 {
			return content.NoLimit, content.NoLimit
		}
		lo := rng.IntN(3)
		return lo, lo + rng.IntN(3)
	}

	n := 0
	for e := 0; e < 2+rng.IntN(5); e++ {
		lo, hi := bound()
		exp := f.experience(fmt.Sprintf("exp%d", e), categories[rng.IntN(2)], lo, hi)
		var bullets []content.BulletID
		for g := 0; g < 1+rng.IntN(3); g++ {
			glo, ghi := bound()
			gid := f.group(exp, glo, ghi)
			for b := 0; b < 1+rng.IntN(4); b++ {
				text := fmt.Sprintf("bullet %d %s", n, strings.Repeat("x", rng.IntN(200)))
				if duplicates && rng.IntN(6) == 0 {
					text = "duplicated bullet"
				}
				n++
				sim := rng.Float64()*2 - 1
				if len(bullets) > 0 && rng.IntN(4) == 0 {
					bullets = append(bullets, f.dependant(gid, bullets[rng.IntN(len(bullets))], text, sim))
					continue
				}
				bullets = append(bullets, f.bullet(gid, text, sim))
			}
		}
	}
	return f
}

func TestSelect_Properties(t *testing.T) {
	for seed := uint64(1); seed <= 200; seed++ {
		f := randomFixture(t, seed, true)
		params := Params{
			MaxLines:  int(seed % 12),
			LineChars: 60,
			Quotas:    map[string]int{"job": int(seed % 3), "project": 1},
		}

		res := f.run(params)
		again := f.run(params)
		require.Equal(t, res, again, "seed %d: selection must be deterministic", seed)

		selectedText := make(map[string]bool)
		for _, s := range res.Selected {
			text := f.model.Bullets[s.Bullet].Text
			require.False(t, selectedText[text], "seed %d: duplicate text %q", seed, text)
			selectedText[text] = true
		}

		for _, s := range res.Selected {
			b := f.model.Bullets[s.Bullet]
			if b.HasDependency() {
				dep := f.model.Bullets[b.Dependency]
				assert.True(t, selectedText[dep.Text], "seed %d: dependency of %q missing", seed, b.Text)
			}
		}

		for category, committed := range res.Committed {
			assert.LessOrEqual(t, len(committed), params.Quotas[category], "seed %d: quota for %s", seed, category)
		}
		committed := make(map[content.ExperienceID]bool)
		for _, ids := range res.Committed {
			for _, id := range ids {
				committed[id] = true
			}
		}

		running, chainStart := 0, 0
		lastPass := PassExperienceMin
		for i, s := range res.Selected {
			assert.True(t, committed[s.Experience], "seed %d: uncommitted experience selected", seed)
			if s.Pass == PassDependency {
				if i == 0 || res.Selected[i-1].Pass != PassDependency {
					chainStart = running
				}
			} else {
				checked := running
				if i > 0 && res.Selected[i-1].Pass == PassDependency {
					checked = chainStart
				}
				assert.Less(t, checked, params.MaxLines, "seed %d: added after budget was met", seed)
				assert.GreaterOrEqual(t, s.Pass, lastPass, "seed %d: passes out of order", seed)
				lastPass = s.Pass
			}
			running += s.Lines
		}
		assert.Equal(t, running, res.TotalLines)
	}
}

func TestSelect_MinimumSatisfiedWhenFeasible(t *testing.T) {
	for seed := uint64(1); seed <= 200; seed++ {
		f := randomFixture(t, seed, false)
		res := f.run(Params{MaxLines: 10000, LineChars: 60, Quotas: map[string]int{"job": 10, "project": 10}})

		counts := make(map[content.ExperienceID]int)
		for _, s := range res.Selected {
			counts[s.Experience]++
		}

		for _, exp := range f.model.Experiences {
			if exp.Min == content.NoLimit {
				continue
			}
			available := 0
			for _, gid := range exp.Groups {
				g := f.model.Groups[gid]
				n := len(g.Bullets)
				if g.Max != content.NoLimit && g.Max < n {
					n = g.Max
				}
				available += n
			}
			if exp.Min <= available {
				assert.GreaterOrEqual(t, counts[exp.ID], exp.Min, "seed %d: experience %s below minimum", seed, exp.Key)
			}
		}
	}
}
