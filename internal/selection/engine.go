package selection

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/jonathan/gencv/internal/content"
	"github.com/jonathan/gencv/internal/ranking"
)

// Params bounds one selection run.
type Params struct {
	// MaxLines is the nominal line budget
	MaxLines int
	// LineChars is the number of characters that fit on one line
	LineChars int
	// Quotas maps a category to how many experiences of it may appear.
	// Categories without an entry contribute nothing.
	Quotas map[string]int
}

// Selected is one bullet chosen by the engine.
type Selected struct {
	Experience content.ExperienceID
	Bullet     content.BulletID
	Group      content.GroupID
	Key        SortingKey
	Pass       Pass
	Lines      int
}

// Result is the outcome of a selection run.
type Result struct {
	// Selected lists bullets in the order they were chosen
	Selected []Selected
	// TotalLines is the line count of all selected bullets
	TotalLines int
	// Committed lists, per category, the experiences admitted to its quota
	Committed map[string][]content.ExperienceID
}

// Engine selects bullets from a content model.
type Engine struct {
	model  *content.Model
	params Params
	logger *zap.Logger
}

// NewEngine validates params and creates an engine. A nil logger discards output.
func NewEngine(model *content.Model, params Params, logger *zap.Logger) (*Engine, error) {
	if model == nil {
		return nil, &Error{Message: "content model is required"}
	}
	if params.MaxLines < 0 {
		return nil, &Error{Message: fmt.Sprintf("max lines must not be negative, got %d", params.MaxLines)}
	}
	if params.LineChars <= 0 {
		return nil, &Error{Message: fmt.Sprintf("line chars must be positive, got %d", params.LineChars)}
	}
	for category, n := range params.Quotas {
		if n < 0 {
			return nil, &Error{Message: fmt.Sprintf("quota for %q must not be negative, got %d", category, n)}
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{model: model, params: params, logger: logger}, nil
}

type candidate struct {
	ranking.ScoredBullet
	key SortingKey
}

// run holds the mutable state of one Select call.
type run struct {
	*Engine
	candidates []candidate
	byBullet   map[content.BulletID]int
	committed  map[content.ExperienceID]bool
	perCat     map[string][]content.ExperienceID
	expCount   map[content.ExperienceID]int
	groupCount map[content.GroupID]int
	seenText   map[string]bool
	totalLines int
	selected   []Selected
}

// Select runs the four passes over the scored bullets:
//
//  1. admit the most similar experiences to their category quota
//  2. bring each admitted experience up to its minimum
//  3. bring each group up to its minimum
//  4. fill greedily until the line budget is met
//
// Passes 2 to 4 visit bullets most similar first. The budget is checked
// before adding a bullet, so minimums may push the total past it. A selected
// bullet always brings its dependency along, even past a maximum.
func (e *Engine) Select(scored []ranking.ScoredBullet) (*Result, error) {
	r := &run{
		Engine:     e,
		byBullet:   make(map[content.BulletID]int, len(scored)),
		committed:  make(map[content.ExperienceID]bool),
		perCat:     make(map[string][]content.ExperienceID),
		expCount:   make(map[content.ExperienceID]int),
		groupCount: make(map[content.GroupID]int),
		seenText:   make(map[string]bool),
	}
	if err := r.buildCandidates(scored); err != nil {
		return nil, err
	}

	r.admitExperiences()

	bySimilarity := r.bySimilarity()
	r.scan(PassExperienceMin, bySimilarity, func(c candidate) bool {
		exp := e.model.Experiences[c.Experience]
		return exp.Min != content.NoLimit && r.expCount[c.Experience] < exp.Min
	})
	r.scan(PassGroupMin, bySimilarity, func(c candidate) bool {
		g := e.model.Groups[c.Group]
		return g.Min != content.NoLimit && r.groupCount[c.Group] < g.Min
	})
	r.scan(PassFill, bySimilarity, func(candidate) bool { return true })

	return &Result{
		Selected:   r.selected,
		TotalLines: r.totalLines,
		Committed:  r.perCat,
	}, nil
}

func (r *run) buildCandidates(scored []ranking.ScoredBullet) error {
	expSims := ranking.ExperienceSimilarities(scored)
	r.candidates = make([]candidate, 0, len(scored))

	for _, s := range scored {
		b, err := r.model.Bullet(s.Bullet)
		if err != nil {
			return &Error{Message: "scored bullet is not in the model", Cause: err}
		}
		if b.Experience != s.Experience || b.Group != s.Group {
			return &Error{Message: fmt.Sprintf("scored bullet %d does not belong to experience %d group %d", s.Bullet, s.Experience, s.Group)}
		}
		if _, dup := r.byBullet[s.Bullet]; dup {
			return &Error{Message: fmt.Sprintf("bullet %d scored more than once", s.Bullet)}
		}

		r.byBullet[s.Bullet] = len(r.candidates)
		r.candidates = append(r.candidates, candidate{
			ScoredBullet: s,
			key:          r.sortingKey(b, s.Similarity, expSims[s.Experience]),
		})
	}
	return nil
}

func (r *run) sortingKey(b *content.Bullet, bulletSim, expSim float64) SortingKey {
	exp := r.model.Experiences[b.Experience]
	return SortingKey{
		ExperienceOrder:      exp.Order,
		ExperienceSimilarity: expSim,
		ExperienceDeclOrder:  exp.DeclOrder,
		ExperienceKey:        exp.Key,
		BulletOrder:          b.Order,
		BulletSimilarity:     bulletSim,
		GroupDeclOrder:       r.model.Groups[b.Group].DeclOrder,
		BulletDeclOrder:      b.DeclOrder,
	}
}

// admitExperiences commits experiences, most similar first, while their
// category has quota left.
func (r *run) admitExperiences() {
	order := slices.Clone(r.candidates)
	slices.SortStableFunc(order, func(a, b candidate) int {
		if a.key.ExperienceSimilarity != b.key.ExperienceSimilarity {
			if a.key.ExperienceSimilarity > b.key.ExperienceSimilarity {
				return -1
			}
			return 1
		}
		if a.key.ExperienceKey != b.key.ExperienceKey {
			if a.key.ExperienceKey < b.key.ExperienceKey {
				return -1
			}
			return 1
		}
		return a.key.Compare(b.key)
	})

	for _, c := range order {
		if r.committed[c.Experience] {
			continue
		}
		exp := r.model.Experiences[c.Experience]
		quota, ok := r.params.Quotas[exp.Category]
		if !ok || len(r.perCat[exp.Category]) >= quota {
			r.trace(PassAdmission, c, SkippedQuota)
			continue
		}
		r.committed[c.Experience] = true
		r.perCat[exp.Category] = append(r.perCat[exp.Category], c.Experience)
		r.logger.Debug("experience committed",
			zap.String("experience", exp.Key),
			zap.String("category", exp.Category),
			zap.Float64("similarity", c.key.ExperienceSimilarity))
	}
}

// bySimilarity orders candidates most similar bullet first; the full sorting
// key breaks ties.
func (r *run) bySimilarity() []candidate {
	order := slices.Clone(r.candidates)
	slices.SortStableFunc(order, func(a, b candidate) int {
		if a.Similarity != b.Similarity {
			if a.Similarity > b.Similarity {
				return -1
			}
			return 1
		}
		return a.key.Compare(b.key)
	})
	return order
}

func (r *run) scan(pass Pass, order []candidate, wanted func(candidate) bool) {
	for _, c := range order {
		status := r.admissible(c)
		if status == Admitted && !wanted(c) {
			status = SkippedMinimumMet
		}
		r.trace(pass, c, status)
		if status == Admitted {
			r.selectCandidate(pass, c)
		}
	}
}

// admissible applies the checks shared by passes 2 to 4 in order.
func (r *run) admissible(c candidate) Status {
	if r.totalLines >= r.params.MaxLines {
		return SkippedBudget
	}
	if !r.committed[c.Experience] {
		return SkippedUncommitted
	}
	exp := r.model.Experiences[c.Experience]
	if exp.Max != content.NoLimit && r.expCount[c.Experience] >= exp.Max {
		return SkippedExperienceMax
	}
	g := r.model.Groups[c.Group]
	if g.Max != content.NoLimit && r.groupCount[c.Group] >= g.Max {
		return SkippedGroupMax
	}
	return Admitted
}

// selectCandidate adds c after its dependency chain. Text already selected
// is not added again.
func (r *run) selectCandidate(pass Pass, c candidate) {
	b := r.model.Bullets[c.Bullet]
	if b.HasDependency() {
		r.selectCandidate(PassDependency, r.dependencyCandidate(b.Dependency, c))
	}

	if r.seenText[b.Text] {
		return
	}
	lines := LineCount(b.Text, r.params.LineChars)
	r.seenText[b.Text] = true
	r.totalLines += lines
	r.expCount[c.Experience]++
	r.groupCount[c.Group]++
	r.selected = append(r.selected, Selected{
		Experience: c.Experience,
		Bullet:     c.Bullet,
		Group:      c.Group,
		Key:        c.key,
		Pass:       pass,
		Lines:      lines,
	})
	r.logger.Debug("bullet selected",
		zap.Stringer("pass", pass),
		zap.String("bullet", b.Text),
		zap.Int("lines", lines),
		zap.Int("total_lines", r.totalLines))
}

// dependencyCandidate returns the scored candidate for a dependency. A
// dependency that was never scored inherits its dependant's similarity.
func (r *run) dependencyCandidate(id content.BulletID, dependant candidate) candidate {
	if i, ok := r.byBullet[id]; ok {
		return r.candidates[i]
	}
	b := r.model.Bullets[id]
	return candidate{
		ScoredBullet: ranking.ScoredBullet{
			Experience: b.Experience,
			Bullet:     id,
			Group:      b.Group,
			Similarity: dependant.Similarity,
		},
		key: r.sortingKey(b, dependant.Similarity, dependant.key.ExperienceSimilarity),
	}
}

func (r *run) trace(pass Pass, c candidate, status Status) {
	if ce := r.logger.Check(zap.DebugLevel, "candidate"); ce != nil {
		ce.Write(
			zap.Stringer("pass", pass),
			zap.String("bullet", r.model.Bullets[c.Bullet].Text),
			zap.Float64("similarity", c.Similarity),
			zap.Stringer("status", status),
			zap.Stringer("key", c.key))
	}
}
