// Package content holds the in-memory model of experiences, groups and
// bullets that selection works on.
//
// The model is an arena: every Experience, Group and Bullet lives in a slice
// owned by Model and is referred to elsewhere by its index handle. Dependency
// links between bullets are stored as handles in both directions.
package content

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/gencv/internal/embedding"
)

// Unordered is the fixed order of items that were not given one.
const Unordered = 0

// NoLimit marks an absent minimum or maximum bullet count.
const NoLimit = -1

// MetaTextCount is the number of free-form metadata fields per experience.
const MetaTextCount = 5

// BulletID is a handle into Model.Bullets.
type BulletID int

// GroupID is a handle into Model.Groups.
type GroupID int

// ExperienceID is a handle into Model.Experiences.
type ExperienceID int

// NoBullet is the dependency of a bullet that has none.
const NoBullet BulletID = -1

// Bullet is one selectable line of content.
type Bullet struct {
	ID         BulletID
	Text       string
	Bold       []string
	Group      GroupID
	Experience ExperienceID
	// DeclOrder is the position of the bullet within its group
	DeclOrder int
	// Order is the fixed display order, Unordered when not given
	Order      int
	Embedding  []float32
	Dependency BulletID
	Dependants []BulletID
}

// HasDependency reports whether the bullet must be accompanied by another.
func (b *Bullet) HasDependency() bool {
	return b.Dependency != NoBullet
}

// Group is a bucket of bullets within one experience with optional bounds.
// UID gives every group its own identity regardless of content.
type Group struct {
	ID         GroupID
	UID        uuid.UUID
	Experience ExperienceID
	Min        int
	Max        int
	// DeclOrder is the position of the group within its experience
	DeclOrder int
	Bullets   []BulletID
}

// Experience is one job or project entry.
type Experience struct {
	ID ExperienceID
	// Key is the identifier from the content file
	Key       string
	Category  string
	Order     int
	DeclOrder int
	Min       int
	Max       int
	MetaText  [MetaTextCount]string
	Groups    []GroupID
	Bullets   []BulletID
	// Embedding is the mean of the bullet embeddings
	Embedding []float32
}

// Model owns every experience, group and bullet of one invocation.
type Model struct {
	Experiences []*Experience
	Groups      []*Group
	Bullets     []*Bullet
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{}
}

// ExperienceSpec describes an experience to add.
type ExperienceSpec struct {
	Key      string
	Category string
	Order    int
	Min      int
	Max      int
	MetaText [MetaTextCount]string
}

// AddExperience appends an experience; its declaration order is its position
// in the model.
func (m *Model) AddExperience(spec ExperienceSpec) ExperienceID {
	id := ExperienceID(len(m.Experiences))
	m.Experiences = append(m.Experiences, &Experience{
		ID:        id,
		Key:       spec.Key,
		Category:  spec.Category,
		Order:     spec.Order,
		DeclOrder: int(id),
		Min:       spec.Min,
		Max:       spec.Max,
		MetaText:  spec.MetaText,
	})
	return id
}

// AddGroup appends a group to an experience.
func (m *Model) AddGroup(exp ExperienceID, minBullets, maxBullets int) (GroupID, error) {
	e, err := m.experience(exp)
	if err != nil {
		return 0, err
	}

	id := GroupID(len(m.Groups))
	m.Groups = append(m.Groups, &Group{
		ID:         id,
		UID:        uuid.New(),
		Experience: exp,
		Min:        minBullets,
		Max:        maxBullets,
		DeclOrder:  len(e.Groups),
	})
	e.Groups = append(e.Groups, id)
	return id, nil
}

// BulletSpec describes a bullet to add.
type BulletSpec struct {
	Text  string
	Bold  []string
	Order int
}

// AddBullet appends a bullet with no dependency to a group.
func (m *Model) AddBullet(group GroupID, spec BulletSpec) (BulletID, error) {
	g, err := m.group(group)
	if err != nil {
		return 0, err
	}

	id := BulletID(len(m.Bullets))
	m.Bullets = append(m.Bullets, &Bullet{
		ID:         id,
		Text:       spec.Text,
		Bold:       spec.Bold,
		Group:      group,
		Experience: g.Experience,
		DeclOrder:  len(g.Bullets),
		Order:      spec.Order,
		Dependency: NoBullet,
	})
	g.Bullets = append(g.Bullets, id)
	e := m.Experiences[g.Experience]
	e.Bullets = append(e.Bullets, id)
	return id, nil
}

// AddDependant appends a bullet to the group of dependency and links the two.
// The dependency must already be in the model.
func (m *Model) AddDependant(dependency BulletID, spec BulletSpec) (BulletID, error) {
	if int(dependency) < 0 || int(dependency) >= len(m.Bullets) {
		return 0, dependencyMissing(dependency)
	}
	return m.AddDependantIn(m.Bullets[dependency].Group, dependency, spec)
}

// AddDependantIn is AddDependant with the dependant placed in an explicit group.
func (m *Model) AddDependantIn(group GroupID, dependency BulletID, spec BulletSpec) (BulletID, error) {
	if int(dependency) < 0 || int(dependency) >= len(m.Bullets) {
		return 0, dependencyMissing(dependency)
	}

	parent := m.Bullets[dependency]
	id, err := m.AddBullet(group, spec)
	if err != nil {
		return 0, err
	}
	m.Bullets[id].Dependency = dependency
	parent.Dependants = append(parent.Dependants, id)
	return id, nil
}

func dependencyMissing(id BulletID) error {
	return &DependencyIntegrityError{
		Message: fmt.Sprintf("dependency bullet %d does not exist; add it before its dependants", id),
	}
}

// SetEmbedding stores a bullet's embedding and recomputes the mean embedding
// of its experience.
func (m *Model) SetEmbedding(bullet BulletID, vec []float32) error {
	b, err := m.Bullet(bullet)
	if err != nil {
		return err
	}
	b.Embedding = vec

	e := m.Experiences[b.Experience]
	vectors := make([][]float32, 0, len(e.Bullets))
	for _, id := range e.Bullets {
		vectors = append(vectors, m.Bullets[id].Embedding)
	}
	e.Embedding = embedding.Mean(vectors)
	return nil
}

// Bullet returns the bullet behind a handle.
func (m *Model) Bullet(id BulletID) (*Bullet, error) {
	if int(id) < 0 || int(id) >= len(m.Bullets) {
		return nil, fmt.Errorf("unknown bullet %d", id)
	}
	return m.Bullets[id], nil
}

// ExperienceByKey finds an experience by its content-file identifier.
func (m *Model) ExperienceByKey(key string) (*Experience, bool) {
	for _, e := range m.Experiences {
		if e.Key == key {
			return e, true
		}
	}
	return nil, false
}

// Categories returns the distinct experience categories in declaration order.
func (m *Model) Categories() []string {
	seen := make(map[string]struct{})
	var categories []string
	for _, e := range m.Experiences {
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		categories = append(categories, e.Category)
	}
	return categories
}

func (m *Model) experience(id ExperienceID) (*Experience, error) {
	if int(id) < 0 || int(id) >= len(m.Experiences) {
		return nil, fmt.Errorf("unknown experience %d", id)
	}
	return m.Experiences[id], nil
}

func (m *Model) group(id GroupID) (*Group, error) {
	if int(id) < 0 || int(id) >= len(m.Groups) {
		return nil, fmt.Errorf("unknown group %d", id)
	}
	return m.Groups[id], nil
}
