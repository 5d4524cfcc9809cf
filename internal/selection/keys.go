package selection

import (
	"cmp"
	"fmt"
)

// SortingKey orders selected bullets for rendering. Fields are compared in
// declaration order; similarities compare descending so the most relevant
// entries come first, every other field ascending.
type SortingKey struct {
	ExperienceOrder      int
	ExperienceSimilarity float64
	ExperienceDeclOrder  int
	ExperienceKey        string
	BulletOrder          int
	BulletSimilarity     float64
	GroupDeclOrder       int
	BulletDeclOrder      int
}

// Compare returns -1 when k sorts before o, 1 when after and 0 when equal.
func (k SortingKey) Compare(o SortingKey) int {
	if c := cmp.Compare(k.ExperienceOrder, o.ExperienceOrder); c != 0 {
		return c
	}
	if c := cmp.Compare(o.ExperienceSimilarity, k.ExperienceSimilarity); c != 0 {
		return c
	}
	if c := cmp.Compare(k.ExperienceDeclOrder, o.ExperienceDeclOrder); c != 0 {
		return c
	}
	if c := cmp.Compare(k.ExperienceKey, o.ExperienceKey); c != 0 {
		return c
	}
	if c := cmp.Compare(k.BulletOrder, o.BulletOrder); c != 0 {
		return c
	}
	if c := cmp.Compare(o.BulletSimilarity, k.BulletSimilarity); c != 0 {
		return c
	}
	if c := cmp.Compare(k.GroupDeclOrder, o.GroupDeclOrder); c != 0 {
		return c
	}
	return cmp.Compare(k.BulletDeclOrder, o.BulletDeclOrder)
}

// Less reports whether k sorts before o.
func (k SortingKey) Less(o SortingKey) bool {
	return k.Compare(o) < 0
}

func (k SortingKey) String() string {
	return fmt.Sprintf("(exp order=%d sim=%.4f decl=%d id=%s | bullet order=%d sim=%.4f group=%d decl=%d)",
		k.ExperienceOrder, k.ExperienceSimilarity, k.ExperienceDeclOrder, k.ExperienceKey,
		k.BulletOrder, k.BulletSimilarity, k.GroupDeclOrder, k.BulletDeclOrder)
}
