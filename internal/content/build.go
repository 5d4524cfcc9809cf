package content

import (
	"fmt"

	"github.com/jonathan/gencv/internal/types"
)

// Build creates a model from parsed content records. Experiences, groups and
// bullets are added in declaration order; each dependant follows its
// dependency directly in the group.
func Build(file *types.ContentFile) (*Model, error) {
	m := NewModel()
	if file == nil {
		return m, nil
	}

	for _, rec := range file.Experiences {
		exp := m.AddExperience(ExperienceSpec{
			Key:      rec.ID,
			Category: rec.Type,
			Order:    intOr(rec.Order, Unordered),
			Min:      intOr(rec.MinPoints, NoLimit),
			Max:      intOr(rec.MaxPoints, NoLimit),
			MetaText: rec.MetaTexts(),
		})

		for gi, grp := range rec.Groups {
			gid, err := m.AddGroup(exp, intOr(grp.Min, NoLimit), intOr(grp.Max, NoLimit))
			if err != nil {
				return nil, fmt.Errorf("experience %s group %d: %w", rec.ID, gi, err)
			}
			for _, point := range grp.Points {
				bid, err := m.AddBullet(gid, BulletSpec{
					Text:  point.Text,
					Bold:  point.Bold,
					Order: intOr(point.Order, Unordered),
				})
				if err != nil {
					return nil, fmt.Errorf("experience %s group %d: %w", rec.ID, gi, err)
				}
				if err := m.addDependants(bid, point.Dependants); err != nil {
					return nil, fmt.Errorf("experience %s group %d: %w", rec.ID, gi, err)
				}
			}
		}
	}

	return m, nil
}

// addDependants adds points depending on parent, depth first. A dependant
// without a fixed order sorts right after its dependency.
func (m *Model) addDependants(parent BulletID, points []types.PointRecord) error {
	for _, point := range points {
		order := m.Bullets[parent].Order + 1
		if point.Order != nil {
			order = *point.Order
		}
		id, err := m.AddDependant(parent, BulletSpec{
			Text:  point.Text,
			Bold:  point.Bold,
			Order: order,
		})
		if err != nil {
			return err
		}
		if err := m.addDependants(id, point.Dependants); err != nil {
			return err
		}
	}
	return nil
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
