// Package types provides type definitions for structured data used throughout gencv.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ContentFile is the parsed source content file. Experiences keep the order
// in which they were declared.
type ContentFile struct {
	Experiences []ExperienceRecord `json:"experiences" validate:"dive"`
}

// ExperienceRecord is one job or project entry as authored in the content file.
// The ID comes from the mapping key the record was declared under.
type ExperienceRecord struct {
	ID        string        `yaml:"-" json:"id" validate:"required"`
	Type      string        `yaml:"type" json:"type" validate:"required"`
	MetaText1 string        `yaml:"metatext1" json:"metatext1,omitempty"`
	MetaText2 string        `yaml:"metatext2" json:"metatext2,omitempty"`
	MetaText3 string        `yaml:"metatext3" json:"metatext3,omitempty"`
	MetaText4 string        `yaml:"metatext4" json:"metatext4,omitempty"`
	MetaText5 string        `yaml:"metatext5" json:"metatext5,omitempty"`
	MinPoints *int          `yaml:"min_points" json:"min_points,omitempty" validate:"omitempty,gte=0"`
	MaxPoints *int          `yaml:"max_points" json:"max_points,omitempty" validate:"omitempty,gte=0"`
	Order     *int          `yaml:"order" json:"order,omitempty"`
	Groups    []GroupRecord `yaml:"groups" json:"groups" validate:"dive"`
}

// MetaTexts returns the five free-form metadata fields in slot order.
func (r ExperienceRecord) MetaTexts() [5]string {
	return [5]string{r.MetaText1, r.MetaText2, r.MetaText3, r.MetaText4, r.MetaText5}
}

// GroupRecord is a bucket of points with optional bullet-count bounds.
type GroupRecord struct {
	Min    *int          `yaml:"min" json:"min,omitempty" validate:"omitempty,gte=0"`
	Max    *int          `yaml:"max" json:"max,omitempty" validate:"omitempty,gte=0"`
	Points []PointRecord `yaml:"points" json:"points" validate:"dive"`
}

// PointRecord is a single bullet. Dependants are points that may only appear
// when this one does.
type PointRecord struct {
	Text       string        `yaml:"text" json:"text" validate:"required"`
	Bold       []string      `yaml:"bold" json:"bold,omitempty"`
	Order      *int          `yaml:"order" json:"order,omitempty"`
	Dependants []PointRecord `yaml:"dependants" json:"dependants,omitempty" validate:"dive"`
}
