// Package types provides type definitions for structured data used throughout gencv.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Placeholder is the payload that follows a slot marker in a template body.
type Placeholder struct {
	PlaceType string `json:"placetype"`
	N         int    `json:"n"`
}

// BlockTemplate is the per-category item descriptor: the text of one rendered
// item and of one bullet line within it.
type BlockTemplate struct {
	Template string `yaml:"template" json:"template" validate:"required"`
	Bullet   string `yaml:"bullet" json:"bullet" validate:"required"`
}
