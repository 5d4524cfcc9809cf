// Package types provides type definitions for structured data used throughout gencv.
//
//nolint:revive // types is a standard Go package name pattern
package types

// BulletData is the text of one selected bullet plus the substrings to emphasise.
type BulletData struct {
	Text string   `json:"text"`
	Bold []string `json:"bold,omitempty"`
}

// ExperienceData is one selected experience, ready to be rendered into its
// category's block template.
type ExperienceData struct {
	ID       string       `json:"id"`
	Category string       `json:"category"`
	MetaText [5]string    `json:"metatext"`
	Bullets  []BulletData `json:"bullets"`
}

// RenderedItem is a filled block template tagged with the category whose
// slot it belongs in.
type RenderedItem struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}
