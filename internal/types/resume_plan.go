// Package types provides type definitions for structured data used throughout gencv.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ResumePlan summarises the outcome of one selection run. It is what gets
// printed in verbose mode and stored as the selection artifact.
type ResumePlan struct {
	Query               string               `json:"query"`
	SelectedExperiences []SelectedExperience `json:"selected_experiences"`
	SpaceBudget         SpaceBudget          `json:"space_budget"`
	TotalLines          int                  `json:"total_lines"`
}

// SelectedExperience lists the bullets chosen for one experience, in render order.
type SelectedExperience struct {
	ExperienceID   string    `json:"experience_id"`
	Category       string    `json:"category"`
	Similarity     float64   `json:"similarity"`
	Bullets        []string  `json:"bullets"`
	Similarities   []float64 `json:"similarities"`
	EstimatedLines int       `json:"estimated_lines"`
}

// SpaceBudget holds the line budget and the per-category quotas the run honoured.
type SpaceBudget struct {
	MaxLines   int            `json:"max_lines"`
	LineChars  int            `json:"line_chars"`
	SlotQuotas map[string]int `json:"slot_quotas,omitempty"`
}
