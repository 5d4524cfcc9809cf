package db

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// DefaultPageCacheTTL is how long a fetched job page is served from cache
const DefaultPageCacheTTL = 7 * 24 * time.Hour

// DefaultListLimit bounds ListRuns when no limit is given
const DefaultListLimit = 50

// Run status values
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Artifact step names stored per run
const (
	StepJobDescription = "job_description"
	StepQuery          = "query"
	StepKeywords       = "keywords"
	StepSelection      = "selection"
	StepResumeTex      = "resume_tex"
)

// Run represents a resume build
type Run struct {
	ID           uuid.UUID  `json:"id"`
	Template     string     `json:"template"`
	Query        string     `json:"query"`
	JobURL       string     `json:"job_url,omitempty"`
	Status       string     `json:"status"`
	ErrorMessage *string    `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// Finished reports whether the run has completed or failed
func (r *Run) Finished() bool {
	return r.Status == RunStatusCompleted || r.Status == RunStatusFailed
}

// ArtifactSummary is a lightweight view of an artifact for listing
type ArtifactSummary struct {
	ID        uuid.UUID `json:"id"`
	Step      string    `json:"step"`
	CreatedAt time.Time `json:"created_at"`
	HasJSON   bool      `json:"has_json"`
	HasText   bool      `json:"has_text"`
}

// JobPage is a cached job posting page
type JobPage struct {
	URL         string    `json:"url"`
	RawHTML     string    `json:"-"`
	ParsedText  string    `json:"parsed_text"`
	ContentHash string    `json:"content_hash"`
	HTTPStatus  int       `json:"http_status"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// IsFresh returns true if the page was fetched within maxAge
func (p *JobPage) IsFresh(maxAge time.Duration) bool {
	return time.Since(p.FetchedAt) < maxAge
}

// HashContent computes the SHA256 hex digest of content
func HashContent(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
