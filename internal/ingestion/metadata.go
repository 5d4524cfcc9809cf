package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Source kinds a description can come from
const (
	SourceText = "text"
	SourceFile = "file"
	SourceURL  = "url"
)

// Metadata describes where a job description came from
type Metadata struct {
	Source    string            `json:"source"`
	URL       string            `json:"url,omitempty"`
	Path      string            `json:"path,omitempty"`
	Timestamp string            `json:"timestamp"`
	Hash      string            `json:"hash"`
	Platform  string            `json:"platform,omitempty"`
	FromCache bool              `json:"from_cache,omitempty"`
	Company   string            `json:"company,omitempty"`
	Title     string            `json:"title,omitempty"`
	AdminInfo map[string]string `json:"admin_info,omitempty"`
}

// NewMetadata creates a Metadata stamped with the current time
func NewMetadata(content, source, url string) *Metadata {
	return &Metadata{
		Source:    source,
		URL:       url,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to indented JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
