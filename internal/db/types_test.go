package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStepConstants(t *testing.T) {
	steps := []string{StepJobDescription, StepQuery, StepKeywords, StepSelection, StepResumeTex}

	seen := make(map[string]bool)
	for _, step := range steps {
		assert.NotEmpty(t, step)
		assert.False(t, seen[step], "duplicate step %q", step)
		seen[step] = true
	}
}

func TestRun_Finished(t *testing.T) {
	assert.False(t, (&Run{Status: RunStatusRunning}).Finished())
	assert.True(t, (&Run{Status: RunStatusCompleted}).Finished())
	assert.True(t, (&Run{Status: RunStatusFailed}).Finished())
}

func TestJobPage_IsFresh(t *testing.T) {
	page := &JobPage{FetchedAt: time.Now().Add(-time.Hour)}

	assert.True(t, page.IsFresh(2*time.Hour))
	assert.False(t, page.IsFresh(30*time.Minute))
}

func TestHashContent(t *testing.T) {
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		HashContent(""))
	assert.Equal(t, HashContent("<html>"), HashContent("<html>"))
	assert.NotEqual(t, HashContent("a"), HashContent("b"))
}

func TestSchemaEmbedded(t *testing.T) {
	for _, table := range []string{"runs", "artifacts", "job_pages"} {
		assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS "+table)
	}
}
