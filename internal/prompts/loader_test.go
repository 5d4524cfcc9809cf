package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_QueryPrompts(t *testing.T) {
	prompt, err := Get(QueryFile, KeySummarizeQuery)
	require.NoError(t, err)
	assert.Contains(t, prompt, "text search query")
	assert.Contains(t, prompt, "{{.Description}}")

	prompt, err = Get(QueryFile, KeyExtractKeywords)
	require.NoError(t, err)
	assert.Contains(t, prompt, "CSV")
}

func TestGet_InvalidFile(t *testing.T) {
	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	_, err := Get(QueryFile, "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
	assert.NotPanics(t, func() {
		assert.NotEmpty(t, MustGet(QueryFile, KeySummarizeQuery))
	})
}

func TestKeys(t *testing.T) {
	keys, err := Keys(QueryFile)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyExtractKeywords, KeyReviewBullet, KeySummarizeQuery}, keys)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		want     string
	}{
		{"substitutes", "Hello {{.Name}}, welcome to {{.Company}}!", map[string]string{"Name": "Alice", "Company": "Acme Corp"}, "Hello Alice, welcome to Acme Corp!"},
		{"no placeholders", "No placeholders here", map[string]string{"Key": "Value"}, "No placeholders here"},
		{"unknown placeholder kept", "Hello {{.Name}}", map[string]string{}, "Hello {{.Name}}"},
		{"repeated", "{{.X}}-{{.X}}", map[string]string{"X": "a"}, "a-a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.template, tt.data))
		})
	}
}
