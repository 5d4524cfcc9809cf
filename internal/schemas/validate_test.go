package schemas

import (
	"errors"
	"testing"

	"github.com/jonathan/gencv/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSONString_Placeholder(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{name: "valid", payload: `{"placetype": "job", "n": 2}`},
		{name: "zero quota", payload: `{"placetype": "project", "n": 0}`},
		{name: "missing n", payload: `{"placetype": "job"}`, wantErr: true},
		{name: "missing placetype", payload: `{"n": 2}`, wantErr: true},
		{name: "string quota", payload: `{"placetype": "job", "n": "2"}`, wantErr: true},
		{name: "fractional quota", payload: `{"placetype": "job", "n": 1.5}`, wantErr: true},
		{name: "negative quota", payload: `{"placetype": "job", "n": -1}`, wantErr: true},
		{name: "empty placetype", payload: `{"placetype": "", "n": 1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSONString(schemas.Placeholder, tt.payload)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.NotEmpty(t, validationErr.Errors)
			assert.NotEmpty(t, validationErr.Summary())
		})
	}
}

func TestValidateJSONString_MalformedJSON(t *testing.T) {
	err := ValidateJSONString(schemas.Placeholder, `{"placetype": "job", "n": }`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateDocument_Content(t *testing.T) {
	valid := map[string]any{
		"acme": map[string]any{
			"type":       "job",
			"metatext1":  "Acme",
			"min_points": 1,
			"groups": []any{
				map[string]any{
					"max": 2,
					"points": []any{
						map[string]any{
							"text": "Built things",
							"dependants": []any{
								map[string]any{"text": "Shipped them"},
							},
						},
					},
				},
			},
		},
	}
	assert.NoError(t, ValidateDocument(schemas.Content, valid))

	missingText := map[string]any{
		"acme": map[string]any{
			"type": "job",
			"groups": []any{
				map[string]any{"points": []any{map[string]any{"bold": []any{"x"}}}},
			},
		},
	}
	err := ValidateDocument(schemas.Content, missingText)
	require.Error(t, err)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), "text")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "n", Message: "n is required"},
			{Field: "(root)", Message: "bad"},
		},
	}

	assert.Contains(t, err.Error(), "1. n: n is required")
	assert.Contains(t, err.Error(), "2. (root): bad")
	assert.Equal(t, "n: n is required; (root): bad", err.Summary())
}
