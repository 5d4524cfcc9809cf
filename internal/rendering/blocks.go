package rendering

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/gencv/internal/schemas"
	"github.com/jonathan/gencv/internal/types"
	schemadocs "github.com/jonathan/gencv/schemas"
)

// Blocks maps a category to the block used to render its items.
type Blocks map[string]types.BlockTemplate

var validate = validator.New()

// LoadBlocks reads a block descriptor file.
func LoadBlocks(path string) (Blocks, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to read block descriptors %s", path),
			Cause:   err,
		}
	}
	return ParseBlocks(data)
}

// ParseBlocks decodes and validates block descriptors.
func ParseBlocks(data []byte) (Blocks, error) {
	var generic map[string]any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, &TemplateError{Message: "failed to unmarshal block descriptors", Cause: err}
	}
	if generic == nil {
		return Blocks{}, nil
	}
	if err := schemas.ValidateDocument(schemadocs.Blocks, generic); err != nil {
		return nil, &TemplateError{Message: "block descriptors do not match schema", Cause: err}
	}

	blocks := Blocks{}
	if err := yaml.Unmarshal(data, &blocks); err != nil {
		return nil, &TemplateError{Message: "failed to decode block descriptors", Cause: err}
	}
	for category, b := range blocks {
		if err := validate.Struct(b); err != nil {
			return nil, &TemplateError{
				Message: fmt.Sprintf("block for %q is incomplete", category),
				Cause:   err,
			}
		}
	}
	return blocks, nil
}
