package content

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/gencv/internal/schemas"
	"github.com/jonathan/gencv/internal/types"
	schemadocs "github.com/jonathan/gencv/schemas"
)

var validate = validator.New()

// LoadFile reads a YAML content file from disk
func LoadFile(path string) (*types.ContentFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}
	return Parse(data)
}

// Parse decodes YAML content, validates it and normalizes it. The top level
// maps experience identifiers to records; mapping order is declaration order.
func Parse(data []byte) (*types.ContentFile, error) {
	file := &types.ContentFile{}
	if len(bytes.TrimSpace(data)) == 0 {
		return file, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &LoadError{Message: "failed to unmarshal YAML", Cause: err}
	}
	if len(root.Content) == 0 {
		return file, nil
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, &LoadError{Message: fmt.Sprintf("top level must map experience ids to records (line %d)", doc.Line)}
	}

	var generic any
	if err := doc.Decode(&generic); err != nil {
		return nil, &LoadError{Message: "failed to decode YAML", Cause: err}
	}
	if err := schemas.ValidateDocument(schemadocs.Content, generic); err != nil {
		return nil, &LoadError{Message: "content does not match schema", Cause: err}
	}

	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i], doc.Content[i+1]

		var rec types.ExperienceRecord
		if err := value.Decode(&rec); err != nil {
			return nil, &LoadError{
				Message: fmt.Sprintf("failed to decode experience '%s'", key.Value),
				Cause:   err,
			}
		}
		rec.ID = key.Value
		file.Experiences = append(file.Experiences, rec)
	}

	if err := validate.Struct(file); err != nil {
		return nil, &LoadError{Message: "content failed validation", Cause: err}
	}
	if err := Normalize(file); err != nil {
		return nil, err
	}
	return file, nil
}

// Load reads, validates and builds a model from a content file
func Load(path string) (*Model, error) {
	file, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Build(file)
}
