package rendering

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/jonathan/gencv/internal/types"
)

// File names inside a template directory.
const (
	BodyFile   = "+resume.tex"
	BlocksFile = "+resume.yaml"
)

// ResumeTemplate is a loaded template directory.
type ResumeTemplate struct {
	Name     string
	Dir      string
	Template *Template
	Blocks   Blocks
}

// LoadTemplateDir loads <root>/<name>/+resume.tex and +resume.yaml.
func LoadTemplateDir(root, name string) (*ResumeTemplate, error) {
	dir := filepath.Join(root, name)

	body, err := os.ReadFile(filepath.Join(dir, BodyFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &TemplateError{Message: fmt.Sprintf("template %q not found in %s", name, root), Cause: err}
		}
		return nil, &TemplateError{Message: fmt.Sprintf("failed to read %s", BodyFile), Cause: err}
	}

	tmpl, err := Compile(string(body))
	if err != nil {
		return nil, err
	}

	blocks, err := LoadBlocks(filepath.Join(dir, BlocksFile))
	if err != nil {
		return nil, err
	}

	return &ResumeTemplate{Name: name, Dir: dir, Template: tmpl, Blocks: blocks}, nil
}

// Render fills the template with the given experiences.
func (rt *ResumeTemplate) Render(experiences []types.ExperienceData, logger *zap.Logger) string {
	return rt.Template.FillString(RenderItems(rt.Blocks, experiences, logger))
}

// ListTemplates returns the names of template directories under root.
func ListTemplates(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, &TemplateError{Message: fmt.Sprintf("failed to read template dir %s", root), Cause: err}
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(root, e.Name(), BodyFile)); err == nil {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
