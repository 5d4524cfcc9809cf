// Package prompts holds the language model prompts as embedded JSON files,
// one object of key to template per file.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// Prompt files
const (
	QueryFile = "query.json"
)

// Prompt keys in QueryFile
const (
	KeySummarizeQuery  = "summarize-query"
	KeyExtractKeywords = "extract-keywords"
	KeyReviewBullet    = "review-bullet"
)

var (
	mu     sync.Mutex
	loaded = make(map[string]map[string]string)
)

// Get returns the prompt stored under key in filename.
func Get(filename, key string) (string, error) {
	file, err := load(filename)
	if err != nil {
		return "", err
	}
	prompt, ok := file[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet is Get for prompts that ship with the binary.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Keys lists the prompt keys of a file in sorted order.
func Keys(filename string) ([]string, error) {
	file, err := load(filename)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(file))
	for key := range file {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Format substitutes each {{.Name}} placeholder with data["Name"]. Unknown
// placeholders are left in place.
func Format(template string, data map[string]string) string {
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, 2*len(names))
	for _, name := range names {
		pairs = append(pairs, "{{."+name+"}}", data[name])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

func load(filename string) (map[string]string, error) {
	mu.Lock()
	defer mu.Unlock()

	if file, ok := loaded[filename]; ok {
		return file, nil
	}
	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var file map[string]string
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}
	loaded[filename] = file
	return file, nil
}
