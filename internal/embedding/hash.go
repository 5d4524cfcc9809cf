package embedding

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"
)

// DefaultHashDimensions is the vector width of the hashing engine.
const DefaultHashDimensions = 256

// HashEngine is an offline engine based on feature hashing of lowercased
// word unigrams and bigrams. Equal inputs always produce equal vectors,
// which makes it suitable for tests and for runs without a model server.
type HashEngine struct {
	dims int
}

// NewHashEngine creates a hashing engine with the given width.
func NewHashEngine(dims int) *HashEngine {
	if dims <= 0 {
		dims = DefaultHashDimensions
	}
	return &HashEngine{dims: dims}
}

// Embed hashes text into a fixed-width vector.
func (e *HashEngine) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vec := make([]float32, e.dims)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '+' && r != '#'
	})
	for i, w := range words {
		e.add(vec, w, 1)
		if i > 0 {
			e.add(vec, words[i-1]+" "+w, 0.5)
		}
	}
	return vec, nil
}

func (e *HashEngine) add(vec []float32, feature string, weight float32) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(feature))
	sum := h.Sum64()
	idx := int(sum % uint64(e.dims))
	// one hash bit picks the sign so collisions cancel instead of pile up
	if sum&(1<<63) != 0 {
		weight = -weight
	}
	vec[idx] += weight
}

// Name returns the engine identifier.
func (e *HashEngine) Name() string {
	return fmt.Sprintf("%s:%d", ProviderHash, e.dims)
}
