package embedding

import (
	"fmt"

	"github.com/hupe1980/vecgo/distance"
)

// Cosine returns the cosine similarity of two vectors. A zero vector has no
// direction, so its similarity to anything is 0.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, &Error{Message: fmt.Sprintf("vector dimension mismatch: %d != %d", len(a), len(b))}
	}
	if len(a) == 0 {
		return 0, nil
	}

	na, ok := distance.NormalizeL2Copy(a)
	if !ok {
		return 0, nil
	}
	nb, ok := distance.NormalizeL2Copy(b)
	if !ok {
		return 0, nil
	}
	return float64(distance.Dot(na, nb)), nil
}

// Mean returns the element-wise mean of vectors. Vectors that are empty are
// ignored; nil is returned when none remain or dimensions disagree.
func Mean(vectors [][]float32) []float32 {
	var sum []float64
	count := 0
	for _, v := range vectors {
		if len(v) == 0 {
			continue
		}
		if sum == nil {
			sum = make([]float64, len(v))
		}
		if len(v) != len(sum) {
			return nil
		}
		for i, x := range v {
			sum[i] += float64(x)
		}
		count++
	}
	if count == 0 {
		return nil
	}

	mean := make([]float32, len(sum))
	for i, s := range sum {
		mean[i] = float32(s / float64(count))
	}
	return mean
}
