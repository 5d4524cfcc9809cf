package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"scaled", []float32{1, 0}, []float32{5, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 1}, []float32{-1, -1}, -1},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cosine(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-6)
		})
	}
}

func TestCosine_DimensionMismatch(t *testing.T) {
	_, err := Cosine([]float32{1}, []float32{1, 2})
	require.Error(t, err)

	var embErr *Error
	assert.ErrorAs(t, err, &embErr)
	assert.Contains(t, err.Error(), "dimension mismatch")
}

func TestMean(t *testing.T) {
	got := Mean([][]float32{{1, 2}, {3, 4}, nil})
	assert.Equal(t, []float32{2, 3}, got)

	assert.Nil(t, Mean(nil))
	assert.Nil(t, Mean([][]float32{{1}, {1, 2}}))
}
