package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{name: "identical vectors", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, want: 1},
		{name: "orthogonal vectors", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite vectors", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1},
		{name: "length mismatch", a: []float32{1, 2}, b: []float32{1, 2, 3}, want: 0},
		{name: "empty vectors", a: nil, b: nil, want: 0},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 1}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, cosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestCosineSimilarityRanksCloserVectorsHigher(t *testing.T) {
	query := []float32{1, 1, 0}
	near := []float32{0.9, 1.1, 0.05}
	far := []float32{-1, 0.2, 3}

	assert.Greater(t, cosineSimilarity(query, near), cosineSimilarity(query, far))
}
