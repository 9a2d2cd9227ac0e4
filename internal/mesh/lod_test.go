package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/annel0/voxelcore/internal/vec"
)

func TestLODForDistance(t *testing.T) {
	thresholds := []float64{4, 8, 16}

	tests := []struct {
		dist float64
		want int
	}{
		{0, 1},
		{3.9, 1},
		{4, 2},
		{7, 2},
		{8, 4},
		{15, 4},
		{16, 8},
		{1000, 8},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LODForDistance(tt.dist, thresholds), "расстояние %v", tt.dist)
	}

	assert.Equal(t, 1, LODForDistance(1000, nil), "Без порогов всегда полная детализация")
	assert.Equal(t, MaxLOD, LODForDistance(1000, []float64{1, 2, 3, 4, 5, 6}))
}

func TestDistancePolicy(t *testing.T) {
	policy := DistancePolicy(vec.Vec3{X: 0, Y: 4, Z: 0}, []float64{2, 4})

	assert.Equal(t, 1, policy(vec.Vec3{X: 1, Y: 4, Z: 0}))
	assert.Equal(t, 2, policy(vec.Vec3{X: 3, Y: 4, Z: 0}))
	assert.Equal(t, 4, policy(vec.Vec3{X: 0, Y: 4, Z: 10}))
}
