package mesh

import (
	"math"

	"github.com/annel0/voxelcore/internal/vec"
)

// LODPolicy выбирает шаг детализации для чанка
type LODPolicy func(key vec.Vec3) int

// LODForDistance выбирает шаг по расстоянию в чанках: ближе thresholds[0]
// шаг 1, ближе thresholds[1] шаг 2 и так далее до MaxLOD.
func LODForDistance(dist float64, thresholds []float64) int {
	step := 1
	for _, limit := range thresholds {
		if dist < limit || step == MaxLOD {
			return step
		}
		step *= 2
	}
	return step
}

// DistancePolicy: политика LOD относительно чанка center
func DistancePolicy(center vec.Vec3, thresholds []float64) LODPolicy {
	return func(key vec.Vec3) int {
		return LODForDistance(math.Sqrt(key.DistanceTo(center)), thresholds)
	}
}
