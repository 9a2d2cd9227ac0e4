package mesh

import (
	"testing"

	"github.com/annel0/voxelcore/internal/logging"
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world"
	"github.com/annel0/voxelcore/internal/world/block"
)

// center: чанк на высоте 64..79, вдали от границ мира
var center = vec.Vec3{X: 0, Y: 4, Z: 0}

// testWorld создаёт мир с пустым чанком center и, если neighbours, его 26 соседями
func testWorld(t *testing.T, neighbours bool) *world.World {
	t.Helper()

	w := world.NewWorld(1, logging.Discard())
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				key := center.Add(vec.Vec3{X: dx, Y: dy, Z: dz})
				if key == center || neighbours {
					w.InsertChunk(world.NewChunk(key))
				}
			}
		}
	}
	return w
}

// at переводит локальные координаты чанка center в мировые
func at(x, y, z int) vec.Vec3 {
	return vec.FromChunkLocal(center, vec.Vec3{X: x, Y: y, Z: z})
}

func fillChunk(w *world.World, key vec.Vec3, id block.BlockID) {
	for z := 0; z < world.ChunkSize; z++ {
		for y := 0; y < world.ChunkSize; y++ {
			for x := 0; x < world.ChunkSize; x++ {
				w.SetBlockWorld(vec.FromChunkLocal(key, vec.Vec3{X: x, Y: y, Z: z}), id)
			}
		}
	}
}

// bruteForceArea считает видимые единичные грани чанка без слияния
func bruteForceArea(w *world.World, key vec.Vec3) [FaceCount]int {
	var area [FaceCount]int
	for z := 0; z < world.ChunkSize; z++ {
		for y := 0; y < world.ChunkSize; y++ {
			for x := 0; x < world.ChunkSize; x++ {
				pos := vec.FromChunkLocal(key, vec.Vec3{X: x, Y: y, Z: z})
				for f := Face(0); f < FaceCount; f++ {
					if FaceVisible(w.GetBlock(pos), w.GetBlock(pos.Add(f.Normal()))) {
						area[f]++
					}
				}
			}
		}
	}
	return area
}

// quadVertices возвращает вершины i-го прямоугольника
func quadVertices(m *Mesh, i int) []Vertex {
	return m.Vertices[i*4 : i*4+4]
}
