package world

import (
	"testing"

	"github.com/annel0/voxelcore/internal/logging"
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world/block"
)

// emptyWorld создаёт мир с загруженными пустыми чанками в радиусе radius
// от колонки (0, 0) по всей высоте и без грязных пометок.
func emptyWorld(t *testing.T, radius int) *World {
	t.Helper()

	w := NewWorld(1, logging.Discard())
	for cy := 0; cy < ChunksHigh; cy++ {
		for cz := -radius; cz <= radius; cz++ {
			for cx := -radius; cx <= radius; cx++ {
				w.InsertChunk(NewChunk(vec.Vec3{X: cx, Y: cy, Z: cz}))
			}
		}
	}
	clearAllDirty(w)
	return w
}

func clearAllDirty(w *World) {
	for _, key := range w.DirtyChunks() {
		w.ClearDirty(key)
	}
}

// fillLayer заполняет квадрат [-half, half] на высоте y блоком id
func fillLayer(w *World, y, half int, id block.BlockID) {
	for z := -half; z <= half; z++ {
		for x := -half; x <= half; x++ {
			w.SetBlockWorld(vec.Vec3{X: x, Y: y, Z: z}, id)
		}
	}
}

func containsKey(keys []vec.Vec3, key vec.Vec3) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
