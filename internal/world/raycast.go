package world

import (
	"math"

	"github.com/annel0/voxelcore/internal/vec"
)

// RayHit: результат трассировки луча
type RayHit struct {
	Block    vec.Vec3 // Первый твёрдый блок на пути луча
	Previous vec.Vec3 // Пустая клетка перед ним (туда ставится новый блок)
	Distance float64  // Расстояние от начала луча до входа в блок
}

// Normal возвращает нормаль грани, через которую луч вошёл в блок
func (h RayHit) Normal() vec.Vec3 {
	return h.Previous.Sub(h.Block)
}

// Raycast трассирует луч в мире
func (w *World) Raycast(origin, direction vec.Vec3Float, maxDistance float64) (RayHit, bool) {
	return Raycast(w, origin, direction, maxDistance)
}

// Raycast обходит клетки вдоль луча методом Amanatides-Woo (DDA) и останавливается
// на первом твёрдом блоке или по достижении maxDistance.
func Raycast(src BlockSource, origin, direction vec.Vec3Float, maxDistance float64) (RayHit, bool) {
	dir := direction.Normalized()
	if dir == (vec.Vec3Float{}) || maxDistance < 0 {
		return RayHit{}, false
	}

	pos := origin.Floor()
	stepX, tMaxX, tDeltaX := dda(origin.X, dir.X, pos.X)
	stepY, tMaxY, tDeltaY := dda(origin.Y, dir.Y, pos.Y)
	stepZ, tMaxZ, tDeltaZ := dda(origin.Z, dir.Z, pos.Z)

	prev := pos
	t := 0.0
	for {
		if src.GetBlock(pos).IsSolid() {
			return RayHit{Block: pos, Previous: prev, Distance: t}, true
		}

		prev = pos
		switch {
		case tMaxX <= tMaxY && tMaxX <= tMaxZ:
			t = tMaxX
			tMaxX += tDeltaX
			pos.X += stepX
		case tMaxY <= tMaxZ:
			t = tMaxY
			tMaxY += tDeltaY
			pos.Y += stepY
		default:
			t = tMaxZ
			tMaxZ += tDeltaZ
			pos.Z += stepZ
		}

		if t > maxDistance {
			return RayHit{}, false
		}
	}
}

// dda возвращает шаг по оси, параметр t до первой границы клетки и шаг t между границами
func dda(origin, dir float64, cell int) (int, float64, float64) {
	switch {
	case dir > 0:
		return 1, (float64(cell+1) - origin) / dir, 1 / dir
	case dir < 0:
		return -1, (origin - float64(cell)) / -dir, -1 / dir
	default:
		return 0, math.Inf(1), math.Inf(1)
	}
}
