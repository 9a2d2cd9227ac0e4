package physics

import (
	"math"

	"github.com/annel0/voxelcore/internal/vec"
)

// Оси для покомпонентного движения
const (
	AxisX = iota
	AxisY
	AxisZ
)

// touchEpsilon отделяет касание граней от пересечения
const touchEpsilon = 1e-9

// SolidChecker сообщает, является ли блок в позиции твёрдым
type SolidChecker func(vec.Vec3) bool

// AABB: выровненный по осям параллелепипед в мировых координатах
type AABB struct {
	Min vec.Vec3Float
	Max vec.Vec3Float
}

// BoxCollider представляет простой прямоугольный коллайдер с центром в позиции сущности
type BoxCollider struct {
	HalfWidth  float64 // Половина ширины по X и Z
	HalfHeight float64 // Половина высоты по Y
}

// NewBoxCollider создаёт новый коллайдер с указанными полуразмерами
func NewBoxCollider(halfWidth, halfHeight float64) *BoxCollider {
	return &BoxCollider{
		HalfWidth:  halfWidth,
		HalfHeight: halfHeight,
	}
}

// Bounds возвращает AABB коллайдера с центром в center
func (bc *BoxCollider) Bounds(center vec.Vec3Float) AABB {
	return AABB{
		Min: vec.Vec3Float{X: center.X - bc.HalfWidth, Y: center.Y - bc.HalfHeight, Z: center.Z - bc.HalfWidth},
		Max: vec.Vec3Float{X: center.X + bc.HalfWidth, Y: center.Y + bc.HalfHeight, Z: center.Z + bc.HalfWidth},
	}
}

// Center возвращает центр AABB
func (a AABB) Center() vec.Vec3Float {
	return vec.Vec3Float{
		X: (a.Min.X + a.Max.X) / 2,
		Y: (a.Min.Y + a.Max.Y) / 2,
		Z: (a.Min.Z + a.Max.Z) / 2,
	}
}

// BlockBounds возвращает AABB единичного блока
func BlockBounds(pos vec.Vec3) AABB {
	min := vec.Vec3Float{X: float64(pos.X), Y: float64(pos.Y), Z: float64(pos.Z)}
	return AABB{Min: min, Max: min.Add(vec.Vec3Float{X: 1, Y: 1, Z: 1})}
}

// Intersects проверяет пересечение; касание гранями пересечением не считается
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X < b.Max.X && a.Max.X > b.Min.X &&
		a.Min.Y < b.Max.Y && a.Max.Y > b.Min.Y &&
		a.Min.Z < b.Max.Z && a.Max.Z > b.Min.Z
}

// Offset сдвигает AABB на вектор
func (a AABB) Offset(d vec.Vec3Float) AABB {
	return AABB{Min: a.Min.Add(d), Max: a.Max.Add(d)}
}

// Union возвращает наименьший AABB, содержащий оба
func (a AABB) Union(b AABB) AABB {
	return AABB{
		Min: vec.Vec3Float{X: math.Min(a.Min.X, b.Min.X), Y: math.Min(a.Min.Y, b.Min.Y), Z: math.Min(a.Min.Z, b.Min.Z)},
		Max: vec.Vec3Float{X: math.Max(a.Max.X, b.Max.X), Y: math.Max(a.Max.Y, b.Max.Y), Z: math.Max(a.Max.Z, b.Max.Z)},
	}
}

// BlockRange возвращает диапазон позиций блоков, которые пересекает AABB
func (a AABB) BlockRange() (vec.Vec3, vec.Vec3) {
	min := a.Min.Floor()
	max := vec.Vec3{
		X: int(math.Floor(a.Max.X - touchEpsilon)),
		Y: int(math.Floor(a.Max.Y - touchEpsilon)),
		Z: int(math.Floor(a.Max.Z - touchEpsilon)),
	}
	return min, max
}

// CanMoveToPosition проверяет, что AABB не пересекает ни одного твёрдого блока
func CanMoveToPosition(box AABB, solid SolidChecker) bool {
	min, max := box.BlockRange()
	for y := min.Y; y <= max.Y; y++ {
		for z := min.Z; z <= max.Z; z++ {
			for x := min.X; x <= max.X; x++ {
				if solid(vec.Vec3{X: x, Y: y, Z: z}) {
					return false
				}
			}
		}
	}
	return true
}

// MoveAxis сдвигает AABB вдоль одной оси. При столкновении AABB прижимается
// к грани ближайшего твёрдого блока, и второй результат равен true.
func MoveAxis(box AABB, axis int, delta float64, solid SolidChecker) (AABB, bool) {
	if delta == 0 {
		return box, false
	}

	target := box.Offset(axisVector(axis, delta))
	swept := box.Union(target)
	if CanMoveToPosition(swept, solid) {
		return target, false
	}

	// Ищем ближайшую грань среди блоков на пути AABB
	limit := component(box.Min, axis) + delta
	if delta > 0 {
		limit = component(box.Max, axis) + delta
	}

	min, max := swept.BlockRange()
	for y := min.Y; y <= max.Y; y++ {
		for z := min.Z; z <= max.Z; z++ {
			for x := min.X; x <= max.X; x++ {
				pos := vec.Vec3{X: x, Y: y, Z: z}
				if !solid(pos) {
					continue
				}
				bounds := BlockBounds(pos)
				if delta > 0 {
					face := component(bounds.Min, axis)
					if face >= component(box.Max, axis)-touchEpsilon && face < limit {
						limit = face
					}
				} else {
					face := component(bounds.Max, axis)
					if face <= component(box.Min, axis)+touchEpsilon && face > limit {
						limit = face
					}
				}
			}
		}
	}

	var moved float64
	if delta > 0 {
		moved = math.Max(0, limit-component(box.Max, axis))
	} else {
		moved = math.Min(0, limit-component(box.Min, axis))
	}
	return box.Offset(axisVector(axis, moved)), true
}

func component(v vec.Vec3Float, axis int) float64 {
	switch axis {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

func axisVector(axis int, value float64) vec.Vec3Float {
	switch axis {
	case AxisX:
		return vec.Vec3Float{X: value}
	case AxisY:
		return vec.Vec3Float{Y: value}
	default:
		return vec.Vec3Float{Z: value}
	}
}
