package world

import (
	"slices"

	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world/block"
)

// neighbourhood возвращает ключи 3x3x3 окрестности чанка, обрезанные по высоте мира,
// в порядке vec.Compare.
func neighbourhood(key vec.Vec3) []vec.Vec3 {
	keys := make([]vec.Vec3, 0, 27)
	for dy := -1; dy <= 1; dy++ {
		y := key.Y + dy
		if !validChunkY(y) {
			continue
		}
		for dz := -1; dz <= 1; dz++ {
			for dx := -1; dx <= 1; dx++ {
				keys = append(keys, vec.Vec3{X: key.X + dx, Y: y, Z: key.Z + dz})
			}
		}
	}
	return keys
}

// AffectedChunks возвращает чанки, меши которых устаревают при изменении блока pos:
// вся 3x3x3 окрестность его чанка. Жадный мешер сливает грани с учётом
// соседей по диагонали, поэтому соседей только по граням недостаточно.
func AffectedChunks(pos vec.Vec3) []vec.Vec3 {
	return neighbourhood(pos.ToChunkCoords())
}

// affectedSet накапливает ключи затронутых чанков без повторов
type affectedSet map[vec.Vec3]struct{}

func (s affectedSet) addAround(pos vec.Vec3) {
	for _, key := range AffectedChunks(pos) {
		s[key] = struct{}{}
	}
}

func (s affectedSet) addChunkOf(pos vec.Vec3) {
	s[pos.ToChunkCoords()] = struct{}{}
}

func (s affectedSet) addAll(keys []vec.Vec3) {
	for _, key := range keys {
		s[key] = struct{}{}
	}
}

func (s affectedSet) sorted() []vec.Vec3 {
	if len(s) == 0 {
		return nil
	}
	keys := make([]vec.Vec3, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, vec.Compare)
	return keys
}

// markAffected помечает все загруженные чанки из списка грязными
func (w *World) markAffected(keys []vec.Vec3) {
	for _, key := range keys {
		w.MarkDirty(key)
	}
}

// BreakBlock ломает блок. Воздух, бедрок и жидкости не ломаются: возвращается
// пустой список. Иначе блок заменяется воздухом, выпадает предмет, запускаются
// вода и физика вокруг, и возвращаются все затронутые чанки.
func (w *World) BreakBlock(pos vec.Vec3) []vec.Vec3 {
	if !InWorldHeight(pos.Y) {
		return nil
	}

	broken := w.GetBlock(pos)
	if !broken.CanBreak() {
		return nil
	}

	w.SetBlockWorld(pos, block.Air)

	affected := make(affectedSet)
	affected.addAround(pos)

	w.spawnDrop(pos, broken)

	affected.addAll(w.TriggerWaterUpdate(pos))
	affected.addAll(w.physicsAround(pos))

	keys := affected.sorted()
	w.markAffected(keys)

	w.logger.Debug("сломан блок %s в %v, затронуто чанков: %d", broken, pos, len(keys))
	return keys
}

// PlaceBlock ставит блок на заменяемое место (воздух, жидкость, растительность).
// Возвращает затронутые чанки или пустой список, если установка невозможна.
func (w *World) PlaceBlock(pos vec.Vec3, id block.BlockID) []vec.Vec3 {
	if !InWorldHeight(pos.Y) || id == block.Air || !id.IsBlock() {
		return nil
	}
	if !w.GetBlock(pos).IsReplaceable() {
		return nil
	}

	w.SetBlockWorld(pos, id)

	affected := make(affectedSet)
	affected.addAround(pos)
	affected.addAll(w.TriggerWaterUpdate(pos))
	affected.addAll(w.physicsAround(pos))

	keys := affected.sorted()
	w.markAffected(keys)

	w.logger.Debug("поставлен блок %s в %v, затронуто чанков: %d", id, pos, len(keys))
	return keys
}

// physicsAround запускает физику в позиции и у шести её соседей
func (w *World) physicsAround(pos vec.Vec3) []vec.Vec3 {
	affected := make(affectedSet)
	affected.addAll(w.UpdateBlockPhysics(pos))
	for _, d := range vec.FaceNeighbors {
		affected.addAll(w.UpdateBlockPhysics(pos.Add(d)))
	}
	return affected.sorted()
}
