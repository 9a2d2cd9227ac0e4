package world

import (
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world/block"
)

const (
	// maxWaterVisits ограничивает обход воды: это неглубокая симуляция, а не гидродинамика
	maxWaterVisits = 15
	// maxPhysicsSteps ограничивает каскад осыпания за один вызов
	maxPhysicsSteps = 4096
)

// horizontal: четыре горизонтальных соседа
var horizontal = [4]vec.Vec3{vec.East, vec.West, vec.South, vec.North}

// lavaContacts: стороны, с которых вода превращает лаву в обсидиан (все, кроме низа)
var lavaContacts = [5]vec.Vec3{vec.Up, vec.East, vec.West, vec.South, vec.North}

// waterContacts: стороны, на которых вода превращает лаву в обсидиан (все, кроме верха)
var waterContacts = [5]vec.Vec3{vec.Down, vec.East, vec.West, vec.South, vec.North}

// TriggerWaterUpdate запускает обход воды в ширину от start, не более 15 позиций.
// Воздух под посещённой водой становится водой и попадает в очередь.
// В незагруженные чанки вода не течёт.
// Чанк каждой посещённой позиции считается затронутым.
func (w *World) TriggerWaterUpdate(start vec.Vec3) []vec.Vec3 {
	affected := make(affectedSet)

	// Пустая клетка рядом с водой заполняется сразу
	if InWorldHeight(start.Y) && w.loadedAt(start) && w.GetBlock(start) == block.Air &&
		w.touchesWaterFromAboveOrSide(start) {
		w.SetBlockWorld(start, block.Water)
		affected.addAround(start)
	}

	queue := make([]vec.Vec3, 0, 1+len(vec.FaceNeighbors))
	queue = append(queue, start)
	for _, d := range vec.FaceNeighbors {
		queue = append(queue, start.Add(d))
	}

	visited := make(map[vec.Vec3]struct{}, maxWaterVisits)
	for len(queue) > 0 && len(visited) < maxWaterVisits {
		pos := queue[0]
		queue = queue[1:]

		if _, seen := visited[pos]; seen {
			continue
		}
		visited[pos] = struct{}{}

		if !InWorldHeight(pos.Y) {
			continue
		}
		affected.addChunkOf(pos)

		if w.GetBlock(pos) != block.Water {
			continue
		}

		below := pos.Add(vec.Down)
		if InWorldHeight(below.Y) && w.loadedAt(below) && w.GetBlock(below) == block.Air {
			w.SetBlockWorld(below, block.Water)
			affected.addAround(below)
			queue = append(queue, below)
		}
	}

	return affected.sorted()
}

func (w *World) touchesWaterFromAboveOrSide(pos vec.Vec3) bool {
	if w.GetBlock(pos.Add(vec.Up)) == block.Water {
		return true
	}
	for _, d := range horizontal {
		if w.GetBlock(pos.Add(d)) == block.Water {
			return true
		}
	}
	return false
}

// UpdateBlockPhysics применяет локальные правила в позиции и каскадно у соседей:
//   - песок и гравий падают на одну клетку, если снизу воздух, вода или лава
//     в загруженном чанке;
//   - лава, касающаяся воды сверху или сбоку, становится обсидианом;
//   - вода превращает лаву снизу и сбоку в обсидиан.
//
// Каскад ведётся явным стеком, а не рекурсией.
func (w *World) UpdateBlockPhysics(pos vec.Vec3) []vec.Vec3 {
	affected := make(affectedSet)

	work := []vec.Vec3{pos}
	for steps := 0; len(work) > 0 && steps < maxPhysicsSteps; steps++ {
		p := work[len(work)-1]
		work = work[:len(work)-1]

		if !InWorldHeight(p.Y) {
			continue
		}

		current := w.GetBlock(p)
		switch {
		case current.IsGravityAffected():
			below := p.Add(vec.Down)
			// Незагруженный чанк не воздух: туда ничего не падает
			if !InWorldHeight(below.Y) || !w.loadedAt(below) {
				continue
			}
			under := w.GetBlock(below)
			if under != block.Air && under != block.Water && under != block.Lava {
				continue
			}

			w.SetBlockWorld(below, current)
			w.SetBlockWorld(p, under)
			affected.addAround(p)
			affected.addAround(below)

			// Соседи старой позиции проверяются после нового положения блока
			for _, d := range vec.FaceNeighbors {
				if n := p.Add(d); n != below {
					work = append(work, n)
				}
			}
			work = append(work, below)

		case current == block.Lava:
			if !w.touchesAny(p, lavaContacts[:], block.Water) {
				continue
			}
			w.SetBlockWorld(p, block.Obsidian)
			affected.addAround(p)
			for _, d := range vec.FaceNeighbors {
				work = append(work, p.Add(d))
			}

		case current == block.Water:
			for _, d := range waterContacts {
				n := p.Add(d)
				if w.GetBlock(n) != block.Lava {
					continue
				}
				w.SetBlockWorld(n, block.Obsidian)
				affected.addAround(n)
			}
		}
	}

	return affected.sorted()
}

func (w *World) touchesAny(pos vec.Vec3, sides []vec.Vec3, id block.BlockID) bool {
	for _, d := range sides {
		if w.GetBlock(pos.Add(d)) == id {
			return true
		}
	}
	return false
}
