package main

import (
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world"
	"github.com/annel0/voxelcore/internal/world/block"
)

// observer: безголовый наблюдатель: идёт вдоль +X по поверхности,
// подбирает предметы и иногда копает под собой
type observer struct {
	position  vec.Vec3Float
	speed     float64
	inventory map[block.BlockID]int
}

func newObserver(at vec.Vec3Float) *observer {
	return &observer{position: at, inventory: make(map[block.BlockID]int)}
}

// Position возвращает позицию ног наблюдателя
func (o *observer) Position() vec.Vec3Float {
	return o.position
}

// Collect кладёт предмет в инвентарь
func (o *observer) Collect(item block.BlockID, count int) bool {
	o.inventory[item] += count
	return true
}

func (o *observer) collected() int {
	total := 0
	for _, n := range o.inventory {
		total += n
	}
	return total
}

var down = vec.Vec3Float{Y: -1}

// ground ищет лучом сверху первый твёрдый блок под наблюдателем
func (o *observer) ground(w *world.World) (world.RayHit, bool) {
	from := vec.Vec3Float{X: o.position.X, Y: world.WorldHeight - 0.5, Z: o.position.Z}
	return w.Raycast(from, down, world.WorldHeight)
}

func (o *observer) move(w *world.World, dt float64) {
	o.position.X += o.speed * dt

	// Пока колонка не сгенерирована, луч ничего не найдёт: ждём на месте по высоте
	if hit, ok := o.ground(w); ok {
		o.position.Y = float64(hit.Previous.Y)
	}
}

// dig ломает блок под ногами и возвращает затронутые чанки
func (o *observer) dig(w *world.World) []vec.Vec3 {
	hit, ok := o.ground(w)
	if !ok {
		return nil
	}
	return w.BreakBlock(hit.Block)
}
