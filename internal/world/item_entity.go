package world

import (
	"math"

	"github.com/google/uuid"

	"github.com/annel0/voxelcore/internal/physics"
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world/block"
)

// Константы физики выпавших предметов
const (
	ItemGravity      = 20.0  // блоков/с²
	ItemPickupDelay  = 0.5   // секунд до возможности подобрать
	ItemLifetime     = 300.0 // секунд до исчезновения
	ItemPickupRadius = 1.5
	ItemHalfSize     = 0.125
	itemMaxFallSpeed = 40.0
	itemGroundDrag   = 0.6
)

var itemCollider = physics.NewBoxCollider(ItemHalfSize, ItemHalfSize)

// ItemEntity: выпавший предмет. Принадлежит списку сущностей мира.
type ItemEntity struct {
	ID          uuid.UUID
	Item        block.BlockID
	Count       int
	Position    vec.Vec3Float // Центр коллайдера
	Velocity    vec.Vec3Float
	PickupDelay float64
	Lifetime    float64
	OnGround    bool
}

// Collector: получатель предметов (игрок с инвентарём).
// Collect возвращает false, если предмет некуда положить.
type Collector interface {
	Position() vec.Vec3Float
	Collect(item block.BlockID, count int) bool
}

// spawnDrop создаёт предмет, выпавший из сломанного блока
func (w *World) spawnDrop(pos vec.Vec3, broken block.BlockID) {
	item := broken.Drop()
	if item == block.Air {
		return
	}
	w.SpawnItem(pos.ToFloat(), item, 1)
}

// SpawnItem добавляет предмет в мир с небольшой случайной начальной скоростью
func (w *World) SpawnItem(at vec.Vec3Float, item block.BlockID, count int) *ItemEntity {
	e := &ItemEntity{
		ID:       uuid.New(),
		Item:     item,
		Count:    count,
		Position: at,
		Velocity: vec.Vec3Float{
			X: (w.rng.Float64() - 0.5) * 2,
			Y: 3 + w.rng.Float64()*2,
			Z: (w.rng.Float64() - 0.5) * 2,
		},
		PickupDelay: ItemPickupDelay,
		Lifetime:    ItemLifetime,
	}
	w.entities = append(w.entities, e)
	return e
}

// RestoreEntities добавляет сохранённые предметы в конец списка
func (w *World) RestoreEntities(items []*ItemEntity) {
	for _, e := range items {
		if e != nil {
			w.entities = append(w.entities, e)
		}
	}
}

// Entities возвращает список выпавших предметов (только для чтения)
func (w *World) Entities() []*ItemEntity {
	return w.entities
}

// EntityCount возвращает количество выпавших предметов
func (w *World) EntityCount() int {
	return len(w.entities)
}

// UpdateEntities интегрирует физику предметов за dt секунд: гравитация,
// покомпонентные столкновения с твёрдыми блоками, отсчёт задержки и времени жизни,
// подбор игроком в радиусе. Возвращает количество подобранных предметов.
func (w *World) UpdateEntities(dt float64, player Collector) int {
	if dt <= 0 {
		return 0
	}

	solid := func(p vec.Vec3) bool { return w.GetBlock(p).IsSolid() }

	picked := 0
	alive := w.entities[:0]
	for _, e := range w.entities {
		e.Lifetime -= dt
		if e.Lifetime <= 0 {
			continue
		}
		if e.PickupDelay > 0 {
			e.PickupDelay = math.Max(0, e.PickupDelay-dt)
		}

		e.step(dt, solid)

		if player != nil && e.PickupDelay == 0 &&
			e.Position.DistanceTo(player.Position()) <= ItemPickupRadius &&
			player.Collect(e.Item, e.Count) {
			picked++
			continue
		}

		alive = append(alive, e)
	}

	// Обнуляем хвост, чтобы удалённые сущности не удерживались срезом
	for i := len(alive); i < len(w.entities); i++ {
		w.entities[i] = nil
	}
	w.entities = alive
	return picked
}

func (e *ItemEntity) step(dt float64, solid physics.SolidChecker) {
	e.Velocity.Y = math.Max(e.Velocity.Y-ItemGravity*dt, -itemMaxFallSpeed)

	box := itemCollider.Bounds(e.Position)
	delta := e.Velocity.Mul(dt)

	var hit bool
	box, hit = physics.MoveAxis(box, physics.AxisY, delta.Y, solid)
	e.OnGround = hit && e.Velocity.Y < 0
	if hit {
		e.Velocity.Y = 0
	}

	box, hit = physics.MoveAxis(box, physics.AxisX, delta.X, solid)
	if hit {
		e.Velocity.X = 0
	}
	box, hit = physics.MoveAxis(box, physics.AxisZ, delta.Z, solid)
	if hit {
		e.Velocity.Z = 0
	}

	if e.OnGround {
		e.Velocity.X *= itemGroundDrag
		e.Velocity.Z *= itemGroundDrag
	}

	e.Position = box.Center()
}

// TrimEntities удаляет самые старые предметы сверх лимита limit.
// Список сущностей всегда упорядочен по времени появления.
func (w *World) TrimEntities(limit int) int {
	if limit < 0 || len(w.entities) <= limit {
		return 0
	}

	removed := len(w.entities) - limit
	copy(w.entities, w.entities[removed:])
	for i := limit; i < len(w.entities); i++ {
		w.entities[i] = nil
	}
	w.entities = w.entities[:limit]
	return removed
}
