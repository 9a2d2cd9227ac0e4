package world

import (
	"testing"

	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePlayer: получатель предметов для тестов
type fakePlayer struct {
	pos       vec.Vec3Float
	full      bool
	collected map[block.BlockID]int
}

func (p *fakePlayer) Position() vec.Vec3Float { return p.pos }

func (p *fakePlayer) Collect(item block.BlockID, count int) bool {
	if p.full {
		return false
	}
	if p.collected == nil {
		p.collected = make(map[block.BlockID]int)
	}
	p.collected[item] += count
	return true
}

func TestItemEntity_FallsAndLands(t *testing.T) {
	w := emptyWorld(t, 1)
	fillLayer(w, 5, 12, block.Stone)

	e := w.SpawnItem(vec.Vec3Float{X: 0.5, Y: 10.5, Z: 0.5}, block.Dirt, 1)
	for i := 0; i < 100; i++ {
		w.UpdateEntities(0.05, nil)
	}

	assert.True(t, e.OnGround, "Предмет должен лежать на земле")
	assert.InDelta(t, 6+ItemHalfSize, e.Position.Y, 1e-6, "Предмет лежит на верхней грани камня")
	assert.Equal(t, 1, w.EntityCount())
}

func TestItemEntity_LifetimeExpires(t *testing.T) {
	w := emptyWorld(t, 0)
	fillLayer(w, 5, 8, block.Stone)
	w.SpawnItem(vec.Vec3Float{X: 0.5, Y: 6.5, Z: 0.5}, block.Dirt, 1)

	for elapsed := 0.0; elapsed < ItemLifetime-1; elapsed += 1 {
		w.UpdateEntities(1, nil)
	}
	assert.Equal(t, 1, w.EntityCount(), "До истечения срока предмет жив")

	w.UpdateEntities(2, nil)
	assert.Equal(t, 0, w.EntityCount(), "Предмет исчезает по истечении срока")
}

func TestItemEntity_Pickup(t *testing.T) {
	w := emptyWorld(t, 0)
	fillLayer(w, 5, 8, block.Stone)
	e := w.SpawnItem(vec.Vec3Float{X: 0.5, Y: 6.2, Z: 0.5}, block.Coal, 3)
	e.Velocity = vec.Vec3Float{}

	player := &fakePlayer{pos: vec.Vec3Float{X: 0.5, Y: 6.5, Z: 0.5}}

	assert.Equal(t, 0, w.UpdateEntities(0.1, player), "Задержка подбора ещё не истекла")
	assert.Equal(t, 1, w.EntityCount())

	picked := 0
	for i := 0; i < 10; i++ {
		picked += w.UpdateEntities(0.1, player)
	}
	assert.Equal(t, 1, picked)
	assert.Equal(t, 0, w.EntityCount())
	assert.Equal(t, 3, player.collected[block.Coal])
}

func TestItemEntity_FullInventoryKeepsItem(t *testing.T) {
	w := emptyWorld(t, 0)
	fillLayer(w, 5, 8, block.Stone)
	w.SpawnItem(vec.Vec3Float{X: 0.5, Y: 6.2, Z: 0.5}, block.Coal, 1)

	player := &fakePlayer{pos: vec.Vec3Float{X: 0.5, Y: 6.5, Z: 0.5}, full: true}
	for i := 0; i < 10; i++ {
		w.UpdateEntities(0.1, player)
	}
	assert.Equal(t, 1, w.EntityCount())
}

func TestItemEntity_FarPlayerDoesNotPickUp(t *testing.T) {
	w := emptyWorld(t, 0)
	fillLayer(w, 5, 8, block.Stone)
	w.SpawnItem(vec.Vec3Float{X: 0.5, Y: 6.2, Z: 0.5}, block.Coal, 1)

	player := &fakePlayer{pos: vec.Vec3Float{X: 10.5, Y: 6.5, Z: 0.5}}
	for i := 0; i < 10; i++ {
		w.UpdateEntities(0.1, player)
	}
	assert.Equal(t, 1, w.EntityCount())
	assert.Empty(t, player.collected)
}

func TestBreakBlock_NoDropForGlass(t *testing.T) {
	w := emptyWorld(t, 0)
	w.SetBlockWorld(vec.Vec3{Y: 10}, block.Glass)

	require.NotEmpty(t, w.BreakBlock(vec.Vec3{Y: 10}))
	assert.Equal(t, 0, w.EntityCount(), "Стекло ничего не роняет")
}

func TestTrimEntities_RemovesOldest(t *testing.T) {
	w := NewWorld(1, nil)
	var spawned []*ItemEntity
	for i := 0; i < 5; i++ {
		spawned = append(spawned, w.SpawnItem(vec.Vec3Float{Y: 100}, block.Dirt, i+1))
	}

	assert.Equal(t, 0, w.TrimEntities(10))
	assert.Equal(t, 3, w.TrimEntities(2))
	require.Equal(t, 2, w.EntityCount())
	assert.Same(t, spawned[3], w.Entities()[0])
	assert.Same(t, spawned[4], w.Entities()[1])
}
