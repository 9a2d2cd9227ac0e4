package world

import (
	"math/rand"
	"testing"

	"github.com/annel0/voxelcore/internal/noise"
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Deterministic(t *testing.T) {
	a := NewGenerator(42)
	b := NewGenerator(42)

	for _, key := range []vec.Vec3{{Y: 0}, {Y: 3}, {X: -2, Y: 4, Z: 5}, {X: 7, Y: 2, Z: -9}} {
		assert.Equal(t, a.Generate(key).Bytes(), b.Generate(key).Bytes(), "Чанк %v должен совпадать", key)
	}
}

func TestGenerator_SeedMatters(t *testing.T) {
	a := NewGenerator(1)
	b := NewGenerator(2)

	differs := false
	for cy := 2; cy < 6 && !differs; cy++ {
		key := vec.Vec3{Y: cy}
		differs = string(a.Generate(key).Bytes()) != string(b.Generate(key).Bytes())
	}
	assert.True(t, differs, "Разные сиды дают разный ландшафт")
}

func TestGenerator_BedrockFloor(t *testing.T) {
	chunk := NewGenerator(42).Generate(vec.Vec3{X: 3, Y: 0, Z: -3})

	for z := 0; z < ChunkSize; z++ {
		for x := 0; x < ChunkSize; x++ {
			for y := 0; y < BedrockLevel; y++ {
				assert.Equal(t, block.Bedrock, chunk.GetBlock(vec.Vec3{X: x, Y: y, Z: z}))
			}
		}
	}
}

func TestGenerator_NoDiamondsAbove16(t *testing.T) {
	g := NewGenerator(42)

	for cy := 0; cy < ChunksHigh; cy++ {
		chunk := g.Generate(vec.Vec3{Y: cy})
		for ly := 0; ly < ChunkSize; ly++ {
			wy := cy*ChunkSize + ly
			if wy < 16 {
				continue
			}
			for lz := 0; lz < ChunkSize; lz++ {
				for lx := 0; lx < ChunkSize; lx++ {
					require.NotEqual(t, block.DiamondOre, chunk.GetBlock(vec.Vec3{X: lx, Y: ly, Z: lz}),
						"Алмаз на высоте %d", wy)
				}
			}
		}
	}
}

func TestGenerator_OreBanding(t *testing.T) {
	g := NewGenerator(42)
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 20000; i++ {
		x, z := rng.Intn(4000)-2000, rng.Intn(4000)-2000
		y := 16 + rng.Intn(200)
		ore := g.ore(x, y, z)
		require.NotEqual(t, block.DiamondOre, ore)
		require.NotEqual(t, block.RedstoneOre, ore)
		if y >= 128 {
			require.Equal(t, block.Stone, ore, "Выше 128 руды нет")
		}
	}

	found := false
	for i := 0; i < 200000 && !found; i++ {
		found = g.ore(rng.Intn(4000)-2000, rng.Intn(16), rng.Intn(4000)-2000) == block.DiamondOre
	}
	assert.True(t, found, "Глубоко алмазы встречаются")
}

func TestGenerator_WaterOnlyBelowSeaLevel(t *testing.T) {
	g := NewGenerator(7)

	for cx := -1; cx <= 1; cx++ {
		for cy := 0; cy < ChunksHigh; cy++ {
			chunk := g.Generate(vec.Vec3{X: cx, Y: cy, Z: 1})
			for i, b := range chunk.Bytes() {
				if block.BlockID(b) != block.Water {
					continue
				}
				wy := cy*ChunkSize + (i/ChunkSize)%ChunkSize
				require.LessOrEqual(t, wy, noise.WaterLevel)
			}
		}
	}
}

func TestGenerator_SkyIsEmpty(t *testing.T) {
	g := NewGenerator(42)
	for cy := maxTerrainY / ChunkSize; cy < ChunksHigh; cy++ {
		assert.True(t, g.Generate(vec.Vec3{Y: cy}).IsEmpty())
	}
	assert.True(t, g.Generate(vec.Vec3{Y: ChunksHigh}).IsEmpty(), "Ключ выше мира даёт пустой чанк")
}

func TestGenerator_TreeShape(t *testing.T) {
	g := NewGenerator(42)
	chunk := NewChunk(vec.Vec3{})
	base := vec.Vec3{X: 8, Y: 2, Z: 8}
	chunk.SetBlock(base, block.Grass)

	g.placeTree(chunk, base, noise.BiomeForest, 8, 2, 8)

	assert.Equal(t, block.Dirt, chunk.GetBlock(base), "Под стволом земля")

	trunk := 0
	for y := base.Y + 1; y < ChunkSize; y++ {
		id := chunk.GetBlock(vec.Vec3{X: 8, Y: y, Z: 8})
		if id != block.Log && id != block.BirchLog {
			break
		}
		trunk++
	}
	assert.GreaterOrEqual(t, trunk, treeMinHeight)
	assert.Less(t, trunk, treeMinHeight+treeHeightRange)

	top := vec.Vec3{X: 8, Y: base.Y + trunk + 1, Z: 8}
	leaves := chunk.GetBlock(top)
	assert.True(t, leaves == block.Leaves || leaves == block.BirchLeaves, "Крона над стволом")
	assert.Equal(t, block.Air, chunk.GetBlock(top.Add(vec.Vec3{X: 1, Z: 1})), "Верхний слой без углов")
}

func TestTooClose(t *testing.T) {
	trees := []vec.Vec3{{X: 4, Z: 4}}
	assert.True(t, tooClose(trees, vec.Vec3{X: 7, Z: 4}))
	assert.True(t, tooClose(trees, vec.Vec3{X: 4, Z: 8}))
	assert.False(t, tooClose(trees, vec.Vec3{X: 8, Z: 8}))
}

func TestTreeFits(t *testing.T) {
	assert.True(t, treeFits(2, treeMinHeight+treeHeightRange-1))
	assert.True(t, treeFits(9, 5), "Крона на y=15 ещё внутри чанка")
	assert.False(t, treeFits(10, 5))
	assert.False(t, treeFits(ChunkSize-1, treeMinHeight), "Поверхность на верхнем слое")
}

func TestGenerator_TreesStayInsideChunk(t *testing.T) {
	g := NewGenerator(42)
	for cy := 4; cy <= 5; cy++ {
		for cz := -3; cz <= 3; cz++ {
			for cx := -3; cx <= 3; cx++ {
				chunk := g.Generate(vec.Vec3{X: cx, Y: cy, Z: cz})
				for lz := 0; lz < ChunkSize; lz++ {
					for lx := 0; lx < ChunkSize; lx++ {
						top := chunk.GetBlock(vec.Vec3{X: lx, Y: ChunkSize - 1, Z: lz})
						isLog := top == block.Log || top == block.BirchLog || top == block.JungleLog
						assert.False(t, isLog, "Ствол упирается в верх чанка %v", chunk.Coords)
					}
				}
			}
		}
	}
}
