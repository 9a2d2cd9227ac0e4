package world

import (
	"github.com/annel0/voxelcore/internal/noise"
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world/block"
)

// Константы генерации ландшафта
const (
	BedrockLevel = 2 // Ниже: бедрок, высший приоритет

	// Выше этой высоты плотность гарантированно не положительна
	maxTerrainY = 160

	subsurfaceDensity = 0.35
	beachHeight       = 2
	snowLine          = 120
	deepFloorDepth    = 10

	treeChance      = 0.05
	treeMinHeight   = 5
	treeHeightRange = 4
	treeSpacing     = 4
	treeMinSurface  = 64
	floraChance     = 0.02
)

// Соли хешей для независимых решений
const (
	saltOre    = 0x9E3779B9
	saltTree   = 0x7F4A7C15
	saltHeight = 0x94D049BB
	saltWood   = 0xBF58476D
	saltCanopy = 0xD6E8FEB8
	saltFlora  = 0x2545F491
)

// oreRule: строка таблицы руд: руда появляется ниже maxY с вероятностью chance
type oreRule struct {
	ore    block.BlockID
	maxY   int
	chance float64
}

// oreTable проверяется строго по порядку с накоплением вероятностей:
// побеждает первый порог, который достигнут.
var oreTable = []oreRule{
	{block.DiamondOre, 16, 0.0010},
	{block.EmeraldOre, 32, 0.0008},
	{block.RedstoneOre, 16, 0.0080},
	{block.GoldOre, 32, 0.0025},
	{block.LapisOre, 32, 0.0030},
	{block.IronOre, 64, 0.0090},
	{block.CoalOre, 128, 0.0140},
}

// Generator детерминированно заполняет чанки по сиду мира.
// После создания только читается и может использоваться из нескольких горутин.
type Generator struct {
	seed  uint32
	field *noise.Field
}

// NewGenerator создаёт генератор ландшафта
func NewGenerator(seed uint32) *Generator {
	return &Generator{
		seed:  seed,
		field: noise.New(seed),
	}
}

// Field возвращает поле шума генератора
func (g *Generator) Field() *noise.Field {
	return g.field
}

// column: климат колонки и плотности на 17 уровнях (16 блоков чанка и один сверху)
type column struct {
	params  noise.Params
	density [ChunkSize + 1]float32
}

// Generate строит чанк по ключу. Генерация никогда не завершается ошибкой.
func (g *Generator) Generate(key vec.Vec3) *Chunk {
	chunk := NewChunk(key)
	if !validChunkY(key.Y) {
		return chunk
	}

	origin := key.ChunkOrigin()
	if origin.Y >= maxTerrainY && origin.Y > noise.WaterLevel {
		return chunk
	}

	var columns [ChunkArea]column
	for lz := 0; lz < ChunkSize; lz++ {
		for lx := 0; lx < ChunkSize; lx++ {
			wx, wz := origin.X+lx, origin.Z+lz
			col := &columns[lx+lz*ChunkSize]
			col.params = g.field.ColumnParams(wx, wz)
			for ly := 0; ly <= ChunkSize; ly++ {
				col.density[ly] = g.field.Density(wx, origin.Y+ly, wz,
					col.params.Continentalness, col.params.Erosion, col.params.Weirdness)
			}
		}
	}

	g.fillTerrain(chunk, origin, &columns)
	g.decorate(chunk, origin, &columns)
	return chunk
}

// fillTerrain расставляет бедрок, камень, поверхность, воду и руды
func (g *Generator) fillTerrain(chunk *Chunk, origin vec.Vec3, columns *[ChunkArea]column) {
	for lz := 0; lz < ChunkSize; lz++ {
		for lx := 0; lx < ChunkSize; lx++ {
			col := &columns[lx+lz*ChunkSize]
			for ly := 0; ly < ChunkSize; ly++ {
				wy := origin.Y + ly
				id := g.classify(col, ly, wy)
				if id == block.Stone {
					id = g.ore(origin.X+lx, wy, origin.Z+lz)
				}
				if id != block.Air {
					chunk.SetBlock(vec.Vec3{X: lx, Y: ly, Z: lz}, id)
				}
			}
		}
	}
}

// classify выбирает блок по плотности в точке и над ней
func (g *Generator) classify(col *column, ly, wy int) block.BlockID {
	if wy < BedrockLevel {
		return block.Bedrock
	}

	biome := col.params.Biome(wy)
	d := col.density[ly]

	if d <= 0 {
		switch {
		case wy == noise.WaterLevel && (biome == noise.BiomeIceOcean || biome == noise.BiomeIcePlains):
			return block.Ice
		case wy <= noise.WaterLevel:
			return block.Water
		default:
			return block.Air
		}
	}

	switch {
	case col.density[ly+1] <= 0:
		return surfaceBlock(biome, wy)
	case d < subsurfaceDensity:
		return subsurfaceBlock(biome)
	default:
		return block.Stone
	}
}

func surfaceBlock(biome noise.Biome, wy int) block.BlockID {
	if wy < noise.WaterLevel {
		switch {
		case biome == noise.BiomeSwamp:
			return block.Clay
		case wy < noise.WaterLevel-deepFloorDepth:
			return block.Gravel
		default:
			return block.Sand
		}
	}

	switch biome {
	case noise.BiomeDesert:
		return block.Sand
	case noise.BiomeBadlands:
		return block.RedSand
	case noise.BiomeIcePlains, noise.BiomeIceOcean:
		return block.Snow
	case noise.BiomePeaks:
		if wy > snowLine {
			return block.Snow
		}
		return block.Stone
	}

	if wy <= noise.WaterLevel+beachHeight {
		return block.Sand
	}
	return block.Grass
}

func subsurfaceBlock(biome noise.Biome) block.BlockID {
	switch biome {
	case noise.BiomeDesert:
		return block.Sandstone
	case noise.BiomeBadlands:
		return block.Terracotta
	case noise.BiomeOcean, noise.BiomeIceOcean:
		return block.Sand
	case noise.BiomePeaks:
		return block.Stone
	default:
		return block.Dirt
	}
}

// ore заменяет камень рудой по целочисленному хешу позиции
func (g *Generator) ore(x, y, z int) block.BlockID {
	r := unitFloat(hash3(g.seed^saltOre, x, y, z))

	cumulative := 0.0
	for _, rule := range oreTable {
		if y >= rule.maxY {
			continue
		}
		cumulative += rule.chance
		if r < cumulative {
			return rule.ore
		}
	}
	return block.Stone
}

// decorate расставляет деревья и мелкую растительность на поверхности
func (g *Generator) decorate(chunk *Chunk, origin vec.Vec3, columns *[ChunkArea]column) {
	var trees []vec.Vec3

	for lz := 0; lz < ChunkSize; lz++ {
		for lx := 0; lx < ChunkSize; lx++ {
			col := &columns[lx+lz*ChunkSize]
			ly, ok := surfaceLevel(chunk, col, lx, lz, origin.Y)
			if !ok {
				continue
			}

			wx, wy, wz := origin.X+lx, origin.Y+ly, origin.Z+lz
			ground := chunk.GetBlock(vec.Vec3{X: lx, Y: ly, Z: lz})
			biome := col.params.Biome(wy)
			base := vec.Vec3{X: lx, Y: ly, Z: lz}

			if ground == block.Grass && biome.IsWooded() && wy > treeMinSurface &&
				unitFloat(hash3(g.seed^saltTree, wx, wy, wz)) < treeChance &&
				treeFits(ly, g.treeHeight(wx, wy, wz)) && !tooClose(trees, base) {
				g.placeTree(chunk, base, biome, wx, wy, wz)
				trees = append(trees, base)
				continue
			}

			if unitFloat(hash3(g.seed^saltFlora, wx, wy, wz)) >= floraChance {
				continue
			}
			above := base.Add(vec.Up)
			switch ground {
			case block.Sand, block.RedSand:
				if biome == noise.BiomeDesert || biome == noise.BiomeBadlands {
					chunk.SetBlock(above, block.DeadBush)
				}
			case block.Grass:
				chunk.SetBlock(above, block.Rose)
			}
		}
	}
}

// surfaceLevel находит самый верхний твёрдый блок колонки, над которым воздух
func surfaceLevel(chunk *Chunk, col *column, lx, lz, originY int) (int, bool) {
	for ly := ChunkSize - 1; ly >= 0; ly-- {
		id := chunk.GetBlock(vec.Vec3{X: lx, Y: ly, Z: lz})
		if id == block.Air {
			continue
		}
		if !id.IsSolid() {
			return 0, false
		}

		if ly == ChunkSize-1 {
			// Над чанком: воздух, если плотность не положительна и выше уровня воды
			wy := originY + ChunkSize
			return ly, col.density[ChunkSize] <= 0 && wy > noise.WaterLevel
		}
		return ly, true
	}
	return 0, false
}

func tooClose(trees []vec.Vec3, pos vec.Vec3) bool {
	for _, t := range trees {
		dx, dz := t.X-pos.X, t.Z-pos.Z
		if dx*dx+dz*dz <= treeSpacing*treeSpacing {
			return true
		}
	}
	return false
}

// treeHeight: высота ствола 5-8 для дерева в позиции
func (g *Generator) treeHeight(wx, wy, wz int) int {
	return treeMinHeight + int(hash3(g.seed^saltHeight, wx, wy, wz)%treeHeightRange)
}

// treeFits проверяет, что ствол и крона помещаются в чанк по высоте.
// Соседний чанк сверху деревья не достраивает.
func treeFits(ly, height int) bool {
	return ly+height+1 < ChunkSize
}

// placeTree ставит ствол и сужающуюся крону.
// Блоки за пределами чанка по горизонтали отбрасываются сеттером чанка.
func (g *Generator) placeTree(chunk *Chunk, base vec.Vec3, biome noise.Biome, wx, wy, wz int) {
	height := g.treeHeight(wx, wy, wz)

	logID, leavesID := block.Log, block.Leaves
	switch {
	case biome == noise.BiomeJungle:
		logID, leavesID = block.JungleLog, block.JungleLeaves
	case hash3(g.seed^saltWood, wx, wy, wz)%5 == 0:
		logID, leavesID = block.BirchLog, block.BirchLeaves
	}

	chunk.SetBlock(base, block.Dirt)
	for dy := 1; dy <= height; dy++ {
		chunk.SetBlock(base.Add(vec.Vec3{Y: dy}), logID)
	}

	for dy := height - 2; dy <= height+1; dy++ {
		radius := 2
		if dy >= height {
			radius = 1
		}
		for dz := -radius; dz <= radius; dz++ {
			for dx := -radius; dx <= radius; dx++ {
				corner := abs(dx) == radius && abs(dz) == radius
				if corner && (dy == height+1 ||
					hash3(g.seed^saltCanopy, wx+dx, wy+dy, wz+dz)&1 == 0) {
					continue
				}
				p := base.Add(vec.Vec3{X: dx, Y: dy, Z: dz})
				if chunk.GetBlock(p) == block.Air {
					chunk.SetBlock(p, leavesID)
				}
			}
		}
	}
}

// hash3: дешёвый целочисленный хеш позиции
func hash3(seed uint32, x, y, z int) uint32 {
	h := seed
	h ^= uint32(x) * 0x27D4EB2D
	h = (h ^ h>>15) * 0x85EBCA6B
	h ^= uint32(y) * 0x165667B1
	h = (h ^ h>>13) * 0xC2B2AE35
	h ^= uint32(z) * 0x9E3779B1
	h = (h ^ h>>16) * 0x7FEB352D
	return h ^ h>>15
}

func unitFloat(h uint32) float64 {
	return float64(h) / (1 << 32)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
