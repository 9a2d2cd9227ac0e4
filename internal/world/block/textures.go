package block

// Индексы слоёв текстурного атласа
const (
	texStone uint32 = iota
	texCobblestone
	texDirt
	texGrassTop
	texGrassSide
	texSand
	texRedSand
	texGravel
	texClay
	texBedrock
	texWater
	texLava
	texObsidian
	texSnow
	texIce
	texPackedIce
	texSandstoneTop
	texSandstoneSide
	texSandstoneBottom
	texTerracotta
	texLogTop
	texLogSide
	texBirchLogSide
	texSpruceLogSide
	texJungleLogSide
	texLeaves
	texBirchLeaves
	texSpruceLeaves
	texJungleLeaves
	texCactusTop
	texCactusSide
	texCactusBottom
	texRose
	texDandelion
	texDeadBush
	texTallGrass
	texCoalOre
	texIronOre
	texGoldOre
	texDiamondOre
	texRedstoneOre
	texLapisOre
	texEmeraldOre
	texPlanks
	texGlass
	texBrick
	texCraftingTableTop
	texCraftingTableSide
	texFurnaceFront
	texFurnaceSide
	texFurnaceTop
	texGlowstone
	texWool
	texBookshelf
	texMissing

	// TextureCount: количество слоёв атласа
	TextureCount = int(texMissing) + 1
)

// Textures описывает текстуры трёх типов граней блока
type Textures struct {
	Top    uint32
	Bottom uint32
	Side   uint32
}

func same(i uint32) Textures {
	return Textures{Top: i, Bottom: i, Side: i}
}

// Textures возвращает индексы атласа для верхней, нижней и боковых граней
func (b BlockID) Textures() Textures {
	switch b {
	case Stone:
		return same(texStone)
	case Cobblestone:
		return same(texCobblestone)
	case Dirt:
		return same(texDirt)
	case Grass:
		return Textures{Top: texGrassTop, Bottom: texDirt, Side: texGrassSide}
	case Sand:
		return same(texSand)
	case RedSand:
		return same(texRedSand)
	case Gravel:
		return same(texGravel)
	case Clay:
		return same(texClay)
	case Bedrock:
		return same(texBedrock)
	case Water:
		return same(texWater)
	case Lava:
		return same(texLava)
	case Obsidian:
		return same(texObsidian)
	case Snow:
		return same(texSnow)
	case Ice:
		return same(texIce)
	case PackedIce:
		return same(texPackedIce)
	case Sandstone:
		return Textures{Top: texSandstoneTop, Bottom: texSandstoneBottom, Side: texSandstoneSide}
	case Terracotta:
		return same(texTerracotta)
	case Log:
		return Textures{Top: texLogTop, Bottom: texLogTop, Side: texLogSide}
	case BirchLog:
		return Textures{Top: texLogTop, Bottom: texLogTop, Side: texBirchLogSide}
	case SpruceLog:
		return Textures{Top: texLogTop, Bottom: texLogTop, Side: texSpruceLogSide}
	case JungleLog:
		return Textures{Top: texLogTop, Bottom: texLogTop, Side: texJungleLogSide}
	case Leaves:
		return same(texLeaves)
	case BirchLeaves:
		return same(texBirchLeaves)
	case SpruceLeaves:
		return same(texSpruceLeaves)
	case JungleLeaves:
		return same(texJungleLeaves)
	case Cactus:
		return Textures{Top: texCactusTop, Bottom: texCactusBottom, Side: texCactusSide}
	case Rose:
		return same(texRose)
	case Dandelion:
		return same(texDandelion)
	case DeadBush:
		return same(texDeadBush)
	case TallGrass:
		return same(texTallGrass)
	case CoalOre:
		return same(texCoalOre)
	case IronOre:
		return same(texIronOre)
	case GoldOre:
		return same(texGoldOre)
	case DiamondOre:
		return same(texDiamondOre)
	case RedstoneOre:
		return same(texRedstoneOre)
	case LapisOre:
		return same(texLapisOre)
	case EmeraldOre:
		return same(texEmeraldOre)
	case Planks:
		return same(texPlanks)
	case Glass:
		return same(texGlass)
	case Brick:
		return same(texBrick)
	case CraftingTable:
		return Textures{Top: texCraftingTableTop, Bottom: texPlanks, Side: texCraftingTableSide}
	case Furnace:
		return Textures{Top: texFurnaceTop, Bottom: texFurnaceTop, Side: texFurnaceSide}
	case Glowstone:
		return same(texGlowstone)
	case Wool:
		return same(texWool)
	case Bookshelf:
		return Textures{Top: texPlanks, Bottom: texPlanks, Side: texBookshelf}
	default:
		return same(texMissing)
	}
}
