package block

// ToolClass определяет класс инструмента, лучше всего добывающего блок
type ToolClass uint8

const (
	ToolNone ToolClass = iota
	ToolPickaxe
	ToolAxe
	ToolShovel
	ToolSword
	ToolShears
)

// IsSolid возвращает true, если блок участвует в коллизиях и мешинге
func (b BlockID) IsSolid() bool {
	switch b {
	case Air, Water, Lava, Rose, Dandelion, DeadBush, TallGrass:
		return false
	}
	return b.IsBlock()
}

// IsTransparent возвращает true, если сквозь блок видны соседние грани
func (b BlockID) IsTransparent() bool {
	switch b {
	case Air, Water, Ice, Glass,
		Leaves, BirchLeaves, SpruceLeaves, JungleLeaves,
		Rose, Dandelion, DeadBush, TallGrass:
		return true
	default:
		return false
	}
}

// IsLiquid возвращает true для жидкостей
func (b BlockID) IsLiquid() bool {
	return b == Water || b == Lava
}

// IsFlora возвращает true для мелкой растительности без коллизий
func (b BlockID) IsFlora() bool {
	switch b {
	case Rose, Dandelion, DeadBush, TallGrass:
		return true
	default:
		return false
	}
}

// IsGravityAffected возвращает true для блоков, падающих без опоры
func (b BlockID) IsGravityAffected() bool {
	return b == Sand || b == Gravel || b == RedSand
}

// IsReplaceable возвращает true, если на место блока можно поставить другой
func (b BlockID) IsReplaceable() bool {
	return b == Air || b.IsLiquid() || b.IsFlora()
}

// Hardness возвращает время добычи рукой в секундах; -1 означает неразрушимость
func (b BlockID) Hardness() float32 {
	switch b {
	case Air, Water, Lava:
		return 0
	case Bedrock:
		return -1
	case Rose, Dandelion, DeadBush, TallGrass:
		return 0
	case Leaves, BirchLeaves, SpruceLeaves, JungleLeaves:
		return 0.2
	case Glass, Glowstone:
		return 0.3
	case Snow:
		return 0.2
	case Cactus:
		return 0.4
	case Ice, PackedIce:
		return 0.5
	case Dirt, Sand, RedSand, Clay:
		return 0.5
	case Grass, Gravel:
		return 0.6
	case Wool:
		return 0.8
	case Sandstone:
		return 0.8
	case Terracotta:
		return 1.25
	case Stone:
		return 1.5
	case Log, BirchLog, SpruceLog, JungleLog, Planks, Bookshelf:
		return 2
	case Cobblestone, Brick:
		return 2
	case CraftingTable:
		return 2.5
	case CoalOre, IronOre, GoldOre, DiamondOre, RedstoneOre, LapisOre, EmeraldOre:
		return 3
	case Furnace:
		return 3.5
	case Obsidian:
		return 50
	default:
		return 0
	}
}

// BestTool возвращает класс инструмента, ускоряющего добычу
func (b BlockID) BestTool() ToolClass {
	switch b {
	case Stone, Cobblestone, Obsidian, Sandstone, Terracotta, Brick, Furnace,
		Ice, PackedIce,
		CoalOre, IronOre, GoldOre, DiamondOre, RedstoneOre, LapisOre, EmeraldOre:
		return ToolPickaxe
	case Log, BirchLog, SpruceLog, JungleLog, Planks, CraftingTable, Bookshelf:
		return ToolAxe
	case Dirt, Grass, Sand, RedSand, Gravel, Clay, Snow:
		return ToolShovel
	case Leaves, BirchLeaves, SpruceLeaves, JungleLeaves, Wool:
		return ToolShears
	case Cactus:
		return ToolSword
	default:
		return ToolNone
	}
}

// ToolClassOf возвращает класс инструмента для предмета
func ToolClassOf(item BlockID) ToolClass {
	switch item {
	case WoodenPickaxe, StonePickaxe, IronPickaxe, DiamondPickaxe:
		return ToolPickaxe
	case WoodenAxe, StoneAxe, IronAxe, DiamondAxe:
		return ToolAxe
	case WoodenShovel, StoneShovel, IronShovel, DiamondShovel:
		return ToolShovel
	case WoodenSword, StoneSword, IronSword, DiamondSword:
		return ToolSword
	case Shears:
		return ToolShears
	default:
		return ToolNone
	}
}

// Name возвращает отображаемое имя
func (b BlockID) Name() string {
	switch b {
	case Air:
		return "Air"
	case Stone:
		return "Stone"
	case Cobblestone:
		return "Cobblestone"
	case Dirt:
		return "Dirt"
	case Grass:
		return "Grass Block"
	case Sand:
		return "Sand"
	case RedSand:
		return "Red Sand"
	case Gravel:
		return "Gravel"
	case Clay:
		return "Clay"
	case Bedrock:
		return "Bedrock"
	case Water:
		return "Water"
	case Lava:
		return "Lava"
	case Obsidian:
		return "Obsidian"
	case Snow:
		return "Snow"
	case Ice:
		return "Ice"
	case PackedIce:
		return "Packed Ice"
	case Sandstone:
		return "Sandstone"
	case Terracotta:
		return "Terracotta"
	case Log:
		return "Oak Log"
	case BirchLog:
		return "Birch Log"
	case SpruceLog:
		return "Spruce Log"
	case JungleLog:
		return "Jungle Log"
	case Leaves:
		return "Oak Leaves"
	case BirchLeaves:
		return "Birch Leaves"
	case SpruceLeaves:
		return "Spruce Leaves"
	case JungleLeaves:
		return "Jungle Leaves"
	case Cactus:
		return "Cactus"
	case Rose:
		return "Rose"
	case Dandelion:
		return "Dandelion"
	case DeadBush:
		return "Dead Bush"
	case TallGrass:
		return "Tall Grass"
	case CoalOre:
		return "Coal Ore"
	case IronOre:
		return "Iron Ore"
	case GoldOre:
		return "Gold Ore"
	case DiamondOre:
		return "Diamond Ore"
	case RedstoneOre:
		return "Redstone Ore"
	case LapisOre:
		return "Lapis Lazuli Ore"
	case EmeraldOre:
		return "Emerald Ore"
	case Planks:
		return "Oak Planks"
	case Glass:
		return "Glass"
	case Brick:
		return "Bricks"
	case CraftingTable:
		return "Crafting Table"
	case Furnace:
		return "Furnace"
	case Glowstone:
		return "Glowstone"
	case Wool:
		return "Wool"
	case Bookshelf:
		return "Bookshelf"
	case Coal:
		return "Coal"
	case Diamond:
		return "Diamond"
	case IronIngot:
		return "Iron Ingot"
	case GoldIngot:
		return "Gold Ingot"
	case Redstone:
		return "Redstone Dust"
	case LapisLazuli:
		return "Lapis Lazuli"
	case Emerald:
		return "Emerald"
	case Stick:
		return "Stick"
	case Apple:
		return "Apple"
	case Bread:
		return "Bread"
	case WoodenPickaxe:
		return "Wooden Pickaxe"
	case StonePickaxe:
		return "Stone Pickaxe"
	case IronPickaxe:
		return "Iron Pickaxe"
	case DiamondPickaxe:
		return "Diamond Pickaxe"
	case WoodenAxe:
		return "Wooden Axe"
	case StoneAxe:
		return "Stone Axe"
	case IronAxe:
		return "Iron Axe"
	case DiamondAxe:
		return "Diamond Axe"
	case WoodenShovel:
		return "Wooden Shovel"
	case StoneShovel:
		return "Stone Shovel"
	case IronShovel:
		return "Iron Shovel"
	case DiamondShovel:
		return "Diamond Shovel"
	case WoodenSword:
		return "Wooden Sword"
	case StoneSword:
		return "Stone Sword"
	case IronSword:
		return "Iron Sword"
	case DiamondSword:
		return "Diamond Sword"
	case Shears:
		return "Shears"
	default:
		return "Unknown"
	}
}

// String реализует fmt.Stringer
func (b BlockID) String() string {
	return b.Name()
}
