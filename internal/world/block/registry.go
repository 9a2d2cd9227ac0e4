package block

// BlockID представляет идентификатор блока или предмета.
// Значение совпадает с байтом в сохранённом массиве чанка.
type BlockID uint8

// Константы ID блоков
const (
	// Базовые типы блоков
	Air BlockID = iota // 0
	Stone
	Cobblestone
	Dirt
	Grass
	Sand
	RedSand
	Gravel
	Clay
	Bedrock
	Water
	Lava
	Obsidian
	Snow
	Ice
	PackedIce
	Sandstone
	Terracotta

	// Растительность
	Log
	BirchLog
	SpruceLog
	JungleLog
	Leaves
	BirchLeaves
	SpruceLeaves
	JungleLeaves
	Cactus
	Rose
	Dandelion
	DeadBush
	TallGrass

	// Руды
	CoalOre
	IronOre
	GoldOre
	DiamondOre
	RedstoneOre
	LapisOre
	EmeraldOre

	// Строительные блоки
	Planks
	Glass
	Brick
	CraftingTable
	Furnace
	Glowstone
	Wool
	Bookshelf

	lastBlock // всегда после последнего блока
)

// Предметы (начиная с 128), в мире не размещаются
const (
	Coal BlockID = 128 + iota
	Diamond
	IronIngot
	GoldIngot
	Redstone
	LapisLazuli
	Emerald
	Stick
	Apple
	Bread

	WoodenPickaxe
	StonePickaxe
	IronPickaxe
	DiamondPickaxe
	WoodenAxe
	StoneAxe
	IronAxe
	DiamondAxe
	WoodenShovel
	StoneShovel
	IronShovel
	DiamondShovel
	WoodenSword
	StoneSword
	IronSword
	DiamondSword
	Shears

	lastItem
)

// IsBlock возвращает true для типов, которые можно поставить в мир
func (b BlockID) IsBlock() bool {
	return b < lastBlock
}

// IsItem возвращает true для предметов инвентаря
func (b BlockID) IsItem() bool {
	return b >= Coal && b < lastItem
}

// IsValid проверяет, является ли ID допустимым идентификатором
func (b BlockID) IsValid() bool {
	return b.IsBlock() || b.IsItem()
}

// All возвращает все размещаемые блоки по порядку ID
func All() []BlockID {
	ids := make([]BlockID, 0, lastBlock)
	for id := Air; id < lastBlock; id++ {
		ids = append(ids, id)
	}
	return ids
}
