package block

// Drop возвращает предмет, выпадающий при разрушении блока.
// Air означает, что ничего не выпадает.
func (b BlockID) Drop() BlockID {
	switch b {
	case Stone:
		return Cobblestone
	case Grass:
		return Dirt
	case CoalOre:
		return Coal
	case DiamondOre:
		return Diamond
	case IronOre:
		return IronIngot
	case GoldOre:
		return GoldIngot
	case RedstoneOre:
		return Redstone
	case LapisOre:
		return LapisLazuli
	case EmeraldOre:
		return Emerald
	case Leaves, BirchLeaves, SpruceLeaves, JungleLeaves,
		Glass, Ice, PackedIce, TallGrass,
		Air, Water, Lava, Bedrock:
		return Air
	default:
		return b
	}
}

// CanBreak проверяет, допускает ли блок разрушение игроком
func (b BlockID) CanBreak() bool {
	return b != Air && b != Bedrock && !b.IsLiquid()
}
