package noise

// Biome представляет тип биома
type Biome uint8

const (
	BiomeOcean Biome = iota
	BiomeIceOcean
	BiomePeaks
	BiomeBadlands
	BiomePlains
	BiomeTaiga
	BiomeIcePlains
	BiomeDesert
	BiomeJungle
	BiomeSwamp
	BiomeForest
)

// Пороговые значения таблицы биомов
const (
	oceanContinentalness = -0.25
	badlandsErosion      = -0.5
	plainsErosion        = 0.4
	coldTemperature      = -0.3
	hotTemperature       = 0.3
	dryHumidity          = -0.1
	wetHumidity          = 0.3
)

// ClassifyBiome выбирает биом по таблице решений.
// Правила проверяются строго по порядку, побеждает первое совпавшее.
func ClassifyBiome(cont, eros, temp, humid float64, y int) Biome {
	switch {
	case y > peaksLevel:
		return BiomePeaks
	case cont < oceanContinentalness:
		if temp < coldTemperature {
			return BiomeIceOcean
		}
		return BiomeOcean
	case eros < badlandsErosion:
		return BiomeBadlands
	case eros > plainsErosion:
		return BiomePlains
	case temp < coldTemperature:
		if humid > 0 {
			return BiomeTaiga
		}
		return BiomeIcePlains
	case temp > hotTemperature:
		if humid < dryHumidity {
			return BiomeDesert
		}
		if humid > wetHumidity {
			return BiomeJungle
		}
		return BiomePlains
	case humid > wetHumidity:
		return BiomeSwamp
	default:
		return BiomeForest
	}
}

// Biome классифицирует биом для параметров колонки на высоте y
func (p Params) Biome(y int) Biome {
	return ClassifyBiome(p.Continentalness, p.Erosion, p.Temperature, p.Humidity, y)
}

// String возвращает имя биома
func (b Biome) String() string {
	switch b {
	case BiomeOcean:
		return "ocean"
	case BiomeIceOcean:
		return "ice_ocean"
	case BiomePeaks:
		return "peaks"
	case BiomeBadlands:
		return "badlands"
	case BiomePlains:
		return "plains"
	case BiomeTaiga:
		return "taiga"
	case BiomeIcePlains:
		return "ice_plains"
	case BiomeDesert:
		return "desert"
	case BiomeJungle:
		return "jungle"
	case BiomeSwamp:
		return "swamp"
	case BiomeForest:
		return "forest"
	default:
		return "unknown"
	}
}

// IsWooded возвращает true для биомов, где растут деревья
func (b Biome) IsWooded() bool {
	return b == BiomeForest || b == BiomeJungle
}
