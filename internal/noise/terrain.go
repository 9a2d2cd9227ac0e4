package noise

import "math"

// WaterLevel: уровень моря в блоках
const WaterLevel = 62

// Частоты и пороги полей рельефа
const (
	paramFreq     = 0.015
	paramOctaves  = 4
	microFreq     = 0.035
	microOctaves  = 4
	warpFreq      = 0.0125
	warpOctaves   = 2
	warpThreshold = 0.35
	riverFreq     = 0.004
	riverBand     = 0.06
	riverDepth    = 1.5
	riverReach    = 8.0
	peaksLevel    = 102
)

// Смещения, делающие пять климатических полей независимыми друг от друга
var (
	continentOffset   = [3]float64{1031.7, 17.3, -411.2}
	erosionOffset     = [3]float64{-2203.1, 101.7, 733.9}
	weirdnessOffset   = [3]float64{577.3, -59.9, 2911.4}
	temperatureOffset = [3]float64{-4099.5, 233.1, -1201.8}
	humidityOffset    = [3]float64{3307.9, -317.7, 5003.3}
	warpOffset        = [3]float64{313.7, 0, -71.1}
)

// Params: климатические оси колонки, сэмплируются один раз на (x, z)
type Params struct {
	Continentalness float64
	Erosion         float64
	Weirdness       float64
	Temperature     float64
	Humidity        float64
}

func (f *Field) param(offset [3]float64, x, z int) float64 {
	return f.Octaves(
		float64(x)*paramFreq+offset[0],
		offset[1],
		float64(z)*paramFreq+offset[2],
		paramOctaves,
	)
}

// HeightParams возвращает континентальность, эрозию, «странность» и температуру колонки
func (f *Field) HeightParams(x, z int) (cont, eros, weird, temp float64) {
	cont = f.param(continentOffset, x, z)
	eros = f.param(erosionOffset, x, z)
	weird = f.param(weirdnessOffset, x, z)
	temp = f.param(temperatureOffset, x, z)
	return cont, eros, weird, temp
}

// Humidity возвращает влажность колонки (пятое независимое поле)
func (f *Field) Humidity(x, z int) float64 {
	return f.param(humidityOffset, x, z)
}

// ColumnParams собирает все пять осей колонки
func (f *Field) ColumnParams(x, z int) Params {
	cont, eros, weird, temp := f.HeightParams(x, z)
	return Params{
		Continentalness: cont,
		Erosion:         eros,
		Weirdness:       weird,
		Temperature:     temp,
		Humidity:        f.Humidity(x, z),
	}
}

// Density возвращает плотность в точке: > 0: твёрдый кандидат, <= 0: воздух или вода.
//
// Основа: 4-октавный микрошум минус спад по высоте. В областях, где низкочастотное
// поле warp превышает порог, спад слабее, и над поверхностью появляются висящие
// скалы. При неотрицательной континентальности узкая полоса перлин-шума вырезает
// русла рек около уровня моря.
func (f *Field) Density(x, y, z int, cont, eros, weird float64) float32 {
	fx, fy, fz := float64(x), float64(y), float64(z)

	micro := f.Octaves(fx*microFreq, fy*microFreq, fz*microFreq, microOctaves)

	base := 64 + float64(cont*30) - float64(eros*8) + float64(math.Abs(weird)*12)
	rate := 1.0 / 16
	warp := f.Octaves(fx*warpFreq+warpOffset[0], fy*warpFreq+warpOffset[1], fz*warpFreq+warpOffset[2], warpOctaves)
	if warp > warpThreshold {
		rate *= 0.5
	}

	d := micro - float64((fy-base)*rate)

	if cont >= 0 {
		ridge := math.Abs(f.river.Noise2D(fx*riverFreq, fz*riverFreq))
		if ridge < riverBand && math.Abs(fy-WaterLevel) < riverReach {
			d -= float64((riverBand-ridge)/riverBand) * riverDepth
		}
	}

	return float32(d)
}
