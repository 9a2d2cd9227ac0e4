package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Параметры перлин-шума для русел рек
const (
	riverAlpha   = 2.0
	riverBeta    = 2.0
	riverOctaves = int32(3)
	riverSalt    = 0x5DEECE66D
)

// Field: детерминированный трёхмерный value-noise, однозначно заданный сидом.
// Таблица перестановок строится один раз в New; после этого Field только читается
// и безопасен для одновременного использования из нескольких горутин.
type Field struct {
	seed  uint32
	perm  [512]uint8
	river *perlin.Perlin
}

// New строит поле шума для указанного сида
func New(seed uint32) *Field {
	f := &Field{seed: seed}

	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}

	// Перемешивание Фишера-Йетса на линейном конгруэнтном генераторе
	state := seed
	for i := 255; i > 0; i-- {
		state = state*1664525 + 1013904223
		j := int(state>>8) % (i + 1)
		p[i], p[j] = p[j], p[i]
	}

	// Удваиваем таблицу, чтобы индексы вида perm[a]+b не выходили за границы
	for i := 0; i < 512; i++ {
		f.perm[i] = p[i&255]
	}

	f.river = perlin.NewPerlin(riverAlpha, riverBeta, riverOctaves, int64(seed)^riverSalt)
	return f
}

// Seed возвращает сид поля
func (f *Field) Seed() uint32 {
	return f.seed
}

// Permutation возвращает копию таблицы перестановок (256 элементов)
func (f *Field) Permutation() [256]uint8 {
	var p [256]uint8
	copy(p[:], f.perm[:256])
	return p
}

// lattice возвращает значение в узле решётки в диапазоне [-1, 1]
func (f *Field) lattice(x, y, z int) float64 {
	h := f.perm[int(f.perm[int(f.perm[x&255])+(y&255)])+(z&255)]
	return float64(h)/127.5 - 1
}

// Value возвращает значение шума в точке, примерно в диапазоне [-1, 1].
func (f *Field) Value(x, y, z float64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	z0 := math.Floor(z)

	xi, yi, zi := int(x0), int(y0), int(z0)
	tx := fade(x - x0)
	ty := fade(y - y0)
	tz := fade(z - z0)

	v000 := f.lattice(xi, yi, zi)
	v100 := f.lattice(xi+1, yi, zi)
	v010 := f.lattice(xi, yi+1, zi)
	v110 := f.lattice(xi+1, yi+1, zi)
	v001 := f.lattice(xi, yi, zi+1)
	v101 := f.lattice(xi+1, yi, zi+1)
	v011 := f.lattice(xi, yi+1, zi+1)
	v111 := f.lattice(xi+1, yi+1, zi+1)

	i00 := lerp(v000, v100, tx)
	i10 := lerp(v010, v110, tx)
	i01 := lerp(v001, v101, tx)
	i11 := lerp(v011, v111, tx)

	return lerp(lerp(i00, i10, ty), lerp(i01, i11, ty), tz)
}

// Octaves суммирует n октав: частота удваивается, амплитуда делится пополам,
// сумма нормируется на сумму амплитуд.
func (f *Field) Octaves(x, y, z float64, n int) float64 {
	if n <= 0 {
		return 0
	}

	sum, norm := 0.0, 0.0
	amplitude, frequency := 1.0, 1.0
	for i := 0; i < n; i++ {
		sum += float64(amplitude * f.Value(x*frequency, y*frequency, z*frequency))
		norm += amplitude
		amplitude *= 0.5
		frequency *= 2
	}
	return sum / norm
}

// Value: чистая функция (seed, x, y, z) -> шум.
// Строит таблицу на каждый вызов; в горячем коде используйте New(seed).Value.
func Value(seed uint32, x, y, z float64) float64 {
	return New(seed).Value(x, y, z)
}

// Octaves: чистая функция (seed, x, y, z, n) -> октавный шум
func Octaves(seed uint32, x, y, z float64, n int) float64 {
	return New(seed).Octaves(x, y, z, n)
}

// Явные приведения к float64 запрещают компилятору сливать умножение и сложение
// в FMA (arm64, ppc64, s390x): результат должен совпадать бит в бит на всех платформах.

func fade(t float64) float64 {
	a := float64(t*6) - 15
	b := float64(t*a) + 10
	return float64(float64(t*t)*t) * b
}

func lerp(a, b, t float64) float64 {
	return a + float64(t*(b-a))
}
