package mesh

import (
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world"
	"github.com/annel0/voxelcore/internal/world/block"
)

// MaxLOD: самый грубый шаг прореживания
const MaxLOD = 8

// cell: ячейка маски. Соседние ячейки сливаются в один прямоугольник,
// только если совпадают блок, затенение углов и свет.
type cell struct {
	id    block.BlockID
	ao    [4]uint8 // 0..3 для углов (-u,-v), (+u,-v), (+u,+v), (-u,+v)
	light uint8
}

var aoCorners = [4][2]int{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

var unoccluded = [4]uint8{3, 3, 3, 3}

// Build строит жадный меш чанка key с шагом step (1, 2, 4 или 8).
// Блоки читаются только через src, поэтому соседние чанки учитываются
// на границах, а незагруженные соседи считаются воздухом.
func Build(src world.BlockSource, key vec.Vec3, step int) *Mesh {
	step = NormalizeStep(step)
	s := newSampler(src, key, step)
	m := &Mesh{Key: key, LOD: step}

	mask := make([]cell, s.n*s.n)
	for f := Face(0); f < FaceCount; f++ {
		for depth := 0; depth < s.n; depth++ {
			if s.fillMask(mask, f, depth) {
				m.mergeMask(mask, s.n, f, depth, step)
			}
		}
	}
	return m
}

// NormalizeStep приводит шаг к степени двойки в [1, MaxLOD]
func NormalizeStep(step int) int {
	s := 1
	for s*2 <= step && s*2 <= MaxLOD {
		s *= 2
	}
	return s
}

// FaceVisible решает, рисуется ли грань блока b, за которой лежит nb.
// Между двумя одинаковыми прозрачными блоками (стекло к стеклу) грани нет.
func FaceVisible(b, nb block.BlockID) bool {
	if !b.IsSolid() {
		return false
	}
	return !nb.IsSolid() || (nb.IsTransparent() && nb != b)
}

func occludes(id block.BlockID) bool {
	return id.IsSolid() && !id.IsTransparent()
}

func vertexAO(side1, side2, corner bool) uint8 {
	if side1 && side2 {
		return 0
	}
	level := uint8(3)
	for _, o := range [3]bool{side1, side2, corner} {
		if o {
			level--
		}
	}
	return level
}

// sampler: блоки и свет чанка с рамкой в одну ячейку со всех сторон.
// Ячейка при шаге LOD s покрывает s³ блоков.
type sampler struct {
	n      int
	step   int
	stride int
	blocks []block.BlockID
	light  []uint8
}

func newSampler(src world.BlockSource, key vec.Vec3, step int) *sampler {
	n := world.ChunkSize / step
	stride := n + 2
	s := &sampler{
		n:      n,
		step:   step,
		stride: stride,
		blocks: make([]block.BlockID, stride*stride*stride),
		light:  make([]uint8, stride*stride*stride),
	}

	origin := key.ChunkOrigin()
	for z := -1; z <= n; z++ {
		for y := -1; y <= n; y++ {
			for x := -1; x <= n; x++ {
				base := vec.Vec3{X: origin.X + x*step, Y: origin.Y + y*step, Z: origin.Z + z*step}
				i := s.index([3]int{x, y, z})
				s.blocks[i] = representative(src, base, step)
				s.light[i] = src.GetLight(base)
			}
		}
	}
	return s
}

// representative выбирает блок, представляющий ячейку LOD: первый твёрдый
// блок при обходе сверху вниз, иначе первый непустой.
func representative(src world.BlockSource, base vec.Vec3, step int) block.BlockID {
	if step == 1 {
		return src.GetBlock(base)
	}

	fallback := block.Air
	for y := step - 1; y >= 0; y-- {
		for z := 0; z < step; z++ {
			for x := 0; x < step; x++ {
				id := src.GetBlock(base.Add(vec.Vec3{X: x, Y: y, Z: z}))
				if id.IsSolid() {
					return id
				}
				if fallback == block.Air {
					fallback = id
				}
			}
		}
	}
	return fallback
}

func (s *sampler) index(p [3]int) int {
	return (p[0] + 1) + (p[1]+1)*s.stride + (p[2]+1)*s.stride*s.stride
}

func (s *sampler) block(p [3]int) block.BlockID {
	return s.blocks[s.index(p)]
}

// fillMask строит маску видимых граней направления f на срезе depth.
// Возвращает false, если маска пуста.
func (s *sampler) fillMask(mask []cell, f Face, depth int) bool {
	ax := faceAxes[f]
	normal := f.Normal()
	offset := [3]int{normal.X, normal.Y, normal.Z}
	visible := false

	for v := 0; v < s.n; v++ {
		for u := 0; u < s.n; u++ {
			var p [3]int
			p[ax.d], p[ax.u], p[ax.v] = depth, u, v
			q := [3]int{p[0] + offset[0], p[1] + offset[1], p[2] + offset[2]}

			b := s.block(p)
			if !FaceVisible(b, s.block(q)) {
				mask[u+v*s.n] = cell{}
				continue
			}

			c := cell{id: b, light: s.light[s.index(q)], ao: unoccluded}
			if s.step == 1 {
				c.ao = s.occlusion(q, ax.u, ax.v)
			}
			mask[u+v*s.n] = c
			visible = true
		}
	}
	return visible
}

// occlusion считает затенение четырёх углов грани по соседям ячейки q,
// лежащей перед гранью
func (s *sampler) occlusion(q [3]int, ua, va int) [4]uint8 {
	var ao [4]uint8
	for i, corner := range aoCorners {
		side1, side2, diag := q, q, q
		side1[ua] += corner[0]
		side2[va] += corner[1]
		diag[ua] += corner[0]
		diag[va] += corner[1]
		ao[i] = vertexAO(occludes(s.block(side1)), occludes(s.block(side2)), occludes(s.block(diag)))
	}
	return ao
}

// mergeMask жадно покрывает маску прямоугольниками: растит ширину вдоль u
// до конца строки, затем высоту вдоль v, пока вся строка совпадает.
// Поглощённые ячейки очищаются.
func (m *Mesh) mergeMask(mask []cell, n int, f Face, depth, step int) {
	for v := 0; v < n; v++ {
		for u := 0; u < n; {
			c := mask[u+v*n]
			if c.id == block.Air {
				u++
				continue
			}

			w := 1
			for u+w < n && mask[u+w+v*n] == c {
				w++
			}

			h := 1
		grow:
			for v+h < n {
				for k := 0; k < w; k++ {
					if mask[u+k+(v+h)*n] != c {
						break grow
					}
				}
				h++
			}

			for dv := 0; dv < h; dv++ {
				for du := 0; du < w; du++ {
					mask[u+du+(v+dv)*n] = cell{}
				}
			}

			m.addQuad(f, c, depth, u, v, w, h, step)
			u += w
		}
	}
}
