package mesh

import (
	"github.com/annel0/voxelcore/internal/world"
	"github.com/annel0/voxelcore/internal/world/block"
)

// faceAxes задаёт для каждой грани ось нормали d и оси маски u, v
var faceAxes = [FaceCount]struct{ d, u, v int }{
	FacePosX: {d: 0, u: 2, v: 1},
	FaceNegX: {d: 0, u: 2, v: 1},
	FacePosY: {d: 1, u: 0, v: 2},
	FaceNegY: {d: 1, u: 0, v: 2},
	FacePosZ: {d: 2, u: 0, v: 1},
	FaceNegZ: {d: 2, u: 0, v: 1},
}

// faceCorners: порядок обхода углов прямоугольника в осях (u, v):
// 0: начало, 1: конец по оси. Обход против часовой стрелки,
// если смотреть на грань снаружи.
var faceCorners = [FaceCount][4][2]int{
	FacePosX: {{0, 0}, {0, 1}, {1, 1}, {1, 0}},
	FaceNegX: {{0, 0}, {1, 0}, {1, 1}, {0, 1}},
	FacePosY: {{0, 0}, {0, 1}, {1, 1}, {1, 0}},
	FaceNegY: {{0, 0}, {1, 0}, {1, 1}, {0, 1}},
	FacePosZ: {{0, 0}, {1, 0}, {1, 1}, {0, 1}},
	FaceNegZ: {{0, 0}, {0, 1}, {1, 1}, {1, 0}},
}

// quadIndices: два треугольника на прямоугольник
var quadIndices = [6]uint32{0, 1, 2, 0, 2, 3}

// aoIndex переводит угол (cu, cv) в индекс массива затенения cell.ao
var aoIndex = [2][2]int{{0, 3}, {1, 2}}

// textureFor выбирает текстуру по направлению грани
func textureFor(id block.BlockID, f Face) uint32 {
	tex := id.Textures()
	switch f {
	case FacePosY:
		return tex.Top
	case FaceNegY:
		return tex.Bottom
	default:
		return tex.Side
	}
}

// addQuad разворачивает прямоугольник маски (u, v, w, h) на срезе depth
// в четыре вершины и шесть индексов. Координаты и UV масштабируются шагом LOD.
func (m *Mesh) addQuad(f Face, c cell, depth, u, v, w, h, step int) {
	ax := faceAxes[f]
	plane := depth
	if f.positive() {
		plane++
	}

	tex := textureFor(c.id, f)
	light := float32(c.light) / world.MaxLight
	base := uint32(len(m.Vertices))

	for _, corner := range faceCorners[f] {
		cu, cv := corner[0], corner[1]

		var pos [3]int
		pos[ax.d] = plane * step
		pos[ax.u] = (u + cu*w) * step
		pos[ax.v] = (v + cv*h) * step

		uv := [2]float32{float32(cu * w * step), float32(cv * h * step)}
		if f.side() {
			uv[1] = float32((1 - cv) * h * step)
		}

		m.Vertices = append(m.Vertices, Vertex{
			Position: [3]float32{float32(pos[0]), float32(pos[1]), float32(pos[2])},
			UV:       uv,
			AO:       float32(c.ao[aoIndex[cu][cv]]) / 3,
			Texture:  tex,
			Light:    light,
		})
	}

	for _, i := range quadIndices {
		m.Indices = append(m.Indices, base+i)
	}
	m.Quads++
	m.Area[f] += w * h * step * step
}
