package mesh

import (
	"github.com/annel0/voxelcore/internal/vec"
)

// Face: направление грани блока
type Face uint8

const (
	FacePosX Face = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// FaceCount: количество направлений граней
const FaceCount = 6

// Normal возвращает единичную нормаль грани
func (f Face) Normal() vec.Vec3 {
	return vec.FaceNeighbors[f]
}

func (f Face) positive() bool {
	return f%2 == 0
}

// side сообщает, что грань боковая (текстура тайлится с переворотом V)
func (f Face) side() bool {
	return f != FacePosY && f != FaceNegY
}

// String возвращает короткое имя грани
func (f Face) String() string {
	switch f {
	case FacePosX:
		return "+X"
	case FaceNegX:
		return "-X"
	case FacePosY:
		return "+Y"
	case FaceNegY:
		return "-Y"
	case FacePosZ:
		return "+Z"
	case FaceNegZ:
		return "-Z"
	default:
		return "?"
	}
}

// Vertex: вершина меша в формате, который принимает рендерер.
// Position задана в координатах чанка (0..16), AO и Light лежат в [0, 1].
type Vertex struct {
	Position [3]float32
	UV       [2]float32
	AO       float32
	Texture  uint32
	Light    float32
}

// Mesh: буферы вершин и индексов одного чанка. Меш заменяется целиком
// при каждом перестроении.
type Mesh struct {
	Key      vec.Vec3
	LOD      int
	Vertices []Vertex
	Indices  []uint32
	Quads    int
	Area     [FaceCount]int // Площадь граней по направлениям в блоках
}

// IsEmpty сообщает, что у меша нет ни одной грани
func (m *Mesh) IsEmpty() bool {
	return m == nil || m.Quads == 0
}

// Origin возвращает мировую позицию угла чанка, к которой прибавляются
// координаты вершин
func (m *Mesh) Origin() vec.Vec3 {
	return m.Key.ChunkOrigin()
}

// TotalArea возвращает суммарную площадь всех граней
func (m *Mesh) TotalArea() int {
	total := 0
	for _, a := range m.Area {
		total += a
	}
	return total
}
