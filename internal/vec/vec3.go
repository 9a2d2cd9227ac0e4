package vec

// ChunkShift и ChunkMask задают размер чанка (16) в битовой форме.
const (
	ChunkShift = 4
	ChunkMask  = 0xF
)

// Vec3 представляет трехмерный вектор с целочисленными координатами.
// Используется и как позиция блока в мире, и как ключ чанка.
type Vec3 struct {
	X int
	Y int
	Z int
}

// Направления к шести соседям блока
var (
	Up    = Vec3{Y: 1}
	Down  = Vec3{Y: -1}
	East  = Vec3{X: 1}
	West  = Vec3{X: -1}
	South = Vec3{Z: 1}
	North = Vec3{Z: -1}
)

// FaceNeighbors перечисляет смещения шести соседей по граням
var FaceNeighbors = [6]Vec3{East, West, Up, Down, South, North}

// ToChunkCoords возвращает ключ чанка, содержащего блок.
// Арифметический сдвиг даёт деление с округлением к минус бесконечности:
// x = -1 попадает в чанк -1, а не 0.
func (v Vec3) ToChunkCoords() Vec3 {
	return Vec3{X: v.X >> ChunkShift, Y: v.Y >> ChunkShift, Z: v.Z >> ChunkShift}
}

// LocalInChunk возвращает локальные координаты внутри чанка (всегда 0..15)
func (v Vec3) LocalInChunk() Vec3 {
	return Vec3{X: v.X & ChunkMask, Y: v.Y & ChunkMask, Z: v.Z & ChunkMask}
}

// ChunkOrigin возвращает мировые координаты блока (0,0,0) чанка с ключом v
func (v Vec3) ChunkOrigin() Vec3 {
	return Vec3{X: v.X << ChunkShift, Y: v.Y << ChunkShift, Z: v.Z << ChunkShift}
}

// FromChunkLocal собирает мировую позицию из ключа чанка и локальной позиции
func FromChunkLocal(chunk, local Vec3) Vec3 {
	return chunk.ChunkOrigin().Add(local)
}

// DistanceTo возвращает квадрат расстояния до другого вектора
func (v Vec3) DistanceTo(other Vec3) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	dz := v.Z - other.Z
	return float64(dx*dx + dy*dy + dz*dz)
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub вычитает вектор
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Column отбрасывает высоту и возвращает колонку (X,Z)
func (v Vec3) Column() Vec2 {
	return Vec2{X: v.X, Z: v.Z}
}

// ToFloat возвращает центр блока в координатах с плавающей точкой
func (v Vec3) ToFloat() Vec3Float {
	return Vec3Float{X: float64(v.X) + 0.5, Y: float64(v.Y) + 0.5, Z: float64(v.Z) + 0.5}
}

// Less задаёт детерминированный порядок (Y, Z, X) для сортировки ключей
func (v Vec3) Less(other Vec3) bool {
	if v.Y != other.Y {
		return v.Y < other.Y
	}
	if v.Z != other.Z {
		return v.Z < other.Z
	}
	return v.X < other.X
}

// Compare возвращает -1, 0 или 1 в порядке Less (для slices.SortFunc)
func Compare(a, b Vec3) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}
