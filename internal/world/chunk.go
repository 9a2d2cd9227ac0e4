package world

import (
	"errors"
	"fmt"

	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world/block"
)

// Размеры чанка и мира
const (
	ChunkSize   = 1 << vec.ChunkShift
	ChunkArea   = ChunkSize * ChunkSize
	ChunkVolume = ChunkArea * ChunkSize

	WorldHeight = 256
	ChunksHigh  = WorldHeight / ChunkSize

	MaxLight = 15
)

// ErrBadChunkData возвращается при разборе повреждённого массива блоков
var ErrBadChunkData = errors.New("повреждённые данные чанка")

// Chunk хранит 16x16x16 блоков и параллельный массив освещения.
// Индекс в массивах: x + y*16 + z*256.
type Chunk struct {
	Coords vec.Vec3 // Ключ чанка

	blocks    [ChunkVolume]block.BlockID
	light     [ChunkVolume]uint8
	nonAir    int  // Количество непустых блоков
	meshDirty bool // Меш устарел и должен быть перестроен
}

// NewChunk создаёт пустой чанк с полным освещением
func NewChunk(coords vec.Vec3) *Chunk {
	c := &Chunk{
		Coords:    coords,
		meshDirty: true,
	}
	for i := range c.light {
		c.light[i] = MaxLight
	}
	return c
}

func chunkIndex(x, y, z int) int {
	return x + y*ChunkSize + z*ChunkArea
}

func inChunk(x, y, z int) bool {
	return x >= 0 && x < ChunkSize && y >= 0 && y < ChunkSize && z >= 0 && z < ChunkSize
}

// GetBlock возвращает блок по локальным координатам; вне чанка: воздух
func (c *Chunk) GetBlock(local vec.Vec3) block.BlockID {
	if !inChunk(local.X, local.Y, local.Z) {
		return block.Air
	}
	return c.blocks[chunkIndex(local.X, local.Y, local.Z)]
}

// SetBlock устанавливает блок по локальным координатам.
// Запись вне чанка молча игнорируется. Возвращает true, если блок изменился.
func (c *Chunk) SetBlock(local vec.Vec3, id block.BlockID) bool {
	if !inChunk(local.X, local.Y, local.Z) {
		return false
	}

	i := chunkIndex(local.X, local.Y, local.Z)
	old := c.blocks[i]
	if old == id {
		return false
	}

	switch {
	case old == block.Air:
		c.nonAir++
	case id == block.Air:
		c.nonAir--
	}

	c.blocks[i] = id
	c.meshDirty = true
	return true
}

// GetLight возвращает уровень света; вне чанка: полный свет
func (c *Chunk) GetLight(local vec.Vec3) uint8 {
	if !inChunk(local.X, local.Y, local.Z) {
		return MaxLight
	}
	return c.light[chunkIndex(local.X, local.Y, local.Z)]
}

// SetLight устанавливает уровень света (0..15)
func (c *Chunk) SetLight(local vec.Vec3, level uint8) {
	if !inChunk(local.X, local.Y, local.Z) {
		return
	}
	if level > MaxLight {
		level = MaxLight
	}
	c.light[chunkIndex(local.X, local.Y, local.Z)] = level
}

// IsEmpty возвращает true, если в чанке только воздух
func (c *Chunk) IsEmpty() bool {
	return c.nonAir == 0
}

// NonAirCount возвращает количество непустых блоков
func (c *Chunk) NonAirCount() int {
	return c.nonAir
}

// MeshDirty сообщает, что меш чанка устарел
func (c *Chunk) MeshDirty() bool {
	return c.meshDirty
}

// MarkMeshDirty помечает меш устаревшим
func (c *Chunk) MarkMeshDirty() {
	c.meshDirty = true
}

// ClearMeshDirty снимает пометку после постановки в очередь мешинга
func (c *Chunk) ClearMeshDirty() {
	c.meshDirty = false
}

// Clone возвращает глубокую копию чанка
func (c *Chunk) Clone() *Chunk {
	clone := *c
	return &clone
}

// Bytes возвращает массив идентификаторов блоков (4096 байт)
func (c *Chunk) Bytes() []byte {
	data := make([]byte, ChunkVolume)
	for i, id := range c.blocks {
		data[i] = byte(id)
	}
	return data
}

// ChunkFromBytes восстанавливает чанк из массива идентификаторов блоков
func ChunkFromBytes(coords vec.Vec3, data []byte) (*Chunk, error) {
	if len(data) != ChunkVolume {
		return nil, fmt.Errorf("%w: ожидалось %d байт, получено %d", ErrBadChunkData, ChunkVolume, len(data))
	}

	c := NewChunk(coords)
	for i, b := range data {
		id := block.BlockID(b)
		if !id.IsBlock() {
			return nil, fmt.Errorf("%w: неизвестный блок %d по индексу %d", ErrBadChunkData, b, i)
		}
		c.blocks[i] = id
		if id != block.Air {
			c.nonAir++
		}
	}
	return c, nil
}
