package world

import (
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world/block"
)

// Snapshot: неизменяемая копия чанка и его загруженных соседей (3x3x3).
// Передаётся воркерам мешинга вместо ссылки на живой мир.
type Snapshot struct {
	Center vec.Vec3
	chunks map[vec.Vec3]*Chunk
}

// Snapshot копирует чанк key и его загруженных соседей.
// Возвращает false, если сам чанк не загружен.
func (w *World) Snapshot(key vec.Vec3) (*Snapshot, bool) {
	if _, ok := w.chunks[key]; !ok {
		return nil, false
	}

	s := &Snapshot{
		Center: key,
		chunks: make(map[vec.Vec3]*Chunk, 27),
	}
	for _, n := range neighbourhood(key) {
		if chunk, ok := w.chunks[n]; ok {
			s.chunks[n] = chunk.Clone()
		}
	}
	return s, true
}

// Chunk возвращает копию чанка из снимка
func (s *Snapshot) Chunk(key vec.Vec3) (*Chunk, bool) {
	chunk, ok := s.chunks[key]
	return chunk, ok
}

// GetBlock возвращает блок из снимка; вне снимка: воздух
func (s *Snapshot) GetBlock(pos vec.Vec3) block.BlockID {
	if !InWorldHeight(pos.Y) {
		return block.Air
	}
	chunk, ok := s.chunks[pos.ToChunkCoords()]
	if !ok {
		return block.Air
	}
	return chunk.GetBlock(pos.LocalInChunk())
}

// GetLight возвращает свет из снимка; вне снимка: полный свет
func (s *Snapshot) GetLight(pos vec.Vec3) uint8 {
	if !InWorldHeight(pos.Y) {
		return MaxLight
	}
	chunk, ok := s.chunks[pos.ToChunkCoords()]
	if !ok {
		return MaxLight
	}
	return chunk.GetLight(pos.LocalInChunk())
}

// IsEmpty сообщает, что центральный чанк снимка пуст
func (s *Snapshot) IsEmpty() bool {
	chunk, ok := s.chunks[s.Center]
	return !ok || chunk.IsEmpty()
}
