package world

import (
	"fmt"

	"github.com/annel0/voxelcore/internal/vec"
)

// ChunkData: сохраняемое представление чанка: 4096 идентификаторов блоков
// (индекс x + y*16 + z*256) и флаг пустоты.
type ChunkData struct {
	Blocks  []byte
	IsEmpty bool
}

// ExportChunk возвращает сохраняемое представление загруженного чанка
func (w *World) ExportChunk(key vec.Vec3) (ChunkData, bool) {
	chunk, ok := w.chunks[key]
	if !ok {
		return ChunkData{}, false
	}
	return ChunkData{Blocks: chunk.Bytes(), IsEmpty: chunk.IsEmpty()}, true
}

// ExportChunks возвращает представление всех загруженных чанков
func (w *World) ExportChunks() map[vec.Vec3]ChunkData {
	out := make(map[vec.Vec3]ChunkData, len(w.chunks))
	for key, chunk := range w.chunks {
		out[key] = ChunkData{Blocks: chunk.Bytes(), IsEmpty: chunk.IsEmpty()}
	}
	return out
}

// LoadChunks восстанавливает чанки из сохранённого представления.
// Пустой чанк может храниться без массива блоков. При ошибке разбора
// ни один чанк не вставляется.
func (w *World) LoadChunks(data map[vec.Vec3]ChunkData) error {
	parsed := make([]*Chunk, 0, len(data))
	for key, d := range data {
		chunk, err := parseChunkData(key, d)
		if err != nil {
			return err
		}
		parsed = append(parsed, chunk)
	}

	for _, chunk := range parsed {
		w.InsertChunk(chunk)
	}
	w.logger.Info("загружено чанков: %d", len(parsed))
	return nil
}

// RestoreChunk вставляет один сохранённый чанк
func (w *World) RestoreChunk(key vec.Vec3, d ChunkData) error {
	chunk, err := parseChunkData(key, d)
	if err != nil {
		return err
	}
	w.InsertChunk(chunk)
	return nil
}

func parseChunkData(key vec.Vec3, d ChunkData) (*Chunk, error) {
	if !validChunkY(key.Y) {
		return nil, fmt.Errorf("%w: чанк %v вне высоты мира", ErrBadChunkData, key)
	}

	if d.IsEmpty && len(d.Blocks) == 0 {
		return NewChunk(key), nil
	}

	chunk, err := ChunkFromBytes(key, d.Blocks)
	if err != nil {
		return nil, fmt.Errorf("чанк %v: %w", key, err)
	}
	if chunk.IsEmpty() != d.IsEmpty {
		return nil, fmt.Errorf("%w: флаг пустоты чанка %v не совпадает с данными", ErrBadChunkData, key)
	}
	return chunk, nil
}
