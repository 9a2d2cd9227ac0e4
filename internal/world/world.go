package world

import (
	"math/rand"
	"slices"

	"github.com/annel0/voxelcore/internal/logging"
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world/block"
)

// BlockSource: доступ к блокам и свету по мировым координатам.
// Реализуется World и Snapshot; мешер работает только через этот интерфейс.
type BlockSource interface {
	GetBlock(pos vec.Vec3) block.BlockID
	GetLight(pos vec.Vec3) uint8
}

// World владеет всеми чанками, сущностями-предметами и множеством грязных чанков.
// Мир изменяется только из одной (главной) горутины; воркеры мешинга
// получают неизменяемые снимки через Snapshot.
type World struct {
	seed      uint32
	chunks    map[vec.Vec3]*Chunk
	dirty     map[vec.Vec3]struct{}
	entities  []*ItemEntity
	generator *Generator
	rng       *rand.Rand
	logger    *logging.Logger
}

// NewWorld создаёт пустой мир с указанным сидом
func NewWorld(seed uint32, logger *logging.Logger) *World {
	if logger == nil {
		logger = logging.Discard()
	}

	return &World{
		seed:      seed,
		chunks:    make(map[vec.Vec3]*Chunk),
		dirty:     make(map[vec.Vec3]struct{}),
		generator: NewGenerator(seed),
		rng:       rand.New(rand.NewSource(int64(seed))),
		logger:    logger,
	}
}

// Seed возвращает сид мира
func (w *World) Seed() uint32 {
	return w.seed
}

// Generator возвращает генератор ландшафта мира
func (w *World) Generator() *Generator {
	return w.generator
}

// InWorldHeight проверяет, что высота лежит в [0, WorldHeight)
func InWorldHeight(y int) bool {
	return y >= 0 && y < WorldHeight
}

// validChunkY проверяет, что ключ чанка лежит в допустимом диапазоне по высоте
func validChunkY(y int) bool {
	return y >= 0 && y < ChunksHigh
}

// GetBlock возвращает блок по мировым координатам.
// Для незагруженного чанка и высоты вне мира возвращается воздух.
func (w *World) GetBlock(pos vec.Vec3) block.BlockID {
	if !InWorldHeight(pos.Y) {
		return block.Air
	}
	chunk, ok := w.chunks[pos.ToChunkCoords()]
	if !ok {
		return block.Air
	}
	return chunk.GetBlock(pos.LocalInChunk())
}

// GetLight возвращает уровень света по мировым координатам; по умолчанию: полный свет
func (w *World) GetLight(pos vec.Vec3) uint8 {
	if !InWorldHeight(pos.Y) {
		return MaxLight
	}
	chunk, ok := w.chunks[pos.ToChunkCoords()]
	if !ok {
		return MaxLight
	}
	return chunk.GetLight(pos.LocalInChunk())
}

// SetBlockWorld записывает блок и помечает меш его чанка устаревшим.
// Соседние чанки не затрагиваются: это делает вызывающий код правок.
// Запись в незагруженный чанк создаёт пустой чанк.
func (w *World) SetBlockWorld(pos vec.Vec3, id block.BlockID) {
	if !InWorldHeight(pos.Y) {
		return
	}

	key := pos.ToChunkCoords()
	chunk, ok := w.chunks[key]
	if !ok {
		if id == block.Air {
			return
		}
		chunk = NewChunk(key)
		w.chunks[key] = chunk
	}

	chunk.SetBlock(pos.LocalInChunk(), id)
	chunk.MarkMeshDirty()
}

// Chunk возвращает загруженный чанк по ключу
func (w *World) Chunk(key vec.Vec3) (*Chunk, bool) {
	chunk, ok := w.chunks[key]
	return chunk, ok
}

// HasChunk проверяет, загружен ли чанк
func (w *World) HasChunk(key vec.Vec3) bool {
	_, ok := w.chunks[key]
	return ok
}

// loadedAt проверяет, что чанк позиции загружен
func (w *World) loadedAt(pos vec.Vec3) bool {
	_, ok := w.chunks[pos.ToChunkCoords()]
	return ok
}

// InsertChunk добавляет (или заменяет) чанк и помечает грязными его
// загруженных соседей, чтобы граничные грани были пересчитаны.
func (w *World) InsertChunk(chunk *Chunk) {
	if chunk == nil || !validChunkY(chunk.Coords.Y) {
		return
	}

	w.chunks[chunk.Coords] = chunk
	w.MarkDirty(chunk.Coords)
	w.markNeighbours(chunk.Coords)
}

// UnloadChunk выгружает чанк. Возвращает false, если чанк не был загружен.
func (w *World) UnloadChunk(key vec.Vec3) bool {
	if _, ok := w.chunks[key]; !ok {
		return false
	}

	delete(w.chunks, key)
	delete(w.dirty, key)
	w.markNeighbours(key)
	return true
}

func (w *World) markNeighbours(key vec.Vec3) {
	for _, n := range neighbourhood(key) {
		if n != key {
			w.MarkDirty(n)
		}
	}
}

// GenerateChunk генерирует и вставляет чанк, если он ещё не загружен
func (w *World) GenerateChunk(key vec.Vec3) *Chunk {
	if chunk, ok := w.chunks[key]; ok {
		return chunk
	}
	if !validChunkY(key.Y) {
		return nil
	}

	chunk := w.generator.Generate(key)
	w.InsertChunk(chunk)
	w.logger.Trace("сгенерирован чанк %v (%d блоков)", key, chunk.NonAirCount())
	return chunk
}

// GenerateColumn генерирует все чанки колонки (cx, cz) по высоте мира
func (w *World) GenerateColumn(cx, cz int) {
	for cy := 0; cy < ChunksHigh; cy++ {
		w.GenerateChunk(vec.Vec3{X: cx, Y: cy, Z: cz})
	}
}

// ChunkKeys возвращает отсортированные ключи загруженных чанков
func (w *World) ChunkKeys() []vec.Vec3 {
	keys := make([]vec.Vec3, 0, len(w.chunks))
	for key := range w.chunks {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, vec.Compare)
	return keys
}

// ChunkCount возвращает количество загруженных чанков
func (w *World) ChunkCount() int {
	return len(w.chunks)
}

// MarkDirty помечает загруженный чанк для перестроения меша
func (w *World) MarkDirty(key vec.Vec3) {
	chunk, ok := w.chunks[key]
	if !ok {
		return
	}
	chunk.MarkMeshDirty()
	w.dirty[key] = struct{}{}
}

// IsDirty проверяет, ожидает ли чанк перестроения меша
func (w *World) IsDirty(key vec.Vec3) bool {
	if _, ok := w.dirty[key]; ok {
		return true
	}
	chunk, ok := w.chunks[key]
	return ok && chunk.MeshDirty()
}

// DirtyChunks возвращает отсортированные ключи всех грязных чанков:
// множество dirty плюс чанки с флагом meshDirty.
func (w *World) DirtyChunks() []vec.Vec3 {
	keys := make([]vec.Vec3, 0, len(w.dirty))
	for key := range w.dirty {
		keys = append(keys, key)
	}
	for key, chunk := range w.chunks {
		if _, listed := w.dirty[key]; !listed && chunk.MeshDirty() {
			keys = append(keys, key)
		}
	}
	slices.SortFunc(keys, vec.Compare)
	return keys
}

// DirtyCount возвращает количество грязных чанков
func (w *World) DirtyCount() int {
	return len(w.DirtyChunks())
}

// ClearDirty снимает с чанка обе пометки
func (w *World) ClearDirty(key vec.Vec3) {
	delete(w.dirty, key)
	if chunk, ok := w.chunks[key]; ok {
		chunk.ClearMeshDirty()
	}
}
