package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxelcore/internal/logging"
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world"
	"github.com/annel0/voxelcore/internal/world/block"
)

func setupTestStore(t *testing.T) *ChunkStore {
	t.Helper()

	store, err := Open(t.TempDir(), logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestChunkStore_SaveAndLoadChunk(t *testing.T) {
	store := setupTestStore(t)

	key := vec.Vec3{X: -3, Y: 4, Z: 7}
	chunk := world.NewChunk(key)
	chunk.SetBlock(vec.Vec3{X: 1, Y: 2, Z: 3}, block.Stone)
	chunk.SetBlock(vec.Vec3{X: 15, Y: 15, Z: 15}, block.DiamondOre)
	data := world.ChunkData{Blocks: chunk.Bytes(), IsEmpty: false}

	require.NoError(t, store.SaveChunk(key, data))

	loaded, err := store.LoadChunk(key)
	require.NoError(t, err)
	assert.False(t, loaded.IsEmpty)
	assert.Equal(t, data.Blocks, loaded.Blocks)
}

func TestChunkStore_EmptyChunk(t *testing.T) {
	store := setupTestStore(t)
	key := vec.Vec3{X: 0, Y: 15, Z: 0}

	require.NoError(t, store.SaveChunk(key, world.ChunkData{IsEmpty: true}))

	loaded, err := store.LoadChunk(key)
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty)
	assert.Empty(t, loaded.Blocks)
}

func TestChunkStore_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.LoadChunk(vec.Vec3{X: 1, Y: 1, Z: 1})
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = store.LoadMeta()
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestChunkStore_CorruptValue(t *testing.T) {
	store := setupTestStore(t)
	key := vec.Vec3{X: 2, Y: 2, Z: 2}

	err := store.db.Update(func(txn *badger.Txn) error {
		return txn.Set(chunkKey(key), []byte{0, 1, 2, 3})
	})
	require.NoError(t, err)

	_, err = store.LoadChunk(key)
	require.Error(t, err)
	assert.True(t, errors.Is(err, world.ErrBadChunkData))

	_, err = store.LoadAll()
	assert.True(t, errors.Is(err, world.ErrBadChunkData))
}

func TestChunkStore_WorldRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	source := world.NewWorld(42, logging.Discard())
	source.GenerateColumn(0, 0)
	source.GenerateColumn(-1, 2)
	source.BreakBlock(vec.Vec3{X: 3, Y: 40, Z: 3})

	require.NoError(t, store.SaveChunks(source.ExportChunks()))

	loaded, err := store.LoadAll()
	require.NoError(t, err)
	assert.Len(t, loaded, source.ChunkCount())

	restored := world.NewWorld(42, logging.Discard())
	require.NoError(t, restored.LoadChunks(loaded))

	assert.Equal(t, source.ChunkKeys(), restored.ChunkKeys())
	for _, key := range source.ChunkKeys() {
		want, _ := source.ExportChunk(key)
		got, _ := restored.ExportChunk(key)
		assert.Equal(t, want, got, "чанк %v", key)
	}
	pos := vec.Vec3{X: 3, Y: 40, Z: 3}
	assert.Equal(t, source.GetBlock(pos), restored.GetBlock(pos))
}

func TestChunkStore_DeleteChunk(t *testing.T) {
	store := setupTestStore(t)
	key := vec.Vec3{X: 5, Y: 0, Z: 5}

	require.NoError(t, store.SaveChunk(key, world.ChunkData{IsEmpty: true}))
	require.NoError(t, store.DeleteChunk(key))

	_, err := store.LoadChunk(key)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestChunkStore_Meta(t *testing.T) {
	store := setupTestStore(t)

	meta := Meta{
		Seed:    42,
		SavedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Player: PlayerRecord{
			Position: vec.Vec3Float{X: 0.5, Y: 80, Z: -12.25},
			Yaw:      90,
		},
	}
	require.NoError(t, store.SaveMeta(meta))

	loaded, err := store.LoadMeta()
	require.NoError(t, err)
	assert.Equal(t, meta.Seed, loaded.Seed)
	assert.True(t, meta.SavedAt.Equal(loaded.SavedAt))
	assert.Equal(t, meta.Player, loaded.Player)
}

func TestChunkStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	key := vec.Vec3{X: 1, Y: 3, Z: 1}

	store, err := Open(dir, logging.Discard())
	require.NoError(t, err)
	chunk := world.NewChunk(key)
	chunk.SetBlock(vec.Vec3{}, block.Glass)
	require.NoError(t, store.SaveChunk(key, world.ChunkData{Blocks: chunk.Bytes()}))
	require.NoError(t, store.Close())

	store, err = Open(dir, logging.Discard())
	require.NoError(t, err)
	defer store.Close()

	loaded, err := store.LoadChunk(key)
	require.NoError(t, err)
	assert.Equal(t, byte(block.Glass), loaded.Blocks[0])
}

func TestChunkStore_Closed(t *testing.T) {
	store, err := Open(t.TempDir(), nil)
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close(), "Повторное закрытие безопасно")

	assert.ErrorIs(t, store.SaveChunk(vec.Vec3{}, world.ChunkData{IsEmpty: true}), ErrClosed)
	_, err = store.LoadAll()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestParseChunkKey(t *testing.T) {
	key := vec.Vec3{X: -12, Y: 3, Z: 40}
	parsed, err := parseChunkKey(chunkKey(key))
	require.NoError(t, err)
	assert.Equal(t, key, parsed)

	_, err = parseChunkKey([]byte("chunk:oops"))
	assert.Error(t, err)
}

func TestChunkStore_Items(t *testing.T) {
	store := setupTestStore(t)

	items, err := store.LoadItems()
	require.NoError(t, err)
	assert.Empty(t, items)

	w := world.NewWorld(3, logging.Discard())
	w.SpawnItem(vec.Vec3Float{X: 1, Y: 70, Z: 1}, block.Cobblestone, 1)
	w.SpawnItem(vec.Vec3Float{X: -4, Y: 65, Z: 2}, block.Diamond, 3)
	require.NoError(t, store.SaveItems(w.Entities()))

	items, err = store.LoadItems()
	require.NoError(t, err)
	require.Len(t, items, 2)
	for i, e := range w.Entities() {
		assert.Equal(t, *e, *items[i])
	}

	restored := world.NewWorld(3, logging.Discard())
	restored.RestoreEntities(items)
	assert.Equal(t, 2, restored.EntityCount())
}
