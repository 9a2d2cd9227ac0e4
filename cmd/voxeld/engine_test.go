package main

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxelcore/internal/config"
	"github.com/annel0/voxelcore/internal/logging"
	"github.com/annel0/voxelcore/internal/telemetry"
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world"
	"github.com/annel0/voxelcore/internal/world/block"
)

func testConfig(t *testing.T, dataDir string) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Storage.DataDir = dataDir
	cfg.World.Seed = 7
	cfg.World.ViewRadius = 1
	cfg.World.VerticalRadius = 1
	cfg.World.GeneratePerTick = 0
	cfg.Mesh.Workers = 1
	return cfg
}

func newTestEngine(t *testing.T, cfg *config.Config) *engine {
	t.Helper()

	logs := logging.NewManager(t.TempDir(), logging.ERROR)
	t.Cleanup(func() { logs.CloseAll() })

	eng, err := newEngine(cfg, logs, telemetry.NewResourceTracker(prometheus.NewRegistry()))
	require.NoError(t, err)
	eng.observer.speed = 0
	return eng
}

func TestEngine_TickStreamsAndMeshes(t *testing.T) {
	eng := newTestEngine(t, testConfig(t, t.TempDir()))

	eng.tick(0.05)
	// 5 колонок круга радиуса 1, по 3 чанка по высоте вокруг уровня моря
	assert.Equal(t, 15, eng.world.ChunkCount())

	require.Eventually(t, func() bool {
		eng.tick(0.05)
		return eng.pipeline.Pending() == 0 && eng.world.DirtyCount() == 0
	}, 5*time.Second, 10*time.Millisecond)

	assert.Positive(t, eng.pipeline.MeshCount())
	assert.Equal(t, eng.world.ChunkCount(), eng.tracker.Usage().Chunks)
	require.NoError(t, eng.close())
}

func TestEngine_CloseAndReopen(t *testing.T) {
	dataDir := t.TempDir()

	eng := newTestEngine(t, testConfig(t, dataDir))
	eng.tick(0.05)
	position := eng.observer.Position()
	require.NoError(t, eng.close())

	cfg := testConfig(t, dataDir)
	cfg.World.Seed = 99
	reopened := newTestEngine(t, cfg)

	assert.Equal(t, uint32(7), reopened.world.Seed(), "сид берётся из сохранения")
	assert.Equal(t, position, reopened.observer.Position())

	reopened.tick(0.05)
	assert.Equal(t, 15, reopened.world.ChunkCount())
	require.NoError(t, reopened.close())
}

func TestObserver_WalksOnSurfaceAndDigs(t *testing.T) {
	w := world.NewWorld(1, logging.Discard())
	w.SetBlockWorld(vec.Vec3{X: 0, Y: 10, Z: 0}, block.Stone)

	o := newObserver(vec.Vec3Float{X: 0.5, Y: 20, Z: 0.5})
	o.move(w, 0)
	assert.Equal(t, 11.0, o.Position().Y)

	affected := o.dig(w)
	assert.NotEmpty(t, affected)
	assert.Equal(t, block.Air, w.GetBlock(vec.Vec3{X: 0, Y: 10, Z: 0}))
	assert.Equal(t, 1, w.EntityCount())

	assert.Empty(t, o.dig(w), "под ногами больше нечего ломать")

	o.speed = 2
	o.move(w, 0.5)
	assert.Equal(t, 1.5, o.Position().X)
	assert.Equal(t, 11.0, o.Position().Y, "без опоры высота не меняется")
}

func TestObserver_Collect(t *testing.T) {
	o := newObserver(vec.Vec3Float{})
	assert.True(t, o.Collect(block.Dirt, 2))
	assert.True(t, o.Collect(block.Stone, 1))
	assert.Equal(t, 3, o.collected())
}
