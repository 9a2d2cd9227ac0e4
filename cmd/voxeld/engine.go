package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/annel0/voxelcore/internal/config"
	"github.com/annel0/voxelcore/internal/logging"
	"github.com/annel0/voxelcore/internal/mesh"
	"github.com/annel0/voxelcore/internal/noise"
	"github.com/annel0/voxelcore/internal/storage"
	"github.com/annel0/voxelcore/internal/stream"
	"github.com/annel0/voxelcore/internal/telemetry"
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world"
)

// engine связывает мир, хранилище, стример и пайплайн мешинга.
// Все методы вызываются из главной горутины.
type engine struct {
	cfg      *config.Config
	world    *world.World
	store    *storage.ChunkStore
	pipeline *mesh.Pipeline
	streamer *stream.Streamer
	tracker  *telemetry.ResourceTracker
	observer *observer
	logger   *logging.Logger

	limits   telemetry.ResourceLimits
	digEvery time.Duration
	digTimer time.Duration
	center   vec.Vec3
}

func newEngine(cfg *config.Config, logs *logging.Manager, tracker *telemetry.ResourceTracker) (*engine, error) {
	logger := logs.MustGetLogger("engine")

	store, err := storage.Open(cfg.Storage.GetDataDir(), logs.MustGetLogger("storage"))
	if err != nil {
		return nil, err
	}

	seed := cfg.World.GetSeed()
	spawn := vec.Vec3Float{X: 0.5, Y: noise.WaterLevel + 1, Z: 0.5}

	meta, err := store.LoadMeta()
	switch {
	case err == nil:
		seed = meta.Seed
		spawn = meta.Player.Position
		logger.Info("💾 Найдено сохранение от %s", meta.SavedAt.Format(time.RFC3339))
	case errors.Is(err, storage.ErrNotFound):
		logger.Info("Новый мир с сидом %d", seed)
	default:
		store.Close()
		return nil, fmt.Errorf("чтение метаданных мира: %w", err)
	}

	w := world.NewWorld(seed, logs.MustGetLogger("world"))

	items, err := store.LoadItems()
	if err != nil {
		logger.Warn("Выпавшие предметы не загружены: %v", err)
	}
	w.RestoreEntities(items)

	limits := telemetry.ResourceLimits{
		MaxChunks:        cfg.Limits.MaxChunks,
		MaxEntities:      cfg.Limits.MaxEntities,
		MaxPendingMeshes: cfg.Limits.MaxPendingMeshes,
	}
	center := spawn.Floor().ToChunkCoords()

	pipeline := mesh.NewPipeline(mesh.Options{
		Workers:    cfg.Mesh.GetWorkers(),
		MaxPending: cfg.Limits.MaxPendingMeshes,
		LOD:        mesh.DistancePolicy(center, cfg.Mesh.LODDistances),
	}, tracker, logs.MustGetLogger("mesh"))

	streamer := stream.NewStreamer(w, store, pipeline, stream.Options{
		ViewRadius:      cfg.World.ViewRadius,
		VerticalRadius:  cfg.World.VerticalRadius,
		GeneratePerTick: cfg.World.GeneratePerTick,
		Limits:          limits,
	}, tracker, logs.MustGetLogger("stream"))

	return &engine{
		cfg:      cfg,
		world:    w,
		store:    store,
		pipeline: pipeline,
		streamer: streamer,
		tracker:  tracker,
		observer: newObserver(spawn),
		logger:   logger,
		limits:   limits,
		center:   center,
	}, nil
}

// tick: один кадр: движение наблюдателя, стриминг, физика предметов, мешинг
func (e *engine) tick(dt float64) {
	e.observer.move(e.world, dt)

	center := e.observer.Position().Floor().ToChunkCoords()
	if center != e.center {
		e.center = center
		e.pipeline.SetLOD(mesh.DistancePolicy(center, e.cfg.Mesh.LODDistances))
	}
	e.streamer.Update(center)

	if e.digEvery > 0 {
		e.digTimer += time.Duration(dt * float64(time.Second))
		if e.digTimer >= e.digEvery {
			e.digTimer = 0
			if affected := e.observer.dig(e.world); len(affected) > 0 {
				e.tracker.BlockEdit("break")
			}
		}
	}

	if picked := e.world.UpdateEntities(dt, e.observer); picked > 0 {
		e.logger.Debug("подобрано предметов: %d", picked)
	}
	e.tracker.SetEntities(e.world.EntityCount())

	e.pipeline.Submit(e.world)
	e.pipeline.Poll(e.world, e.cfg.Mesh.BatchPerFrame)
}

func (e *engine) logStatus(ctx context.Context, logger *logging.Logger) {
	stats, err := telemetry.SampleProcess(ctx)
	if err != nil {
		logger.Warn("Статистика процесса недоступна: %v", err)
	} else {
		e.tracker.ObserveProcess(stats)
	}

	usage := e.tracker.Usage()
	logger.Info("📈 чанков=%d мешей=%d предметов=%d заданий=%d грязных=%d %s | наблюдатель %v, собрано %d",
		usage.Chunks, e.pipeline.MeshCount(), usage.Entities, usage.PendingMeshes,
		e.world.DirtyCount(), stats, e.observer.Position().Floor(), e.observer.collected())

	for _, exceeded := range e.tracker.Exceeded(e.limits) {
		logger.Warn("⚠️ Превышен лимит: %s", exceeded)
	}
}

// close останавливает воркеров и сохраняет мир
func (e *engine) close() error {
	e.pipeline.Stop()

	var errs []error
	saved, err := e.streamer.SaveAll()
	if err != nil {
		errs = append(errs, err)
	}
	if err := e.store.SaveItems(e.world.Entities()); err != nil {
		errs = append(errs, err)
	}
	meta := storage.Meta{
		Seed:    e.world.Seed(),
		SavedAt: time.Now(),
		Player:  storage.PlayerRecord{Position: e.observer.Position()},
	}
	if err := e.store.SaveMeta(meta); err != nil {
		errs = append(errs, err)
	}
	if err := e.store.Close(); err != nil {
		errs = append(errs, err)
	}

	e.logger.Info("💾 Сохранено чанков: %d, предметов: %d", saved, e.world.EntityCount())
	return errors.Join(errs...)
}
