package stream

import (
	"errors"
	"fmt"
	"slices"

	"github.com/annel0/voxelcore/internal/logging"
	"github.com/annel0/voxelcore/internal/storage"
	"github.com/annel0/voxelcore/internal/telemetry"
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world"
)

// ChunkStore: хранилище, из которого подгружаются и куда выгружаются чанки.
// Реализуется storage.ChunkStore.
type ChunkStore interface {
	LoadChunk(key vec.Vec3) (world.ChunkData, error)
	SaveChunk(key vec.Vec3, data world.ChunkData) error
	SaveChunks(chunks map[vec.Vec3]world.ChunkData) error
}

// MeshCache забывает меши выгруженных чанков. Реализуется mesh.Pipeline.
type MeshCache interface {
	Forget(key vec.Vec3)
}

// Options задаёт область видимости и лимиты стримера
type Options struct {
	ViewRadius      int // В чанках по горизонтали (круг)
	VerticalRadius  int // В чанках по вертикали
	GeneratePerTick int // 0: без ограничения
	Limits          telemetry.ResourceLimits
}

// Report: итог одного вызова Update
type Report struct {
	Generated       int
	Restored        int
	Evicted         int
	EntitiesTrimmed int
	Missing         int // Чанки области, отложенные до следующих вызовов
}

// Streamer держит загруженной область вокруг игрока: подгружает недостающие
// чанки от ближних к дальним, выгружает дальние и соблюдает лимиты.
// Вызывается из главной горутины, владеющей миром.
type Streamer struct {
	world   *world.World
	store   ChunkStore
	meshes  MeshCache
	tracker *telemetry.ResourceTracker
	logger  *logging.Logger
	opts    Options
}

// NewStreamer создаёт стример. store и meshes могут быть nil.
func NewStreamer(w *world.World, store ChunkStore, meshes MeshCache, opts Options,
	tracker *telemetry.ResourceTracker, logger *logging.Logger) *Streamer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Streamer{
		world:   w,
		store:   store,
		meshes:  meshes,
		tracker: tracker,
		logger:  logger,
		opts:    opts,
	}
}

// Options возвращает параметры стримера
func (s *Streamer) Options() Options {
	return s.opts
}

// inView проверяет, что чанк key лежит в области вокруг center
// с запасом margin чанков
func (s *Streamer) inView(center, key vec.Vec3, margin int) bool {
	r := float64(s.opts.ViewRadius + margin)
	dy := key.Y - center.Y
	return key.Column().DistanceTo(center.Column()) <= r &&
		dy >= -s.opts.VerticalRadius-margin && dy <= s.opts.VerticalRadius+margin
}

// byDistance сортирует ключи по удалённости от center, ближние первыми
func byDistance(keys []vec.Vec3, center vec.Vec3) {
	slices.SortFunc(keys, func(a, b vec.Vec3) int {
		da, db := a.DistanceTo(center), b.DistanceTo(center)
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return vec.Compare(a, b)
	})
}

// missing возвращает незагруженные чанки области, ближние первыми
func (s *Streamer) missing(center vec.Vec3) []vec.Vec3 {
	var keys []vec.Vec3
	r, vr := s.opts.ViewRadius, s.opts.VerticalRadius
	for dy := -vr; dy <= vr; dy++ {
		y := center.Y + dy
		if y < 0 || y >= world.ChunksHigh {
			continue
		}
		for dz := -r; dz <= r; dz++ {
			for dx := -r; dx <= r; dx++ {
				key := vec.Vec3{X: center.X + dx, Y: y, Z: center.Z + dz}
				if s.inView(center, key, 0) && !s.world.HasChunk(key) {
					keys = append(keys, key)
				}
			}
		}
	}
	byDistance(keys, center)
	return keys
}

// Update подгружает и выгружает чанки вокруг чанка center
func (s *Streamer) Update(center vec.Vec3) Report {
	var report Report

	// Сначала выгружаем ушедшие из области, чтобы освободить место под лимит
	for _, key := range s.world.ChunkKeys() {
		if !s.inView(center, key, 1) {
			s.evict(key)
			report.Evicted++
		}
	}

	missing := s.missing(center)
	for i, key := range missing {
		if s.opts.GeneratePerTick > 0 && report.Generated+report.Restored >= s.opts.GeneratePerTick {
			report.Missing = len(missing) - i
			break
		}
		if s.opts.Limits.MaxChunks > 0 && s.world.ChunkCount() >= s.opts.Limits.MaxChunks {
			report.Missing = len(missing) - i
			break
		}

		if s.restore(key) {
			report.Restored++
			continue
		}
		s.world.GenerateChunk(key)
		report.Generated++
	}

	report.Evicted += s.enforceChunkLimit(center)

	if s.opts.Limits.MaxEntities > 0 {
		report.EntitiesTrimmed = s.world.TrimEntities(s.opts.Limits.MaxEntities)
	}

	s.tracker.ChunksGenerated(report.Generated)
	s.tracker.ChunksEvicted(report.Evicted)
	s.tracker.SetLoadedChunks(s.world.ChunkCount())
	s.tracker.SetEntities(s.world.EntityCount())

	if report.Generated+report.Restored+report.Evicted > 0 {
		s.logger.Debug("стриминг вокруг %v: +%d ген, +%d загр, -%d выгр, осталось %d",
			center, report.Generated, report.Restored, report.Evicted, report.Missing)
	}
	return report
}

// restore пытается подгрузить чанк из хранилища
func (s *Streamer) restore(key vec.Vec3) bool {
	if s.store == nil {
		return false
	}

	data, err := s.store.LoadChunk(key)
	if errors.Is(err, storage.ErrNotFound) {
		return false
	}
	if err == nil {
		err = s.world.RestoreChunk(key, data)
	}
	if err != nil {
		s.logger.Error("чанк %v не загружен, генерируем заново: %v", key, err)
		return false
	}
	return true
}

// enforceChunkLimit выгружает самые дальние чанки сверх MaxChunks
func (s *Streamer) enforceChunkLimit(center vec.Vec3) int {
	limit := s.opts.Limits.MaxChunks
	if limit <= 0 || s.world.ChunkCount() <= limit {
		return 0
	}

	keys := s.world.ChunkKeys()
	byDistance(keys, center)

	evicted := 0
	for i := len(keys) - 1; i >= limit; i-- {
		s.evict(keys[i])
		evicted++
	}
	s.logger.Warn("превышен лимит чанков %d: выгружено %d", limit, evicted)
	return evicted
}

func (s *Streamer) evict(key vec.Vec3) {
	if s.store != nil {
		if data, ok := s.world.ExportChunk(key); ok {
			if err := s.store.SaveChunk(key, data); err != nil {
				s.logger.Error("не удалось сохранить чанк %v: %v", key, err)
			}
		}
	}
	s.world.UnloadChunk(key)
	if s.meshes != nil {
		s.meshes.Forget(key)
	}
}

// SaveAll сохраняет все загруженные чанки
func (s *Streamer) SaveAll() (int, error) {
	if s.store == nil {
		return 0, nil
	}

	chunks := s.world.ExportChunks()
	if err := s.store.SaveChunks(chunks); err != nil {
		return 0, fmt.Errorf("сохранение %d чанков: %w", len(chunks), err)
	}
	return len(chunks), nil
}
