package telemetry

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "voxel"

// ResourceLimits: лимиты, которые внешняя система (стример чанков) соблюдает,
// вытесняя наименее важные чанки. Нулевое значение означает «без лимита».
type ResourceLimits struct {
	MaxChunks        int
	MaxEntities      int
	MaxPendingMeshes int
}

// Usage: текущее потребление ресурсов
type Usage struct {
	Chunks        int
	Entities      int
	PendingMeshes int
}

// ResourceTracker считает загруженные чанки, сущности и задания мешинга и
// экспортирует их в Prometheus. Создаётся явно и передаётся подсистемам;
// методы нулевого *ResourceTracker ничего не делают.
type ResourceTracker struct {
	chunks   atomic.Int64
	entities atomic.Int64
	pending  atomic.Int64

	loadedChunks     prometheus.Gauge
	itemEntities     prometheus.Gauge
	pendingMeshes    prometheus.Gauge
	meshesBuilt      *prometheus.CounterVec
	meshesDiscarded  prometheus.Counter
	meshQuads        prometheus.Counter
	meshBuildSeconds prometheus.Histogram
	chunksGenerated  prometheus.Counter
	chunksEvicted    prometheus.Counter
	blockEdits       *prometheus.CounterVec
	processRSS       prometheus.Gauge
	processCPU       prometheus.Gauge
}

// NewResourceTracker создаёт трекер и регистрирует метрики в reg.
// При reg == nil метрики не регистрируются (тесты, встраивание).
func NewResourceTracker(reg prometheus.Registerer) *ResourceTracker {
	t := &ResourceTracker{
		loadedChunks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chunks_loaded",
			Help:      "Количество загруженных чанков.",
		}),
		itemEntities: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "item_entities",
			Help:      "Количество выпавших предметов в мире.",
		}),
		pendingMeshes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mesh_jobs_pending",
			Help:      "Задания мешинга, отправленные воркерам и ещё не применённые.",
		}),
		meshesBuilt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "meshes_built_total",
			Help:      "Построенные меши по уровню детализации.",
		}, []string{"lod"}),
		meshesDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "meshes_discarded_total",
			Help:      "Устаревшие меши для уже выгруженных чанков.",
		}),
		meshQuads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mesh_quads_total",
			Help:      "Суммарное число четырёхугольников в построенных мешах.",
		}),
		meshBuildSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "mesh_build_seconds",
			Help:      "Время построения меша одного чанка.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		chunksGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_generated_total",
			Help:      "Сгенерированные чанки.",
		}),
		chunksEvicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_evicted_total",
			Help:      "Чанки, выгруженные из-за расстояния или лимита.",
		}),
		blockEdits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "block_edits_total",
			Help:      "Правки блоков по типу операции.",
		}, []string{"op"}),
		processRSS: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "process_rss_bytes",
			Help:      "Резидентная память процесса.",
		}),
		processCPU: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "process_cpu_percent",
			Help:      "Загрузка CPU процессом в процентах.",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			t.loadedChunks, t.itemEntities, t.pendingMeshes,
			t.meshesBuilt, t.meshesDiscarded, t.meshQuads, t.meshBuildSeconds,
			t.chunksGenerated, t.chunksEvicted, t.blockEdits,
			t.processRSS, t.processCPU,
		)
	}
	return t
}

// SetLoadedChunks обновляет число загруженных чанков
func (t *ResourceTracker) SetLoadedChunks(n int) {
	if t == nil {
		return
	}
	t.chunks.Store(int64(n))
	t.loadedChunks.Set(float64(n))
}

// SetEntities обновляет число выпавших предметов
func (t *ResourceTracker) SetEntities(n int) {
	if t == nil {
		return
	}
	t.entities.Store(int64(n))
	t.itemEntities.Set(float64(n))
}

// SetPendingMeshes обновляет число заданий мешинга в полёте
func (t *ResourceTracker) SetPendingMeshes(n int) {
	if t == nil {
		return
	}
	t.pending.Store(int64(n))
	t.pendingMeshes.Set(float64(n))
}

// ObserveMeshBuild учитывает построенный меш
func (t *ResourceTracker) ObserveMeshBuild(lod int, d time.Duration, quads int) {
	if t == nil {
		return
	}
	t.meshesBuilt.WithLabelValues(strconv.Itoa(lod)).Inc()
	t.meshQuads.Add(float64(quads))
	t.meshBuildSeconds.Observe(d.Seconds())
}

// MeshDiscarded учитывает отброшенный устаревший меш
func (t *ResourceTracker) MeshDiscarded() {
	if t == nil {
		return
	}
	t.meshesDiscarded.Inc()
}

// ChunksGenerated учитывает сгенерированные чанки
func (t *ResourceTracker) ChunksGenerated(n int) {
	if t == nil || n <= 0 {
		return
	}
	t.chunksGenerated.Add(float64(n))
}

// ChunksEvicted учитывает выгруженные чанки
func (t *ResourceTracker) ChunksEvicted(n int) {
	if t == nil || n <= 0 {
		return
	}
	t.chunksEvicted.Add(float64(n))
}

// BlockEdit учитывает правку блока ("break" или "place")
func (t *ResourceTracker) BlockEdit(op string) {
	if t == nil {
		return
	}
	t.blockEdits.WithLabelValues(op).Inc()
}

// ObserveProcess записывает статистику процесса
func (t *ResourceTracker) ObserveProcess(stats ProcessStats) {
	if t == nil {
		return
	}
	t.processRSS.Set(float64(stats.RSSBytes))
	t.processCPU.Set(stats.CPUPercent)
}

// Usage возвращает текущее потребление
func (t *ResourceTracker) Usage() Usage {
	if t == nil {
		return Usage{}
	}
	return Usage{
		Chunks:        int(t.chunks.Load()),
		Entities:      int(t.entities.Load()),
		PendingMeshes: int(t.pending.Load()),
	}
}

// Exceeded возвращает описания превышенных лимитов (пусто, если всё в норме)
func (t *ResourceTracker) Exceeded(limits ResourceLimits) []string {
	return limits.Exceeded(t.Usage())
}

// Exceeded сравнивает потребление с лимитами
func (l ResourceLimits) Exceeded(u Usage) []string {
	var exceeded []string
	if l.MaxChunks > 0 && u.Chunks > l.MaxChunks {
		exceeded = append(exceeded, fmt.Sprintf("chunks %d > %d", u.Chunks, l.MaxChunks))
	}
	if l.MaxEntities > 0 && u.Entities > l.MaxEntities {
		exceeded = append(exceeded, fmt.Sprintf("entities %d > %d", u.Entities, l.MaxEntities))
	}
	if l.MaxPendingMeshes > 0 && u.PendingMeshes > l.MaxPendingMeshes {
		exceeded = append(exceeded, fmt.Sprintf("pending meshes %d > %d", u.PendingMeshes, l.MaxPendingMeshes))
	}
	return exceeded
}
