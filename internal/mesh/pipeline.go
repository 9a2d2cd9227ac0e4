package mesh

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/annel0/voxelcore/internal/logging"
	"github.com/annel0/voxelcore/internal/telemetry"
	"github.com/annel0/voxelcore/internal/vec"
	"github.com/annel0/voxelcore/internal/world"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// tracerName: имя трейсера пайплайна в глобальном TracerProvider
const tracerName = "github.com/annel0/voxelcore/internal/mesh"

// MaxWorkers: верхняя граница размера пула по умолчанию
const MaxWorkers = 4

// Options задаёт параметры пула мешинга
type Options struct {
	Workers    int          // 0: min(NumCPU, MaxWorkers)
	MaxPending int          // 0: Workers*4
	LOD        LODPolicy    // nil: всегда полная детализация
	Tracer     trace.Tracer // nil: otel.Tracer(tracerName)
}

// job живёт от Submit до Poll; span охватывает весь путь задания
type job struct {
	key  vec.Vec3
	lod  int
	snap *world.Snapshot
	ctx  context.Context
	span trace.Span
}

// Result: меш, построенный воркером
type Result struct {
	Mesh     *Mesh
	Duration time.Duration

	span trace.Span
}

// PipelineStats содержит счётчики пайплайна
type PipelineStats struct {
	Submitted int64
	Built     int64
	Applied   int64
	Discarded int64
	Skipped   int64
}

// String форматирует статистику для логов
func (s PipelineStats) String() string {
	return fmt.Sprintf("submitted=%d built=%d applied=%d discarded=%d skipped=%d",
		s.Submitted, s.Built, s.Applied, s.Discarded, s.Skipped)
}

// Pipeline строит меши грязных чанков в пуле воркеров.
// Submit, Poll и доступ к мешам вызываются только из главной горутины,
// которая владеет миром; воркеры видят лишь неизменяемые снимки.
type Pipeline struct {
	workerCount  int
	maxPending   int
	lod          LODPolicy
	lodChanged   bool
	tracer       trace.Tracer
	jobChan      chan job
	resultChan   chan Result
	shutdownChan chan struct{}
	stopOnce     sync.Once
	wg           sync.WaitGroup

	pending map[vec.Vec3]struct{}
	meshes  map[vec.Vec3]*Mesh

	submitted atomic.Int64
	built     atomic.Int64
	applied   atomic.Int64
	discarded atomic.Int64
	skipped   atomic.Int64

	tracker *telemetry.ResourceTracker
	logger  *logging.Logger
}

// NewPipeline создаёт пул и запускает воркеров
func NewPipeline(opts Options, tracker *telemetry.ResourceTracker, logger *logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.Discard()
	}

	workerCount := opts.Workers
	if workerCount <= 0 {
		workerCount = min(runtime.NumCPU(), MaxWorkers)
	}
	maxPending := opts.MaxPending
	if maxPending <= 0 {
		maxPending = workerCount * 4
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	p := &Pipeline{
		workerCount:  workerCount,
		maxPending:   maxPending,
		lod:          opts.LOD,
		tracer:       tracer,
		jobChan:      make(chan job, maxPending),
		resultChan:   make(chan Result, maxPending),
		shutdownChan: make(chan struct{}),
		pending:      make(map[vec.Vec3]struct{}),
		meshes:       make(map[vec.Vec3]*Mesh),
		tracker:      tracker,
		logger:       logger,
	}

	for i := 0; i < workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	logger.Info("пайплайн мешинга: %d воркеров, до %d заданий", workerCount, maxPending)
	return p
}

// Workers возвращает размер пула
func (p *Pipeline) Workers() int {
	return p.workerCount
}

// SetLOD меняет политику детализации. Меши, построенные с другим шагом,
// перестраиваются при следующем Submit.
func (p *Pipeline) SetLOD(policy LODPolicy) {
	p.lod = policy
	p.lodChanged = true
}

// markStaleLOD помечает грязными чанки, чей меш не совпадает с текущей политикой
func (p *Pipeline) markStaleLOD(w *world.World) {
	if !p.lodChanged {
		return
	}
	p.lodChanged = false

	stale := 0
	for key, m := range p.meshes {
		if m.LOD != p.lodFor(key) {
			w.MarkDirty(key)
			stale++
		}
	}
	if stale > 0 {
		p.logger.Debug("смена LOD: %d мешей к перестроению", stale)
	}
}

func (p *Pipeline) lodFor(key vec.Vec3) int {
	if p.lod == nil {
		return 1
	}
	return NormalizeStep(p.lod(key))
}

// Submit отправляет воркерам снимки грязных чанков и возвращает число
// новых заданий. Чанк, меш которого уже строится, остаётся грязным и
// будет отправлен повторно после применения результата. Пустые чанки
// сразу теряют меш без задания.
func (p *Pipeline) Submit(w *world.World) int {
	p.markStaleLOD(w)
	submitted := 0

submit:
	for _, key := range w.DirtyChunks() {
		if _, inFlight := p.pending[key]; inFlight {
			continue
		}
		if len(p.pending) >= p.maxPending {
			break
		}

		snap, ok := w.Snapshot(key)
		if !ok {
			w.ClearDirty(key)
			continue
		}
		if snap.IsEmpty() {
			delete(p.meshes, key)
			w.ClearDirty(key)
			p.skipped.Add(1)
			continue
		}

		lod := p.lodFor(key)
		ctx, span := p.tracer.Start(context.Background(), "mesh.job", trace.WithAttributes(
			attribute.Int("chunk.x", key.X),
			attribute.Int("chunk.y", key.Y),
			attribute.Int("chunk.z", key.Z),
			attribute.Int("lod", lod),
		))
		j := job{key: key, lod: lod, snap: snap, ctx: ctx, span: span}
		select {
		case p.jobChan <- j:
		default:
			// Очередь заполнена: чанк остаётся грязным до следующего кадра
			span.SetAttributes(attribute.Bool("requeued", true))
			span.End()
			break submit
		}

		p.pending[key] = struct{}{}
		w.ClearDirty(key)
		submitted++
	}

	p.submitted.Add(int64(submitted))
	p.tracker.SetPendingMeshes(len(p.pending))
	if submitted > 0 {
		p.logger.Trace("отправлено %d заданий мешинга, в работе %d", submitted, len(p.pending))
	}
	return submitted
}

// Poll забирает не более limit готовых результатов (limit <= 0: все готовые)
// и возвращает применённые меши. Результаты для выгруженных чанков
// отбрасываются. Не блокируется.
func (p *Pipeline) Poll(w *world.World, limit int) []*Mesh {
	var applied []*Mesh

poll:
	for n := 0; limit <= 0 || n < limit; n++ {
		select {
		case r := <-p.resultChan:
			key := r.Mesh.Key
			delete(p.pending, key)

			if !w.HasChunk(key) {
				r.span.SetAttributes(attribute.Bool("discarded", true))
				r.span.End()
				delete(p.meshes, key)
				p.discarded.Add(1)
				p.tracker.MeshDiscarded()
				p.logger.Trace("отброшен устаревший меш %v", key)
				continue
			}

			p.meshes[key] = r.Mesh
			r.span.End()
			if r.Mesh.LOD != p.lodFor(key) {
				// Политика сменилась, пока меш строился
				w.MarkDirty(key)
			}
			applied = append(applied, r.Mesh)
		default:
			break poll
		}
	}

	p.applied.Add(int64(len(applied)))
	p.tracker.SetPendingMeshes(len(p.pending))
	return applied
}

// Mesh возвращает последний применённый меш чанка
func (p *Pipeline) Mesh(key vec.Vec3) (*Mesh, bool) {
	m, ok := p.meshes[key]
	return m, ok
}

// MeshCount возвращает количество применённых мешей
func (p *Pipeline) MeshCount() int {
	return len(p.meshes)
}

// Forget удаляет меш выгруженного чанка
func (p *Pipeline) Forget(key vec.Vec3) {
	delete(p.meshes, key)
}

// Pending возвращает количество заданий в работе
func (p *Pipeline) Pending() int {
	return len(p.pending)
}

// IsPending проверяет, строится ли меш чанка
func (p *Pipeline) IsPending(key vec.Vec3) bool {
	_, ok := p.pending[key]
	return ok
}

// Stats возвращает снимок счётчиков
func (p *Pipeline) Stats() PipelineStats {
	return PipelineStats{
		Submitted: p.submitted.Load(),
		Built:     p.built.Load(),
		Applied:   p.applied.Load(),
		Discarded: p.discarded.Load(),
		Skipped:   p.skipped.Load(),
	}
}

// Stop останавливает воркеров и ждёт их завершения. Повторный вызов безопасен.
func (p *Pipeline) Stop() {
	p.stopOnce.Do(func() {
		close(p.shutdownChan)
		p.wg.Wait()
		p.logger.Info("пайплайн мешинга остановлен: %s", p.Stats())
	})
}

func (p *Pipeline) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case j := <-p.jobChan:
			_, build := p.tracer.Start(j.ctx, "mesh.build")
			start := time.Now()
			m := Build(j.snap, j.key, j.lod)
			elapsed := time.Since(start)
			build.SetAttributes(attribute.Int("quads", m.Quads), attribute.Int("vertices", len(m.Vertices)))
			build.End()

			p.built.Add(1)
			p.tracker.ObserveMeshBuild(m.LOD, elapsed, m.Quads)
			p.logger.Trace("воркер %d: меш %v lod=%d, %d граней за %v", id, j.key, m.LOD, m.Quads, elapsed)

			select {
			case p.resultChan <- Result{Mesh: m, Duration: elapsed, span: j.span}:
			case <-p.shutdownChan:
				return
			}
		case <-p.shutdownChan:
			return
		}
	}
}
