package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/annel0/voxelcore/internal/config"
	"github.com/annel0/voxelcore/internal/logging"
	"github.com/annel0/voxelcore/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (по умолчанию $VOXEL_CONFIG)")
	walkSpeed := flag.Float64("walk", 4, "скорость наблюдателя вдоль +X, блоков/с (0: стоять на месте)")
	digEvery := flag.Duration("dig", 0, "период, с которым наблюдатель ломает блок под ногами (0: не ломать)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Printf("⚠️ %v, используется INFO", err)
	}

	logs := logging.NewManager(cfg.Logging.Dir, level)
	defer logs.CloseAll()
	logger := logs.MustGetLogger("server")

	if err := run(cfg, logs, logger, *walkSpeed, *digEvery); err != nil {
		logger.Error("❌ %v", err)
		logs.CloseAll()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logs *logging.Manager, logger *logging.Logger, walkSpeed float64, digEvery time.Duration) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.IsEnabled() {
		shutdownTracing, err := telemetry.InitTracing(ctx, cfg.Tracing.ServiceName, logger)
		if err != nil {
			logger.Warn("⚠️ Трейсинг не запущен: %v", err)
		} else {
			defer func() {
				if err := shutdownTracing(context.Background()); err != nil {
					logger.Warn("Ошибка остановки трейсинга: %v", err)
				}
			}()
		}
	}

	tracker := telemetry.NewResourceTracker(prometheus.DefaultRegisterer)

	eng, err := newEngine(cfg, logs, tracker)
	if err != nil {
		return fmt.Errorf("инициализация движка: %w", err)
	}
	eng.observer.speed = walkSpeed
	eng.digEvery = digEvery

	metricsAddr := fmt.Sprintf(":%d", cfg.Metrics.GetMetricsPort())
	metricsServer := &http.Server{Addr: metricsAddr, Handler: promhttp.Handler()}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("❌ Ошибка сервера метрик: %v", err)
		}
	}()

	logger.Info("🌍 Мир запущен: seed=%d, радиус %d/%d чанков, воркеров мешинга %d",
		eng.world.Seed(), cfg.World.ViewRadius, cfg.World.VerticalRadius, eng.pipeline.Workers())
	logger.Info("📊 Метрики Prometheus: http://localhost%s/metrics", metricsAddr)

	tickEvery := time.Duration(cfg.World.TickMillis) * time.Millisecond
	if tickEvery <= 0 {
		tickEvery = 50 * time.Millisecond
	}
	statusEvery := time.Duration(cfg.Metrics.StatusEvery) * time.Second
	if statusEvery <= 0 {
		statusEvery = 10 * time.Second
	}

	ticker := time.NewTicker(tickEvery)
	defer ticker.Stop()
	status := time.NewTicker(statusEvery)
	defer status.Stop()

	last := time.Now()
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case now := <-ticker.C:
			eng.tick(now.Sub(last).Seconds())
			last = now
		case <-status.C:
			eng.logStatus(ctx, logger)
		}
	}

	logger.Info("📡 Получен сигнал завершения, сохраняем мир...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Ошибка остановки сервера метрик: %v", err)
	}

	if err := eng.close(); err != nil {
		return err
	}
	logger.Info("👋 Сервер успешно остановлен")
	return nil
}
