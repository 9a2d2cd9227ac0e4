package telemetry

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// ProcessStats: снимок потребления ресурсов процессом
type ProcessStats struct {
	RSSBytes   uint64
	CPUPercent float64
	Goroutines int
}

// SampleProcess снимает RSS и загрузку CPU текущего процесса
func SampleProcess(ctx context.Context) (ProcessStats, error) {
	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		return ProcessStats{}, fmt.Errorf("процесс %d: %w", os.Getpid(), err)
	}

	mem, err := proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return ProcessStats{}, fmt.Errorf("память процесса: %w", err)
	}

	cpuPercent, err := proc.CPUPercentWithContext(ctx)
	if err != nil {
		// Если не удалось получить метрику процесса, берём системную
		percents, sysErr := cpu.PercentWithContext(ctx, 100*time.Millisecond, false)
		if sysErr != nil || len(percents) == 0 {
			return ProcessStats{}, fmt.Errorf("CPU процесса: %w", err)
		}
		cpuPercent = percents[0]
	}

	return ProcessStats{
		RSSBytes:   mem.RSS,
		CPUPercent: cpuPercent,
		Goroutines: runtime.NumGoroutine(),
	}, nil
}

// String форматирует статистику для логов
func (s ProcessStats) String() string {
	return fmt.Sprintf("rss=%.1fMB cpu=%.1f%% goroutines=%d",
		float64(s.RSSBytes)/1024/1024, s.CPUPercent, s.Goroutines)
}
