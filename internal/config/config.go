package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config: корневая структура конфигурации движка
type Config struct {
	World   WorldConfig   `yaml:"world"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Limits  LimitsConfig  `yaml:"limits"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

type WorldConfig struct {
	Seed            uint32 `yaml:"seed"`
	ViewRadius      int    `yaml:"view_radius"`     // В чанках по горизонтали
	VerticalRadius  int    `yaml:"vertical_radius"` // В чанках по вертикали
	GeneratePerTick int    `yaml:"generate_per_tick"`
	TickMillis      int    `yaml:"tick_ms"`
}

type MeshConfig struct {
	Workers       int       `yaml:"workers"`
	BatchPerFrame int       `yaml:"batch_per_frame"`
	LODDistances  []float64 `yaml:"lod_distances"`
}

type LimitsConfig struct {
	MaxChunks        int `yaml:"max_chunks"`
	MaxEntities      int `yaml:"max_entities"`
	MaxPendingMeshes int `yaml:"max_pending_meshes"`
}

type StorageConfig struct {
	DataDir string `yaml:"data_dir"`
}

type LoggingConfig struct {
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
}

type MetricsConfig struct {
	Port        int `yaml:"port"`
	StatusEvery int `yaml:"status_every_seconds"`
}

type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		World: WorldConfig{
			ViewRadius:      6,
			VerticalRadius:  4,
			GeneratePerTick: 16,
			TickMillis:      50,
		},
		Mesh: MeshConfig{
			BatchPerFrame: 8,
			LODDistances:  []float64{4, 8, 12},
		},
		Limits: LimitsConfig{
			MaxChunks:        4096,
			MaxEntities:      512,
			MaxPendingMeshes: 64,
		},
		Storage: StorageConfig{},
		Logging: LoggingConfig{Dir: "logs", Level: "INFO"},
		Metrics: MetricsConfig{StatusEvery: 10},
		Tracing: TracingConfig{ServiceName: "voxeld"},
	}
}

// GetSeed возвращает сид мира: config -> env VOXEL_SEED -> 0
func (w *WorldConfig) GetSeed() uint32 {
	if w.Seed != 0 {
		return w.Seed
	}
	if envVal := os.Getenv("VOXEL_SEED"); envVal != "" {
		if seed, err := strconv.ParseUint(envVal, 10, 32); err == nil {
			return uint32(seed)
		}
	}
	return 0
}

// GetWorkers возвращает размер пула мешинга
func (m *MeshConfig) GetWorkers() int {
	if m.Workers > 0 {
		return m.Workers
	}
	return min(runtime.NumCPU(), 4)
}

// GetMetricsPort возвращает порт Prometheus метрик с поддержкой fallback значений
func (m *MetricsConfig) GetMetricsPort() int {
	return getPortWithEnvFallback(m.Port, "VOXEL_METRICS_PORT", 2112)
}

// GetDataDir возвращает каталог данных: config -> env VOXEL_DATA_DIR -> "data"
func (s *StorageConfig) GetDataDir() string {
	if s.DataDir != "" {
		return s.DataDir
	}
	if envVal := os.Getenv("VOXEL_DATA_DIR"); envVal != "" {
		return envVal
	}
	return "data"
}

// IsEnabled: трейсинг включается конфигом или env VOXEL_TRACING=true
func (t *TracingConfig) IsEnabled() bool {
	if t.Enabled {
		return true
	}
	enabled, err := strconv.ParseBool(os.Getenv("VOXEL_TRACING"))
	return err == nil && enabled
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	// Если порт задан в конфиге и больше 0, используем его
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Validate проверяет значения, которые нельзя исправить молча
func (c *Config) Validate() error {
	if c.World.ViewRadius < 0 || c.World.VerticalRadius < 0 {
		return fmt.Errorf("радиус видимости не может быть отрицательным: %d/%d",
			c.World.ViewRadius, c.World.VerticalRadius)
	}
	if c.Mesh.Workers < 0 {
		return fmt.Errorf("число воркеров не может быть отрицательным: %d", c.Mesh.Workers)
	}
	for i := 1; i < len(c.Mesh.LODDistances); i++ {
		if c.Mesh.LODDistances[i] <= c.Mesh.LODDistances[i-1] {
			return fmt.Errorf("пороги LOD должны возрастать: %v", c.Mesh.LODDistances)
		}
	}
	return nil
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", берётся ENV VOXEL_CONFIG; если и он пуст, возвращается Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("VOXEL_CONFIG")
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения конфигурации %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
