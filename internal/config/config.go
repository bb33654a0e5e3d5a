// Package config defines the duralign run configuration, its defaults, and
// YAML loading with validation.
package config

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration.
type Config struct {
	// LogLevel controls verbosity.
	LogLevel LogLevel      `yaml:"log_level" validate:"oneof=debug info warn error"`
	Aligner  AlignerConfig `yaml:"aligner"`
	Dataset  DatasetConfig `yaml:"dataset"`
	Output   OutputConfig  `yaml:"output"`
	Cache    CacheConfig   `yaml:"cache"`
	Batch    BatchConfig   `yaml:"batch"`
	Metrics  MetricsConfig `yaml:"metrics"`
}

// AlignerConfig selects the shortest-path solver: "dp" or "dijkstra".
type AlignerConfig struct {
	Solver string `yaml:"solver" validate:"oneof=dp dijkstra"`
}

// DatasetConfig locates the inputs.
type DatasetConfig struct {
	// Manifest is a JSON file mapping item id to target symbol ids.
	Manifest string `yaml:"manifest" validate:"required"`
	// ScoresDir holds one <id>.npy log-probability matrix per item.
	ScoresDir string `yaml:"scores_dir" validate:"required"`
	// IDs restricts the run; empty means every manifest entry.
	IDs []string `yaml:"ids" validate:"omitempty,dive,required"`
	// MaxFrames skips longer items; 0 disables the filter.
	MaxFrames int `yaml:"max_frames" validate:"gte=0"`
}

// OutputConfig locates the outputs.
type OutputConfig struct {
	DurationsDir    string `yaml:"durations_dir" validate:"required"`
	AltDurationsDir string `yaml:"alt_durations_dir" validate:"required"`
	// Overwrite replaces existing files; otherwise finished items are skipped.
	Overwrite bool `yaml:"overwrite"`
}

// CacheConfig configures the badger result cache. With an empty Dir and
// InMemory false the cache is disabled.
type CacheConfig struct {
	Dir      string `yaml:"dir"`
	InMemory bool   `yaml:"in_memory"`
}

// Enabled reports whether a cache should be opened.
func (c CacheConfig) Enabled() bool { return c.InMemory || c.Dir != "" }

// BatchConfig sizes the worker pool.
type BatchConfig struct {
	Workers int `yaml:"workers" validate:"gte=1,lte=1024"`
}

// MetricsConfig controls the Prometheus endpoint. Empty ListenAddr disables it.
type MetricsConfig struct {
	ListenAddr string `yaml:"listen_addr" validate:"omitempty,hostname_port"`
}

// Default returns a Config with every optional field set. Required paths
// are left empty.
func Default() *Config {
	return &Config{
		LogLevel: LogInfo,
		Aligner:  AlignerConfig{Solver: "dp"},
		Batch:    BatchConfig{Workers: 4},
	}
}
