package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vigil-313/citymesh/pkg/building"
	"github.com/vigil-313/citymesh/pkg/stream"
)

// Config holds the full application configuration.
type Config struct {
	Stream    StreamConfig    `yaml:"stream" mapstructure:"stream"`
	Queue     QueueConfig     `yaml:"queue" mapstructure:"queue"`
	Map       MapConfig       `yaml:"map" mapstructure:"map"`
	Buildings building.Params `yaml:"buildings" mapstructure:"buildings"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StreamConfig tunes chunk streaming.
type StreamConfig struct {
	ChunkSize       float64 `yaml:"chunk_size" mapstructure:"chunk_size"`
	LoadRadius      float64 `yaml:"load_radius" mapstructure:"load_radius"`
	UnloadRadius    float64 `yaml:"unload_radius" mapstructure:"unload_radius"`
	DetailRadius    float64 `yaml:"detail_radius" mapstructure:"detail_radius"`
	EvalIntervalMS  int     `yaml:"eval_interval_ms" mapstructure:"eval_interval_ms"`
	MaxLoadsPerEval int     `yaml:"max_loads_per_eval" mapstructure:"max_loads_per_eval"`
}

// QueueConfig tunes the frame-budgeted work queue.
type QueueConfig struct {
	MaxSize       int     `yaml:"max_size" mapstructure:"max_size"`
	FrameBudgetMS float64 `yaml:"frame_budget_ms" mapstructure:"frame_budget_ms"`
}

// MapConfig configures map-source loading.
type MapConfig struct {
	CacheDir string `yaml:"cache_dir" mapstructure:"cache_dir"`
}

// ServerConfig configures the debug HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from an optional explicit file, the working
// directory, and the environment. An empty path falls back to ./config.yaml
// when present; a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("CITYMESH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("stream.chunk_size", 64.0)
	v.SetDefault("stream.load_radius", 160.0)
	v.SetDefault("stream.unload_radius", 200.0)
	v.SetDefault("stream.detail_radius", 80.0)
	v.SetDefault("stream.eval_interval_ms", 250)
	v.SetDefault("stream.max_loads_per_eval", 4)
	v.SetDefault("queue.max_size", 1024)
	v.SetDefault("queue.frame_budget_ms", 5.0)
	v.SetDefault("map.cache_dir", ".citymesh-cache")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if path != "" || !notFound {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	return &cfg, nil
}

// BuildingParams merges the configured window and detail tables over the
// built-in defaults, so a config file may override a single class without
// restating the rest.
func (c *Config) BuildingParams() *building.Params {
	merged := building.DefaultParams()
	for class, wp := range c.Buildings.Windows {
		merged.Windows[class] = wp
	}
	for class, dp := range c.Buildings.Details {
		merged.Details[class] = dp
	}
	return merged
}

// Validate checks the configuration invariants the streaming core relies
// on. It returns a single error listing every violation.
func (c *Config) Validate() error {
	var problems []string

	if c.Stream.ChunkSize <= 0 {
		problems = append(problems, "stream.chunk_size must be > 0")
	}
	if c.Stream.LoadRadius <= 0 {
		problems = append(problems, "stream.load_radius must be > 0")
	}
	if c.Stream.UnloadRadius <= c.Stream.LoadRadius {
		problems = append(problems, "stream.unload_radius must exceed stream.load_radius")
	}
	if c.Stream.EvalIntervalMS <= 0 {
		problems = append(problems, "stream.eval_interval_ms must be > 0")
	}
	if c.Stream.MaxLoadsPerEval < 1 {
		problems = append(problems, "stream.max_loads_per_eval must be >= 1")
	}
	if c.Queue.MaxSize < 1 {
		problems = append(problems, "queue.max_size must be >= 1")
	}
	if c.Queue.FrameBudgetMS <= 0 {
		problems = append(problems, "queue.frame_budget_ms must be > 0")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, "server.port must be in 1..65535")
	}

	if len(problems) > 0 {
		return eris.Errorf("config: invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// StreamOptions converts the stream section into streaming options.
func (c *Config) StreamOptions() stream.Options {
	return stream.Options{
		ChunkSize:       c.Stream.ChunkSize,
		LoadRadius:      c.Stream.LoadRadius,
		UnloadRadius:    c.Stream.UnloadRadius,
		DetailRadius:    c.Stream.DetailRadius,
		EvalInterval:    time.Duration(c.Stream.EvalIntervalMS) * time.Millisecond,
		MaxLoadsPerEval: c.Stream.MaxLoadsPerEval,
	}
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
