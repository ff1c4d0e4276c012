// Package config собирает настройки сервера из YAML-файла, флагов и
// переменных окружения.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iudanet/deltasync/internal/batch"
	"github.com/iudanet/deltasync/internal/bandwidth"
	"github.com/iudanet/deltasync/internal/entity"
	"github.com/iudanet/deltasync/internal/fallback"
	"github.com/iudanet/deltasync/internal/quality"
	"github.com/iudanet/deltasync/internal/statesync"
	"github.com/iudanet/deltasync/internal/transport/ws"
)

// Бэкенды хранилища часов и метрик качества
const (
	BackendMemory = "memory"
	BackendBolt   = "bolt"
	BackendRedis  = "redis"
)

// EnvPrefix префикс переменных окружения
const EnvPrefix = "DELTASYNC_"

// ErrInvalidConfig returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// HTTPConfig параметры HTTP-сервера
type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StoreConfig выбор и параметры keystore
type StoreConfig struct {
	Backend       string        `yaml:"backend"`
	BoltPath      string        `yaml:"bolt_path"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
	ClockTTL      time.Duration `yaml:"clock_ttl"`
}

// EntityConfig источник сущностей и кэш снимков
type EntityConfig struct {
	SQLitePath string             `yaml:"sqlite_path"`
	Cache      entity.CacheConfig `yaml:"cache"`
}

// BandwidthConfig параметры проверки экономии трафика
type BandwidthConfig struct {
	TargetReduction float64 `yaml:"target_reduction"`
}

// AuthConfig проверка идентичности клиента
type AuthConfig struct {
	// JWTSecret пустой секрет отключает проверку
	JWTSecret string `yaml:"jwt_secret"`
}

// RateLimitConfig ограничение частоты запросов по IP
type RateLimitConfig struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

// LogConfig параметры логирования
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config полная конфигурация сервера
type Config struct {
	Log       LogConfig        `yaml:"log"`
	HTTP      HTTPConfig       `yaml:"http"`
	Store     StoreConfig      `yaml:"store"`
	Entity    EntityConfig     `yaml:"entity"`
	Auth      AuthConfig       `yaml:"auth"`
	Queue     batch.Config     `yaml:"queue"`
	Quality   quality.Config   `yaml:"quality"`
	Fallback  fallback.Config  `yaml:"fallback"`
	Bandwidth BandwidthConfig  `yaml:"bandwidth"`
	Sync      statesync.Config `yaml:"sync"`
	WS        ws.Config        `yaml:"ws"`
	RateLimit RateLimitConfig  `yaml:"ratelimit"`

	// ShowVersion выставляется только флагом -version
	ShowVersion bool `yaml:"-"`
}

// Default returns a config that runs a single node in memory
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Backend:       BackendMemory,
			BoltPath:      "deltasync.db",
			RedisAddr:     "localhost:6379",
			SweepInterval: time.Minute,
			ClockTTL:      24 * time.Hour,
		},
		Entity: EntityConfig{
			SQLitePath: "entities.db",
			Cache:      entity.DefaultCacheConfig(),
		},
		Queue:     batch.DefaultConfig(),
		Quality:   quality.DefaultConfig(),
		Fallback:  fallback.DefaultConfig(),
		Bandwidth: BandwidthConfig{TargetReduction: bandwidth.DefaultTargetReduction},
		Sync:      statesync.DefaultConfig(),
		WS:        ws.DefaultConfig(),
		RateLimit: RateLimitConfig{Requests: 600, Window: time.Minute},
		Log:       LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads a YAML file over the defaults. Missing keys keep default values.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	if err := decode(f, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// Parse builds the config from command line arguments: the file given by
// -config, then explicitly set flags, then DELTASYNC_* variables.
func Parse(args []string, lookupEnv func(string) (string, bool)) (Config, error) {
	fs := flag.NewFlagSet("deltasync-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	def := Default()
	var (
		configPath  = fs.String("config", "", "Path to YAML config file")
		addr        = fs.String("addr", def.HTTP.Addr, "HTTP listen address")
		backend     = fs.String("store", def.Store.Backend, "Clock and quality store backend: memory, bolt or redis")
		boltPath    = fs.String("bolt-path", def.Store.BoltPath, "Path to bbolt database file")
		redisAddr   = fs.String("redis-addr", def.Store.RedisAddr, "Redis address")
		sqlitePath  = fs.String("sqlite-path", def.Entity.SQLitePath, "Path to SQLite entity database")
		logLevel    = fs.String("log-level", def.Log.Level, "Log level: debug, info, warn, error")
		logFormat   = fs.String("log-format", def.Log.Format, "Log format: text or json")
		showVersion = fs.Bool("version", false, "Show version information")
	)

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("failed to parse flags: %w", err)
	}

	cfg := def
	if *configPath != "" {
		loaded, err := Load(*configPath)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	// флаги перекрывают файл, только если заданы явно
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.HTTP.Addr = *addr
		case "store":
			cfg.Store.Backend = *backend
		case "bolt-path":
			cfg.Store.BoltPath = *boltPath
		case "redis-addr":
			cfg.Store.RedisAddr = *redisAddr
		case "sqlite-path":
			cfg.Entity.SQLitePath = *sqlitePath
		case "log-level":
			cfg.Log.Level = *logLevel
		case "log-format":
			cfg.Log.Format = *logFormat
		}
	})
	cfg.ShowVersion = *showVersion

	applyEnv(&cfg, lookupEnv)
	return cfg, nil
}

// applyEnv секреты и адреса из окружения имеют наивысший приоритет
func applyEnv(cfg *Config, lookupEnv func(string) (string, bool)) {
	if lookupEnv == nil {
		return
	}
	set := func(name string, dst *string) {
		if v, ok := lookupEnv(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}

	set("HTTP_ADDR", &cfg.HTTP.Addr)
	set("STORE_BACKEND", &cfg.Store.Backend)
	set("BOLT_PATH", &cfg.Store.BoltPath)
	set("REDIS_ADDR", &cfg.Store.RedisAddr)
	set("REDIS_PASSWORD", &cfg.Store.RedisPassword)
	set("SQLITE_PATH", &cfg.Entity.SQLitePath)
	set("JWT_SECRET", &cfg.Auth.JWTSecret)
	set("LOG_LEVEL", &cfg.Log.Level)
}

// Validate checks the combined config
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory:
	case BackendBolt:
		if c.Store.BoltPath == "" {
			return fmt.Errorf("%w: bolt_path is required for bolt backend", ErrInvalidConfig)
		}
	case BackendRedis:
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("%w: redis_addr is required for redis backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store backend %q", ErrInvalidConfig, c.Store.Backend)
	}

	if c.HTTP.Addr == "" {
		return fmt.Errorf("%w: http addr is empty", ErrInvalidConfig)
	}
	if c.Entity.SQLitePath == "" {
		return fmt.Errorf("%w: sqlite_path is empty", ErrInvalidConfig)
	}
	if err := c.Quality.Validate(); err != nil {
		return fmt.Errorf("%w: quality: %v", ErrInvalidConfig, err)
	}
	if c.Sync.MaxDeltaSize < 0 || c.Sync.BatchParallelism < 0 {
		return fmt.Errorf("%w: sync sizes must not be negative", ErrInvalidConfig)
	}
	if c.Bandwidth.TargetReduction < 0 || c.Bandwidth.TargetReduction > 100 {
		return fmt.Errorf("%w: target_reduction must be within [0, 100]", ErrInvalidConfig)
	}
	if c.RateLimit.Requests < 0 {
		return fmt.Errorf("%w: ratelimit requests must not be negative", ErrInvalidConfig)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// NewLogger builds the server logger from the log section
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
