// Package config конфигурация приложения: JSON-файл с перекрытием из
// переменных окружения.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config конфигурация сервера
type Config struct {
	// Сервер
	Port        string `json:"port" env:"SIMPILOT_PORT" env-default:"8080"`
	Development bool   `json:"development" env:"SIMPILOT_DEV" env-default:"false"`

	// База данных
	DatabasePath string `json:"database_path" env:"SIMPILOT_DB_PATH" env-default:"simpilot.db"`

	// Логирование
	LogLevel string `json:"log_level" env:"SIMPILOT_LOG_LEVEL" env-default:"info"`

	// Загрузка
	UploadDir         string `json:"upload_dir" env:"SIMPILOT_UPLOAD_DIR" env-default:"uploads"`
	MaxUploadSizeMB   int64  `json:"max_upload_size_mb" env:"SIMPILOT_MAX_UPLOAD_MB" env-default:"64"`
	IngestParallelism int    `json:"ingest_parallelism" env:"SIMPILOT_INGEST_PARALLELISM" env-default:"4"`

	// Ограничение частоты запросов
	RateLimitPerSecond float64 `json:"rate_limit_per_second" env:"SIMPILOT_RATE_LIMIT" env-default:"25"`
	RateLimitBurst     int     `json:"rate_limit_burst" env:"SIMPILOT_RATE_BURST" env-default:"50"`

	// Кэш журналов изменений срезов
	DiffCacheTTL time.Duration `json:"diff_cache_ttl" env:"SIMPILOT_DIFF_CACHE_TTL" env-default:"5m"`
}

// Load читает конфигурацию. Файл необязателен: без него действуют
// значения из окружения и значения по умолчанию.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
			return &cfg, cfg.Validate()
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}
	return &cfg, cfg.Validate()
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q (want debug, info, warn or error)", c.LogLevel)
	}
	if c.MaxUploadSizeMB <= 0 {
		return fmt.Errorf("max_upload_size_mb must be positive, got %d", c.MaxUploadSizeMB)
	}
	if c.IngestParallelism <= 0 {
		return fmt.Errorf("ingest_parallelism must be positive, got %d", c.IngestParallelism)
	}
	return nil
}
