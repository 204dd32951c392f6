// Package config содержит конфигурацию сервиса заметок.
package config

import (
	"context"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"notekeeper/pkg/logger"
)

// EnvConfigPath - переменная с путем к необязательному файлу конфигурации.
const EnvConfigPath = "NOTES_CONFIG_PATH"

// Константы для сообщений logger.
const (
	LogLoadingConfig = "loading notes service configuration"
	LogConfigLoaded  = "configuration loaded successfully"
)

// Константы для сообщений об ошибках.
const (
	ErrReadConfigFile = "failed to read configuration file"
	ErrLoadConfig     = "failed to load configuration"
)

// Config представляет полную конфигурацию сервиса.
type Config struct {
	HTTP       HTTPConfig      `yaml:"http"`
	Postgres   PostgresConfig  `yaml:"postgres"`
	Migrations MigrationConfig `yaml:"migrations"`
	Logging    LoggingConfig   `yaml:"logging"`
	Shutdown   ShutdownConfig  `yaml:"shutdown"`
	Timestamp  TimestampConfig `yaml:"timestamp"`
	Metrics    MetricsConfig   `yaml:"metrics"`
}

// Load читает файл из NOTES_CONFIG_PATH, если он задан, затем переменные окружения.
func Load(ctx context.Context) (*Config, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogLoadingConfig)

	var cfg Config
	if path := os.Getenv(EnvConfigPath); path != "" {
		// ReadConfig сам накладывает переменные окружения поверх файла
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			log.Error(ctx, ErrReadConfigFile, zap.String("path", path), zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrReadConfigFile, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Error(ctx, ErrLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrLoadConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.String("postgres_db", cfg.Postgres.Database),
		zap.String("migrations_dir", cfg.Migrations.Dir),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout),
		zap.String("timezone", cfg.Timestamp.Timezone),
		zap.Bool("metrics_enabled", cfg.Metrics.Enabled))

	return &cfg, nil
}
