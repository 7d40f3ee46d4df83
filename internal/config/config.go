// Package config provides configuration loading for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/reviewlens/internal/common"
	"github.com/spf13/viper"
)

// Storage backends understood by the category store.
const (
	BackendJSON     = "json"
	BackendYAML     = "yaml"
	BackendSQLite   = "sqlite"
	BackendMySQL    = "mysql"
	BackendPostgres = "postgres"
)

// Config is the full application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// StorageConfig selects where category definitions are persisted.
type StorageConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	Path    string `mapstructure:"path" yaml:"path"`
	DSN     string `mapstructure:"dsn" yaml:"dsn"`
}

// ServerConfig configures the HTTP dashboard API.
type ServerConfig struct {
	Addr        string        `mapstructure:"addr" yaml:"addr"`
	TableTTL    time.Duration `mapstructure:"table_ttl" yaml:"table_ttl"`
	MaxUploadMB int64         `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
	RateLimit   float64       `mapstructure:"rate_limit" yaml:"rate_limit"`
	Burst       int           `mapstructure:"burst" yaml:"burst"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("storage.backend", BackendJSON)
	v.SetDefault("storage.path", "$HOME/.local/share/reviewlens/categories.json")
	v.SetDefault("storage.dsn", "")

	v.SetDefault("server.addr", ":8501")
	v.SetDefault("server.table_ttl", time.Hour)
	v.SetDefault("server.max_upload_mb", 32)
	v.SetDefault("server.rate_limit", 20.0)
	v.SetDefault("server.burst", 40)
}

// Load unmarshals v into a Config, expands paths and validates the result.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}

	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	cfg.Storage.Path = ExpandPath(cfg.Storage.Path)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendJSON, BackendYAML, BackendSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("%w: storage.path is required for the %s backend", common.ErrMissingConfig, c.Storage.Backend)
		}
	case BackendMySQL, BackendPostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("%w: storage.dsn is required for the %s backend", common.ErrMissingConfig, c.Storage.Backend)
		}
	default:
		return fmt.Errorf("%w: unknown storage backend %q", common.ErrInvalidConfig, c.Storage.Backend)
	}

	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("%w: server.max_upload_mb must be positive", common.ErrInvalidConfig)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("%w: server.rate_limit cannot be negative", common.ErrInvalidConfig)
	}
	if c.Server.TableTTL <= 0 {
		return fmt.Errorf("%w: server.table_ttl must be positive", common.ErrInvalidConfig)
	}

	return nil
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}
