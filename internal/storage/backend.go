package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/reviewlens/internal/common"
	"github.com/Veraticus/reviewlens/internal/config"
	"github.com/Veraticus/reviewlens/internal/model"
)

// Backend loads and saves the full name to keyword-string mapping. Load on
// storage that does not exist yet returns an empty mapping, not an error.
// Category order is preserved across a round trip.
type Backend interface {
	Load(ctx context.Context) ([]model.Category, error)
	Save(ctx context.Context, categories []model.Category) error
	Close() error
}

// Open builds the backend selected by cfg. SQL backends are migrated before
// they are returned.
func Open(ctx context.Context, cfg config.StorageConfig) (Backend, error) {
	switch cfg.Backend {
	case config.BackendJSON, "":
		if err := validateString(cfg.Path, "storage.path"); err != nil {
			return nil, err
		}
		return NewJSONFile(cfg.Path), nil

	case config.BackendYAML:
		if err := validateString(cfg.Path, "storage.path"); err != nil {
			return nil, err
		}
		return NewYAMLFile(cfg.Path), nil

	case config.BackendSQLite, config.BackendMySQL, config.BackendPostgres:
		dsn := cfg.DSN
		if cfg.Backend == config.BackendSQLite && dsn == "" {
			dsn = cfg.Path
		}
		backend, err := NewSQLBackend(cfg.Backend, dsn)
		if err != nil {
			return nil, err
		}
		if err := backend.Migrate(ctx); err != nil {
			_ = backend.Close()
			return nil, err
		}
		return backend, nil

	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", common.ErrInvalidConfig, cfg.Backend)
	}
}
