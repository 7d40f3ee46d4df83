package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Veraticus/reviewlens/internal/config"
	"github.com/Veraticus/reviewlens/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryBackend(t *testing.T) *SQLBackend {
	t.Helper()

	backend, err := NewSQLBackend(config.BackendSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, backend.Migrate(context.Background()))

	t.Cleanup(func() {
		backend.Close()
	})
	return backend
}

func TestSQLBackend_RoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := newMemoryBackend(t)

	loaded, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)

	require.NoError(t, backend.Save(ctx, roundTripCategories))
	loaded, err = backend.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, roundTripCategories, loaded)

	reordered := []model.Category{roundTripCategories[2], roundTripCategories[0]}
	require.NoError(t, backend.Save(ctx, reordered))
	loaded, err = backend.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, reordered, loaded)
}

func TestSQLBackend_MigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	backend := newMemoryBackend(t)

	require.NoError(t, backend.Migrate(ctx))

	version, err := backend.schemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestSQLBackend_UnsupportedDialect(t *testing.T) {
	_, err := NewSQLBackend("oracle", "whatever")
	assert.Error(t, err)

	_, err = NewSQLBackend(config.BackendSQLite, "  ")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name string
		cfg  config.StorageConfig
	}{
		{name: "json", cfg: config.StorageConfig{Backend: config.BackendJSON, Path: filepath.Join(dir, "c.json")}},
		{name: "yaml", cfg: config.StorageConfig{Backend: config.BackendYAML, Path: filepath.Join(dir, "c.yaml")}},
		{name: "sqlite", cfg: config.StorageConfig{Backend: config.BackendSQLite, Path: filepath.Join(dir, "db", "c.db")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, err := Open(ctx, tt.cfg)
			require.NoError(t, err)
			defer backend.Close()

			require.NoError(t, backend.Save(ctx, roundTripCategories[:2]))
			loaded, err := backend.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, roundTripCategories[:2], loaded)
		})
	}

	_, err := Open(ctx, config.StorageConfig{Backend: "redis"})
	assert.Error(t, err)
}
