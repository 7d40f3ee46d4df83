// Package testutil provides test helpers: in-memory category stores and
// fluent builders for review tables.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/reviewlens/internal/config"
	"github.com/Veraticus/reviewlens/internal/storage"
	"github.com/Veraticus/reviewlens/internal/testutil/categories"
)

// SetupTestStore creates a category store on an in-memory SQLite database,
// seeded with cats. The database is closed when the test ends.
func SetupTestStore(t *testing.T, cats categories.Categories) *storage.CategoryStore {
	t.Helper()

	backend, err := storage.NewSQLBackend(config.BackendSQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := backend.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		backend.Close()
	})

	store, err := storage.NewCategoryStore(ctx, backend)
	if err != nil {
		t.Fatalf("failed to create category store: %v", err)
	}

	for _, cat := range cats {
		if err := store.Add(ctx, cat.Name, cat.Keywords); err != nil {
			t.Fatalf("failed to seed category %q: %v", cat.Name, err)
		}
	}

	return store
}

// SetupTestStoreWithBuilder creates a test store using a category builder.
//
// Example:
//
//	store := testutil.SetupTestStoreWithBuilder(t, func(b categories.Builder) categories.Builder {
//		return b.WithCategories(categories.CategoryKids, categories.CategoryPets)
//	})
func SetupTestStoreWithBuilder(t *testing.T, configure func(categories.Builder) categories.Builder) *storage.CategoryStore {
	t.Helper()

	builder := categories.NewBuilder(t)
	if configure != nil {
		builder = configure(builder)
	}
	return SetupTestStore(t, builder.List())
}
