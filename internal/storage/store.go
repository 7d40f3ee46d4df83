package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Veraticus/reviewlens/internal/common"
	"github.com/Veraticus/reviewlens/internal/model"
)

// CategoryStore owns the category definitions. Every mutation is saved
// through the backend immediately; when the save fails the in-memory state
// is restored so the store never diverges from what was persisted.
type CategoryStore struct {
	backend    Backend
	categories []model.Category
	mu         sync.RWMutex
}

// NewCategoryStore loads the current mapping from backend.
func NewCategoryStore(ctx context.Context, backend Backend) (*CategoryStore, error) {
	if backend == nil {
		return nil, fmt.Errorf("%w: backend", ErrNilParameter)
	}

	s := &CategoryStore{backend: backend}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload discards in-memory state and reads the backend again.
func (s *CategoryStore) Reload(ctx context.Context) error {
	categories, err := s.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}

	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()

	slog.Debug("loaded categories", "count", len(categories))
	return nil
}

// List returns a snapshot of the categories in insertion order.
func (s *CategoryStore) List() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Len returns the number of categories.
func (s *CategoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.categories)
}

// Get returns the named category.
func (s *CategoryStore) Get(name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(name); i >= 0 {
		return s.categories[i], nil
	}
	return model.Category{}, common.NewNotFound("category", name)
}

// Add inserts a new category. It fails with a DuplicateCategoryError when the
// name is taken.
func (s *CategoryStore) Add(ctx context.Context, name, keywords string) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}

	return s.mutate(ctx, func(categories []model.Category) ([]model.Category, error) {
		if indexOf(categories, name) >= 0 {
			return nil, &common.DuplicateCategoryError{Name: name}
		}
		return append(categories, model.Category{Name: name, Keywords: keywords}), nil
	})
}

// Update replaces the keyword string of an existing category.
func (s *CategoryStore) Update(ctx context.Context, name, keywords string) error {
	name = strings.TrimSpace(name)
	return s.mutate(ctx, func(categories []model.Category) ([]model.Category, error) {
		i := indexOf(categories, name)
		if i < 0 {
			return nil, common.NewNotFound("category", name)
		}
		categories[i].Keywords = keywords
		return categories, nil
	})
}

// Delete removes a category.
func (s *CategoryStore) Delete(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	return s.mutate(ctx, func(categories []model.Category) ([]model.Category, error) {
		i := indexOf(categories, name)
		if i < 0 {
			return nil, common.NewNotFound("category", name)
		}
		return append(categories[:i], categories[i+1:]...), nil
	})
}

// ImportPreset adds the named built-in category, overwriting the keywords of
// an existing category with the same name, and saves.
func (s *CategoryStore) ImportPreset(ctx context.Context, name string) (model.Category, error) {
	preset, err := FindPreset(name)
	if err != nil {
		return model.Category{}, err
	}

	err = s.mutate(ctx, func(categories []model.Category) ([]model.Category, error) {
		if i := indexOf(categories, preset.Name); i >= 0 {
			categories[i].Keywords = preset.Keywords
			return categories, nil
		}
		return append(categories, preset), nil
	})
	if err != nil {
		return model.Category{}, err
	}

	slog.Info("imported preset category", "name", preset.Name, "keywords", preset.KeywordCount())
	return preset, nil
}

// IsImported reports whether a category with the preset's name exists.
func (s *CategoryStore) IsImported(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(name) >= 0
}

// Save writes the current mapping to the backend.
func (s *CategoryStore) Save(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.backend.Save(ctx, s.categories)
}

// mutate applies fn to a copy of the categories and persists the result. The
// store only adopts the new state once the backend accepted it.
func (s *CategoryStore) mutate(ctx context.Context, fn func([]model.Category) ([]model.Category, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.Category, len(s.categories))
	copy(next, s.categories)

	next, err := fn(next)
	if err != nil {
		return err
	}

	if err := s.backend.Save(ctx, next); err != nil {
		common.LogError(err, "failed to save categories", common.Fields{"count": len(next)})
		return fmt.Errorf("failed to save categories: %w", err)
	}

	s.categories = next
	return nil
}

func (s *CategoryStore) indexOf(name string) int {
	return indexOf(s.categories, name)
}

func indexOf(categories []model.Category, name string) int {
	for i, c := range categories {
		if c.Name == name {
			return i
		}
	}
	return -1
}
