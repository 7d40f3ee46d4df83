// Package categories provides test infrastructure for keyword categories. It
// offers a fluent API for seeding a category store with known definitions.
//
// Example usage:
//
//	store := testutil.SetupTestStoreWithBuilder(t, func(b categories.Builder) categories.Builder {
//		return b.WithCategory(categories.CategoryKids).WithFixture(categories.FixtureDiet)
//	})
package categories

import (
	"context"
	"fmt"
	"testing"

	"github.com/Veraticus/reviewlens/internal/model"
	"github.com/Veraticus/reviewlens/internal/storage"
)

// Builder provides a fluent interface for constructing test categories.
type Builder interface {
	// WithCategory adds a single well-known category.
	WithCategory(name CategoryName) Builder

	// WithCategories adds several well-known categories.
	WithCategories(names ...CategoryName) Builder

	// WithKeywords adds an ad-hoc category with the given keyword string.
	WithKeywords(name, keywords string) Builder

	// WithFixture adds every category of a predefined fixture.
	WithFixture(fixture Fixture) Builder

	// Build adds the categories to store in the order they were given.
	Build(ctx context.Context, store *storage.CategoryStore) (Categories, error)

	// List returns the categories without touching a store.
	List() Categories
}

// CategoryName represents a strongly-typed category name.
type CategoryName string

// String returns the string representation of the category name.
func (c CategoryName) String() string {
	return string(c)
}

// Common category names used across tests.
const (
	CategoryKids     CategoryName = "Kids"
	CategoryPregnant CategoryName = "Pregnant"
	CategoryVegan    CategoryName = "Vegan"
	CategoryFitness  CategoryName = "Fitness"
	CategoryPets     CategoryName = "Pets"
	CategoryEmpty    CategoryName = "Empty"
	CategoryBlank    CategoryName = "Blank"
)

// keywords of the well-known categories.
var keywords = map[CategoryName]string{
	CategoryKids:     "kids,girl",
	CategoryPregnant: "pregnant,pregnancy,nursing",
	CategoryVegan:    "vegan, plant-based ,organic",
	CategoryFitness:  "gym,workout,protein",
	CategoryPets:     "dog,cat",
	CategoryEmpty:    "",
	CategoryBlank:    " , ,  ",
}

// Categories represents a collection of test categories.
type Categories []model.Category

// Find returns the category with the given name, or nil if not found.
func (c Categories) Find(name CategoryName) *model.Category {
	for i := range c {
		if c[i].Name == name.String() {
			return &c[i]
		}
	}
	return nil
}

// MustFind returns the category with the given name, or fails the test if not found.
func (c Categories) MustFind(t *testing.T, name CategoryName) model.Category {
	t.Helper()
	cat := c.Find(name)
	if cat == nil {
		t.Fatalf("category %q not found in test data", name)
	}
	return *cat
}

// Names returns all category names as a slice of strings.
func (c Categories) Names() []string {
	names := make([]string, len(c))
	for i, cat := range c {
		names[i] = cat.Name
	}
	return names
}

// categoryBuilder implements the Builder interface.
type categoryBuilder struct {
	t          *testing.T
	seen       map[string]struct{}
	categories Categories
}

// NewBuilder creates a new category builder for the given test.
func NewBuilder(t *testing.T) Builder {
	t.Helper()
	return &categoryBuilder{
		t:    t,
		seen: make(map[string]struct{}),
	}
}

func (b *categoryBuilder) WithCategory(name CategoryName) Builder {
	kw, ok := keywords[name]
	if !ok {
		b.t.Fatalf("unknown test category %q", name)
	}
	return b.WithKeywords(name.String(), kw)
}

func (b *categoryBuilder) WithCategories(names ...CategoryName) Builder {
	for _, name := range names {
		b.WithCategory(name)
	}
	return b
}

func (b *categoryBuilder) WithKeywords(name, kw string) Builder {
	if _, dup := b.seen[name]; dup {
		return b
	}
	b.seen[name] = struct{}{}
	b.categories = append(b.categories, model.Category{Name: name, Keywords: kw})
	return b
}

func (b *categoryBuilder) WithFixture(fixture Fixture) Builder {
	for _, c := range fixture.Categories() {
		b.WithKeywords(c.Name, c.Keywords)
	}
	return b
}

func (b *categoryBuilder) Build(ctx context.Context, store *storage.CategoryStore) (Categories, error) {
	b.t.Helper()

	for _, c := range b.categories {
		if err := store.Add(ctx, c.Name, c.Keywords); err != nil {
			return nil, fmt.Errorf("failed to seed category %q: %w", c.Name, err)
		}
	}
	return b.List(), nil
}

func (b *categoryBuilder) List() Categories {
	out := make(Categories, len(b.categories))
	copy(out, b.categories)
	return out
}
