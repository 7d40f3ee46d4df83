package categories_test

import (
	"context"
	"testing"

	"github.com/Veraticus/reviewlens/internal/testutil"
	"github.com/Veraticus/reviewlens/internal/testutil/categories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_WithCategory(t *testing.T) {
	store := testutil.SetupTestStoreWithBuilder(t, func(b categories.Builder) categories.Builder {
		return b.WithCategory(categories.CategoryKids)
	})

	cat, err := store.Get("Kids")
	require.NoError(t, err)
	assert.Equal(t, "kids,girl", cat.Keywords)
}

func TestBuilder_PreservesOrderAndSkipsDuplicates(t *testing.T) {
	cats := categories.NewBuilder(t).
		WithCategories(categories.CategoryPets, categories.CategoryKids, categories.CategoryPets).
		WithKeywords("Custom", "a,b").
		List()

	assert.Equal(t, []string{"Pets", "Kids", "Custom"}, cats.Names())
	assert.Equal(t, "a,b", cats.MustFind(t, "Custom").Keywords)
	assert.Nil(t, cats.Find("Missing"))
}

func TestBuilder_Build(t *testing.T) {
	store := testutil.SetupTestStore(t, nil)

	cats, err := categories.NewBuilder(t).
		WithFixture(categories.FixtureDiet).
		Build(context.Background(), store)
	require.NoError(t, err)

	assert.Equal(t, cats.Names(), []string{"Vegan", "Low Sugar", "Organic"})
	assert.Equal(t, 3, store.Len())
}

func TestAllFixtures(t *testing.T) {
	for _, f := range categories.AllFixtures() {
		assert.NotEmpty(t, f.Name())
		assert.NotEmpty(t, f.Categories())
	}
}
