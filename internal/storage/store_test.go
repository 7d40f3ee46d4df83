package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Veraticus/reviewlens/internal/common"
	"github.com/Veraticus/reviewlens/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyBackend keeps data in memory and fails saves on demand.
type flakyBackend struct {
	saveErr error
	saved   []model.Category
	saves   int
}

func (f *flakyBackend) Load(context.Context) ([]model.Category, error) {
	out := make([]model.Category, len(f.saved))
	copy(out, f.saved)
	return out, nil
}

func (f *flakyBackend) Save(_ context.Context, categories []model.Category) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.saved = append([]model.Category(nil), categories...)
	return nil
}

func (f *flakyBackend) Close() error { return nil }

func newTestStore(t *testing.T) (*CategoryStore, *flakyBackend) {
	t.Helper()
	backend := &flakyBackend{}
	store, err := NewCategoryStore(context.Background(), backend)
	require.NoError(t, err)
	return store, backend
}

func TestCategoryStore_AddUpdateDelete(t *testing.T) {
	ctx := context.Background()
	store, backend := newTestStore(t)

	require.NoError(t, store.Add(ctx, "Kids", "kids,girl"))
	require.NoError(t, store.Add(ctx, " Vegan ", ""))
	assert.Equal(t, []model.Category{{Name: "Kids", Keywords: "kids,girl"}, {Name: "Vegan", Keywords: ""}}, store.List())
	assert.Equal(t, store.List(), backend.saved)

	require.NoError(t, store.Update(ctx, "Vegan", "vegan,plant-based"))
	got, err := store.Get("Vegan")
	require.NoError(t, err)
	assert.Equal(t, 2, got.KeywordCount())

	require.NoError(t, store.Delete(ctx, "Kids"))
	assert.Equal(t, []model.Category{{Name: "Vegan", Keywords: "vegan,plant-based"}}, backend.saved)
	assert.Equal(t, 1, store.Len())
}

func TestCategoryStore_Errors(t *testing.T) {
	ctx := context.Background()
	store, backend := newTestStore(t)
	require.NoError(t, store.Add(ctx, "Kids", "kids"))
	saves := backend.saves

	err := store.Add(ctx, "Kids", "other")
	var dup *common.DuplicateCategoryError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "Kids", dup.Name)
	assert.True(t, errors.Is(err, common.ErrDuplicateEntry))

	assert.True(t, errors.Is(store.Update(ctx, "Nope", "x"), common.ErrNotFound))
	assert.True(t, errors.Is(store.Delete(ctx, "Nope"), common.ErrNotFound))
	assert.True(t, errors.Is(store.Add(ctx, "   ", "x"), common.ErrInvalidCategory))

	_, err = store.Get("Nope")
	assert.True(t, errors.Is(err, common.ErrNotFound))

	assert.Equal(t, saves, backend.saves, "failed operations never save")
	assert.Equal(t, []model.Category{{Name: "Kids", Keywords: "kids"}}, store.List())
}

func TestCategoryStore_RollbackOnSaveFailure(t *testing.T) {
	ctx := context.Background()
	store, backend := newTestStore(t)
	require.NoError(t, store.Add(ctx, "Kids", "kids"))

	backend.saveErr = errors.New("disk full")

	assert.Error(t, store.Add(ctx, "Vegan", "vegan"))
	assert.Error(t, store.Update(ctx, "Kids", "changed"))
	assert.Error(t, store.Delete(ctx, "Kids"))
	_, err := store.ImportPreset(ctx, "健身运动人群")
	assert.Error(t, err)

	assert.Equal(t, []model.Category{{Name: "Kids", Keywords: "kids"}}, store.List())
}

func TestCategoryStore_ImportPreset(t *testing.T) {
	ctx := context.Background()
	store, backend := newTestStore(t)

	require.NoError(t, store.Add(ctx, "儿童或青少年", "old"))
	assert.True(t, store.IsImported("儿童或青少年"))
	assert.False(t, store.IsImported("健身运动人群"))

	preset, err := store.ImportPreset(ctx, "儿童或青少年")
	require.NoError(t, err)
	assert.Equal(t, 14, preset.KeywordCount())

	got, err := store.Get("儿童或青少年")
	require.NoError(t, err)
	assert.Equal(t, preset.Keywords, got.Keywords, "import overwrites existing keywords")

	_, err = store.ImportPreset(ctx, "健身运动人群")
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, store.List(), backend.saved)

	_, err = store.ImportPreset(ctx, "Unknown")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestCategoryStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "categories.json")

	store, err := NewCategoryStore(ctx, NewJSONFile(path))
	require.NoError(t, err)
	require.NoError(t, store.Add(ctx, "孕妇", "pregnant, 孕期"))
	require.NoError(t, store.Add(ctx, "Empty", ""))

	reopened, err := NewCategoryStore(ctx, NewJSONFile(path))
	require.NoError(t, err)
	assert.Equal(t, store.List(), reopened.List())
}

func TestPresets(t *testing.T) {
	all := Presets()
	require.Len(t, all, 4)
	assert.Equal(t, "儿童或青少年", all[0].Name)

	all[0].Name = "mutated"
	assert.Equal(t, "儿童或青少年", Presets()[0].Name)

	for _, p := range all {
		assert.NotZero(t, p.KeywordCount())
	}
}

func TestPresetPreview(t *testing.T) {
	assert.Equal(t, "a, b", PresetPreview(model.Category{Keywords: "a, b"}))
	assert.Equal(t, "a, b, c, d, e", PresetPreview(model.Category{Keywords: "a,b,c,d,e"}))
	assert.Equal(t, "a, b, c, d, e... (6 keywords)", PresetPreview(model.Category{Keywords: "a,b,c,d,e,f"}))

	kids, err := FindPreset("儿童或青少年")
	require.NoError(t, err)
	assert.Equal(t, "kids, girl, girls, boy, boys... (14 keywords)", PresetPreview(kids))
}
