package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func floatPtr(f float64) *float64 { return &f }

func TestUpsertCategory(t *testing.T) {
	s := newTestStore(t)

	first, err := s.UpsertCategory("MARBRE")
	require.NoError(t, err)
	assert.Equal(t, "MARBRE", first.Name)

	second, err := s.UpsertCategory("MARBRE")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "upsert must not duplicate categories")
}

func TestListPublishedProducts(t *testing.T) {
	s := newTestStore(t)

	cat, err := s.UpsertCategory("GRANIT")
	require.NoError(t, err)

	require.NoError(t, s.CreateProduct(&Product{Name: "Gris Anthracite", RegularPrice: floatPtr(450), CategoryID: &cat.ID, Published: true}))
	require.NoError(t, s.CreateProduct(&Product{Name: "Blanc Perle", Published: true}))
	require.NoError(t, s.CreateProduct(&Product{Name: "Draft Stone", Published: false}))

	products, err := s.ListPublishedProducts(0)
	require.NoError(t, err)
	require.Len(t, products, 2, "unpublished products must be excluded")

	byName := map[string]Product{}
	for _, p := range products {
		byName[p.Name] = p
	}

	withCat := byName["Gris Anthracite"]
	require.NotNil(t, withCat.Category)
	assert.Equal(t, "GRANIT", withCat.Category.Name)
	require.NotNil(t, withCat.RegularPrice)
	assert.Equal(t, 450.0, *withCat.RegularPrice)

	noCat := byName["Blanc Perle"]
	assert.Nil(t, noCat.Category)
	assert.Nil(t, noCat.RegularPrice)
}

func TestListPublishedProductsCap(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 25; i++ {
		require.NoError(t, s.CreateProduct(&Product{Name: "Stone", Published: true}))
	}

	products, err := s.ListPublishedProducts(20)
	require.NoError(t, err)
	assert.Len(t, products, 20)
}

func TestGetProductBySlug(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateProduct(&Product{Name: "Blanc Perle", Published: true}))
	require.NoError(t, s.CreateProduct(&Product{Name: "Hidden Stone", Published: false}))

	t.Run("matches slugified name", func(t *testing.T) {
		p, err := s.GetProductBySlug("blanc-perle")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "Blanc Perle", p.Name)
	})

	t.Run("matches lowercased name", func(t *testing.T) {
		p, err := s.GetProductBySlug("blanc perle")
		require.NoError(t, err)
		require.NotNil(t, p)
	})

	t.Run("spans unpublished products", func(t *testing.T) {
		p, err := s.GetProductBySlug("hidden-stone")
		require.NoError(t, err)
		require.NotNil(t, p)
	})

	t.Run("unknown slug", func(t *testing.T) {
		p, err := s.GetProductBySlug("no-such-stone")
		require.NoError(t, err)
		assert.Nil(t, p)
	})
}

func TestListPublishedProjects(t *testing.T) {
	s := newTestStore(t)

	cat, err := s.UpsertProjectCategory("FACADES")
	require.NoError(t, err)

	require.NoError(t, s.CreateProject(&Project{Title: "Projet SGTM", Subtitle: "Siège Social, Casablanca", Description: "Fourniture et pose", CategoryID: &cat.ID, Published: true}))
	require.NoError(t, s.CreateProject(&Project{Title: "Draft", Published: false}))

	projects, err := s.ListPublishedProjects(0)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Projet SGTM", projects[0].Title)
	assert.Equal(t, "Siège Social, Casablanca", projects[0].Subtitle)
	require.NotNil(t, projects[0].Category)
	assert.Equal(t, "FACADES", projects[0].Category.Name)
}

func TestProjectCategoriesAreSeparateFromProductCategories(t *testing.T) {
	s := newTestStore(t)

	productCat, err := s.UpsertCategory("MARBRE")
	require.NoError(t, err)
	projectCat, err := s.UpsertProjectCategory("MARBRE")
	require.NoError(t, err)

	// Same name, independent rows: deleting one side must not affect the other.
	assert.Equal(t, productCat.Name, projectCat.Name)

	require.NoError(t, s.ClearCatalog())

	again, err := s.UpsertProjectCategory("MARBRE")
	require.NoError(t, err)
	assert.Equal(t, projectCat.ID, again.ID)
}

func TestListPublishedProjectsCap(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 15; i++ {
		require.NoError(t, s.CreateProject(&Project{Title: "Projet", Published: true}))
	}

	projects, err := s.ListPublishedProjects(10)
	require.NoError(t, err)
	assert.Len(t, projects, 10)
}

func TestClearCatalog(t *testing.T) {
	s := newTestStore(t)

	cat, err := s.UpsertCategory("MARBRE")
	require.NoError(t, err)
	require.NoError(t, s.CreateProduct(&Product{Name: "Stone", CategoryID: &cat.ID, Published: true}))

	require.NoError(t, s.ClearCatalog())

	products, err := s.ListPublishedProducts(0)
	require.NoError(t, err)
	assert.Empty(t, products)

	// Fresh import starts category ids over
	fresh, err := s.UpsertCategory("MARBRE")
	require.NoError(t, err)
	assert.Equal(t, int64(1), fresh.ID)
}

func TestClearCatalogKeepsProjectCategories(t *testing.T) {
	s := newTestStore(t)

	projectCat, err := s.UpsertProjectCategory("FACADES")
	require.NoError(t, err)
	require.NoError(t, s.CreateProject(&Project{Title: "Projet SGTM", CategoryID: &projectCat.ID, Published: true}))

	productCat, err := s.UpsertCategory("TRAVERTIN")
	require.NoError(t, err)
	require.NoError(t, s.CreateProduct(&Product{Name: "Travertin Beige", CategoryID: &productCat.ID, Published: true}))

	// Re-import: wipe products and product categories, then seed new ones.
	require.NoError(t, s.ClearCatalog())
	_, err = s.UpsertCategory("MARBRE")
	require.NoError(t, err)

	projects, err := s.ListPublishedProjects(0)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.NotNil(t, projects[0].Category)
	assert.Equal(t, "FACADES", projects[0].Category.Name)
}
