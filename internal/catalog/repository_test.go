package catalog_test

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/labrocante/brocante/internal/catalog"
	"github.com/labrocante/brocante/internal/db/models"
	"github.com/labrocante/brocante/internal/objectstore"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	// every pooled connection would open its own in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Product{}), "failed to migrate test database")

	return db
}

func newRepo(t *testing.T) (*catalog.Repository, *gorm.DB, *objectstore.FS) {
	t.Helper()

	db := setupTestDB(t)
	store := objectstore.NewMemory("http://localhost:8080/storage")

	return catalog.New(db, store, "product-images"), db, store
}

func seedCategory(t *testing.T, repo *catalog.Repository, name, color string) *models.Category {
	t.Helper()

	c, err := repo.CreateCategory(context.Background(), catalog.CategoryInput{Name: name, Color: color})
	require.NoError(t, err)

	return c
}

func seedProduct(t *testing.T, repo *catalog.Repository, name, category string, price float64) *catalog.Product {
	t.Helper()

	p, err := repo.CreateProduct(context.Background(), catalog.ProductInput{
		Name:     name,
		Price:    price,
		Quantity: 1,
		Category: category,
		Image:    "http://localhost:8080/storage/product-images/products/" + name + ".jpg",
	})
	require.NoError(t, err)

	return p
}

func TestEmptyCategoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newRepo(t)

	meubles := seedCategory(t, repo, "Meubles", "bleu")
	assert.Equal(t, uint64(1), meubles.ID)

	stats, err := repo.ListCategoriesWithStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, uint64(1), stats[0].ID)
	assert.Equal(t, "Meubles", stats[0].Name)
	assert.Equal(t, "bleu", stats[0].Color)
	assert.Zero(t, stats[0].ProductCount)

	assert.Equal(t, catalog.DeleteResult{Success: true}, repo.DeleteCategory(ctx, 1))

	_, err = repo.GetCategory(ctx, 1)
	require.ErrorIs(t, err, catalog.ErrCategoryNotFound)
}

func TestCreateProductIsListedWithCategory(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newRepo(t)
	seedCategory(t, repo, "Meubles", "bleu")

	created, err := repo.CreateProduct(ctx, catalog.ProductInput{
		Name:     "Commode Louis XV",
		Price:    15000,
		Quantity: 2,
		Category: "Meubles",
	})
	require.NoError(t, err)
	assert.Equal(t, "Meubles", created.Category)
	assert.Equal(t, "bleu", created.CategoryColor)

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Commode Louis XV", products[0].Name)
	assert.Equal(t, "Meubles", products[0].Category)
	assert.Equal(t, "bleu", products[0].CategoryColor)
	assert.InDelta(t, 15000, products[0].Price, 0)
	assert.Equal(t, 2, products[0].Quantity)
	assert.False(t, products[0].CreatedAt.IsZero())
}

func TestCreateProductUnknownCategory(t *testing.T) {
	ctx := context.Background()
	repo, db, _ := newRepo(t)
	seedCategory(t, repo, "Meubles", "bleu")

	for _, name := range []string{"Nonexistent", "meubles", ""} {
		p, err := repo.CreateProduct(ctx, catalog.ProductInput{Name: "Vase", Price: 10, Category: name})
		require.ErrorIs(t, err, catalog.ErrCategoryNotFound, name)
		assert.Nil(t, p)
	}

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetProduct(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newRepo(t)
	seedCategory(t, repo, "Vaisselle", "rose")
	created := seedProduct(t, repo, "Théière", "Vaisselle", 8000)

	got, err := repo.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)

	got, err = repo.GetProduct(ctx, 999)
	require.ErrorIs(t, err, catalog.ErrProductNotFound)
	assert.Nil(t, got)
}

func TestListProductsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newRepo(t)
	seedCategory(t, repo, "Meubles", "bleu")

	for _, name := range []string{"Chaise", "Table", "Armoire"} {
		seedProduct(t, repo, name, "Meubles", 1000)
	}

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, []string{"Armoire", "Table", "Chaise"}, []string{products[0].Name, products[1].Name, products[2].Name})
}

func TestListByCategory(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newRepo(t)
	seedCategory(t, repo, "Meubles", "bleu")
	seedCategory(t, repo, "Livres", "vert")

	var ids []uint64
	for _, name := range []string{"Chaise", "Table", "Armoire", "Buffet", "Banc"} {
		ids = append(ids, seedProduct(t, repo, name, "Meubles", 1000).ID)
	}

	seedProduct(t, repo, "Roman", "Livres", 500)

	tests := []struct {
		name      string
		category  string
		limit     int
		excludeID uint64
		want      []string
	}{
		{name: "sentinel does not resolve", category: catalog.AllCategories, limit: 4, want: []string{}},
		{name: "english sentinel does not resolve", category: "All", limit: 4, want: []string{}},
		{name: "limit", category: "Meubles", limit: 4, want: []string{"Banc", "Buffet", "Armoire", "Table"}},
		{name: "exclude current product", category: "Meubles", limit: 4, excludeID: ids[4], want: []string{"Buffet", "Armoire", "Table", "Chaise"}},
		{name: "no limit", category: "Livres", want: []string{"Roman"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := repo.ListByCategory(ctx, tt.category, tt.limit, tt.excludeID)
			require.NoError(t, err)
			require.NotNil(t, products)

			names := make([]string, 0, len(products))
			for _, p := range products {
				names = append(names, p.Name)
			}

			assert.Equal(t, tt.want, names)
		})
	}
}

func TestListCategoryNames(t *testing.T) {
	repo, _, _ := newRepo(t)

	names, err := repo.ListCategoryNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Tous"}, names)

	seedCategory(t, repo, "Vaisselle", "rose")
	seedCategory(t, repo, "Luminaires", "jaune")
	seedCategory(t, repo, "Décoration", "ocre")

	names, err = repo.ListCategoryNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Tous", "Décoration", "Luminaires", "Vaisselle"}, names)
}

func TestListCategoriesWithStats(t *testing.T) {
	repo, _, _ := newRepo(t)
	seedCategory(t, repo, "Vaisselle", "rose")
	seedCategory(t, repo, "Livres", "vert")
	seedProduct(t, repo, "Assiette", "Vaisselle", 1500)
	seedProduct(t, repo, "Bol", "Vaisselle", 1000)

	stats, err := repo.ListCategoriesWithStats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "Livres", stats[0].Name)
	assert.Zero(t, stats[0].ProductCount)
	assert.Equal(t, "Vaisselle", stats[1].Name)
	assert.Equal(t, int64(2), stats[1].ProductCount)

	o := catalog.Overview(stats)
	assert.Equal(t, 2, o.TotalCategories)
	assert.Equal(t, int64(2), o.TotalProducts)
	assert.Equal(t, int64(1), o.AveragePerCategory)
}

func TestDeleteCategoryGuard(t *testing.T) {
	tests := []struct {
		name     string
		products []string
		want     string
	}{
		{
			name:     "one product",
			products: []string{"Chaise"},
			want:     "Impossible de supprimer : 1 produit(s) utilisent cette catégorie (Chaise)",
		},
		{
			name:     "three products",
			products: []string{"Chaise", "Table", "Armoire"},
			want:     "Impossible de supprimer : 3 produit(s) utilisent cette catégorie (Chaise, Table, Armoire)",
		},
		{
			name:     "ten products",
			products: []string{"Chaise", "Table", "Armoire", "Buffet", "Banc", "Lit", "Commode", "Bureau", "Tabouret", "Étagère"},
			want:     "Impossible de supprimer : 10 produit(s) utilisent cette catégorie (Chaise, Table, Armoire... et 7 autres)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo, _, _ := newRepo(t)
			c := seedCategory(t, repo, "Meubles", "bleu")

			for _, p := range tt.products {
				seedProduct(t, repo, p, "Meubles", 100)
			}

			res := repo.DeleteCategory(ctx, c.ID)
			assert.False(t, res.Success)
			assert.Equal(t, tt.want, res.Message)

			_, err := repo.GetCategory(ctx, c.ID)
			require.NoError(t, err, "category must still exist")
		})
	}
}

func TestDanglingCategory(t *testing.T) {
	ctx := context.Background()
	repo, db, _ := newRepo(t)
	seedCategory(t, repo, "Meubles", "bleu")
	p := seedProduct(t, repo, "Chaise", "Meubles", 100)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = OFF").Error)
	require.NoError(t, db.Exec("DELETE FROM categories").Error)

	got, err := repo.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, catalog.UnknownCategory, got.Category)
	assert.Equal(t, catalog.UnknownCategoryColor, got.CategoryColor)

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, catalog.UnknownCategory, products[0].Category)
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newRepo(t)
	seedCategory(t, repo, "Meubles", "bleu")
	seedCategory(t, repo, "Décoration", "ocre")
	p := seedProduct(t, repo, "Miroir", "Meubles", 100)

	updated, err := repo.UpdateProduct(ctx, p.ID, catalog.ProductInput{
		Name:     " Miroir doré ",
		Price:    0,
		Quantity: 0,
		Category: "Décoration",
		Image:    p.Image,
	})
	require.NoError(t, err)
	assert.Equal(t, "Miroir doré", updated.Name)
	assert.Zero(t, updated.Price)
	assert.Zero(t, updated.Quantity)
	assert.Equal(t, "Décoration", updated.Category)
	assert.Equal(t, "ocre", updated.CategoryColor)
	assert.Equal(t, p.Image, updated.Image)

	_, err = repo.UpdateProduct(ctx, p.ID, catalog.ProductInput{Name: "x", Category: "Nonexistent"})
	require.ErrorIs(t, err, catalog.ErrCategoryNotFound)

	_, err = repo.UpdateProduct(ctx, 999, catalog.ProductInput{Name: "x", Category: "Meubles"})
	require.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newRepo(t)
	seedCategory(t, repo, "Meubles", "bleu")
	p := seedProduct(t, repo, "Chaise", "Meubles", 100)

	require.NoError(t, repo.DeleteProduct(ctx, p.ID))
	require.NoError(t, repo.DeleteProduct(ctx, p.ID))

	_, err := repo.GetProduct(ctx, p.ID)
	require.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestCreateAndUpdateCategory(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newRepo(t)

	c, err := repo.CreateCategory(ctx, catalog.CategoryInput{Name: "  Livres  ", Description: " Romans et BD "})
	require.NoError(t, err)
	assert.Equal(t, "Livres", c.Name)
	assert.Equal(t, models.DefaultCategoryColor, c.Color)
	assert.Equal(t, "Romans et BD", c.Description)

	_, err = repo.CreateCategory(ctx, catalog.CategoryInput{Name: "Livres"})
	require.ErrorIs(t, err, catalog.ErrCategoryExists)

	other := seedCategory(t, repo, "Disques", "noir")

	updated, err := repo.UpdateCategory(ctx, c.ID, catalog.CategoryInput{Name: " Livres anciens", Color: "marron"})
	require.NoError(t, err)
	assert.Equal(t, "Livres anciens", updated.Name)
	assert.Equal(t, "marron", updated.Color)
	assert.Empty(t, updated.Description)

	_, err = repo.UpdateCategory(ctx, other.ID, catalog.CategoryInput{Name: "Livres anciens"})
	require.ErrorIs(t, err, catalog.ErrCategoryExists)

	_, err = repo.UpdateCategory(ctx, c.ID, catalog.CategoryInput{Name: "Livres anciens", Color: "vert"})
	require.NoError(t, err, "keeping its own name is allowed")

	_, err = repo.UpdateCategory(ctx, 999, catalog.CategoryInput{Name: "Jouets"})
	require.ErrorIs(t, err, catalog.ErrCategoryNotFound)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newRepo(t)
	seedCategory(t, repo, "Meubles", "bleu")
	seedCategory(t, repo, "Livres", "vert")

	for i, name := range []string{"A", "B", "C", "D", "E", "F"} {
		_, err := repo.CreateProduct(ctx, catalog.ProductInput{Name: name, Price: 1000, Quantity: i, Category: "Meubles"})
		require.NoError(t, err)
	}

	s, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, s.TotalProducts)
	assert.Equal(t, 15, s.TotalStock)
	assert.InDelta(t, 15000, s.TotalValue, 0)
	assert.Equal(t, 2, s.TotalCategories)
	require.Len(t, s.Recent, 5)
	assert.Equal(t, "F", s.Recent[0].Name)
}
