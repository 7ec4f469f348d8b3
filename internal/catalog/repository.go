// Package catalog reads and writes products and categories.
//
// Products are stored with a category id. Every read returns them with the
// category name and color inlined, see Product.
package catalog

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/labrocante/brocante/internal/db/models"
	"github.com/labrocante/brocante/internal/objectstore"
)

const (
	// AllCategories is the sentinel listed before the category names.
	AllCategories = "Tous"

	// UnknownCategory replaces the category of a product whose category row is gone.
	UnknownCategory = "Catégorie inconnue"
	// UnknownCategoryColor is the color shown for UnknownCategory.
	UnknownCategoryColor = "gris"
)

// Product is the denormalized view of a product row.
type Product struct {
	ID            uint64
	Name          string
	Price         float64
	Quantity      int
	Description   string
	Image         string
	Image2        string
	Image3        string
	CategoryID    uint64
	Category      string
	CategoryColor string
	CreatedAt     time.Time
}

// Images returns the non empty image URLs in display order.
func (p Product) Images() []string {
	images := make([]string, 0, 3) //nolint:mnd

	for _, img := range []string{p.Image, p.Image2, p.Image3} {
		if img != "" {
			images = append(images, img)
		}
	}

	return images
}

// Repository is the catalog backed by the shop database and object store.
type Repository struct {
	db            *gorm.DB
	store         objectstore.Store
	productBucket string
	maxImageSize  int64
}

// New returns a repository. store may be nil when no images are handled.
func New(db *gorm.DB, store objectstore.Store, productBucket string) *Repository {
	return &Repository{
		db:            db,
		store:         store,
		productBucket: productBucket,
		maxImageSize:  objectstore.DefaultMaxImageSize,
	}
}

// SetMaxImageSize changes the upload limit of UploadProductImage.
func (r *Repository) SetMaxImageSize(n int64) {
	r.maxImageSize = n
}

func (r *Repository) conn(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func toProduct(row models.Product) Product {
	p := Product{
		ID:            row.ID,
		Name:          row.Name,
		Price:         row.Price,
		Quantity:      row.Quantity,
		Description:   row.Description,
		Image:         row.Image,
		Image2:        row.Image2,
		Image3:        row.Image3,
		CategoryID:    row.CategoryID,
		Category:      UnknownCategory,
		CategoryColor: UnknownCategoryColor,
		CreatedAt:     row.CreatedAt,
	}

	if row.Category != nil {
		p.Category = row.Category.Name
		p.CategoryColor = row.Category.Color
	}

	return p
}

func toProducts(rows []models.Product) []Product {
	out := make([]Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, toProduct(row))
	}

	return out
}
