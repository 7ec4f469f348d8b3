package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/labrocante/brocante/internal/db/models"
)

// ProductInput is the product form. Category is a category name.
type ProductInput struct {
	Name        string  `form:"name"        validate:"required,max=255"`
	Price       float64 `form:"price"       validate:"gte=0"`
	Quantity    int     `form:"quantity"    validate:"gte=0"`
	Description string  `form:"description" validate:"max=5000"`
	Category    string  `form:"category"    validate:"required"`
	Image       string  `form:"image"`
	Image2      string  `form:"image2"`
	Image3      string  `form:"image3"`
}

// ListProducts returns every product, newest first.
func (r *Repository) ListProducts(ctx context.Context) ([]Product, error) {
	var rows []models.Product

	if err := r.conn(ctx).Preload("Category").Order("created_at desc").Order("id desc").Find(&rows).Error; err != nil {
		log.Error().Err(err).Msg("failed to list products")

		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return toProducts(rows), nil
}

// GetProduct returns one product or ErrProductNotFound.
func (r *Repository) GetProduct(ctx context.Context, id uint64) (*Product, error) {
	var row models.Product

	err := r.conn(ctx).Preload("Category").First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}

	if err != nil {
		log.Error().Err(err).Uint64("id", id).Msg("failed to get product")

		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}

	p := toProduct(row)

	return &p, nil
}

// ListByCategory returns up to limit products of the named category, newest
// first, leaving out excludeID. An unknown name yields an empty list.
// limit <= 0 means no limit, excludeID 0 excludes nothing.
func (r *Repository) ListByCategory(ctx context.Context, name string, limit int, excludeID uint64) ([]Product, error) {
	category, err := r.categoryByName(ctx, name)
	if errors.Is(err, ErrCategoryNotFound) {
		return []Product{}, nil
	}

	if err != nil {
		return nil, err
	}

	q := r.conn(ctx).Preload("Category").Where("category_id = ?", category.ID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []models.Product

	if err = q.Order("created_at desc").Order("id desc").Find(&rows).Error; err != nil {
		log.Error().Err(err).Str("category", name).Msg("failed to list products by category")

		return nil, fmt.Errorf("failed to list products of %s: %w", name, err)
	}

	return toProducts(rows), nil
}

// CreateProduct inserts a product into the category named by in.Category.
// Nothing is inserted when the category does not exist.
func (r *Repository) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	category, err := r.categoryByName(ctx, in.Category)
	if err != nil {
		return nil, err
	}

	row := models.Product{
		Name:        strings.TrimSpace(in.Name),
		Price:       in.Price,
		Quantity:    in.Quantity,
		Description: in.Description,
		Image:       in.Image,
		Image2:      in.Image2,
		Image3:      in.Image3,
		CategoryID:  category.ID,
	}

	if err = r.conn(ctx).Create(&row).Error; err != nil {
		log.Error().Err(err).Str("name", row.Name).Msg("failed to create product")

		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	log.Info().Uint64("id", row.ID).Str("name", row.Name).Msg("product created")

	return r.GetProduct(ctx, row.ID)
}

// UpdateProduct replaces every field of product id.
func (r *Repository) UpdateProduct(ctx context.Context, id uint64, in ProductInput) (*Product, error) {
	category, err := r.categoryByName(ctx, in.Category)
	if err != nil {
		return nil, err
	}

	result := r.conn(ctx).Model(&models.Product{ID: id}).Select(
		"name", "price", "quantity", "description", "image", "image2", "image3", "category_id", "updated_at",
	).Updates(&models.Product{
		Name:        strings.TrimSpace(in.Name),
		Price:       in.Price,
		Quantity:    in.Quantity,
		Description: in.Description,
		Image:       in.Image,
		Image2:      in.Image2,
		Image3:      in.Image3,
		CategoryID:  category.ID,
	})
	if result.Error != nil {
		log.Error().Err(result.Error).Uint64("id", id).Msg("failed to update product")

		return nil, fmt.Errorf("failed to update product %d: %w", id, result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, ErrProductNotFound
	}

	return r.GetProduct(ctx, id)
}

// DeleteProduct deletes product id. Deleting a missing product is not an error.
func (r *Repository) DeleteProduct(ctx context.Context, id uint64) error {
	if err := r.conn(ctx).Delete(&models.Product{}, id).Error; err != nil {
		log.Error().Err(err).Uint64("id", id).Msg("failed to delete product")

		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}

	return nil
}

// categoryByName resolves an exact category name.
func (r *Repository) categoryByName(ctx context.Context, name string) (*models.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrCategoryNotFound)
	}

	var category models.Category

	err := r.conn(ctx).Where(&models.Category{Name: name}).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrCategoryNotFound, name)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to resolve category %q: %w", name, err)
	}

	return &category, nil
}
