package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/labrocante/brocante/internal/db/models"
)

// blockingNames is how many product names a refused delete lists.
const blockingNames = 3

// CategoryInput is the category form.
type CategoryInput struct {
	Name        string `form:"name"        validate:"required,max=50"`
	Color       string `form:"color"       validate:"omitempty,category_color"`
	Description string `form:"description" validate:"max=500"`
}

// CategoryStats is a category with the number of products using it.
type CategoryStats struct {
	ID           uint64
	Name         string
	Color        string
	Description  string
	ProductCount int64
	CreatedAt    time.Time
}

// DeleteResult tells whether DeleteCategory deleted and why not.
type DeleteResult struct {
	Success bool
	Message string
}

// ListCategoryNames returns AllCategories followed by the names A-Z.
func (r *Repository) ListCategoryNames(ctx context.Context) ([]string, error) {
	var names []string

	if err := r.conn(ctx).Model(&models.Category{}).Order("name").Pluck("name", &names).Error; err != nil {
		log.Error().Err(err).Msg("failed to list category names")

		return nil, fmt.Errorf("failed to list category names: %w", err)
	}

	return append([]string{AllCategories}, names...), nil
}

// ListCategories returns the categories A-Z.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category

	if err := r.conn(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}

// GetCategory returns one category or ErrCategoryNotFound.
func (r *Repository) GetCategory(ctx context.Context, id uint64) (*models.Category, error) {
	var category models.Category

	err := r.conn(ctx).First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get category %d: %w", id, err)
	}

	return &category, nil
}

// ListCategoriesWithStats returns the categories A-Z with their product count.
// Categories and counts are fetched separately and merged.
func (r *Repository) ListCategoriesWithStats(ctx context.Context) ([]CategoryStats, error) {
	categories, err := r.ListCategories(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list categories with stats")

		return nil, err
	}

	var counts []struct {
		CategoryID uint64
		Count      int64
	}

	if err = r.conn(ctx).Model(&models.Product{}).
		Select("category_id, count(*) as count").
		Group("category_id").
		Scan(&counts).Error; err != nil {
		log.Error().Err(err).Msg("failed to count products per category")

		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	byCategory := make(map[uint64]int64, len(counts))
	for _, c := range counts {
		byCategory[c.CategoryID] = c.Count
	}

	stats := make([]CategoryStats, 0, len(categories))
	for _, c := range categories {
		stats = append(stats, CategoryStats{
			ID:           c.ID,
			Name:         c.Name,
			Color:        c.Color,
			Description:  c.Description,
			ProductCount: byCategory[c.ID],
			CreatedAt:    c.CreatedAt,
		})
	}

	return stats, nil
}

// CreateCategory inserts a category. The name is trimmed, an empty color becomes the default.
func (r *Repository) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	category := models.Category{
		Name:        strings.TrimSpace(in.Name),
		Color:       colorOrDefault(in.Color),
		Description: strings.TrimSpace(in.Description),
	}

	if err := r.nameFree(ctx, category.Name, 0); err != nil {
		return nil, err
	}

	if err := r.conn(ctx).Create(&category).Error; err != nil {
		log.Error().Err(err).Str("name", category.Name).Msg("failed to create category")

		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &category, nil
}

// UpdateCategory replaces name, color and description of category id.
func (r *Repository) UpdateCategory(ctx context.Context, id uint64, in CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)

	if err := r.nameFree(ctx, name, id); err != nil {
		return nil, err
	}

	result := r.conn(ctx).Model(&models.Category{ID: id}).
		Select("name", "color", "description", "updated_at").
		Updates(&models.Category{
			Name:        name,
			Color:       colorOrDefault(in.Color),
			Description: strings.TrimSpace(in.Description),
		})
	if result.Error != nil {
		log.Error().Err(result.Error).Uint64("id", id).Msg("failed to update category")

		return nil, fmt.Errorf("failed to update category %d: %w", id, result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, ErrCategoryNotFound
	}

	return r.GetCategory(ctx, id)
}

// DeleteCategory deletes category id unless products use it.
// The check and the delete are not atomic.
func (r *Repository) DeleteCategory(ctx context.Context, id uint64) DeleteResult {
	var products []models.Product

	if err := r.conn(ctx).Select("id", "name").Where("category_id = ?", id).Order("id").Find(&products).Error; err != nil {
		log.Error().Err(err).Uint64("id", id).Msg("failed to check category products")

		return DeleteResult{Message: "Erreur de vérification"}
	}

	if len(products) > 0 {
		return DeleteResult{Message: blockedMessage(products)}
	}

	if err := r.conn(ctx).Delete(&models.Category{}, id).Error; err != nil {
		log.Error().Err(err).Uint64("id", id).Msg("failed to delete category")

		return DeleteResult{Message: "Erreur lors de la suppression"}
	}

	log.Info().Uint64("id", id).Msg("category deleted")

	return DeleteResult{Success: true}
}

func blockedMessage(products []models.Product) string {
	names := make([]string, 0, blockingNames)
	for i := 0; i < len(products) && i < blockingNames; i++ {
		names = append(names, products[i].Name)
	}

	msg := fmt.Sprintf("Impossible de supprimer : %d produit(s) utilisent cette catégorie (%s",
		len(products), strings.Join(names, ", "))

	if remaining := len(products) - blockingNames; remaining > 0 {
		msg += fmt.Sprintf("... et %d autres", remaining)
	}

	return msg + ")"
}

// nameFree fails with ErrCategoryExists when another category than id uses name.
func (r *Repository) nameFree(ctx context.Context, name string, id uint64) error {
	var count int64

	q := r.conn(ctx).Model(&models.Category{}).Where("name = ?", name)
	if id != 0 {
		q = q.Where("id <> ?", id)
	}

	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check category name: %w", err)
	}

	if count > 0 {
		return fmt.Errorf("%w: %q", ErrCategoryExists, name)
	}

	return nil
}

func colorOrDefault(color string) string {
	if color == "" {
		return models.DefaultCategoryColor
	}

	return color
}
