package models

import "time"

// DefaultCategoryColor is used when a category is created without a color.
const DefaultCategoryColor = "bleu"

// CategoryColors is the palette a category color is picked from.
var CategoryColors = []string{ //nolint:gochecknoglobals
	"rouge", "orange", "jaune", "vert", "bleu",
	"violet", "rose", "marron", "noir", "gris",
	"turquoise", "corail", "lavande", "menthe", "saumon",
	"ocre", "bordeaux", "kaki", "cyan", "magenta",
}

// IsCategoryColor reports whether color belongs to the palette.
func IsCategoryColor(color string) bool {
	for _, c := range CategoryColors {
		if c == color {
			return true
		}
	}

	return false
}

// Category groups products. Products reference it by CategoryID.
type Category struct {
	// ID is the unique identifier for the category.
	ID uint64 `gorm:"primaryKey"`
	// Name is unique and shown in the storefront filter.
	Name string `gorm:"size:50;uniqueIndex;not null"`
	// Color is a palette name, see CategoryColors.
	Color string `gorm:"size:20;not null;default:'bleu'"`
	// Description is optional.
	Description string `gorm:"size:500"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the database table name for the Category model.
func (Category) TableName() string {
	return "categories"
}
