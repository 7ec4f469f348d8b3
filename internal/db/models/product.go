package models

import "time"

// Product is an item offered in the shop.
type Product struct {
	// ID is the unique identifier for the product.
	ID uint64 `gorm:"primaryKey"`
	// Name is the display name.
	Name string `gorm:"size:255;not null"`
	// Price in FCFA, never negative.
	Price float64 `gorm:"not null;default:0"`
	// Quantity in stock, never negative.
	Quantity int `gorm:"not null;default:0"`
	// Description is free text.
	Description string `gorm:"type:text"`
	// Image is the main picture URL.
	Image string `gorm:"size:1024"`
	// Image2 and Image3 are optional, empty means absent.
	Image2 string `gorm:"size:1024"`
	Image3 string `gorm:"size:1024"`
	// CategoryID references Category.ID.
	CategoryID uint64 `gorm:"index;not null"`
	// Category is only filled when preloaded.
	Category  *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Product model.
func (Product) TableName() string {
	return "products"
}
