package models

import (
	"gorm.io/gorm"
)

// Product is a sellable item in a storefront's catalog.
type Product struct {
	gorm.Model
	Name         string           `gorm:"not null" json:"name"`
	Description  string           `json:"description"`
	Images       []ProductImage   `json:"images,omitempty" gorm:"foreignKey:ProductID"`
	Price        float64          `gorm:"not null;check:price >= 0" json:"price"`
	Stock        int              `gorm:"not null;check:stock >= 0" json:"stock"`
	Featured     bool             `json:"featured" gorm:"default:false"`
	CategoryID   uint             `gorm:"not null" json:"category_id"`
	Category     Category         `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Variants     []ProductVariant `json:"variants,omitempty" gorm:"foreignKey:ProductID"`
	StorefrontID uint             `gorm:"not null" json:"storefront_id"`
	UserID       uint             `gorm:"not null" json:"user_id"`
}

// ProductVariant is one option of a product (e.g. size or color) with its
// own price and stock.
type ProductVariant struct {
	gorm.Model
	ProductID uint    `gorm:"not null" json:"product_id"`
	Name      string  `gorm:"not null" json:"name"`
	Value     string  `gorm:"not null" json:"value"`
	Stock     int     `gorm:"not null;check:stock >= 0" json:"stock"`
	Price     float64 `gorm:"not null;check:price >= 0" json:"price"`
}

// ProductImage stores an image URL for a product.
type ProductImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"not null" json:"product_id"`
	URL       string `gorm:"not null" json:"url"`
}
