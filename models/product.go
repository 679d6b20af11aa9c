package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductCategory represents the garment category of a product
type ProductCategory string

const (
	CategoryPants     ProductCategory = "Pants"
	CategoryJacket    ProductCategory = "Jacket"
	CategoryBelt      ProductCategory = "Belt"
	CategoryAccessory ProductCategory = "Accessory"
)

// Product represents a made-to-order product line
type Product struct {
	ID            string          `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"not null" json:"name"`
	Category      ProductCategory `gorm:"not null" json:"category"`
	BasePrice     float64         `gorm:"not null" json:"base_price"`
	Description   string          `json:"description"`
	FabricFamily  FabricFamily    `json:"fabric_family"`
	StandardYards float64         `json:"standard_yards"` // typical yardage consumed per unit
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// BeforeCreate assigns a UUID primary key when none is set
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
