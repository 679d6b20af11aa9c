package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HardwareStatus represents the stock tier of a hardware item
type HardwareStatus string

const (
	HardwareInStock    HardwareStatus = "In Stock"
	HardwareLow        HardwareStatus = "Low"
	HardwareOutOfStock HardwareStatus = "Out of Stock"
)

// HardwareItem represents a stocked hardware component (zippers,
// buttons, rivets) consumed during production
type HardwareItem struct {
	ID               string         `gorm:"primaryKey" json:"id"`
	Name             string         `gorm:"not null" json:"name"`
	Type             string         `gorm:"not null" json:"type"` // Zipper, Main Button, Rivet, Snap, Buckle
	Variant          string         `json:"variant"`
	Supplier         string         `json:"supplier"`
	CurrentStock     int            `gorm:"not null" json:"current_stock"`
	ReorderPoint     int            `gorm:"not null" json:"reorder_point"`
	CostPerUnit      float64        `json:"cost_per_unit"`
	BOMQuantityPerUnit int          `json:"bom_quantity_per_unit"`
	Location         string         `json:"location"`
	Status           HardwareStatus `gorm:"not null;default:'In Stock'" json:"status"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// TableName specifies the table name for the HardwareItem model
func (HardwareItem) TableName() string {
	return "hardware_items"
}

// BeforeCreate assigns a UUID primary key when none is set
func (h *HardwareItem) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
