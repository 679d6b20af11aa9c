package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShipmentStatus represents the carrier status of a shipment
type ShipmentStatus string

const (
	ShipmentLabelCreated   ShipmentStatus = "Label Created"
	ShipmentPickedUp       ShipmentStatus = "Picked Up"
	ShipmentInTransit      ShipmentStatus = "In Transit"
	ShipmentOutForDelivery ShipmentStatus = "Out for Delivery"
	ShipmentDelivered      ShipmentStatus = "Delivered"
)

// ShipmentStage is one tracking event in a shipment's history
type ShipmentStage struct {
	ID         string         `gorm:"primaryKey" json:"id"`
	ShipmentID string         `gorm:"not null;index" json:"shipment_id"`
	Status     ShipmentStatus `gorm:"not null" json:"status"`
	Timestamp  time.Time      `gorm:"not null" json:"timestamp"`
	Location   string         `json:"location"`
}

// TableName specifies the table name for the ShipmentStage model
func (ShipmentStage) TableName() string {
	return "shipment_stages"
}

// BeforeCreate assigns a UUID primary key when none is set
func (s *ShipmentStage) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Shipment represents an outbound shipment of a completed order
type Shipment struct {
	ID                string          `gorm:"primaryKey" json:"id"`
	OrderID           string          `gorm:"not null;index" json:"order_id"`
	CustomerID        string          `gorm:"not null;index" json:"customer_id"`
	Carrier           string          `gorm:"not null" json:"carrier"`
	TrackingNumber    string          `gorm:"not null" json:"tracking_number"`
	Status            ShipmentStatus  `gorm:"not null;default:'Label Created'" json:"status"`
	ShippedDate       time.Time       `json:"shipped_date"`
	EstimatedDelivery time.Time       `json:"estimated_delivery"`
	ActualDelivery    *time.Time      `json:"actual_delivery"`
	Weight            string          `json:"weight"`
	Cost              float64         `json:"cost"`
	Stages            []ShipmentStage `gorm:"foreignKey:ShipmentID" json:"stages"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the Shipment model
func (Shipment) TableName() string {
	return "shipments"
}

// BeforeCreate assigns a UUID primary key when none is set
func (s *Shipment) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
