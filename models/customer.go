package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoyaltyTier represents a customer's loyalty standing
type LoyaltyTier string

const (
	TierNew        LoyaltyTier = "New"
	TierReturning  LoyaltyTier = "Returning"
	TierVIP        LoyaltyTier = "VIP"
	TierAmbassador LoyaltyTier = "Ambassador"
)

// Customer represents a customer of the atelier
type Customer struct {
	ID                string         `gorm:"primaryKey" json:"id"`
	FirstName         string         `gorm:"not null" json:"first_name"`
	LastName          string         `gorm:"not null" json:"last_name"`
	Nickname          *string        `json:"nickname"`
	Email             string         `gorm:"uniqueIndex;not null" json:"email"`
	Phone             string         `json:"phone"`
	ShippingStreet    string         `json:"shipping_street"`
	ShippingCity      string         `json:"shipping_city"`
	ShippingState     string         `json:"shipping_state"`
	ShippingZip       string         `json:"shipping_zip"`
	ShippingCountry   string         `json:"shipping_country"`
	Company           *string        `json:"company"`
	HowHeardAboutUs   string         `json:"how_heard_about_us"`
	PreferredContact  string         `json:"preferred_contact"` // Phone, Email, SMS, In-Person
	LoyaltyTier       LoyaltyTier    `gorm:"not null;default:'New'" json:"loyalty_tier"`
	RewardPoints      int            `json:"reward_points"`
	TotalSpent        float64        `json:"total_spent"`
	TotalOrders       int            `json:"total_orders"`
	LastOrderDate     *time.Time     `json:"last_order_date"`
	Channel           OrderChannel   `json:"channel"`
	IsWhiteGlove      bool           `json:"is_white_glove"`
	HasFitConfirmation bool          `json:"has_fit_confirmation"`
	ProfileNote       *string        `json:"profile_note"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// BeforeCreate assigns a UUID primary key when none is set
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
