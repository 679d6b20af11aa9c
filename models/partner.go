package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Partner represents a B2B partner account (clothiers, corporate
// programs, retailers) placing orders on behalf of their clients
type Partner struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Type         string    `gorm:"not null" json:"type"` // Clothier, Corporate, Retailer
	ContactEmail string    `json:"contact_email"`
	ContactPhone string    `json:"contact_phone"`
	TotalOrders  int       `json:"total_orders"`  // recomputed from orders, not incrementally maintained
	TotalRevenue float64   `json:"total_revenue"` // recomputed from orders, not incrementally maintained
	ActiveOrders int       `json:"active_orders"` // recomputed from orders, not incrementally maintained
	AccountSince time.Time `json:"account_since"`
	PaymentTerms string    `json:"payment_terms"`
	Notes        *string   `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Partner model
func (Partner) TableName() string {
	return "partners"
}

// BeforeCreate assigns a UUID primary key when none is set
func (p *Partner) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PartnerRep represents an individual representative at a partner
type PartnerRep struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	PartnerID    string    `gorm:"not null;index" json:"partner_id"`
	FirstName    string    `gorm:"not null" json:"first_name"`
	LastName     string    `gorm:"not null" json:"last_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Territory    string    `json:"territory"`
	TotalOrders  int       `json:"total_orders"`
	TotalRevenue float64   `json:"total_revenue"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the PartnerRep model
func (PartnerRep) TableName() string {
	return "partner_reps"
}

// BeforeCreate assigns a UUID primary key when none is set
func (r *PartnerRep) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
