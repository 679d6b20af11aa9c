package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MeasurementProfile represents one set of body measurements taken for
// a customer. A customer keeps a history of profiles; at most one is
// marked active and new orders are cut against the active profile.
type MeasurementProfile struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	CustomerID    string    `gorm:"not null;index" json:"customer_id"`
	DateTaken     time.Time `gorm:"not null" json:"date_taken"`
	Source        string    `gorm:"not null" json:"source"` // Bold Metrics AI, In-Store, Tom James Rep, Trunk Show, Self-Measured
	IsActive      bool      `gorm:"not null;default:false" json:"is_active"`
	FittedBy      *string   `json:"fitted_by"`
	Waist         float64   `json:"waist"`
	Seat          float64   `json:"seat"`
	Thigh         float64   `json:"thigh"`
	Knee          float64   `json:"knee"`
	Inseam        float64   `json:"inseam"`
	Outseam       float64   `json:"outseam"`
	RiseFront     float64   `json:"rise_front"`
	RiseBack      float64   `json:"rise_back"`
	Hip           float64   `json:"hip"`
	LegOpening    float64   `json:"leg_opening"`
	Fit           *string   `json:"fit"`
	LastMonogram  *string   `json:"last_monogram"`
	MeasurementNote *string `json:"measurement_note"`
	FitNote       *string   `json:"fit_note"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for the MeasurementProfile model
func (MeasurementProfile) TableName() string {
	return "measurement_profiles"
}

// BeforeCreate assigns a UUID primary key when none is set
func (m *MeasurementProfile) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
