package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MonthlyMetrics is one row of the pre-aggregated monthly reporting
// series that feeds the dashboard charts
type MonthlyMetrics struct {
	ID                  string    `gorm:"primaryKey" json:"id"`
	Month               string    `gorm:"uniqueIndex;not null" json:"month"` // YYYY-MM
	Revenue             float64   `json:"revenue"`
	OrderCount          int       `json:"order_count"`
	NewCustomers        int       `json:"new_customers"`
	DTCWebOrders        int       `json:"dtc_web_orders"`
	DTCStoreOrders      int       `json:"dtc_store_orders"`
	B2BOrders           int       `json:"b2b_orders"`
	TrunkShowOrders     int       `json:"trunk_show_orders"`
	AverageLeadTimeDays float64   `json:"average_lead_time_days"`
	OnTimeDeliveryRate  float64   `json:"on_time_delivery_rate"`
	FabricYardsConsumed float64   `json:"fabric_yards_consumed"`
	FabricYardsReceived float64   `json:"fabric_yards_received"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// TableName specifies the table name for the MonthlyMetrics model
func (MonthlyMetrics) TableName() string {
	return "monthly_metrics"
}

// BeforeCreate assigns a UUID primary key when none is set
func (m *MonthlyMetrics) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
