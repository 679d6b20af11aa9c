package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RollStatus represents the stock tier of a fabric roll
type RollStatus string

const (
	RollActive     RollStatus = "Active"
	RollLow        RollStatus = "Low"
	RollDepleted   RollStatus = "Depleted"
	RollQuarantine RollStatus = "Quarantine" // manual quality hold, never set or cleared automatically
)

// FabricFamily represents the broad fabric line a roll belongs to
type FabricFamily string

const (
	FamilyRawDenim    FabricFamily = "Raw Denim"
	FamilyCottonChino FabricFamily = "Cotton Chino"
	FamilyPerformance FabricFamily = "Performance"
	FamilyCashiers    FabricFamily = "Cashiers Collection"
)

// DepletedThresholdYards is the yardage at or below which a roll is
// considered depleted regardless of its reorder point
const DepletedThresholdYards = 3.0

// FabricRoll represents a physical bolt of material tracked by
// remaining yardage
type FabricRoll struct {
	ID                string       `gorm:"primaryKey" json:"id"`
	MaterialName      string       `gorm:"not null" json:"material_name"`
	FabricFamily      FabricFamily `gorm:"not null" json:"fabric_family"`
	Color             string       `gorm:"not null" json:"color"`
	WeightOz          float64      `json:"weight_oz"`
	Composition       string       `json:"composition"`
	Supplier          string       `json:"supplier"`
	BatchDyeLot       string       `json:"batch_dye_lot"`
	WidthInches       float64      `json:"width_inches"`
	InitialYards      float64      `gorm:"not null" json:"initial_yards"`
	CurrentYards      float64      `gorm:"not null" json:"current_yards"`
	ReorderPointYards float64      `gorm:"not null" json:"reorder_point_yards"`
	CostPerYard       float64      `json:"cost_per_yard"`
	Location          string       `json:"location"`
	Status            RollStatus   `gorm:"not null;default:'Active'" json:"status"`
	ReceivedDate      time.Time    `json:"received_date"`
	Notes             *string      `json:"notes"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// TableName specifies the table name for the FabricRoll model
func (FabricRoll) TableName() string {
	return "fabric_rolls"
}

// BeforeCreate assigns a UUID primary key when none is set
func (r *FabricRoll) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
