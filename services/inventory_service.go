package services

import (
	"errors"
	"math"
	"sort"

	"github.com/calloway-denim/atelier-ops-api/config"
	"github.com/calloway-denim/atelier-ops-api/models"
	"gorm.io/gorm"
)

// InventoryAlert is one row of the merged low-stock feed covering both
// fabric rolls and hardware items
type InventoryAlert struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"` // "fabric" or "hardware"
	CurrentLevel float64 `json:"current_level"`
	ReorderPoint float64 `json:"reorder_point"`
	Unit         string  `json:"unit"`
	Severity     string  `json:"severity"` // "critical" or "warning"
}

// InventoryService handles fabric roll and hardware stock operations
type InventoryService interface {
	// GetFabricRoll loads a single roll by id
	GetFabricRoll(rollID string) (*models.FabricRoll, error)

	// DeductYardage removes yardage from a roll, all-or-nothing, and
	// recomputes its stock tier
	DeductYardage(rollID string, yards float64) (*models.FabricRoll, error)

	// LowStockRolls returns rolls flagged Low or Depleted
	LowStockRolls() ([]models.FabricRoll, error)

	// LowStockHardware returns hardware flagged Low or Out of Stock
	LowStockHardware() ([]models.HardwareItem, error)

	// InventoryAlerts returns the merged alert feed, critical first
	InventoryAlerts() ([]InventoryAlert, error)
}

type inventoryService struct{}

var inventoryServiceInstance InventoryService

// InitInventoryService initializes the inventory service
func InitInventoryService() InventoryService {
	inventoryServiceInstance = &inventoryService{}
	return inventoryServiceInstance
}

// GetInventoryService returns the initialized inventory service instance
func GetInventoryService() InventoryService {
	return inventoryServiceInstance
}

// SetInventoryService sets the inventory service instance (primarily for testing)
func SetInventoryService(service InventoryService) {
	inventoryServiceInstance = service
}

// GetFabricRoll loads a single roll by id
func (s *inventoryService) GetFabricRoll(rollID string) (*models.FabricRoll, error) {
	db := config.GetDB()
	var roll models.FabricRoll
	if err := db.First(&roll, "id = ?", rollID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &roll, nil
}

// DeductYardage removes yardage from a roll. Requests exceeding the
// remaining yardage fail with ErrInsufficientStock and mutate nothing.
func (s *inventoryService) DeductYardage(rollID string, yards float64) (*models.FabricRoll, error) {
	db := config.GetDB()

	var updated *models.FabricRoll
	err := db.Transaction(func(tx *gorm.DB) error {
		roll, err := deductYardageTx(tx, rollID, yards)
		if err != nil {
			return err
		}
		updated = roll
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// deductYardageTx applies a deduction inside an existing transaction.
// Shared with the pipeline service for the Cutting-stage coupling.
func deductYardageTx(tx *gorm.DB, rollID string, yards float64) (*models.FabricRoll, error) {
	var roll models.FabricRoll
	if err := tx.First(&roll, "id = ?", rollID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if yards > roll.CurrentYards {
		return nil, ErrInsufficientStock
	}

	roll.CurrentYards = roundTenth(roll.CurrentYards - yards)

	// Quarantine is a manual quality hold; deduction must never clear it
	if roll.Status != models.RollQuarantine {
		roll.Status = rollStatusFor(roll.CurrentYards, roll.ReorderPointYards)
	}

	err := tx.Model(&models.FabricRoll{}).Where("id = ?", roll.ID).Updates(map[string]interface{}{
		"current_yards": roll.CurrentYards,
		"status":        roll.Status,
	}).Error
	if err != nil {
		return nil, err
	}
	return &roll, nil
}

// rollStatusFor derives the stock tier for a non-quarantined roll
func rollStatusFor(currentYards, reorderPoint float64) models.RollStatus {
	switch {
	case currentYards <= models.DepletedThresholdYards:
		return models.RollDepleted
	case currentYards <= reorderPoint:
		return models.RollLow
	default:
		return models.RollActive
	}
}

// roundTenth rounds to one decimal place; tenths of a yard is the
// business-meaningful granularity for fabric
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// LowStockRolls returns rolls flagged Low or Depleted
func (s *inventoryService) LowStockRolls() ([]models.FabricRoll, error) {
	db := config.GetDB()
	var rolls []models.FabricRoll
	err := db.Where("status IN ?", []models.RollStatus{models.RollLow, models.RollDepleted}).Find(&rolls).Error
	return rolls, err
}

// LowStockHardware returns hardware flagged Low or Out of Stock
func (s *inventoryService) LowStockHardware() ([]models.HardwareItem, error) {
	db := config.GetDB()
	var items []models.HardwareItem
	err := db.Where("status IN ?", []models.HardwareStatus{models.HardwareLow, models.HardwareOutOfStock}).Find(&items).Error
	return items, err
}

// InventoryAlerts merges fabric and hardware shortfalls into one feed,
// critical entries first
func (s *inventoryService) InventoryAlerts() ([]InventoryAlert, error) {
	rolls, err := s.LowStockRolls()
	if err != nil {
		return nil, err
	}
	items, err := s.LowStockHardware()
	if err != nil {
		return nil, err
	}

	alerts := make([]InventoryAlert, 0, len(rolls)+len(items))

	for _, roll := range rolls {
		severity := "warning"
		if roll.InitialYards > 0 && roll.CurrentYards/roll.InitialYards < 0.25 {
			severity = "critical"
		}
		alerts = append(alerts, InventoryAlert{
			ID:           roll.ID,
			Name:         roll.Color + " " + string(roll.FabricFamily),
			Type:         "fabric",
			CurrentLevel: roll.CurrentYards,
			ReorderPoint: roll.ReorderPointYards,
			Unit:         "yards",
			Severity:     severity,
		})
	}

	for _, item := range items {
		severity := "warning"
		if item.Status == models.HardwareOutOfStock {
			severity = "critical"
		}
		alerts = append(alerts, InventoryAlert{
			ID:           item.ID,
			Name:         item.Name,
			Type:         "hardware",
			CurrentLevel: float64(item.CurrentStock),
			ReorderPoint: float64(item.ReorderPoint),
			Unit:         "units",
			Severity:     severity,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Severity == "critical" && alerts[j].Severity != "critical"
	})

	return alerts, nil
}
