package services

import (
	"testing"

	"github.com/calloway-denim/atelier-ops-api/config"
	"github.com/calloway-denim/atelier-ops-api/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupInventoryTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.FabricRoll{}, &models.HardwareItem{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func createRoll(t *testing.T, db *gorm.DB, roll models.FabricRoll) models.FabricRoll {
	if roll.MaterialName == "" {
		roll.MaterialName = "Kurabo 14oz"
	}
	if roll.FabricFamily == "" {
		roll.FabricFamily = models.FamilyRawDenim
	}
	if roll.Color == "" {
		roll.Color = "Indigo"
	}
	if err := db.Create(&roll).Error; err != nil {
		t.Fatalf("Failed to create test roll: %v", err)
	}
	return roll
}

func TestDeductYardage(t *testing.T) {
	tests := []struct {
		name           string
		initial        float64
		current        float64
		reorderPoint   float64
		status         models.RollStatus
		deduct         float64
		expectedErr    error
		expectedYards  float64
		expectedStatus models.RollStatus
	}{
		{
			name:           "Simple deduction keeps roll active",
			initial:        50, current: 30, reorderPoint: 8,
			status: models.RollActive, deduct: 5,
			expectedYards: 25, expectedStatus: models.RollActive,
		},
		{
			name:           "Crossing the reorder point marks roll low",
			initial:        50, current: 10, reorderPoint: 8,
			status: models.RollActive, deduct: 4,
			expectedYards: 6, expectedStatus: models.RollLow,
		},
		{
			name:           "Landing exactly on the reorder point marks roll low",
			initial:        50, current: 10, reorderPoint: 8,
			status: models.RollActive, deduct: 2,
			expectedYards: 8, expectedStatus: models.RollLow,
		},
		{
			name:           "Dropping to three yards or less marks roll depleted",
			initial:        50, current: 5, reorderPoint: 8,
			status: models.RollLow, deduct: 3,
			expectedYards: 2, expectedStatus: models.RollDepleted,
		},
		{
			name:           "Exactly three yards left is depleted",
			initial:        50, current: 6, reorderPoint: 8,
			status: models.RollLow, deduct: 3,
			expectedYards: 3, expectedStatus: models.RollDepleted,
		},
		{
			name:           "Deducting everything leaves a depleted roll",
			initial:        50, current: 5, reorderPoint: 8,
			status: models.RollLow, deduct: 5,
			expectedYards: 0, expectedStatus: models.RollDepleted,
		},
		{
			name:           "Deducting more than remaining fails",
			initial:        50, current: 2, reorderPoint: 8,
			status: models.RollDepleted, deduct: 4,
			expectedErr:   ErrInsufficientStock,
			expectedYards: 2, expectedStatus: models.RollDepleted,
		},
		{
			name:           "Quarantined roll keeps its status",
			initial:        50, current: 10, reorderPoint: 8,
			status: models.RollQuarantine, deduct: 8,
			expectedYards: 2, expectedStatus: models.RollQuarantine,
		},
		{
			name:           "Fractional yardage rounds to tenths",
			initial:        50, current: 10.5, reorderPoint: 3,
			status: models.RollActive, deduct: 3.33,
			expectedYards: 7.2, expectedStatus: models.RollActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupInventoryTestDB(t)
			config.SetDB(db)
			svc := InitInventoryService()

			roll := createRoll(t, db, models.FabricRoll{
				InitialYards:      tt.initial,
				CurrentYards:      tt.current,
				ReorderPointYards: tt.reorderPoint,
				Status:            tt.status,
			})

			updated, err := svc.DeductYardage(roll.ID, tt.deduct)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedYards, updated.CurrentYards)
				assert.Equal(t, tt.expectedStatus, updated.Status)
			}

			// The database agrees with the return value either way
			var stored models.FabricRoll
			db.First(&stored, "id = ?", roll.ID)
			assert.Equal(t, tt.expectedYards, stored.CurrentYards)
			assert.Equal(t, tt.expectedStatus, stored.Status)
		})
	}
}

func TestDeductYardage_RollNotFound(t *testing.T) {
	db := setupInventoryTestDB(t)
	config.SetDB(db)
	svc := InitInventoryService()

	_, err := svc.DeductYardage("missing-roll", 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetFabricRoll(t *testing.T) {
	db := setupInventoryTestDB(t)
	config.SetDB(db)
	svc := InitInventoryService()

	roll := createRoll(t, db, models.FabricRoll{
		InitialYards:      40,
		CurrentYards:      40,
		ReorderPointYards: 8,
		Status:            models.RollActive,
	})

	found, err := svc.GetFabricRoll(roll.ID)
	assert.NoError(t, err)
	assert.Equal(t, roll.ID, found.ID)
	assert.Equal(t, 40.0, found.CurrentYards)

	_, err = svc.GetFabricRoll("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInventoryAlerts(t *testing.T) {
	db := setupInventoryTestDB(t)
	config.SetDB(db)
	svc := InitInventoryService()

	// Warning: low but above a quarter of initial yardage
	createRoll(t, db, models.FabricRoll{
		Color:             "Ecru",
		InitialYards:      20,
		CurrentYards:      7,
		ReorderPointYards: 8,
		Status:            models.RollLow,
	})

	// Critical: under a quarter of initial yardage
	createRoll(t, db, models.FabricRoll{
		Color:             "Black",
		InitialYards:      40,
		CurrentYards:      2,
		ReorderPointYards: 8,
		Status:            models.RollDepleted,
	})

	// Healthy roll, no alert
	createRoll(t, db, models.FabricRoll{
		Color:             "Indigo",
		InitialYards:      50,
		CurrentYards:      45,
		ReorderPointYards: 8,
		Status:            models.RollActive,
	})

	db.Create(&models.HardwareItem{
		Name:         "YKK Brass Zipper",
		Type:         "Zipper",
		CurrentStock: 0,
		ReorderPoint: 50,
		Status:       models.HardwareOutOfStock,
	})
	db.Create(&models.HardwareItem{
		Name:         "Copper Rivet",
		Type:         "Rivet",
		CurrentStock: 40,
		ReorderPoint: 100,
		Status:       models.HardwareLow,
	})
	db.Create(&models.HardwareItem{
		Name:         "Horn Button",
		Type:         "Main Button",
		CurrentStock: 500,
		ReorderPoint: 100,
		Status:       models.HardwareInStock,
	})

	alerts, err := svc.InventoryAlerts()
	assert.NoError(t, err)
	assert.Len(t, alerts, 4)

	// Critical alerts sort ahead of warnings
	assert.Equal(t, "critical", alerts[0].Severity)
	assert.Equal(t, "critical", alerts[1].Severity)
	assert.Equal(t, "warning", alerts[2].Severity)
	assert.Equal(t, "warning", alerts[3].Severity)

	// The two criticals are the depleted roll and the out-of-stock zipper
	types := []string{alerts[0].Type, alerts[1].Type}
	assert.Contains(t, types, "fabric")
	assert.Contains(t, types, "hardware")
}

func TestLowStockRolls(t *testing.T) {
	db := setupInventoryTestDB(t)
	config.SetDB(db)
	svc := InitInventoryService()

	createRoll(t, db, models.FabricRoll{Color: "Ecru", InitialYards: 20, CurrentYards: 7, ReorderPointYards: 8, Status: models.RollLow})
	createRoll(t, db, models.FabricRoll{Color: "Black", InitialYards: 40, CurrentYards: 2, ReorderPointYards: 8, Status: models.RollDepleted})
	createRoll(t, db, models.FabricRoll{Color: "Indigo", InitialYards: 50, CurrentYards: 45, ReorderPointYards: 8, Status: models.RollActive})
	createRoll(t, db, models.FabricRoll{Color: "Olive", InitialYards: 30, CurrentYards: 28, ReorderPointYards: 8, Status: models.RollQuarantine})

	rolls, err := svc.LowStockRolls()
	assert.NoError(t, err)
	assert.Len(t, rolls, 2)
}

func TestRoundTenth(t *testing.T) {
	assert.Equal(t, 7.2, roundTenth(7.17))
	assert.Equal(t, 7.1, roundTenth(7.14))
	assert.Equal(t, 0.0, roundTenth(0.04))
	assert.Equal(t, 2.0, roundTenth(5.0-3.0))
	// Float subtraction artifacts collapse back onto the tenths grid
	assert.Equal(t, 0.3, roundTenth(0.1+0.2))
}
