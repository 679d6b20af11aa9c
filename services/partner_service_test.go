package services

import (
	"testing"

	"github.com/calloway-denim/atelier-ops-api/config"
	"github.com/calloway-denim/atelier-ops-api/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPartnerTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(&models.Partner{}, &models.PartnerRep{}, &models.Order{}, &models.PipelineStage{})
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func partnerOrder(partnerID, repID string, total float64, status models.OrderStatus) models.Order {
	order := models.Order{
		CustomerID:           "cust-1",
		MeasurementProfileID: "profile-1",
		ProductID:            "prod-1",
		Channel:              models.ChannelB2BTomJames,
		Status:               status,
		Quantity:             1,
		UnitPrice:            total,
		TotalPrice:           total,
		PartnerID:            &partnerID,
	}
	if repID != "" {
		order.PartnerRepID = &repID
	}
	return order
}

func TestRecomputePartnerTotals(t *testing.T) {
	db := setupPartnerTestDB(t)
	config.SetDB(db)

	partner := models.Partner{Name: "Tom James", Type: "Clothier"}
	db.Create(&partner)
	other := models.Partner{Name: "Stitch Golf", Type: "Retailer", TotalOrders: 99, TotalRevenue: 9999, ActiveOrders: 9}
	db.Create(&other)

	rep := models.PartnerRep{PartnerID: partner.ID, FirstName: "Dana", LastName: "Cole"}
	db.Create(&rep)

	// A direct-to-consumer order never counts toward partner totals
	dtc := partnerOrder("", "", 500, models.StageSewing)
	dtc.PartnerID = nil
	dtc.Channel = models.ChannelDTCWeb
	db.Create(&dtc)

	o1 := partnerOrder(partner.ID, rep.ID, 300, models.StageSewing)
	db.Create(&o1)
	o2 := partnerOrder(partner.ID, rep.ID, 450, models.StageShipped)
	db.Create(&o2)
	o3 := partnerOrder(partner.ID, "", 250, models.StageCutting)
	db.Create(&o3)

	err := RecomputePartnerTotals()
	assert.NoError(t, err)

	var reloaded models.Partner
	db.First(&reloaded, "id = ?", partner.ID)
	assert.Equal(t, 3, reloaded.TotalOrders)
	assert.Equal(t, 1000.0, reloaded.TotalRevenue)
	assert.Equal(t, 2, reloaded.ActiveOrders, "shipped orders are not active")

	var reloadedRep models.PartnerRep
	db.First(&reloadedRep, "id = ?", rep.ID)
	assert.Equal(t, 2, reloadedRep.TotalOrders)
	assert.Equal(t, 750.0, reloadedRep.TotalRevenue)

	// Partners with no orders are zeroed, not left with stale totals
	var reloadedOther models.Partner
	db.First(&reloadedOther, "id = ?", other.ID)
	assert.Equal(t, 0, reloadedOther.TotalOrders)
	assert.Equal(t, 0.0, reloadedOther.TotalRevenue)
	assert.Equal(t, 0, reloadedOther.ActiveOrders)
}

func TestRecomputePartnerTotals_IsIdempotent(t *testing.T) {
	db := setupPartnerTestDB(t)
	config.SetDB(db)

	partner := models.Partner{Name: "Tom James", Type: "Clothier"}
	db.Create(&partner)

	o := partnerOrder(partner.ID, "", 300, models.StageSewing)
	db.Create(&o)

	assert.NoError(t, RecomputePartnerTotals())
	assert.NoError(t, RecomputePartnerTotals())

	var reloaded models.Partner
	db.First(&reloaded, "id = ?", partner.ID)
	assert.Equal(t, 1, reloaded.TotalOrders)
	assert.Equal(t, 300.0, reloaded.TotalRevenue)
}
