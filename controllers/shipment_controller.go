package controllers

import (
	"net/http"

	"github.com/calloway-denim/atelier-ops-api/config"
	"github.com/calloway-denim/atelier-ops-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListShipments handles GET /api/v1/shipments - lists shipments with
// their tracking history, newest first
func ListShipments(c *gin.Context) {
	db := config.GetDB()
	var shipments []models.Shipment
	err := db.Preload("Stages", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("timestamp ASC")
	}).Order("shipped_date DESC").Find(&shipments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load shipments",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    shipments,
	})
}

// GetShipment handles GET /api/v1/shipments/:id - returns one shipment
// with its tracking history
func GetShipment(c *gin.Context) {
	db := config.GetDB()
	var shipment models.Shipment
	err := db.Preload("Stages", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("timestamp ASC")
	}).First(&shipment, "id = ?", c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SHIPMENT_NOT_FOUND",
				"message": "Shipment not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    shipment,
	})
}
