package controllers

import (
	"net/http"
	"time"

	"github.com/calloway-denim/atelier-ops-api/config"
	"github.com/calloway-denim/atelier-ops-api/models"
	"github.com/calloway-denim/atelier-ops-api/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// loadOrdersWithStages loads every order with its stage history for the
// production projections
func loadOrdersWithStages() ([]models.Order, error) {
	db := config.GetDB()
	var orders []models.Order
	err := db.Preload("PipelineStages", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("entered_at ASC")
	}).Find(&orders).Error
	return orders, err
}

// GetProductionBoard handles GET /api/v1/production/board - returns
// orders grouped by pipeline stage with dwell-time averages
func GetProductionBoard(c *gin.Context) {
	orders, err := loadOrdersWithStages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    services.OrdersByStage(orders, time.Now()),
	})
}

// GetArtisanWorkload handles GET /api/v1/production/workload - returns
// active order counts per artisan, busiest first
func GetArtisanWorkload(c *gin.Context) {
	db := config.GetDB()
	var orders []models.Order
	if err := db.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    services.ArtisanWorkloads(orders),
	})
}

// GetPipelineMetrics handles GET /api/v1/production/metrics - returns
// the headline pipeline numbers for the dashboard
func GetPipelineMetrics(c *gin.Context) {
	db := config.GetDB()
	var orders []models.Order
	if err := db.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    services.ComputePipelineMetrics(orders, time.Now()),
	})
}
