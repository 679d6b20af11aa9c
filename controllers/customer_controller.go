package controllers

import (
	"net/http"

	"github.com/calloway-denim/atelier-ops-api/config"
	"github.com/calloway-denim/atelier-ops-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListCustomers handles GET /api/v1/customers - lists customers, newest first
func ListCustomers(c *gin.Context) {
	db := config.GetDB()
	var customers []models.Customer
	if err := db.Order("created_at DESC").Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load customers",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customers,
	})
}

// GetCustomer handles GET /api/v1/customers/:id - returns one customer
func GetCustomer(c *gin.Context) {
	db := config.GetDB()
	var customer models.Customer
	if err := db.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CUSTOMER_NOT_FOUND",
				"message": "Customer not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customer,
	})
}

// GetCustomerOrders handles GET /api/v1/customers/:id/orders - lists a
// customer's orders with their pipeline history
func GetCustomerOrders(c *gin.Context) {
	db := config.GetDB()
	var orders []models.Order
	err := db.Preload("PipelineStages", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("entered_at ASC")
	}).Where("customer_id = ?", c.Param("id")).Order("order_date DESC").Find(&orders).Error
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
		"data":    orders,
	})
}

// GetCustomerMeasurements handles GET /api/v1/customers/:id/measurements -
// lists a customer's measurement profiles, newest first
func GetCustomerMeasurements(c *gin.Context) {
	db := config.GetDB()
	var profiles []models.MeasurementProfile
	err := db.Where("customer_id = ?", c.Param("id")).Order("date_taken DESC").Find(&profiles).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load measurement profiles",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    profiles,
	})
}
