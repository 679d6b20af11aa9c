package controllers

import (
	"errors"
	"net/http"

	"github.com/calloway-denim/atelier-ops-api/config"
	"github.com/calloway-denim/atelier-ops-api/middleware"
	"github.com/calloway-denim/atelier-ops-api/models"
	"github.com/calloway-denim/atelier-ops-api/services"
	"github.com/gin-gonic/gin"
)

// DeductYardageRequest represents the request body for a manual yardage deduction
type DeductYardageRequest struct {
	Yards float64 `json:"yards" binding:"required,gt=0"`
}

// ListFabricRolls handles GET /api/v1/fabric-rolls - lists all fabric rolls
func ListFabricRolls(c *gin.Context) {
	db := config.GetDB()
	var rolls []models.FabricRoll

	query := db.Order("status ASC")
	if family := c.Query("family"); family != "" {
		query = query.Where("fabric_family = ?", family)
	}

	if err := query.Find(&rolls).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load fabric rolls",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rolls,
	})
}

// GetFabricRoll handles GET /api/v1/fabric-rolls/:id - returns one fabric roll
func GetFabricRoll(c *gin.Context) {
	roll, err := services.GetInventoryService().GetFabricRoll(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ROLL_NOT_FOUND",
					"message": "Fabric roll not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load fabric roll",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    roll,
	})
}

// DeductYardage handles POST /api/v1/fabric-rolls/:id/deduct - manual
// stock correction (managers only). Unlike the Cutting-stage coupling,
// a shortfall here blocks the whole operation.
func DeductYardage(c *gin.Context) {
	// Only managers may correct stock by hand
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "Staff profile not found. Please create a profile first.",
			},
		})
		return
	}

	if user.Role != "manager" {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only managers can adjust stock manually",
			},
		})
		return
	}

	var req DeductYardageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	roll, err := services.GetInventoryService().DeductYardage(c.Param("id"), req.Yards)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ROLL_NOT_FOUND",
					"message": "Fabric roll not found",
				},
			})
		case errors.Is(err, services.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INSUFFICIENT_STOCK",
					"message": "Not enough yardage remaining on the roll",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to deduct yardage",
				},
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    roll,
	})
}

// ListHardware handles GET /api/v1/hardware - lists all hardware items
func ListHardware(c *gin.Context) {
	db := config.GetDB()
	var items []models.HardwareItem
	if err := db.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load hardware items",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}

// GetInventoryAlerts handles GET /api/v1/inventory/alerts - returns the
// merged low-stock feed, critical entries first
func GetInventoryAlerts(c *gin.Context) {
	alerts, err := services.GetInventoryService().InventoryAlerts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load inventory alerts",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    alerts,
	})
}
