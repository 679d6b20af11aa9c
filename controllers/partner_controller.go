package controllers

import (
	"net/http"

	"github.com/calloway-denim/atelier-ops-api/config"
	"github.com/calloway-denim/atelier-ops-api/middleware"
	"github.com/calloway-denim/atelier-ops-api/models"
	"github.com/calloway-denim/atelier-ops-api/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListPartners handles GET /api/v1/partners - lists B2B partner accounts
func ListPartners(c *gin.Context) {
	db := config.GetDB()
	var partners []models.Partner
	if err := db.Order("name ASC").Find(&partners).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load partners",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    partners,
	})
}

// GetPartner handles GET /api/v1/partners/:id - returns one partner
func GetPartner(c *gin.Context) {
	db := config.GetDB()
	var partner models.Partner
	if err := db.First(&partner, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PARTNER_NOT_FOUND",
				"message": "Partner not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    partner,
	})
}

// GetPartnerReps handles GET /api/v1/partners/:id/reps - lists a partner's reps
func GetPartnerReps(c *gin.Context) {
	db := config.GetDB()
	var reps []models.PartnerRep
	if err := db.Where("partner_id = ?", c.Param("id")).Find(&reps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load partner reps",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reps,
	})
}

// GetPartnerOrders handles GET /api/v1/partners/:id/orders - lists a
// partner's orders with their pipeline history
func GetPartnerOrders(c *gin.Context) {
	db := config.GetDB()
	var orders []models.Order
	err := db.Preload("PipelineStages", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("entered_at ASC")
	}).Where("partner_id = ?", c.Param("id")).Order("order_date DESC").Find(&orders).Error
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

// RecomputePartnerTotals handles POST /api/v1/partners/recompute -
// rebuilds partner and rep revenue aggregates from the orders table
// (managers only). The job is idempotent; running it twice is harmless.
func RecomputePartnerTotals(c *gin.Context) {
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
				"message": "Only managers can recompute partner totals",
			},
		})
		return
	}

	if err := services.RecomputePartnerTotals(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to recompute partner totals",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Partner totals recomputed",
	})
}
