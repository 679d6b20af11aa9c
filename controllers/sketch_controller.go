package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/calloway-denim/atelier-ops-api/config"
	"github.com/calloway-denim/atelier-ops-api/models"
	"github.com/calloway-denim/atelier-ops-api/services"
	"github.com/calloway-denim/atelier-ops-api/utils"
	"github.com/gin-gonic/gin"
)

// UploadSketch handles POST /api/v1/orders/:id/sketch - attaches a
// design sketch (PNG) to an order, replacing any previous one
func UploadSketch(c *gin.Context) {
	db := config.GetDB()

	var order models.Order
	if err := db.First(&order, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("sketch")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "No sketch file provided",
			},
		})
		return
	}

	sketchService := services.GetSketchService()
	if sketchService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_UNAVAILABLE",
				"message": "Sketch storage is not configured",
			},
		})
		return
	}

	sketchKey, err := sketchService.UploadSketch(fileHeader)
	if err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    uploadErr.Code,
					"message": uploadErr.Message,
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "Failed to upload sketch",
			},
		})
		return
	}

	// Replace any previous sketch; a failed delete is logged, not fatal
	if order.SketchS3Key != nil {
		if err := sketchService.DeleteSketch(*order.SketchS3Key); err != nil {
			log.Printf("failed to delete previous sketch %s for order %s: %v", *order.SketchS3Key, order.ID, err)
		}
	}

	if err := db.Model(&order).Update("sketch_s3_key", sketchKey).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save sketch reference",
			},
		})
		return
	}

	order.SketchS3Key = &sketchKey
	attachSketchURL(&order)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// DeleteSketch handles DELETE /api/v1/orders/:id/sketch - removes the
// design sketch attached to an order
func DeleteSketch(c *gin.Context) {
	db := config.GetDB()

	var order models.Order
	if err := db.First(&order, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	if order.SketchS3Key == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SKETCH_NOT_FOUND",
				"message": "Order has no sketch attached",
			},
		})
		return
	}

	sketchService := services.GetSketchService()
	if sketchService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_UNAVAILABLE",
				"message": "Sketch storage is not configured",
			},
		})
		return
	}

	if err := sketchService.DeleteSketch(*order.SketchS3Key); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DELETE_ERROR",
				"message": "Failed to delete sketch",
			},
		})
		return
	}

	if err := db.Model(&order).Update("sketch_s3_key", nil).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to clear sketch reference",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sketch deleted",
	})
}
