package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/calloway-denim/atelier-ops-api/config"
	"github.com/calloway-denim/atelier-ops-api/models"
	"github.com/calloway-denim/atelier-ops-api/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	CustomerID           string   `json:"customer_id" binding:"required"`
	MeasurementProfileID string   `json:"measurement_profile_id" binding:"required"`
	ProductID            string   `json:"product_id" binding:"required"`
	Channel              string   `json:"channel" binding:"required"`
	Quantity             int      `json:"quantity" binding:"required,gt=0"`
	UnitPrice            float64  `json:"unit_price" binding:"required,gt=0"`
	PromisedDate         string   `json:"promised_date" binding:"required"` // YYYY-MM-DD
	FabricRollID         *string  `json:"fabric_roll_id"`
	YardageUsed          *float64 `json:"yardage_used"`
	ThreadColor          string   `json:"thread_color"`
	PocketStyle          string   `json:"pocket_style"`
	Hardware             string   `json:"hardware"`
	AssignedArtisan      *string  `json:"assigned_artisan"`
	PartnerID            *string  `json:"partner_id"`
	PartnerRepID         *string  `json:"partner_rep_id"`
	OrderNote            *string  `json:"order_note"`
}

// AdvanceOrderRequest represents the request body for advancing an order
// through the pipeline. TargetStage is optional; when omitted the order
// moves one stage forward.
type AdvanceOrderRequest struct {
	TargetStage string  `json:"target_stage"`
	Artisan     *string `json:"artisan"`
}

// CreateOrder handles POST /api/v1/orders - creates a new order with its
// initial pipeline stage entry
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
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

	promised, err := time.Parse("2006-01-02", req.PromisedDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "promised_date must be in YYYY-MM-DD format",
			},
		})
		return
	}

	db := config.GetDB()

	// Verify the customer exists before opening a ledger
	var customer models.Customer
	if err := db.First(&customer, "id = ?", req.CustomerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CUSTOMER_NOT_FOUND",
				"message": "Customer not found",
			},
		})
		return
	}

	order := models.Order{
		CustomerID:           req.CustomerID,
		MeasurementProfileID: req.MeasurementProfileID,
		ProductID:            req.ProductID,
		Channel:              models.OrderChannel(req.Channel),
		Quantity:             req.Quantity,
		UnitPrice:            req.UnitPrice,
		TotalPrice:           req.UnitPrice * float64(req.Quantity),
		PromisedDate:         promised,
		FabricRollID:         req.FabricRollID,
		YardageUsed:          req.YardageUsed,
		ThreadColor:          req.ThreadColor,
		PocketStyle:          req.PocketStyle,
		Hardware:             req.Hardware,
		AssignedArtisan:      req.AssignedArtisan,
		PartnerID:            req.PartnerID,
		PartnerRepID:         req.PartnerRepID,
		OrderNote:            req.OrderNote,
	}

	created, err := services.GetPipelineService().CreateOrder(&order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    created,
	})
}

// ListOrders handles GET /api/v1/orders - lists orders with optional
// status, channel, date-range and search filters
func ListOrders(c *gin.Context) {
	db := config.GetDB()

	query := db.Model(&models.Order{}).Preload("PipelineStages", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("entered_at ASC")
	})

	if statusParam := c.Query("status"); statusParam != "" {
		statuses := strings.Split(statusParam, ",")
		query = query.Where("status IN ?", statuses)
	}
	if channel := c.Query("channel"); channel != "" {
		query = query.Where("channel = ?", channel)
	}
	if from := c.Query("from"); from != "" {
		if fromDate, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("order_date >= ?", fromDate)
		}
	}
	if to := c.Query("to"); to != "" {
		// The to date is inclusive: match anything before the next day
		if toDate, err := time.Parse("2006-01-02", to); err == nil {
			query = query.Where("order_date < ?", toDate.Add(24*time.Hour))
		}
	}
	if q := c.Query("q"); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(id) LIKE ? OR LOWER(customer_id) LIKE ?", like, like)
	}

	var orders []models.Order
	if err := query.Order("order_date DESC").Find(&orders).Error; err != nil {
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

// GetOrder handles GET /api/v1/orders/:id - returns one order with its
// pipeline history and a presigned sketch URL when one is attached
func GetOrder(c *gin.Context) {
	order, err := services.GetPipelineService().GetOrder(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ORDER_NOT_FOUND",
					"message": "Order not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order",
			},
		})
		return
	}

	attachSketchURL(order)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// AdvanceOrder handles POST /api/v1/orders/:id/advance - moves an order
// forward in the production pipeline. A fabric shortfall during the
// Cutting transition is reported as a warning, not a failure.
func AdvanceOrder(c *gin.Context) {
	// An empty body means "move one stage forward"
	var req AdvanceOrderRequest
	if c.Request.ContentLength > 0 {
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
	}

	pipeline := services.GetPipelineService()

	var (
		order   *models.Order
		warning string
		err     error
	)
	if req.TargetStage == "" {
		order, warning, err = pipeline.AdvanceToNext(c.Param("id"), req.Artisan)
	} else {
		order, warning, err = pipeline.AdvanceStage(c.Param("id"), models.OrderStatus(req.TargetStage), req.Artisan)
	}

	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ORDER_NOT_FOUND",
					"message": "Order not found",
				},
			})
		case errors.Is(err, services.ErrUnknownStage):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNKNOWN_STAGE",
					"message": "Unknown pipeline stage",
				},
			})
		case errors.Is(err, services.ErrBackwardTransition):
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "BACKWARD_TRANSITION",
					"message": "Cannot move orders backward in the pipeline",
				},
			})
		case errors.Is(err, services.ErrNoOpenStage):
			// Corrupted ledger; surfaced loudly, never patched over
			log.Printf("advance failed with ledger integrity error for order %s: %v", c.Param("id"), err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "LEDGER_INTEGRITY_ERROR",
					"message": "Order stage history is inconsistent; manual review required",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to advance order",
				},
			})
		}
		return
	}

	response := gin.H{
		"success": true,
		"data":    order,
	}
	if warning != "" {
		response["warning"] = warning
	}

	c.JSON(http.StatusOK, response)
}

// attachSketchURL fills the computed SketchURL field from the sketch service
func attachSketchURL(order *models.Order) {
	sketchService := services.GetSketchService()
	if sketchService == nil || order.SketchS3Key == nil {
		return
	}
	url, err := sketchService.GetSketchURL(*order.SketchS3Key)
	if err != nil {
		log.Printf("failed to generate sketch URL for order %s: %v", order.ID, err)
		return
	}
	if url != "" {
		order.SketchURL = &url
	}
}
