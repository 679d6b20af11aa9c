package controllers

import (
	"net/http"

	"github.com/calloway-denim/atelier-ops-api/config"
	"github.com/calloway-denim/atelier-ops-api/models"
	"github.com/gin-gonic/gin"
)

// loadMonthlyMetrics loads the monthly reporting series in month order
func loadMonthlyMetrics(c *gin.Context) ([]models.MonthlyMetrics, bool) {
	db := config.GetDB()
	var metrics []models.MonthlyMetrics
	if err := db.Order("month ASC").Find(&metrics).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load monthly metrics",
			},
		})
		return nil, false
	}
	return metrics, true
}

// GetMonthlyMetrics handles GET /api/v1/analytics/monthly - returns the
// full monthly reporting series
func GetMonthlyMetrics(c *gin.Context) {
	metrics, ok := loadMonthlyMetrics(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    metrics,
	})
}

// GetRevenueTrend handles GET /api/v1/analytics/revenue - monthly
// revenue and order counts for the revenue chart
func GetRevenueTrend(c *gin.Context) {
	metrics, ok := loadMonthlyMetrics(c)
	if !ok {
		return
	}

	data := make([]gin.H, 0, len(metrics))
	for _, m := range metrics {
		data = append(data, gin.H{
			"month":       m.Month,
			"revenue":     m.Revenue,
			"order_count": m.OrderCount,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// GetOrderTrend handles GET /api/v1/analytics/orders - monthly order
// counts and new customers
func GetOrderTrend(c *gin.Context) {
	metrics, ok := loadMonthlyMetrics(c)
	if !ok {
		return
	}

	data := make([]gin.H, 0, len(metrics))
	for _, m := range metrics {
		data = append(data, gin.H{
			"month":         m.Month,
			"order_count":   m.OrderCount,
			"new_customers": m.NewCustomers,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// GetChannelMix handles GET /api/v1/analytics/channel-mix - monthly
// order counts per sales channel
func GetChannelMix(c *gin.Context) {
	metrics, ok := loadMonthlyMetrics(c)
	if !ok {
		return
	}

	data := make([]gin.H, 0, len(metrics))
	for _, m := range metrics {
		data = append(data, gin.H{
			"month":      m.Month,
			"dtc_web":    m.DTCWebOrders,
			"dtc_store":  m.DTCStoreOrders,
			"b2b":        m.B2BOrders,
			"trunk_show": m.TrunkShowOrders,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// GetLeadTimeTrend handles GET /api/v1/analytics/lead-time - monthly
// average lead time and on-time delivery rate
func GetLeadTimeTrend(c *gin.Context) {
	metrics, ok := loadMonthlyMetrics(c)
	if !ok {
		return
	}

	data := make([]gin.H, 0, len(metrics))
	for _, m := range metrics {
		data = append(data, gin.H{
			"month":         m.Month,
			"avg_lead_time": m.AverageLeadTimeDays,
			"on_time_rate":  m.OnTimeDeliveryRate,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// GetFabricConsumption handles GET /api/v1/analytics/fabric-consumption -
// monthly fabric yards consumed vs received
func GetFabricConsumption(c *gin.Context) {
	metrics, ok := loadMonthlyMetrics(c)
	if !ok {
		return
	}

	data := make([]gin.H, 0, len(metrics))
	for _, m := range metrics {
		data = append(data, gin.H{
			"month":    m.Month,
			"consumed": m.FabricYardsConsumed,
			"received": m.FabricYardsReceived,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}
