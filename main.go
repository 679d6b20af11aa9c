package main

import (
	"log"
	"net/http"

	"github.com/calloway-denim/atelier-ops-api/config"
	"github.com/calloway-denim/atelier-ops-api/controllers"
	"github.com/calloway-denim/atelier-ops-api/middleware"
	"github.com/calloway-denim/atelier-ops-api/models"
	"github.com/calloway-denim/atelier-ops-api/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Atelier Ops API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.MeasurementProfile{},
		&models.Product{},
		&models.FabricRoll{},
		&models.HardwareItem{},
		&models.Order{},
		&models.PipelineStage{},
		&models.Shipment{},
		&models.ShipmentStage{},
		&models.Partner{},
		&models.PartnerRep{},
		&models.MonthlyMetrics{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize services
	services.InitPipelineService()
	services.InitInventoryService()

	// Sketch storage is optional; the API runs without it
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Printf("Warning: S3 unavailable, sketch uploads disabled: %v", err)
		} else {
			services.InitSketchService(s3Service)
		}
	} else {
		log.Println("AWS_S3_BUCKET not set, sketch uploads disabled")
	}

	// Initialize Gin router
	router := gin.Default()
	router.Use(cors.Default())

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)
	}

	// All operational routes require a valid staff JWT
	protected := v1.Group("")
	if cfg.Auth0Domain != "" {
		protected.Use(middleware.EnsureValidToken(cfg))
	} else {
		log.Println("Warning: AUTH0_DOMAIN not set, running without authentication")
	}
	{
		// Staff profiles
		protected.POST("/users", controllers.CreateUser)
		protected.GET("/users/me", controllers.GetCurrentUser)
		protected.PATCH("/users/me", controllers.UpdateCurrentUser)

		// Orders and the production pipeline
		protected.GET("/orders", controllers.ListOrders)
		protected.POST("/orders", controllers.CreateOrder)
		protected.GET("/orders/:id", controllers.GetOrder)
		protected.POST("/orders/:id/advance", controllers.AdvanceOrder)
		protected.POST("/orders/:id/sketch", controllers.UploadSketch)
		protected.DELETE("/orders/:id/sketch", controllers.DeleteSketch)

		// Production board projections
		protected.GET("/production/board", controllers.GetProductionBoard)
		protected.GET("/production/workload", controllers.GetArtisanWorkload)
		protected.GET("/production/metrics", controllers.GetPipelineMetrics)

		// Inventory
		protected.GET("/fabric-rolls", controllers.ListFabricRolls)
		protected.GET("/fabric-rolls/:id", controllers.GetFabricRoll)
		protected.POST("/fabric-rolls/:id/deduct", controllers.DeductYardage)
		protected.GET("/hardware", controllers.ListHardware)
		protected.GET("/inventory/alerts", controllers.GetInventoryAlerts)

		// Customers and measurements
		protected.GET("/customers", controllers.ListCustomers)
		protected.GET("/customers/:id", controllers.GetCustomer)
		protected.GET("/customers/:id/orders", controllers.GetCustomerOrders)
		protected.GET("/customers/:id/measurements", controllers.GetCustomerMeasurements)

		// Products
		protected.GET("/products", controllers.ListProducts)
		protected.GET("/products/:id", controllers.GetProduct)

		// Shipments
		protected.GET("/shipments", controllers.ListShipments)
		protected.GET("/shipments/:id", controllers.GetShipment)

		// B2B partners
		protected.GET("/partners", controllers.ListPartners)
		protected.GET("/partners/:id", controllers.GetPartner)
		protected.GET("/partners/:id/reps", controllers.GetPartnerReps)
		protected.GET("/partners/:id/orders", controllers.GetPartnerOrders)
		protected.POST("/partners/recompute", controllers.RecomputePartnerTotals)

		// Analytics series
		protected.GET("/analytics/monthly", controllers.GetMonthlyMetrics)
		protected.GET("/analytics/revenue", controllers.GetRevenueTrend)
		protected.GET("/analytics/orders", controllers.GetOrderTrend)
		protected.GET("/analytics/channel-mix", controllers.GetChannelMix)
		protected.GET("/analytics/lead-time", controllers.GetLeadTimeTrend)
		protected.GET("/analytics/fabric-consumption", controllers.GetFabricConsumption)
	}

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Atelier Ops API is running",
	})
}
