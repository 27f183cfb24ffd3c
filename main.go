package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/xoxo-studio/xoxo-workshop-api/config"
	"github.com/xoxo-studio/xoxo-workshop-api/controllers"
	"github.com/xoxo-studio/xoxo-workshop-api/middleware"
	"github.com/xoxo-studio/xoxo-workshop-api/models"
	"github.com/xoxo-studio/xoxo-workshop-api/services"
)

func main() {
	log.Println("Starting XOXO Workshop API server...")

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
		&models.Member{},
		&models.Order{},
		&models.Product{},
		&models.ProductImage{},
		&models.WorkflowStep{},
		&models.DeliveryInfo{},
		&models.Appointment{},
		&models.WarrantyRecord{},
		&models.FollowUpSchedule{},
		&models.MessageLog{},
		&models.Transaction{},
		&models.RefundRequest{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize S3-backed image storage
	s3Service, err := services.InitS3Service()
	if err != nil {
		log.Fatalf("Failed to initialize S3 service: %v", err)
	}
	services.InitImageService(s3Service)

	// Initialize domain services
	services.InitDomainServices(db, cfg)

	router := setupRouter(cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the Gin engine with all routes registered. JWT
// validation is attached only when Auth0 is configured, so local
// development and tests can run without a tenant.
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://app.xoxo-studio.com"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)
	}

	protected := v1.Group("")
	if cfg != nil && cfg.Auth0Domain != "" {
		protected.Use(middleware.EnsureValidToken(cfg))
	} else {
		log.Println("AUTH0_DOMAIN not set, JWT validation disabled")
	}
	{
		// Members
		protected.POST("/members", controllers.CreateMember)
		protected.GET("/members", controllers.ListMembers)
		protected.GET("/members/me", controllers.GetMyProfile)
		protected.PUT("/members/me", controllers.UpdateMyProfile)

		// Orders
		protected.POST("/orders", controllers.CreateOrder)
		protected.GET("/orders", controllers.ListOrders)
		protected.GET("/orders/:code", controllers.GetOrder)
		protected.POST("/orders/:code/status", controllers.UpdateOrderStatus)
		protected.GET("/orders/:code/receipts", controllers.ListOrderReceipts)
		protected.GET("/orders/:code/messages", controllers.ListOrderMessages)
		protected.POST("/orders/:code/refund", controllers.RequestRefund)
		protected.PUT("/orders/:code/delivery", controllers.SetDeliveryInfo)
		protected.GET("/orders/:code/delivery", controllers.GetDeliveryInfo)

		// Product images
		protected.POST("/products/:id/images", controllers.UploadProductImage)
		protected.DELETE("/products/:id/images/:imageId", controllers.DeleteProductImage)

		// Workflow steps
		protected.PATCH("/workflow-steps/:id/done", controllers.SetStepDone)
		protected.POST("/workflow-steps/:id/approve", controllers.ApproveStep)
		protected.PUT("/workflow-steps/:id/members", controllers.AssignStepMembers)

		// Appointments
		protected.POST("/appointments", controllers.CreateAppointment)
		protected.GET("/appointments", controllers.ListAppointments)
		protected.GET("/appointments/:id", controllers.GetAppointment)
		protected.PATCH("/appointments/:id", controllers.UpdateAppointment)

		// Warranties
		protected.GET("/warranties", controllers.ListWarranties)
		protected.GET("/warranties/:id", controllers.GetWarranty)

		// Follow-ups
		protected.GET("/followups", controllers.ListFollowUps)
		protected.POST("/followups/:id/complete", controllers.CompleteFollowUp)
		protected.POST("/followups/:id/cancel", controllers.CancelFollowUp)
		protected.POST("/followups/sweep-overdue", controllers.SweepOverdueFollowUps)

		// Refund reviews
		protected.GET("/refunds", controllers.ListRefunds)
		protected.POST("/refunds/:id/review", controllers.ReviewRefund)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "XOXO Workshop API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
