package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/atelier-studio/atelier-api/config"
	"github.com/atelier-studio/atelier-api/controllers"
	"github.com/atelier-studio/atelier-api/middleware"
	"github.com/atelier-studio/atelier-api/models"
	"github.com/atelier-studio/atelier-api/services"
)

func main() {
	log.Println("Starting Atelier Studio API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Design{},
		&models.DesignImage{},
		&models.Category{},
		&models.Measurement{},
		&models.Order{},
		&models.OrderFile{},
		&models.BillingEntry{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	if cfg.AWSS3Bucket != "" {
		if _, err := services.InitS3Service(); err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		log.Println("S3 file storage initialized")
	} else {
		log.Println("AWS_S3_BUCKET not set, file uploads disabled")
	}

	router := setupRouter(cfg)

	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the full application router with all routes registered
func setupRouter(cfg *config.Config) *gin.Engine {
	db := config.GetDB()

	notifications := services.NewNotificationService(db)
	orders := services.NewOrderService(db, notifications, cfg.OrderAllowSkip)
	billing := services.NewBillingService(db, notifications)
	finance := services.NewFinanceService(db)
	measurements := services.NewMeasurementService(db)
	bookings := services.NewBookingService(db, orders, measurements)
	auth := services.NewAuthService(db, cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)

	authController := controllers.NewAuthController(auth)
	designController := controllers.NewDesignController(db)
	clientController := controllers.NewClientController(db, finance, orders)
	measurementController := controllers.NewMeasurementController(measurements)
	bookingController := controllers.NewBookingController(bookings)
	orderController := controllers.NewOrderController(orders)
	billingController := controllers.NewBillingController(billing)
	notificationController := controllers.NewNotificationController(notifications)

	router := gin.Default()
	router.Use(cors.Default())

	v1 := router.Group("/api/v1")
	{
		// Public endpoints: health, catalog browsing, and booking
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus)
		v1.POST("/auth/login", authController.Login)
		v1.GET("/designs", designController.ListPublished)
		v1.GET("/designs/:id", designController.GetPublished)
		v1.GET("/categories", designController.ListCategories)
		v1.POST("/bookings", bookingController.Create)

		// Designer back office
		admin := v1.Group("/admin")
		admin.Use(middleware.RequireAuth(cfg))
		{
			admin.GET("/me", authController.Me)

			admin.GET("/designs", designController.List)
			admin.POST("/designs", designController.Create)
			admin.PUT("/designs/:id", designController.Update)
			admin.DELETE("/designs/:id", designController.Delete)
			admin.POST("/designs/:id/images", designController.AddImage)
			admin.POST("/designs/:id/images/upload", designController.UploadImage)
			admin.POST("/categories", designController.CreateCategory)

			admin.GET("/clients", clientController.List)
			admin.POST("/clients", clientController.Create)
			admin.GET("/clients/:id", clientController.Get)
			admin.PUT("/clients/:id", clientController.Update)
			admin.DELETE("/clients/:id", clientController.Delete)
			admin.GET("/clients/:id/measurements", measurementController.ListForClient)
			admin.POST("/clients/:id/measurements", measurementController.Create)

			admin.GET("/orders", orderController.List)
			admin.GET("/orders/:id", orderController.Get)
			admin.PATCH("/orders/:id/status", orderController.UpdateStatus)
			admin.PATCH("/orders/:id/measurement", orderController.AttachMeasurement)
			admin.POST("/orders/:id/files", orderController.UploadFile)
			admin.DELETE("/orders/:id", orderController.Delete)
			admin.GET("/orders/:id/billing", billingController.ListForOrder)
			admin.POST("/orders/:id/billing", billingController.AddEntry)
			admin.PATCH("/billing/:id/paid", billingController.MarkPaid)
			admin.PATCH("/billing/:id/unpaid", billingController.MarkUnpaid)

			admin.GET("/notifications", notificationController.List)
			admin.GET("/notifications/unread-count", notificationController.UnreadCount)
			admin.PATCH("/notifications/:id/read", notificationController.MarkRead)
			admin.POST("/notifications/read-all", notificationController.MarkAllRead)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Atelier Studio API is running",
	})
}

// databaseStatus checks database connectivity
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

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

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
	})
}
