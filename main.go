package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/asharma-dev/chai-counter-api/config"
	"github.com/asharma-dev/chai-counter-api/controllers"
	"github.com/asharma-dev/chai-counter-api/middleware"
	"github.com/asharma-dev/chai-counter-api/models"
	"github.com/asharma-dev/chai-counter-api/services"
)

func main() {
	log.Println("Starting Chai Counter API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := config.GetDB()
	if err := db.AutoMigrate(&models.Item{}, &models.Order{}, &models.OrderItem{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	if err := services.SeedItems(db); err != nil {
		log.Fatalf("Failed to seed items: %v", err)
	}

	// Photo storage is optional; the API runs fine without it
	if cfg.HasS3() {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitImageService(s3Service)
		log.Println("Photo storage enabled")
	} else {
		log.Println("AWS_S3_BUCKET not set, photo storage disabled")
	}

	router := setupRouter(db)

	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the stores over db and wires every route. Tests
// call it with a fresh in-memory database.
func setupRouter(db *gorm.DB) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(middleware.RequestID())

	itemStore := services.NewItemStore(db)
	orderStore := services.NewOrderStore(db, itemStore)
	statsService := services.NewStatsService(orderStore, itemStore)

	itemController := controllers.NewItemController(itemStore)
	orderController := controllers.NewOrderController(orderStore)
	statsController := controllers.NewStatsController(statsService)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus)

		v1.GET("/items", itemController.ListItems)
		v1.GET("/items/low-stock", itemController.ListLowStockItems)
		v1.GET("/items/:id", itemController.GetItem)
		v1.POST("/items", itemController.CreateItem)
		v1.PUT("/items/:id", itemController.UpdateItem)
		v1.DELETE("/items/:id", itemController.DeleteItem)
		v1.POST("/items/:id/stock", itemController.AdjustStock)
		v1.POST("/items/:id/image", itemController.UploadItemImage)

		v1.GET("/orders", orderController.ListOrders)
		v1.GET("/orders/today", orderController.ListTodaysOrders)
		v1.GET("/orders/export", orderController.ExportTodaysOrders)
		v1.GET("/orders/status/:status", orderController.ListOrdersByStatus)
		v1.GET("/orders/:id", orderController.GetOrder)
		v1.POST("/orders", orderController.CreateOrder)
		v1.PUT("/orders/:id/status", orderController.UpdateOrderStatus)

		v1.GET("/dashboard/stats", statsController.GetDashboardStats)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Chai Counter API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
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

	tables, err := db.Migrator().GetTables()
	if err != nil {
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
